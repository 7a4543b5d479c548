package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-desk/internal/config"
	"github.com/aanand-mishra/student-desk/internal/storage/memory"
)

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	setupLogger("prod", &buf).Debug("hidden")
	assert.Empty(t, buf.String())

	setupLogger("prod", &buf).Info("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	setupLogger("dev", &buf).Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestOpenStorage(t *testing.T) {
	s, err := openStorage(config.Storage{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Memory{}, s)

	_, err = openStorage(config.Storage{Driver: "mysql"})
	assert.ErrorContains(t, err, `unknown storage driver "mysql"`)
}
