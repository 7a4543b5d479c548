package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/student-desk/internal/config"
	"github.com/aanand-mishra/student-desk/internal/storage"
	"github.com/aanand-mishra/student-desk/internal/storage/memory"
	"github.com/aanand-mishra/student-desk/internal/storage/postgres"
	"github.com/aanand-mishra/student-desk/internal/storage/sqlite"
)

// setupLogger returns a logger for the given environment.
//
//	dev:     text at DEBUG
//	staging: JSON at DEBUG
//	prod:    JSON at INFO
//
// Logs go to w (stderr) so they never mix with the editor's table output.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// openStorage picks the backend named by cfg.Driver.
func openStorage(cfg config.Storage) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		s, err := sqlite.New(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		p, err := postgres.New(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
