// studentdesk keeps a students table in order.
//
//	studentdesk edit  --config=config/local.yaml   interactive editor
//	studentdesk serve --config=config/local.yaml   JSON API
//	studentdesk list  --format=yaml                print every student
//
// CONFIG_PATH=config/local.yaml may replace the --config flag.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/student-desk/internal/cli"
)

func main() {
	// Ctrl+C (SIGINT) or kill (SIGTERM) cancels the context; serve shuts
	// down gracefully and edit stops at the next command.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
