package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-desk/internal/http/handlers/student"
)

// NewServeCommand creates the serve command: the JSON API over the same
// store the editor uses.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the students JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.store.Close()

			return serve(cmd.Context(), rt)
		},
	}
}

// serve runs the HTTP server until ctx is cancelled (the signal context
// set up in main), then shuts down gracefully: in-flight requests get five
// seconds to finish.
func serve(ctx context.Context, rt *runtime) error {
	router := http.NewServeMux()
	student.Register(router, rt.store)

	server := &http.Server{
		Addr:    rt.cfg.HTTPServer.Addr,
		Handler: router,

		// Timeouts guard against slow clients holding connections open.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Buffered so the goroutine can exit even if nobody reads.
	serveErr := make(chan error, 1)
	go func() {
		rt.log.Info("server started", slog.String("address", server.Addr))

		// ListenAndServe returns http.ErrServerClosed after Shutdown; that is
		// the normal way out.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			rt.log.Error("server encountered an error", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	rt.log.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		rt.log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		return err
	}

	rt.log.Info("server stopped gracefully")
	return nil
}
