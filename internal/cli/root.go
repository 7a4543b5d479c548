// Package cli wires config, logging and storage into the studentdesk
// commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-desk/internal/config"
	"github.com/aanand-mishra/student-desk/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the studentdesk command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "studentdesk",
		Short:         "Keep the students table in order",
		Long:          "studentdesk edits a single students table from an interactive session, a JSON API or the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to the configuration YAML file (CONFIG_PATH wins)")

	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// runtime is what every command needs once the config is read.
type runtime struct {
	cfg   *config.Config
	log   *slog.Logger
	store storage.Storage
}

// setup loads the config, builds the logger and opens the store. The
// caller closes the store.
func setup(cmd *cobra.Command, opts *RootOptions) (*runtime, error) {
	path, err := config.ResolvePath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	log := setupLogger(cfg.Env, cmd.ErrOrStderr())
	log.Debug("config loaded",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Storage.Driver))

	store, err := openStorage(cfg.Storage)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		return nil, fmt.Errorf("open storage: %w", err)
	}

	return &runtime{cfg: cfg, log: log, store: store}, nil
}
