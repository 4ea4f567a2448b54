// Package cli is the facelive command line: it runs liveness attempts against
// a session backend and prints the normalized result.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/facelive/internal/audit"
	"github.com/saturnino-fabrica-de-software/facelive/internal/config"
	"github.com/saturnino-fabrica-de-software/facelive/internal/correlation"
	"github.com/saturnino-fabrica-de-software/facelive/internal/face"
	"github.com/saturnino-fabrica-de-software/facelive/internal/service"
	"github.com/saturnino-fabrica-de-software/facelive/internal/session"
)

// Version is overridden at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

// FlowFactory builds the LivenessFlow a command drives
type FlowFactory func(ctx context.Context, cfg *config.ClientConfig, logger *slog.Logger) (*service.LivenessFlow, error)

// Options wires the commands to their environment
type Options struct {
	Out     io.Writer
	Err     io.Writer
	NewFlow FlowFactory
}

// NewRootCommand builds the facelive command tree
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.NewFlow == nil {
		opts.NewFlow = DefaultFlow
	}

	root := &cobra.Command{
		Use:           "facelive",
		Short:         "Run face liveness checks against a session backend",
		Long:          "facelive asks the session backend for a liveness token, hands it to the detector and prints the normalized result.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.AddCommand(newStartCommand(opts))
	root.AddCommand(newVersionCommand(opts))

	return root
}

// DefaultFlow wires the HTTP session client and the configured detector
func DefaultFlow(ctx context.Context, cfg *config.ClientConfig, logger *slog.Logger) (*service.LivenessFlow, error) {
	client := session.NewClient(session.Config{
		BaseURL:   cfg.BackendURL,
		Timeout:   cfg.RequestTimeout,
		UserAgent: "facelive-cli/" + Version,
	}, logger)

	detector, err := face.NewDetector(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	flow := service.NewLivenessFlow(client, detector, correlation.NewUUIDGenerator(), logger).
		WithAudit(audit.NewSlogLogger(logger)).
		WithSendResultsToClient(cfg.SendResultsToClient).
		WithProviderName(cfg.DetectorType)

	return flow, nil
}

func newLogger(cfg *config.ClientConfig, w io.Writer, verbose bool) *slog.Logger {
	if verbose {
		return config.NewLoggerTo(cfg.Environment, w)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
