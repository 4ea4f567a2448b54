package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/facelive/internal/config"
	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/service"
)

// ErrAttemptFailed is returned when the last attempt ended in Failed
var ErrAttemptFailed = errors.New("liveness attempt failed")

type startFlags struct {
	mode        string
	verifyImage string
	retries     int
	jsonOutput  bool
	verbose     bool
}

func newStartCommand(opts Options) *cobra.Command {
	var flags startFlags

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run one liveness attempt",
		Long: `start requests a session from the backend, runs the detector with the returned
token and prints the result. With --verify-image the reference face is uploaded
and the result also carries a verification status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", string(domain.OperationModePassive), "Operation mode: Passive or PassiveActive")
	cmd.Flags().StringVar(&flags.verifyImage, "verify-image", "", "Reference face image for liveness with verification")
	cmd.Flags().IntVar(&flags.retries, "retries", 0, "Retries after a failed attempt, each with a new correlation id")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")

	return cmd
}

func runStart(cmd *cobra.Command, opts Options, flags startFlags) error {
	if flags.retries < 0 {
		return fmt.Errorf("--retries must not be negative")
	}

	mode, err := domain.ParseOperationMode(flags.mode)
	if err != nil {
		return err
	}

	params := service.StartParams{OperationMode: mode}
	if flags.verifyImage != "" {
		image, err := readVerifyImage(flags.verifyImage)
		if err != nil {
			return err
		}
		params.VerifyImage = image
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := newLogger(cfg, opts.Err, flags.verbose)

	flow, err := opts.NewFlow(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build liveness flow: %w", err)
	}

	if !flags.jsonOutput {
		flow.OnStateChange(func(from, to domain.AttemptState) {
			renderTransition(opts.Out, to)
		})
	}

	attempt, err := flow.Start(ctx, params)
	if err != nil {
		return err
	}

	for i := 0; i < flags.retries && flow.State() == domain.AttemptFailed; i++ {
		if !flags.jsonOutput {
			renderRetry(opts.Out, i+1, flags.retries)
		}
		attempt, err = flow.Retry(ctx)
		if err != nil {
			return err
		}
	}

	state := flow.State()
	if flags.jsonOutput {
		if err := writeJSON(opts.Out, state, attempt); err != nil {
			return err
		}
	} else {
		renderAttempt(opts.Out, state, attempt)
	}

	if state == domain.AttemptFailed {
		return ErrAttemptFailed
	}
	return nil
}

func readVerifyImage(path string) (*domain.VerifyImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read verify image: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("%s is empty", path))
	}
	return &domain.VerifyImage{
		Filename: filepath.Base(path),
		Data:     data,
	}, nil
}

type jsonAttempt struct {
	State         domain.AttemptState  `json:"state"`
	CorrelationID string               `json:"correlation_id"`
	Result        domain.DisplayResult `json:"result"`
	Error         string               `json:"error,omitempty"`
}

func writeJSON(w io.Writer, state domain.AttemptState, attempt *service.Attempt) error {
	out := jsonAttempt{
		State:         state,
		CorrelationID: attempt.CorrelationID,
		Result:        attempt.Display,
	}
	if attempt.Err != nil {
		out.Error = attempt.Err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
