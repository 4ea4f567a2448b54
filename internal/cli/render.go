package cli

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/service"
)

var (
	successStyle = pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	failureStyle = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	labelStyle   = pterm.NewStyle(pterm.Bold)
	stepStyle    = pterm.NewStyle(pterm.FgGray)
)

var stateText = map[domain.AttemptState]string{
	domain.AttemptIdle:              "Ready",
	domain.AttemptAwaitingSession:   "Requesting liveness session",
	domain.AttemptAwaitingSdkResult: "Waiting for liveness result",
	domain.AttemptCompleted:         "Liveness check completed",
	domain.AttemptFailed:            "Liveness check failed",
}

func renderTransition(w io.Writer, to domain.AttemptState) {
	if to.Finished() {
		return
	}
	text, ok := stateText[to]
	if !ok {
		text = string(to)
	}
	pterm.Fprintln(w, stepStyle.Sprint("• "+text))
}

func renderRetry(w io.Writer, n, total int) {
	pterm.Fprintln(w, pterm.NewStyle(pterm.FgYellow).Sprint(fmt.Sprintf("Retrying (%d/%d)", n, total)))
}

func renderAttempt(w io.Writer, state domain.AttemptState, attempt *service.Attempt) {
	title := successStyle.Sprint(stateText[domain.AttemptCompleted])
	if state == domain.AttemptFailed {
		title = failureStyle.Sprint(stateText[domain.AttemptFailed])
	}

	pterm.Fprintln(w)
	pterm.Fprintln(w, title)
	if attempt.CorrelationID != "" {
		pterm.Fprintln(w, labelStyle.Sprint("Correlation ID: ")+attempt.CorrelationID)
	}
	for _, line := range attempt.Display.Lines() {
		pterm.Fprintln(w, labelStyle.Sprint(line.Label+": ")+line.Value)
	}
}
