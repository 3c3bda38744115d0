package progress

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/consensus-score/deployer/internal/usecase"
	"github.com/fatih/color"
)

// SpinnerProgressReporter shows a spinner on stderr while a stage blocks
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
	out     io.Writer
	// running is whether the spinner should be shown; the library skips drawing off a terminal
	running bool
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	// WriterFile drives the terminal check, so it must be the stream drawn on
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(os.Stderr))
	return newSpinnerProgressReporter(s, os.Stderr)
}

func newSpinnerProgressReporter(s *spinner.Spinner, out io.Writer) *SpinnerProgressReporter {
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner && event.Stage != usecase.StageCompleted {
		r.spinner.Suffix = " " + color.New(color.FgYellow).Sprint(event.Message)
		r.start()
		return
	}
	r.stop()
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	wasRunning := r.running
	r.stop()

	_, _ = color.New(color.FgCyan).Fprintln(r.out, message)

	if wasRunning {
		r.start()
	}
}

// Error prints an error message. The failed stage is over, so the spinner stays stopped.
func (r *SpinnerProgressReporter) Error(message string) {
	r.stop()
	_, _ = color.New(color.FgRed).Fprintln(r.out, message)
}

func (r *SpinnerProgressReporter) start() {
	r.running = true
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) stop() {
	r.running = false
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
