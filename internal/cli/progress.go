package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/oneiro-labs/shelfmark/internal/service"
)

// ProgressReporter renders a progress bar for batch repricing runs.
type ProgressReporter struct {
	bar *progressbar.ProgressBar
	out io.Writer
}

// NewProgressReporter creates a reporter writing to stderr.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{out: os.Stderr}
}

// BatchStarted initializes the bar with the total record count.
func (r *ProgressReporter) BatchStarted(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("Repricing products"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.out)
		}),
	)
}

// PageCompleted advances the bar to the number of records scanned so far.
func (r *ProgressReporter) PageCompleted(progress service.PageProgress) {
	if r.bar == nil {
		return
	}
	_ = r.bar.Set(progress.Scanned)
}

// BatchCompleted finishes the bar.
func (r *ProgressReporter) BatchCompleted(summary *service.BatchSummary) {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
}
