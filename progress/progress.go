// Package progress reports scan progress on a terminal.
package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for file processing. The bar is created on
// Start, once the number of files is known.
type Tracker struct {
	bar   *progressbar.ProgressBar
	label string
	w     io.Writer
}

// NewTracker creates a tracker writing to stderr.
func NewTracker(label string) *Tracker {
	return NewTrackerTo(os.Stderr, label)
}

// NewTrackerTo creates a tracker writing to w.
func NewTrackerTo(w io.Writer, label string) *Tracker {
	return &Tracker{label: label, w: w}
}

// Start creates the bar for total files.
func (t *Tracker) Start(total int) {
	t.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(t.w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(t.label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// Tick increments the progress by 1. Safe for concurrent use.
func (t *Tracker) Tick() {
	if t.bar != nil {
		_ = t.bar.Add(1)
	}
}

// Finish completes and clears the bar.
func (t *Tracker) Finish() {
	if t.bar == nil {
		return
	}
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}

// Current returns the number of ticks recorded so far.
func (t *Tracker) Current() int64 {
	if t.bar == nil {
		return 0
	}
	return t.bar.State().CurrentNum
}
