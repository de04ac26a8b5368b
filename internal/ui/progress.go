package ui

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// JobProgressBar visualizes a job's server-reported progress (0-100)
// while the client polls it to completion
type JobProgressBar struct {
	bar     *progressbar.ProgressBar
	current int
}

// NewJobProgressBar creates a progress bar for watching one job
// Updates are throttled to 500ms to avoid terminal flicker
func NewJobProgressBar(description string) *JobProgressBar {
	return newJobProgressBar(description, os.Stderr)
}

// NewJobProgressBarWithWriter creates a progress bar that writes to a
// specific writer. Useful for testing with mock writers.
func NewJobProgressBarWithWriter(description string, writer io.Writer) *JobProgressBar {
	return newJobProgressBar(description, writer)
}

func newJobProgressBar(description string, writer io.Writer) *JobProgressBar {
	bar := progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(500*time.Millisecond),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(false),
	)

	return &JobProgressBar{bar: bar}
}

// Update sets the bar to the latest server-reported progress.
// Progress never moves backwards even if the server reports a lower value.
func (p *JobProgressBar) Update(percent int) error {
	if percent < p.current {
		return nil
	}
	p.current = percent
	return p.bar.Set64(int64(percent))
}

// Current returns the last rendered progress value
func (p *JobProgressBar) Current() int {
	return p.current
}

// Describe replaces the bar's description text, used to surface the
// latest ETA while a job is watched
func (p *JobProgressBar) Describe(description string) {
	p.bar.Describe(description)
}

// Finish completes the progress bar
func (p *JobProgressBar) Finish() error {
	p.current = 100
	return p.bar.Finish()
}

// Clear clears the progress bar from the terminal
func (p *JobProgressBar) Clear() error {
	return p.bar.Clear()
}

// NewDownloadBar creates a byte-count progress bar for output downloads
func NewDownloadBar(totalBytes int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		totalBytes,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(500*time.Millisecond),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(false),
	)
}
