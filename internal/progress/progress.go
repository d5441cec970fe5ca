package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows packet scanning progress on stderr.
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	total   int64
	current int64
	enabled bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(total int64, description string) *ProgressBar {
	return newProgressBar(total, description, os.Stderr)
}

func newProgressBar(total int64, description string, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(output, "\n")
		}),
	)
	return &ProgressBar{
		bar:     bar,
		total:   total,
		enabled: true,
	}
}

// Disable disables the progress bar
func (p *ProgressBar) Disable() {
	p.enabled = false
}

// Enable enables the progress bar
func (p *ProgressBar) Enable() {
	p.enabled = true
}

// Increment increments the progress by 1
func (p *ProgressBar) Increment() {
	p.current++
	if !p.enabled {
		return
	}
	_ = p.bar.Add64(1)
}

// Finish finishes the progress bar
func (p *ProgressBar) Finish() {
	if !p.enabled || p.current >= p.total {
		return
	}
	_ = p.bar.Finish()
}

// Current returns the number of increments seen.
func (p *ProgressBar) Current() int64 {
	return p.current
}
