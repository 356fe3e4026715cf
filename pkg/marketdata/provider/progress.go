package provider

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// downloadProgress drives both the terminal progress bar and the caller's callback.
// Progress is measured in calendar days covered so far.
type downloadProgress struct {
	bar        *progressbar.ProgressBar
	start      time.Time
	total      int
	message    string
	onProgress OnDownloadProgress
}

func newDownloadProgress(config Config, ticker string, start time.Time, end time.Time, onProgress OnDownloadProgress) *downloadProgress {
	total := int(end.Sub(start).Hours()/24) + 1
	if total < 1 {
		total = 1
	}

	out := config.ProgressWriter
	if out == nil {
		out = os.Stderr
	}

	message := fmt.Sprintf("Downloading %s", ticker)

	return &downloadProgress{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription(message),
			progressbar.OptionSetWriter(out),
			progressbar.OptionShowCount(),
		),
		start:      start,
		total:      total,
		message:    message,
		onProgress: onProgress,
	}
}

// update reports that bars up to t have been received.
func (p *downloadProgress) update(t time.Time) {
	days := int(t.Sub(p.start).Hours() / 24)
	days = max(0, min(days, p.total))

	p.bar.Set(days)

	if p.onProgress != nil {
		p.onProgress(float64(days), float64(p.total), p.message)
	}
}

func (p *downloadProgress) finish() {
	p.bar.Finish()

	if p.onProgress != nil {
		p.onProgress(float64(p.total), float64(p.total), p.message)
	}
}
