package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/schollz/progressbar/v3"
)

const spinInterval = 100 * time.Millisecond

// Spin shows a spinner with description on w while fn runs and returns fn's error.
func Spin(w io.Writer, description string, fn func() error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(spinInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()

	close(done)
	<-stopped
	if finishErr := bar.Finish(); finishErr != nil {
		slog.Debug("Failed to finish spinner", common.ErrAttr(finishErr))
	}

	return err
}

// NewUploadBar returns a progress bar for total spreadsheet rows.
func NewUploadBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Đang ghi Google Sheets...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", common.ErrAttr(err))
			}
		}),
	)
}
