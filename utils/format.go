// Package utils holds helpers for the command line tools.
package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Terminal colors of the status lines.
const (
	resetColor = "\x1b[0m"
	nameColor  = "\x1b[36m"
	valueColor = "\x1b[32m"
	errorColor = "\x1b[31m"
)

func paint(color, s string) string {
	return color + s + resetColor
}

// Failure formats msg as an error line.
func Failure(msg string) string {
	return paint(errorColor, msg)
}

// Wrote reports an archive of size bytes written to name after d.
func Wrote(name string, size int64, d time.Duration) string {
	return fmt.Sprintf("%s wrote %s (%s) in %s", paint(nameColor, "iconic"), name,
		paint(valueColor, humanize.Bytes(uint64(max(size, 0)))), paint(valueColor, FormatTime(d)))
}

// FormatTime rounds d for display: to the millisecond under a second, to the hundredth of a
// second above.
func FormatTime(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
