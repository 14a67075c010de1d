package pipeline

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// TruncatePath shortens a path for display, keeping the end which is more
// informative.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix
		return path[:min(len(path), maxLen)]
	}
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// FormatCount formats a document count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatPercent formats part/whole as a percentage with one decimal.
// A zero whole formats as 0.0%.
func FormatPercent(part, whole int) string {
	if whole == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(whole))
}

// FormatRate formats a per-second throughput.
func FormatRate(n int, seconds float64) string {
	if seconds <= 0 {
		return "0 docs/s"
	}
	return humanize.CommafWithDigits(float64(n)/seconds, 1) + " docs/s"
}

// FormatBytes formats a byte count in human-readable form.
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
