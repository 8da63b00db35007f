package utils

import "fmt"

// FormatDuration renders whole seconds as H:MM:SS, or M:SS under an
// hour. Zero means the extractor did not report a duration.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "Unknown"
	}

	minutes, secs := seconds/60, seconds%60
	hours, minutes := minutes/60, minutes%60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatSizeMB renders a megabyte quantity with a readable unit.
func FormatSizeMB(mb float64) string {
	switch {
	case mb < 1:
		return fmt.Sprintf("%.1f KB", mb*1024)
	case mb < 1024:
		return fmt.Sprintf("%.1f MB", mb)
	default:
		return fmt.Sprintf("%.2f GB", mb/1024)
	}
}

// FormatBytes renders a raw byte count, used by the stats view.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
