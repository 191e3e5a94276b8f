package timeline

import "fmt"

// FormatMinutes renders an elapsed span for display. Spans under an hour show
// minutes only, spans under a day show hours and minutes, anything longer is
// broken into days/hours/minutes. Values are already floored to the minute;
// no rounding happens here.
func FormatMinutes(totalMin int) string {
	if totalMin < 0 {
		return "n/a"
	}
	days := totalMin / (24 * 60)
	hours := (totalMin % (24 * 60)) / 60
	mins := totalMin % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %02dmin", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %02dmin", hours, mins)
	default:
		return fmt.Sprintf("%dmin", mins)
	}
}
