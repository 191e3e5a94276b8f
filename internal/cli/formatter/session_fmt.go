package formatter

import (
	"fmt"

	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/mlevasseur/pointage/internal/timeline"
)

// FormatSessions renders reconstructed session rows as a table. Rows arrive
// already sorted freshest-first from the reconstruction.
func FormatSessions(rows []domain.SessionView) string {
	if len(rows) == 0 {
		return Dim("No sessions found.") + "\n"
	}

	headers := []string{"LAUNCH", "OPERATOR", "STATUS", "DATE", "START", "END", "DURATION", "EVENTS"}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			row.LaunchCode,
			row.OperatorCode,
			StatusLabel(row.Status),
			row.Date.String(),
			clockCell(row.Start),
			clockCell(row.End),
			durationCell(row.DurationMin),
			fmt.Sprintf("%d", row.EventCount),
		})
	}
	return RenderTable(headers, table)
}

// FormatSummaries renders consolidated summaries as a table.
func FormatSummaries(summaries []domain.ConsolidatedSummary) string {
	if len(summaries) == 0 {
		return Dim("No summaries found.") + "\n"
	}

	headers := []string{"LAUNCH", "OPERATOR", "DATE", "TOTAL", "PAUSE", "PRODUCTIVE", "EVENTS"}
	table := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		table = append(table, []string{
			s.LaunchCode,
			s.OperatorCode,
			s.Date.String(),
			durationCell(s.TotalMin),
			timeline.FormatMinutes(s.PauseMin),
			durationCell(s.ProductiveMin),
			fmt.Sprintf("%d", s.EventCount),
		})
	}
	return RenderTable(headers, table)
}

// FormatReservations renders the active reservation table.
func FormatReservations(reservations []domain.Reservation) string {
	if len(reservations) == 0 {
		return Dim("No active reservations.") + "\n"
	}

	headers := []string{"LAUNCH", "OPERATOR", "RESERVED AT"}
	table := make([][]string, 0, len(reservations))
	for _, r := range reservations {
		table = append(table, []string{
			r.LaunchCode,
			r.OperatorCode,
			r.ReservedAt.Format("15:04:05"),
		})
	}
	return RenderTable(headers, table)
}

func clockCell(c *domain.ClockTime) string {
	if c == nil {
		return Dim("—")
	}
	return c.String()
}

func durationCell(min *int) string {
	if min == nil {
		return Dim("n/a")
	}
	return timeline.FormatMinutes(*min)
}
