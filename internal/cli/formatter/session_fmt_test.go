package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testRow(status domain.SessionStatus, durationMin *int) domain.SessionView {
	start := domain.NewClockTime(9, 0, 0)
	return domain.SessionView{
		ID:           "LT001/101",
		OperatorCode: "101",
		LaunchCode:   "LT001",
		Status:       status,
		Date:         domain.Date{Year: 2025, Month: time.March, Day: 10},
		Start:        &start,
		DurationMin:  durationMin,
		EventCount:   2,
	}
}

func TestFormatSessions_Empty(t *testing.T) {
	out := FormatSessions(nil)
	assert.Contains(t, out, "No sessions found")
}

func TestFormatSessions_RendersRows(t *testing.T) {
	min := 90
	out := FormatSessions([]domain.SessionView{
		testRow(domain.SessionFinished, &min),
		testRow(domain.SessionInProgress, nil),
	})

	assert.Contains(t, out, "LT001")
	assert.Contains(t, out, "101")
	assert.Contains(t, out, "1h 30min")
	assert.Contains(t, out, "n/a", "missing duration renders as unavailable")
	assert.Equal(t, 4, len(strings.Split(strings.TrimRight(out, "\n"), "\n")),
		"header, separator and one line per row")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable([]string{"A", "LONGHEADER"}, [][]string{{"x", "y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "─")
}
