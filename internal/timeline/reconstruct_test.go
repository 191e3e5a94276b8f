package timeline

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mlevasseur/pointage/internal/domain"
	"github.com/mlevasseur/pointage/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietReconstructor() *Reconstructor {
	return NewReconstructor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func findRow(t *testing.T, rows []domain.SessionView, id string) domain.SessionView {
	t.Helper()
	for _, row := range rows {
		if row.ID == id {
			return row
		}
	}
	t.Fatalf("no row with id %s", id)
	return domain.SessionView{}
}

func TestReconstruct_FullLifecycle(t *testing.T) {
	events := []domain.RawEvent{
		testutil.NewTestEvent("101", "LT001", domain.EventStart, testutil.WithClock(9, 0, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventPause, testutil.WithClock(9, 30, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventResume, testutil.WithClock(9, 45, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventFinish, testutil.WithClock(10, 0, 0)),
	}

	rows := quietReconstructor().Reconstruct(events)
	require.Len(t, rows, 2)

	main := findRow(t, rows, "LT001/101")
	assert.Equal(t, domain.SessionFinished, main.Status)
	require.NotNil(t, main.DurationMin)
	assert.Equal(t, 60, *main.DurationMin)
	assert.Equal(t, 4, main.EventCount)
	assert.Equal(t, "09:00", main.Start.String())
	assert.Equal(t, "10:00", main.End.String())

	pause := findRow(t, rows, "LT001/101/pause/1")
	assert.Equal(t, domain.SessionPauseClosed, pause.Status)
	require.NotNil(t, pause.DurationMin)
	assert.Equal(t, 15, *pause.DurationMin)
	assert.Equal(t, 2, pause.EventCount)
}

func TestReconstruct_MainRowNeverPaused(t *testing.T) {
	events := []domain.RawEvent{
		testutil.NewTestEvent("101", "LT001", domain.EventStart, testutil.WithClock(9, 0, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventPause, testutil.WithClock(9, 30, 0)),
	}

	rows := quietReconstructor().Reconstruct(events)
	require.Len(t, rows, 2)

	main := findRow(t, rows, "LT001/101")
	assert.Equal(t, domain.SessionInProgress, main.Status,
		"open pause must not change the main row status")
	assert.Nil(t, main.DurationMin)

	pause := findRow(t, rows, "LT001/101/pause/1")
	assert.Equal(t, domain.SessionPaused, pause.Status)
	assert.Nil(t, pause.End)
	assert.Equal(t, 1, pause.EventCount)
}

func TestReconstruct_SkipsGroupWithoutStart(t *testing.T) {
	events := []domain.RawEvent{
		testutil.NewTestEvent("101", "LT001", domain.EventPause, testutil.WithClock(9, 0, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventFinish, testutil.WithClock(10, 0, 0)),
		testutil.NewTestEvent("102", "LT002", domain.EventStart, testutil.WithClock(8, 0, 0)),
	}

	rows := quietReconstructor().Reconstruct(events)
	require.Len(t, rows, 1, "the malformed group is skipped, the rest survives")
	assert.Equal(t, "LT002/102", rows[0].ID)
}

func TestReconstruct_FinishFallsBackToCreatedAt(t *testing.T) {
	events := []domain.RawEvent{
		testutil.NewTestEvent("101", "LT001", domain.EventStart, testutil.WithClock(9, 0, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventFinish,
			testutil.WithNoClock(),
			testutil.WithCreatedAt(time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC))),
	}

	rows := quietReconstructor().Reconstruct(events)
	main := findRow(t, rows, "LT001/101")
	require.NotNil(t, main.End)
	assert.Equal(t, "11:00", main.End.String())
	require.NotNil(t, main.DurationMin)
	assert.Equal(t, 120, *main.DurationMin)
}

func TestReconstruct_MidnightRolloverDuration(t *testing.T) {
	events := []domain.RawEvent{
		testutil.NewTestEvent("101", "LT001", domain.EventStart, testutil.WithClock(23, 30, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventFinish, testutil.WithClock(0, 30, 0)),
	}

	rows := quietReconstructor().Reconstruct(events)
	main := findRow(t, rows, "LT001/101")
	require.NotNil(t, main.DurationMin)
	assert.Equal(t, 60, *main.DurationMin)
}

func TestReconstruct_UnexplainableDurationIsUnavailable(t *testing.T) {
	events := []domain.RawEvent{
		testutil.NewTestEvent("101", "LT001", domain.EventStart,
			testutil.WithDate(2025, time.March, 12), testutil.WithClock(9, 0, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventFinish,
			testutil.WithDate(2025, time.March, 10), testutil.WithClock(10, 0, 0)),
	}

	rows := quietReconstructor().Reconstruct(events)
	main := findRow(t, rows, "LT001/101")
	assert.Equal(t, domain.SessionFinished, main.Status)
	assert.Nil(t, main.DurationMin, "never a negative or wrapped-around guess")
}

func TestReconstruct_Idempotent(t *testing.T) {
	events := []domain.RawEvent{
		testutil.NewTestEvent("101", "LT001", domain.EventStart, testutil.WithClock(9, 0, 0)),
		testutil.NewTestEvent("101", "LT001", domain.EventPause, testutil.WithClock(9, 30, 0)),
		testutil.NewTestEvent("102", "LT002", domain.EventStart, testutil.WithClock(7, 0, 0)),
	}

	r := quietReconstructor()
	first := r.Reconstruct(events)
	second := r.Reconstruct(events)
	assert.Equal(t, first, second)
}

func TestReconstruct_RowsOrderedByLastUpdateDesc(t *testing.T) {
	older := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	events := []domain.RawEvent{
		testutil.NewTestEvent("101", "LT001", domain.EventStart,
			testutil.WithClock(8, 0, 0), testutil.WithCreatedAt(older)),
		testutil.NewTestEvent("102", "LT002", domain.EventStart,
			testutil.WithClock(12, 0, 0), testutil.WithCreatedAt(newer)),
	}

	rows := quietReconstructor().Reconstruct(events)
	require.Len(t, rows, 2)
	assert.Equal(t, "LT002/102", rows[0].ID, "freshest activity first")
	assert.Equal(t, "LT001/101", rows[1].ID)
}
