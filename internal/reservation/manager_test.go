package reservation

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(DefaultMaxPerOperator, DefaultTTL, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReserve_ConflictNamesHolder(t *testing.T) {
	m := newTestManager()

	_, err := m.Reserve("101", "LT001", "op-1")
	require.NoError(t, err)

	_, err = m.Reserve("102", "LT001", "op-2")
	require.Error(t, err)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "101", conflict.HolderCode)
	assert.Equal(t, "LT001", conflict.LaunchCode)
}

func TestReserve_OperatorCapacity(t *testing.T) {
	m := newTestManager()

	for i, launch := range []string{"LT001", "LT002", "LT003"} {
		_, err := m.Reserve("101", launch, string(rune('a'+i)))
		require.NoError(t, err)
	}

	_, err := m.Reserve("101", "LT004", "op-4")
	require.Error(t, err, "a 4th concurrent reservation is denied")

	_, err = m.Reserve("102", "LT004", "op-5")
	assert.NoError(t, err, "a different operator still gets the 4th launch")
}

func TestReserve_ReentrantSameOperator(t *testing.T) {
	m := newTestManager()

	first, err := m.Reserve("101", "LT001", "op-1")
	require.NoError(t, err)

	again, err := m.Reserve("101", "LT001", "op-2")
	require.NoError(t, err)
	assert.Same(t, first, again, "re-reserving an owned launch is idempotent")

	assert.NoError(t, m.CanStart("101", "LT001"))
}

func TestRelease_ReturnsLaunchToFree(t *testing.T) {
	m := newTestManager()

	res, err := m.Reserve("101", "LT001", "op-1")
	require.NoError(t, err)

	m.Release("101", "LT001", res.OperationID)

	_, err = m.Reserve("102", "LT001", "op-2")
	assert.NoError(t, err, "released launch is free for the next operator")
	assert.Len(t, m.Active(), 1)
}

func TestRelease_DoesNotEvictOtherOperator(t *testing.T) {
	m := newTestManager()

	_, err := m.Reserve("101", "LT001", "op-1")
	require.NoError(t, err)

	// A stale release from a different operator must not free the launch.
	m.Release("102", "LT001", "op-x")

	err = m.CanStart("102", "LT001")
	require.Error(t, err)
}

func TestSweepExpired_RemovesStaleReservations(t *testing.T) {
	m := newTestManager()

	res, err := m.Reserve("101", "LT001", "op-1")
	require.NoError(t, err)
	_, err = m.Reserve("101", "LT002", "op-2")
	require.NoError(t, err)

	// Age the first reservation past the 2h TTL.
	res.ReservedAt = time.Now().UTC().Add(-3 * time.Hour)

	removed := m.SweepExpired(time.Now().UTC())
	assert.Equal(t, 1, removed)

	_, err = m.Reserve("102", "LT001", "op-3")
	assert.NoError(t, err, "the swept launch is free again")
	err = m.CanStart("102", "LT002")
	assert.Error(t, err, "the fresh reservation survives the sweep")
}

func TestManager_ConcurrentReserveSingleWinner(t *testing.T) {
	m := newTestManager()

	const goroutines = 16
	var wg sync.WaitGroup
	wins := make(chan string, goroutines)

	for i := 0; i < goroutines; i++ {
		operator := "op-a"
		if i%2 == 1 {
			operator = "op-b"
		}
		wg.Add(1)
		go func(operator string) {
			defer wg.Done()
			if _, err := m.Reserve(operator, "LT001", operator); err == nil {
				wins <- operator
			}
		}(operator)
	}
	wg.Wait()
	close(wins)

	// Check-and-set is atomic: every successful reserve names one operator.
	winners := map[string]bool{}
	for w := range wins {
		winners[w] = true
	}
	assert.Len(t, winners, 1)
}
