package timeline

import (
	"sort"

	"github.com/mlevasseur/pointage/internal/domain"
)

// CompareEvents orders two events by (date, effective time of day, seq).
// Multiple events can share a timestamp; the store-assigned sequence id is
// the final tie-break, so the order is total and deterministic.
func CompareEvents(a, b domain.RawEvent) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if c := a.EffectiveClock().Compare(b.EffectiveClock()); c != 0 {
		return c
	}
	switch {
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	}
	return 0
}

// SortEvents sorts events in place into reconstruction order. The store only
// guarantees insertion order, so callers sort before reconstructing.
func SortEvents(events []domain.RawEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return CompareEvents(events[i], events[j]) < 0
	})
}
