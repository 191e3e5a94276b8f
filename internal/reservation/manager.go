package reservation

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mlevasseur/pointage/internal/domain"
)

const (
	// DefaultMaxPerOperator caps concurrent reservations per operator.
	DefaultMaxPerOperator = 3
	// DefaultTTL is the age past which a reservation is considered abandoned.
	DefaultTTL = 2 * time.Hour
)

// ConflictError reports a denied admission, carrying enough context for the
// caller to surface who holds the resource. It maps to an HTTP 409 at the
// transport layer.
type ConflictError struct {
	OperatorCode string
	LaunchCode   string
	HolderCode   string
	Reason       string
}

func (e *ConflictError) Error() string {
	if e.HolderCode != "" {
		return fmt.Sprintf("launch %s is reserved by operator %s", e.LaunchCode, e.HolderCode)
	}
	return fmt.Sprintf("operator %s: %s", e.OperatorCode, e.Reason)
}

// Manager arbitrates admission of start operations. It owns two in-memory
// tables, the per-operator active set and the per-launch lock, guarded by a
// single mutex so a check-and-reserve executes atomically. Nothing here is
// persisted; a restart simply forgets all claims.
type Manager struct {
	mu             sync.Mutex
	byOperator     map[string][]*domain.Reservation
	byLaunch       map[string]*domain.Reservation
	maxPerOperator int
	ttl            time.Duration
	logger         *slog.Logger
}

func NewManager(maxPerOperator int, ttl time.Duration, logger *slog.Logger) *Manager {
	if maxPerOperator <= 0 {
		maxPerOperator = DefaultMaxPerOperator
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		byOperator:     make(map[string][]*domain.Reservation),
		byLaunch:       make(map[string]*domain.Reservation),
		maxPerOperator: maxPerOperator,
		ttl:            ttl,
		logger:         logger,
	}
}

// CanStart reports whether the operator may start work on the launch. A nil
// return means admission is allowed; otherwise the error is a *ConflictError.
// This is a preflight check only; Reserve re-runs it under the same lock
// acquisition, so callers racing between CanStart and Reserve stay safe.
func (m *Manager) CanStart(operatorCode, launchCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canStartLocked(operatorCode, launchCode)
}

func (m *Manager) canStartLocked(operatorCode, launchCode string) error {
	if held := m.byLaunch[launchCode]; held != nil {
		// Re-entrant: the holder may always resume work on its own launch.
		if held.OperatorCode == operatorCode {
			return nil
		}
		return &ConflictError{
			OperatorCode: operatorCode,
			LaunchCode:   launchCode,
			HolderCode:   held.OperatorCode,
			Reason:       "launch reserved by another operator",
		}
	}
	if len(m.byOperator[operatorCode]) >= m.maxPerOperator {
		return &ConflictError{
			OperatorCode: operatorCode,
			LaunchCode:   launchCode,
			Reason:       fmt.Sprintf("already holds %d active reservations", len(m.byOperator[operatorCode])),
		}
	}
	return nil
}

// Reserve performs the atomic check-and-set: it admits the operation and
// records the claim in both tables under one lock acquisition. Reserving a
// launch the operator already holds is idempotent and returns the existing
// reservation.
func (m *Manager) Reserve(operatorCode, launchCode, operationID string) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if held := m.byLaunch[launchCode]; held != nil && held.OperatorCode == operatorCode {
		return held, nil
	}
	if err := m.canStartLocked(operatorCode, launchCode); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		OperatorCode: operatorCode,
		LaunchCode:   launchCode,
		OperationID:  operationID,
		ReservedAt:   time.Now().UTC(),
	}
	m.byOperator[operatorCode] = append(m.byOperator[operatorCode], res)
	m.byLaunch[launchCode] = res
	return res, nil
}

// Release drops the given operation from the operator's active set. The
// launch lock is removed only while still held by the releasing operator, so
// a stale release cannot evict someone else's claim.
func (m *Manager) Release(operatorCode, launchCode, operationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.byOperator[operatorCode]
	for i, res := range active {
		if res.LaunchCode == launchCode && res.OperationID == operationID {
			m.byOperator[operatorCode] = append(active[:i], active[i+1:]...)
			break
		}
	}
	if len(m.byOperator[operatorCode]) == 0 {
		delete(m.byOperator, operatorCode)
	}
	if held := m.byLaunch[launchCode]; held != nil && held.OperatorCode == operatorCode {
		delete(m.byLaunch, launchCode)
	}
}

// Held returns the operator's active reservation on the launch, if any.
func (m *Manager) Held(operatorCode, launchCode string) (*domain.Reservation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if held := m.byLaunch[launchCode]; held != nil && held.OperatorCode == operatorCode {
		copied := *held
		return &copied, true
	}
	return nil, false
}

// SweepExpired drops reservations older than the TTL from both tables and
// returns the number removed. Expiry is best-effort cleanup of abandoned
// claims, not a fairness mechanism.
func (m *Manager) SweepExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.Add(-m.ttl)
	removed := 0
	for operator, active := range m.byOperator {
		kept := active[:0]
		for _, res := range active {
			if res.ReservedAt.Before(cutoff) {
				removed++
				if held := m.byLaunch[res.LaunchCode]; held == res {
					delete(m.byLaunch, res.LaunchCode)
				}
				continue
			}
			kept = append(kept, res)
		}
		if len(kept) == 0 {
			delete(m.byOperator, operator)
		} else {
			m.byOperator[operator] = kept
		}
	}
	if removed > 0 {
		m.logger.Info("swept expired reservations", "removed", removed)
	}
	return removed
}

// Active returns a snapshot of all live reservations, ordered by launch code.
func (m *Manager) Active() []domain.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Reservation, 0, len(m.byLaunch))
	for _, res := range m.byLaunch {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LaunchCode < out[j].LaunchCode })
	return out
}
