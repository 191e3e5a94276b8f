package reservation

import (
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often the sweeper runs SweepExpired.
const DefaultSweepInterval = 60 * time.Second

// Sweeper periodically evicts expired reservations. It is the only
// self-triggered activity in the package; the manager's own operations stay
// timer-free so they test without waiting on clocks.
type Sweeper struct {
	manager  *Manager
	interval time.Duration
	logger   *slog.Logger
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(manager *Manager, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		manager:  manager,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in a background goroutine.
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.manager.SweepExpired(time.Now().UTC())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to exit.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}
