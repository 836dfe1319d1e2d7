// Package dashboard polls the aggregate counters on a fixed interval and
// holds the latest snapshot for the UI.
package dashboard

import (
	"context"
	"sync"
	"time"

	"insurtrack/internal/domain/dashboard"

	"go.uber.org/zap"
)

// StatsAPI is the slice of the API client the poller needs.
type StatsAPI interface {
	DashboardStats(ctx context.Context) (*dashboard.Stats, error)
}

// Snapshot is the poller state the UI renders: the latest stats (nil after a
// failed poll, which suppresses numeric rendering until the next success),
// whether the initial fetch is still running, and the last error.
type Snapshot struct {
	Stats   *dashboard.Stats
	Loading bool
	Err     error
}

// Poller fetches the dashboard stats immediately on Start, then on a fixed
// interval, replacing the snapshot wholesale each time. Only the first fetch
// reports loading. Stop ends polling; a result in flight at that point is
// discarded.
type Poller struct {
	api      StatsAPI
	interval time.Duration
	logger   *zap.Logger

	// OnChange, when set before Start, is invoked after every poll cycle.
	OnChange func()

	mu      sync.Mutex
	snap    Snapshot
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewPoller(api StatsAPI, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		api:      api,
		interval: interval,
		logger:   logger,
		snap:     Snapshot{Loading: true},
	}
}

// Start begins polling until Stop is called or ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	p.stopped = false
	p.mu.Unlock()

	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	stats, err := p.api.DashboardStats(ctx)

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return // torn down while the call was in flight
	}

	if err != nil {
		p.snap = Snapshot{Err: err}
		p.logger.Warn("dashboard poll failed", zap.Error(err))
	} else {
		p.snap = Snapshot{Stats: stats}
	}
	notify := p.OnChange
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Stop ends polling and waits for the loop to exit. Safe to call more than
// once.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped || p.cancel == nil {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
}

// Snapshot returns the latest poller state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}
