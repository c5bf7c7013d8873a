package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/five82/skyschedule/internal/skyq"
	"github.com/five82/skyschedule/internal/state"
)

const (
	defaultPollInterval = 60 * time.Second
	manualRefreshEvery  = 5 * time.Second
)

// Poller refreshes the schedule into a store on a fixed cadence and on
// request.
type Poller struct {
	fetcher  skyq.ScheduleFetcher
	store    *state.Store
	interval time.Duration
	manual   *rate.Limiter
	trigger  chan struct{}
	log      zerolog.Logger
}

// NewPoller builds a Poller. A non-positive interval uses the default.
func NewPoller(fetcher skyq.ScheduleFetcher, store *state.Store, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		manual:   rate.NewLimiter(rate.Every(manualRefreshEvery), 1),
		trigger:  make(chan struct{}, 1),
		log:      log,
	}
}

// Run refreshes immediately, then on every tick or request until ctx is
// cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.trigger:
			ticker.Reset(p.interval)
		}
	}
}

// RequestRefresh asks for an out-of-band refresh. It reports false when the
// request was dropped by the rate limiter.
func (p *Poller) RequestRefresh() bool {
	if !p.manual.Allow() {
		return false
	}
	select {
	case p.trigger <- struct{}{}:
	default:
		// A refresh is already pending.
	}
	return true
}

func (p *Poller) refresh(ctx context.Context) {
	entries, err := p.fetcher.Schedule(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.store.Update(nil, err)
		p.log.Warn().Err(err).Msg("schedule refresh failed")
		return
	}
	p.store.Update(entries, nil)
	p.log.Debug().Int("entries", len(entries)).Msg("schedule refreshed")
}
