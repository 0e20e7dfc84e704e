// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

// Package poller drives the getServerChanges long poll and keeps the client
// revision counter in lockstep with the server.
//
// The server numbers every change batch with a strictly incrementing
// revision. Delivery is exactly-once-in-order only while each accepted
// response's revision equals the previous one plus one; any other value means
// at least one batch was lost and the sole correct recovery is re-adopting
// the authoritative full state via getServerState.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avolkov/go-tether-sync/internal/adapter"
	"github.com/avolkov/go-tether-sync/internal/logger"
	"github.com/avolkov/go-tether-sync/models"
)

// UnknownRevision is the sentinel used before the first accepted batch.
const UnknownRevision = -1

const (
	defaultMaxResyncAttempts = 5
	defaultRetryDelay        = time.Second
	defaultResyncDelay       = time.Second
)

// State is the poller lifecycle state.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateResyncing
	StateStopped
)

// Event is one downstream delivery. Snapshot marks a full-state response that
// must replace the local collection instead of merging into it.
type Event struct {
	Response models.ServerResponse
	Snapshot bool
}

// Poller owns the long-poll loop. Exactly one getServerChanges call is in
// flight at a time; the loop is strictly sequential because revision
// acceptance depends on the previous call's outcome.
type Poller struct {
	api    adapter.SessionAPI
	logger *logger.Logger

	// Tunable for tests; defaults applied in New.
	retryDelay        time.Duration
	resyncDelay       time.Duration
	maxResyncAttempts int

	mu             sync.Mutex
	state          State
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	revision       int
	resyncAttempts int

	events     chan Event
	errs       chan error
	syncFailed chan struct{}
}

// New creates an idle Poller reading from api.
func New(api adapter.SessionAPI, log *logger.Logger) *Poller {
	return &Poller{
		api:               api,
		logger:            log,
		retryDelay:        defaultRetryDelay,
		resyncDelay:       defaultResyncDelay,
		maxResyncAttempts: defaultMaxResyncAttempts,
		state:             StateIdle,
		revision:          UnknownRevision,
		events:            make(chan Event, 16),
		errs:              make(chan error, 8),
		syncFailed:        make(chan struct{}, 1),
	}
}

// Events returns the ordered stream of accepted responses and snapshots.
// One event per logical batch, never coalesced.
func (p *Poller) Events() <-chan Event { return p.events }

// Errors returns transport and resync errors observed by the loop. The loop
// self-heals; these are informational.
func (p *Poller) Errors() <-chan error { return p.errs }

// SyncFailed delivers the terminal signal emitted when the resync attempt
// budget is exhausted. At most one signal per Start.
func (p *Poller) SyncFailed() <-chan struct{} { return p.syncFailed }

// State returns the current lifecycle state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Revision returns the last accepted revision, or UnknownRevision.
func (p *Poller) Revision() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revision
}

// Start transitions Idle/Stopped to Polling and launches the loop goroutine.
// The revision resets to UnknownRevision and the resync attempt counter to
// zero. No-op when already polling.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.state == StatePolling || p.state == StateResyncing {
		p.mu.Unlock()
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.state = StatePolling
	p.revision = UnknownRevision
	p.resyncAttempts = 0
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		p.loop(loopCtx)
	}()
}

// Stop cancels the in-flight call, waits for the loop to exit, and resets the
// revision. Safe to call from any state.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	p.state = StateStopped
	p.revision = UnknownRevision
	p.mu.Unlock()
}

// RequestFullState fetches a full snapshot out of band and adopts its
// revision. It does not touch the resync attempt counter or the polling
// state. The snapshot is forwarded on the events channel.
func (p *Poller) RequestFullState(ctx context.Context) error {
	state, err := p.api.GetServerState(ctx)
	if err != nil {
		return err
	}

	if state.Revision != nil {
		p.mu.Lock()
		p.revision = *state.Revision
		p.mu.Unlock()
	}

	p.deliver(ctx, Event{Response: state, Snapshot: true})
	return nil
}

func (p *Poller) loop(ctx context.Context) {
	p.logger.Debug().Msg("poll loop started")

	for ctx.Err() == nil {
		resp, err := p.api.GetServerChanges(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				p.logger.Debug().Msg("poll loop cancelled")
				return
			}

			p.reportError(err)
			if !p.sleep(ctx, p.retryDelay) {
				return
			}
			continue
		}

		// No revision means an empty long-poll tick; forward it unchanged.
		if resp.Revision == nil {
			p.deliver(ctx, Event{Response: resp})
			continue
		}

		rev := *resp.Revision
		p.mu.Lock()
		last := p.revision
		p.mu.Unlock()

		if last == UnknownRevision || rev == last+1 {
			p.mu.Lock()
			p.revision = rev
			p.resyncAttempts = 0
			p.mu.Unlock()

			p.logger.Debug().Int("revision", rev).Int("variants", len(resp.Variants)).Msg("change batch accepted")
			p.deliver(ctx, Event{Response: resp})
			continue
		}

		p.logger.Warn().Int("expected", last+1).Int("got", rev).Msg("revision gap detected")
		if !p.resync(ctx) {
			return
		}
	}
}

// resync runs one recovery attempt. It returns false when the attempt budget
// is exhausted and the loop must terminate.
func (p *Poller) resync(ctx context.Context) bool {
	p.mu.Lock()
	p.resyncAttempts++
	attempt := p.resyncAttempts
	p.state = StateResyncing
	p.mu.Unlock()

	if attempt > p.maxResyncAttempts {
		p.logger.Error().Int("attempts", attempt-1).Msg("resync budget exhausted, stopping poll loop")

		p.mu.Lock()
		p.state = StateStopped
		p.revision = UnknownRevision
		p.mu.Unlock()

		select {
		case p.syncFailed <- struct{}{}:
		default:
		}
		return false
	}

	p.logger.Info().Int("attempt", attempt).Int("max", p.maxResyncAttempts).Msg("resyncing from full state")

	if !p.sleep(ctx, p.resyncDelay) {
		return false
	}

	state, err := p.api.GetServerState(ctx)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, context.Canceled) {
			p.reportError(err)
		}
		p.setState(StatePolling)
		return ctx.Err() == nil
	}

	// The attempt budget refreshes only when the snapshot carries a
	// revision to adopt. A revision-less snapshot leaves the gap in place,
	// and an unbounded budget would let such a server resync forever.
	p.mu.Lock()
	if state.Revision != nil {
		p.revision = *state.Revision
		p.resyncAttempts = 0
	}
	p.state = StatePolling
	p.mu.Unlock()

	p.deliver(ctx, Event{Response: state, Snapshot: true})
	return true
}

// deliver blocks until the event is consumed or the context is cancelled.
// Blocking keeps emission order intact; events are never dropped or
// coalesced.
func (p *Poller) deliver(ctx context.Context, ev Event) {
	select {
	case p.events <- ev:
	case <-ctx.Done():
	}
}

func (p *Poller) reportError(err error) {
	select {
	case p.errs <- err:
	default:
		p.logger.Warn().Err(err).Msg("error channel full, dropping poll error")
	}
}

func (p *Poller) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (p *Poller) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
