package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avolkov/go-tether-sync/internal/adapter"
	"github.com/avolkov/go-tether-sync/internal/config"
	"github.com/avolkov/go-tether-sync/internal/discovery"
	"github.com/avolkov/go-tether-sync/internal/gallery"
	"github.com/avolkov/go-tether-sync/internal/imagecache"
	"github.com/avolkov/go-tether-sync/internal/logger"
	"github.com/avolkov/go-tether-sync/internal/poller"
	"github.com/avolkov/go-tether-sync/models"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// connectAttempts is the total number of connection attempts before giving
// up, spaced connectRetryDelay apart. Authentication failures are terminal
// and never retried.
const (
	connectAttempts   = 5
	connectRetryDelay = time.Second
)

// App owns one client connection lifecycle: connect (with bounded retries),
// poll, dispatch change batches into the gallery, and tear everything down
// on disconnect or terminal sync failure.
type App struct {
	api      adapter.SessionAPI
	poller   *poller.Poller
	gallery  *gallery.Engine
	cache    *imagecache.Cache
	provider discovery.Provider
	logger   *logger.Logger

	// Tunable for tests; defaults applied in NewApp.
	connectAttempts uint64
	connectDelay    time.Duration

	mu         sync.Mutex
	state      ConnState
	lastErr    error
	dispatchWG sync.WaitGroup
	cancel     context.CancelFunc
}

// NewApp assembles the client from its components. The gallery must already
// be wired to the cache; NewApp additionally registers a notifier that warms
// the thumbnail tier for freshly added variants.
func NewApp(api adapter.SessionAPI, p *poller.Poller, g *gallery.Engine, cache *imagecache.Cache, provider discovery.Provider, log *logger.Logger) *App {
	return &App{
		api:             api,
		poller:          p,
		gallery:         g,
		cache:           cache,
		provider:        provider,
		logger:          log,
		connectAttempts: connectAttempts,
		connectDelay:    connectRetryDelay,
		state:           StateDisconnected,
	}
}

// State returns the current connection state.
func (a *App) State() ConnState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// LastError returns the error that moved the app into StateFailed, if any.
func (a *App) LastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Connect establishes a session and starts polling. Up to connectAttempts
// attempts are made with a fixed delay; ErrAuthenticationFailed aborts
// immediately so the owner can re-prompt for credentials.
func (a *App) Connect(ctx context.Context, host string, port int, password string) error {
	a.setState(StateConnecting, nil)

	backoff := retry.WithMaxRetries(a.connectAttempts-1, retry.NewConstant(a.connectDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := a.api.Connect(ctx, host, port, password)
		if err == nil {
			return nil
		}
		if errors.Is(err, adapter.ErrAuthenticationFailed) {
			return err
		}
		a.logger.Warn().Str("host", host).Int("port", port).Err(err).Msg("connection attempt failed")
		return retry.RetryableError(err)
	})
	if err != nil {
		a.setState(StateFailed, err)
		return fmt.Errorf("connect to %s:%d: %w", host, port, err)
	}

	a.startSession(ctx)
	return nil
}

// ConnectFirstAvailable tries each discovery candidate in order until one
// accepts the session.
func (a *App) ConnectFirstAvailable(ctx context.Context, password string) error {
	candidates, err := a.provider.Candidates(ctx)
	if err != nil {
		return fmt.Errorf("discover servers: %w", err)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("discover servers: %w", adapter.ErrConnectionFailed)
	}

	for _, cand := range candidates {
		if err = a.Connect(ctx, cand.Host, cand.Port, password); err == nil {
			return nil
		}
		if errors.Is(err, adapter.ErrAuthenticationFailed) {
			return err
		}
		a.logger.Warn().Str("candidate", cand.Address()).Err(err).Msg("candidate rejected")
	}

	return err
}

// Disconnect stops polling, clears the session, resets the collection, and
// empties both cache tiers. Idempotent.
func (a *App) Disconnect() {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.mu.Unlock()

	a.poller.Stop()
	if cancel != nil {
		cancel()
	}
	a.dispatchWG.Wait()

	a.api.Disconnect()
	a.gallery.Reset()
	a.cache.Clear()
	a.setState(StateDisconnected, nil)
}

// RefreshFullState re-adopts the authoritative snapshot out of band.
func (a *App) RefreshFullState(ctx context.Context) error {
	return a.poller.RequestFullState(ctx)
}

// RateVariant pushes a star rating for the variant. Best effort: the server
// echoes the change back through the change stream, so failures are only
// logged and local state is untouched.
func (a *App) RateVariant(ctx context.Context, id uuid.UUID, rating int) {
	v, ok := a.gallery.Variant(id)
	if !ok {
		return
	}
	if !a.gallery.CanSetRating() {
		a.logger.Debug().Str("variant", id.String()).Msg("rating not permitted by server")
		return
	}

	if err := a.api.SetRating(ctx, v, rating); err != nil {
		a.logger.Warn().Str("variant", id.String()).Err(err).Msg("set rating failed")
	}
}

// TagVariant pushes a color tag for the variant. Same best-effort contract
// as RateVariant.
func (a *App) TagVariant(ctx context.Context, id uuid.UUID, tag models.ColorTag) {
	v, ok := a.gallery.Variant(id)
	if !ok {
		return
	}
	if !a.gallery.CanSetColorTag() {
		a.logger.Debug().Str("variant", id.String()).Msg("color tag not permitted by server")
		return
	}

	if err := a.api.SetColorTag(ctx, v, tag); err != nil {
		a.logger.Warn().Str("variant", id.String()).Err(err).Msg("set color tag failed")
	}
}

// Run connects using the configured server (falling back to discovery
// candidates when no host is set) and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context, serverCfg config.ClientServer) error {
	var err error
	if serverCfg.Host != "" {
		err = a.Connect(ctx, serverCfg.Host, serverCfg.Port, serverCfg.Password)
	} else {
		err = a.ConnectFirstAvailable(ctx, serverCfg.Password)
	}
	if err != nil {
		return err
	}

	<-ctx.Done()
	a.Disconnect()
	return nil
}

func (a *App) startSession(ctx context.Context) {
	dispatchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	a.poller.Start(dispatchCtx)

	a.dispatchWG.Add(1)
	go func() {
		defer a.dispatchWG.Done()
		a.dispatch(dispatchCtx)
	}()

	a.setState(StateConnected, nil)
}

// dispatch is the single writer feeding the merge engine. It serializes all
// Apply calls and reacts to poll errors and the terminal sync failure.
func (a *App) dispatch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-a.poller.Events():
			if ev.Snapshot {
				a.gallery.ApplySnapshot(ev.Response)
			} else {
				a.gallery.Apply(ev.Response)
			}

		case err := <-a.poller.Errors():
			a.logger.Warn().Err(err).Msg("poll error, loop continues")

		case <-a.poller.SyncFailed():
			a.logger.Error().Msg("synchronization failed, explicit reconnect required")
			a.api.Disconnect()
			a.gallery.Reset()
			a.cache.Clear()
			a.setState(StateFailed, adapter.ErrSyncFailed)
			return
		}
	}
}

func (a *App) setState(s ConnState, err error) {
	a.mu.Lock()
	a.state = s
	a.lastErr = err
	a.mu.Unlock()
}
