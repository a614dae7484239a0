package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beacheats/beachsync/internal/cache"
	"github.com/beacheats/beachsync/internal/logging"
	"github.com/beacheats/beachsync/internal/notify"
	"github.com/beacheats/beachsync/internal/remote"
)

const DefaultPollInterval = 2 * time.Second

// Update is one delivery to a subscriber. Exactly one of Docs/Raw is the
// payload: Docs when the remote store pushed a snapshot, Raw when the
// local tier produced it. Raw is nil with OK=false when the local slot has
// never been written.
type Update struct {
	FromRemote bool
	Docs       []remote.Document
	Raw        []byte
	OK         bool
}

// Deps carries the collaborators a channel runs on. Remote may be nil;
// everything else is required.
type Deps struct {
	Cache    *cache.Store
	Notifier *notify.Notifier
	Remote   remote.Store
	Log      *logging.Logger
	Poll     time.Duration
}

// Channel unifies the optional remote store and the local cache+notifier
// behind one publish/subscribe contract for a single tenant and domain.
// The local tier is written first and is authoritative for this session;
// remote trouble degrades the channel, it never surfaces to callers.
type Channel struct {
	tenant string
	domain string
	deps   Deps

	// remoteDown latches on the first listener failure and demotes the
	// whole channel to local-only for the rest of the session.
	remoteDown atomic.Bool
}

func New(tenant, domain string, deps Deps) *Channel {
	if deps.Poll <= 0 {
		deps.Poll = DefaultPollInterval
	}
	return &Channel{tenant: tenant, domain: domain, deps: deps}
}

func (c *Channel) Tenant() string { return c.tenant }
func (c *Channel) Domain() string { return c.domain }

// RemoteAvailable reports whether the remote tier is configured and has
// not been demoted this session. Diagnostic only; the public contract is
// identical either way.
func (c *Channel) RemoteAvailable() bool {
	return c.deps.Remote != nil && !c.remoteDown.Load()
}

// Load returns the current local snapshot.
func (c *Channel) Load() ([]byte, bool) {
	raw, ok, err := c.deps.Cache.Get(c.tenant, c.domain)
	if err != nil {
		c.deps.Log.Warnf("%s/%s: local read failed: %v", c.tenant, c.domain, err)
		return nil, false
	}
	return raw, ok
}

// Publish writes the full domain snapshot to the local cache, wakes other
// contexts, and mirrors the given documents to the remote store in the
// background. A local write failure is logged and swallowed, since storage
// of this tier must never block the user flow, and a remote failure never
// rolls the local write back.
func (c *Channel) Publish(ctx context.Context, snapshot []byte, docs map[string]map[string]interface{}) {
	if err := c.deps.Cache.Set(c.tenant, c.domain, snapshot); err != nil {
		c.deps.Log.Warnf("%s/%s: local write failed: %v", c.tenant, c.domain, err)
	}
	c.deps.Notifier.Notify(c.tenant, c.domain)

	if !c.RemoteAvailable() || len(docs) == 0 {
		return
	}
	go func() {
		for id, doc := range docs {
			if err := c.deps.Remote.SetDocument(ctx, c.tenant, c.domain, id, doc); err != nil {
				c.deps.Log.Warnf("%s/%s: remote write failed for %s: %v", c.tenant, c.domain, id, err)
			}
		}
	}()
}

// UpdateRemoteFields mirrors a field-level record update to the remote
// store. The local tier is the caller's responsibility (it rewrites the
// snapshot through Publish); this only keeps the remote copy in step.
func (c *Channel) UpdateRemoteFields(ctx context.Context, id string, fields map[string]interface{}) {
	if !c.RemoteAvailable() {
		return
	}
	go func() {
		if err := c.deps.Remote.UpdateFields(ctx, c.tenant, c.domain, id, fields); err != nil {
			c.deps.Log.Warnf("%s/%s: remote field update failed for %s: %v", c.tenant, c.domain, id, err)
		}
	}()
}

// Clear empties the domain in both tiers.
func (c *Channel) Clear(ctx context.Context) {
	if err := c.deps.Cache.Delete(c.tenant, c.domain); err != nil {
		c.deps.Log.Warnf("%s/%s: local clear failed: %v", c.tenant, c.domain, err)
	}
	c.deps.Notifier.Notify(c.tenant, c.domain)

	if !c.RemoteAvailable() {
		return
	}
	go func() {
		if err := c.deps.Remote.Clear(ctx, c.tenant, c.domain); err != nil {
			c.deps.Log.Warnf("%s/%s: remote clear failed: %v", c.tenant, c.domain, err)
		}
	}()
}

// Subscribe delivers snapshots until the returned function is called.
// With a healthy remote store, deliveries are remote pushes plus local
// wakes (so a subscriber sees its own publishes before the remote echo
// arrives). Without one, an immediate local delivery is followed by a
// poll-or-wake loop: timer tick and notifier wake funnel into one tick
// path, so a change set is delivered at least once, possibly more, never
// zero. The returned unsubscribe is idempotent.
func (c *Channel) Subscribe(ctx context.Context, fn func(Update)) func() {
	sub := &subscription{ch: c, fn: fn}
	sub.ctx, sub.cancel = context.WithCancel(ctx)

	wake, cancelWake := c.deps.Notifier.Subscribe(c.tenant, c.domain)
	sub.wake = wake
	sub.cancelWake = cancelWake

	if c.RemoteAvailable() {
		sub.startRemote()
	} else {
		sub.startLocal()
	}

	return sub.stop
}

type subscription struct {
	ch *Channel
	fn func(Update)

	ctx        context.Context
	cancel     context.CancelFunc
	wake       <-chan struct{}
	cancelWake func()

	// deliverMu serializes subscriber callbacks. It is separate from mu so
	// a callback can call its own unsubscribe without deadlocking.
	deliverMu sync.Mutex

	mu           sync.Mutex // guards mode switches and teardown state
	localRunning bool
	detachRemote func()
	stopOnce     sync.Once
}

func (s *subscription) deliver(u Update) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if s.ctx.Err() != nil {
		return
	}
	s.fn(u)
}

func (s *subscription) deliverLocal() {
	raw, ok := s.ch.Load()
	s.deliver(Update{Raw: raw, OK: ok})
}

func (s *subscription) startRemote() {
	detach, err := s.ch.deps.Remote.Subscribe(s.ctx, s.ch.tenant, s.ch.domain,
		func(docs []remote.Document) {
			s.deliver(Update{FromRemote: true, Docs: docs, OK: true})
		},
		func(err error) {
			s.ch.deps.Log.Warnf("%s/%s: remote listener failed, local-only for this session: %v",
				s.ch.tenant, s.ch.domain, err)
			s.ch.remoteDown.Store(true)
			s.startLocal()
		})
	if err != nil {
		s.ch.deps.Log.Warnf("%s/%s: remote subscribe failed, local-only for this session: %v",
			s.ch.tenant, s.ch.domain, err)
		s.ch.remoteDown.Store(true)
		s.startLocal()
		return
	}

	s.mu.Lock()
	s.detachRemote = detach
	s.mu.Unlock()

	// Local wakes ride alongside the remote push so this context reads its
	// own writes before the echo comes back.
	go func() {
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-s.wake:
				s.deliverLocal()
			}
		}
	}()
}

func (s *subscription) startLocal() {
	s.mu.Lock()
	if s.localRunning {
		s.mu.Unlock()
		return
	}
	s.localRunning = true
	s.mu.Unlock()

	go func() {
		s.deliverLocal()

		ticker := time.NewTicker(s.ch.deps.Poll)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
			case <-s.wake:
			}
			s.deliverLocal()
		}
	}()
}

// stop tears down the poll timer, the notifier listener and the remote
// listener, in any mode, safely more than once.
func (s *subscription) stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.cancelWake()
		s.mu.Lock()
		detach := s.detachRemote
		s.mu.Unlock()
		if detach != nil {
			detach()
		}
	})
}
