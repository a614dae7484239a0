package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/beacheats/beachsync/internal/cache"
	"github.com/beacheats/beachsync/internal/logging"
	"github.com/beacheats/beachsync/internal/notify"
	"github.com/beacheats/beachsync/internal/remote"
)

func newTestChannel(t *testing.T, rs remote.Store) *Channel {
	t.Helper()
	log := logging.Discard("test")
	c, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	n, err := notify.New(c.Root(), log)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { n.Close() })
	return New("susurros", "orders", Deps{
		Cache: c, Notifier: n, Remote: rs, Log: log, Poll: 25 * time.Millisecond,
	})
}

func waitForUpdate(t *testing.T, updates <-chan Update, ok func(Update) bool) Update {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case u := <-updates:
			if ok(u) {
				return u
			}
		case <-deadline:
			t.Fatal("no matching update before deadline")
		}
	}
}

func TestSubscribeDeliversImmediatelyWhenSlotEmpty(t *testing.T) {
	ch := newTestChannel(t, nil)

	updates := make(chan Update, 16)
	stop := ch.Subscribe(context.Background(), func(u Update) { updates <- u })
	defer stop()

	u := waitForUpdate(t, updates, func(Update) bool { return true })
	if u.OK || u.FromRemote {
		t.Fatalf("empty slot must deliver OK=false local update, got %+v", u)
	}
}

func TestSubscriberSeesOwnPublish(t *testing.T) {
	ch := newTestChannel(t, nil)

	updates := make(chan Update, 16)
	stop := ch.Subscribe(context.Background(), func(u Update) { updates <- u })
	defer stop()

	ch.Publish(context.Background(), []byte(`{"v":1}`), nil)

	waitForUpdate(t, updates, func(u Update) bool {
		return u.OK && string(u.Raw) == `{"v":1}`
	})
}

func TestPublishWakesOtherSubscriber(t *testing.T) {
	log := logging.Discard("test")
	c, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	n, err := notify.New(c.Root(), log)
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()

	deps := Deps{Cache: c, Notifier: n, Log: log, Poll: time.Minute}
	writer := New("susurros", "orders", deps)
	reader := New("susurros", "orders", deps)

	updates := make(chan Update, 16)
	stop := reader.Subscribe(context.Background(), func(u Update) { updates <- u })
	defer stop()

	// Drain the initial delivery, then publish from the other channel. The
	// poll interval is a minute, so only the notifier wake can carry this.
	waitForUpdate(t, updates, func(Update) bool { return true })
	writer.Publish(context.Background(), []byte(`{"v":2}`), nil)

	waitForUpdate(t, updates, func(u Update) bool {
		return u.OK && string(u.Raw) == `{"v":2}`
	})
}

func TestLoadAfterPublishAndClear(t *testing.T) {
	ch := newTestChannel(t, nil)

	if _, ok := ch.Load(); ok {
		t.Fatal("fresh channel must load nothing")
	}

	ch.Publish(context.Background(), []byte(`[1,2,3]`), nil)
	raw, ok := ch.Load()
	if !ok || string(raw) != `[1,2,3]` {
		t.Fatalf("load after publish = %q, %v", raw, ok)
	}

	ch.Clear(context.Background())
	if _, ok := ch.Load(); ok {
		t.Fatal("load after clear must report an empty slot")
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	ch := newTestChannel(t, nil)

	stop := ch.Subscribe(context.Background(), func(Update) {})
	stop()
	stop()
	stop()
}

func TestUnsubscribeFromInsideCallback(t *testing.T) {
	ch := newTestChannel(t, nil)

	stopCh := make(chan func(), 1)
	done := make(chan struct{})
	stop := ch.Subscribe(context.Background(), func(Update) {
		select {
		case stop := <-stopCh:
			stop()
			close(done)
		default: // a delivery can land before the handle is wired up
		}
	})
	stopCh <- stop

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("unsubscribing from inside the callback deadlocked")
	}
}

func TestNoDeliveriesAfterUnsubscribe(t *testing.T) {
	ch := newTestChannel(t, nil)

	var mu sync.Mutex
	stopped := false
	stop := ch.Subscribe(context.Background(), func(Update) {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			t.Error("delivery after unsubscribe")
		}
	})

	time.Sleep(60 * time.Millisecond)
	stop()

	// Let any delivery already past the cancellation check drain.
	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	stopped = true
	mu.Unlock()

	ch.Publish(context.Background(), []byte(`{}`), nil)
	time.Sleep(60 * time.Millisecond)
}

// pushStore is a scriptable in-memory remote store.
type pushStore struct {
	mu         sync.Mutex
	onSnapshot func([]remote.Document)
	onError    func(error)
	sets       int
}

func (p *pushStore) SetDocument(_ context.Context, _, _, _ string, _ map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sets++
	return nil
}

func (p *pushStore) UpdateFields(context.Context, string, string, string, map[string]interface{}) error {
	return nil
}

func (p *pushStore) Subscribe(_ context.Context, _, _ string, onSnapshot func([]remote.Document), onError func(error)) (func(), error) {
	p.mu.Lock()
	p.onSnapshot = onSnapshot
	p.onError = onError
	p.mu.Unlock()
	return func() {}, nil
}

func (p *pushStore) Clear(context.Context, string, string) error { return nil }
func (p *pushStore) Close()                                      {}

func (p *pushStore) push(docs []remote.Document) {
	p.mu.Lock()
	fn := p.onSnapshot
	p.mu.Unlock()
	if fn != nil {
		fn(docs)
	}
}

func (p *pushStore) fail(err error) {
	p.mu.Lock()
	fn := p.onError
	p.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

func TestRemotePushReachesSubscriber(t *testing.T) {
	rs := &pushStore{}
	ch := newTestChannel(t, rs)

	updates := make(chan Update, 16)
	stop := ch.Subscribe(context.Background(), func(u Update) { updates <- u })
	defer stop()

	rs.push([]remote.Document{{ID: "SC123456ABC", Data: map[string]interface{}{"status": "new"}}})

	u := waitForUpdate(t, updates, func(u Update) bool { return u.FromRemote })
	if len(u.Docs) != 1 || u.Docs[0].ID != "SC123456ABC" {
		t.Fatalf("unexpected remote docs: %+v", u.Docs)
	}
}

func TestRemoteModeStillReadsOwnWrites(t *testing.T) {
	rs := &pushStore{}
	ch := newTestChannel(t, rs)

	updates := make(chan Update, 16)
	stop := ch.Subscribe(context.Background(), func(u Update) { updates <- u })
	defer stop()

	ch.Publish(context.Background(), []byte(`{"v":3}`), nil)

	waitForUpdate(t, updates, func(u Update) bool {
		return !u.FromRemote && u.OK && string(u.Raw) == `{"v":3}`
	})
}

func TestListenerFailureDemotesToLocal(t *testing.T) {
	rs := &pushStore{}
	ch := newTestChannel(t, rs)

	updates := make(chan Update, 16)
	stop := ch.Subscribe(context.Background(), func(u Update) { updates <- u })
	defer stop()

	if !ch.RemoteAvailable() {
		t.Fatal("remote must be available before the failure")
	}

	ch.Publish(context.Background(), []byte(`{"v":4}`), nil)
	rs.fail(errors.New("stream broken"))

	if ch.RemoteAvailable() {
		t.Fatal("listener failure must demote the channel")
	}

	// The local loop keeps serving the same data after demotion.
	waitForUpdate(t, updates, func(u Update) bool {
		return !u.FromRemote && u.OK && string(u.Raw) == `{"v":4}`
	})
}

func TestPublishMirrorsDocsToRemote(t *testing.T) {
	rs := &pushStore{}
	ch := newTestChannel(t, rs)

	ch.Publish(context.Background(), []byte(`[{}]`), map[string]map[string]interface{}{
		"SC123456ABC": {"status": "new"},
	})

	deadline := time.After(2 * time.Second)
	for {
		rs.mu.Lock()
		sets := rs.sets
		rs.mu.Unlock()
		if sets == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("remote saw %d writes, want 1", sets)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
