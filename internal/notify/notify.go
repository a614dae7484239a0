package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/lucsky/cuid"

	"github.com/beacheats/beachsync/internal/logging"
)

// Notifier is the cross-process wake-up channel. A publisher in one
// process touches a marker file under the shared cache root; watchers in
// every other process on the device see the write and wake their
// subscribers. Delivery is best effort only: the sync channel's poll is
// the correctness backstop, the notifier just trims perceived latency.
type Notifier struct {
	origin  string // this process's id, so it can skip its own markers
	dir     string
	watcher *fsnotify.Watcher
	log     *logging.Logger

	mu     sync.Mutex
	subs   map[string]map[int]chan struct{}
	nextID int
	closed bool
}

func New(cacheRoot string, log *logging.Logger) (*Notifier, error) {
	dir := filepath.Join(cacheRoot, ".events")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create events dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	n := &Notifier{
		origin:  cuid.New(),
		dir:     dir,
		watcher: watcher,
		log:     log,
		subs:    make(map[string]map[int]chan struct{}),
	}
	go n.watch()
	return n, nil
}

func key(tenant, domain string) string { return tenant + "--" + domain }

// Notify wakes subscribers for a tenant+domain. In-process subscribers are
// signalled directly; other processes find out through the marker file.
// Failures are swallowed; a missed wake only costs one poll interval.
func (n *Notifier) Notify(tenant, domain string) {
	n.fanOut(key(tenant, domain))

	marker := filepath.Join(n.dir, key(tenant, domain))
	if err := os.WriteFile(marker, []byte(n.origin), 0o644); err != nil {
		n.log.Warnf("notify marker write failed: %v", err)
	}
}

// Subscribe registers for wake events on a tenant+domain. The returned
// channel has a buffer of one, so a burst of wakes coalesces into a single
// pending signal. Cancel is idempotent.
func (n *Notifier) Subscribe(tenant, domain string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	k := key(tenant, domain)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ch, func() {}
	}
	n.nextID++
	id := n.nextID
	if n.subs[k] == nil {
		n.subs[k] = make(map[int]chan struct{})
	}
	n.subs[k][id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			if m := n.subs[k]; m != nil {
				delete(m, id)
				if len(m) == 0 {
					delete(n.subs, k)
				}
			}
			n.mu.Unlock()
		})
	}
	return ch, cancel
}

func (n *Notifier) Close() error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	return n.watcher.Close()
}

func (n *Notifier) watch() {
	for {
		select {
		case ev, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(ev.Name)
			if strings.HasPrefix(name, ".") {
				continue
			}
			if origin, err := os.ReadFile(ev.Name); err == nil && string(origin) == n.origin {
				continue
			}
			n.fanOut(name)
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
			n.log.Warnf("notifier watch error: %v", err)
		}
	}
}

func (n *Notifier) fanOut(k string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[k] {
		select {
		case ch <- struct{}{}:
		default: // subscriber already has a pending wake
		}
	}
}
