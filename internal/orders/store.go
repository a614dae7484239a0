package orders

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/beacheats/beachsync/internal/logging"
	"github.com/beacheats/beachsync/internal/models"
	"github.com/beacheats/beachsync/internal/syncer"
)

const (
	// dedupWindow collapses rapid repeated placements of a same-sized order
	// into one record. A guest legitimately ordering twice inside the
	// window gets collapsed too.
	dedupWindow = 5 * time.Second

	// localCap bounds the device-local order list, newest first.
	localCap = 20

	// remoteCap mirrors the backend query limit.
	remoteCap = 50
)

// Store owns order creation, duplicate suppression and status transitions
// for one resort. All persistence routes through its sync channel; none of
// its methods fail on backend trouble.
type Store struct {
	ch     *syncer.Channel
	prefix string
	log    *logging.Logger

	now func() time.Time

	mu sync.Mutex // serializes read-modify-write of the order list
}

func New(ch *syncer.Channel, prefix string, log *logging.Logger) *Store {
	return &Store{ch: ch, prefix: prefix, log: log, now: time.Now}
}

// Place stores a new order and returns it with its number assigned. A call
// that looks like a retry of the previous placement (same item count, less
// than five seconds after it) returns the already-stored order instead of
// creating a second record.
func (s *Store) Place(ctx context.Context, order models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.PlacedAt.IsZero() {
		order.PlacedAt = s.now()
	}
	if order.OrderNumber == "" {
		order.OrderNumber = s.newOrderNumber()
	}
	order.Status = models.StatusNew

	existing := s.load()
	if len(existing) > 0 {
		recent := existing[0]
		// Elapsed time is measured from the clock, not the incoming
		// timestamp: a caller-dated order must not look "recent" just
		// because its PlacedAt sits before the newest stored one.
		if s.now().Sub(recent.PlacedAt) < dedupWindow && len(recent.Items) == len(order.Items) {
			s.log.Printf("duplicate placement within %s collapsed into %s", dedupWindow, recent.OrderNumber)
			return recent
		}
	}

	existing = append([]models.Order{order}, existing...)
	if len(existing) > localCap {
		existing = existing[:localCap]
	}
	s.publish(ctx, existing, map[string]map[string]interface{}{
		order.OrderNumber: orderDoc(order),
	})
	return order
}

// UpdateStatus advances an order one step. Anything other than the single
// legal next status (a skip, a regression, a repeat of the terminal state
// or an unknown order) is silently ignored.
func (s *Store) UpdateStatus(ctx context.Context, orderNumber string, newStatus models.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	for i, o := range list {
		if o.OrderNumber != orderNumber {
			continue
		}
		if o.Status == models.StatusDone || newStatus != models.NextStatus(o.Status) {
			return
		}
		list[i].Status = newStatus
		s.publish(ctx, list, nil)
		s.ch.UpdateRemoteFields(ctx, orderNumber, map[string]interface{}{"status": string(newStatus)})
		return
	}
}

// ClearAll irreversibly empties the resort's order set in both tiers.
// Operator maintenance only.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ch.Clear(ctx)
}

// Subscribe delivers the normalized order list, newest first, until the
// returned function is called. Records missing an order number or a valid
// item list are dropped, later duplicates of a number lose to the first
// seen, and a missing status defaults to "new".
func (s *Store) Subscribe(ctx context.Context, fn func([]models.Order)) func() {
	return s.ch.Subscribe(ctx, func(u syncer.Update) {
		fn(normalize(ordersFrom(u)))
	})
}

// Snapshot returns the current normalized order list from the local tier,
// newest first.
func (s *Store) Snapshot() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// RemoteAvailable reports whether this session still has a live remote
// tier. Diagnostic only.
func (s *Store) RemoteAvailable() bool { return s.ch.RemoteAvailable() }

func (s *Store) publish(ctx context.Context, list []models.Order, docs map[string]map[string]interface{}) {
	raw, err := json.Marshal(list)
	if err != nil {
		s.log.Warnf("marshal order list failed: %v", err)
		return
	}
	s.ch.Publish(ctx, raw, docs)
}

// load reads the local snapshot, already normalized, newest first.
func (s *Store) load() []models.Order {
	raw, ok := s.ch.Load()
	if !ok {
		return nil
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		s.log.Warnf("corrupt local order list dropped: %v", err)
		return nil
	}
	return normalize(decodeRecords(records))
}

func ordersFrom(u syncer.Update) []models.Order {
	if u.FromRemote {
		records := make([]map[string]interface{}, 0, len(u.Docs))
		for _, d := range u.Docs {
			records = append(records, d.Data)
		}
		list := decodeRecords(records)
		sort.SliceStable(list, func(i, j int) bool { return list[i].PlacedAt.After(list[j].PlacedAt) })
		if len(list) > remoteCap {
			list = list[:remoteCap]
		}
		return list
	}
	if !u.OK {
		return nil
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(u.Raw, &records); err != nil {
		return nil
	}
	return decodeRecords(records)
}

// decodeRecords turns loosely-typed persisted records into Orders,
// dropping anything without an order number or a well-formed item list.
func decodeRecords(records []map[string]interface{}) []models.Order {
	out := make([]models.Order, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		num, _ := rec["orderNumber"].(string)
		if num == "" {
			continue
		}
		if _, ok := rec["items"].([]interface{}); !ok {
			continue
		}
		var o models.Order
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
			Result:     &o,
		})
		if err != nil || dec.Decode(rec) != nil {
			continue
		}
		out = append(out, o)
	}
	return out
}

// normalize dedupes by order number (first seen wins) and defaults a
// missing status, so partially-written records stay readable.
func normalize(list []models.Order) []models.Order {
	seen := make(map[string]bool, len(list))
	out := make([]models.Order, 0, len(list))
	for _, o := range list {
		if seen[o.OrderNumber] {
			continue
		}
		seen[o.OrderNumber] = true
		if o.Status == "" {
			o.Status = models.StatusNew
		}
		out = append(out, o)
	}
	return out
}

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newOrderNumber builds <prefix><six time-derived digits><three random
// characters>. The random tail keeps two devices placing in the same
// millisecond from colliding.
func (s *Store) newOrderNumber() string {
	digits := s.now().UnixMilli() % 1_000_000
	buf := make([]byte, 0, len(s.prefix)+9)
	buf = append(buf, s.prefix...)
	for div := int64(100_000); div > 0; div /= 10 {
		buf = append(buf, byte('0'+(digits/div)%10))
	}
	for i := 0; i < 3; i++ {
		buf = append(buf, suffixAlphabet[rand.Intn(len(suffixAlphabet))])
	}
	return string(buf)
}

func orderDoc(o models.Order) map[string]interface{} {
	raw, err := json.Marshal(o)
	if err != nil {
		return nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc
}
