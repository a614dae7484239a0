package menuconfig

import (
	"context"
	"encoding/json"
	"time"

	"github.com/beacheats/beachsync/internal/logging"
	"github.com/beacheats/beachsync/internal/models"
	"github.com/beacheats/beachsync/internal/syncer"
)

// menuDocID is the single remote document a resort's menu lives in.
const menuDocID = "menu"

// Store owns the editable menu overrides for one resort. It persists the
// fully merged catalog rather than the diff, so every reader gets defaults
// and overrides already resolved; only the shareable-link path carries the
// compact diff form.
type Store struct {
	ch       *syncer.Channel
	defaults models.Catalog
	log      *logging.Logger
}

func New(ch *syncer.Channel, defaults models.Catalog, log *logging.Logger) *Store {
	return &Store{ch: ch, defaults: defaults, log: log}
}

// Save persists the live catalog. The input is re-anchored to the static
// defaults first (diff, then merge back) so a partially-formed catalog can
// never be written and new default items always show up.
func (s *Store) Save(ctx context.Context, live models.Catalog) models.Catalog {
	merged := Merge(s.defaults, Diff(s.defaults, live))

	raw, err := json.Marshal(merged)
	if err != nil {
		s.log.Warnf("marshal catalog failed: %v", err)
		return merged
	}
	doc := catalogDoc(merged)
	doc["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	s.ch.Publish(ctx, raw, map[string]map[string]interface{}{menuDocID: doc})
	return merged
}

// Subscribe delivers the effective catalog on every change until the
// returned function is called. Readers always get a complete catalog; a
// missing or unreadable override resolves to the defaults.
func (s *Store) Subscribe(ctx context.Context, fn func(models.Catalog)) func() {
	return s.ch.Subscribe(ctx, func(u syncer.Update) {
		fn(s.catalogFrom(u))
	})
}

// Current returns the effective catalog right now from the local tier.
func (s *Store) Current() models.Catalog {
	raw, ok := s.ch.Load()
	if !ok {
		return s.defaults
	}
	return s.normalizeRaw(raw)
}

// EncodeShareable renders the catalog's overrides as a link payload.
func (s *Store) EncodeShareable(live models.Catalog) string {
	enc, err := EncodeDiff(Diff(s.defaults, live))
	if err != nil {
		s.log.Warnf("encode shareable failed: %v", err)
		return ""
	}
	return enc
}

// DecodeShareable reconstructs a catalog from a link payload. Any failure
// at any step degrades to the defaults rather than erroring, so a stale or
// mangled link still yields a usable menu.
func (s *Store) DecodeShareable(payload string) models.Catalog {
	if payload == "" {
		return s.defaults
	}
	d, err := DecodeDiff(payload)
	if err != nil {
		s.log.Warnf("undecodable share payload ignored: %v", err)
		return s.defaults
	}
	return Merge(s.defaults, d)
}

// RemoteAvailable reports whether this session still has a live remote
// tier. Diagnostic only.
func (s *Store) RemoteAvailable() bool { return s.ch.RemoteAvailable() }

func (s *Store) catalogFrom(u syncer.Update) models.Catalog {
	if u.FromRemote {
		for _, doc := range u.Docs {
			if doc.ID != menuDocID {
				continue
			}
			raw, err := json.Marshal(doc.Data)
			if err != nil {
				break
			}
			return s.normalizeRaw(raw)
		}
		return s.defaults
	}
	if !u.OK {
		return s.defaults
	}
	return s.normalizeRaw(u.Raw)
}

// normalizeRaw parses a stored catalog and re-anchors it to the defaults;
// garbage in means defaults out.
func (s *Store) normalizeRaw(raw []byte) models.Catalog {
	var stored models.Catalog
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.log.Warnf("corrupt stored catalog dropped: %v", err)
		return s.defaults
	}
	return Merge(s.defaults, Diff(s.defaults, stored))
}

func catalogDoc(c models.Catalog) map[string]interface{} {
	raw, err := json.Marshal(c)
	if err != nil {
		return map[string]interface{}{}
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return map[string]interface{}{}
	}
	return doc
}
