package menuconfig

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/beacheats/beachsync/internal/cache"
	"github.com/beacheats/beachsync/internal/catalog"
	"github.com/beacheats/beachsync/internal/logging"
	"github.com/beacheats/beachsync/internal/models"
	"github.com/beacheats/beachsync/internal/notify"
	"github.com/beacheats/beachsync/internal/syncer"
)

func newTestMenuStore(t *testing.T) *Store {
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

	ch := syncer.New("susurros", "menu-config", syncer.Deps{
		Cache: c, Notifier: n, Log: log, Poll: 25 * time.Millisecond,
	})
	return New(ch, catalog.Defaults(catalog.DefaultResortID), log)
}

func TestCurrentWithoutSaveReturnsDefaults(t *testing.T) {
	s := newTestMenuStore(t)
	if !reflect.DeepEqual(s.Current(), catalog.Defaults(catalog.DefaultResortID)) {
		t.Fatal("a store that never saved must serve the defaults")
	}
}

func TestSaveThenCurrentRoundTrips(t *testing.T) {
	s := newTestMenuStore(t)

	live := s.Current()
	live.Proteins[0].Available = false
	live.Visibility["postres"] = false

	saved := s.Save(context.Background(), live)
	if saved.Proteins[0].Available {
		t.Fatal("save dropped the availability override")
	}

	got := s.Current()
	if got.Proteins[0].Available {
		t.Fatal("availability override lost on reload")
	}
	if got.Visibility["postres"] {
		t.Fatal("visibility override lost on reload")
	}
}

func TestSaveReanchorsPartialCatalog(t *testing.T) {
	s := newTestMenuStore(t)

	// A catalog missing whole sections must come back complete: absent
	// items read as "as default", never as deleted.
	partial := models.Catalog{
		Proteins: []models.Item{{ID: "chicken", Available: false}},
	}
	saved := s.Save(context.Background(), partial)

	def := catalog.Defaults(catalog.DefaultResortID)
	if len(saved.Proteins) != len(def.Proteins) {
		t.Fatalf("saved %d proteins, want the full %d", len(saved.Proteins), len(def.Proteins))
	}
	if len(saved.MenuItems) != len(def.MenuItems) {
		t.Fatal("save must restore sections the input omitted")
	}
	for _, p := range saved.Proteins {
		if p.ID == "chicken" && p.Available {
			t.Fatal("override from the partial input was lost")
		}
		if p.ID == "fish" && !p.Available {
			t.Fatal("untouched default item was altered")
		}
	}
}

func TestSubscribeDeliversEffectiveCatalog(t *testing.T) {
	s := newTestMenuStore(t)

	live := s.Current()
	live.Addons[0].Price = 5.25
	s.Save(context.Background(), live)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	results := make(chan models.Catalog, 16)
	stop := s.Subscribe(ctx, func(c models.Catalog) {
		select {
		case results <- c:
		default:
		}
	})
	defer stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-results:
			if c.Addons[0].Price == 5.25 {
				return
			}
		case <-deadline:
			t.Fatal("subscriber never saw the price override")
		}
	}
}

func TestDecodeShareableDegradesToDefaults(t *testing.T) {
	s := newTestMenuStore(t)
	def := catalog.Defaults(catalog.DefaultResortID)

	for _, payload := range []string{"", "%%%bad%%%", "bm90LWpzb24"} {
		if got := s.DecodeShareable(payload); !reflect.DeepEqual(got, def) {
			t.Errorf("DecodeShareable(%q) must yield the defaults", payload)
		}
	}
}

func TestShareableLinkRoundTrip(t *testing.T) {
	s := newTestMenuStore(t)

	live := s.Current()
	live.Formats[0].Available = false
	live.MenuItems["postres"][0].Price = 6

	payload := s.EncodeShareable(live)
	if payload == "" {
		t.Fatal("encode produced an empty payload for a real override set")
	}

	got := s.DecodeShareable(payload)
	if got.Formats[0].Available {
		t.Fatal("availability override lost in the link round trip")
	}
	if got.MenuItems["postres"][0].Price != 6 {
		t.Fatal("price override lost in the link round trip")
	}
}

func TestCorruptLocalCatalogFallsBackToDefaults(t *testing.T) {
	s := newTestMenuStore(t)
	s.ch.Publish(context.Background(), []byte(`{not json`), nil)

	if !reflect.DeepEqual(s.Current(), catalog.Defaults(catalog.DefaultResortID)) {
		t.Fatal("corrupt stored catalog must resolve to the defaults")
	}
}
