package remote

import (
	"context"
	"time"

	"github.com/beacheats/beachsync/internal/logging"
	"github.com/beacheats/beachsync/internal/models"
)

// Document is one record in a tenant+domain collection.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Store is the optional real-time backend. Every surface must keep working
// when no Store is configured or the configured one is unreachable; the
// sync channel treats a nil Store as "local-only session".
type Store interface {
	// SetDocument writes a whole record.
	SetDocument(ctx context.Context, tenant, domain, id string, doc map[string]interface{}) error
	// UpdateFields merges individual fields into an existing record.
	UpdateFields(ctx context.Context, tenant, domain, id string, fields map[string]interface{}) error
	// Subscribe pushes full collection snapshots until detached. Listener
	// failures surface through onError exactly once; after that the
	// subscription is dead and the caller decides what to fall back to.
	Subscribe(ctx context.Context, tenant, domain string, onSnapshot func([]Document), onError func(error)) (func(), error)
	// Clear removes every record in the tenant+domain collection.
	Clear(ctx context.Context, tenant, domain string) error
	Close()
}

// connectTimeout bounds only the startup probe. Operational calls carry no
// deadline; a hung remote write never blocks the guest flow because the
// local tier has already committed.
const connectTimeout = 3 * time.Second

// Connect feature-detects the configured backend once at startup. Any
// failure (unknown driver, unreachable host, bad credentials) yields a
// nil Store and a logged warning, never an error the caller must handle.
func Connect(ctx context.Context, cfg models.RemoteConfig, log *logging.Logger) Store {
	switch cfg.Driver {
	case "", "none":
		return nil
	case "redis":
		s, err := dialRedis(ctx, cfg)
		if err != nil {
			log.Warnf("redis remote store unavailable, running local-only: %v", err)
			return nil
		}
		log.Printf("remote store connected: redis %s", cfg.Addr)
		return s
	case "postgres":
		s, err := dialPostgres(ctx, cfg)
		if err != nil {
			log.Warnf("postgres remote store unavailable, running local-only: %v", err)
			return nil
		}
		log.Printf("remote store connected: postgres")
		return s
	default:
		log.Warnf("unknown remote driver %q, running local-only", cfg.Driver)
		return nil
	}
}
