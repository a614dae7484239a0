package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beacheats/beachsync/internal/models"
)

const pgChannel = "beachsync_changes"

const pgSchema = `
	CREATE TABLE IF NOT EXISTS sync_documents (
		tenant     TEXT NOT NULL,
		domain     TEXT NOT NULL,
		id         TEXT NOT NULL,
		doc        JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (tenant, domain, id)
	)
`

// pgStore keeps one row per record in a single documents table and uses
// LISTEN/NOTIFY for the change push. The notification payload is just
// "tenant/domain"; subscribers re-query the collection on every hit.
type pgStore struct {
	pool *pgxpool.Pool
}

func dialPostgres(ctx context.Context, cfg models.RemoteConfig) (Store, error) {
	probe, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(probe, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(probe); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(probe, pgSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return &pgStore{pool: pool}, nil
}

func (s *pgStore) notify(ctx context.Context, tenant, domain string) error {
	_, err := s.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, pgChannel, tenant+"/"+domain)
	return err
}

func (s *pgStore) SetDocument(ctx context.Context, tenant, domain, id string, doc map[string]interface{}) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO sync_documents (tenant, domain, id, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant, domain, id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, tenant, domain, id, b)
	if err != nil {
		return err
	}
	return s.notify(ctx, tenant, domain)
}

func (s *pgStore) UpdateFields(ctx context.Context, tenant, domain, id string, fields map[string]interface{}) error {
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE sync_documents
		SET doc = doc || $4::jsonb, updated_at = now()
		WHERE tenant = $1 AND domain = $2 AND id = $3
	`, tenant, domain, id, b)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s/%s/%s not found", tenant, domain, id)
	}
	return s.notify(ctx, tenant, domain)
}

func (s *pgStore) Subscribe(ctx context.Context, tenant, domain string, onSnapshot func([]Document), onError func(error)) (func(), error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgChannel); err != nil {
		conn.Release()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer conn.Release()

		docs, err := s.snapshot(subCtx, tenant, domain)
		if err != nil {
			onError(err)
			return
		}
		onSnapshot(docs)

		want := tenant + "/" + domain
		for {
			n, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				if subCtx.Err() == nil {
					onError(err)
				}
				return
			}
			if n.Payload != want {
				continue
			}
			docs, err := s.snapshot(subCtx, tenant, domain)
			if err != nil {
				if subCtx.Err() == nil {
					onError(err)
				}
				return
			}
			onSnapshot(docs)
		}
	}()

	return cancel, nil
}

func (s *pgStore) snapshot(ctx context.Context, tenant, domain string) ([]Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, doc FROM sync_documents
		WHERE tenant = $1 AND domain = $2
		ORDER BY updated_at DESC
	`, tenant, domain)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var data map[string]interface{}
		if err := json.Unmarshal(raw, &data); err != nil {
			continue
		}
		docs = append(docs, Document{ID: id, Data: data})
	}
	return docs, rows.Err()
}

func (s *pgStore) Clear(ctx context.Context, tenant, domain string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sync_documents WHERE tenant = $1 AND domain = $2`, tenant, domain)
	if err != nil {
		return err
	}
	return s.notify(ctx, tenant, domain)
}

func (s *pgStore) Close() {
	s.pool.Close()
}
