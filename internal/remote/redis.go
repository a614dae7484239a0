package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/beacheats/beachsync/internal/models"
)

// redisStore keeps one hash per tenant+domain collection, field = record
// id, value = JSON document. A pub/sub channel with the same name carries
// the change push; subscribers re-read the hash on every message.
type redisStore struct {
	client *redis.Client
}

func dialRedis(ctx context.Context, cfg models.RemoteConfig) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	probe, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(probe).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &redisStore{client: client}, nil
}

func redisKey(tenant, domain string) string {
	return fmt.Sprintf("beachsync:%s:%s", tenant, domain)
}

func (s *redisStore) SetDocument(ctx context.Context, tenant, domain, id string, doc map[string]interface{}) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	key := redisKey(tenant, domain)
	if err := s.client.HSet(ctx, key, id, b).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, key, id).Err()
}

func (s *redisStore) UpdateFields(ctx context.Context, tenant, domain, id string, fields map[string]interface{}) error {
	key := redisKey(tenant, domain)
	raw, err := s.client.HGet(ctx, key, id).Result()
	if err != nil {
		return err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return err
	}
	for k, v := range fields {
		doc[k] = v
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, key, id, b).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, key, id).Err()
}

func (s *redisStore) Subscribe(ctx context.Context, tenant, domain string, onSnapshot func([]Document), onError func(error)) (func(), error) {
	key := redisKey(tenant, domain)
	pubsub := s.client.Subscribe(ctx, key)
	// Force the subscription onto the wire before the initial snapshot so
	// no change can slip between the two.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	go func() {
		docs, err := s.snapshot(subCtx, key)
		if err != nil {
			onError(err)
			return
		}
		onSnapshot(docs)

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					if subCtx.Err() == nil {
						onError(fmt.Errorf("redis subscription closed"))
					}
					return
				}
				docs, err := s.snapshot(subCtx, key)
				if err != nil {
					if subCtx.Err() == nil {
						onError(err)
					}
					return
				}
				onSnapshot(docs)
			}
		}
	}()

	detach := func() {
		cancel()
		pubsub.Close()
	}
	return detach, nil
}

func (s *redisStore) snapshot(ctx context.Context, key string) ([]Document, error) {
	raw, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(raw))
	for id, val := range raw {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(val), &data); err != nil {
			continue // a corrupt record never poisons the snapshot
		}
		docs = append(docs, Document{ID: id, Data: data})
	}
	return docs, nil
}

func (s *redisStore) Clear(ctx context.Context, tenant, domain string) error {
	key := redisKey(tenant, domain)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, key, "*").Err()
}

func (s *redisStore) Close() {
	s.client.Close()
}
