// Package redis provides a Redis-backed catalog source, letting a build farm
// share one curated material catalog across pipeline workers.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "remat:material:"

// Source implements ports.MutableCatalogSource on top of Redis. Definitions
// are stored as JSON values under a key prefix.
type Source struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Source.
type Option func(*Source)

// WithPrefix overrides the key prefix (default "remat:material:").
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// WithTTL sets an expiration on stored definitions. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Source) {
		s.ttl = ttl
	}
}

// NewFromClient creates a Source using an existing Redis client.
func NewFromClient(client *backend.Client, opts ...Option) *Source {
	s := &Source{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) key(id string) string {
	return s.prefix + id
}

// Put stores the definition as JSON.
func (s *Source) Put(ctx context.Context, def domain.Definition) error {
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition %q: %w", def.ID, err)
	}
	if err := s.client.Set(ctx, s.key(def.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get retrieves a definition by item id.
func (s *Source) Get(ctx context.Context, id string) (domain.Definition, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return domain.Definition{}, domain.ErrMaterialNotFound
	}
	if err != nil {
		return domain.Definition{}, fmt.Errorf("redis get: %w", err)
	}

	var def domain.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return domain.Definition{}, fmt.Errorf("unmarshal definition %q: %w", id, err)
	}
	return def, nil
}

// Delete removes a definition. Unknown ids are ignored.
func (s *Source) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Load scans the key prefix and materializes the full catalog.
func (s *Source) Load(ctx context.Context) (*catalog.Catalog, error) {
	var defs []domain.Definition

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, backend.Nil) {
			// Expired between scan and get.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", iter.Val(), err)
		}

		var def domain.Definition
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", iter.Val(), err)
		}
		defs = append(defs, def)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}

	return catalog.New(defs...), nil
}
