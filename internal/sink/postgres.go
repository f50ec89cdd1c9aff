package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pintuSINGH2000/sraping/internal/event"
)

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
	namespace   text        NOT NULL,
	event_url   text        NOT NULL,
	name        text        NOT NULL,
	payload     jsonb       NOT NULL,
	updated_at  timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, event_url)
)`

// Last-write-wins on re-upsert: the second call for a key replaces the
// payload rather than being ignored.
const upsertEvent = `
INSERT INTO events (namespace, event_url, name, payload, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (namespace, event_url)
DO UPDATE SET name = EXCLUDED.name, payload = EXCLUDED.payload, updated_at = now()`

// Postgres stores canonical events in a single events table keyed by
// (namespace, event_url).
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, verifies the connection, and ensures the schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createEventsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring events table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Upsert writes one event. Each call is independent; there is no
// cross-event transaction.
func (p *Postgres) Upsert(ctx context.Context, namespace string, ev *event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if _, err := p.pool.Exec(ctx, upsertEvent, namespace, ev.EventURL, ev.Name, payload); err != nil {
		return fmt.Errorf("upserting %s: %w", event.Key(namespace, ev.EventURL), err)
	}
	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close(context.Context) error {
	p.pool.Close()
	return nil
}
