package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// KVStore is a flat string key-value store on top of the kv table.
type KVStore struct {
	DB  *sql.DB
	log zerolog.Logger
}

func NewKVStore(db *sql.DB, logger zerolog.Logger) *KVStore {
	logger = logger.With().Str("component", "KVStore").Logger()
	return &KVStore{DB: db, log: logger}
}

// Get returns the value stored under key. The boolean is false when the key is absent.
func (r *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Debug().Ctx(ctx).Str("key", key).Msg("key not found")
		return "", false, nil
	}
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("key", key).Msg("failed to read key")
		return "", false, err
	}

	return value, true, nil
}

// Set replaces the whole value stored under key with a single statement.
func (r *KVStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("key", key).Msg("failed to write key")
		return err
	}

	r.log.Debug().Ctx(ctx).
		Str("key", key).
		Dur("duration", time.Since(start)).
		Msg("key written")
	return nil
}
