package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"hiveportal/internal/domain"
)

const kvTable = "kv_store"

// schemaSQL creates the key-value table used by the Postgres backend.
const schemaSQL = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// pq error codes that mean the server has run out of room.
var quotaCodes = map[pq.ErrorCode]bool{
	"53100": true, // disk_full
	"53200": true, // out_of_memory
	"54000": true, // program_limit_exceeded
}

type kvRepository struct {
	DB *sql.DB
	sb squirrel.StatementBuilderType
}

// NewKVRepository returns a domain.KVStore implemented with Postgres.
func NewKVRepository(db *sql.DB) domain.KVStore {
	return &kvRepository{
		DB: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EnsureSchema creates the kv_store table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create %s table: %w", kvTable, err)
	}
	return nil
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := r.sb.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var value string
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := r.sb.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return mapPQError(key, err)
	}
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	query, args, err := r.sb.Delete(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

func (r *kvRepository) Close() error {
	return r.DB.Close()
}

func mapPQError(key string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && quotaCodes[pqErr.Code] {
		return fmt.Errorf("write %s: %s: %w", key, pqErr.Message, domain.ErrQuotaExceeded)
	}
	return fmt.Errorf("write %s: %w", key, err)
}
