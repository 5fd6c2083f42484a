// Package sqlite provides a SQLite-backed blend archive.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// Compile-time interface check.
var _ domain.BlendStore = (*Store)(nil)

const schema = `CREATE TABLE IF NOT EXISTS blends (
	id         TEXT PRIMARY KEY,
	fuel       TEXT NOT NULL,
	summary    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	payload    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS blends_fuel_created ON blends (fuel, created_at DESC);`

// Store persists blend results in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// record is the JSON payload column.
type record struct {
	ID         string             `json:"id"`
	Fuel       domain.FuelType    `json:"fuel"`
	Recipe     domain.Recipe      `json:"recipe"`
	Properties map[string]float64 `json:"properties"`
	Details    []detailRecord     `json:"component_details,omitempty"`
	Viability  string             `json:"viability_insight,omitempty"`
	Summary    string             `json:"ai_insight,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type detailRecord struct {
	Name       string             `json:"name"`
	Percentage float64            `json:"percentage"`
	Properties map[string]float64 `json:"properties,omitempty"`
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens (or creates) a SQLite archive and ensures the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts or replaces one result.
func (s *Store) Save(ctx context.Context, result *domain.BlendResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if result == nil || strings.TrimSpace(result.ID) == "" {
		return fmt.Errorf("blend id is required")
	}
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	payload, err := json.Marshal(encode(result, createdAt))
	if err != nil {
		return fmt.Errorf("encode blend %s: %w", result.ID, err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO blends (id, fuel, summary, created_at, payload)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   fuel = excluded.fuel,
		   summary = excluded.summary,
		   created_at = excluded.created_at,
		   payload = excluded.payload`,
		result.ID,
		result.FuelType.String(),
		result.Summary(),
		toMillis(createdAt),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save blend %s: %w", result.ID, err)
	}
	return nil
}

// Load returns one result by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.BlendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM blends WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load blend %s: %w", id, err)
	}
	return decode(payload)
}

// List returns every result for a fuel type, newest first.
func (s *Store) List(ctx context.Context, fuel domain.FuelType) ([]*domain.BlendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT payload FROM blends WHERE fuel = ? ORDER BY created_at DESC, rowid DESC`,
		fuel.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list blends: %w", err)
	}
	defer rows.Close()

	var out []*domain.BlendResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan blend: %w", err)
		}
		r, err := decode(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blends: %w", err)
	}
	return out, nil
}

// Delete removes one result by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM blends WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete blend %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete blend %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func encode(r *domain.BlendResult, createdAt time.Time) record {
	rec := record{
		ID:         r.ID,
		Fuel:       r.FuelType,
		Recipe:     r.Recipe,
		Properties: bagToMap(r.Properties),
		Viability:  r.Insights.Viability,
		Summary:    r.Insights.Summary,
		CreatedAt:  createdAt.UTC(),
	}
	for _, d := range r.ComponentDetails {
		rec.Details = append(rec.Details, detailRecord{
			Name:       d.Name,
			Percentage: d.Percentage,
			Properties: bagToMap(d.Properties),
		})
	}
	return rec
}

func decode(payload string) (*domain.BlendResult, error) {
	var rec record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("decode blend: %w", err)
	}
	r := &domain.BlendResult{
		ID:         rec.ID,
		FuelType:   rec.Fuel,
		Recipe:     rec.Recipe,
		Properties: mapToBag(rec.Properties),
		Insights:   domain.Insights{Viability: rec.Viability, Summary: rec.Summary},
		CreatedAt:  rec.CreatedAt,
	}
	for _, d := range rec.Details {
		r.ComponentDetails = append(r.ComponentDetails, domain.ComponentDetail{
			Name:       d.Name,
			Percentage: d.Percentage,
			Properties: mapToBag(d.Properties),
		})
	}
	return r, nil
}

func bagToMap(b domain.PropertyBag) map[string]float64 {
	if len(b) == 0 {
		return nil
	}
	out := make(map[string]float64, len(b))
	for k, v := range b {
		out[string(k)] = v
	}
	return out
}

func mapToBag(m map[string]float64) domain.PropertyBag {
	out := make(domain.PropertyBag, len(m))
	for k, v := range m {
		out[domain.PropertyKey(k)] = v
	}
	return out
}
