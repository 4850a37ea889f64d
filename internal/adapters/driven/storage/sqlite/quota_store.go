package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
)

// quotaStore implements driven.QuotaStore over the single-row quota_state table.
type quotaStore struct {
	store *Store
}

var _ driven.QuotaStore = (*quotaStore)(nil)

// Load returns the stored ledger or domain.ErrNotFound.
func (s *quotaStore) Load(ctx context.Context) (*domain.QuotaState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT count, window_start, is_premium FROM quota_state WHERE id = 1
	`)

	var state domain.QuotaState
	var windowStart string
	if err := row.Scan(&state.Count, &windowStart, &state.IsPremium); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning quota state: %w", err)
	}

	date, err := time.Parse(time.RFC3339Nano, windowStart)
	if err != nil {
		return nil, fmt.Errorf("parsing quota window start %q: %w", windowStart, err)
	}
	state.Date = date

	return &state, nil
}

// Save replaces the stored ledger.
func (s *quotaStore) Save(ctx context.Context, state domain.QuotaState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO quota_state (id, count, window_start, is_premium, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			count = excluded.count,
			window_start = excluded.window_start,
			is_premium = excluded.is_premium,
			updated_at = excluded.updated_at
	`, state.Count, state.Date.Format(time.RFC3339Nano), state.IsPremium, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving quota state: %w", err)
	}
	return nil
}
