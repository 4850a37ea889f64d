package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/lexai/internal/core/ports/driven"
)

// apiKeyName is the credentials row holding the AI API key.
const apiKeyName = "ai.api_key"

// credentialStore implements driven.CredentialStore over the credentials table.
type credentialStore struct {
	store *Store
}

var _ driven.CredentialStore = (*credentialStore)(nil)

// GetAPIKey returns the stored key, or "" if none is stored.
func (s *credentialStore) GetAPIKey(ctx context.Context) (string, error) {
	var value string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT value FROM credentials WHERE key = ?", apiKeyName,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading api key: %w", err)
	}
	return value, nil
}

// SetAPIKey stores the key, replacing any existing one.
func (s *credentialStore) SetAPIKey(ctx context.Context, key string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, apiKeyName, key, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving api key: %w", err)
	}
	return nil
}

// ClearAPIKey removes the stored key.
func (s *credentialStore) ClearAPIKey(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM credentials WHERE key = ?", apiKeyName); err != nil {
		return fmt.Errorf("clearing api key: %w", err)
	}
	return nil
}
