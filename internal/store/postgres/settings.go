package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// settingsKey is the fixed key of the singleton settings row
const settingsKey = "site"

// GetSettings returns the persisted settings document, or nil when none
// exists yet.
func (s *Store) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	var raw []byte
	err := s.Pool.QueryRow(ctx,
		`SELECT settings FROM site_settings WHERE settings_key = $1`, settingsKey,
	).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, store.WrapErr(store.OpGetSettings, fmt.Errorf("failed to query settings: %w", err))
	}

	var settings models.SiteSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, store.WrapErr(store.OpGetSettings, fmt.Errorf("failed to decode settings: %w", err))
	}
	return &settings, nil
}

// PutSettings upserts the singleton settings row and stamps updatedAt
func (s *Store) PutSettings(ctx context.Context, settings models.SiteSettings) (models.SiteSettings, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return models.SiteSettings{}, store.WrapErr(store.OpPutSettings, fmt.Errorf("failed to encode settings: %w", err))
	}

	var stored []byte
	err = s.Pool.QueryRow(ctx, `
		INSERT INTO site_settings (settings_key, settings)
		VALUES ($1, $2)
		ON CONFLICT (settings_key)
		DO UPDATE SET settings = EXCLUDED.settings, updated_at = CURRENT_TIMESTAMP
		RETURNING settings`,
		settingsKey, raw,
	).Scan(&stored)
	if err != nil {
		return models.SiteSettings{}, store.WrapErr(store.OpPutSettings, fmt.Errorf("failed to upsert settings: %w", err))
	}

	var result models.SiteSettings
	if err := json.Unmarshal(stored, &result); err != nil {
		return models.SiteSettings{}, store.WrapErr(store.OpPutSettings, fmt.Errorf("failed to decode settings: %w", err))
	}
	return result, nil
}
