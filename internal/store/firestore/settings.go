package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// Settings are stored as a single document under a fixed key. The document
// body round-trips through JSON so the stored field names match the wire
// names (contact, social, ...) rather than Go identifiers.

// GetSettings returns the persisted settings document, or nil when none
// exists yet.
func (s *Store) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	snap, err := s.client.Collection(settingsCollection).Doc(settingsDocID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, store.WrapErr(store.OpGetSettings, fmt.Errorf("failed to get settings: %w", err))
	}

	data := snap.Data()
	delete(data, "updatedAt")
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, store.WrapErr(store.OpGetSettings, fmt.Errorf("failed to encode settings document: %w", err))
	}
	var settings models.SiteSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, store.WrapErr(store.OpGetSettings, fmt.Errorf("failed to decode settings: %w", err))
	}
	return &settings, nil
}

// PutSettings overwrites the singleton settings document and stamps updatedAt
func (s *Store) PutSettings(ctx context.Context, settings models.SiteSettings) (models.SiteSettings, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return models.SiteSettings{}, store.WrapErr(store.OpPutSettings, fmt.Errorf("failed to encode settings: %w", err))
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.SiteSettings{}, store.WrapErr(store.OpPutSettings, fmt.Errorf("failed to build settings document: %w", err))
	}
	data["updatedAt"] = time.Now().UTC()

	if _, err := s.client.Collection(settingsCollection).Doc(settingsDocID).Set(ctx, data); err != nil {
		return models.SiteSettings{}, store.WrapErr(store.OpPutSettings, fmt.Errorf("failed to set settings: %w", err))
	}
	return settings, nil
}
