package postgres

import (
	"context"
	"fmt"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// ListGallery returns gallery items newest first
func (s *Store) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT item_id, url, caption, category, created_at FROM gallery_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, store.WrapErr(store.OpListGallery, fmt.Errorf("failed to query gallery items: %w", err))
	}
	defer rows.Close()

	var items []models.GalleryItem
	for rows.Next() {
		var item models.GalleryItem
		if err := rows.Scan(&item.ID, &item.URL, &item.Caption, &item.Category, &item.CreatedAt); err != nil {
			return nil, store.WrapErr(store.OpListGallery, fmt.Errorf("failed to scan gallery item: %w", err))
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapErr(store.OpListGallery, fmt.Errorf("error iterating gallery items: %w", err))
	}
	return items, nil
}

// AddGalleryItem inserts a gallery item; createdAt is store-assigned
func (s *Store) AddGalleryItem(ctx context.Context, input models.GalleryItemInput) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO gallery_items (url, caption, category)
		VALUES ($1, $2, $3)
		RETURNING item_id, url, caption, category, created_at`,
		input.URL, input.Caption, input.Category,
	).Scan(&item.ID, &item.URL, &item.Caption, &item.Category, &item.CreatedAt)
	if err != nil {
		return models.GalleryItem{}, store.WrapErr(store.OpAddGalleryItem, fmt.Errorf("failed to insert gallery item: %w", err))
	}
	return item, nil
}

// RemoveGalleryItem deletes a gallery item by id
func (s *Store) RemoveGalleryItem(ctx context.Context, id string) error {
	result, err := s.Pool.Exec(ctx, `DELETE FROM gallery_items WHERE item_id = $1`, id)
	if err != nil {
		return store.WrapErr(store.OpRemoveGalleryItem, fmt.Errorf("failed to delete gallery item: %w", err))
	}
	if result.RowsAffected() == 0 {
		return store.WrapErr(store.OpRemoveGalleryItem, fmt.Errorf("gallery item %s: %w", id, store.ErrNotFound))
	}
	return nil
}
