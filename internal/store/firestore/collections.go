package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// ListGallery returns gallery items newest first
func (s *Store) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	iter := s.client.Collection(galleryCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var items []models.GalleryItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, store.WrapErr(store.OpListGallery, fmt.Errorf("failed to iterate gallery: %w", err))
		}
		var d galleryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, store.WrapErr(store.OpListGallery, fmt.Errorf("failed to decode gallery item %s: %w", doc.Ref.ID, err))
		}
		items = append(items, d.toModel(doc.Ref.ID))
	}
	return items, nil
}

// AddGalleryItem writes a gallery document with a store-assigned timestamp
func (s *Store) AddGalleryItem(ctx context.Context, input models.GalleryItemInput) (models.GalleryItem, error) {
	d := galleryDoc{
		URL:       input.URL,
		Caption:   input.Caption,
		Category:  input.Category,
		CreatedAt: time.Now().UTC(),
	}
	ref, _, err := s.client.Collection(galleryCollection).Add(ctx, d)
	if err != nil {
		return models.GalleryItem{}, store.WrapErr(store.OpAddGalleryItem, fmt.Errorf("failed to add gallery item: %w", err))
	}
	return d.toModel(ref.ID), nil
}

// RemoveGalleryItem deletes a gallery document by id
func (s *Store) RemoveGalleryItem(ctx context.Context, id string) error {
	ref := s.client.Collection(galleryCollection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return store.WrapErr(store.OpRemoveGalleryItem, fmt.Errorf("gallery item %s: %w", id, store.ErrNotFound))
		}
		return store.WrapErr(store.OpRemoveGalleryItem, fmt.Errorf("failed to get gallery item: %w", err))
	}
	if _, err := ref.Delete(ctx); err != nil {
		return store.WrapErr(store.OpRemoveGalleryItem, fmt.Errorf("failed to delete gallery item: %w", err))
	}
	return nil
}

// ListMessages returns contact messages newest first
func (s *Store) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	iter := s.client.Collection(messagesCollection).OrderBy("date", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var messages []models.ContactMessage
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, store.WrapErr(store.OpListMessages, fmt.Errorf("failed to iterate messages: %w", err))
		}
		var d messageDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, store.WrapErr(store.OpListMessages, fmt.Errorf("failed to decode message %s: %w", doc.Ref.ID, err))
		}
		messages = append(messages, d.toModel(doc.Ref.ID))
	}
	return messages, nil
}

// AddMessage writes a contact message with a server-assigned date and
// read=false.
func (s *Store) AddMessage(ctx context.Context, input models.MessageInput) (models.ContactMessage, error) {
	d := messageDoc{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
		Date:    time.Now().UTC(),
		Read:    false,
	}
	ref, _, err := s.client.Collection(messagesCollection).Add(ctx, d)
	if err != nil {
		return models.ContactMessage{}, store.WrapErr(store.OpAddMessage, fmt.Errorf("failed to add message: %w", err))
	}
	return d.toModel(ref.ID), nil
}

// MarkMessageRead flips the read flag on a message document
func (s *Store) MarkMessageRead(ctx context.Context, id string, read bool) (models.ContactMessage, error) {
	ref := s.client.Collection(messagesCollection).Doc(id)
	_, err := ref.Update(ctx, []firestore.Update{{Path: "read", Value: read}})
	if err != nil {
		if isNotFound(err) {
			return models.ContactMessage{}, store.WrapErr(store.OpMarkMessageRead, fmt.Errorf("message %s: %w", id, store.ErrNotFound))
		}
		return models.ContactMessage{}, store.WrapErr(store.OpMarkMessageRead, fmt.Errorf("failed to update message: %w", err))
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return models.ContactMessage{}, store.WrapErr(store.OpMarkMessageRead, fmt.Errorf("failed to reload message: %w", err))
	}
	var d messageDoc
	if err := snap.DataTo(&d); err != nil {
		return models.ContactMessage{}, store.WrapErr(store.OpMarkMessageRead, fmt.Errorf("failed to decode message %s: %w", id, err))
	}
	return d.toModel(id), nil
}

// DeleteMessage deletes a message document by id
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	ref := s.client.Collection(messagesCollection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return store.WrapErr(store.OpDeleteMessage, fmt.Errorf("message %s: %w", id, store.ErrNotFound))
		}
		return store.WrapErr(store.OpDeleteMessage, fmt.Errorf("failed to get message: %w", err))
	}
	if _, err := ref.Delete(ctx); err != nil {
		return store.WrapErr(store.OpDeleteMessage, fmt.Errorf("failed to delete message: %w", err))
	}
	return nil
}
