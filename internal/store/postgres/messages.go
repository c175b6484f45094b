package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// ListMessages returns contact messages newest first
func (s *Store) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT message_id, name, email, phone, message, date, read FROM contact_messages ORDER BY date DESC`)
	if err != nil {
		return nil, store.WrapErr(store.OpListMessages, fmt.Errorf("failed to query messages: %w", err))
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.Date, &m.Read); err != nil {
			return nil, store.WrapErr(store.OpListMessages, fmt.Errorf("failed to scan message: %w", err))
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapErr(store.OpListMessages, fmt.Errorf("error iterating messages: %w", err))
	}
	return messages, nil
}

// AddMessage inserts a contact message; date is store-assigned and read
// defaults to false.
func (s *Store) AddMessage(ctx context.Context, input models.MessageInput) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING message_id, name, email, phone, message, date, read`,
		input.Name, input.Email, input.Phone, input.Message,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.Date, &m.Read)
	if err != nil {
		return models.ContactMessage{}, store.WrapErr(store.OpAddMessage, fmt.Errorf("failed to insert message: %w", err))
	}
	return m, nil
}

// MarkMessageRead flips the read flag on a message
func (s *Store) MarkMessageRead(ctx context.Context, id string, read bool) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := s.Pool.QueryRow(ctx, `
		UPDATE contact_messages SET read = $2 WHERE message_id = $1
		RETURNING message_id, name, email, phone, message, date, read`,
		id, read,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.Date, &m.Read)
	if err == pgx.ErrNoRows {
		return models.ContactMessage{}, store.WrapErr(store.OpMarkMessageRead, fmt.Errorf("message %s: %w", id, store.ErrNotFound))
	}
	if err != nil {
		return models.ContactMessage{}, store.WrapErr(store.OpMarkMessageRead, fmt.Errorf("failed to update message: %w", err))
	}
	return m, nil
}

// DeleteMessage deletes a contact message by id
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	result, err := s.Pool.Exec(ctx, `DELETE FROM contact_messages WHERE message_id = $1`, id)
	if err != nil {
		return store.WrapErr(store.OpDeleteMessage, fmt.Errorf("failed to delete message: %w", err))
	}
	if result.RowsAffected() == 0 {
		return store.WrapErr(store.OpDeleteMessage, fmt.Errorf("message %s: %w", id, store.ErrNotFound))
	}
	return nil
}
