// Package firestore implements the catalog store contract on Cloud
// Firestore. Each collection maps to a top-level Firestore collection; units
// are embedded in their project document, so the cascade and group-replace
// semantics come for free with document writes.
package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
)

const (
	projectsCollection = "projects"
	galleryCollection  = "gallery"
	messagesCollection = "messages"
	settingsCollection = "settings"

	// settingsDocID is the fixed key of the singleton settings document
	settingsDocID = "site"
)

// Store wraps the Firestore client
type Store struct {
	client *firestore.Client
}

// New initializes the Firestore-backed store. Credentials come from
// GOOGLE_APPLICATION_CREDENTIALS or application default credentials; the
// project id from FIREBASE_PROJECT_ID.
func New(ctx context.Context) (*Store, error) {
	conf := &firebase.Config{ProjectID: os.Getenv("FIREBASE_PROJECT_ID")}

	app, err := firebase.NewApp(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore: %w", err)
	}

	return &Store{client: client}, nil
}

// NewWithClient wraps an existing client (used by emulator-backed tests)
func NewWithClient(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Health verifies the client can reach the backend
func (s *Store) Health(ctx context.Context) error {
	// A single-document read against the settings collection is the cheapest
	// round trip that exercises auth and connectivity.
	_, err := s.client.Collection(settingsCollection).Doc(settingsDocID).Get(ctx)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("firestore unreachable: %w", err)
	}
	return nil
}

// Close closes the Firestore client
func (s *Store) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
