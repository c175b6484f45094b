// Package store defines the entity store adapter contract shared by the
// PostgreSQL, Firestore and in-memory backends. The catalog layer talks only
// to this interface; each backend must satisfy the same ordering, cascade and
// upsert semantics.
package store

import (
	"context"

	"github.com/sredowan/uhud-builders-new/internal/models"
)

// Store is the adapter contract over the remote catalog store.
//
// Semantics every implementation must honor:
//   - ListProjects returns projects ascending by their order field with the
//     full unit set attached.
//   - CreateProject assigns order = max(existing)+1 (read-then-write; not
//     atomic under concurrent writers) and persists units under the new id.
//   - UpdateProject overwrites the editable fields and replaces the unit set
//     as a group. Order, createdAt and id are never touched.
//   - DeleteProject removes the project's units first, then the project.
//     Deleting a project with zero units still succeeds.
//   - GetSettings returns nil (no error) when no settings document exists.
//   - PutSettings upserts against the fixed singleton key and stamps
//     updatedAt.
//   - Mutations targeting a missing id fail with ErrNotFound (wrapped in
//     *Error).
type Store interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, input models.ProjectInput) (models.Project, error)
	UpdateProject(ctx context.Context, id string, input models.ProjectInput) (models.Project, error)
	UpdateProjectOrder(ctx context.Context, id string, order int) error
	DeleteProject(ctx context.Context, id string) error

	ListGallery(ctx context.Context) ([]models.GalleryItem, error)
	AddGalleryItem(ctx context.Context, input models.GalleryItemInput) (models.GalleryItem, error)
	RemoveGalleryItem(ctx context.Context, id string) error

	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
	AddMessage(ctx context.Context, input models.MessageInput) (models.ContactMessage, error)
	MarkMessageRead(ctx context.Context, id string, read bool) (models.ContactMessage, error)
	DeleteMessage(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*models.SiteSettings, error)
	PutSettings(ctx context.Context, settings models.SiteSettings) (models.SiteSettings, error)

	Health(ctx context.Context) error
	Close()
}
