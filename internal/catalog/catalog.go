// Package catalog owns the in-memory snapshot of the site catalog and keeps
// it consistent with the backing store. All reads served to the API come from
// the snapshot; mutations go to the store first and patch the snapshot from
// the store's response, so a failed write never corrupts local state.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sredowan/uhud-builders-new/internal/logging"
	"github.com/sredowan/uhud-builders-new/internal/metrics"
	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/settings"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// State tracks the load lifecycle of the catalog snapshot
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateError         State = "error"
)

// ValidationError reports a missing required field on a mutation payload
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Service is the catalog synchronization layer
type Service struct {
	store store.Store

	mu       sync.RWMutex
	state    State
	errMsg   string
	projects []models.Project
	gallery  []models.GalleryItem
	messages []models.ContactMessage
	settings models.SiteSettings
}

// New creates an unloaded service. The settings snapshot starts at the
// resolved defaults so callers never observe an empty settings value, even
// before Load or after a failed Load.
func New(st store.Store) *Service {
	return &Service{
		store:    st,
		state:    StateUninitialized,
		settings: settings.Resolve(nil),
	}
}

// Load fetches all four collections concurrently, seeds empty collections
// with sample data, resolves settings over the defaults, and publishes the
// combined snapshot. Any fetch failure leaves the service in the error state
// with the previous snapshot (and resolved default settings) intact.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.errMsg = ""
	s.mu.Unlock()

	var (
		projects  []models.Project
		gallery   []models.GalleryItem
		messages  []models.ContactMessage
		persisted *models.SiteSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.store.ListProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		gallery, err = s.store.ListGallery(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = s.store.ListMessages(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		persisted, err = s.store.GetSettings(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.fail("failed to load catalog", err)
		return err
	}

	projects, gallery, err := s.seedIfEmpty(ctx, projects, gallery)
	if err != nil {
		s.fail("failed to seed catalog", err)
		return err
	}

	// First boot: persist the defaults so subsequent reads find a document
	if persisted == nil {
		written, err := s.store.PutSettings(ctx, settings.Defaults())
		if err != nil {
			s.fail("failed to initialize settings", err)
			return err
		}
		persisted = &written
	}

	sortByOrder(projects)

	s.mu.Lock()
	s.state = StateReady
	s.projects = projects
	s.gallery = gallery
	s.messages = messages
	s.settings = settings.Resolve(persisted)
	s.mu.Unlock()

	metrics.CatalogLoads.Inc()
	return nil
}

func (s *Service) fail(msg string, err error) {
	logging.LogKV("error", msg, map[string]interface{}{"error": err.Error()})
	s.mu.Lock()
	s.state = StateError
	s.errMsg = msg
	s.mu.Unlock()
}

// State returns the load state and, in the error state, a user-facing message
func (s *Service) State() (State, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.errMsg
}

// Projects returns a copy of the project snapshot, ascending by order
func (s *Service) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project{}, s.projects...)
}

// GetProject looks a project up by id in the snapshot
func (s *Service) GetProject(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Gallery returns a copy of the gallery snapshot, newest first
func (s *Service) Gallery() []models.GalleryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.GalleryItem{}, s.gallery...)
}

// Messages returns a copy of the message snapshot, newest first
func (s *Service) Messages() []models.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ContactMessage{}, s.messages...)
}

// Settings returns the resolved settings snapshot
func (s *Service) Settings() models.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// CreateProject validates the payload, persists it, and appends the store's
// response to the snapshot.
func (s *Service) CreateProject(ctx context.Context, input models.ProjectInput) (models.Project, error) {
	if input.Title == "" {
		return models.Project{}, &ValidationError{Field: "title"}
	}
	if input.ImageURL == "" {
		return models.Project{}, &ValidationError{Field: "imageUrl"}
	}

	created, err := s.store.CreateProject(ctx, input)
	if err != nil {
		metrics.CatalogOps.WithLabelValues("create_project", "error").Inc()
		return models.Project{}, err
	}

	s.mu.Lock()
	s.projects = append(s.projects, created)
	sortByOrder(s.projects)
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("create_project", "ok").Inc()
	return created, nil
}

// UpdateProject persists the edit and patches the snapshot from the store's
// response. The prior snapshot survives a failed write untouched.
func (s *Service) UpdateProject(ctx context.Context, id string, input models.ProjectInput) (models.Project, error) {
	if input.Title == "" {
		return models.Project{}, &ValidationError{Field: "title"}
	}
	if input.ImageURL == "" {
		return models.Project{}, &ValidationError{Field: "imageUrl"}
	}

	updated, err := s.store.UpdateProject(ctx, id, input)
	if err != nil {
		metrics.CatalogOps.WithLabelValues("update_project", "error").Inc()
		return models.Project{}, err
	}

	s.mu.Lock()
	for i, p := range s.projects {
		if p.ID == id {
			s.projects[i] = updated
			break
		}
	}
	sortByOrder(s.projects)
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("update_project", "ok").Inc()
	return updated, nil
}

// DeleteProject removes the project (units cascade in the store) and drops it
// from the snapshot.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		metrics.CatalogOps.WithLabelValues("delete_project", "error").Inc()
		return err
	}

	s.mu.Lock()
	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("delete_project", "ok").Inc()
	return nil
}

// Reorder swaps the order values of the project and its neighbor in the given
// direction. Boundary moves are no-ops. The local snapshot is updated first;
// the two store writes follow sequentially and their failures are only
// logged; the next Load reconciles any divergence. This is the one mutation
// that is optimistic-first.
func (s *Service) Reorder(ctx context.Context, id string, direction Direction) error {
	if !direction.Valid() {
		return &ValidationError{Field: "direction"}
	}

	s.mu.Lock()
	current, target, ok := swapTargets(s.projects, id, direction)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	s.projects[current].Order, s.projects[target].Order = s.projects[target].Order, s.projects[current].Order
	a := s.projects[current]
	b := s.projects[target]
	sortByOrder(s.projects)
	s.mu.Unlock()

	persistFailed := false
	for _, p := range []models.Project{a, b} {
		if err := s.store.UpdateProjectOrder(ctx, p.ID, p.Order); err != nil {
			logging.LogKV("error", "failed to persist project order", map[string]interface{}{
				"project_id": p.ID,
				"order":      p.Order,
				"error":      err.Error(),
			})
			metrics.CatalogOps.WithLabelValues("reorder", "error").Inc()
			persistFailed = true
		}
	}

	if !persistFailed {
		metrics.CatalogOps.WithLabelValues("reorder", "ok").Inc()
	}
	return nil
}

// AddGalleryItem validates the payload, persists it, and prepends the store's
// response to the snapshot.
func (s *Service) AddGalleryItem(ctx context.Context, input models.GalleryItemInput) (models.GalleryItem, error) {
	if input.URL == "" {
		return models.GalleryItem{}, &ValidationError{Field: "url"}
	}

	created, err := s.store.AddGalleryItem(ctx, input)
	if err != nil {
		metrics.CatalogOps.WithLabelValues("add_gallery_item", "error").Inc()
		return models.GalleryItem{}, err
	}

	s.mu.Lock()
	s.gallery = append([]models.GalleryItem{created}, s.gallery...)
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("add_gallery_item", "ok").Inc()
	return created, nil
}

// RemoveGalleryItem deletes the item and drops it from the snapshot
func (s *Service) RemoveGalleryItem(ctx context.Context, id string) error {
	if err := s.store.RemoveGalleryItem(ctx, id); err != nil {
		metrics.CatalogOps.WithLabelValues("remove_gallery_item", "error").Inc()
		return err
	}

	s.mu.Lock()
	for i, item := range s.gallery {
		if item.ID == id {
			s.gallery = append(s.gallery[:i], s.gallery[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("remove_gallery_item", "ok").Inc()
	return nil
}

// AddMessage persists an inbound contact message and prepends the store's
// response to the snapshot.
func (s *Service) AddMessage(ctx context.Context, input models.MessageInput) (models.ContactMessage, error) {
	created, err := s.store.AddMessage(ctx, input)
	if err != nil {
		metrics.CatalogOps.WithLabelValues("add_message", "error").Inc()
		return models.ContactMessage{}, err
	}

	s.mu.Lock()
	s.messages = append([]models.ContactMessage{created}, s.messages...)
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("add_message", "ok").Inc()
	return created, nil
}

// MarkMessageRead flips the read flag and patches the snapshot
func (s *Service) MarkMessageRead(ctx context.Context, id string, read bool) (models.ContactMessage, error) {
	updated, err := s.store.MarkMessageRead(ctx, id, read)
	if err != nil {
		metrics.CatalogOps.WithLabelValues("mark_message_read", "error").Inc()
		return models.ContactMessage{}, err
	}

	s.mu.Lock()
	for i, m := range s.messages {
		if m.ID == id {
			s.messages[i] = updated
			break
		}
	}
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("mark_message_read", "ok").Inc()
	return updated, nil
}

// DeleteMessage deletes the message and drops it from the snapshot
func (s *Service) DeleteMessage(ctx context.Context, id string) error {
	if err := s.store.DeleteMessage(ctx, id); err != nil {
		metrics.CatalogOps.WithLabelValues("delete_message", "error").Inc()
		return err
	}

	s.mu.Lock()
	for i, m := range s.messages {
		if m.ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("delete_message", "ok").Inc()
	return nil
}

// UpdateSettings upserts the settings document and republishes the resolved
// snapshot.
func (s *Service) UpdateSettings(ctx context.Context, value models.SiteSettings) (models.SiteSettings, error) {
	stored, err := s.store.PutSettings(ctx, value)
	if err != nil {
		metrics.CatalogOps.WithLabelValues("update_settings", "error").Inc()
		return models.SiteSettings{}, err
	}

	resolved := settings.Resolve(&stored)
	s.mu.Lock()
	s.settings = resolved
	s.mu.Unlock()

	metrics.CatalogOps.WithLabelValues("update_settings", "ok").Inc()
	return resolved, nil
}
