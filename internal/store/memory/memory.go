// Package memory implements the catalog store contract in process memory.
// It backs the test suites and local development (STORE_DRIVER=memory); the
// semantics mirror the relational backend, including the non-atomic
// max+1 order assignment.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// Store keeps all collections behind one mutex
type Store struct {
	mu       sync.RWMutex
	projects map[string]models.Project
	units    map[string][]models.Unit // keyed by project id
	gallery  []models.GalleryItem
	messages []models.ContactMessage
	settings *models.SiteSettings

	// now is swappable so tests can control timestamps
	now func() time.Time
}

// New returns an empty in-memory store
func New() *Store {
	return &Store{
		projects: make(map[string]models.Project),
		units:    make(map[string][]models.Unit),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the timestamp source (tests only)
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// ListProjects returns all projects ascending by order
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0, len(s.projects))
	for id, p := range s.projects {
		p.Units = append([]models.Unit{}, s.units[id]...)
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Order < projects[j].Order })
	return projects, nil
}

// CreateProject assigns order = max+1 and stores the project with its units
func (s *Store) CreateProject(ctx context.Context, input models.ProjectInput) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxOrder := 0
	for _, p := range s.projects {
		if p.Order > maxOrder {
			maxOrder = p.Order
		}
	}

	now := s.now()
	p := models.Project{
		ID:                uuid.NewString(),
		Title:             input.Title,
		Location:          input.Location,
		Price:             input.Price,
		Description:       input.Description,
		Status:            input.Status,
		ImageURL:          input.ImageURL,
		LogoURL:           input.LogoURL,
		BuildingAmenities: copyStrings(input.BuildingAmenities),
		Order:             maxOrder + 1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.projects[p.ID] = p
	s.units[p.ID] = buildUnits(p.ID, input.Units)

	p.Units = append([]models.Unit{}, s.units[p.ID]...)
	return p, nil
}

// UpdateProject overwrites editable fields and replaces the unit set
func (s *Store) UpdateProject(ctx context.Context, id string, input models.ProjectInput) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
	}
	p.Title = input.Title
	p.Location = input.Location
	p.Price = input.Price
	p.Description = input.Description
	p.Status = input.Status
	p.ImageURL = input.ImageURL
	p.LogoURL = input.LogoURL
	p.BuildingAmenities = copyStrings(input.BuildingAmenities)
	p.UpdatedAt = s.now()
	s.projects[id] = p
	s.units[id] = buildUnits(id, input.Units)

	p.Units = append([]models.Unit{}, s.units[id]...)
	return p, nil
}

// UpdateProjectOrder sets the order field on a single project
func (s *Store) UpdateProjectOrder(ctx context.Context, id string, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return store.WrapErr(store.OpUpdateProjectOrder, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
	}
	p.Order = order
	p.UpdatedAt = s.now()
	s.projects[id] = p
	return nil
}

// DeleteProject removes the project and its units
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return store.WrapErr(store.OpDeleteProject, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
	}
	delete(s.units, id)
	delete(s.projects, id)
	return nil
}

// UnitsForProject returns the stored unit set for a project id (tests use
// this to verify the cascade).
func (s *Store) UnitsForProject(id string) []models.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Unit{}, s.units[id]...)
}

// ListGallery returns gallery items newest first
func (s *Store) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]models.GalleryItem{}, s.gallery...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

// AddGalleryItem stores a gallery item with a fresh id and timestamp
func (s *Store) AddGalleryItem(ctx context.Context, input models.GalleryItemInput) (models.GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.GalleryItem{
		ID:        uuid.NewString(),
		URL:       input.URL,
		Caption:   input.Caption,
		Category:  input.Category,
		CreatedAt: s.now(),
	}
	// Prepend so equal timestamps still list newest first
	s.gallery = append([]models.GalleryItem{item}, s.gallery...)
	return item, nil
}

// RemoveGalleryItem deletes a gallery item by id
func (s *Store) RemoveGalleryItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.gallery {
		if item.ID == id {
			s.gallery = append(s.gallery[:i], s.gallery[i+1:]...)
			return nil
		}
	}
	return store.WrapErr(store.OpRemoveGalleryItem, fmt.Errorf("gallery item %s: %w", id, store.ErrNotFound))
}

// ListMessages returns contact messages newest first
func (s *Store) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := append([]models.ContactMessage{}, s.messages...)
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].Date.After(messages[j].Date) })
	return messages, nil
}

// AddMessage stores a contact message with date assigned and read=false
func (s *Store) AddMessage(ctx context.Context, input models.MessageInput) (models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := models.ContactMessage{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
		Date:    s.now(),
		Read:    false,
	}
	s.messages = append([]models.ContactMessage{m}, s.messages...)
	return m, nil
}

// MarkMessageRead flips the read flag on a message
func (s *Store) MarkMessageRead(ctx context.Context, id string, read bool) (models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.messages {
		if m.ID == id {
			s.messages[i].Read = read
			return s.messages[i], nil
		}
	}
	return models.ContactMessage{}, store.WrapErr(store.OpMarkMessageRead, fmt.Errorf("message %s: %w", id, store.ErrNotFound))
}

// DeleteMessage deletes a contact message by id
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.messages {
		if m.ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return nil
		}
	}
	return store.WrapErr(store.OpDeleteMessage, fmt.Errorf("message %s: %w", id, store.ErrNotFound))
}

// GetSettings returns the stored settings, or nil when never written
func (s *Store) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, nil
	}
	copied := cloneSettings(*s.settings)
	return &copied, nil
}

// PutSettings overwrites the singleton settings value. Stored and returned
// values are detached from the caller's, matching the backends that
// serialize on write.
func (s *Store) PutSettings(ctx context.Context, settings models.SiteSettings) (models.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := cloneSettings(settings)
	s.settings = &copied
	return cloneSettings(copied), nil
}

// Health always succeeds for the in-memory store
func (s *Store) Health(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (s *Store) Close() {}

func buildUnits(projectID string, inputs []models.UnitInput) []models.Unit {
	units := make([]models.Unit, 0, len(inputs))
	for _, in := range inputs {
		units = append(units, models.Unit{
			ID:             uuid.NewString(),
			ProjectID:      projectID,
			Name:           in.Name,
			Size:           in.Size,
			Bedrooms:       in.Bedrooms,
			Bathrooms:      in.Bathrooms,
			Balconies:      in.Balconies,
			Features:       copyStrings(in.Features),
			FloorPlanImage: in.FloorPlanImage,
		})
	}
	return units
}

// cloneSettings copies the value with fresh group pointers so callers and
// stored state never share memory
func cloneSettings(value models.SiteSettings) models.SiteSettings {
	if value.Contact != nil {
		v := *value.Contact
		value.Contact = &v
	}
	if value.Social != nil {
		v := *value.Social
		value.Social = &v
	}
	if value.Content != nil {
		v := *value.Content
		value.Content = &v
	}
	if value.HomePage != nil {
		v := *value.HomePage
		value.HomePage = &v
	}
	if value.Analytics != nil {
		v := *value.Analytics
		value.Analytics = &v
	}
	if value.SEO != nil {
		v := *value.SEO
		value.SEO = &v
	}
	return value
}

func copyStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}
