// Package storetest holds the contract test suite every store backend must
// pass. Backend test packages provide a factory returning an empty store and
// run RunSuite against it, so the relational, document and in-memory variants
// stay behaviorally equivalent.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// Factory returns an empty store for one test case
type Factory func(t *testing.T) store.Store

// RunSuite exercises the full adapter contract against a backend
func RunSuite(t *testing.T, newStore Factory) {
	t.Run("ProjectOrderAssignment", func(t *testing.T) { testProjectOrderAssignment(t, newStore(t)) })
	t.Run("ProjectListOrdering", func(t *testing.T) { testProjectListOrdering(t, newStore(t)) })
	t.Run("ProjectUpdateReplacesUnits", func(t *testing.T) { testProjectUpdateReplacesUnits(t, newStore(t)) })
	t.Run("ProjectUpdatePreservesOrder", func(t *testing.T) { testProjectUpdatePreservesOrder(t, newStore(t)) })
	t.Run("ProjectDeleteCascadesUnits", func(t *testing.T) { testProjectDeleteCascadesUnits(t, newStore(t)) })
	t.Run("ProjectDeleteWithoutUnits", func(t *testing.T) { testProjectDeleteWithoutUnits(t, newStore(t)) })
	t.Run("ProjectNotFound", func(t *testing.T) { testProjectNotFound(t, newStore(t)) })
	t.Run("Gallery", func(t *testing.T) { testGallery(t, newStore(t)) })
	t.Run("Messages", func(t *testing.T) { testMessages(t, newStore(t)) })
	t.Run("SettingsUpsert", func(t *testing.T) { testSettingsUpsert(t, newStore(t)) })
	t.Run("SettingsDetached", func(t *testing.T) { testSettingsDetached(t, newStore(t)) })
}

func projectInput(title string) models.ProjectInput {
	return models.ProjectInput{
		Title:             title,
		Location:          "Dhaka",
		Price:             "Contact for price",
		Description:       "Test project",
		Status:            models.StatusOngoing,
		ImageURL:          "/images/" + title + ".png",
		BuildingAmenities: []string{"Lift", "Generator"},
	}
}

func testProjectOrderAssignment(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	// Successive creates produce a strictly increasing gap-free sequence
	for i := 1; i <= 3; i++ {
		p, err := s.CreateProject(ctx, projectInput("Tower"))
		require.NoError(t, err)
		assert.Equal(t, i, p.Order)
		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
	}
}

func testProjectListOrdering(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	a, err := s.CreateProject(ctx, projectInput("First"))
	require.NoError(t, err)
	b, err := s.CreateProject(ctx, projectInput("Second"))
	require.NoError(t, err)

	// Swapping order values flips the listing, not the records
	require.NoError(t, s.UpdateProjectOrder(ctx, a.ID, b.Order))
	require.NoError(t, s.UpdateProjectOrder(ctx, b.ID, a.Order))

	listed, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, b.ID, listed[0].ID)
	assert.Equal(t, a.ID, listed[1].ID)
}

func testProjectUpdateReplacesUnits(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	input := projectInput("Residences")
	input.Units = []models.UnitInput{
		{Name: "Type A", Size: "1200 Sq. Ft.", Bedrooms: 3, Bathrooms: 2, Balconies: 2, Features: []string{"Drawing"}},
		{Name: "Type B", Size: "1500 Sq. Ft.", Bedrooms: 4, Bathrooms: 3, Balconies: 3},
	}
	created, err := s.CreateProject(ctx, input)
	require.NoError(t, err)
	require.Len(t, created.Units, 2)
	for _, u := range created.Units {
		assert.Equal(t, created.ID, u.ProjectID)
		assert.NotEmpty(t, u.ID)
	}

	// The replacement set fully supersedes the old one
	update := projectInput("Residences Updated")
	update.Units = []models.UnitInput{
		{Name: "Type C", Size: "1800 Sq. Ft.", Bedrooms: 4, Bathrooms: 4, Balconies: 2},
	}
	updated, err := s.UpdateProject(ctx, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Residences Updated", updated.Title)
	require.Len(t, updated.Units, 1)
	assert.Equal(t, "Type C", updated.Units[0].Name)

	listed, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Units, 1)
	assert.Equal(t, "Type C", listed[0].Units[0].Name)
}

func testProjectUpdatePreservesOrder(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	first, err := s.CreateProject(ctx, projectInput("First"))
	require.NoError(t, err)
	second, err := s.CreateProject(ctx, projectInput("Second"))
	require.NoError(t, err)

	updated, err := s.UpdateProject(ctx, first.ID, projectInput("First Renamed"))
	require.NoError(t, err)
	assert.Equal(t, first.Order, updated.Order)
	assert.Equal(t, first.ID, updated.ID)
	_ = second
}

func testProjectDeleteCascadesUnits(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	input := projectInput("Doomed")
	input.Units = []models.UnitInput{{Name: "Type A", Size: "1000 Sq. Ft.", Bedrooms: 2, Bathrooms: 2}}
	created, err := s.CreateProject(ctx, input)
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject(ctx, created.ID))

	listed, err := s.ListProjects(ctx)
	require.NoError(t, err)
	for _, p := range listed {
		assert.NotEqual(t, created.ID, p.ID)
		for _, u := range p.Units {
			assert.NotEqual(t, created.ID, u.ProjectID)
		}
	}
}

func testProjectDeleteWithoutUnits(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	created, err := s.CreateProject(ctx, projectInput("Unitless"))
	require.NoError(t, err)
	require.Empty(t, created.Units)

	require.NoError(t, s.DeleteProject(ctx, created.ID))
	listed, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func testProjectNotFound(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	_, err := s.UpdateProject(ctx, "missing", projectInput("Ghost"))
	assert.True(t, store.IsNotFound(err), "update: expected not found, got %v", err)

	err = s.DeleteProject(ctx, "missing")
	assert.True(t, store.IsNotFound(err), "delete: expected not found, got %v", err)

	err = s.UpdateProjectOrder(ctx, "missing", 7)
	assert.True(t, store.IsNotFound(err), "order: expected not found, got %v", err)
}

func testGallery(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	first, err := s.AddGalleryItem(ctx, models.GalleryItemInput{URL: "/a.jpg", Caption: "first"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond) // keep createdAt distinct across backends
	second, err := s.AddGalleryItem(ctx, models.GalleryItemInput{URL: "/b.jpg", Caption: "second"})
	require.NoError(t, err)

	items, err := s.ListGallery(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Newest first
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	require.NoError(t, s.RemoveGalleryItem(ctx, first.ID))
	items, err = s.ListGallery(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)

	err = s.RemoveGalleryItem(ctx, first.ID)
	assert.True(t, store.IsNotFound(err), "expected not found, got %v", err)
}

func testMessages(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	first, err := s.AddMessage(ctx, models.MessageInput{Name: "Rahim", Email: "rahim@example.com", Message: "Price list please"})
	require.NoError(t, err)
	assert.False(t, first.Read)
	assert.False(t, first.Date.IsZero())

	time.Sleep(5 * time.Millisecond) // keep date distinct across backends
	second, err := s.AddMessage(ctx, models.MessageInput{Name: "Karim", Email: "karim@example.com", Message: "Visit request"})
	require.NoError(t, err)

	messages, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)

	marked, err := s.MarkMessageRead(ctx, first.ID, true)
	require.NoError(t, err)
	assert.True(t, marked.Read)

	require.NoError(t, s.DeleteMessage(ctx, second.ID))
	messages, err = s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, first.ID, messages[0].ID)
	assert.True(t, messages[0].Read)

	_, err = s.MarkMessageRead(ctx, "missing", true)
	assert.True(t, store.IsNotFound(err), "expected not found, got %v", err)
}

func testSettingsUpsert(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	// Absent settings read as nil without error
	persisted, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted)

	value := models.SiteSettings{
		Contact:    &models.ContactSettings{Phone: "+880123", Email: "hello@example.com", Address: "Dhaka"},
		HeaderLogo: "/logo.png",
	}
	_, err = s.PutSettings(ctx, value)
	require.NoError(t, err)

	persisted, err = s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.NotNil(t, persisted.Contact)
	assert.Equal(t, "+880123", persisted.Contact.Phone)
	assert.Equal(t, "/logo.png", persisted.HeaderLogo)
	assert.Nil(t, persisted.Social)

	// Second write overwrites in place
	value.Contact.Phone = "+880999"
	_, err = s.PutSettings(ctx, value)
	require.NoError(t, err)

	persisted, err = s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "+880999", persisted.Contact.Phone)
}

func testSettingsDetached(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	value := models.SiteSettings{
		Contact: &models.ContactSettings{Phone: "+880123"},
	}
	_, err := s.PutSettings(ctx, value)
	require.NoError(t, err)

	// Mutating the caller's value after the write must not leak into the store
	value.Contact.Phone = "changed-after-put"

	persisted, err := s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.NotNil(t, persisted.Contact)
	assert.Equal(t, "+880123", persisted.Contact.Phone)

	// Reads hand out copies too
	persisted.Contact.Phone = "changed-after-get"

	reread, err := s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, reread)
	assert.Equal(t, "+880123", reread.Contact.Phone)
}
