package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sredowan/uhud-builders-new/internal/metrics"
	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/settings"
	"github.com/sredowan/uhud-builders-new/internal/store"
	"github.com/sredowan/uhud-builders-new/internal/store/memory"
)

var errStoreDown = errors.New("store unavailable")

// brokenStore fails selected operations while delegating the rest
type brokenStore struct {
	store.Store
	failList   bool
	failUpdate bool
	failOrder  bool
}

func (b *brokenStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	if b.failList {
		return nil, errStoreDown
	}
	return b.Store.ListProjects(ctx)
}

func (b *brokenStore) UpdateProject(ctx context.Context, id string, input models.ProjectInput) (models.Project, error) {
	if b.failUpdate {
		return models.Project{}, errStoreDown
	}
	return b.Store.UpdateProject(ctx, id, input)
}

func (b *brokenStore) UpdateProjectOrder(ctx context.Context, id string, order int) error {
	if b.failOrder {
		return errStoreDown
	}
	return b.Store.UpdateProjectOrder(ctx, id, order)
}

func projectInput(title string) models.ProjectInput {
	return models.ProjectInput{
		Title:    title,
		Location: "Dhaka",
		Price:    "Contact for price",
		Status:   models.StatusOngoing,
		ImageURL: "/images/" + title + ".jpg",
	}
}

func TestNewStartsUninitialized(t *testing.T) {
	svc := New(memory.New())

	state, msg := svc.State()
	assert.Equal(t, StateUninitialized, state)
	assert.Empty(t, msg)

	// Settings readable before any load, fully resolved
	assert.Equal(t, settings.Resolve(nil), svc.Settings())
	assert.Empty(t, svc.Projects())
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	st := memory.New()
	svc := New(st)

	require.NoError(t, svc.Load(context.Background()))

	state, _ := svc.State()
	assert.Equal(t, StateReady, state)

	projects := svc.Projects()
	require.Len(t, projects, 4)
	for i, p := range projects {
		assert.Equal(t, i+1, p.Order)
		assert.NotEmpty(t, p.ID)
	}
	assert.Equal(t, "Uhud Heights", projects[0].Title)
	assert.Equal(t, "Uhud Garden City", projects[3].Title)

	assert.Len(t, svc.Gallery(), 4)

	// First boot writes the defaults back so later reads find a document
	persisted, err := st.GetSettings(context.Background())
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, settings.Defaults().Contact, persisted.Contact)
}

func TestLoadSkipsSeedingNonEmptyStore(t *testing.T) {
	st := memory.New()
	_, err := st.CreateProject(context.Background(), projectInput("Existing"))
	require.NoError(t, err)

	svc := New(st)
	require.NoError(t, svc.Load(context.Background()))

	projects := svc.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Existing", projects[0].Title)

	// Gallery was empty, so it still seeds independently
	assert.Len(t, svc.Gallery(), 4)
}

func TestLoadFailureEntersErrorState(t *testing.T) {
	svc := New(&brokenStore{Store: memory.New(), failList: true})

	err := svc.Load(context.Background())
	require.ErrorIs(t, err, errStoreDown)

	state, msg := svc.State()
	assert.Equal(t, StateError, state)
	assert.Equal(t, "failed to load catalog", msg)

	// Settings still readable, resolved from defaults
	assert.Equal(t, settings.Resolve(nil), svc.Settings())
}

// rendezvousStore holds every list call until both loaders have issued
// theirs, forcing two bootstraps to observe the same empty collections.
type rendezvousStore struct {
	store.Store
	projects sync.WaitGroup
	gallery  sync.WaitGroup
}

func (r *rendezvousStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	r.projects.Done()
	r.projects.Wait()
	return r.Store.ListProjects(ctx)
}

func (r *rendezvousStore) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	r.gallery.Done()
	r.gallery.Wait()
	return r.Store.ListGallery(ctx)
}

// The seeder's check-then-insert is not guarded by any server-side
// constraint: two clients bootstrapping an empty store at the same time both
// see it empty and both seed. This pins that accepted outcome (duplicated
// samples, order values still unique) rather than papering over it.
func TestConcurrentBootstrapSeedsTwice(t *testing.T) {
	st := memory.New()
	rs := &rendezvousStore{Store: st}
	rs.projects.Add(2)
	rs.gallery.Add(2)

	first := New(rs)
	second := New(rs)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, first.Load(context.Background()))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, second.Load(context.Background()))
	}()
	wg.Wait()

	projects, err := st.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 8)

	// Order assignment stays serialized inside the store, so the duplicated
	// samples still land on a gap-free unique sequence
	orders := make([]int, 0, len(projects))
	for _, p := range projects {
		orders = append(orders, p.Order)
	}
	sort.Ints(orders)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, orders)

	gallery, err := st.ListGallery(context.Background())
	require.NoError(t, err)
	assert.Len(t, gallery, 8)
}

func TestCreateProjectValidation(t *testing.T) {
	svc := New(memory.New())

	_, err := svc.CreateProject(context.Background(), models.ProjectInput{ImageURL: "/x.jpg"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	_, err = svc.CreateProject(context.Background(), models.ProjectInput{Title: "X"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "imageUrl", verr.Field)
}

func TestCreateProjectAppendsSorted(t *testing.T) {
	svc := New(memory.New())
	require.NoError(t, svc.Load(context.Background()))

	created, err := svc.CreateProject(context.Background(), projectInput("Fifth"))
	require.NoError(t, err)
	assert.Equal(t, 5, created.Order)

	projects := svc.Projects()
	require.Len(t, projects, 5)
	assert.Equal(t, created.ID, projects[4].ID)
}

func TestUpdateProjectFailureKeepsSnapshot(t *testing.T) {
	st := &brokenStore{Store: memory.New()}
	svc := New(st)
	require.NoError(t, svc.Load(context.Background()))

	before := svc.Projects()
	st.failUpdate = true

	_, err := svc.UpdateProject(context.Background(), before[0].ID, projectInput("Renamed"))
	require.ErrorIs(t, err, errStoreDown)

	assert.Equal(t, before, svc.Projects())
}

func TestUpdateProjectNotFound(t *testing.T) {
	svc := New(memory.New())
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.UpdateProject(context.Background(), "missing", projectInput("X"))
	assert.True(t, store.IsNotFound(err))
}

func TestDeleteProjectDropsFromSnapshot(t *testing.T) {
	svc := New(memory.New())
	require.NoError(t, svc.Load(context.Background()))

	projects := svc.Projects()
	require.NoError(t, svc.DeleteProject(context.Background(), projects[0].ID))

	remaining := svc.Projects()
	require.Len(t, remaining, 3)
	_, found := svc.GetProject(projects[0].ID)
	assert.False(t, found)
}

func TestReorderSwapsAdjacentProjects(t *testing.T) {
	st := memory.New()
	a, err := st.CreateProject(context.Background(), projectInput("Tower A"))
	require.NoError(t, err)
	b, err := st.CreateProject(context.Background(), projectInput("Tower B"))
	require.NoError(t, err)
	require.Equal(t, 1, a.Order)
	require.Equal(t, 2, b.Order)

	svc := New(st)
	require.NoError(t, svc.Load(context.Background()))

	require.NoError(t, svc.Reorder(context.Background(), b.ID, DirectionUp))

	projects := svc.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "Tower B", projects[0].Title)
	assert.Equal(t, 1, projects[0].Order)
	assert.Equal(t, "Tower A", projects[1].Title)
	assert.Equal(t, 2, projects[1].Order)

	// The swap persisted, so a fresh load sees the same sequence
	svc2 := New(st)
	require.NoError(t, svc2.Load(context.Background()))
	reloaded := svc2.Projects()
	assert.Equal(t, "Tower B", reloaded[0].Title)
	assert.Equal(t, "Tower A", reloaded[1].Title)
}

func TestReorderBoundaryIsNoOp(t *testing.T) {
	svc := New(memory.New())
	require.NoError(t, svc.Load(context.Background()))

	before := svc.Projects()
	require.NoError(t, svc.Reorder(context.Background(), before[0].ID, DirectionUp))
	require.NoError(t, svc.Reorder(context.Background(), before[3].ID, DirectionDown))
	require.NoError(t, svc.Reorder(context.Background(), "missing", DirectionDown))
	assert.Equal(t, before, svc.Projects())
}

func TestReorderInvalidDirection(t *testing.T) {
	svc := New(memory.New())
	err := svc.Reorder(context.Background(), "any", Direction("sideways"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "direction", verr.Field)
}

func TestReorderRoundTrip(t *testing.T) {
	svc := New(memory.New())
	require.NoError(t, svc.Load(context.Background()))

	before := svc.Projects()
	id := before[1].ID
	require.NoError(t, svc.Reorder(context.Background(), id, DirectionUp))
	require.NoError(t, svc.Reorder(context.Background(), id, DirectionDown))
	assert.Equal(t, before, svc.Projects())
}

func TestReorderSurvivesStoreFailure(t *testing.T) {
	st := &brokenStore{Store: memory.New()}
	svc := New(st)
	require.NoError(t, svc.Load(context.Background()))

	before := svc.Projects()
	st.failOrder = true

	okBefore := testutil.ToFloat64(metrics.CatalogOps.WithLabelValues("reorder", "ok"))
	errBefore := testutil.ToFloat64(metrics.CatalogOps.WithLabelValues("reorder", "error"))

	// The snapshot swap happens first; persistence failures are only logged
	require.NoError(t, svc.Reorder(context.Background(), before[1].ID, DirectionUp))

	projects := svc.Projects()
	assert.Equal(t, before[1].ID, projects[0].ID)
	assert.Equal(t, before[0].ID, projects[1].ID)

	// Both writes failed: two error counts and no success count
	assert.Equal(t, okBefore, testutil.ToFloat64(metrics.CatalogOps.WithLabelValues("reorder", "ok")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(metrics.CatalogOps.WithLabelValues("reorder", "error")))
}

func TestGalleryLifecycle(t *testing.T) {
	svc := New(memory.New())
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.AddGalleryItem(context.Background(), models.GalleryItemInput{Caption: "no url"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "url", verr.Field)

	created, err := svc.AddGalleryItem(context.Background(), models.GalleryItemInput{URL: "/new.jpg", Category: "Events"})
	require.NoError(t, err)

	gallery := svc.Gallery()
	require.Len(t, gallery, 5)
	assert.Equal(t, created.ID, gallery[0].ID, "newest item listed first")

	require.NoError(t, svc.RemoveGalleryItem(context.Background(), created.ID))
	assert.Len(t, svc.Gallery(), 4)
}

func TestMessageLifecycle(t *testing.T) {
	svc := New(memory.New())
	require.NoError(t, svc.Load(context.Background()))

	created, err := svc.AddMessage(context.Background(), models.MessageInput{
		Name:    "Rahim",
		Email:   "rahim@example.com",
		Phone:   "+8801700000001",
		Message: "Interested in Uhud Heights Type B",
	})
	require.NoError(t, err)
	assert.False(t, created.Read)

	messages := svc.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, created.ID, messages[0].ID)

	updated, err := svc.MarkMessageRead(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Read)
	assert.True(t, svc.Messages()[0].Read)

	require.NoError(t, svc.DeleteMessage(context.Background(), created.ID))
	assert.Empty(t, svc.Messages())
}

func TestUpdateSettingsRepublishesResolved(t *testing.T) {
	svc := New(memory.New())
	require.NoError(t, svc.Load(context.Background()))

	resolved, err := svc.UpdateSettings(context.Background(), models.SiteSettings{
		Contact: &models.ContactSettings{Phone: "+880 1999 999999"},
	})
	require.NoError(t, err)

	// The supplied group wins wholesale; absent groups fall back to defaults
	assert.Equal(t, "+880 1999 999999", resolved.Contact.Phone)
	assert.Empty(t, resolved.Contact.Email)
	require.NotNil(t, resolved.SEO)
	assert.Equal(t, settings.Defaults().SEO, resolved.SEO)

	assert.Equal(t, resolved, svc.Settings())
}
