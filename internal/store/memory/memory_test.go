package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
	"github.com/sredowan/uhud-builders-new/internal/store/storetest"
)

func TestMemoryStoreContract(t *testing.T) {
	storetest.RunSuite(t, func(t *testing.T) store.Store {
		return New()
	})
}

func TestMemoryStoreClock(t *testing.T) {
	s := New()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })

	created, err := s.AddMessage(context.Background(), models.MessageInput{Name: "A", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, fixed, created.Date)
}

func TestMemoryStoreUnitsForProject(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateProject(ctx, models.ProjectInput{
		Title:    "Tower",
		ImageURL: "/t.png",
		Units:    []models.UnitInput{{Name: "Type A", Size: "1200 Sq. Ft."}},
	})
	require.NoError(t, err)
	require.Len(t, s.UnitsForProject(created.ID), 1)

	require.NoError(t, s.DeleteProject(ctx, created.ID))
	assert.Empty(t, s.UnitsForProject(created.ID))
}
