package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// ListProjects returns all projects ascending by order
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	iter := s.client.Collection(projectsCollection).OrderBy("order", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var projects []models.Project
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, store.WrapErr(store.OpListProjects, fmt.Errorf("failed to iterate projects: %w", err))
		}
		var d projectDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, store.WrapErr(store.OpListProjects, fmt.Errorf("failed to decode project %s: %w", doc.Ref.ID, err))
		}
		projects = append(projects, d.toModel(doc.Ref.ID))
	}
	return projects, nil
}

// CreateProject assigns order = max(existing)+1 via a reverse-ordered
// single-document query, then writes the project document with its units
// embedded. The max read and the write are separate round trips; concurrent
// creators can race order assignment.
func (s *Store) CreateProject(ctx context.Context, input models.ProjectInput) (models.Project, error) {
	maxOrder, err := s.maxProjectOrder(ctx)
	if err != nil {
		return models.Project{}, store.WrapErr(store.OpCreateProject, err)
	}

	now := time.Now().UTC()
	d := projectDoc{
		Title:             input.Title,
		Location:          input.Location,
		Price:             input.Price,
		Description:       input.Description,
		Status:            string(input.Status),
		ImageURL:          input.ImageURL,
		LogoURL:           input.LogoURL,
		BuildingAmenities: emptyIfNil(input.BuildingAmenities),
		Order:             maxOrder + 1,
		Units:             unitDocs(input.Units),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	ref, _, err := s.client.Collection(projectsCollection).Add(ctx, d)
	if err != nil {
		return models.Project{}, store.WrapErr(store.OpCreateProject, fmt.Errorf("failed to add project: %w", err))
	}
	return d.toModel(ref.ID), nil
}

// UpdateProject overwrites the editable fields and replaces the embedded unit
// set. Order and createdAt are preserved from the stored document.
func (s *Store) UpdateProject(ctx context.Context, id string, input models.ProjectInput) (models.Project, error) {
	ref := s.client.Collection(projectsCollection).Doc(id)
	snap, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
		}
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("failed to get project: %w", err))
	}
	var current projectDoc
	if err := snap.DataTo(&current); err != nil {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("failed to decode project %s: %w", id, err))
	}

	d := projectDoc{
		Title:             input.Title,
		Location:          input.Location,
		Price:             input.Price,
		Description:       input.Description,
		Status:            string(input.Status),
		ImageURL:          input.ImageURL,
		LogoURL:           input.LogoURL,
		BuildingAmenities: emptyIfNil(input.BuildingAmenities),
		Order:             current.Order,
		Units:             unitDocs(input.Units),
		CreatedAt:         current.CreatedAt,
		UpdatedAt:         time.Now().UTC(),
	}
	if _, err := ref.Set(ctx, d); err != nil {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("failed to set project: %w", err))
	}
	return d.toModel(id), nil
}

// UpdateProjectOrder sets the order field on a single project document
func (s *Store) UpdateProjectOrder(ctx context.Context, id string, order int) error {
	ref := s.client.Collection(projectsCollection).Doc(id)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "order", Value: order},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if isNotFound(err) {
			return store.WrapErr(store.OpUpdateProjectOrder, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
		}
		return store.WrapErr(store.OpUpdateProjectOrder, fmt.Errorf("failed to update project order: %w", err))
	}
	return nil
}

// DeleteProject deletes the project document; the embedded units go with it.
// Deleting a missing id is reported as not found for contract consistency.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	ref := s.client.Collection(projectsCollection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return store.WrapErr(store.OpDeleteProject, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
		}
		return store.WrapErr(store.OpDeleteProject, fmt.Errorf("failed to get project: %w", err))
	}
	if _, err := ref.Delete(ctx); err != nil {
		return store.WrapErr(store.OpDeleteProject, fmt.Errorf("failed to delete project: %w", err))
	}
	return nil
}

func (s *Store) maxProjectOrder(ctx context.Context) (int, error) {
	iter := s.client.Collection(projectsCollection).
		OrderBy("order", firestore.Desc).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query max order: %w", err)
	}
	var d projectDoc
	if err := doc.DataTo(&d); err != nil {
		return 0, fmt.Errorf("failed to decode project %s: %w", doc.Ref.ID, err)
	}
	return d.Order, nil
}

func unitDocs(inputs []models.UnitInput) []unitDoc {
	docs := make([]unitDoc, 0, len(inputs))
	for _, in := range inputs {
		docs = append(docs, unitDoc{
			ID:             uuid.NewString(),
			Name:           in.Name,
			Size:           in.Size,
			Bedrooms:       in.Bedrooms,
			Bathrooms:      in.Bathrooms,
			Balconies:      in.Balconies,
			Features:       emptyIfNil(in.Features),
			FloorPlanImage: in.FloorPlanImage,
		})
	}
	return docs
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
