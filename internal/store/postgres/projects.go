package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

const projectColumns = `project_id, title, location, price, description, status, image_url, logo_url, building_amenities, display_order, created_at, updated_at`

func scanProject(row pgx.Row) (models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Location,
		&p.Price,
		&p.Description,
		&p.Status,
		&p.ImageURL,
		&p.LogoURL,
		&p.BuildingAmenities,
		&p.Order,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// ListProjects returns all projects ascending by display order, each with its
// full unit set attached.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY display_order ASC`)
	if err != nil {
		return nil, store.WrapErr(store.OpListProjects, fmt.Errorf("failed to query projects: %w", err))
	}
	defer rows.Close()

	var projects []models.Project
	index := make(map[string]int)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, store.WrapErr(store.OpListProjects, fmt.Errorf("failed to scan project: %w", err))
		}
		p.Units = []models.Unit{}
		index[p.ID] = len(projects)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapErr(store.OpListProjects, fmt.Errorf("error iterating projects: %w", err))
	}

	unitRows, err := s.Pool.Query(ctx,
		`SELECT unit_id, project_id, name, size, bedrooms, bathrooms, balconies, features, floor_plan_image
		 FROM project_units ORDER BY unit_id`)
	if err != nil {
		return nil, store.WrapErr(store.OpListProjects, fmt.Errorf("failed to query units: %w", err))
	}
	defer unitRows.Close()

	for unitRows.Next() {
		var u models.Unit
		if err := unitRows.Scan(&u.ID, &u.ProjectID, &u.Name, &u.Size, &u.Bedrooms, &u.Bathrooms, &u.Balconies, &u.Features, &u.FloorPlanImage); err != nil {
			return nil, store.WrapErr(store.OpListProjects, fmt.Errorf("failed to scan unit: %w", err))
		}
		if i, ok := index[u.ProjectID]; ok {
			projects[i].Units = append(projects[i].Units, u)
		}
	}
	if err := unitRows.Err(); err != nil {
		return nil, store.WrapErr(store.OpListProjects, fmt.Errorf("error iterating units: %w", err))
	}

	return projects, nil
}

// CreateProject inserts a project with order = max(existing)+1 and persists
// its units under the new id. The order assignment is read-then-write inside
// the insert; it is not guarded against concurrent writers.
func (s *Store) CreateProject(ctx context.Context, input models.ProjectInput) (models.Project, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return models.Project{}, store.WrapErr(store.OpCreateProject, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO projects (title, location, price, description, status, image_url, logo_url, building_amenities, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM projects))
		RETURNING ` + projectColumns
	p, err := scanProject(tx.QueryRow(ctx, query,
		input.Title,
		input.Location,
		input.Price,
		input.Description,
		input.Status,
		input.ImageURL,
		input.LogoURL,
		amenitiesParam(input.BuildingAmenities),
	))
	if err != nil {
		return models.Project{}, store.WrapErr(store.OpCreateProject, fmt.Errorf("failed to insert project: %w", err))
	}

	units, err := insertUnits(ctx, tx, p.ID, input.Units)
	if err != nil {
		return models.Project{}, store.WrapErr(store.OpCreateProject, err)
	}
	p.Units = units

	if err := tx.Commit(ctx); err != nil {
		return models.Project{}, store.WrapErr(store.OpCreateProject, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return p, nil
}

// UpdateProject overwrites the editable fields and replaces the unit set as a
// group. Order, createdAt and id are left untouched.
func (s *Store) UpdateProject(ctx context.Context, id string, input models.ProjectInput) (models.Project, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE projects
		SET title = $2,
			location = $3,
			price = $4,
			description = $5,
			status = $6,
			image_url = $7,
			logo_url = $8,
			building_amenities = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE project_id = $1
		RETURNING ` + projectColumns
	p, err := scanProject(tx.QueryRow(ctx, query,
		id,
		input.Title,
		input.Location,
		input.Price,
		input.Description,
		input.Status,
		input.ImageURL,
		input.LogoURL,
		amenitiesParam(input.BuildingAmenities),
	))
	if err == pgx.ErrNoRows {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
	}
	if err != nil {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("failed to update project: %w", err))
	}

	// Replace the unit set as a group
	if _, err := tx.Exec(ctx, `DELETE FROM project_units WHERE project_id = $1`, id); err != nil {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("failed to delete existing units: %w", err))
	}
	units, err := insertUnits(ctx, tx, id, input.Units)
	if err != nil {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, err)
	}
	p.Units = units

	if err := tx.Commit(ctx); err != nil {
		return models.Project{}, store.WrapErr(store.OpUpdateProject, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return p, nil
}

// UpdateProjectOrder sets the display order for a single project. Used by the
// reorder swap, which issues two of these sequentially.
func (s *Store) UpdateProjectOrder(ctx context.Context, id string, order int) error {
	result, err := s.Pool.Exec(ctx,
		`UPDATE projects SET display_order = $2, updated_at = CURRENT_TIMESTAMP WHERE project_id = $1`,
		id, order)
	if err != nil {
		return store.WrapErr(store.OpUpdateProjectOrder, fmt.Errorf("failed to update project order: %w", err))
	}
	if result.RowsAffected() == 0 {
		return store.WrapErr(store.OpUpdateProjectOrder, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
	}
	return nil
}

// DeleteProject deletes the project's units first, then the project itself.
// A project with zero units still deletes cleanly.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return store.WrapErr(store.OpDeleteProject, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM project_units WHERE project_id = $1`, id); err != nil {
		return store.WrapErr(store.OpDeleteProject, fmt.Errorf("failed to delete units: %w", err))
	}

	result, err := tx.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, id)
	if err != nil {
		return store.WrapErr(store.OpDeleteProject, fmt.Errorf("failed to delete project: %w", err))
	}
	if result.RowsAffected() == 0 {
		return store.WrapErr(store.OpDeleteProject, fmt.Errorf("project %s: %w", id, store.ErrNotFound))
	}

	if err := tx.Commit(ctx); err != nil {
		return store.WrapErr(store.OpDeleteProject, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func insertUnits(ctx context.Context, tx pgx.Tx, projectID string, inputs []models.UnitInput) ([]models.Unit, error) {
	units := []models.Unit{}
	for _, in := range inputs {
		var u models.Unit
		err := tx.QueryRow(ctx, `
			INSERT INTO project_units (project_id, name, size, bedrooms, bathrooms, balconies, features, floor_plan_image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING unit_id, project_id, name, size, bedrooms, bathrooms, balconies, features, floor_plan_image`,
			projectID,
			in.Name,
			in.Size,
			in.Bedrooms,
			in.Bathrooms,
			in.Balconies,
			amenitiesParam(in.Features),
			in.FloorPlanImage,
		).Scan(&u.ID, &u.ProjectID, &u.Name, &u.Size, &u.Bedrooms, &u.Bathrooms, &u.Balconies, &u.Features, &u.FloorPlanImage)
		if err != nil {
			return nil, fmt.Errorf("failed to insert unit: %w", err)
		}
		units = append(units, u)
	}
	return units, nil
}

// amenitiesParam normalizes nil slices so text[] columns never receive NULL
func amenitiesParam(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
