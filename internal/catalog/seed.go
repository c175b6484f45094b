package catalog

import (
	"context"
	"fmt"

	"github.com/sredowan/uhud-builders-new/internal/logging"
	"github.com/sredowan/uhud-builders-new/internal/models"
)

// Sample data inserted the first time a collection is observed empty. The
// relative order of the sample projects is fixed; order values land at 1..4
// through the normal max+1 assignment.

func sampleProjects() []models.ProjectInput {
	return []models.ProjectInput{
		{
			Title:             "Uhud Heights",
			Location:          "Dhanmondi, Dhaka",
			Price:             "৳85 Lac - ৳1.2 Cr",
			Description:       "A 10-storey residential tower with south-facing balconies and a rooftop garden.",
			Status:            models.StatusOngoing,
			ImageURL:          "/images/projects/uhud-heights.jpg",
			BuildingAmenities: []string{"Lift", "Generator", "Rooftop Garden", "CCTV"},
			Units: []models.UnitInput{
				{Name: "Type A", Size: "1250 Sq. Ft.", Bedrooms: 3, Bathrooms: 3, Balconies: 2, Features: []string{"Drawing", "Dining", "Kitchen"}},
				{Name: "Type B", Size: "1450 Sq. Ft.", Bedrooms: 3, Bathrooms: 3, Balconies: 3, Features: []string{"Drawing", "Dining", "Kitchen", "Servant Room"}},
			},
		},
		{
			Title:             "Uhud Lake View",
			Location:          "Uttara, Dhaka",
			Price:             "৳95 Lac - ৳1.5 Cr",
			Description:       "Lakeside apartments with open layouts and dedicated parking.",
			Status:            models.StatusUpcoming,
			ImageURL:          "/images/projects/uhud-lake-view.jpg",
			BuildingAmenities: []string{"Lift", "Generator", "Parking", "Community Hall"},
			Units: []models.UnitInput{
				{Name: "Type A", Size: "1600 Sq. Ft.", Bedrooms: 4, Bathrooms: 4, Balconies: 3, Features: []string{"Drawing", "Dining", "Family Living"}},
			},
		},
		{
			Title:             "Uhud Square",
			Location:          "Banani, Dhaka",
			Price:             "Contact for price",
			Description:       "Commercial floors designed for showrooms and corporate offices.",
			Status:            models.StatusOngoing,
			ImageURL:          "/images/projects/uhud-square.jpg",
			BuildingAmenities: []string{"Lift", "Generator", "Fire Safety", "Basement Parking"},
			Units:             []models.UnitInput{},
		},
		{
			Title:             "Uhud Garden City",
			Location:          "Bashundhara, Dhaka",
			Price:             "৳70 Lac - ৳90 Lac",
			Description:       "Completed gated community of six residential buildings with shared green space.",
			Status:            models.StatusCompleted,
			ImageURL:          "/images/projects/uhud-garden-city.jpg",
			BuildingAmenities: []string{"Lift", "Generator", "Playground", "Mosque"},
			Units: []models.UnitInput{
				{Name: "Type A", Size: "1100 Sq. Ft.", Bedrooms: 3, Bathrooms: 2, Balconies: 2, Features: []string{"Drawing", "Dining"}},
			},
		},
	}
}

func sampleGallery() []models.GalleryItemInput {
	return []models.GalleryItemInput{
		{URL: "/images/gallery/handover-1.jpg", Caption: "Flat handover ceremony", Category: "Events"},
		{URL: "/images/gallery/site-progress.jpg", Caption: "Structure work in progress", Category: "Construction"},
		{URL: "/images/gallery/rooftop.jpg", Caption: "Rooftop garden, Uhud Heights", Category: "Amenities"},
		{URL: "/images/gallery/lobby.jpg", Caption: "Lobby finishing", Category: "Interiors"},
	}
}

// seedIfEmpty populates the sample projects and gallery items when the
// respective collection is empty. Each collection is checked independently.
// The check-then-insert is not guarded by any server-side constraint, so two
// clients bootstrapping an empty store at the same time can both seed; this
// is an accepted limitation of a low-traffic admin tool.
func (s *Service) seedIfEmpty(ctx context.Context, projects []models.Project, gallery []models.GalleryItem) ([]models.Project, []models.GalleryItem, error) {
	if len(projects) == 0 {
		logging.LogKV("info", "seeding sample projects", map[string]interface{}{"count": len(sampleProjects())})
		for _, input := range sampleProjects() {
			created, err := s.store.CreateProject(ctx, input)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to seed projects: %w", err)
			}
			projects = append(projects, created)
		}
	}

	if len(gallery) == 0 {
		logging.LogKV("info", "seeding sample gallery", map[string]interface{}{"count": len(sampleGallery())})
		for _, input := range sampleGallery() {
			created, err := s.store.AddGalleryItem(ctx, input)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to seed gallery: %w", err)
			}
			// Newest first, matching the list ordering
			gallery = append([]models.GalleryItem{created}, gallery...)
		}
	}

	return projects, gallery, nil
}
