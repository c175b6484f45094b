package firestore

import (
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sredowan/uhud-builders-new/internal/models"
)

// Document shapes stored in Firestore. Units are embedded in the project
// document, so replacing a project replaces its unit set atomically and
// deleting the document cascades.

type unitDoc struct {
	ID             string   `firestore:"id"`
	Name           string   `firestore:"name"`
	Size           string   `firestore:"size"`
	Bedrooms       int      `firestore:"bedrooms"`
	Bathrooms      int      `firestore:"bathrooms"`
	Balconies      int      `firestore:"balconies"`
	Features       []string `firestore:"features"`
	FloorPlanImage string   `firestore:"floorPlanImage"`
}

type projectDoc struct {
	Title             string    `firestore:"title"`
	Location          string    `firestore:"location"`
	Price             string    `firestore:"price"`
	Description       string    `firestore:"description"`
	Status            string    `firestore:"status"`
	ImageURL          string    `firestore:"imageUrl"`
	LogoURL           string    `firestore:"logoUrl"`
	BuildingAmenities []string  `firestore:"buildingAmenities"`
	Order             int       `firestore:"order"`
	Units             []unitDoc `firestore:"units"`
	CreatedAt         time.Time `firestore:"createdAt"`
	UpdatedAt         time.Time `firestore:"updatedAt"`
}

type galleryDoc struct {
	URL       string    `firestore:"url"`
	Caption   string    `firestore:"caption"`
	Category  string    `firestore:"category"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type messageDoc struct {
	Name    string    `firestore:"name"`
	Email   string    `firestore:"email"`
	Phone   string    `firestore:"phone"`
	Message string    `firestore:"message"`
	Date    time.Time `firestore:"date"`
	Read    bool      `firestore:"read"`
}

func (d projectDoc) toModel(id string) models.Project {
	units := make([]models.Unit, 0, len(d.Units))
	for _, u := range d.Units {
		units = append(units, models.Unit{
			ID:             u.ID,
			ProjectID:      id,
			Name:           u.Name,
			Size:           u.Size,
			Bedrooms:       u.Bedrooms,
			Bathrooms:      u.Bathrooms,
			Balconies:      u.Balconies,
			Features:       u.Features,
			FloorPlanImage: u.FloorPlanImage,
		})
	}
	return models.Project{
		ID:                id,
		Title:             d.Title,
		Location:          d.Location,
		Price:             d.Price,
		Description:       d.Description,
		Status:            models.ProjectStatus(d.Status),
		ImageURL:          d.ImageURL,
		LogoURL:           d.LogoURL,
		BuildingAmenities: d.BuildingAmenities,
		Order:             d.Order,
		Units:             units,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (d galleryDoc) toModel(id string) models.GalleryItem {
	return models.GalleryItem{
		ID:        id,
		URL:       d.URL,
		Caption:   d.Caption,
		Category:  d.Category,
		CreatedAt: d.CreatedAt,
	}
}

func (d messageDoc) toModel(id string) models.ContactMessage {
	return models.ContactMessage{
		ID:      id,
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Message: d.Message,
		Date:    d.Date,
		Read:    d.Read,
	}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
