package models

import "time"

// ProjectStatus represents the lifecycle stage of a building project
type ProjectStatus string

const (
	StatusUpcoming  ProjectStatus = "Upcoming"
	StatusOngoing   ProjectStatus = "Ongoing"
	StatusCompleted ProjectStatus = "Completed"
)

// Project represents a building project in the catalog
type Project struct {
	ID                string        `json:"id" db:"project_id"`
	Title             string        `json:"title" db:"title"`
	Location          string        `json:"location" db:"location"`
	Price             string        `json:"price" db:"price"`
	Description       string        `json:"description" db:"description"`
	Status            ProjectStatus `json:"status" db:"status"`
	ImageURL          string        `json:"imageUrl" db:"image_url"`
	LogoURL           string        `json:"logoUrl,omitempty" db:"logo_url"`
	BuildingAmenities []string      `json:"buildingAmenities" db:"building_amenities"`
	Order             int           `json:"order" db:"display_order"`
	Units             []Unit        `json:"units"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time     `json:"updatedAt" db:"updated_at"`
}

// Unit represents a unit configuration owned by a project. Units are always
// written as a full set alongside their project; they have no independent
// update path.
type Unit struct {
	ID             string   `json:"id" db:"unit_id"`
	ProjectID      string   `json:"projectId" db:"project_id"`
	Name           string   `json:"name" db:"name"`
	Size           string   `json:"size" db:"size"`
	Bedrooms       int      `json:"bedrooms" db:"bedrooms"`
	Bathrooms      int      `json:"bathrooms" db:"bathrooms"`
	Balconies      int      `json:"balconies" db:"balconies"`
	Features       []string `json:"features" db:"features"`
	FloorPlanImage string   `json:"floorPlanImage,omitempty" db:"floor_plan_image"`
}

// ProjectInput carries the editable fields for creating or updating a
// project. ID, order and timestamps are store-assigned and never part of the
// payload.
type ProjectInput struct {
	Title             string        `json:"title"`
	Location          string        `json:"location"`
	Price             string        `json:"price"`
	Description       string        `json:"description"`
	Status            ProjectStatus `json:"status"`
	ImageURL          string        `json:"imageUrl"`
	LogoURL           string        `json:"logoUrl"`
	BuildingAmenities []string      `json:"buildingAmenities"`
	Units             []UnitInput   `json:"units"`
}

// UnitInput carries the editable fields of a unit
type UnitInput struct {
	Name           string   `json:"name"`
	Size           string   `json:"size"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	Balconies      int      `json:"balconies"`
	Features       []string `json:"features"`
	FloorPlanImage string   `json:"floorPlanImage"`
}

// GalleryItem represents a photo gallery entry
type GalleryItem struct {
	ID        string    `json:"id" db:"item_id"`
	URL       string    `json:"url" db:"url"`
	Caption   string    `json:"caption,omitempty" db:"caption"`
	Category  string    `json:"category,omitempty" db:"category"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// GalleryItemInput carries the editable fields of a gallery item
type GalleryItemInput struct {
	URL      string `json:"url"`
	Caption  string `json:"caption"`
	Category string `json:"category"`
}

// ContactMessage represents an inbound contact-form message
type ContactMessage struct {
	ID      string    `json:"id" db:"message_id"`
	Name    string    `json:"name" db:"name"`
	Email   string    `json:"email" db:"email"`
	Phone   string    `json:"phone" db:"phone"`
	Message string    `json:"message" db:"message"`
	Date    time.Time `json:"date" db:"date"`
	Read    bool      `json:"read" db:"read"`
}

// MessageInput carries the fields submitted by the public contact form
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
