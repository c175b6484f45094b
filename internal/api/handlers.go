package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sredowan/uhud-builders-new/internal/catalog"
	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store"
)

// Handler holds the catalog service and provides HTTP handlers
type Handler struct {
	catalog *catalog.Service
	store   store.Store
}

// NewHandler creates a new handler instance
func NewHandler(svc *catalog.Service, st store.Store) *Handler {
	return &Handler{catalog: svc, store: st}
}

// writeError maps catalog/store failures to HTTP responses
func writeError(c *gin.Context, err error) {
	var vErr *catalog.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	log.Printf("store operation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "store operation failed"})
}

// Health handles GET /health and /ready
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	state, msg := h.catalog.State()
	resp := gin.H{"status": "healthy", "catalog": string(state)}
	if msg != "" {
		resp["message"] = msg
	}
	c.JSON(http.StatusOK, resp)
}

// GetProjects handles GET /api/projects
func (h *Handler) GetProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Projects())
}

// GetProject handles GET /api/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	p, ok := h.catalog.GetProject(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProject handles POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var input models.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	created, err := h.catalog.CreateProject(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProject handles PUT /api/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var input models.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.catalog.UpdateProject(ctx, c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProject handles DELETE /api/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.catalog.DeleteProject(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReorderProject handles PUT /api/projects/:id/reorder
func (h *Handler) ReorderProject(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Direction catalog.Direction `json:"direction"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.catalog.Reorder(ctx, c.Param("id"), body.Direction); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.catalog.Projects())
}

// GetGallery handles GET /api/gallery
func (h *Handler) GetGallery(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Gallery())
}

// AddGalleryItem handles POST /api/gallery
func (h *Handler) AddGalleryItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var input models.GalleryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	created, err := h.catalog.AddGalleryItem(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveGalleryItem handles DELETE /api/gallery/:id
func (h *Handler) RemoveGalleryItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.catalog.RemoveGalleryItem(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMessages handles GET /api/messages (admin)
func (h *Handler) GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Messages())
}

// CreateMessage handles POST /api/messages (public contact form)
func (h *Handler) CreateMessage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var input models.MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	created, err := h.catalog.AddMessage(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// MarkMessageRead handles PATCH /api/messages/:id/read
func (h *Handler) MarkMessageRead(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Read *bool `json:"read"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	read := true
	if body.Read != nil {
		read = *body.Read
	}

	updated, err := h.catalog.MarkMessageRead(ctx, c.Param("id"), read)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMessage handles DELETE /api/messages/:id
func (h *Handler) DeleteMessage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.catalog.DeleteMessage(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSettings handles GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Settings())
}

// UpdateSettings handles PUT /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var input models.SiteSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resolved, err := h.catalog.UpdateSettings(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// ReloadCatalog handles POST /api/seed: refetches everything and seeds any
// collection that is empty.
func (h *Handler) ReloadCatalog(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if err := h.catalog.Load(ctx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": len(h.catalog.Projects()),
		"gallery":  len(h.catalog.Gallery()),
	})
}
