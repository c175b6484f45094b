package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sredowan/uhud-builders-new/internal/catalog"
	"github.com/sredowan/uhud-builders-new/internal/models"
	"github.com/sredowan/uhud-builders-new/internal/store/memory"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *catalog.Service, *memory.Store) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	gin.SetMode(gin.TestMode)

	st := memory.New()
	svc := catalog.New(st)
	require.NoError(t, svc.Load(context.Background()))

	h := NewHandler(svc, st)
	r := gin.New()
	r.GET("/health", h.Health)

	apiGroup := r.Group("/api")
	apiGroup.Use(OptionalAuthMiddleware())
	{
		apiGroup.GET("/projects", h.GetProjects)
		apiGroup.GET("/projects/:id", h.GetProject)
		apiGroup.GET("/gallery", h.GetGallery)
		apiGroup.GET("/settings", h.GetSettings)
		apiGroup.POST("/messages", h.CreateMessage)

		admin := apiGroup.Group("")
		admin.Use(AuthMiddleware(), AdminMiddleware())
		{
			admin.POST("/projects", h.CreateProject)
			admin.PUT("/projects/:id", h.UpdateProject)
			admin.DELETE("/projects/:id", h.DeleteProject)
			admin.PUT("/projects/:id/reorder", h.ReorderProject)
			admin.POST("/gallery", h.AddGalleryItem)
			admin.DELETE("/gallery/:id", h.RemoveGalleryItem)
			admin.GET("/messages", h.GetMessages)
			admin.PATCH("/messages/:id/read", h.MarkMessageRead)
			admin.DELETE("/messages/:id", h.DeleteMessage)
			admin.PUT("/settings", h.UpdateSettings)
			admin.POST("/seed", h.ReloadCatalog)
		}
	}
	return r, svc, st
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"email":   "admin@uhudbuilders.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "ready", resp["catalog"])
}

func TestGetProjectsIsPublic(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var projects []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(t, projects, 4)
}

func TestGetProjectNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/projects/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProjectRequiresAdmin(t *testing.T) {
	r, _, _ := newTestRouter(t)
	input := models.ProjectInput{Title: "Tower", ImageURL: "/t.jpg"}

	w := doRequest(r, http.MethodPost, "/api/projects", "", input)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/api/projects", signToken(t, "Viewer"), input)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPost, "/api/projects", signToken(t, "Admin"), input)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Tower", created.Title)
	assert.Equal(t, 5, created.Order)
}

func TestCreateProjectValidation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/projects", signToken(t, "Admin"),
		models.ProjectInput{ImageURL: "/t.jpg"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "title")
}

func TestUpdateProjectNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/projects/nope", signToken(t, "Admin"),
		models.ProjectInput{Title: "X", ImageURL: "/x.jpg"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReorderReturnsUpdatedList(t *testing.T) {
	r, svc, _ := newTestRouter(t)
	second := svc.Projects()[1]

	w := doRequest(r, http.MethodPut, "/api/projects/"+second.ID+"/reorder",
		signToken(t, "Admin"), gin.H{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code)

	var projects []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	require.Len(t, projects, 4)
	assert.Equal(t, second.ID, projects[0].ID)
}

func TestReorderInvalidDirection(t *testing.T) {
	r, svc, _ := newTestRouter(t)
	first := svc.Projects()[0]

	w := doRequest(r, http.MethodPut, "/api/projects/"+first.ID+"/reorder",
		signToken(t, "Admin"), gin.H{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProject(t *testing.T) {
	r, svc, _ := newTestRouter(t)
	first := svc.Projects()[0]

	w := doRequest(r, http.MethodDelete, "/api/projects/"+first.ID, signToken(t, "Admin"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.Projects(), 3)
}

func TestContactFormIsPublic(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/messages", "", models.MessageInput{
		Name:    "Karim",
		Email:   "karim@example.com",
		Message: "Looking for a 3-bed flat",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.ContactMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.False(t, created.Read)
	assert.Len(t, svc.Messages(), 1)
}

func TestMessagesListRequiresAdmin(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/messages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/messages", signToken(t, "Admin"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMarkMessageReadDefaultsTrue(t *testing.T) {
	r, svc, _ := newTestRouter(t)
	created, err := svc.AddMessage(context.Background(), models.MessageInput{Name: "N", Message: "M"})
	require.NoError(t, err)

	w := doRequest(r, http.MethodPatch, "/api/messages/"+created.ID+"/read",
		signToken(t, "Admin"), gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.ContactMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Read)

	// Explicit read:false flips it back
	w = doRequest(r, http.MethodPatch, "/api/messages/"+created.ID+"/read",
		signToken(t, "Admin"), gin.H{"read": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.False(t, updated.Read)
}

func TestUpdateSettingsReturnsResolved(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/settings", signToken(t, "Admin"), gin.H{
		"contact": gin.H{"phone": "+880 1888 888888"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resolved models.SiteSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	require.NotNil(t, resolved.Contact)
	assert.Equal(t, "+880 1888 888888", resolved.Contact.Phone)
	// Groups absent from the payload come back resolved from defaults
	require.NotNil(t, resolved.SEO)
	assert.NotEmpty(t, resolved.SEO.SiteTitle)
}

func TestGetSettingsIsPublic(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resolved models.SiteSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	require.NotNil(t, resolved.HomePage)
	assert.NotEmpty(t, resolved.HomePage.HeroTitle)
}

func TestSeedEndpointReportsCounts(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/seed", signToken(t, "Admin"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp["projects"])
	assert.Equal(t, 4, resp["gallery"])
}

func TestMalformedTokenRejected(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doRequest(r, http.MethodDelete, "/api/projects/x", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
