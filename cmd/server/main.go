package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sredowan/uhud-builders-new/internal/api"
	"github.com/sredowan/uhud-builders-new/internal/catalog"
	"github.com/sredowan/uhud-builders-new/internal/logging"
	"github.com/sredowan/uhud-builders-new/internal/metrics"
	"github.com/sredowan/uhud-builders-new/internal/store"
	"github.com/sredowan/uhud-builders-new/internal/store/firestore"
	"github.com/sredowan/uhud-builders-new/internal/store/memory"
	"github.com/sredowan/uhud-builders-new/internal/store/postgres"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)
	log.Printf("Catalog service starting (GIT_SHA=%s BUILD_TIME=%s)", os.Getenv("GIT_SHA"), os.Getenv("BUILD_TIME"))

	st, err := newStore()
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	svc := catalog.New(st)

	// Initial load is non-fatal; the service stays in the error state and
	// /api/seed can retry once the store is reachable.
	loadCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := svc.Load(loadCtx); err != nil {
		log.Printf("[WARN] Initial catalog load failed: %v", err)
	}
	cancel()

	handler := api.NewHandler(svc, st)
	router := setupRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

// newStore selects the backend from STORE_DRIVER: postgres (default),
// firestore, or memory for local development.
func newStore() (store.Store, error) {
	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		driver = "postgres"
	}
	switch driver {
	case "postgres":
		return postgres.New()
	case "firestore":
		return firestore.New(context.Background())
	case "memory":
		log.Println("[WARN] Using in-memory store; data will not survive restarts")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}

func setupRouter(handler *api.Handler) *gin.Engine {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig()))

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api")
	{
		// Parse JWT if present to expose role info for read endpoints
		v1.Use(api.OptionalAuthMiddleware())

		// Public reads
		v1.GET("/projects", handler.GetProjects)
		v1.GET("/projects/:id", handler.GetProject)
		v1.GET("/gallery", handler.GetGallery)
		v1.GET("/settings", handler.GetSettings)

		// Public contact form
		v1.POST("/messages", handler.CreateMessage)

		// Protected admin endpoints
		admin := v1.Group("")
		admin.Use(api.AuthMiddleware(), api.AdminMiddleware())
		{
			admin.POST("/projects", handler.CreateProject)
			admin.PUT("/projects/:id", handler.UpdateProject)
			admin.DELETE("/projects/:id", handler.DeleteProject)
			admin.PUT("/projects/:id/reorder", handler.ReorderProject)

			admin.POST("/gallery", handler.AddGalleryItem)
			admin.DELETE("/gallery/:id", handler.RemoveGalleryItem)

			admin.GET("/messages", handler.GetMessages)
			admin.PATCH("/messages/:id/read", handler.MarkMessageRead)
			admin.DELETE("/messages/:id", handler.DeleteMessage)

			admin.PUT("/settings", handler.UpdateSettings)

			admin.POST("/seed", handler.ReloadCatalog)
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "uhud-builders-api",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}

// corsConfig builds the CORS policy from ALLOWED_ORIGINS (comma-separated).
// An empty value allows all origins for local development.
func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
