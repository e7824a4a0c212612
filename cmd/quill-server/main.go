package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pkg/quill/api"
	"github.com/quillhq/quill/pkg/quill/auth"
	"github.com/quillhq/quill/pkg/quill/cache"
	"github.com/quillhq/quill/pkg/quill/comments"
	"github.com/quillhq/quill/pkg/quill/database"
	"github.com/quillhq/quill/pkg/quill/follows"
	"github.com/quillhq/quill/pkg/quill/groups"
	"github.com/quillhq/quill/pkg/quill/images"
	"github.com/quillhq/quill/pkg/quill/models"
	"github.com/quillhq/quill/pkg/quill/posts"
	"github.com/quillhq/quill/pkg/quill/profiles"
	"github.com/quillhq/quill/pkg/quill/web"
	"github.com/redis/go-redis/v9"
)

// feedCacheTTL is how long a cached feed page stays fresh
const feedCacheTTL = 20 * time.Second

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("QUILL_DB_PATH")
	if dbPath == "" {
		dbPath = "quill.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := database.GetDB()

	// Run auto-migrations
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Seed a default group so posts have somewhere to go on a fresh install
	if err := ensureDefaultGroup(); err != nil {
		log.Fatalf("Failed to ensure default group exists: %v", err)
	}

	// Image storage: minio when configured, a local media directory otherwise
	storage, mediaDir := setupImageStorage()

	// Optional redis-backed full-page cache for the global feed
	rdb := setupRedis()

	// Set up Gin router
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		web.ServerError(c)
		c.Abort()
	}))

	web.Load(r)

	// Resolve the optional caller on every request
	r.Use(auth.Identity(db))
	requireLogin := auth.LoginRequired()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	if mediaDir != "" {
		r.Static("/media", mediaDir)
	}

	// Auth pages (public)
	authHandler := auth.NewHandler(db)
	authHandler.RegisterRoutes(r.Group("/auth"))

	// Read-only record API (public)
	apiHandler := api.NewHandler(db)
	apiHandler.RegisterRoutes(r.Group("/api"))

	// Group feed (public, slug-addressed)
	groupsHandler := groups.NewHandler(db)
	groupsHandler.RegisterRoutes(r)

	// Feeds, detail, create/edit
	postsHandler := posts.NewHandler(db, storage)
	postsHandler.RegisterRoutes(r, requireLogin, cache.Pages(rdb, feedCacheTTL))

	// Comments and the follow graph (login required)
	commentsHandler := comments.NewHandler(db)
	commentsHandler.RegisterRoutes(r, requireLogin)

	followsHandler := follows.NewHandler(db)
	followsHandler.RegisterRoutes(r, requireLogin)

	// Author profiles, registered last among the root-level routes so the
	// static paths above win over the :username wildcard
	profilesHandler := profiles.NewHandler(db)
	profilesHandler.RegisterRoutes(r)

	r.NoRoute(web.NotFound)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Quill server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureDefaultGroup creates a starter group on an empty database so the
// new-post form has at least one board to offer.
func ensureDefaultGroup() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.Group{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	group := models.Group{
		Title:       "General",
		Slug:        "general",
		Description: "Anything that fits nowhere else",
	}
	if err := db.Create(&group).Error; err != nil {
		return err
	}

	log.Printf("Created default group: %s (slug: %s)", group.Title, group.Slug)
	return nil
}

// setupImageStorage picks minio when QUILL_MINIO_ENDPOINT is set and a
// local media directory otherwise. The directory path comes back so main
// can serve it statically; it is empty for minio.
func setupImageStorage() (images.Storage, string) {
	endpoint := os.Getenv("QUILL_MINIO_ENDPOINT")
	if endpoint != "" {
		bucket := os.Getenv("QUILL_MINIO_BUCKET")
		if bucket == "" {
			bucket = "quill-media"
		}
		baseURL := os.Getenv("QUILL_MINIO_BASE_URL")
		if baseURL == "" {
			baseURL = "http://" + endpoint
		}
		store, err := images.NewMinio(
			endpoint,
			os.Getenv("QUILL_MINIO_ACCESS_KEY"),
			os.Getenv("QUILL_MINIO_SECRET_KEY"),
			bucket,
			baseURL,
			os.Getenv("QUILL_MINIO_SSL") == "true",
		)
		if err != nil {
			log.Fatalf("Failed to connect to minio: %v", err)
		}
		log.Printf("Storing images in minio bucket %s", bucket)
		return store, ""
	}

	mediaDir := os.Getenv("QUILL_MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = "media"
	}
	log.Printf("Storing images in %s", mediaDir)
	return &images.Dir{Root: mediaDir, Prefix: "/media"}, mediaDir
}

// setupRedis returns a redis client when QUILL_REDIS_ADDR is set, nil
// otherwise. A nil client turns the page cache off.
func setupRedis() *redis.Client {
	addr := os.Getenv("QUILL_REDIS_ADDR")
	if addr == "" {
		log.Println("No QUILL_REDIS_ADDR set - feed page cache disabled")
		return nil
	}
	log.Printf("Caching feed pages in redis at %s", addr)
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("QUILL_REDIS_PASSWORD"),
	})
}
