package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"storybloom-admin-backend/internal/config"
	"storybloom-admin-backend/internal/database"
	"storybloom-admin-backend/internal/generation"
	"storybloom-admin-backend/internal/handlers"
	"storybloom-admin-backend/internal/letterhunt"
	"storybloom-admin-backend/internal/middleware"
	"storybloom-admin-backend/internal/render"
	"storybloom-admin-backend/internal/services"
	"storybloom-admin-backend/internal/storage"
	"storybloom-admin-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect for migrations: %v", err)
		}
		if err := migrator.Run(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		migrator.Close()

		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbClient.Close()
	} else {
		log.Println("Warning: DATABASE_URL not set, database-backed endpoints will be unavailable")
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	s3Client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3VideoBucket, cfg.S3PublicURL)
	if err != nil {
		log.Fatalf("Failed to create s3 client: %v", err)
	}
	if s3Client == nil {
		log.Println("Warning: S3 not configured, video storage endpoints will be unavailable")
	}

	var genClient *generation.Client
	if cfg.GenerationAPIKey != "" {
		genClient = generation.NewClient(cfg.GenerationAPIBaseURL, cfg.GenerationAPIKey)
	} else {
		log.Println("Warning: GENERATION_API_KEY not set, asset generation will be unavailable")
	}

	var renderClient *render.Client
	if cfg.RenderAPIBaseURL != "" {
		renderClient = render.NewClient(cfg.RenderAPIBaseURL, cfg.RenderAPIKey)
	} else {
		log.Println("Warning: RENDER_API_BASE_URL not set, render submission will be unavailable")
	}

	resolver := letterhunt.NewResolver(dbClient)
	renderService := services.NewRenderService(dbClient, renderClient, s3Client)

	assetsHandler := handlers.NewAssetsHandler(dbClient, storageClient)
	childrenHandler := handlers.NewChildrenHandler(dbClient)
	catalogHandler := handlers.NewCatalogHandler(dbClient, supabaseClient)
	letterHuntHandler := handlers.NewLetterHuntHandler(dbClient, resolver, genClient, renderClient, cfg.WebhookCallbackURL)
	videosHandler := handlers.NewVideosHandler(s3Client)
	webhookHandler := handlers.NewWebhookHandler(renderService, cfg.RenderWebhookToken)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", handlers.HealthHandler)
	r.POST("/api/v1/webhooks/render", webhookHandler.HandleRenderWebhook)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/assets", assetsHandler.ListAssets)
		api.POST("/assets", assetsHandler.UploadAsset)
		api.GET("/assets/:asset_id", assetsHandler.GetAsset)
		api.POST("/assets/:asset_id/review", assetsHandler.ReviewAsset)

		api.GET("/children", childrenHandler.ListChildren)
		api.GET("/children/:child_id", childrenHandler.GetChild)

		api.GET("/templates", catalogHandler.ListTemplates)
		api.GET("/projects", catalogHandler.ListProjects)

		api.POST("/letter-hunt/requests", letterHuntHandler.CreateRequest)
		api.GET("/letter-hunt/requests", letterHuntHandler.ListRequests)
		api.GET("/letter-hunt/requests/:request_id", letterHuntHandler.GetRequest)
		api.GET("/letter-hunt/requests/:request_id/payload", letterHuntHandler.GetPayload)
		api.POST("/letter-hunt/requests/:request_id/generate", letterHuntHandler.GenerateSlot)
		api.POST("/letter-hunt/requests/:request_id/generate-missing", letterHuntHandler.GenerateMissing)
		api.POST("/letter-hunt/requests/:request_id/submit", letterHuntHandler.SubmitRender)

		api.GET("/videos", videosHandler.ListVideos)
		api.DELETE("/videos", videosHandler.DeleteVideo)
		api.GET("/videos/presign", videosHandler.PresignVideo)
	}

	log.Printf("Starting server on port %s (%s)", cfg.Port, cfg.Environment)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
