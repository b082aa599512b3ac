package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"internmatch/internship-matcher/internal/config"
	"internmatch/internship-matcher/internal/handlers"
	"internmatch/internship-matcher/internal/repositories"
	"internmatch/internship-matcher/internal/services"
)

const embeddingDim = 768

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	resumeRepo := repositories.NewResumeRepository(db)
	internshipRepo := repositories.NewInternshipRepository(db)
	recRepo := repositories.NewRecommendationRepository(db)
	embeddingRepo := repositories.NewEmbeddingRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resumeParser := services.NewResumeParserService()
	extractor := services.NewFeatureExtractor()
	regionClassifier := services.NewRegionClassifier(cfg.Matcher.RegionExtraTokens)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. A missing API key is a valid degraded
	// state: embeddings and explanations fall back deterministically.
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.TextModel, cfg.Gemini.EmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set: embeddings unavailable, using heuristic signals and template explanations")
	}

	// Select the vector storage backend once at startup
	var vectorStore services.VectorStore
	switch cfg.Matcher.VectorBackend {
	case "qdrant":
		vectorStore, err = services.NewQdrantVectorStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			embeddingDim,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant vector store: %v", err)
		}
		log.Println("✅ Qdrant vector store initialized successfully")
	case "inline":
		vectorStore = services.NewInlineVectorStore(embeddingRepo)
		log.Println("✅ Inline vector store initialized successfully")
	default:
		log.Fatalf("❌ Unknown vector backend: %s", cfg.Matcher.VectorBackend)
	}

	embeddingService := services.NewEmbeddingService(geminiService, vectorStore)

	// Load the ranker artifact if one is present. A malformed artifact
	// is logged and the heuristic strategy serves the whole process
	// lifetime instead.
	rankerModel, err := services.LoadRanker(cfg.Matcher.RankerPath)
	if err != nil {
		log.Printf("⚠️  %v. Falling back to heuristic scoring\n", err)
		rankerModel = nil
	}

	scorer := services.NewScorer(rankerModel, embeddingService, cfg.Matcher.MaxScore)
	log.Printf("✅ Scorer initialized (strategy: %s)\n", scorer.Strategy())

	explainer := services.NewExplanationService(geminiService, cfg.Matcher.ExplanationTimeout)

	scraper := services.NewRapidAPIScraper(cfg.RapidAPI.Key, cfg.RapidAPI.Host)
	ingestService := services.NewIngestService(internshipRepo, extractor, regionClassifier, embeddingService)

	matcher := services.NewMatcherService(
		resumeRepo,
		internshipRepo,
		recRepo,
		scorer,
		explainer,
		cfg.Worker.RankingConcurrency,
		cfg.Matcher.ResultCap,
	)
	log.Println("✅ Matcher service initialized")

	// Initialize refresh worker
	refreshWorker := services.NewRefreshWorker(
		scraper,
		ingestService,
		cfg.Worker.Concurrency,
		cfg.Worker.RefreshQuery,
		cfg.Worker.RefreshLimit,
	)

	ctx := context.Background()
	refreshWorker.Start(ctx)
	log.Println("✅ Refresh worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		resumeRepo,
		storageService,
		resumeParser,
		extractor,
		embeddingService,
		refreshWorker,
		cfg.Storage.MaxFileSize,
	)
	recommendHandler := handlers.NewRecommendHandler(matcher, resumeRepo, recRepo)
	ingestHandler := handlers.NewIngestHandler(scraper, ingestService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Internship Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload-resume", uploadHandler.HandleUploadResume)
	api.Get("/recommendations/:resume_id", recommendHandler.HandleRecommend)
	api.Get("/recommendations/:resume_id/history", recommendHandler.HandleHistory)
	api.Post("/ingest", ingestHandler.HandleIngest)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Internship Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload-resume",
				"GET /api/v1/recommendations/:resume_id",
				"GET /api/v1/recommendations/:resume_id/history",
				"POST /api/v1/ingest",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		refreshWorker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
