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

	"recruitkit/resume-matcher/internal/config"
	"recruitkit/resume-matcher/internal/handlers"
	"recruitkit/resume-matcher/internal/repositories"
	"recruitkit/resume-matcher/internal/services"
)

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
	jdRepo := repositories.NewJobDescriptionRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	statusRepo := repositories.NewCandidateStatusRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	enrichment := services.NewEnrichmentService(geminiService)
	oracle := services.NewGeminiOracle(geminiService, cfg.Analysis.OracleTimeout)

	// Initialize Qdrant
	vectorService, err := services.NewVectorIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Scoring + caching pipeline
	scorer := services.NewHeuristicScorer(cfg.Scoring)
	cache := services.NewAnalysisCache(analysisRepo)

	analyzer := services.NewAnalyzerService(
		jdRepo,
		resumeRepo,
		cache,
		oracle,
		scorer,
		vectorService,
		cfg.Analysis.Concurrency,
	)
	log.Println("✅ Analyzer service initialized")

	statusService := services.NewStatusService(statusRepo, resumeRepo, jdRepo)

	// Initialize ingest workers
	ingest := services.NewIngestService(
		resumeRepo,
		jdRepo,
		extractor,
		enrichment,
		storageService,
		vectorService,
		scorer,
		cache,
		cfg.Quota.MaxResumes,
		cfg.Ingest.JobRetention,
		cfg.Ingest.Concurrency,
	)

	ctx := context.Background()
	ingest.Start(ctx)
	log.Println("✅ Ingest workers started successfully")

	// Initialize handlers
	jdHandler := handlers.NewJDHandler(
		jdRepo,
		extractor,
		enrichment,
		vectorService,
		cfg.Quota.MaxJobDescriptions,
		cfg.Storage.MaxFileSize,
	)
	resumeHandler := handlers.NewResumeHandler(
		ingest,
		resumeRepo,
		analysisRepo,
		statusRepo,
		storageService,
		vectorService,
		cfg.Storage.MaxFileSize,
	)
	candidateHandler := handlers.NewCandidateHandler(analyzer)
	statusHandler := handlers.NewStatusHandler(statusService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 25,
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
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
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

	// Job descriptions
	api.Post("/jd/upload", jdHandler.HandleUpload)
	api.Get("/jd", jdHandler.HandleList)
	api.Delete("/jd/:id", jdHandler.HandleDelete)

	// Resumes
	api.Post("/resume/bulk-upload", resumeHandler.HandleBulkUpload)
	api.Get("/resume/bulk-upload/status/:job_id", resumeHandler.HandleBulkStatus)
	api.Get("/resume", resumeHandler.HandleList)
	api.Delete("/resume/all", resumeHandler.HandleDeleteAll)

	// Candidate analysis
	api.Get("/candidates/full-analysis/:jd_id", candidateHandler.HandleAnalyzeAll)
	api.Get("/candidates/analysis-progress/:jd_id", candidateHandler.HandleProgress)
	api.Post("/candidates/analyze", candidateHandler.HandleAnalyzeOne)
	api.Post("/candidates/analyze/preliminary/:jd_id", candidateHandler.HandleAnalyzePreliminary)

	// Candidate workflow status
	api.Get("/candidates/status/:jd_id", statusHandler.HandleGetStatuses)
	api.Patch("/candidates/status/bulk", statusHandler.HandleBulkUpdate)

	// Ranked listing last so /candidates/:jd_id doesn't shadow the above
	api.Get("/candidates/:jd_id", candidateHandler.HandleRanked)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jd/upload",
				"GET /api/v1/jd",
				"DELETE /api/v1/jd/:id",
				"POST /api/v1/resume/bulk-upload",
				"GET /api/v1/resume/bulk-upload/status/:job_id",
				"GET /api/v1/resume",
				"DELETE /api/v1/resume/all",
				"GET /api/v1/candidates/:jd_id",
				"POST /api/v1/candidates/analyze",
				"GET /api/v1/candidates/full-analysis/:jd_id",
				"POST /api/v1/candidates/analyze/preliminary/:jd_id",
				"GET /api/v1/candidates/analysis-progress/:jd_id",
				"GET /api/v1/candidates/status/:jd_id",
				"PATCH /api/v1/candidates/status/bulk",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		ingest.Stop()
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
