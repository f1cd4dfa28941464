package main

import (
	"errors"
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

	"placementprime/internal/auth"
	"placementprime/internal/config"
	"placementprime/internal/handlers"
	"placementprime/internal/models"
	"placementprime/internal/repositories"
	"placementprime/internal/services"
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
	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize services
	pdfParser := services.NewPDFParserService()
	analyzer := services.NewAnalyzerService(resumeRepo, geminiService, cfg.Gemini.AnalysisTimeout)
	verifier := auth.NewFirebaseVerifier(cfg.Firebase.ProjectID)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userRepo)
	resumeHandler := handlers.NewResumeHandler(resumeRepo, analyzer)
	uploadHandler := handlers.NewUploadHandler(pdfParser, cfg.Upload.MaxFileSize)
	jobHandler := handlers.NewJobHandler(jobRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Placement Prime API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1024*1024,
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
	handlers.RegisterRoutes(app, verifier, userRepo, userHandler, resumeHandler, uploadHandler, jobHandler)

	// Seed demo data in development
	if cfg.Server.Env == "development" {
		if err := seedDemoData(userRepo, jobRepo); err != nil {
			log.Printf("⚠️  Failed to seed demo data: %v", err)
		}
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// seedDemoData gives an empty development database a demo account and a
// few tracked applications so the dashboard is not blank.
func seedDemoData(userRepo repositories.UserRepository, jobRepo repositories.JobRepository) error {
	count, err := jobRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	user, err := userRepo.FindByFirebaseUID("demo-user-uid")
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		name := "Demo User"
		user = &models.User{
			FirebaseUID: "demo-user-uid",
			Email:       "demo@placementprime.com",
			Name:        &name,
		}
		if err := userRepo.Create(user); err != nil {
			return err
		}
	}

	linkedin, indeed, direct := "LinkedIn", "Indeed", "Direct"
	score1, score2, score3 := 92, 85, 89
	seeds := []models.Job{
		{
			UserID:      user.ID,
			Title:       "Frontend Developer",
			Company:     "Google",
			Description: "React and TypeScript expertise required.",
			Source:      &linkedin,
			MatchScore:  &score1,
			Status:      models.JobStatusNew,
		},
		{
			UserID:      user.ID,
			Title:       "Backend Engineer",
			Company:     "Amazon",
			Description: "Java and AWS experience needed.",
			Source:      &indeed,
			MatchScore:  &score2,
			Status:      models.JobStatusApplied,
		},
		{
			UserID:      user.ID,
			Title:       "Full Stack Engineer",
			Company:     "Startup",
			Description: "Node.js and Vue.js.",
			Source:      &direct,
			MatchScore:  &score3,
			Status:      models.JobStatusInterview,
		},
	}

	for i := range seeds {
		if err := jobRepo.Create(&seeds[i]); err != nil {
			return err
		}
	}

	log.Println("✅ Demo data seeded")
	return nil
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
