package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"placementprime/internal/auth"
	"placementprime/internal/repositories"
)

// RegisterRoutes binds every API route onto the app. The same wiring is
// used by main and by handler tests.
func RegisterRoutes(
	app *fiber.App,
	verifier auth.TokenVerifier,
	userRepo repositories.UserRepository,
	userHandler *UserHandler,
	resumeHandler *ResumeHandler,
	uploadHandler *UploadHandler,
	jobHandler *JobHandler,
) {
	requireAuth := NewAuthMiddleware(verifier, userRepo)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/users/sync", userHandler.HandleSyncUser)

	resumes := api.Group("/resumes", requireAuth)
	resumes.Get("/", resumeHandler.HandleListResumes)
	resumes.Post("/", resumeHandler.HandleCreateResume)
	resumes.Post("/analyze", resumeHandler.HandleAnalyze)
	resumes.Post("/upload-pdf", uploadHandler.HandleUploadPDF)
	resumes.Get("/:id", resumeHandler.HandleGetResume)

	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Post("/jobs", requireAuth, jobHandler.HandleCreateJob)
	api.Patch("/jobs/:id", requireAuth, jobHandler.HandleUpdateJob)
	api.Post("/jobs/recommend", requireAuth, jobHandler.HandleRecommendJobs)
}
