package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"placementprime/internal/models"
	"placementprime/internal/repositories"
	"placementprime/internal/services"
)

type ResumeHandler struct {
	resumeRepo repositories.ResumeRepository
	analyzer   services.AnalyzerService
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	analyzer services.AnalyzerService,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo: resumeRepo,
		analyzer:   analyzer,
	}
}

// HandleListResumes handles GET /api/resumes.
func (h *ResumeHandler) HandleListResumes(c *fiber.Ctx) error {
	user := currentUser(c)

	resumes, err := h.resumeRepo.FindByUser(user.ID)
	if err != nil {
		log.Printf("❌ Failed to list resumes for user %s: %v", user.ID, err)
		return internalError(c)
	}

	return c.JSON(resumes)
}

// HandleCreateResume handles POST /api/resumes. Analysis fields start
// null and stay null until an analyze call succeeds.
func (h *ResumeHandler) HandleCreateResume(c *fiber.Ctx) error {
	var req models.CreateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": firstValidationMessage(err),
		})
	}

	user := currentUser(c)
	resume := &models.Resume{
		UserID:           user.ID,
		Title:            req.Title,
		Content:          req.Content,
		OriginalFilename: req.OriginalFilename,
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		log.Printf("❌ Failed to create resume for user %s: %v", user.ID, err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(resume)
}

// HandleGetResume handles GET /api/resumes/:id. A resume owned by
// another account looks like a missing one.
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resumeNotFound(c)
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return resumeNotFound(c)
		}
		log.Printf("❌ Failed to load resume %s: %v", resumeID, err)
		return internalError(c)
	}

	if resume.UserID != currentUser(c).ID {
		return resumeNotFound(c)
	}

	return c.JSON(resume)
}

// HandleAnalyze handles POST /api/resumes/analyze, the core AI endpoint.
func (h *ResumeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": firstValidationMessage(err),
		})
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resumeId must be a valid id",
		})
	}

	result, err := h.analyzer.Analyze(c.UserContext(), currentUser(c).ID, resumeID, req.JobDescription)
	if err != nil {
		if errors.Is(err, services.ErrResumeNotFound) {
			return resumeNotFound(c)
		}

		// Upstream failures and undecodable output are logged with
		// detail server-side but collapse to a generic message; raw
		// model output never reaches the client.
		log.Printf("❌ Analysis failed for resume %s: %v", resumeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to analyze resume",
		})
	}

	return c.JSON(result)
}

func resumeNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "resume not found",
	})
}
