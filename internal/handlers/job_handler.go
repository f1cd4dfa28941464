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

const recentJobsLimit = 50

type JobHandler struct {
	jobRepo repositories.JobRepository
}

func NewJobHandler(jobRepo repositories.JobRepository) *JobHandler {
	return &JobHandler{jobRepo: jobRepo}
}

// HandleListJobs handles GET /api/jobs. This is the shared board view:
// the most recent entries across all accounts.
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindRecent(recentJobsLimit)
	if err != nil {
		log.Printf("❌ Failed to list jobs: %v", err)
		return internalError(c)
	}

	return c.JSON(jobs)
}

// HandleCreateJob handles POST /api/jobs.
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest
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

	status := req.Status
	if status == "" {
		status = models.JobStatusNew
	}

	job := &models.Job{
		UserID:      currentUser(c).ID,
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Source:      req.Source,
		URL:         req.URL,
		MatchScore:  req.MatchScore,
		Status:      status,
	}

	if err := h.jobRepo.Create(job); err != nil {
		log.Printf("❌ Failed to create job: %v", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleUpdateJob handles PATCH /api/jobs/:id, primarily status moves on
// the tracking board. Any status may move to any other status; only the
// value set itself is enforced, and only here at the input boundary.
func (h *JobHandler) HandleUpdateJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jobNotFound(c)
	}

	var req models.UpdateJobRequest
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

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Source != nil {
		fields["source"] = *req.Source
	}
	if req.URL != nil {
		fields["url"] = *req.URL
	}
	if req.MatchScore != nil {
		fields["match_score"] = *req.MatchScore
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no fields to update",
		})
	}

	job, err := h.jobRepo.Update(jobID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return jobNotFound(c)
		}
		log.Printf("❌ Failed to update job %s: %v", jobID, err)
		return internalError(c)
	}

	return c.JSON(job)
}

// HandleRecommendJobs handles POST /api/jobs/recommend. The response is
// canned; see services.RecommendJobs.
func (h *JobHandler) HandleRecommendJobs(c *fiber.Ctx) error {
	var req models.RecommendRequest
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

	return c.JSON(services.RecommendJobs())
}

func jobNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "job not found",
	})
}
