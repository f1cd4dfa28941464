package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"placementprime/internal/models"
	"placementprime/internal/repositories"
)

type UserHandler struct {
	userRepo repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// HandleSyncUser handles POST /api/users/sync. The client pushes its
// identity-provider claims after signup; an existing account is returned
// as-is, a new one is created.
func (h *UserHandler) HandleSyncUser(c *fiber.Ctx) error {
	var req models.SyncUserRequest
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

	existing, err := h.userRepo.FindByFirebaseUID(req.FirebaseUID)
	if err == nil {
		return c.Status(fiber.StatusOK).JSON(existing)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("❌ Failed to look up user %s: %v", req.FirebaseUID, err)
		return internalError(c)
	}

	user := &models.User{
		FirebaseUID: req.FirebaseUID,
		Email:       req.Email,
		Name:        req.Name,
	}
	if err := h.userRepo.Create(user); err != nil {
		log.Printf("❌ Failed to create user %s: %v", req.FirebaseUID, err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}
