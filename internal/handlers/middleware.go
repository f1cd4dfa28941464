package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"placementprime/internal/auth"
	"placementprime/internal/models"
	"placementprime/internal/repositories"
)

const userLocalsKey = "currentUser"

// NewAuthMiddleware verifies the bearer token on each request and
// attaches the local account to the context, provisioning one from the
// token claims on first contact so a fresh signup is never blocked on a
// separate sync call.
func NewAuthMiddleware(verifier auth.TokenVerifier, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c)
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c)
		}

		claims, err := verifier.Verify(c.UserContext(), parts[1])
		if err != nil {
			return unauthorized(c)
		}

		user, err := userRepo.FindByFirebaseUID(claims.UID)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				log.Printf("❌ Failed to look up user %s: %v", claims.UID, err)
				return internalError(c)
			}

			user = &models.User{
				FirebaseUID: claims.UID,
				Email:       claims.Email,
			}
			if claims.Name != "" {
				user.Name = &claims.Name
			}
			if err := userRepo.Create(user); err != nil {
				log.Printf("❌ Failed to provision user %s: %v", claims.UID, err)
				return internalError(c)
			}
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "unauthorized",
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
