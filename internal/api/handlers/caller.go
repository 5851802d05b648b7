package handlers

import (
	"legaldesk/internal/models"
	"legaldesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getCaller reads the identity AuthMiddleware stored on the context.
func getCaller(c *fiber.Ctx) (service.Caller, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return service.Caller{}, service.ErrUnauthenticated
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return service.Caller{}, service.ErrUnauthenticated
	}
	role, _ := c.Locals("role").(string)
	if !models.Role(role).Valid() {
		return service.Caller{}, service.ErrUnauthenticated
	}
	return service.Caller{ID: userID, Role: models.Role(role)}, nil
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
