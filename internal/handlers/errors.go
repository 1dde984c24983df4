package handlers

import (
	agentController "agency/internal/controllers/agents"
	storageController "agency/internal/controllers/storage"
	"agency/internal/formfill"
	. "agency/internal/models"
	"agency/internal/repositories"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// fail maps a controller error onto a response. resource names the thing a 404 is about and
// message is the generic text sent for unexpected failures.
func (h Handler) fail(c *fiber.Ctx, err error, resource, message string) error {
	var missingFields *formfill.MissingFieldsError
	var invalidValue *formfill.InvalidValueError
	var validationErr *ValidationError

	switch {
	case errors.As(err, &missingFields):
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "missing required fields", "missingFields": missingFields.Fields})
	case errors.As(err, &invalidValue):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": invalidValue.Error(), "field": invalidValue.FieldID})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": validationErr.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "error", "error": resource + " not found"})
	case errors.Is(err, agentController.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": err.Error()})
	case errors.Is(err, storageController.ErrStorageDisabled):
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(fiber.Map{"message": "error", "error": err.Error()})
	}

	h.log.Function("fail").Er(message, err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"message": "error", "error": message})
}

func (h Handler) badRequest(c *fiber.Ctx, err error, message string) error {
	h.log.Function("badRequest").Er(message, err, "path", c.Path())
	return c.Status(fiber.StatusBadRequest).
		JSON(fiber.Map{"message": "error", "error": message})
}
