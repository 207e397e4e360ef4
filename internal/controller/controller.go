package controller

import (
	"github.com/gofiber/fiber/v2"

	"hoamanager_backend/internal/model"
)

type deleteInput struct {
	Confirm string `json:"confirm"`
}

// requireConfirmation gates a destructive handler on the typed confirmation
// phrase for the entity being deleted. It returns false after writing the
// error response when the phrase does not match exactly.
func requireConfirmation(c *fiber.Ctx, entity string, id uint) bool {
	expected := model.DeleteConfirmPhrase(entity, id)

	input := new(deleteInput)
	if err := c.BodyParser(input); err != nil || input.Confirm != expected {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Confirmation text doesn't match. Please type exactly as shown.",
			"expected": expected,
		})
		return false
	}
	return true
}
