// Package presenter renders JSON responses for the HTTP API.
package presenter

import "github.com/gofiber/fiber/v2"

// MessageResponse is the body of every failure and of the password
// endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Message(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, MessageResponse{Message: message})
}

// Error is Message under a name that reads right at failure sites.
func Error(c *fiber.Ctx, status int, message string) error {
	return Message(c, status, message)
}
