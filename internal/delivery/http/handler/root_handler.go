package handler

import "github.com/gofiber/fiber/v3"

const greeting = "Hello from the Freelancing Platform Server...."

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Greet)
	r.Get("/health", h.Health)
}

func (h *RootHandler) Greet(c fiber.Ctx) error {
	return c.SendString(greeting)
}

func (h *RootHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
