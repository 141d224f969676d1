package handlers

import (
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "invitely/api-gateway/docs" // registers the swagger spec
	"invitely/api-gateway/internal/store"
)

// SetupRoutes configures the page, API and static routes. Routing is not
// strict, so /invites/:id and /invites/:id/ both resolve.
func SetupRoutes(app *fiber.App, h *ApplicationHandler, staticDir string) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Invite service is healthy",
		})
	})

	app.Get("/", h.CreatePage)
	app.Get("/create", h.CreatePage)
	app.Get("/invites/:id", h.ViewInvite)
	app.Static(store.StaticPrefix, staticDir)

	api := app.Group("/api")
	api.Post("/create", h.CreateInvite)
	api.Post("/prefill", h.PrefillInvite)
	api.Get("/invites", h.ListInvites)

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
}
