package handler

import (
	"github.com/gofiber/fiber/v2"
)

// ProviderLister reports the active provider names.
type ProviderLister interface {
	ProviderNames() []string
}

func RegisterHealthRoutes(app fiber.Router, providers ProviderLister) {
	app.Get("/livez", LivezHandler())
	app.Get("/readyz", ReadyzHandler(providers))
}

func LivezHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	}
}

// ReadyzHandler stays 200 with no providers: dispatching is then a no-op,
// which is valid but worth surfacing as degraded.
func ReadyzHandler(providers ProviderLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names := providers.ProviderNames()

		status := "ready"
		if len(names) == 0 {
			status = "degraded"
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    status,
			"providers": names,
		})
	}
}
