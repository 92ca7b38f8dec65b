package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"petfinder-backend/controllers"
	"petfinder-backend/middlewares"
)

// Handlers bundles the controllers wired into the HTTP surface.
type Handlers struct {
	Auth   *controllers.AuthController
	Pets   *controllers.PetController
	Alerts *controllers.AlertController
}

// Register wires all HTTP routes.
func Register(app *fiber.App, h Handlers, auth *middlewares.Auth, governor *middlewares.RateGovernor, db *gorm.DB) {
	api := app.Group("/api")

	// Public endpoints, rate-limited per client IP
	public := api.Group("", governor.Middleware())
	public.Post("/registration", h.Auth.Register)
	public.Post("/login", h.Auth.Login)
	public.Post("/logout", h.Auth.Logout)

	// The finder-facing found-report endpoint: anyone who scans a tag
	// can report, no account needed.
	public.Post("/alerts/:scanToken/found", h.Alerts.MarkAsFound)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(auth.RequireAuth())

	// Idempotency guard for owner mutations
	protected.Use(middlewares.Idempotency(db))

	// Pets
	protected.Post("/pet", h.Pets.CreatePet)
	protected.Get("/pets", h.Pets.GetPets)
	protected.Delete("/pet/:id", h.Pets.DeletePet)

	// Push channel registration
	protected.Put("/push-token", h.Pets.SetPushToken)

	// Owner dashboard alert feed
	protected.Get("/alerts", h.Alerts.GetAlerts)
}
