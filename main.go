package main

import (
	"petfinder-backend/config"
	"petfinder-backend/controllers"
	"petfinder-backend/database"
	"petfinder-backend/middlewares"
	"petfinder-backend/notify"
	"petfinder-backend/routes"
	"petfinder-backend/storage"
	"petfinder-backend/stores"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// ---- Configuration (loaded once, passed by handle)
	cfg := config.Load()

	// ---- Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}

	userStore := stores.NewUserStore(db)
	petStore := stores.NewPetStore(db)
	alertStore := stores.NewAlertStore(db)

	// ---- Auth
	auth, err := middlewares.NewAuth(cfg.JWTSecret)
	if err != nil {
		log.WithError(err).Fatal("auth setup failed")
	}

	// ---- Rate governor (public endpoints, keyed by client IP)
	governor := middlewares.NewRateGovernor(cfg.RateLimitMax, cfg.RateLimitWindow)
	defer governor.Close()

	// ---- Notification channels
	dispatcher := notify.NewDispatcher(map[string]notify.ChannelHandler{
		"email": notify.NewEmailChannel(cfg.SendGridAPIKey, cfg.SendGridFromName, cfg.SendGridFromEmail),
		"push":  notify.NewPushChannel(cfg.FCMEndpoint, cfg.FCMServerKey),
	}, cfg.NotifyTimeout)

	// ---- Blob storage for pet photos
	blobs, err := storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.WithError(err).Fatal("blob storage setup failed")
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
	})

	// ---- CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))

	// ---- Uploaded photos are public by reference
	app.Static("/uploads", cfg.UploadDir)

	// ---- Routes
	routes.Register(app, routes.Handlers{
		Auth:   controllers.NewAuthController(userStore, auth),
		Pets:   controllers.NewPetController(petStore, userStore, blobs),
		Alerts: controllers.NewAlertController(petStore, alertStore, userStore, dispatcher),
	}, auth, governor, db)

	// ---- Start
	log.WithField("port", cfg.Port).Info("API server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
