package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gridironlabs/playoff-system/handlers"
	"github.com/gridironlabs/playoff-system/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	seedingHandler *handlers.SeedingHandler,
	playoffHandler *handlers.PlayoffHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.Login)

	router.Get("/ws/dynasties/{dynastyID}", webSocketHandler.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))

		r.Route("/seeding", func(r chi.Router) {
			r.Post("/calculate", seedingHandler.Calculate)
			r.Get("/{season}", seedingHandler.Get)
		})

		r.Route("/playoffs", func(r chi.Router) {
			r.Post("/start", playoffHandler.Start)
			r.Post("/advance-day", playoffHandler.AdvanceDay)
			r.Get("/{season}/state", playoffHandler.State)
			r.Get("/{season}/bracket/{round}", playoffHandler.Bracket)
			r.Post("/{season}/games", playoffHandler.ReportGame)
			r.Post("/{season}/rebuild", playoffHandler.Rebuild)
			r.Get("/{season}/validate", playoffHandler.Validate)
		})
	})
}
