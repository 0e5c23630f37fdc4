package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/chathuri2/CrickInfo/config"
	"github.com/chathuri2/CrickInfo/handlers"
	"github.com/chathuri2/CrickInfo/middleware"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Player   *handlers.PlayerHandler
	Squad    *handlers.SquadHandler
	Analysis *handlers.AnalysisHandler
	Admin    *handlers.AdminHandler
}

func SetupRoutes(cfg *config.Config, h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RateLimit(cfg.RateLimitRPM, time.Minute))

	router.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	authenticate := middleware.Authenticate([]byte(cfg.JWTSecretKey))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", h.Auth.Me)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.List)
			r.Get("/roles", h.Player.Roles)
			r.Get("/countries", h.Player.Countries)
			r.Get("/{playerID}", h.Player.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/compare", h.Player.Compare)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireAdmin)

				r.Post("/", h.Player.Create)
				r.Put("/{playerID}", h.Player.Update)
				r.Delete("/{playerID}", h.Player.Delete)
				r.Post("/{playerID}/statistics", h.Player.UpsertStatistics)
				r.Post("/{playerID}/photo", h.Player.UploadPhoto)
				r.Delete("/{playerID}/photo", h.Player.DeletePhoto)
			})
		})

		r.Route("/squads", func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/", h.Squad.List)
			r.Post("/", h.Squad.Create)
			r.Get("/{squadID}", h.Squad.Get)
			r.Put("/{squadID}", h.Squad.Update)
			r.Delete("/{squadID}", h.Squad.Delete)
			r.Post("/{squadID}/players", h.Squad.AddPlayer)
			r.Delete("/{squadID}/players/{playerID}", h.Squad.RemovePlayer)
			r.Put("/{squadID}/captain", h.Squad.SetCaptain)
			r.Put("/{squadID}/wicket-keeper", h.Squad.SetWicketKeeper)
			r.Get("/{squadID}/validate", h.Squad.Validate)
			r.Get("/{squadID}/suggestions", h.Analysis.ListSquadSuggestions)
		})

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/top-players", h.Analysis.TopPlayers)
			r.Get("/formats", h.Analysis.Formats)
			r.Get("/pitch-types", h.Analysis.PitchTypes)
			r.Get("/weather-conditions", h.Analysis.WeatherConditions)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Post("/match-conditions", h.Analysis.CreateMatchConditions)
				r.Post("/smart-suggestion", h.Analysis.SmartSuggestion)
				r.Get("/smart-suggestion/{suggestionID}", h.Analysis.GetSuggestion)
				r.Post("/squad-analysis", h.Analysis.SquadAnalysis)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)

			r.Get("/users", h.Admin.ListUsers)
			r.Put("/users/{userID}", h.Admin.UpdateUserRole)
			r.Delete("/users/{userID}", h.Admin.DeleteUser)
			r.Get("/statistics", h.Admin.SystemStatistics)
			r.Post("/players/bulk-import", h.Admin.BulkImportPlayers)
			r.Post("/players/bulk-statistics", h.Admin.BulkImportStatistics)
			r.Get("/system/health", h.Admin.SystemHealth)
		})
	})

	return router
}
