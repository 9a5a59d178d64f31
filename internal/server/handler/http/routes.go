package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/middleware"
	"github.com/milrecord/milrecord/internal/models"
)

// NewRouter constructs the HTTP handler serving the records API.
//
// The auth endpoints under /api/auth precede the authorization gate. Every
// other endpoint requires a bearer token; retrieval endpoints allow both
// roles, while create/update/delete and user administration are admin-only.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs each request
//  3. Authenticate / RequireRole           — on the gated groups only
func NewRouter(
	authHandler *AuthHandler,
	usersHandler *UsersHandler,
	personnelHandler *PersonnelHandler,
	logisticsHandler *LogisticsHandler,
	statsHandler *StatsHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/setup", authHandler.Setup)

		// Everything below requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(verifier, logger))

			// Retrieval: any authenticated role
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleUser))

				r.Get("/serving", personnelHandler.ListServing)
				r.Get("/serving/{id}", personnelHandler.GetServing)
				r.Get("/retired", personnelHandler.ListRetired)
				r.Get("/retired/{id}", personnelHandler.GetRetired)
				r.Get("/logistics", logisticsHandler.ListEquipment)
				r.Get("/logistics/{id}", logisticsHandler.GetEquipment)
				r.Get("/artillery", logisticsHandler.ListArtillery)
				r.Get("/artillery/{id}", logisticsHandler.GetArtillery)
				r.Get("/ships", logisticsHandler.ListShips)
				r.Get("/ships/{id}", logisticsHandler.GetShip)
				r.Get("/jets", logisticsHandler.ListJets)
				r.Get("/jets/{id}", logisticsHandler.GetJet)
				r.Get("/stats", statsHandler.Stats)
				r.Get("/reports/assignments", statsHandler.Assignments)
			})

			// Mutation and user administration: admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))

				r.Post("/serving", personnelHandler.CreateServing)
				r.Put("/serving/{id}", personnelHandler.UpdateServing)
				r.Delete("/serving/{id}", personnelHandler.DeleteServing)

				r.Post("/retired", personnelHandler.CreateRetired)
				r.Put("/retired/{id}", personnelHandler.UpdateRetired)
				r.Delete("/retired/{id}", personnelHandler.DeleteRetired)

				r.Post("/logistics", logisticsHandler.CreateEquipment)
				r.Put("/logistics/{id}", logisticsHandler.UpdateEquipment)
				r.Delete("/logistics/{id}", logisticsHandler.DeleteEquipment)

				r.Post("/artillery", logisticsHandler.CreateArtillery)
				r.Put("/artillery/{id}", logisticsHandler.UpdateArtillery)
				r.Delete("/artillery/{id}", logisticsHandler.DeleteArtillery)

				r.Post("/ships", logisticsHandler.CreateShip)
				r.Put("/ships/{id}", logisticsHandler.UpdateShip)
				r.Delete("/ships/{id}", logisticsHandler.DeleteShip)

				r.Post("/jets", logisticsHandler.CreateJet)
				r.Put("/jets/{id}", logisticsHandler.UpdateJet)
				r.Delete("/jets/{id}", logisticsHandler.DeleteJet)

				r.Get("/users", usersHandler.List)
				r.Put("/users/{id}/role", usersHandler.UpdateRole)
				r.Delete("/users/{id}", usersHandler.Delete)
			})
		})
	})

	return r
}
