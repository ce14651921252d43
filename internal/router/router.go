package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Adarsha-Hegade/data-entry1/internal/auth"
	"github.com/Adarsha-Hegade/data-entry1/internal/handler"
	mw "github.com/Adarsha-Hegade/data-entry1/internal/middleware"
	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

func New(
	jwtSecret string,
	authH *handler.AuthHandler,
	taskH *handler.TaskHandler,
	subH *handler.SubmissionHandler,
	profileH *handler.ProfileHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/auth/status", authH.Status)
		r.Post("/auth/bootstrap", authH.Bootstrap)
		r.Post("/auth/login", authH.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			r.Get("/auth/me", authH.Me)

			// Tasks as seen by the assignee
			r.Get("/my/tasks", taskH.ListMine)
			r.Get("/tasks/{taskID}", taskH.Get)

			// Draft auto-save
			r.Get("/tasks/{taskID}/draft", subH.GetDraft)
			r.Put("/tasks/{taskID}/draft", subH.PutDraft)
			r.Post("/tasks/{taskID}/draft/flush", subH.FlushDraft)

			r.Get("/submissions/mine", subH.ListMine)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(models.RoleAdmin))

				r.Get("/tasks", taskH.List)
				r.Post("/tasks", taskH.Create)
				r.Put("/tasks/{taskID}", taskH.Update)
				r.Delete("/tasks/{taskID}", taskH.Delete)

				r.Get("/tasks/{taskID}/submissions", subH.ListByTask)
				r.Get("/submissions/{subID}", subH.Get)
				r.Put("/submissions/{subID}/review", subH.Review)
				r.Delete("/submissions/{subID}", subH.Delete)

				r.Get("/profiles", profileH.List)
				r.Post("/profiles", profileH.Create)
				r.Get("/profiles/{profileID}", profileH.Get)
				r.Delete("/profiles/{profileID}", profileH.Delete)
			})
		})
	})

	return r
}
