package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tobenna/blog-api/internal/api"
	apiMiddleware "github.com/tobenna/blog-api/internal/api/middleware"
	"github.com/tobenna/blog-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(app.config.Server.MaxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	userHandler := api.NewUserHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	blogHandler := api.NewBlogHandler(app.blogStore)
	uploadHandler := api.NewUploadHandler(app.fileStore)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Account endpoints (public)
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Get("/users", userHandler.FindUser)

	// Blog read endpoints (public)
	r.Get("/blogs", blogHandler.ListAll)
	r.Get("/blogs/search", blogHandler.Search)
	r.Get("/user/{userId}/blogs", blogHandler.ListByUser)
	r.Get("/user/{userId}/blogs/search", blogHandler.SearchByUser)

	// Blog write endpoints (protected)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/blogs", blogHandler.Create)
		r.Put("/blogs/{id}", blogHandler.Edit)
		r.Delete("/blogs/{id}", blogHandler.Delete)
	})

	// File upload and static serving of uploaded assets
	r.Post("/upload", uploadHandler.Upload)
	r.Handle("/assets/*", http.StripPrefix("/assets/",
		http.FileServer(http.Dir(app.config.Upload.Dir))))

	// Welcome endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"message": "Welcome to Blog API",
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
