package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aphex18/URL-SHORTENER/internal/api/handlers"
	"github.com/aphex18/URL-SHORTENER/internal/auth"
	"github.com/aphex18/URL-SHORTENER/internal/services"
	"github.com/aphex18/URL-SHORTENER/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
//
// The token middleware runs on every route and attaches an optional
// identity; routes that need a user add the RequireUser gate. Resolution
// stays public.
func NewRouter(
	tokens *auth.TokenManager,
	hub *websocket.Hub,
	userService services.UserServiceProvider,
	linkService services.LinkServiceProvider,
	eventService services.EventServiceProvider,
	corsOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(tokens.Authenticate)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	linkHandler := handlers.NewLinkHandler(linkService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub, tokens)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"Server is running"}`))
	})

	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Get("/profile", userHandler.Me)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Post("/shorten", linkHandler.Shorten)
		r.Get("/codes", linkHandler.ListCodes)
		r.Delete("/{id}", linkHandler.Delete)
		r.Get("/api/v1/events", eventHandler.GetRecent)
	})

	// WebSocket upgrade authenticates inside the handler: browsers cannot
	// set an Authorization header on the upgrade request.
	r.Get("/api/v1/ws", wsHandler.Serve)

	// Public resolution endpoint. chi matches static segments like /codes
	// before this parameter, so named routes are never shadowed.
	r.Get("/{shortCode}", linkHandler.Resolve)

	return r
}
