// Package server composes the HTTP surface of the service.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/sbilibin2017/syncify/docs"
	"github.com/sbilibin2017/syncify/internal/handlers"
	"github.com/sbilibin2017/syncify/internal/middlewares"
)

// UserAPI is what the /users routes need from the user service.
type UserAPI interface {
	handlers.UserCreator
	handlers.UserLister
	handlers.UserGetter
	handlers.UserUpdater
	handlers.UserDeleter
	handlers.FriendEditor
	handlers.FriendLister
}

// AuthAPI is what the /app-auth routes and the bearer middleware need.
type AuthAPI interface {
	handlers.Loginer
	handlers.Logouter
	handlers.Registerer
	middlewares.Authenticator
}

// SpotifyAPI is what the /spotify routes need.
type SpotifyAPI interface {
	handlers.SpotifyAuthorizer
	handlers.SpotifyTokenProvider
	handlers.SpotifyProfiler
	handlers.PlaybackSyncer
}

// Deps holds everything the router wires together.
type Deps struct {
	DB      *sqlx.DB
	Log     *zap.SugaredLogger
	Tokener middlewares.Tokener
	Users   UserAPI
	Auth    AuthAPI
	Spotify SpotifyAPI

	// SwaggerURL is where the UI fetches doc.json from.
	SwaggerURL string
	// AllowedOrigin enables CORS for one browser origin when set.
	AllowedOrigin string
}

// NewRouter builds the chi router with all routes and middlewares.
func NewRouter(d Deps) http.Handler {
	auth := middlewares.AuthMiddleware(d.Tokener, d.Auth)
	optionalAuth := middlewares.OptionalAuthMiddleware(d.Tokener, d.Auth)
	tx := middlewares.TxMiddleware(d.DB)
	health := handlers.NewHealthHandler()

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(d.Log))
	if d.AllowedOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{d.AllowedOrigin},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", middlewares.RequestIDHeader},
			ExposedHeaders:   []string{middlewares.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health-check", health)

	r.Route("/users", func(r chi.Router) {
		r.Use(tx)
		r.Get("/health-check", health)
		r.Get("/", handlers.NewListUsersHandler(d.Users))
		r.Get("/{displayName}", handlers.NewGetUserHandler(d.Users))
		r.Get("/{id}/friends", handlers.NewFriendsHandler(d.Users))
		r.Get("/{id}/friended-by", handlers.NewFriendedByHandler(d.Users))

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", handlers.NewCreateUserHandler(d.Users))
			r.Patch("/{id}", handlers.NewUpdateUserHandler(d.Users))
			r.Delete("/{id}", handlers.NewDeleteUserHandler(d.Users))
			r.Post("/{id}/friends/{friendId}", handlers.NewAddFriendHandler(d.Users))
			r.Delete("/{id}/friends/{friendId}", handlers.NewRemoveFriendHandler(d.Users))
		})
	})

	r.Route("/app-auth", func(r chi.Router) {
		r.Use(tx)
		r.Get("/health-check", health)
		r.Post("/login", handlers.NewLoginHandler(d.Auth))
		r.Post("/register", handlers.NewRegisterHandler(d.Auth))
		r.With(auth).Post("/logout", handlers.NewLogoutHandler(d.Auth))
	})

	r.Route("/spotify", func(r chi.Router) {
		r.Get("/health-check", health)
		r.Get("/token", handlers.NewSpotifyTokenHandler(d.Spotify))

		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/authorize", handlers.NewSpotifyAuthorizeHandler(d.Spotify))
			r.Get("/callback", handlers.NewSpotifyCallbackHandler(d.Spotify))
		})

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/refresh", handlers.NewSpotifyRefreshHandler(d.Spotify))
			r.Get("/user", handlers.NewSpotifyCurrentUserHandler(d.Spotify))
			r.Get("/user/{spotifyId}", handlers.NewSpotifyUserHandler(d.Spotify))
			r.Post("/currently-playing/sync", handlers.NewSyncCurrentlyPlayingHandler(d.Spotify))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(d.SwaggerURL)))

	return r
}
