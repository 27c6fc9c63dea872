package handlers

import (
	"github.com/Dias221467/DevConnect/internal/config"
	"github.com/Dias221467/DevConnect/internal/services"
	"github.com/Dias221467/DevConnect/pkg/metrics"
	"github.com/Dias221467/DevConnect/pkg/middleware"
	"github.com/gorilla/mux"
)

// Services bundles the business services the routes are served from.
type Services struct {
	Users       *services.UserService
	Requests    *services.RequestService
	Connections *services.ConnectionService
	Feed        *services.FeedService
}

// NewRouter registers every route. limiter throttles the /request routes.
func NewRouter(cfg *config.Config, svc Services, limiter *middleware.RateLimiter) *mux.Router {
	authHandler := NewAuthHandler(svc.Users, cfg)
	profileHandler := NewProfileHandler(svc.Users)
	requestHandler := NewRequestHandler(svc.Requests)
	userHandler := NewUserHandler(svc.Connections, svc.Feed)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(metrics.Middleware)
	router.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout))

	router.HandleFunc("/", HealthHandler).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Public auth routes
	router.HandleFunc("/signup", authHandler.SignupHandler).Methods("POST")
	router.HandleFunc("/login", authHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/logout", authHandler.LogoutHandler).Methods("POST")

	auth := middleware.AuthMiddleware(cfg.JWTSecret, svc.Users)
	lastActive := middleware.UpdateLastActiveMiddleware(svc.Users)

	profileRoutes := router.PathPrefix("/profile").Subrouter()
	profileRoutes.Use(auth, lastActive)
	profileRoutes.HandleFunc("/view", profileHandler.ViewProfileHandler).Methods("GET")
	profileRoutes.HandleFunc("/edit", profileHandler.EditProfileHandler).Methods("PATCH")
	profileRoutes.HandleFunc("/editpassword", profileHandler.EditPasswordHandler).Methods("PATCH")

	requestRoutes := router.PathPrefix("/request").Subrouter()
	requestRoutes.Use(limiter.Middleware, auth, lastActive)
	requestRoutes.HandleFunc("/send/{status}/{toUserId}", requestHandler.SendRequestHandler).Methods("POST")
	requestRoutes.HandleFunc("/review/{status}/{requestId}", requestHandler.ReviewRequestHandler).Methods("POST")

	userRoutes := router.PathPrefix("/user").Subrouter()
	userRoutes.Use(auth, lastActive)
	userRoutes.HandleFunc("/requests/received", userHandler.ReceivedRequestsHandler).Methods("GET")
	userRoutes.HandleFunc("/connections", userHandler.ConnectionsHandler).Methods("GET")
	userRoutes.HandleFunc("/feed", userHandler.FeedHandler).Methods("GET")

	return router
}
