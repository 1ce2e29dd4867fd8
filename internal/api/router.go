package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/app"
	iauth "github.com/meirshuvax/bynet-portal/internal/auth"
	"github.com/meirshuvax/bynet-portal/internal/handlers"
	"github.com/meirshuvax/bynet-portal/internal/middleware"
	"github.com/meirshuvax/bynet-portal/internal/realtime"
	"github.com/meirshuvax/bynet-portal/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers the portal routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config, hub *realtime.Hub) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	userSvc, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	authSvc, err := services.NewAuthService(db, userSvc, jwt)
	if err != nil {
		return nil, err
	}
	typeSvc, err := services.NewHonorTypeService(db)
	if err != nil {
		return nil, err
	}
	honorSvc, err := services.NewHonorService(db, userSvc)
	if err != nil {
		return nil, err
	}
	wishSvc, err := services.NewWishService(db, userSvc, cfg.Features.Wishes.GracePeriod)
	if err != nil {
		return nil, err
	}
	chatSvc, err := services.NewChatService(db, userSvc, hub)
	if err != nil {
		return nil, err
	}
	contentSvc, err := services.NewContentService(db)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	// Basic rate limiting: 100 requests/minute per IP+path
	r.Use(middleware.RateLimit(100, time.Minute))

	r.NoRoute(middleware.NotFoundHandler)

	// Public endpoints
	r.GET("/health", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(authSvc, userSvc)
	r.POST("/api/auth/login", authHandler.Login)

	// The WebSocket stream authenticates via token query param, so it sits
	// outside the header-based auth group.
	chatHandler := handlers.NewChatHandler(chatSvc, hub, jwt)
	r.GET("/api/chat/stream", chatHandler.Stream)

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.Auth(jwt))

	api.GET("/auth/me", authHandler.Me)

	honorHandler := handlers.NewHonorHandler(honorSvc)

	registerUserRoutes(api, handlers.NewUserHandler(userSvc), honorHandler)
	registerHonorRoutes(api, honorHandler, handlers.NewWishHandler(wishSvc))
	registerHonorTypeRoutes(api, handlers.NewHonorTypeHandler(typeSvc))
	registerChatRoutes(api, chatHandler)
	registerContentRoutes(api, handlers.NewContentHandler(contentSvc))

	return r, nil
}
