package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radheshyamgupta01/TLF-sub001/internal/handler"
	"github.com/radheshyamgupta01/TLF-sub001/internal/inquiry"
	mid "github.com/radheshyamgupta01/TLF-sub001/internal/middleware"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/config"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/database"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/jwtutil"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/logger"
	"github.com/radheshyamgupta01/TLF-sub001/prometheus"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting estate-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	db, err := database.Connect(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	jwtUtil := jwtutil.New(&appConfig.JWT)

	inquiryService := inquiry.NewService(db, log)

	authHandler := &handler.AuthHandler{DB: db, JWT: jwtUtil}
	listingHandler := &handler.ListingHandler{DB: db}
	inquiryHandler := &handler.InquiryHandler{Service: inquiryService}
	favoriteHandler := &handler.FavoriteHandler{DB: db}
	adminHandler := &handler.AdminHandler{DB: db}

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(mid.RequestID)
	e.Use(mid.Metrics)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.Health)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/listings", listingHandler.Search)
	api.GET("/listings/stats", listingHandler.Stats)
	api.GET("/listings/:id", listingHandler.Get)
	api.POST("/inquiries", inquiryHandler.Create, mid.OptionalJWTAuth(jwtUtil))

	// Authenticated routes
	protected := api.Group("", mid.JWTAuth(jwtUtil))
	protected.POST("/listings", listingHandler.Create)
	protected.PUT("/listings/:id", listingHandler.Update)
	protected.DELETE("/listings/:id", listingHandler.Delete)
	protected.GET("/my/listings", listingHandler.Mine)
	protected.GET("/my/inquiries", inquiryHandler.List)
	protected.GET("/my/inquiries/follow-ups", inquiryHandler.FollowUps)
	protected.PUT("/inquiries/:id/status", inquiryHandler.UpdateStatus)
	protected.POST("/inquiries/:id/follow-up", inquiryHandler.RecordFollowUp)
	protected.GET("/favorites", favoriteHandler.List)
	protected.POST("/favorites", favoriteHandler.Add)
	protected.DELETE("/favorites/:listing_id", favoriteHandler.Remove)

	// Admin routes
	admin := api.Group("/admin", mid.JWTAuth(jwtUtil), mid.RequireAdmin)
	admin.GET("/listings", adminHandler.Listings)
	admin.PUT("/listings/:id", adminHandler.ModerateListing)
	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:id/active", adminHandler.SetUserActive)
	admin.GET("/inquiries", adminHandler.Inquiries)
	admin.PUT("/inquiries/:id/status", inquiryHandler.UpdateStatus)
	admin.GET("/stats", adminHandler.Stats)

	log.Info("Starting server", zap.String("port", appConfig.Server.Port))
	if err := e.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
