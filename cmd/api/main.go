package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/garudacabs/cab-booking/internal/bookings"
	"github.com/garudacabs/cab-booking/internal/cabtypes"
	"github.com/garudacabs/cab-booking/internal/fares"
	"github.com/garudacabs/cab-booking/internal/ratemeters"
	"github.com/garudacabs/cab-booking/internal/routes"
	"github.com/garudacabs/cab-booking/pkg/cache"
	"github.com/garudacabs/cab-booking/pkg/config"
	"github.com/garudacabs/cab-booking/pkg/database"
	"github.com/garudacabs/cab-booking/pkg/logger"
	"github.com/garudacabs/cab-booking/pkg/middleware"
	redisclient "github.com/garudacabs/cab-booking/pkg/redis"
)

const (
	serviceName = "booking-api"
	version     = "1.0.0"
)

// routeProviderAdapter bridges the route service into the fare engine's
// provider contract.
type routeProviderAdapter struct {
	svc *routes.Service
}

func (a *routeProviderAdapter) DistanceAndTime(ctx context.Context, from, to fares.Coordinate) (float64, float64, error) {
	dt, err := a.svc.DistanceAndTime(ctx,
		routes.Coordinate{Latitude: from.Latitude, Longitude: from.Longitude},
		routes.Coordinate{Latitude: to.Latitude, Longitude: to.Longitude},
	)
	if err != nil {
		return 0, 0, err
	}
	return dt.DistanceKm, dt.DurationMin, nil
}

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting booking API",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Connected to database")

	redisClient, err := redisclient.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}()
	cacheManager := cache.NewManager(redisClient)

	var routeProviders []routes.Provider
	if cfg.Maps.GoogleAPIKey != "" {
		routeProviders = append(routeProviders, routes.NewGoogleProvider(routes.ProviderConfig{
			APIKey:         cfg.Maps.GoogleAPIKey,
			TimeoutSeconds: cfg.Maps.TimeoutSeconds,
		}))
	}
	if cfg.Maps.MapmyIndiaAPIKey != "" {
		routeProviders = append(routeProviders, routes.NewMapmyIndiaProvider(routes.ProviderConfig{
			APIKey:         cfg.Maps.MapmyIndiaAPIKey,
			TimeoutSeconds: cfg.Maps.TimeoutSeconds,
		}))
	}
	if len(routeProviders) == 0 {
		logger.Warn("No route providers configured, falling back to straight-line estimates")
	}
	routeProviders = append(routeProviders, routes.NewHaversineProvider())
	routeService := routes.NewService(cacheManager, cfg.Maps.RouteCacheTTL, routeProviders...)

	cabTypeService := cabtypes.NewService(cabtypes.NewRepository(db))
	fareService := fares.NewService(
		fares.NewRepository(db),
		&routeProviderAdapter{svc: routeService},
		cabTypeService,
	)
	rateMeterService := ratemeters.NewService(ratemeters.NewRepository(db))
	bookingService := bookings.NewService(bookings.NewRepository(db), fareService)

	fareHandler := fares.NewHandler(fareService)
	cabTypeHandler := cabtypes.NewHandler(cabTypeService)
	rateMeterHandler := ratemeters.NewHandler(rateMeterService)
	bookingHandler := bookings.NewHandler(bookingService)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestTimeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))
	router.Use(middleware.RequestLogger(serviceName))

	corsConfig := cors.DefaultConfig()
	origins := strings.Split(cfg.Server.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	corsConfig.AllowOrigins = origins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName, "version": version})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database"})
			return
		}
		if err := redisClient.Client.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "redis"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	// Fare estimation is open so the booking form can quote before login
	fareHandler.RegisterRoutes(api)

	authed := api.Group("", middleware.AuthMiddleware(cfg.JWT.Secret))
	admin := api.Group("", middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RequireRole(middleware.RoleAdmin))

	cabTypeHandler.RegisterRoutes(api, admin)
	rateMeterHandler.RegisterRoutes(admin)
	bookingHandler.RegisterRoutes(authed, admin)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
