package main

import (
	"os"

	"github.com/selimhehe1/pattamap/internal/api"
	"github.com/selimhehe1/pattamap/internal/cache"
	"github.com/selimhehe1/pattamap/internal/config"
	"github.com/selimhehe1/pattamap/internal/constants"
	"github.com/selimhehe1/pattamap/internal/logging"
	"github.com/selimhehe1/pattamap/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Configuration file is optional: the built-in zone table covers the
	// known map areas. Path may be provided via PATTAMAP_CONFIG or defaults
	// to ./pattamap_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./pattamap_config.json"
	}
	cfg := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			logging.Fatal("Invalid pattamap configuration", err, logging.Fields{"config_path": configPath})
		}
		cfg = loaded
	} else {
		logging.Info("No config file found; using built-in zones", logging.Fields{"config_path": configPath})
	}

	// Allow the DB path to be configured via PATTAMAP_DB. Default to a
	// `data/` directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/pattamap.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db, cfg.AtomicExchange)
	listings := cache.NewListings(repo)
	handler := api.NewVenueHandler(repo, cfg.Zones, listings)
	authHandler := api.NewAuthHandler()

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteZones, handler.ListZones)
		apiRoutes.GET(constants.RouteZoneVenues, handler.ListZoneVenues)
		apiRoutes.GET(constants.RouteVenueByUUID, handler.GetVenue)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.POST(constants.RouteVenues, handler.CreateVenue)
		protected.PUT(constants.RouteVenuePosition, handler.UpdateVenuePosition)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST("/auth/logout", authHandler.Logout)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
