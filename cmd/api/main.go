package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"artbridge/internal/database"
	"artbridge/internal/domain/assets"
	"artbridge/internal/domain/creation"
	"artbridge/internal/domain/status"
	"artbridge/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "artbridge.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	creationRepo := creation.NewRepository(db)
	creationService := creation.NewService(creationRepo)
	creationHandler := creation.NewHandler(creationService)

	fetcher := assets.NewFetcher(assets.DefaultFetchTimeout)
	assetService := assets.NewService(creationRepo, fetcher, os.Getenv("DOWNLOADS_DIR"), assets.PublicURLBase)
	assetHandler := assets.NewHandler(assetService)

	statusHandler := status.NewHandler(db)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	api := r.Group("/api")
	{
		status.RegisterRoutes(api, statusHandler)
		creation.RegisterRoutes(api, creationHandler)
		assets.RegisterRoutes(api, assetHandler)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
