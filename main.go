package main

import (
	"os"

	"rescue-hub/controllers"
	"rescue-hub/database"
	"rescue-hub/routes"
	"rescue-hub/services"
	"rescue-hub/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("No .env file loaded")
	}

	storage.Init()
	defer storage.Close()

	db.InitDB()
	defer db.DisconnectDB()

	assistant := services.NewAssistant(
		os.Getenv("OPENAI_API_KEY"),
		os.Getenv("OPENAI_BASE_URL"),
		os.Getenv("OPENAI_MODEL"),
	)
	controllers.InitAssistant(assistant)

	reconciler := services.NewReconciler()
	reconciler.Start()
	defer reconciler.Stop()

	r := gin.Default()
	routes.SetupRoutes(r)

	// Uploaded files are served directly when stored on local disk; the GCS
	// backend returns absolute URLs instead.
	if local, ok := storage.Files.(*storage.LocalStore); ok {
		r.Static("/uploads", local.BaseDir())
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("Starting server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
