package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/auth"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/database"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/handlers"
	"github.com/AhiyaSchneider/server-FinalProject/pkg/store"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := &handlers.Handler{DB: db, Store: store.New(db)}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	handlers.RegisterRoutes(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Info().Str("port", port).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("could not run server")
	}
}
