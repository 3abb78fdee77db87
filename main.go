package main

import (
	"net/http"
	"os"
	"strings"

	"campuscare-be/config"
	"campuscare-be/models"
	"campuscare-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	logger := config.InitLogger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		logger.Fatal().Msg("Failed to connect to MongoDB")
	}
	config.ConnectRedis()

	if err := models.EnsureUserIndexes(db.Collection("users")); err != nil {
		logger.Warn().Err(err).Msg("Failed to create user indexes")
	}
	if err := models.EnsureIssueIndexes(db.Collection("issues")); err != nil {
		logger.Warn().Err(err).Msg("Failed to create issue indexes")
	}

	// Registration only accepts campus email addresses
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("kietmail", func(fl validator.FieldLevel) bool {
			return models.InstitutionEmail(fl.Field().String())
		})
	}

	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.FileRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
