package routes

import (
	"campuscare-be/controllers"
	"campuscare-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/verify", controllers.VerifyEmail)
		auth.POST("/login", controllers.LoginUser)
		auth.GET("/me", middlewares.AuthMiddleware(), middlewares.LoadCurrentUser(), controllers.GetMe)
		auth.POST("/logout", controllers.LogoutUser)
	}
}
