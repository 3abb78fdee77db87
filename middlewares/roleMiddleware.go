package middlewares

import (
	"context"
	"net/http"
	"time"

	"campuscare-be/config"
	"campuscare-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoadCurrentUser resolves the authenticated user's profile document
// and stores it on the context for downstream handlers. Must run after
// AuthMiddleware.
func LoadCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		objectID, err := primitive.ObjectIDFromHex(userID.(string))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User
		err = config.GetCollection("users").FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		c.Set("current_user", &user)
		c.Next()
	}
}

// RequireVerified blocks users who have not confirmed their email yet.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}
		if !user.EmailVerified {
			c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin is the trust-boundary role check for triage actions. The
// lifecycle model repeats it defensively, but this is the gate that
// counts.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}
		if user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the profile loaded by LoadCurrentUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get("current_user")
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
