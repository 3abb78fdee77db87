package authUtils

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

func secret() ([]byte, error) {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return []byte(secretStr), nil
}

// GenerateAndSetToken generates a session JWT for a given user ID
func GenerateAndSetToken(userID string) (string, error) {
	jwtSecret, err := secret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 72).Unix(), // Token expires in 72 hours
	})

	return token.SignedString(jwtSecret)
}

// GenerateVerificationToken creates the short-lived token embedded in
// the email-verification link.
func GenerateVerificationToken(userID string) (string, error) {
	jwtSecret, err := secret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"purpose": "verify_email",
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString(jwtSecret)
}

// ParseVerificationToken validates a verification token and returns the
// user ID it was issued for.
func ParseVerificationToken(tokenString string) (string, error) {
	jwtSecret, err := secret()
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid verification token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid verification token claims")
	}
	if purpose, _ := claims["purpose"].(string); purpose != "verify_email" {
		return "", fmt.Errorf("token is not a verification token")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", fmt.Errorf("verification token missing user id")
	}

	return userID, nil
}
