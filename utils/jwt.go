package utils

import (
	"os"
	"time"

	"ecotaste-backend/models"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateJWT(userID uint, email string, role models.UserRole) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"role":   string(role),
		"exp":    time.Now().Add(time.Hour * 72).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
