package controllers

import (
	"errors"
	"net/http"

	"ecotaste-backend/services"

	"github.com/gin-gonic/gin"
)

type ScanInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// ScanMealHandler runs the photo pipeline. Each failure mode gets its own
// status so the client can show a distinct message; nothing is retried here.
func ScanMealHandler(scan *services.ScanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ScanInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
			return
		}

		result, err := scan.ScanMeal(c.Request.Context(), c.GetUint("userID"), input.ImageBase64)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, result)
		case errors.Is(err, services.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrQuotaExceeded):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoFoodDetected), errors.Is(err, services.ErrNotAFoodPhoto):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
	}
}
