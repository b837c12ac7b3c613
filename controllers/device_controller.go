package controllers

import (
	"net/http"

	"ecotaste-backend/services"

	"github.com/gin-gonic/gin"
)

type RegisterDeviceInput struct {
	Platform string `json:"platform" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

func RegisterDeviceHandler(push *services.PushService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if push == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications not configured"})
			return
		}

		var input RegisterDeviceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		dev, err := push.RegisterDevice(c.Request.Context(), c.GetUint("userID"), input.Platform, input.Token)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, dev)
	}
}
