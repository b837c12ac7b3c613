package controllers

import (
	"context"
	"errors"
	"net/http"

	"ecotaste-backend/services"

	"github.com/gin-gonic/gin"
)

type LogMealInput struct {
	Foods []services.FoodInput `json:"foods" binding:"required"`
}

// LogMealHandler logs a meal and, once the transaction committed, pushes the
// fresh stats over the realtime hub and fires any streak-milestone push.
func LogMealHandler(impact *services.ImpactService, hub *services.RealtimeHub, push *services.PushService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LogMealInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userID := c.GetUint("userID")
		meal, stats, activity, err := impact.LogMeal(c.Request.Context(), userID, input.Foods)
		if errors.Is(err, services.ErrEmptyMeal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		hub.BroadcastStats(userID, gin.H{"stats": stats, "activity": activity})
		if push != nil {
			go push.NotifyStreak(context.Background(), userID, stats.CurrentStreak)
		}

		c.JSON(http.StatusCreated, gin.H{
			"meal":     meal,
			"stats":    stats,
			"activity": activity,
		})
	}
}

func ListMealsHandler(impact *services.ImpactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		meals, err := impact.Meals(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, meals)
	}
}

func ListActivitiesHandler(impact *services.ImpactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		activities, err := impact.Activities(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, activities)
	}
}
