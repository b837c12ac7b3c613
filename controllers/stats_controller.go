package controllers

import (
	"net/http"

	"ecotaste-backend/services"

	"github.com/gin-gonic/gin"
)

func StatsSummaryHandler(stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := stats.Summary(c.Request.Context(), c.GetUint("userID"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func LeaderboardHandler(leaderboard *services.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID := c.GetUint("userID")

		top, err := leaderboard.Top(ctx, limitParam(c, 10))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rank, err := leaderboard.Rank(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"rank": rank, "top": top})
	}
}
