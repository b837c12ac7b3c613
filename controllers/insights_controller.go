package controllers

import (
	"net/http"
	"strconv"

	"ecotaste-backend/models"
	"ecotaste-backend/services"

	"github.com/gin-gonic/gin"
)

type SelectionInput struct {
	ItemID   uint   `json:"item_id" binding:"required"`
	ItemName string `json:"item_name" binding:"required"`
}

func RecordSelectionHandler(popularity *services.PopularityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SelectionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := popularity.RecordSelection(c.Request.Context(), input.ItemID, input.ItemName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func TopItemsHandler(popularity *services.PopularityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := popularity.TopItems(c.Request.Context(), limitParam(c, 5))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

type LogWasteInput struct {
	ItemID   uint                 `json:"item_id" binding:"required"`
	ItemName string               `json:"item_name" binding:"required"`
	Quantity models.WasteQuantity `json:"quantity" binding:"required"`
	Notes    string               `json:"notes"`
}

func LogWasteHandler(popularity *services.PopularityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LogWasteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec, err := popularity.LogWaste(c.Request.Context(), input.ItemID, input.ItemName, input.Quantity, input.Notes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

func ListWasteHandler(popularity *services.PopularityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := popularity.WasteRecords(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

func MostWastedHandler(popularity *services.PopularityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := popularity.MostWastedItems(c.Request.Context(), limitParam(c, 5))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// RecommendationsHandler feeds the engine the current menu snapshot, the top
// three favorites and the top five wasted items.
func RecommendationsHandler(menu *services.MenuService, popularity *services.PopularityService, rec *services.RecommendationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		items, err := menu.Menu(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		top, err := popularity.TopItems(ctx, 3)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		wasted, err := popularity.MostWastedItems(ctx, 5)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, rec.Recommendations(items, top, wasted))
	}
}

func limitParam(c *gin.Context, fallback int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
