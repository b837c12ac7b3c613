package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"ecotaste-backend/models"
	"ecotaste-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func MenuHandler(menu *services.MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := menu.Menu(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func CommonFoodsHandler(menu *services.MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, menu.CommonFoods())
	}
}

type AddMenuItemInput struct {
	Name            string              `json:"name" binding:"required"`
	Category        models.FoodCategory `json:"category" binding:"required"`
	CarbonFootprint float64             `json:"carbon_footprint"`
	IsPlantBased    bool                `json:"is_plant_based"`
}

func AddMenuItemHandler(menu *services.MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddMenuItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item, err := menu.Add(c.Request.Context(), input.Name, input.Category, input.CarbonFootprint, input.IsPlantBased)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func RemoveMenuItemHandler(menu *services.MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
			return
		}

		if err := menu.Remove(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func ClearMenuHandler(menu *services.MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := menu.ClearToday(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
