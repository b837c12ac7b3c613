package routes

import (
	"ecotaste-backend/controllers"
	"ecotaste-backend/middlewares"
	"ecotaste-backend/models"
	"ecotaste-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps bundles every service the router wires into handlers. Push may be nil
// when SNS is not configured.
type Deps struct {
	Auth           *services.AuthService
	Impact         *services.ImpactService
	Popularity     *services.PopularityService
	Recommendation *services.RecommendationService
	Menu           *services.MenuService
	Scan           *services.ScanService
	Stats          *services.StatsService
	Leaderboard    *services.LeaderboardService
	Hub            *services.RealtimeHub
	Push           *services.PushService
	Log            zerolog.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.RegisterHandler(d.Auth))
		auth.POST("/login", controllers.LoginHandler(d.Auth))
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/profile", controllers.ProfileHandler(d.Auth))

		api.GET("/menu", controllers.MenuHandler(d.Menu))
		api.GET("/menu/common-foods", controllers.CommonFoodsHandler(d.Menu))

		api.POST("/meals", controllers.LogMealHandler(d.Impact, d.Hub, d.Push))
		api.GET("/meals", controllers.ListMealsHandler(d.Impact))
		api.GET("/activities", controllers.ListActivitiesHandler(d.Impact))
		api.GET("/stats", controllers.StatsSummaryHandler(d.Stats))
		api.GET("/leaderboard", controllers.LeaderboardHandler(d.Leaderboard))

		api.POST("/scan", controllers.ScanMealHandler(d.Scan))
		api.POST("/selections", controllers.RecordSelectionHandler(d.Popularity))
		api.GET("/popularity/top", controllers.TopItemsHandler(d.Popularity))

		api.POST("/devices", controllers.RegisterDeviceHandler(d.Push))

		cafeteria := api.Group("")
		cafeteria.Use(middlewares.RequireRole(models.RoleCafeteria))
		{
			cafeteria.POST("/menu", controllers.AddMenuItemHandler(d.Menu))
			cafeteria.DELETE("/menu/:id", controllers.RemoveMenuItemHandler(d.Menu))
			cafeteria.POST("/menu/clear", controllers.ClearMenuHandler(d.Menu))

			cafeteria.POST("/waste", controllers.LogWasteHandler(d.Popularity))
			cafeteria.GET("/waste", controllers.ListWasteHandler(d.Popularity))
			cafeteria.GET("/waste/top", controllers.MostWastedHandler(d.Popularity))
			cafeteria.GET("/recommendations", controllers.RecommendationsHandler(d.Menu, d.Popularity, d.Recommendation))
		}
	}

	r.GET("/ws", middlewares.AuthMiddleware(), controllers.WSHandler(d.Hub, d.Log))

	return r
}
