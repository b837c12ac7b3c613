package main

import (
	"context"
	"os"

	"ecotaste-backend/config"
	"ecotaste-backend/routes"
	"ecotaste-backend/services"
	"ecotaste-backend/utils"
)

func main() {
	config.InitLogger()
	config.LoadEnv()
	log := config.Logger

	db, err := config.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	ctx := context.Background()

	photos, err := utils.NewS3PhotoStore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("S3 init failed")
	}
	labeler, err := utils.NewRekognitionLabeler(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Rekognition init failed")
	}

	var mailer services.RecoveryMailer
	if m, err := utils.NewMailer(ctx); err != nil {
		log.Warn().Err(err).Msg("SES unavailable, recovery keys will not be emailed")
	} else {
		mailer = m
	}

	var push *services.PushService
	if os.Getenv("SNS_FCM_ARN") != "" {
		push, err = services.NewPushService(db, log)
		if err != nil {
			log.Warn().Err(err).Msg("SNS unavailable, streak pushes disabled")
			push = nil
		}
	}

	impact := services.NewImpactService(db)

	deps := routes.Deps{
		Auth:           services.NewAuthService(db, mailer, log),
		Impact:         impact,
		Popularity:     services.NewPopularityService(db),
		Recommendation: services.NewRecommendationService(),
		Menu:           services.NewMenuService(db),
		Scan:           services.NewScanService(photos, labeler, services.NewGatewayFoodDetector(), log),
		Stats:          services.NewStatsService(db, impact),
		Leaderboard:    services.NewLeaderboardService(db),
		Hub:            services.NewRealtimeHub(),
		Push:           push,
		Log:            log,
	}

	r := routes.SetupRouter(deps)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	log.Info().Str("addr", addr).Msg("starting server")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
