package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ecotaste-backend/models"
	"ecotaste-backend/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Streak lengths that earn a push notification.
var streakMilestones = []int{7, 30}

// PushService registers mobile devices with SNS and congratulates users on
// streak milestones. Push failures are logged and never block a meal log.
type PushService struct {
	db             *gorm.DB
	sns            *awssns.Client
	fcmPlatformArn string
	log            zerolog.Logger
}

func NewPushService(db *gorm.DB, log zerolog.Logger) (*PushService, error) {
	region := os.Getenv("AWS_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		db:             db,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
		log:            log,
	}, nil
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	default:
		return "", errors.New("unknown platform")
	}
}

func (p *PushService) RegisterDevice(ctx context.Context, userID uint, platform, token string) (*models.UserDevice, error) {
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, err
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		UserID:      userID,
		Platform:    strings.ToLower(platform),
		TokenHash:   utils.SHA256Hex(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
		UpdatedAt:   time.Now(),
	}
	if err := p.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ?", dev.UserID, dev.TokenHash).
		Assign(dev).
		FirstOrCreate(dev).Error; err != nil {
		return nil, err
	}
	return dev, nil
}

// NotifyStreak sends a milestone push when the streak just hit 7 or 30 days.
// Other values are a no-op.
func (p *PushService) NotifyStreak(ctx context.Context, userID uint, streak int) {
	milestone := false
	for _, m := range streakMilestones {
		if streak == m {
			milestone = true
			break
		}
	}
	if !milestone {
		return
	}

	var devices []models.UserDevice
	if err := p.db.WithContext(ctx).
		Where("user_id = ? AND enabled = ?", userID, true).
		Find(&devices).Error; err != nil {
		p.log.Warn().Err(err).Uint("user_id", userID).Msg("device lookup failed")
		return
	}

	payload, _ := json.Marshal(map[string]string{
		"title": "Streak milestone!",
		"body":  fmt.Sprintf("%d days of eco-friendly meals in a row. Keep it up!", streak),
	})

	for _, dev := range devices {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			TargetArn: aws.String(dev.EndpointARN),
			Message:   aws.String(string(payload)),
		})
		if err != nil {
			p.log.Warn().Err(err).Uint("user_id", userID).Msg("streak push failed")
		}
	}
}
