package services

import (
	"context"

	"ecotaste-backend/models"

	"gorm.io/gorm"
)

// LeaderboardEntry is one row of the carbon-savings ranking.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	CarbonSaved float64 `json:"carbon_saved"`
}

// LeaderboardService ranks accounts by cumulative carbon saved.
type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// Top returns the n best savers, highest first. Ties share their order of
// account creation.
func (s *LeaderboardService) Top(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	type row struct {
		FullName    string
		CarbonSaved float64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.UserStats{}).
		Select("users.full_name, user_stats.carbon_saved").
		Joins("JOIN users ON users.id = user_stats.user_id").
		Order("user_stats.carbon_saved DESC, user_stats.user_id ASC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			Name:        r.FullName,
			CarbonSaved: r.CarbonSaved,
		})
	}
	return entries, nil
}

// Rank is 1 plus the number of accounts that saved strictly more than this one.
func (s *LeaderboardService) Rank(ctx context.Context, userID uint) (int, error) {
	var stats models.UserStats
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			stats = models.UserStats{UserID: userID}
		} else {
			return 0, err
		}
	}

	var ahead int64
	err := s.db.WithContext(ctx).
		Model(&models.UserStats{}).
		Where("carbon_saved > ? AND user_id <> ?", stats.CarbonSaved, userID).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
