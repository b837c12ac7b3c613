package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecotaste-backend/utils"

	"github.com/rs/zerolog"
)

var ErrNotAFoodPhoto = errors.New("the image does not appear to contain food")

// PhotoStore persists the uploaded meal photo and returns its URL.
type PhotoStore interface {
	UploadBase64(ctx context.Context, base64Data, keyPrefix string) (string, error)
}

// ImageLabeler returns coarse labels for an image. Used as a cheap guard so
// obviously non-food photos never reach the vision model.
type ImageLabeler interface {
	DetectLabels(ctx context.Context, image []byte) ([]string, error)
}

// ScanResult is what the client confirms before logging the meal.
type ScanResult struct {
	PhotoURL string         `json:"photo_url"`
	Foods    []DetectedFood `json:"foods"`
}

// ScanService runs the photo pipeline: store the image, check it shows food,
// then ask the detector for structured food items. Only one scan is in flight
// per user action; a failed scan mutates no state.
type ScanService struct {
	photos   PhotoStore
	labeler  ImageLabeler
	detector FoodDetector
	log      zerolog.Logger
}

func NewScanService(photos PhotoStore, labeler ImageLabeler, detector FoodDetector, log zerolog.Logger) *ScanService {
	return &ScanService{photos: photos, labeler: labeler, detector: detector, log: log}
}

// Rekognition labels that count as evidence of food in the frame.
var foodLabels = []string{"food", "meal", "dish", "plate", "lunch", "dinner", "breakfast", "snack", "drink", "beverage", "fruit", "vegetable"}

func (s *ScanService) ScanMeal(ctx context.Context, userID uint, imageBase64 string) (*ScanResult, error) {
	imageBytes, _, err := utils.DecodeDataURI(imageBase64)
	if err != nil {
		return nil, err
	}

	url, err := s.photos.UploadBase64(ctx, imageBase64, fmt.Sprintf("meal-photos/%d", userID))
	if err != nil {
		return nil, fmt.Errorf("photo upload failed: %w", err)
	}

	labels, err := s.labeler.DetectLabels(ctx, imageBytes)
	if err != nil {
		// The guard is an optimization; if it is down, let the scan proceed.
		s.log.Warn().Err(err).Msg("label pre-check unavailable, skipping food guard")
	} else if !looksLikeFood(labels) {
		return nil, ErrNotAFoodPhoto
	}

	foods, err := s.detector.DetectFoods(ctx, imageBase64)
	if err != nil {
		return nil, err
	}

	return &ScanResult{PhotoURL: url, Foods: foods}, nil
}

func looksLikeFood(labels []string) bool {
	for _, label := range labels {
		l := strings.ToLower(label)
		for _, food := range foodLabels {
			if strings.Contains(l, food) {
				return true
			}
		}
	}
	return false
}
