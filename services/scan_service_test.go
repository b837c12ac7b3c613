package services

import (
	"context"
	"errors"
	"testing"

	"ecotaste-backend/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "data:image/jpeg;base64,Zm9vZA=="

type stubPhotoStore struct {
	url string
	err error
}

func (s *stubPhotoStore) UploadBase64(ctx context.Context, base64Data, keyPrefix string) (string, error) {
	return s.url, s.err
}

type stubLabeler struct {
	labels []string
	err    error
}

func (s *stubLabeler) DetectLabels(ctx context.Context, image []byte) ([]string, error) {
	return s.labels, s.err
}

type stubDetector struct {
	foods  []DetectedFood
	err    error
	called bool
}

func (s *stubDetector) DetectFoods(ctx context.Context, imageBase64 string) ([]DetectedFood, error) {
	s.called = true
	return s.foods, s.err
}

func newTestScan(photos PhotoStore, labeler ImageLabeler, detector FoodDetector) *ScanService {
	return NewScanService(photos, labeler, detector, zerolog.Nop())
}

func TestScanMeal_HappyPath(t *testing.T) {
	detector := &stubDetector{foods: []DetectedFood{
		{Name: "Garden Salad", Category: models.CategoryVegetables, CarbonFootprint: 0.2, IsPlantBased: true},
	}}
	svc := newTestScan(
		&stubPhotoStore{url: "https://cdn.example/meal-photos/1-42.jpg"},
		&stubLabeler{labels: []string{"Food", "Plate", "Salad"}},
		detector,
	)

	result, err := svc.ScanMeal(context.Background(), 1, testImage)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/meal-photos/1-42.jpg", result.PhotoURL)
	require.Len(t, result.Foods, 1)
	assert.True(t, detector.called)
}

func TestScanMeal_RejectsNonFoodPhoto(t *testing.T) {
	detector := &stubDetector{}
	svc := newTestScan(
		&stubPhotoStore{url: "https://cdn.example/x.jpg"},
		&stubLabeler{labels: []string{"Laptop", "Desk", "Keyboard"}},
		detector,
	)

	_, err := svc.ScanMeal(context.Background(), 1, testImage)
	assert.ErrorIs(t, err, ErrNotAFoodPhoto)
	assert.False(t, detector.called, "vision model is not called for non-food photos")
}

func TestScanMeal_GuardOutageFallsThrough(t *testing.T) {
	detector := &stubDetector{foods: []DetectedFood{
		{Name: "Pasta", Category: models.CategoryGrains, CarbonFootprint: 0.6, IsPlantBased: true},
	}}
	svc := newTestScan(
		&stubPhotoStore{url: "https://cdn.example/x.jpg"},
		&stubLabeler{err: errors.New("rekognition down")},
		detector,
	)

	result, err := svc.ScanMeal(context.Background(), 1, testImage)
	require.NoError(t, err, "guard outage must not block scanning")
	assert.True(t, detector.called)
	assert.Len(t, result.Foods, 1)
}

func TestScanMeal_InvalidImage(t *testing.T) {
	detector := &stubDetector{}
	svc := newTestScan(&stubPhotoStore{}, &stubLabeler{}, detector)

	_, err := svc.ScanMeal(context.Background(), 1, "not-a-data-uri")
	assert.Error(t, err)
	assert.False(t, detector.called)
}

func TestScanMeal_DetectorErrorPassesThrough(t *testing.T) {
	svc := newTestScan(
		&stubPhotoStore{url: "https://cdn.example/x.jpg"},
		&stubLabeler{labels: []string{"Food"}},
		&stubDetector{err: ErrRateLimited},
	)

	_, err := svc.ScanMeal(context.Background(), 1, testImage)
	assert.ErrorIs(t, err, ErrRateLimited)
}
