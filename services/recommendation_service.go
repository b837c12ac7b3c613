package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"ecotaste-backend/models"
)

type RecommendationType string

const (
	RecCarbon  RecommendationType = "carbon"
	RecPopular RecommendationType = "popular"
	RecWaste   RecommendationType = "waste"
)

type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

func (p RecommendationPriority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Recommendation struct {
	Type     RecommendationType     `json:"type"`
	Message  string                 `json:"message"`
	Priority RecommendationPriority `json:"priority"`
}

// RecommendationService combines the current menu with popularity and waste
// aggregates into a prioritized list of suggestions for cafeteria staff.
// Rule evaluation is deterministic: each rule appends at most one entry, and
// the final sort is stable so equal priorities keep rule order.
type RecommendationService struct{}

func NewRecommendationService() *RecommendationService {
	return &RecommendationService{}
}

// Thresholds and constants of the recommendation rules. The 80% figure is a
// fixed marketing claim, not computed from the menu.
const (
	highCarbonThreshold = 3.0
	plantBasedRatioMin  = 0.5
	highWasteThreshold  = 3
	avgCarbonThreshold  = 1.5
)

func (s *RecommendationService) Recommendations(menu []models.MenuItem, popularity []models.PopularityRecord, wasted []WastedItem) []Recommendation {
	var recs []Recommendation

	// Rule 1: first high-carbon item on the menu.
	for _, item := range menu {
		if item.CarbonFootprint > highCarbonThreshold {
			recs = append(recs, Recommendation{
				Type: RecCarbon,
				Message: fmt.Sprintf(
					"Consider replacing %s (%skg CO₂) with plant-based alternatives to reduce carbon footprint by up to 80%%",
					item.Name, formatCarbon(item.CarbonFootprint)),
				Priority: PriorityHigh,
			})
			break
		}
	}

	// Rule 2: plant-based share of the menu. An empty menu uses divisor 1,
	// matching the behavior this engine replaces; the ratio comes out 0 and
	// the rule fires with "0%".
	plantBased := 0
	for _, item := range menu {
		if item.IsPlantBased {
			plantBased++
		}
	}
	ratio := float64(plantBased) / float64(max(len(menu), 1))
	if ratio < plantBasedRatioMin {
		recs = append(recs, Recommendation{
			Type: RecCarbon,
			Message: fmt.Sprintf(
				"Only %d%% of today's menu is plant-based. Adding more vegetable options can significantly reduce carbon footprint.",
				int(math.Round(ratio*100))),
			Priority: PriorityMedium,
		})
	}

	// Rule 3: top student favorite.
	if len(popularity) > 0 {
		top := popularity[0]
		recs = append(recs, Recommendation{
			Type: RecPopular,
			Message: fmt.Sprintf(
				"%q is a student favorite with %d selections! Consider keeping it on the menu regularly.",
				top.ItemName, top.Selections),
			Priority: PriorityLow,
		})
	}

	// Rule 4: heavily wasted item.
	if len(wasted) > 0 && wasted[0].WasteScore > highWasteThreshold {
		recs = append(recs, Recommendation{
			Type: RecWaste,
			Message: fmt.Sprintf(
				"%q has high waste. Consider reducing portion sizes or offering it less frequently.",
				wasted[0].ItemName),
			Priority: PriorityHigh,
		})
	}

	// Rule 5: average menu footprint, same divisor-1 quirk as rule 2.
	var totalCarbon float64
	for _, item := range menu {
		totalCarbon += item.CarbonFootprint
	}
	avg := totalCarbon / float64(max(len(menu), 1))
	if avg > avgCarbonThreshold {
		recs = append(recs, Recommendation{
			Type: RecCarbon,
			Message: fmt.Sprintf(
				"Today's menu averages %.1fkg CO₂ per item. Target under 1kg for a sustainable menu!",
				avg),
			Priority: PriorityMedium,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.rank() < recs[j].Priority.rank()
	})
	return recs
}

// formatCarbon prints footprints without trailing zeros (4.5 → "4.5", 5 → "5").
func formatCarbon(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
