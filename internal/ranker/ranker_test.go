package ranker

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/agriguru/internal/models"
)

func price(v float64) *float64 { return &v }

func TestRank(t *testing.T) {
	scores := map[string]float64{"Rice": 0.7, "Wheat": 0.9, "Maize": 0.5}
	prices := map[string]float64{"Rice": 1000, "Wheat": 5000}

	tests := []struct {
		name string
		in   Input
		want []models.RecommendationResult
	}{
		{
			name: "no budget",
			in:   Input{DistrictCrops: []string{"Rice", "Wheat"}, Scores: scores},
			want: []models.RecommendationResult{
				{Crop: "Wheat", Confidence: 0.9},
				{Crop: "Rice", Confidence: 0.7},
			},
		},
		{
			name: "pinned crop forced first",
			in:   Input{DistrictCrops: []string{"Rice", "Wheat"}, Scores: scores, PinnedCrop: "Rice"},
			want: []models.RecommendationResult{
				{Crop: "Rice", Confidence: 0.7, Pinned: true},
				{Crop: "Wheat", Confidence: 0.9},
			},
		},
		{
			name: "budget excludes expensive crop",
			in:   Input{DistrictCrops: []string{"Rice", "Wheat"}, Scores: scores, Prices: prices, Budget: price(2000)},
			want: []models.RecommendationResult{
				{Crop: "Rice", Confidence: 0.7, Price: price(1000)},
			},
		},
		{
			name: "pinned crop bypasses budget",
			in:   Input{DistrictCrops: []string{"Rice", "Wheat"}, Scores: scores, Prices: prices, Budget: price(2000), PinnedCrop: "Wheat"},
			want: []models.RecommendationResult{
				{Crop: "Wheat", Confidence: 0.9, Price: price(5000), Pinned: true},
				{Crop: "Rice", Confidence: 0.7, Price: price(1000)},
			},
		},
		{
			name: "pinned crop without price is ignored when prices are used",
			in:   Input{DistrictCrops: []string{"Rice", "Maize"}, Scores: scores, Prices: prices, Budget: price(2000), PinnedCrop: "Maize"},
			want: []models.RecommendationResult{
				{Crop: "Rice", Confidence: 0.7, Price: price(1000)},
			},
		},
		{
			name: "pinned crop outside district is ignored",
			in:   Input{DistrictCrops: []string{"Rice"}, Scores: scores, PinnedCrop: "Wheat"},
			want: []models.RecommendationResult{
				{Crop: "Rice", Confidence: 0.7},
			},
		},
		{
			name: "zero budget leaves only pinned crop",
			in:   Input{DistrictCrops: []string{"Rice", "Wheat"}, Scores: scores, Prices: map[string]float64{"Rice": 0, "Wheat": 5000}, Budget: price(0), PinnedCrop: "Wheat"},
			want: []models.RecommendationResult{
				{Crop: "Wheat", Confidence: 0.9, Price: price(5000), Pinned: true},
			},
		},
		{
			name: "negative budget without pin is empty",
			in:   Input{DistrictCrops: []string{"Rice", "Wheat"}, Scores: scores, Prices: prices, Budget: price(-1)},
			want: []models.RecommendationResult{},
		},
		{
			name: "disjoint inputs are empty",
			in:   Input{DistrictCrops: []string{"Jute", "Tea"}, Scores: scores},
			want: []models.RecommendationResult{},
		},
		{
			name: "ties keep district order",
			in: Input{
				DistrictCrops: []string{"Tea", "Jute", "Rice", "Jute"},
				Scores:        map[string]float64{"Rice": 0.2, "Jute": 0.4, "Tea": 0.4},
			},
			want: []models.RecommendationResult{
				{Crop: "Tea", Confidence: 0.4},
				{Crop: "Jute", Confidence: 0.4},
				{Crop: "Rice", Confidence: 0.2},
			},
		},
		{
			name: "truncates to five including pin",
			in: Input{
				DistrictCrops: []string{"A", "B", "C", "D", "E", "F", "G"},
				Scores:        map[string]float64{"A": 0.01, "B": 0.3, "C": 0.2, "D": 0.15, "E": 0.14, "F": 0.1, "G": 0.1},
				PinnedCrop:    "A",
			},
			want: []models.RecommendationResult{
				{Crop: "A", Confidence: 0.01, Pinned: true},
				{Crop: "B", Confidence: 0.3},
				{Crop: "C", Confidence: 0.2},
				{Crop: "D", Confidence: 0.15},
				{Crop: "E", Confidence: 0.14},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestRank_Properties проверяет инварианты на случайных входах с фиксированным зерном.
func TestRank_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	universe := []string{"Rice", "Wheat", "Maize", "Jute", "Tea", "Cotton", "Potato", "Barley", "Gram", "Sugarcane"}

	for iter := 0; iter < 500; iter++ {
		in := randomInput(rng, universe)

		got := Rank(in)
		again := Rank(in)
		require.Equal(t, got, again, "iteration %d: result must be deterministic", iter)

		require.LessOrEqual(t, len(got), MaxResults)

		district := make(map[string]bool)
		for _, c := range in.DistrictCrops {
			district[c] = true
		}
		for i, r := range got {
			_, scored := in.Scores[r.Crop]
			assert.True(t, district[r.Crop] && scored, "iteration %d: %s outside candidates", iter, r.Crop)
			if r.Pinned {
				assert.Equal(t, 0, i, "iteration %d: pinned crop must be first", iter)
				assert.Equal(t, in.PinnedCrop, r.Crop, "iteration %d", iter)
				continue
			}
			if in.Budget != nil {
				require.NotNil(t, r.Price, "iteration %d: %s has no price under a budget", iter, r.Crop)
				assert.Greater(t, *in.Budget, 0.0, "iteration %d: budget <= 0 must leave only the pin", iter)
				assert.LessOrEqual(t, *r.Price, *in.Budget, "iteration %d: %s over budget", iter, r.Crop)
			}
		}

		start := 0
		if len(got) > 0 && got[0].Pinned {
			start = 1
		}
		for i := start + 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Confidence, got[i].Confidence, "iteration %d: not sorted", iter)
		}

		_, pinScored := in.Scores[in.PinnedCrop]
		_, pinPriced := in.Prices[in.PinnedCrop]
		wantPin := in.PinnedCrop != "" && district[in.PinnedCrop] && pinScored && (in.Prices == nil || pinPriced)
		gotPin := len(got) > 0 && got[0].Pinned
		assert.Equal(t, wantPin, gotPin, "iteration %d: pin presence for %+v", iter, in)
	}
}

func randomInput(rng *rand.Rand, universe []string) Input {
	var in Input
	for _, c := range universe {
		if rng.Intn(2) == 0 {
			in.DistrictCrops = append(in.DistrictCrops, c)
		}
	}
	rng.Shuffle(len(in.DistrictCrops), func(i, j int) {
		in.DistrictCrops[i], in.DistrictCrops[j] = in.DistrictCrops[j], in.DistrictCrops[i]
	})

	in.Scores = make(map[string]float64)
	for _, c := range universe {
		if rng.Intn(3) > 0 {
			in.Scores[c] = float64(rng.Intn(10)) / 10
		}
	}

	if rng.Intn(2) == 0 {
		in.Prices = make(map[string]float64)
		for _, c := range universe {
			if rng.Intn(4) > 0 {
				in.Prices[c] = float64(rng.Intn(5000))
			}
		}
		if rng.Intn(2) == 0 {
			b := float64(rng.Intn(6000) - 500)
			in.Budget = &b
		}
	}

	if rng.Intn(2) == 0 {
		in.PinnedCrop = universe[rng.Intn(len(universe))]
	}
	return in
}

func ExampleRank() {
	out := Rank(Input{
		DistrictCrops: []string{"Rice", "Wheat"},
		Scores:        map[string]float64{"Rice": 0.7, "Wheat": 0.9, "Maize": 0.5},
	})
	for _, r := range out {
		fmt.Printf("%s %.1f\n", r.Crop, r.Confidence)
	}
	// Output:
	// Wheat 0.9
	// Rice 0.7
}
