package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hippo/models"
)

func TestBuildSystemPrompt_ModeLine(t *testing.T) {
	live := BuildSystemPrompt(models.ModeLivePrices)
	assert.Contains(t, live, "structured live-price data")
	assert.Contains(t, live, "You are Hippo")

	web := BuildSystemPrompt(models.ModeWebAssisted)
	assert.Contains(t, web, "web-data context")
	assert.NotContains(t, web, "structured live-price data")
}

func TestBuildTripContext(t *testing.T) {
	tests := []struct {
		name string
		trip models.TripInput
		want string
	}{
		{
			name: "full form",
			trip: models.TripInput{
				Origin:    "New York",
				CityA:     "Lisbon",
				CityB:     "Barcelona",
				StartDate: "2024-03-01",
				EndDate:   "2024-03-05",
				Theme:     "food",
				Budget:    "$2000",
			},
			want: "Origin: New York | Destinations: Lisbon vs Barcelona | Dates: 2024-03-01 to 2024-03-05 | Trip theme: food | Approximate total budget: $2000",
		},
		{
			name: "single destination and open dates",
			trip: models.TripInput{CityA: "Lisbon", StartDate: "2024-03-01"},
			want: "Destinations: Lisbon vs City B | Dates: 2024-03-01 to flexible",
		},
		{
			name: "empty form",
			trip: models.TripInput{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildTripContext(tt.trip))
		})
	}
}
