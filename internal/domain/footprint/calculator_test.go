package footprint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_Defaults(t *testing.T) {
	res, err := Calculate(Input{})
	require.NoError(t, err)

	// only the average diet contributes
	assert.Equal(t, 2.5, res.Total)
	assert.Equal(t, Breakdown{Diet: 2.5}, res.Breakdown)
	assert.Equal(t, 125, res.Comparison["sustainable"])
	assert.Equal(t, 53, res.Comparison["world"])
	assert.Equal(t, "moderate", res.Rating)
}

func TestCalculate_AllCategories(t *testing.T) {
	no := false
	in := Input{
		Transport: Transport{
			CarDistance:      100, // 100*52*0.192 = 998.4 kg
			CarType:          "petrol",
			BusDistance:      10, // 54.6 kg
			ShortHaulFlights: 2,  // 508 kg
		},
		Home:      Home{Electricity: 300, Gas: 10}, // 1710 + 240 kg
		Diet:      Diet{DietType: "vegan"},
		Lifestyle: Lifestyle{Clothes: 100}, // 360 kg
		Waste:     Waste{Recycles: &no, Composts: true},
	}
	res, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 1.56, res.Breakdown.Transport, 0.001)
	assert.InDelta(t, 1.95, res.Breakdown.Home, 0.001)
	assert.InDelta(t, 1.5, res.Breakdown.Diet, 0.001)
	assert.InDelta(t, 0.36, res.Breakdown.Lifestyle, 0.001)
	assert.InDelta(t, 0.1, res.Breakdown.Waste, 0.001)
	assert.InDelta(t, 5.47, res.Total, 0.001)
	assert.Equal(t, "high", res.Rating)
}

func TestCalculate_HouseholdShare(t *testing.T) {
	res, err := Calculate(Input{Home: Home{Electricity: 400, HouseholdSize: 4}})
	require.NoError(t, err)
	// 400*12*0.475 = 2280 kg shared by four
	assert.InDelta(t, 0.57, res.Breakdown.Home, 0.001)
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"unknown car", Input{Transport: Transport{CarType: "rocket"}}},
		{"unknown diet", Input{Diet: Diet{DietType: "carnivore"}}},
		{"negative distance", Input{Transport: Transport{BusDistance: -1}}},
		{"negative spending", Input{Lifestyle: Lifestyle{Electronics: -5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, "low", Rate(2))
	assert.Equal(t, "moderate", Rate(4.9))
	assert.Equal(t, "high", Rate(10))
	assert.Equal(t, "very_high", Rate(10.01))
}
