// Package footprint estimates a yearly personal carbon footprint in tonnes of CO2e
// from weekly travel, monthly household energy and spending, diet and waste habits.
package footprint

import (
	"errors"
	"fmt"
	"math"
)

const (
	weeksPerYear  = 52
	monthsPerYear = 12
	kgPerTonne    = 1000

	shortHaulKm  = 1000
	mediumHaulKm = 3000
	longHaulKm   = 6000
)

// kg CO2e per km
var carFactors = map[string]float64{
	"petrol":   0.192,
	"diesel":   0.171,
	"electric": 0.050,
	"hybrid":   0.105,
}

const (
	busFactor         = 0.105
	trainFactor       = 0.041
	shortFlightFactor = 0.254
	midFlightFactor   = 0.151
	longFlightFactor  = 0.149

	electricityFactor = 0.475 // per kWh
	gasFactor         = 2.0

	clothesFactor       = 0.3
	electronicsFactor   = 0.5
	entertainmentFactor = 0.2

	noRecyclingTonnes = 0.2
	compostingTonnes  = -0.1
)

// tonnes CO2e per year
var dietFactors = map[string]float64{
	"vegan":      1.5,
	"vegetarian": 1.7,
	"low":        2.0,
	"average":    2.5,
	"high":       3.3,
}

// Averages holds yearly per-capita footprints in tonnes used for comparison.
var Averages = map[string]float64{
	"world":       4.7,
	"us":          16,
	"europe":      7.8,
	"india":       2,
	"sustainable": 2,
}

var ErrInvalidInput = errors.New("invalid footprint input")

type Transport struct {
	CarDistance       float64 `json:"carDistance"` // km per week
	CarType           string  `json:"carType"`
	BusDistance       float64 `json:"busDistance"`
	TrainDistance     float64 `json:"trainDistance"`
	ShortHaulFlights  float64 `json:"shortHaulFlights"` // per year
	MediumHaulFlights float64 `json:"mediumHaulFlights"`
	LongHaulFlights   float64 `json:"longHaulFlights"`
}

type Home struct {
	Electricity   float64 `json:"electricity"` // kWh per month
	Gas           float64 `json:"gas"`
	HouseholdSize int     `json:"householdSize"`
}

type Diet struct {
	DietType string `json:"dietType"`
}

// Lifestyle is monthly spending per category.
type Lifestyle struct {
	Clothes       float64 `json:"clothes"`
	Electronics   float64 `json:"electronics"`
	Entertainment float64 `json:"entertainment"`
}

type Waste struct {
	Recycles *bool `json:"recycles"`
	Composts bool  `json:"composts"`
}

type Input struct {
	Transport Transport `json:"transport"`
	Home      Home      `json:"home"`
	Diet      Diet      `json:"diet"`
	Lifestyle Lifestyle `json:"lifestyle"`
	Waste     Waste     `json:"waste"`
}

type Breakdown struct {
	Transport float64 `json:"transport"`
	Home      float64 `json:"home"`
	Diet      float64 `json:"diet"`
	Lifestyle float64 `json:"lifestyle"`
	Waste     float64 `json:"waste"`
}

// Result is the yearly estimate. Comparison holds the total as a whole-number
// percentage of each reference average.
type Result struct {
	Total      float64        `json:"total"`
	Breakdown  Breakdown      `json:"breakdown"`
	Comparison map[string]int `json:"comparison"`
	Rating     string         `json:"rating"`
}

// Normalize fills defaults for omitted choices and rejects negative or unknown values.
func (in *Input) Normalize() error {
	if in.Transport.CarType == "" {
		in.Transport.CarType = "petrol"
	}
	if in.Diet.DietType == "" {
		in.Diet.DietType = "average"
	}
	if in.Home.HouseholdSize < 1 {
		in.Home.HouseholdSize = 1
	}
	if in.Waste.Recycles == nil {
		yes := true
		in.Waste.Recycles = &yes
	}
	if _, ok := carFactors[in.Transport.CarType]; !ok {
		return fmt.Errorf("%w: unknown carType %q", ErrInvalidInput, in.Transport.CarType)
	}
	if _, ok := dietFactors[in.Diet.DietType]; !ok {
		return fmt.Errorf("%w: unknown dietType %q", ErrInvalidInput, in.Diet.DietType)
	}
	values := map[string]float64{
		"carDistance":       in.Transport.CarDistance,
		"busDistance":       in.Transport.BusDistance,
		"trainDistance":     in.Transport.TrainDistance,
		"shortHaulFlights":  in.Transport.ShortHaulFlights,
		"mediumHaulFlights": in.Transport.MediumHaulFlights,
		"longHaulFlights":   in.Transport.LongHaulFlights,
		"electricity":       in.Home.Electricity,
		"gas":               in.Home.Gas,
		"clothes":           in.Lifestyle.Clothes,
		"electronics":       in.Lifestyle.Electronics,
		"entertainment":     in.Lifestyle.Entertainment,
	}
	for name, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidInput, name)
		}
	}
	return nil
}

// Calculate normalizes in and returns the yearly estimate.
func Calculate(in Input) (Result, error) {
	if err := in.Normalize(); err != nil {
		return Result{}, err
	}
	t := in.Transport
	transport := (t.CarDistance*weeksPerYear*carFactors[t.CarType] +
		t.BusDistance*weeksPerYear*busFactor +
		t.TrainDistance*weeksPerYear*trainFactor +
		t.ShortHaulFlights*shortHaulKm*shortFlightFactor +
		t.MediumHaulFlights*mediumHaulKm*midFlightFactor +
		t.LongHaulFlights*longHaulKm*longFlightFactor) / kgPerTonne

	home := (in.Home.Electricity*monthsPerYear*electricityFactor +
		in.Home.Gas*monthsPerYear*gasFactor) / kgPerTonne / float64(in.Home.HouseholdSize)

	diet := dietFactors[in.Diet.DietType]

	l := in.Lifestyle
	lifestyle := (l.Clothes*clothesFactor + l.Electronics*electronicsFactor +
		l.Entertainment*entertainmentFactor) * monthsPerYear / kgPerTonne

	var waste float64
	if !*in.Waste.Recycles {
		waste += noRecyclingTonnes
	}
	if in.Waste.Composts {
		waste += compostingTonnes
	}

	total := transport + home + diet + lifestyle + waste
	comparison := make(map[string]int, len(Averages))
	for name, avg := range Averages {
		comparison[name] = int(math.Round(total / avg * 100))
	}
	return Result{
		Total: round2(total),
		Breakdown: Breakdown{
			Transport: round2(transport),
			Home:      round2(home),
			Diet:      round2(diet),
			Lifestyle: round2(lifestyle),
			Waste:     round2(waste),
		},
		Comparison: comparison,
		Rating:     Rate(total),
	}, nil
}

// Rate buckets a yearly total in tonnes.
func Rate(total float64) string {
	switch {
	case total <= 2:
		return "low"
	case total <= 5:
		return "moderate"
	case total <= 10:
		return "high"
	default:
		return "very_high"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
