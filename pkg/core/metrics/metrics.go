package metrics

import (
	"fmt"
	"math"

	"hagwon_strategy/pkg/models"
)

// PricePosition compares own tuition with the primary competitor.
type PricePosition string

const (
	PricePremium PricePosition = "premium"
	PriceValue   PricePosition = "value"
	PriceParity  PricePosition = "parity"
)

// Label returns the Korean wording used in report prose.
func (p PricePosition) Label() string {
	switch p {
	case PricePremium:
		return "고가(Premium)"
	case PriceValue:
		return "저가(Value)"
	}
	return "적정"
}

const (
	// Raw fees under this are taken as 만원 units.
	manwonThreshold = 1000
	manwon          = 10000

	premiumFactor = 1.1
	valueFactor   = 0.9
)

// DerivedMetrics are the figures the report is built around.
type DerivedMetrics struct {
	UtilizationRate float64       `json:"utilization_rate"` // percent, 1 decimal
	InstructorLoad  float64       `json:"instructor_load"`  // students per instructor, 1 decimal
	PricePosition   PricePosition `json:"price_position"`
}

// NormalizeFee converts a raw fee to won. Values below 1000 are read as
// 만원 (so 32 becomes 320000); anything else is already in won.
func NormalizeFee(raw int64) int64 {
	if raw < manwonThreshold {
		return raw * manwon
	}
	return raw
}

// TotalCapacity is classrooms times seats per classroom.
func TotalCapacity(profile *models.AcademyProfile) int {
	if profile == nil {
		return 0
	}
	return profile.Facility.Classrooms * profile.Facility.MaxCapacityPerRoom
}

// ComputeMetrics derives utilization, instructor load and price position.
// The first competitor is the price baseline.
func ComputeMetrics(profile *models.AcademyProfile, competitors []models.Competitor) (DerivedMetrics, error) {
	if profile == nil {
		return DerivedMetrics{}, fmt.Errorf("%w: academy profile is required", models.ErrInvalidInput)
	}

	students := float64(profile.Students.Total())

	// 1. Utilization (empty capacity reads as 0%)
	var utilization float64
	if capacity := TotalCapacity(profile); capacity > 0 {
		utilization = students / float64(capacity) * 100
	}

	// 2. Instructor load, divisor floored at 1
	instructors := profile.Instructors
	if instructors < 1 {
		instructors = 1
	}
	load := students / float64(instructors)

	// 3. Price position against the primary competitor
	position := PriceParity
	if len(competitors) > 0 {
		position = ClassifyPrice(profile.Tuition.Elementary, int64(competitors[0].Fee))
	}

	return DerivedMetrics{
		UtilizationRate: round1(utilization),
		InstructorLoad:  round1(load),
		PricePosition:   position,
	}, nil
}

// ClassifyPrice applies the ±10% band. competitorRaw is normalized first.
// A competitor without a usable fee gives parity.
func ClassifyPrice(fee, competitorRaw int64) PricePosition {
	comp := NormalizeFee(competitorRaw)
	if comp <= 0 {
		return PriceParity
	}
	switch {
	case float64(fee) > float64(comp)*premiumFactor:
		return PricePremium
	case float64(fee) < float64(comp)*valueFactor:
		return PriceValue
	default:
		return PriceParity
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
