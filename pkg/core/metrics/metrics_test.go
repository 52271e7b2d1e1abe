package metrics

import (
	"errors"
	"testing"

	"hagwon_strategy/pkg/models"
)

func newProfile() *models.AcademyProfile {
	return &models.AcademyProfile{
		Facility: models.FacilityInfo{
			Classrooms:         6,
			MaxCapacityPerRoom: 10,
		},
		Instructors: 4,
		Students: models.StudentCounts{
			ElemLow:  25,
			ElemHigh: 20,
			Middle:   12,
		},
		Tuition: models.TuitionFees{Elementary: 280000},
	}
}

func TestComputeMetrics_Basic(t *testing.T) {
	p := newProfile()
	m, err := ComputeMetrics(p, []models.Competitor{{Name: "리더스영어", Fee: 300000}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 57 students / 60 seats
	if m.UtilizationRate != 95.0 {
		t.Errorf("expected utilization 95.0, got %v", m.UtilizationRate)
	}
	// 57 / 4 = 14.25
	if m.InstructorLoad != 14.3 {
		t.Errorf("expected load 14.3, got %v", m.InstructorLoad)
	}
	if m.PricePosition != PriceParity {
		t.Errorf("expected parity, got %s", m.PricePosition)
	}
}

func TestComputeMetrics_ZeroClassrooms(t *testing.T) {
	p := newProfile()
	p.Facility.Classrooms = 0
	m, err := ComputeMetrics(p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.UtilizationRate != 0 {
		t.Errorf("expected 0 utilization with no classrooms, got %v", m.UtilizationRate)
	}
}

func TestComputeMetrics_ZeroInstructors(t *testing.T) {
	p := newProfile()
	p.Instructors = 0
	m, err := ComputeMetrics(p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.InstructorLoad != float64(p.Students.Total()) {
		t.Errorf("expected load %d, got %v", p.Students.Total(), m.InstructorLoad)
	}
}

func TestComputeMetrics_NilProfile(t *testing.T) {
	_, err := ComputeMetrics(nil, nil)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNormalizeFee(t *testing.T) {
	if got := NormalizeFee(32); got != 320000 {
		t.Errorf("NormalizeFee(32) = %d, want 320000", got)
	}
	if got := NormalizeFee(280000); got != 280000 {
		t.Errorf("NormalizeFee(280000) = %d, want 280000", got)
	}
	if got := NormalizeFee(999); got != 9990000 {
		t.Errorf("NormalizeFee(999) = %d, want 9990000", got)
	}
	if got := NormalizeFee(1000); got != 1000 {
		t.Errorf("NormalizeFee(1000) = %d, want 1000", got)
	}
}

func TestClassifyPrice(t *testing.T) {
	tests := []struct {
		name string
		fee  int64
		comp int64
		want PricePosition
	}{
		{"premium above band", 350000, 300000, PricePremium},
		{"inside band below", 280000, 300000, PriceParity},
		{"value below band", 260000, 300000, PriceValue},
		{"upper edge is parity", 330000, 300000, PriceParity},
		{"manwon competitor", 350000, 30, PricePremium},
		{"no competitor fee", 280000, 0, PriceParity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPrice(tt.fee, tt.comp); got != tt.want {
				t.Errorf("ClassifyPrice(%d, %d) = %s, want %s", tt.fee, tt.comp, got, tt.want)
			}
		})
	}
}

func TestComputeMetrics_FirstCompetitorIsBaseline(t *testing.T) {
	p := newProfile()
	p.Tuition.Elementary = 350000
	comps := []models.Competitor{
		{Name: "최상위어학원", Fee: 30},
		{Name: "탑클래스학원", Fee: 400000},
	}
	m, err := ComputeMetrics(p, comps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PricePosition != PricePremium {
		t.Errorf("expected premium against first competitor, got %s", m.PricePosition)
	}
}

func TestPricePositionLabel(t *testing.T) {
	if PricePremium.Label() != "고가(Premium)" || PriceValue.Label() != "저가(Value)" || PriceParity.Label() != "적정" {
		t.Error("unexpected price labels")
	}
}
