package fixture

import (
	"reflect"
	"testing"

	"hagwon_strategy/pkg/core/metrics"
	"hagwon_strategy/pkg/models"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(42, 5)
	b := Generate(42, 5)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different fixtures")
	}
	if len(a) != 5 {
		t.Fatalf("expected 5 fixtures, got %d", len(a))
	}
	if reflect.DeepEqual(Generate(43, 5), a) {
		t.Error("different seeds produced identical fixtures")
	}
	if Generate(1, 0) != nil {
		t.Error("n=0 should return nil")
	}
}

func TestGenerate_Ranges(t *testing.T) {
	for i, rec := range Generate(7, 50) {
		p := rec.Profile
		if p.Facility.Classrooms < 5 || p.Facility.Classrooms > 9 {
			t.Errorf("%d: classrooms out of range: %d", i, p.Facility.Classrooms)
		}
		if p.Instructors < 3 || p.Instructors > 6 {
			t.Errorf("%d: instructors out of range: %d", i, p.Instructors)
		}
		if p.Students.ElemLow < 20 || p.Students.ElemLow > 49 || p.Students.Middle < 10 || p.Students.Middle > 29 {
			t.Errorf("%d: students out of range: %+v", i, p.Students)
		}
		if len(rec.Competitors) != 2 {
			t.Fatalf("%d: expected 2 competitors", i)
		}
		for _, c := range rec.Competitors {
			if c.Fee < 250000 || c.Fee > 390000 || c.Fee%10000 != 0 {
				t.Errorf("%d: fee out of range: %d", i, c.Fee)
			}
		}
		if err := models.Validate(&rec); err != nil {
			t.Errorf("%d: fixture fails validation: %v", i, err)
		}
		if _, err := metrics.ComputeMetrics(&rec.Profile, rec.Competitors); err != nil {
			t.Errorf("%d: metrics failed: %v", i, err)
		}
	}
}
