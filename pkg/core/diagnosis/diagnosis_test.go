package diagnosis

import (
	"errors"
	"strings"
	"testing"

	"hagwon_strategy/pkg/models"
)

func TestEvaluate_AllCombinations(t *testing.T) {
	tests := []struct {
		teaches   bool
		counselor bool
		wantOp    Operational
		wantTone  Tone
	}{
		{false, true, ManagementIdeal, ToneEncouraging},
		{true, false, RoleOverload, ToneUrgent},
		{true, true, TeachingHeavySupported, ToneBalanced},
		{false, false, ManagementUnderSupported, ToneBalanced},
	}
	for _, tt := range tests {
		d := Evaluate(tt.teaches, tt.counselor, "초등 저학년")
		if d.Operational != tt.wantOp {
			t.Errorf("teaches=%v counselor=%v: operational = %s, want %s", tt.teaches, tt.counselor, d.Operational, tt.wantOp)
		}
		if d.Tone != tt.wantTone {
			t.Errorf("teaches=%v counselor=%v: tone = %s, want %s", tt.teaches, tt.counselor, d.Tone, tt.wantTone)
		}
		if d.Label == "" || d.Summary == "" {
			t.Errorf("teaches=%v counselor=%v: empty label or summary", tt.teaches, tt.counselor)
		}
		if d.Director.Warning != tt.teaches {
			t.Errorf("teaches=%v: director warning = %v", tt.teaches, d.Director.Warning)
		}
		if d.Counseling.Warning == tt.counselor {
			t.Errorf("counselor=%v: counseling warning = %v", tt.counselor, d.Counseling.Warning)
		}
	}
}

func TestEvaluate_TargetSubstitution(t *testing.T) {
	d := Evaluate(false, true, "초등 고학년")
	if !strings.Contains(d.Summary, "'초등 고학년'") {
		t.Errorf("summary missing target: %s", d.Summary)
	}

	d = Evaluate(true, false, "  ")
	if !strings.Contains(d.Summary, "'핵심 타겟'") {
		t.Errorf("summary missing default target: %s", d.Summary)
	}
}

func TestDiagnose_NilProfile(t *testing.T) {
	if _, err := Diagnose(nil); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDiagnose_ReadsProfileFlags(t *testing.T) {
	p := &models.AcademyProfile{TargetSegment: "중등부"}
	p.Operation.DirectorTeaches = true
	p.Operation.HasCounselor = false

	d, err := Diagnose(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Operational != RoleOverload {
		t.Errorf("expected role overload, got %s", d.Operational)
	}
	if d.Director.Action == "" || d.Counseling.Action == "" {
		t.Error("expected actions on both warning cards")
	}
}

func TestDiagnose_BlankTargetUsesPrimarySegment(t *testing.T) {
	p := &models.AcademyProfile{}
	p.Operation.HasCounselor = true
	p.Students.ElemLow = 20
	p.Students.Middle = 12

	d, err := Diagnose(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.Summary, "'초등부'") {
		t.Errorf("summary should name the largest segment: %s", d.Summary)
	}
	if strings.Contains(d.Summary, "핵심 타겟") {
		t.Errorf("summary fell back to the generic target: %s", d.Summary)
	}
}
