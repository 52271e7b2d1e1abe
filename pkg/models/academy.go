package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ParentPersona is the dominant parent type around the academy.
type ParentPersona string

const (
	PersonaUnknown  ParentPersona = ""
	PersonaExam     ParentPersona = "exam"
	PersonaSpeaking ParentPersona = "speaking"
	PersonaCare     ParentPersona = "care"
	PersonaValue    ParentPersona = "value"
)

// personaLabels holds the labels used on the input forms. "교육열 높음" is an
// older label for the exam persona that still shows up in saved records.
var personaLabels = map[string]ParentPersona{
	"입시 중심":     PersonaExam,
	"교육열 높음":    PersonaExam,
	"영어 흥미/스피킹": PersonaSpeaking,
	"보육/관리":     PersonaCare,
	"가성비":       PersonaValue,
}

// ParsePersona accepts either the enum value or a form label.
func ParsePersona(s string) (ParentPersona, bool) {
	s = strings.TrimSpace(s)
	switch ParentPersona(strings.ToLower(s)) {
	case PersonaUnknown:
		return PersonaUnknown, true
	case PersonaExam, PersonaSpeaking, PersonaCare, PersonaValue:
		return ParentPersona(strings.ToLower(s)), true
	}
	if p, ok := personaLabels[s]; ok {
		return p, true
	}
	return PersonaUnknown, false
}

// Label returns the Korean form label.
func (p ParentPersona) Label() string {
	switch p {
	case PersonaExam:
		return "입시 중심"
	case PersonaSpeaking:
		return "영어 흥미/스피킹"
	case PersonaCare:
		return "보육/관리"
	case PersonaValue:
		return "가성비"
	}
	return ""
}

func (p *ParentPersona) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: parent persona must be a string", ErrInvalidInput)
	}
	parsed, ok := ParsePersona(s)
	if !ok {
		return fmt.Errorf("%w: unknown parent persona %q", ErrInvalidInput, s)
	}
	*p = parsed
	return nil
}

// OperationInfo holds the staffing flags the diagnosis is based on.
type OperationInfo struct {
	DirectorTeaches bool `json:"is_director_teaching"`
	HasCounselor    bool `json:"has_counselor"`
	HasAdmin        bool `json:"has_admin"`
}

type FacilityInfo struct {
	Classrooms         int  `json:"classrooms" validate:"gte=0"`
	MaxCapacityPerRoom int  `json:"max_capacity_per_room" validate:"gte=0"`
	Shuttles           int  `json:"shuttles" validate:"gte=0"`
	HasLab             bool `json:"has_lab"`
	NativeTeacher      bool `json:"native_teacher"`
	DailySlots         int  `json:"daily_slots" validate:"gte=0"`
}

// StudentCounts is the enrollment per segment. Missing segments are zero.
type StudentCounts struct {
	Kinder   int `json:"kinder" validate:"gte=0"`
	ElemLow  int `json:"elem_low" validate:"gte=0"`
	ElemHigh int `json:"elem_high" validate:"gte=0"`
	Middle   int `json:"middle" validate:"gte=0"`
	High     int `json:"high" validate:"gte=0"`
}

// Total sums all segments.
func (s StudentCounts) Total() int {
	return s.Kinder + s.ElemLow + s.ElemHigh + s.Middle + s.High
}

// TuitionFees are monthly fees in won.
type TuitionFees struct {
	Phonics     int64 `json:"phonics" validate:"gte=0"`
	Elementary  int64 `json:"elementary" validate:"gte=0"`
	Middle      int64 `json:"middle" validate:"gte=0"`
	High        int64 `json:"high" validate:"gte=0"`
	SeparateFee bool  `json:"is_separate_fee"`
}

// AcademyProfile is a snapshot of one academy taken in one input session.
type AcademyProfile struct {
	Name          string        `json:"name,omitempty"`
	Operation     OperationInfo `json:"operation_info"`
	Facility      FacilityInfo  `json:"facility_info"`
	Instructors   int           `json:"instructors" validate:"gte=0"`
	Students      StudentCounts `json:"student_info"`
	Tuition       TuitionFees   `json:"tuition_info"`
	Strength      string        `json:"strength"`
	Weakness      string        `json:"weakness"`
	TargetSegment string        `json:"target_segment"`
	Location      string        `json:"location"`
	FlowPath      string        `json:"flow_path"`
	HotSpots      string        `json:"hot_spots"`
	Persona       ParentPersona `json:"parents_type" validate:"persona"`
}

// PrimarySegment is the target segment when one was chosen, otherwise the
// segment with the most students. Ties keep the order 유치부, 초등부, 중등부, 고등부.
func (p *AcademyProfile) PrimarySegment() string {
	if t := strings.TrimSpace(p.TargetSegment); t != "" {
		return t
	}
	segments := []struct {
		name  string
		count int
	}{
		{"유치부", p.Students.Kinder},
		{"초등부", p.Students.ElemLow + p.Students.ElemHigh},
		{"중등부", p.Students.Middle},
		{"고등부", p.Students.High},
	}
	best := segments[0]
	for _, s := range segments[1:] {
		if s.count > best.count {
			best = s
		}
	}
	return best.name
}

// Competitor is a nearby academy. The first entry is the comparison baseline.
type Competitor struct {
	Name      string `json:"name"`
	Fee       Fee    `json:"fee" validate:"gte=0"`
	Strength  string `json:"strength"`
	Weakness  string `json:"weakness"`
	Marketing string `json:"marketing"`
}

// ProfileRecord is what the record store persists for one input session.
type ProfileRecord struct {
	ID          string         `json:"id"`
	Profile     AcademyProfile `json:"profile"`
	Competitors []Competitor   `json:"competitors" validate:"dive"`
	CreatedAt   time.Time      `json:"created_at"`
}
