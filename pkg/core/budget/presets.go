package budget

import (
	"fmt"

	"hagwon_strategy/pkg/models"
)

// Season groups months with the same promotion intensity.
type Season string

const (
	SeasonPeak   Season = "peak"   // new semester: Dec to Mar
	SeasonEvent  Season = "event"  // family month, halloween
	SeasonNormal Season = "normal" // exam prep and vacations
)

// Preset overrides the volume levers of a plan. Unit prices, wage,
// conversion rate and tuition are left to the user.
type Preset struct {
	Season         Season `json:"season"`
	FlyerCount     int64  `json:"flyer_count"`
	StaffCount     int64  `json:"staff_count"`
	HoursPerStaff  int64  `json:"hours_per_staff"`
	FixedBoardCost int64  `json:"fixed_board_cost"`
	GiftCount      int64  `json:"gift_count"`
	MiscCost       int64  `json:"misc_cost"`
}

var presets = map[Season]Preset{
	SeasonPeak:   {Season: SeasonPeak, FlyerCount: 5000, StaffCount: 4, HoursPerStaff: 4, FixedBoardCost: 440000, GiftCount: 50, MiscCost: 100000},
	SeasonEvent:  {Season: SeasonEvent, FlyerCount: 2000, StaffCount: 2, HoursPerStaff: 3, FixedBoardCost: 220000, GiftCount: 200, MiscCost: 300000},
	SeasonNormal: {Season: SeasonNormal, FlyerCount: 1000, StaffCount: 1, HoursPerStaff: 2, FixedBoardCost: 150000, GiftCount: 30, MiscCost: 50000},
}

// CostLabels names the four cost categories for a given month.
type CostLabels struct {
	Flyer    string `json:"flyer"`
	Manpower string `json:"manpower"`
	Board    string `json:"board"`
	Gift     string `json:"gift"`
}

var costLabels = map[int]CostLabels{
	1:  {"신입생 전단지", "학교 앞/아파트 홍보 인력", "아파트 게시판 광고", "입학 축하 선물"},
	2:  {"신학기 브로셔", "홍보 도우미", "마지막 TO 모집 공고", "노트/알림장 세트"},
	3:  {"친구초청 티켓", "등하교 안내 스탭", "브랜드 홍보 포스터", "웰컴 굿즈 (가방 등)"},
	4:  {"내신대비 홍보물", "시험 응원단", "내신대비반 모집 공고", "시험대비 간식/문구"},
	5:  {"발표회 초대장", "행사 진행 요원", "영어 발표회 홍보", "어린이날/행사 기념품"},
	6:  {"여름방학 안내문", "학교 홍보 스탭", "특강 프로그램 안내", "부채/얼음물"},
	7:  {"썸머캠프 브로셔", "캠프 인솔/홍보", "방학 특강 게시", "캠프 티셔츠/굿즈"},
	8:  {"2학기 커리큘럼 안내", "개학 맞이 홍보", "2학기 원생 모집", "2학기 학용품 세트"},
	9:  {"설명회 초청장", "설명회 안내 스탭", "설명회 홍보 포스터", "설명회 참석 답례품"},
	10: {"할로윈 초대장", "파티 진행 스탭", "할로윈 페스티벌 홍보", "사탕/초콜릿 패키지"},
	11: {"예비학년 모집요강", "수능 응원단", "윈터스쿨 조기 모집", "수능 응원 간식"},
	12: {"겨울방학 안내문", "방학식 홍보 스탭", "새학년 준비반 모집", "핫팩/크리스마스 선물"},
}

// DefaultPlan is the starting point of the simulator.
func DefaultPlan() models.BudgetPlan {
	return models.BudgetPlan{
		Name:           "default",
		FlyerCount:     4000,
		CostPerFlyer:   80,
		StaffCount:     2,
		HoursPerStaff:  4,
		HourlyWage:     13000,
		FixedBoardCost: 330000,
		GiftUnitCost:   3500,
		GiftCount:      50,
		MiscCost:       100000,
		ConversionRate: 0.5,
		TuitionFee:     280000,
	}
}

func checkMonth(month int) error {
	if month < 1 || month > 12 {
		return models.NewValidationError(nil, models.FieldError{Field: "month", Error: fmt.Sprintf("must be 1-12, got %d", month)})
	}
	return nil
}

// SeasonOf maps a month to its promotion season.
func SeasonOf(month int) (Season, error) {
	if err := checkMonth(month); err != nil {
		return "", err
	}
	switch month {
	case 12, 1, 2, 3:
		return SeasonPeak, nil
	case 5, 10:
		return SeasonEvent, nil
	}
	return SeasonNormal, nil
}

func PresetForMonth(month int) (Preset, error) {
	s, err := SeasonOf(month)
	if err != nil {
		return Preset{}, err
	}
	return presets[s], nil
}

// ApplyPreset returns a copy of plan with the month's volume levers.
func ApplyPreset(plan models.BudgetPlan, month int) (models.BudgetPlan, error) {
	p, err := PresetForMonth(month)
	if err != nil {
		return plan, err
	}
	plan.Name = fmt.Sprintf("%d월 %s", month, p.Season)
	plan.FlyerCount = p.FlyerCount
	plan.StaffCount = p.StaffCount
	plan.HoursPerStaff = p.HoursPerStaff
	plan.FixedBoardCost = p.FixedBoardCost
	plan.GiftCount = p.GiftCount
	plan.MiscCost = p.MiscCost
	return plan, nil
}

func LabelsForMonth(month int) (CostLabels, error) {
	if err := checkMonth(month); err != nil {
		return CostLabels{}, err
	}
	return costLabels[month], nil
}
