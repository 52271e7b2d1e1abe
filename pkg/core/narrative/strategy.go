package narrative

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hagwon_strategy/pkg/core/metrics"
	"hagwon_strategy/pkg/models"
)

var won = message.NewPrinter(language.Korean)

// FormatWon renders 320000 as "320,000원". Zero means the fee is unknown.
func FormatWon(amount int64) string {
	if amount <= 0 {
		return "정보 없음"
	}
	return won.Sprintf("%d원", amount)
}

// SWOT lists the raw factors behind the SO/opportunity/threat prose.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// BuildSWOT takes S/W from the academy and O/T from every competitor's
// weakness and strength.
func BuildSWOT(p *models.AcademyProfile, competitors []models.Competitor) SWOT {
	s := SWOT{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		Threats:       []string{},
	}
	if p != nil {
		if v := strings.TrimSpace(p.Strength); v != "" {
			s.Strengths = append(s.Strengths, v)
		}
		if v := strings.TrimSpace(p.Weakness); v != "" {
			s.Weaknesses = append(s.Weaknesses, v)
		}
	}
	for _, c := range competitors {
		name := or(c.Name, fallbackCompetitor)
		if w := strings.TrimSpace(c.Weakness); w != "" {
			s.Opportunities = append(s.Opportunities, fmt.Sprintf("%s의 약점(%s) 공략", name, w))
		}
		if st := strings.TrimSpace(c.Strength); st != "" {
			s.Threats = append(s.Threats, fmt.Sprintf("%s의 강점(%s) 견제 필요", name, st))
		}
	}
	return s
}

// MarketingMix is the 4P prose.
type MarketingMix struct {
	Product   string `json:"product"`
	Price     string `json:"price"`
	Place     string `json:"place"`
	Promotion string `json:"promotion"`
}

func BuildMarketingMix(p *models.AcademyProfile) MarketingMix {
	if p == nil {
		p = &models.AcademyProfile{}
	}
	target := PrimarySegment(p)

	program := "체계적인 커리큘럼"
	if p.Facility.HasLab {
		program = "어학 실습실(Lab) 기반의 매일 훈련 시스템"
	}
	signature := "관리형 시스템"
	if p.Facility.NativeTeacher {
		signature = "원어민 강사"
	}
	product := fmt.Sprintf("우리 학원의 핵심 상품 경쟁력은 바로 '%s' 전문 '%s'입니다. 단순히 영어를 가르치는 것을 넘어, '%s' 아이들의 눈높이에 맞춘 성장 과정을 시각화하여 학부모에게 정기적으로 공유하는 '성장 리포트 시스템'을 강력하게 어필해야 합니다.\n또한 %s 등 우리 학원만의 차별화된 요소를 '시그니처 프로그램'으로 브랜드화하여 홍보하십시오.",
		target, program, target, signature)

	feeNote := " 수업료 외 추가 비용이 없는 'All-in-One' 수강료 정책을 통해, 학부모의 경제적 심리 부담을 덜어주는 '가성비 마케팅'을 전개하십시오."
	if p.Tuition.SeparateFee {
		feeNote = " 다만, 교재비 등이 별도로 청구될 때 학부모가 예상치 못한 지출로 느끼지 않도록 상담 시 전체 비용 구조를 투명하게 안내하고, 그 비용이 아깝지 않을 만큼의 양질의 교재임을 강조해야 합니다."
	}
	price := fmt.Sprintf("%s 프로그램의 수강료 %s은 제공되는 교육 서비스의 가치와 비교했을 때 합리적인 투자가 될 것입니다.%s\n가격 할인은 신중해야 하지만, '장기 등록 혜택'이나 '형제 동시 등록 할인'과 같은 명분 있는 혜택은 적극적으로 활용하십시오.",
		target, FormatWon(p.Tuition.Elementary), feeNote)

	var shuttle string
	if p.Facility.Shuttles > 0 {
		shuttle = fmt.Sprintf(" 현재 운행 중인 셔틀버스 %d대를 단순한 운송 수단이 아닌, %s 학생들이 등하원하는 모든 경로를 '움직이는 빌보드 광고판'으로 활용하십시오.", p.Facility.Shuttles, target)
	} else {
		shuttle = fmt.Sprintf(" 셔틀버스를 운행하지 않는다면, 오히려 '%s 아이들이 도보로 안전하게 다닐 수 있는 가까운 학원'이라는 점을 역설적으로 강조하십시오.", target)
	}
	place := fmt.Sprintf("%s은(는) 교육 수요가 꾸준한 지역이지만, 경쟁 학원과의 물리적 거리가 가까워 치열한 경쟁이 예상됩니다.%s",
		or(p.Location, fallbackLocation), shuttle)

	promotion := fmt.Sprintf("오프라인에서는 %s 학생과 학부모의 주 이동 동선인 %s 등을 장악하는 현수막/배너 광고를 집행하여 학원의 존재감을 각인시켜야 합니다. 특히 %s에서 %s 타겟에 맞춘 홍보 물품 배포나 설문 조사 이벤트를 진행하여 접점을 늘리십시오.\n온라인에서는 '%s' 성향을 가진 %s 맘(Mom)들이 주로 검색하는 지역 커뮤니티나 키워드를 선점하여, 우리 학원의 교육 철학과 성공 사례(후기)를 지속적으로 노출해야 합니다.",
		target, or(p.FlowPath, "등하교 동선"), or(p.HotSpots, "학교 앞과 단지 상가"), target,
		or(p.Persona.Label(), fallbackPersona), target)

	return MarketingMix{Product: product, Price: price, Place: place, Promotion: promotion}
}

// CompetitorRow is one card of the 3C comparison.
type CompetitorRow struct {
	Label    string `json:"label"`
	Name     string `json:"name"`
	Strength string `json:"strength"`
	Weakness string `json:"weakness"`
	Fee      string `json:"fee"`
	Own      bool   `json:"own"`
}

// BuildThreeC lists the competitors (A, B, ...) followed by the academy.
// Competitor fees are shown after unit normalization.
func BuildThreeC(p *models.AcademyProfile, competitors []models.Competitor) []CompetitorRow {
	rows := make([]CompetitorRow, 0, len(competitors)+1)
	for i, c := range competitors {
		rows = append(rows, CompetitorRow{
			Label:    string(rune('A' + i%26)),
			Name:     or(c.Name, fallbackCompetitor),
			Strength: or(c.Strength, "정보 없음"),
			Weakness: or(c.Weakness, "정보 없음"),
			Fee:      FormatWon(metrics.NormalizeFee(int64(c.Fee))),
		})
	}
	own := CompetitorRow{Label: "ME", Name: "우리 학원", Strength: "정보 없음", Weakness: "정보 없음", Fee: FormatWon(0), Own: true}
	if p != nil {
		own.Name = or(p.Name, "우리 학원")
		own.Strength = or(p.Strength, "정보 없음")
		own.Weakness = or(p.Weakness, "정보 없음")
		own.Fee = FormatWon(p.Tuition.Elementary)
	}
	return append(rows, own)
}

// Insights are the short deterministic call-outs next to the narrative.
type Insights struct {
	CapacityStatus string `json:"capacity_status"`
	CapacityAdvice string `json:"capacity_advice"`
	PriceAdvice    string `json:"price_advice"`
	LocationAdvice string `json:"location_advice"`
}

const saturationThreshold = 80.0

func BuildInsights(p *models.AcademyProfile, competitors []models.Competitor, m metrics.DerivedMetrics) Insights {
	in := Insights{
		CapacityStatus: "여유",
		CapacityAdvice: "강의실 가동률이 여유롭습니다. 공격적인 신규 모집이 필요합니다.",
	}
	if m.UtilizationRate > saturationThreshold {
		in.CapacityStatus = "포화 임박"
		in.CapacityAdvice = "강의실 가동률이 높습니다. 대기자 명단을 운영하거나 분반 확장, 혹은 수강료 인상을 통한 수익성 강화를 고려할 시점입니다."
	}

	name := fallbackCompetitor
	if len(competitors) > 0 {
		name = or(competitors[0].Name, fallbackCompetitor)
	}
	if m.PricePosition == metrics.PricePremium {
		in.PriceAdvice = fmt.Sprintf("경쟁사(%s) 대비 %s 포지션입니다. 높은 수강료에 대한 심리적 저항을 줄이기 위해 '개별 맞춤 관리 리포트'와 '프리미엄 시설'을 강조하십시오.", name, m.PricePosition.Label())
	} else {
		in.PriceAdvice = fmt.Sprintf("경쟁사(%s) 대비 %s 포지션입니다. 합리적인 가격경쟁력을 활용하되, '싼 게 비지떡'이라는 인식을 주지 않도록 '가성비 최고의 아웃풋'을 강조하십시오.", name, m.PricePosition.Label())
	}

	location := fallbackLocation
	persona := models.PersonaUnknown
	if p != nil {
		location = or(p.Location, fallbackLocation)
		persona = p.Persona
	}
	if persona == models.PersonaExam {
		in.LocationAdvice = fmt.Sprintf("%s의 입지 특성을 고려했을 때, 학구열이 높은 학부모를 타겟으로 '차량 운행 범위 확대'보다 '학원 내 면학 분위기 조성'에 집중하십시오.", location)
	} else {
		in.LocationAdvice = fmt.Sprintf("%s의 입지 특성을 고려했을 때, 접근성을 강조하며 '안전한 등하원'과 '학교 앞 픽업 서비스'를 적극 홍보하십시오.", location)
	}
	return in
}
