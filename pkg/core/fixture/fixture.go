// Package fixture builds plausible academy inputs for demos, seeding and
// tests. Output depends only on the seed.
package fixture

import (
	"math/rand"

	"hagwon_strategy/pkg/models"
)

var (
	targets   = []string{"초등 저학년", "초등 고학년"}
	locations = []string{"2000세대 아파트 단지 상가 2층", "초등학교 정문 맞은편 법조타운", "주거밀집지역 메인 사거리", "신도시 중심상가 학원가"}
	personas  = []models.ParentPersona{models.PersonaExam, models.PersonaCare, models.PersonaSpeaking}

	competitorNames = []string{"최상위어학원", "리더스영어", "탑클래스학원", "글로벌영수학원"}
	strengths       = []string{"원어민 100% 수업", "철저한 내신 관리", "저렴한 수강료", "차량 운행 노선 많음"}
	weaknesses      = []string{"강사 교체가 잦음", "시설이 노후됨", "피드백이 부족함", "숙제 양이 너무 많음"}
)

const competitorsPerProfile = 2

// Profile draws one academy profile and its competitors from r.
func Profile(r *rand.Rand) models.ProfileRecord {
	p := models.AcademyProfile{
		Operation: models.OperationInfo{
			DirectorTeaches: true,
			HasCounselor:    r.Float64() > 0.5,
			HasAdmin:        true,
		},
		Facility: models.FacilityInfo{
			Classrooms:         5 + r.Intn(5),
			MaxCapacityPerRoom: 10,
			Shuttles:           1 + r.Intn(2),
			HasLab:             true,
			NativeTeacher:      r.Float64() > 0.5,
		},
		Instructors: 3 + r.Intn(4),
		Students: models.StudentCounts{
			ElemLow:  20 + r.Intn(30),
			ElemHigh: 20 + r.Intn(30),
			Middle:   10 + r.Intn(20),
		},
		Tuition: models.TuitionFees{
			Phonics:     250000,
			Elementary:  280000,
			Middle:      350000,
			SeparateFee: true,
		},
		Strength:      "원장 직강으로 꼼꼼한 관리와 매일 학습 피드백 제공",
		Weakness:      "차량 운행 범위가 좁아 인근 아파트 학생만 수용 가능",
		TargetSegment: targets[r.Intn(len(targets))],
		Location:      locations[r.Intn(len(locations))],
		Persona:       personas[r.Intn(len(personas))],
	}

	comps := make([]models.Competitor, 0, competitorsPerProfile)
	for i := 0; i < competitorsPerProfile; i++ {
		comps = append(comps, models.Competitor{
			Name:      competitorNames[r.Intn(len(competitorNames))],
			Fee:       models.Fee((25 + r.Intn(15)) * 10000),
			Strength:  strengths[r.Intn(len(strengths))],
			Weakness:  weaknesses[r.Intn(len(weaknesses))],
			Marketing: "지역 맘카페 홍보",
		})
	}
	return models.ProfileRecord{Profile: p, Competitors: comps}
}

// Generate returns n profiles drawn from seed. Records carry no id or
// timestamp; the store assigns those.
func Generate(seed int64, n int) []models.ProfileRecord {
	if n <= 0 {
		return nil
	}
	r := rand.New(rand.NewSource(seed))
	out := make([]models.ProfileRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Profile(r))
	}
	return out
}
