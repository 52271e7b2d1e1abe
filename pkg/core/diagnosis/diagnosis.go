package diagnosis

import (
	"fmt"
	"strings"

	"hagwon_strategy/pkg/models"
)

// Operational is the management-structure verdict.
type Operational string

const (
	ManagementIdeal          Operational = "management_centered_ideal"
	RoleOverload             Operational = "role_overload_risky"
	TeachingHeavySupported   Operational = "teaching_heavy_supported"
	ManagementUnderSupported Operational = "management_centered_under_supported"
)

// Tone sets how hard the rest of the report pushes.
type Tone string

const (
	ToneEncouraging Tone = "encouraging"
	ToneUrgent      Tone = "urgent"
	ToneBalanced    Tone = "balanced"
)

// Finding is one diagnosis card.
type Finding struct {
	Status  string `json:"status"`
	Detail  string `json:"detail"`
	Action  string `json:"action,omitempty"`
	Warning bool   `json:"warning"`
}

// Diagnosis is the result of the staffing rules.
type Diagnosis struct {
	Operational Operational `json:"operational"`
	Label       string      `json:"label"`
	Director    Finding     `json:"director"`
	Counseling  Finding     `json:"counseling"`
	Tone        Tone        `json:"tone"`
	Summary     string      `json:"summary"`
}

type flags struct {
	directorTeaches bool
	hasCounselor    bool
}

type row struct {
	operational Operational
	label       string
	tone        Tone
	summary     string
}

const (
	summaryIdeal    = "이상적인 경영 시스템을 갖추고 계십니다. 이제 원장님이 설정하신 '%s' 시장 점유율 확장에 집중하십시오."
	summaryRisky    = "현재 구조로는 '%s' 시장을 공략하기 어렵습니다. 시스템형 학원으로 전환하여 원장님의 전략 구상 시간을 확보하세요."
	summaryBalanced = "기반은 갖춰져 있습니다. '%s' 맞춤형 마케팅을 강화하여 지역 1등 학원으로 도약하십시오."

	defaultTarget = "핵심 타겟"
)

// table covers all four flag combinations.
var table = map[flags]row{
	{directorTeaches: false, hasCounselor: true}: {
		operational: ManagementIdeal,
		label:       "경영 중심 체제 (이상적)",
		tone:        ToneEncouraging,
		summary:     summaryIdeal,
	},
	{directorTeaches: true, hasCounselor: false}: {
		operational: RoleOverload,
		label:       "역할 과부하 (위험)",
		tone:        ToneUrgent,
		summary:     summaryRisky,
	},
	{directorTeaches: true, hasCounselor: true}: {
		operational: TeachingHeavySupported,
		label:       "수업 비중 높음, 상담 지원 확보",
		tone:        ToneBalanced,
		summary:     summaryBalanced,
	},
	{directorTeaches: false, hasCounselor: false}: {
		operational: ManagementUnderSupported,
		label:       "경영 중심이나 상담 지원 부족",
		tone:        ToneBalanced,
		summary:     summaryBalanced,
	},
}

var (
	directorTeaching = Finding{
		Status:  "수업 비중 과다",
		Detail:  "현재 원장님이 직접 수업을 진행하고 계십니다. 수업 준비와 강의로 인해 경영 전략 수립과 학부모 상담에 소홀해질 위험이 있습니다.",
		Action:  "파트타임 강사 고용 후 경영 시간 확보 필요",
		Warning: true,
	}
	directorManaging = Finding{
		Status: "경영 중심 체제",
		Detail: "수업을 위임하고 경영에 집중하고 계십니다. 현재 구조를 유지하며 마케팅과 외부 제휴를 확장할 최적의 타이밍입니다.",
	}
	counselorMissing = Finding{
		Status:  "상담 인력 부재",
		Detail:  "전담 상담 직원이 없어, 신규 문의 대응이나 재원생 관리가 원장님의 스케줄에 의존적입니다.",
		Action:  "상담 실장 채용 또는 상담 매뉴얼화 시급",
		Warning: true,
	}
	counselorPresent = Finding{
		Status: "상담 체계 안정",
		Detail: "전담 인력을 통해 체계적인 상담이 가능합니다. 상담 성공률(등록률)을 데이터화하여 분석해보세요.",
	}
)

// Diagnose reads the staffing flags of profile. The summary names the
// primary segment, the same target the narrative sections use.
func Diagnose(profile *models.AcademyProfile) (Diagnosis, error) {
	if profile == nil {
		return Diagnosis{}, fmt.Errorf("%w: academy profile is required", models.ErrInvalidInput)
	}
	return Evaluate(profile.Operation.DirectorTeaches, profile.Operation.HasCounselor, profile.PrimarySegment()), nil
}

// Evaluate is the pure decision table. An empty target reads as "핵심 타겟".
func Evaluate(directorTeaches, hasCounselor bool, target string) Diagnosis {
	r := table[flags{directorTeaches: directorTeaches, hasCounselor: hasCounselor}]

	target = strings.TrimSpace(target)
	if target == "" {
		target = defaultTarget
	}

	d := Diagnosis{
		Operational: r.operational,
		Label:       r.label,
		Director:    directorManaging,
		Counseling:  counselorPresent,
		Tone:        r.tone,
		Summary:     fmt.Sprintf(r.summary, target),
	}
	if directorTeaches {
		d.Director = directorTeaching
	}
	if !hasCounselor {
		d.Counseling = counselorMissing
	}
	return d
}
