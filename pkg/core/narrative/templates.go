package narrative

import (
	"bytes"
	"strings"
	"text/template"

	"hagwon_strategy/pkg/core/diagnosis"
	"hagwon_strategy/pkg/core/metrics"
	"hagwon_strategy/pkg/models"
)

// Context is everything a built-in template may read.
type Context struct {
	Profile     *models.AcademyProfile
	Competitors []models.Competitor
	Metrics     metrics.DerivedMetrics
	Diagnosis   *diagnosis.Diagnosis
}

// view is the flattened, defaulted data handed to the templates.
type view struct {
	Target             string
	Persona            string
	Positioning        string
	Location           string
	Strength           string
	Weakness           string
	HasCompetitor      bool
	CompetitorName     string
	CompetitorStrength string
	CompetitorWeakness string
	Utilization        float64
	InstructorLoad     float64
	PriceLabel         string
	Classrooms         int
	Instructors        int
	Saturated          bool
	DiagnosisSummary   string
}

const (
	growthThreshold = 70.0

	fallbackCompetitor = "경쟁 학원"
	fallbackStrength   = "우수한 강사진"
	fallbackWeakness   = "약점 보완 필요"
	fallbackLocation   = "우리 지역"
	fallbackPersona    = "교육"
)

func or(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func buildView(ctx Context) view {
	p := ctx.Profile
	if p == nil {
		p = &models.AcademyProfile{}
	}
	v := view{
		Target:         PrimarySegment(p),
		Persona:        or(p.Persona.Label(), fallbackPersona),
		Positioning:    PositioningStatement(p.Persona),
		Location:       or(p.Location, fallbackLocation),
		Strength:       or(p.Strength, fallbackStrength),
		Weakness:       or(p.Weakness, fallbackWeakness),
		CompetitorName: fallbackCompetitor,
		Utilization:    ctx.Metrics.UtilizationRate,
		InstructorLoad: ctx.Metrics.InstructorLoad,
		PriceLabel:     ctx.Metrics.PricePosition.Label(),
		Classrooms:     p.Facility.Classrooms,
		Instructors:    p.Instructors,
		Saturated:      ctx.Metrics.UtilizationRate > growthThreshold,
	}
	if len(ctx.Competitors) > 0 {
		c := ctx.Competitors[0]
		v.HasCompetitor = true
		v.CompetitorName = or(c.Name, fallbackCompetitor)
		v.CompetitorStrength = strings.TrimSpace(c.Strength)
		v.CompetitorWeakness = strings.TrimSpace(c.Weakness)
	}
	if ctx.Diagnosis != nil {
		v.DiagnosisSummary = ctx.Diagnosis.Summary
	}
	return v
}

// PrimarySegment is the segment the report speaks to. A nil profile reads
// as 초등부.
func PrimarySegment(p *models.AcademyProfile) string {
	if p == nil {
		return "초등부"
	}
	return p.PrimarySegment()
}

// PositioningStatement is the brand line for a parent persona.
func PositioningStatement(p models.ParentPersona) string {
	switch p {
	case models.PersonaExam:
		return "프리미엄 심화/성적 관리 전문 학원"
	case models.PersonaCare:
		return "엄마의 마음으로 케어하는 1:1 관리형 학원"
	case models.PersonaSpeaking:
		return "즐겁게 말하며 배우는 실용 영어 전문"
	case models.PersonaValue:
		return "합리적인 비용으로 최대 효율을 내는 실속형 학원"
	}
	return "지역 내 독보적인 1등 영어 학원"
}

var builtins = map[SectionTag]string{
	Segmentation: `원장님께서 핵심 전략 타겟으로 설정하신 '{{.Target}}' 시장은 현재 우리 지역에서 가장 성장 잠재력이 높고, 학원 확장성(Scalability)이 뛰어난 세그먼트입니다.

백화점식 나열보다는, 모든 커리큘럼과 마케팅 메시지를 오직 '{{.Target}}' 학부모와 학생의 니즈(Needs)에 100% 맞추는 '핀셋 전략'을 통해 지역 내 해당 분야 1등 이미지를 선점해야 합니다.
{{- if .CompetitorWeakness}}

{{.CompetitorName}}이(가) '{{.CompetitorWeakness}}' 부분에서 빈틈을 보이고 있어, 지금이 '{{.Target}}' 시장에 깃발을 꽂을 시점입니다.
{{- end}}`,

	Targeting: `우리가 최우선으로 공략해야 할 핵심 타겟(Core Target)은 '{{.Target}} 자녀를 둔, {{.Persona}} 성향의 학부모'입니다.

이 타겟층은 단순한 성적 향상 그 이상을 원합니다. 우리 학원의 체계적인 관리 시스템과 '{{.Strength}}' 강점을 온/오프라인 채널을 통해 지속적으로 노출해야 합니다. 특히 기존 재원생 학부모를 통한 '구전 마케팅(WOM)'이 가장 효과적인 타겟이므로, 소개 이벤트 프로모션을 적극 활용하십시오.`,

	Positioning: `경쟁이 치열한 이 지역 학원가에서, '{{.Target}}' 학부모님들의 뇌리에 우리 학원을 다음과 같이 확실하게 포지셔닝(Positioning) 해야 합니다.

"{{.Positioning}}"
{{- if .CompetitorStrength}}

{{.CompetitorName}}의 '{{.CompetitorStrength}}'와 정면으로 부딪히기보다, 우리만의 '{{.Strength}}'을(를) 브랜드의 중심에 두십시오.
{{- end}}`,

	SOStrategy: `현재 원장님 학원의 가장 큰 자산인 '{{.Strength}}' 경쟁력을 최대한 활용해야 합니다. 경쟁사들이 흉내 낼 수 없는 우리만의 디테일한 관리 시스템과 커리큘럼을 학부모 설명회나 상담 시 시각 자료로 준비하여, '{{.Target}}' 학부모가 "여기는 확실히 다르다"는 것을 즉각적으로 느낄 수 있게 하십시오.`,

	Opportunity: `{{if .CompetitorWeakness -}}
현재 지역 내 경쟁 학원인 {{.CompetitorName}}이(가) '{{.CompetitorWeakness}}' 부분에서 취약점을 보이고 있습니다. 이는 우리에게 절호의 기회입니다. 경쟁사의 해당 약점에 불만을 가진 '{{.Target}}' 학부모들에게 우리의 강점이 확실한 해결책(Solution)이 될 수 있음을 강조하는 '비교 우위 마케팅'을 전개하십시오.
{{- else -}}
경쟁사의 약점 정보가 아직 없습니다. '{{.Target}}' 학부모 상담에서 기존 학원에 대한 불만을 체계적으로 수집하면, 그 자체가 우리만의 시장 기회 지도가 됩니다.
{{- end}}`,

	Threat: `{{if .CompetitorStrength -}}
{{.CompetitorName}}의 '{{.CompetitorStrength}}' 강점은 경계해야 할 요소입니다. 우리도 이에 대응할 수 있는 방어 논리를 개발하거나, 경쟁사가 따라올 수 없는 차별화된 감성 마케팅(학생 케어, 동기부여 등)으로 전장을 옮기는 지혜가 필요합니다. '{{.Target}}' 학부모가 두 학원을 비교할 때 쓸 상담 답변을 미리 준비하십시오.
{{- else -}}
뚜렷한 경쟁사 강점 정보는 없지만 경쟁 심화는 언제든 찾아옵니다. '{{.Target}}' 재원생 만족도를 정기적으로 점검하여 이탈을 막는 것이 최선의 방어입니다.
{{- end}}`,

	Conclusion: `원장님, 우리 학원은 {{.Persona}} 성향의 학부모가 많은 {{.Location}} 상권에 위치해 있습니다.
{{- if .HasCompetitor}} 현재 경쟁사인 {{.CompetitorName}}{{if .CompetitorStrength}}은(는) "{{.CompetitorStrength}}"를 강점으로 내세우고 있지만{{else}}이(가) 있지만{{end}}{{if .CompetitorWeakness}}, 동시에 "{{.CompetitorWeakness}}"라는 결정적인 약점을 가지고 있습니다{{else}}, 아직 약점이 드러나지 않았습니다{{end}}.{{end}}

우리는 "{{.Strength}}"라는 강력한 무기로 '{{.Target}}' 시장의 빈틈을 파고들어야 합니다. 특히 1분기/새학기(1~3월)에는 신규 유입이 가장 많은 시기이므로, 월별 마케팅 액션플랜을 즉시 실행에 옮기시기 바랍니다.

현재 자원 현황을 볼 때 (강의실 수 {{.Classrooms}}개, 강사 {{.Instructors}}명, 가동률 {{printf "%.1f" .Utilization}}%),
{{- if .Saturated}} 하드웨어적 자원이 포화 상태에 가까워지고 있습니다. 이제는 양적 성장보다 '수익성 위주'의 질적 성장을 도모할 때입니다.
{{- else}} 아직 성장 잠재력이 충분합니다. 운영 효율을 극대화하기 위해 공격적인 원생 모집에 모든 역량을 집중하십시오.
{{- end}}
{{- if .DiagnosisSummary}}

{{.DiagnosisSummary}}
{{- end}}`,
}

const genericTemplate = `'{{.Target}}' 시장을 중심으로 우리 학원의 강점인 '{{.Strength}}'을(를) 일관되게 알리십시오.`

var (
	templates = compile()
	generic   = template.Must(template.New("generic").Parse(genericTemplate))
)

func compile() map[SectionTag]*template.Template {
	out := make(map[SectionTag]*template.Template, len(builtins))
	for tag, body := range builtins {
		out[tag] = template.Must(template.New(string(tag)).Option("missingkey=error").Parse(body))
	}
	return out
}

// RenderTemplate fills the built-in template for tag. The output is
// deterministic for a given context and never empty.
func RenderTemplate(tag SectionTag, ctx Context) string {
	v := buildView(ctx)
	tmpl, ok := templates[tag]
	if !ok {
		tmpl = generic
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil || strings.TrimSpace(buf.String()) == "" {
		buf.Reset()
		_ = generic.Execute(&buf, v)
	}
	return strings.TrimSpace(buf.String())
}
