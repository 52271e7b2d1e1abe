package report

import (
	"fmt"
	"strings"

	"hagwon_strategy/pkg/core/narrative"
)

var sectionTitles = map[narrative.SectionTag]string{
	narrative.Segmentation: "시장 세분화 (Segmentation)",
	narrative.Targeting:    "핵심 타겟 (Targeting)",
	narrative.Positioning:  "포지셔닝 (Positioning)",
	narrative.SOStrategy:   "핵심 승부수 (SO 전략)",
	narrative.Opportunity:  "기회 포착 & 틈새 공략",
	narrative.Threat:       "위협 대응 & 리스크 관리",
	narrative.Conclusion:   "종합 결론",
}

// SectionTitle is the Korean heading used when printing a section.
func SectionTitle(tag narrative.SectionTag) string {
	if t, ok := sectionTitles[tag]; ok {
		return t
	}
	return string(tag)
}

// Markdown renders the report as one document for export.
func Markdown(r *Report) string {
	var b strings.Builder
	name := r.Profile.Name
	if name == "" {
		name = "우리 학원"
	}
	fmt.Fprintf(&b, "# %s 전략 리포트\n\n", name)
	fmt.Fprintf(&b, "생성일: %s\n\n", r.GeneratedAt.Format("2006-01-02"))

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "> %s\n\n", w)
	}

	b.WriteString("## 핵심 지표\n\n")
	fmt.Fprintf(&b, "- 강의실 가동률: %.1f%% (%s)\n", r.Metrics.UtilizationRate, r.Insights.CapacityStatus)
	fmt.Fprintf(&b, "- 강사 1인당 학생 수: %.1f명\n", r.Metrics.InstructorLoad)
	fmt.Fprintf(&b, "- 가격 포지션: %s\n\n", r.Metrics.PricePosition.Label())

	b.WriteString("## 운영 진단\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", r.Diagnosis.Label)
	fmt.Fprintf(&b, "- 원장 역할: %s. %s\n", r.Diagnosis.Director.Status, r.Diagnosis.Director.Detail)
	fmt.Fprintf(&b, "- 상담 체계: %s. %s\n\n", r.Diagnosis.Counseling.Status, r.Diagnosis.Counseling.Detail)

	for _, s := range r.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", SectionTitle(s.Tag), demote(s.Text))
	}

	b.WriteString("## 마케팅 예산 시뮬레이션\n\n")
	fmt.Fprintf(&b, "- 총 비용: %s\n", narrative.FormatWon(r.Budget.TotalCost))
	fmt.Fprintf(&b, "- 예상 신규 원생: %d명\n", r.Budget.NewStudents)
	fmt.Fprintf(&b, "- 예상 매출: %s\n", narrative.FormatWon(r.Budget.Revenue))
	fmt.Fprintf(&b, "- 예상 순이익: %s원\n", signed(r.Budget.Profit))
	return strings.TrimSpace(b.String()) + "\n"
}

// demote pushes headers inside section bodies below the section heading.
func demote(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		trimmed := strings.TrimLeft(l, " \t")
		if strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "####") {
			lines[i] = "###" + strings.TrimLeft(trimmed, "#")
		}
	}
	return strings.Join(lines, "\n")
}

func signed(v int64) string {
	if v < 0 {
		return "-" + strings.TrimSuffix(narrative.FormatWon(-v), "원")
	}
	if v == 0 {
		return "0"
	}
	return strings.TrimSuffix(narrative.FormatWon(v), "원")
}
