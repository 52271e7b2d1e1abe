package school

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

var eventKeywords = []string{"졸업", "방학", "입학", "소집", "개학", "종업"}

// KeyEvent is a marketing-relevant school event with its D-day.
type KeyEvent struct {
	Name string `json:"name"`
	Date string `json:"date"`
	DDay int    `json:"d_day"`
}

// ExtractKeyEvents keeps events whose name carries one of the season
// keywords, counts days from now (rounded up), keeps the nearest date per
// event name and sorts by D-day. Rows with an unparseable date are skipped.
func ExtractKeyEvents(events []Event, now time.Time) []KeyEvent {
	byName := make(map[string]KeyEvent)
	for _, ev := range events {
		if !hasKeyword(ev.Name) {
			continue
		}
		d, err := time.ParseInLocation("20060102", ev.Date, now.Location())
		if err != nil {
			continue
		}
		k := KeyEvent{
			Name: ev.Name,
			Date: d.Format("2006-01-02"),
			DDay: int(math.Ceil(d.Sub(now).Hours() / 24)),
		}
		if prev, ok := byName[k.Name]; !ok || k.DDay < prev.DDay {
			byName[k.Name] = k
		}
	}

	out := make([]KeyEvent, 0, len(byName))
	for _, k := range byName {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DDay != out[j].DDay {
			return out[i].DDay < out[j].DDay
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func hasKeyword(name string) bool {
	for _, kw := range eventKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// RegionFromAddress shortens a road address to "시도 시군구", keeping the
// district when the second part is a city or county ("경기도 성남시 분당구").
func RegionFromAddress(addr string) string {
	parts := strings.Fields(addr)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	region := parts[0] + " " + parts[1]
	if len(parts) > 2 && (strings.HasSuffix(parts[1], "시") || strings.HasSuffix(parts[1], "군")) {
		region += " " + parts[2]
	}
	return region
}

const crowdedClassSize = 25

// ClassSizeAdvice suggests a marketing angle from the average class size.
// Zero classes yields an empty string.
func ClassSizeAdvice(totalStudents, classes int) string {
	if classes <= 0 || totalStudents < 0 {
		return ""
	}
	if totalStudents/classes > crowdedClassSize {
		return "과밀 학급 경향이 있어, '꼼꼼한 1:1 개별 관리'를 강조하는 마케팅이 학부모님께 강력하게 소구될 수 있습니다."
	}
	return "학생 수가 적절하여, '소수 정예 맞춤형 수업'이나 '친구와 함께하는 짝꿍 이벤트'를 제안하기 좋은 환경입니다."
}

// ActionPlan turns the nearest key event into one concrete marketing step.
func ActionPlan(events []KeyEvent, schoolName string, totalStudents int) string {
	if len(events) == 0 {
		return "이번 달 예정된 주요 학사 일정이 없습니다."
	}
	name := strings.TrimSpace(schoolName)
	if name == "" {
		name = "인근 학교"
	}
	first := events[0].Name
	switch {
	case strings.Contains(first, "졸업"):
		return fmt.Sprintf("졸업 시즌 타겟팅: \"%s 졸업생 %d명을 잡아라!\" 예비중등 문법 특강(3주 완성) 홍보물 배포를 시작하세요.", name, totalStudents/6)
	case strings.Contains(first, "방학"):
		return fmt.Sprintf("방학 특강 홍보: \"다음 학기 성적은 방학에 결정된다!\" %s 방학식 날 학교 앞 배포를 진행하세요.", name)
	}
	return "학기 중 관리: 중간/기말고사 대비 내신 클리닉 프로그램을 문자메시지로 안내하세요."
}
