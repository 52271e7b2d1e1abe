package marketing

import (
	"fmt"

	"hagwon_strategy/pkg/models"
)

// Action is one marketing card.
type Action struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type channel struct {
	kind  string
	title string
}

var channels = []channel{
	{"설명회", "학부모 설명회/간담회"},
	{"학교앞", "학교 앞 아웃리치"},
	{"아파트", "아파트 게시판 광고"},
}

// monthly holds the 설명회, 학교앞 and 아파트 actions in channel order.
var monthly = map[int][3]string{
	1:  {"예비초등 입학 전 최종 설명회 (학교생활 가이드)", "졸업식 시즌 학교 앞 축하 꽃/선물 배포", "신학기 원생 모집 집중 광고 (D-30)"},
	2:  {"새학년 대비 학습법 특강 (학부모 교실)", "신학기 대비 노트/알림장 배포", "3월 개강반 마지막 TO 모집"},
	3:  {"신학기 적응 및 내신 대비 전략 간담회", "새학기 학교 앞 '친구야 반가워' 캠페인", "우리 아이 첫 영어 학원 브랜드 홍보"},
	4:  {"중간고사 대비 분석 및 입시 전략 설명회", "시험 기간 응원 간식 배포 (중등부)", "중간고사 내신 100점 대비반 모집"},
	5:  {"가정의 달 기념 영어 발표회/공개수업", "어린이날 기념 풍선/캐릭터 굿즈 배포", "영어 말하기 대회 수상작 전시 및 홍보"},
	6:  {"여름방학 특강 프리뷰 설명회", "무더위 탈출 부채/얼음물 배포", "여름방학 집중 몰입반 사전 예약"},
	7:  {"여름방학 학습 관리 및 캠프 설명회", "방학식 날 학교 앞 집중 홍보", "여름방학 특강 개강 안내"},
	8:  {"2학기 대비 및 선행 학습 전략 설명회", "개학 맞이 학교 앞 문구 세트 배포", "2학기 성적 향상 및 레벨업 반 모집"},
	9:  {"2학기 내신 및 고입/대입 입시 설명회", "가을 운동회/축제 시즌 학교 앞 지원 사격", "독서의 계절, 영어 원서 읽기 프로그램 홍보"},
	10: {"할로윈 파티 초청 및 오픈 클래스", "할로윈 사탕/초콜릿 배포 이벤트", "할로윈 페스티벌 초대장 게시"},
	11: {"예비학년(초/중/고) 진학 로드맵 설명회", "수능 응원 및 예비중등 홍보물 배포", "겨울방학 윈터스쿨 조기 등록 할인"},
	12: {"겨울방학 설명회 및 크리스마스 이벤트", "겨울방학식 핫팩/간식 배포", "겨울방학 특강 및 새학년 대비반 모집"},
}

// MonthlyPlan returns the three channel actions for month (1-12).
func MonthlyPlan(month int) ([]Action, error) {
	details, ok := monthly[month]
	if !ok {
		return nil, models.NewValidationError(fmt.Errorf("%w: month %d out of range", models.ErrInvalidInput, month),
			models.FieldError{Field: "month", Error: "month must be between 1 and 12"})
	}
	out := make([]Action, 0, len(channels))
	for i, ch := range channels {
		out = append(out, Action{Type: ch.kind, Title: ch.title, Desc: details[i]})
	}
	return out, nil
}
