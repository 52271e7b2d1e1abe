package prompt

func builtins() []*PromptTemplate {
	return []*PromptTemplate{
		{
			ID:           PromptIDs.ReportSections,
			Name:         "학원 전략 리포트 본문",
			Category:     "report",
			Description:  "STP, SWOT, 총평 섹션을 한 번에 생성",
			SystemPrompt: "Role: 지역 학원을 살려낸 것으로 유명한 교육 경영 컨설턴트. 추상적인 조언 대신 구체적인 실행 항목을 제시하십시오.",
			Version:      "1",
			Variables: []PromptVariable{
				{Name: "Target", Type: "string", Required: true},
				{Name: "Persona", Type: "string"},
				{Name: "Location", Type: "string"},
				{Name: "Strength", Type: "string"},
				{Name: "Weakness", Type: "string"},
				{Name: "Competitors", Type: "array"},
				{Name: "Utilization", Type: "float"},
				{Name: "InstructorLoad", Type: "float"},
				{Name: "PriceLabel", Type: "string"},
				{Name: "Diagnosis", Type: "string"},
				{Name: "Tags", Type: "array", Required: true},
			},
			UserPromptTmpl: `Task: 고객 학원과 경쟁사를 분석하여 "이기는 전략" 리포트를 작성하십시오.

[학원 정보]
- 핵심 타겟: {{.Target}}
- 학부모 성향: {{default "미지정" .Persona}}
- 입지: {{default "미지정" .Location}}
- 강점: {{default "미지정" .Strength}}
- 약점: {{default "미지정" .Weakness}}

[경쟁사]
{{- range .Competitors}}
- {{.Name}}: 강점({{.Strength}}), 약점({{.Weakness}}), 수강료({{.Fee}})
{{- else}}
- 없음
{{- end}}

[정량 지표]
- 강의실 가동률: {{printf "%.1f" .Utilization}}% (기준: 80~120%)
- 강사 1인당 학생 수: {{printf "%.1f" .InstructorLoad}}명 (기준: 10~15)
- 가격 포지션: {{.PriceLabel}}
- 운영 진단: {{.Diagnosis}}

Output Requirements:
- 언어: 한국어, 정중한 '하십시오'체.
- 숫자를 반복하지 말고 그 의미를 해석하십시오.
- 아래 헤더를 정확히 이 순서로, 각각 한 번씩 사용하십시오. 헤더 외의 제목은 ####로 쓰십시오.
{{range .Tags}}
### {{.}}
{{- end}}

작성 지침:
- SEGMENTATION: 경쟁사의 약점에서 시장의 틈새를 찾으십시오.
- TARGETING: 선택한 타겟이 강점과 맞는지 검증하고, 맞지 않으면 더 나은 타겟을 제안하십시오.
- POSITIONING: "[타겟]에게 우리 학원은 [경쟁사]와 달리 [혜택]을 주는 [카테고리]다" 공식으로 슬로건을 만드십시오.
- SO_STRATEGY: 구체적인 프로그램 이름을 포함한 실행 전략 2개.
- OPPORTUNITY: 경쟁사 약점을 공략하는 마케팅 메시지 또는 커리큘럼 조정 2개.
- THREAT: 학부모가 경쟁사와 비교할 때 쓸 상담 멘트.
- CONCLUSION: 경영 효율성 진단과 이번 달 3대 우선순위.`,
		},
		{
			ID:           PromptIDs.MarketingCalendar,
			Name:         "월간 마케팅 캘린더",
			Category:     "marketing",
			Description:  "월/입지/학부모 성향에 맞춘 마케팅 실행안 3개",
			SystemPrompt: "Role: 창의적인 마케팅 디렉터. JSON만 반환하십시오.",
			Version:      "1",
			Variables: []PromptVariable{
				{Name: "Month", Type: "int", Required: true},
				{Name: "Location", Type: "string"},
				{Name: "Persona", Type: "string"},
			},
			UserPromptTmpl: `Task: 영어 학원의 월간 마케팅 캘린더를 작성하십시오.
Context: {{.Month}}월 / 입지: {{default "미지정" .Location}} / 학부모 성향: {{default "미지정" .Persona}}

Output Requirements:
- 형식: JSON 배열만 출력. 정확히 3개 항목. 한국어.
- "온라인 마케팅", "학교 앞 홍보" 같은 일반론 금지.
- 블로그 제목은 클릭을 부르는 구체적인 제목, 오프라인 활동은 구체적인 물품과 장소.

JSON Structure:
[
  {"type": "블로그/맘카페", "title": "[구체적인 제목]", "desc": "[작성할 내용]"},
  {"type": "오프라인/현장", "title": "[행사 이름]", "desc": "[실행 항목과 장소]"},
  {"type": "원내/재원생", "title": "[행사 이름]", "desc": "[재원생 대상 활동]"}
]`,
		},
		{
			ID:           PromptIDs.BudgetFeedback,
			Name:         "마케팅 예산 피드백",
			Category:     "budget",
			Description:  "월간 예산 배분 검토와 ROI 예측",
			SystemPrompt: "Role: 소상공인 재무 자문가. 간결하고 분석적으로 답하십시오.",
			Version:      "1",
			Variables: []PromptVariable{
				{Name: "FlyerCount", Type: "int"},
				{Name: "StaffCount", Type: "int"},
				{Name: "HoursPerStaff", Type: "int"},
				{Name: "BoardCost", Type: "int"},
				{Name: "GiftCount", Type: "int"},
				{Name: "TuitionFee", Type: "int"},
				{Name: "TotalCost", Type: "int"},
				{Name: "NewStudents", Type: "int"},
				{Name: "Profit", Type: "int"},
			},
			UserPromptTmpl: `Task: 월간 마케팅 예산 배분을 검토하고 ROI를 예측하십시오.

[예산안]
- 전단지: {{.FlyerCount}}장
- 인력: {{.StaffCount}}명 × {{.HoursPerStaff}}시간
- 아파트 게시판: {{.BoardCost}}원
- 판촉물: {{.GiftCount}}개
- 수강료: {{.TuitionFee}}원
- 총 비용: {{.TotalCost}}원 / 예상 신규 {{.NewStudents}}명 / 예상 순이익 {{.Profit}}원

Output Requirements (Markdown, 한국어, 세 줄):
1. 예산 균형 한 줄 요약 (오프라인 비중이 과한가?)
2. ROI 예측 한 줄 (예: "예상 신규 유입 X명")
3. 실행 팁 한 줄 (예: "Y 항목을 Z원으로 조정 권장")`,
		},
	}
}
