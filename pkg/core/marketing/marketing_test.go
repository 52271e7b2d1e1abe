package marketing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hagwon_strategy/pkg/core/budget"
	"hagwon_strategy/pkg/core/llm"
	"hagwon_strategy/pkg/core/prompt"
	"hagwon_strategy/pkg/models"
)

type stubGen struct {
	text   string
	err    error
	prompt string
}

func (s *stubGen) Generate(ctx context.Context, p string) (string, error) {
	s.prompt = p
	return s.text, s.err
}

func TestMonthlyPlan(t *testing.T) {
	for m := 1; m <= 12; m++ {
		plan, err := MonthlyPlan(m)
		require.NoError(t, err)
		require.Len(t, plan, 3)
		assert.Equal(t, []string{"설명회", "학교앞", "아파트"}, []string{plan[0].Type, plan[1].Type, plan[2].Type})
		for _, a := range plan {
			assert.NotEmpty(t, a.Desc)
		}
	}
	plan, _ := MonthlyPlan(10)
	assert.Equal(t, "할로윈 사탕/초콜릿 배포 이벤트", plan[1].Desc)

	for _, m := range []int{0, 13, -1} {
		_, err := MonthlyPlan(m)
		assert.True(t, errors.Is(err, models.ErrInvalidInput), "month %d", m)
	}
}

func TestCalendar_ParsesModelOutput(t *testing.T) {
	gen := &stubGen{text: "물론입니다!\n```json\n[\n" +
		`{"type": "블로그/맘카페", "title": "동탄 엄마들이 놀란 파닉스 3개월 변화", "desc": "수강 전후 녹음 비교"},` + "\n" +
		`{"type": "오프라인/현장", "title": "야광 부채 배포", "desc": "OO초 정문 하교 시간"},` + "\n" +
		`{'type': '원내/재원생', 'title': '친구 초대 주간', 'desc': '재원생 추천 시 교재 증정',},` + "\n" +
		`{"type": "extra", "title": "넷째", "desc": "잘림"}` + "\n]\n```"}
	p := NewPlanner(gen, prompt.NewRegistry(), time.Second)

	res, err := p.Calendar(context.Background(), 3, "동탄 신도시", "보육/관리")
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "동탄 엄마들이 놀란 파닉스 3개월 변화", res.Items[0].Title)
	assert.Equal(t, "친구 초대 주간", res.Items[2].Title)
	assert.Contains(t, gen.prompt, "3월")
	assert.Contains(t, gen.prompt, "동탄 신도시")
}

func TestCalendar_FallsBack(t *testing.T) {
	fallback, _ := MonthlyPlan(7)
	cases := map[string]*stubGen{
		"error":    {err: llm.Classify("stub", 500, errors.New("boom"))},
		"prose":    {text: "죄송합니다. 지금은 답변할 수 없습니다."},
		"no-title": {text: `[{"type": "블로그", "desc": "내용만"}]`},
	}
	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := NewPlanner(gen, prompt.NewRegistry(), time.Second).Calendar(context.Background(), 7, "", "")
			require.NoError(t, err)
			assert.True(t, res.Degraded)
			assert.Equal(t, fallback, res.Items)
		})
	}

	res, err := NewPlanner(nil, nil, 0).Calendar(context.Background(), 7, "", "")
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.Equal(t, fallback, res.Items)

	_, err = NewPlanner(nil, nil, 0).Calendar(context.Background(), 0, "", "")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestBudgetFeedback(t *testing.T) {
	plan := budget.DefaultPlan()

	gen := &stubGen{text: "1. 균형 잡힌 예산입니다.\n2. 예상 신규 유입 20명\n3. 유지 권장"}
	fb, err := NewPlanner(gen, prompt.NewRegistry(), time.Second).BudgetFeedback(context.Background(), plan)
	require.NoError(t, err)
	assert.False(t, fb.Degraded)
	assert.Equal(t, gen.text, fb.Text)
	assert.Equal(t, int64(1029000), fb.Result.TotalCost)
	assert.Contains(t, gen.prompt, "4000장")

	fb, err = NewPlanner(&stubGen{err: llm.ErrTimeout}, prompt.NewRegistry(), time.Second).BudgetFeedback(context.Background(), plan)
	require.NoError(t, err)
	assert.True(t, fb.Degraded)
	assert.Equal(t, ReviewBudget(plan, fb.Result), fb.Text)

	plan.GiftCount = -5
	_, err = NewPlanner(nil, nil, 0).BudgetFeedback(context.Background(), plan)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestReviewBudget(t *testing.T) {
	plan := budget.DefaultPlan()
	r, err := budget.Simulate(plan)
	require.NoError(t, err)

	text := ReviewBudget(plan, r)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	// board 330000 of 1029000 is the largest at 32%
	assert.Contains(t, lines[0], "게시판 광고")
	assert.Contains(t, lines[0], "고르게")
	assert.Equal(t, "2. 예상 신규 유입 20명 (손익분기 4명)", lines[1])
	assert.Contains(t, lines[2], "수익 구조는 양호")

	plan.ConversionRate = 0
	plan.FixedBoardCost = 2000000
	r, _ = budget.Simulate(plan)
	text = ReviewBudget(plan, r)
	assert.Contains(t, text, "게시판 광고 비중이")
	assert.Contains(t, text, "게시판 광고 항목을 1,600,000원으로 조정 권장")

	assert.Contains(t, ReviewBudget(models.BudgetPlan{}, models.BudgetResult{}), "비용이 없습니다")
}
