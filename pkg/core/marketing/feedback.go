package marketing

import (
	"context"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"hagwon_strategy/pkg/core/budget"
	"hagwon_strategy/pkg/core/narrative"
	"hagwon_strategy/pkg/core/prompt"
	"hagwon_strategy/pkg/models"
)

// Feedback is a three-line review of a budget plan.
type Feedback struct {
	Text     string              `json:"text"`
	Result   models.BudgetResult `json:"result"`
	Degraded bool                `json:"degraded"`
}

// BudgetFeedback simulates plan and asks the text service to review it.
// The deterministic review is used when the service is absent or fails.
func (p *Planner) BudgetFeedback(ctx context.Context, plan models.BudgetPlan) (Feedback, error) {
	result, err := budget.Simulate(plan)
	if err != nil {
		return Feedback{}, err
	}
	if p.gen == nil {
		return Feedback{Text: ReviewBudget(plan, result), Result: result}, nil
	}

	vars := prompt.NewContext().
		Set("FlyerCount", plan.FlyerCount).
		Set("StaffCount", plan.StaffCount).
		Set("HoursPerStaff", plan.HoursPerStaff).
		Set("BoardCost", plan.FixedBoardCost).
		Set("GiftCount", plan.GiftCount).
		Set("TuitionFee", plan.TuitionFee).
		Set("TotalCost", result.TotalCost).
		Set("NewStudents", result.NewStudents).
		Set("Profit", result.Profit)
	text, err := p.call(ctx, prompt.PromptIDs.BudgetFeedback, vars)
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		log.Warn().Err(err).Msg("budget feedback degraded")
		return Feedback{Text: ReviewBudget(plan, result), Result: result, Degraded: true}, nil
	}
	return Feedback{Text: text, Result: result}, nil
}

const heavyShare = 40.0

// ReviewBudget is the offline three-line review: the dominant cost
// category, the projection against break-even, and one adjustment.
func ReviewBudget(plan models.BudgetPlan, r models.BudgetResult) string {
	if r.TotalCost <= 0 {
		return "1. 집행 예정인 마케팅 비용이 없습니다.\n2. 예상 신규 유입 0명\n3. 시즌 프리셋을 적용해 기본 예산안부터 잡아 보십시오."
	}

	type part struct {
		name string
		cost int64
	}
	parts := []part{
		{"전단지", r.FlyerCost},
		{"홍보 인력", r.LaborCost},
		{"게시판 광고", r.BoardCost},
		{"판촉물/기타", r.GiftCost},
	}
	top := parts[0]
	for _, pt := range parts[1:] {
		if pt.cost > top.cost {
			top = pt
		}
	}
	share := float64(top.cost) / float64(r.TotalCost) * 100

	var lines [3]string
	if share >= heavyShare {
		lines[0] = fmt.Sprintf("1. %s 비중이 %.0f%%로 한쪽에 치우쳐 있습니다.", top.name, share)
	} else {
		lines[0] = fmt.Sprintf("1. 가장 큰 항목(%s)도 %.0f%% 수준으로 예산이 고르게 배분되어 있습니다.", top.name, share)
	}

	breakEven := int64(0)
	if plan.TuitionFee > 0 {
		breakEven = (r.TotalCost + plan.TuitionFee - 1) / plan.TuitionFee
	}
	lines[1] = fmt.Sprintf("2. 예상 신규 유입 %d명 (손익분기 %d명)", r.NewStudents, breakEven)

	if r.Profit < 0 {
		target := top.cost * 8 / 10
		lines[2] = fmt.Sprintf("3. %s 항목을 %s으로 조정 권장", top.name, narrative.FormatWon(target))
	} else {
		lines[2] = fmt.Sprintf("3. 수익 구조는 양호합니다. %s 효과를 상담 문의 수로 추적해 다음 달 배분에 반영하십시오.", top.name)
	}
	return strings.Join(lines[:], "\n")
}
