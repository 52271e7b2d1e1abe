package budget

import (
	"fmt"
	"math"

	"hagwon_strategy/pkg/models"
)

// conversion rates like 0.5% of 4000 flyers land exactly on an integer, but
// the float product can sit a hair below it.
const floorEpsilon = 1e-9

// Simulate projects cost, enrollment and profit for one plan.
// Any negative lever is rejected, and so is a plan whose amounts do not
// fit in int64.
func Simulate(plan models.BudgetPlan) (models.BudgetResult, error) {
	if err := checkLevers(plan); err != nil {
		return models.BudgetResult{}, err
	}
	var a arith

	// 1. Cost categories
	flyerCost := a.mul("flyer_cost", plan.FlyerCount, plan.CostPerFlyer)
	laborCost := a.mul("labor_cost", a.mul("labor_cost", plan.StaffCount, plan.HoursPerStaff), plan.HourlyWage)
	boardCost := plan.FixedBoardCost
	giftCost := a.add("gift_cost", a.mul("gift_cost", plan.GiftUnitCost, plan.GiftCount), plan.MiscCost)
	totalCost := a.add("total_cost", flyerCost, laborCost, boardCost, giftCost)

	// 2. Projection (ConversionRate is a percentage, at most 100)
	projected := math.Floor(float64(plan.FlyerCount)*plan.ConversionRate/100 + floorEpsilon)
	var newStudents int64
	if projected >= math.MaxInt64 {
		a.fail("new_students")
	} else {
		newStudents = int64(projected)
	}
	revenue := a.mul("revenue", newStudents, plan.TuitionFee)

	if len(a.bad) > 0 {
		return models.BudgetResult{}, fmt.Errorf("budget plan: %w", models.NewValidationError(nil, a.bad...))
	}
	return models.BudgetResult{
		FlyerCost:   flyerCost,
		LaborCost:   laborCost,
		BoardCost:   boardCost,
		GiftCost:    giftCost,
		TotalCost:   totalCost,
		NewStudents: newStudents,
		Revenue:     revenue,
		Profit:      revenue - totalCost,
	}, nil
}

// arith is overflow-checked math over non-negative amounts. The first
// overflow of a field is recorded and yields 0.
type arith struct {
	bad []models.FieldError
}

func (a *arith) fail(field string) {
	for _, f := range a.bad {
		if f.Field == field {
			return
		}
	}
	a.bad = append(a.bad, models.FieldError{Field: field, Error: "amount is too large"})
}

func (a *arith) mul(field string, x, y int64) int64 {
	if x != 0 && y > math.MaxInt64/x {
		a.fail(field)
		return 0
	}
	return x * y
}

func (a *arith) add(field string, vals ...int64) int64 {
	var sum int64
	for _, v := range vals {
		if v > math.MaxInt64-sum {
			a.fail(field)
			return 0
		}
		sum += v
	}
	return sum
}

func checkLevers(plan models.BudgetPlan) error {
	if math.IsNaN(plan.ConversionRate) || math.IsInf(plan.ConversionRate, 0) {
		return models.NewValidationError(nil, models.FieldError{Field: "conversion_rate", Error: "must be a finite number"})
	}
	if err := models.Validate(&plan); err != nil {
		return fmt.Errorf("budget plan: %w", err)
	}
	return nil
}
