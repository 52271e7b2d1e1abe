package models

import (
	"encoding/json"
	"time"
)

// BudgetPlan is the set of levers for one month of promotion.
// ConversionRate is a percentage: 0.5 means 0.5% of flyers enroll.
// Amounts are won and must fit the int64 arithmetic of the simulator.
type BudgetPlan struct {
	Name           string  `json:"name,omitempty"`
	FlyerCount     int64   `json:"flyer_count" validate:"gte=0"`
	CostPerFlyer   int64   `json:"cost_per_flyer" validate:"gte=0"`
	StaffCount     int64   `json:"staff_count" validate:"gte=0"`
	HoursPerStaff  int64   `json:"hours_per_staff" validate:"gte=0"`
	HourlyWage     int64   `json:"hourly_wage" validate:"gte=0"`
	FixedBoardCost int64   `json:"fixed_board_cost" validate:"gte=0"`
	GiftUnitCost   int64   `json:"gift_unit_cost" validate:"gte=0"`
	GiftCount      int64   `json:"gift_count" validate:"gte=0"`
	MiscCost       int64   `json:"misc_cost" validate:"gte=0"`
	ConversionRate float64 `json:"conversion_rate" validate:"gte=0,lte=100"`
	TuitionFee     int64   `json:"tuition_fee" validate:"gte=0"`
}

// BudgetResult is always recomputed from a BudgetPlan.
type BudgetResult struct {
	FlyerCost   int64 `json:"flyer_cost"`
	LaborCost   int64 `json:"labor_cost"`
	BoardCost   int64 `json:"board_cost"`
	GiftCost    int64 `json:"gift_cost"`
	TotalCost   int64 `json:"total_cost"`
	NewStudents int64 `json:"new_students"`
	Revenue     int64 `json:"revenue"`
	Profit      int64 `json:"profit"`
}

// SavedReport is a report snapshot kept in the report archive.
type SavedReport struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	InputID   string          `json:"input_data_id,omitempty"`
	Report    json.RawMessage `json:"report_data"`
	Location  string          `json:"location"`
	CreatedAt time.Time       `json:"created_at"`
}
