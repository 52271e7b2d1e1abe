package marketing

import (
	"net/http"
	"time"

	"hagwon_strategy/pkg/api/respond"
	"hagwon_strategy/pkg/core/budget"
	coreMarketing "hagwon_strategy/pkg/core/marketing"
	"hagwon_strategy/pkg/models"
)

// Handler serves the budget simulator and the marketing planner.
type Handler struct {
	planner *coreMarketing.Planner
	now     func() time.Time
}

func NewHandler(planner *coreMarketing.Planner) *Handler {
	if planner == nil {
		planner = coreMarketing.NewPlanner(nil, nil, 0)
	}
	return &Handler{planner: planner, now: time.Now}
}

func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodPost) {
		return
	}
	var plan models.BudgetPlan
	if err := respond.Decode(r, &plan); err != nil {
		respond.Error(w, r, err)
		return
	}
	result, err := budget.Simulate(plan)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, result)
}

// PresetResponse is the default plan with the month's preset applied.
type PresetResponse struct {
	Month  int                 `json:"month"`
	Preset budget.Preset       `json:"preset"`
	Plan   models.BudgetPlan   `json:"plan"`
	Result models.BudgetResult `json:"result"`
	Labels budget.CostLabels   `json:"labels"`
}

func (h *Handler) HandlePreset(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodGet) {
		return
	}
	month, err := respond.QueryInt(r, "month", int(h.now().Month()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	preset, err := budget.PresetForMonth(month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	plan, err := budget.ApplyPreset(budget.DefaultPlan(), month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	result, err := budget.Simulate(plan)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	labels, err := budget.LabelsForMonth(month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, PresetResponse{Month: month, Preset: preset, Plan: plan, Result: result, Labels: labels})
}

type PlanResponse struct {
	Month   int                    `json:"month"`
	Actions []coreMarketing.Action `json:"actions"`
}

func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodGet) {
		return
	}
	month, err := respond.QueryInt(r, "month", int(h.now().Month()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	actions, err := coreMarketing.MonthlyPlan(month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, PlanResponse{Month: month, Actions: actions})
}

type CalendarRequest struct {
	Month    int    `json:"month"`
	Location string `json:"location"`
	Persona  string `json:"persona"`
}

func (h *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodPost) {
		return
	}
	var req CalendarRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if req.Month == 0 {
		req.Month = int(h.now().Month())
	}
	res, err := h.planner.Calendar(r.Context(), req.Month, req.Location, req.Persona)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) HandleBudgetFeedback(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodPost) {
		return
	}
	var plan models.BudgetPlan
	if err := respond.Decode(r, &plan); err != nil {
		respond.Error(w, r, err)
		return
	}
	fb, err := h.planner.BudgetFeedback(r.Context(), plan)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fb)
}
