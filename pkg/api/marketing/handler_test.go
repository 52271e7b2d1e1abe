package marketing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hagwon_strategy/pkg/core/budget"
	coreMarketing "hagwon_strategy/pkg/core/marketing"
	"hagwon_strategy/pkg/models"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func newHandler(gen coreMarketing.Generator) *Handler {
	h := NewHandler(coreMarketing.NewPlanner(gen, nil, time.Second))
	h.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return h
}

func do(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestHandleSimulate(t *testing.T) {
	h := newHandler(nil)
	body, err := json.Marshal(budget.DefaultPlan())
	require.NoError(t, err)

	rec := do(h.HandleSimulate, http.MethodPost, "/api/budget/simulate", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res models.BudgetResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, int64(1029000), res.TotalCost)
	assert.Equal(t, int64(20), res.NewStudents)
	assert.Equal(t, int64(4571000), res.Profit)

	rec = do(h.HandleSimulate, http.MethodPost, "/api/budget/simulate", `{"flyer_count":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePreset(t *testing.T) {
	h := newHandler(nil)

	rec := do(h.HandlePreset, http.MethodGet, "/api/budget/preset?month=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp PresetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, budget.SeasonEvent, resp.Preset.Season)
	assert.Equal(t, int64(2000), resp.Plan.FlyerCount)
	assert.Equal(t, "발표회 초대장", resp.Labels.Flyer)

	// month defaults to the clock
	rec = do(h.HandlePreset, http.MethodGet, "/api/budget/preset", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, budget.SeasonPeak, resp.Preset.Season)

	assert.Equal(t, http.StatusBadRequest, do(h.HandlePreset, http.MethodGet, "/api/budget/preset?month=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h.HandlePreset, http.MethodGet, "/api/budget/preset?month=may", "").Code)
}

func TestHandlePlan(t *testing.T) {
	h := newHandler(nil)
	rec := do(h.HandlePlan, http.MethodGet, "/api/marketing/plan?month=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Month)
	assert.Len(t, resp.Actions, 3)

	assert.Equal(t, http.StatusBadRequest, do(h.HandlePlan, http.MethodGet, "/api/marketing/plan?month=13", "").Code)
}

func TestHandleCalendar(t *testing.T) {
	h := newHandler(stubGenerator{text: "```json\n[{\"type\":\"설명회\",\"title\":\"새학기 설명회\",\"desc\":\"토요일 오전\"}]\n```"})
	rec := do(h.HandleCalendar, http.MethodPost, "/api/marketing/calendar", `{"location":"판교","persona":"입시 중심"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res coreMarketing.CalendarResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Month)
	assert.False(t, res.Degraded)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "새학기 설명회", res.Items[0].Title)

	h = newHandler(stubGenerator{err: errors.New("boom")})
	rec = do(h.HandleCalendar, http.MethodPost, "/api/marketing/calendar", `{"month":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Degraded)
	assert.Len(t, res.Items, 3)

	assert.Equal(t, http.StatusBadRequest, do(h.HandleCalendar, http.MethodPost, "/api/marketing/calendar", `{"month":14}`).Code)
}

func TestHandleBudgetFeedback(t *testing.T) {
	h := newHandler(nil)
	body, err := json.Marshal(budget.DefaultPlan())
	require.NoError(t, err)

	rec := do(h.HandleBudgetFeedback, http.MethodPost, "/api/marketing/budget-feedback", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var fb coreMarketing.Feedback
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fb))
	assert.Contains(t, fb.Text, "예상 신규 유입 20명")
	assert.Equal(t, int64(4571000), fb.Result.Profit)

	assert.Equal(t, http.StatusBadRequest, do(h.HandleBudgetFeedback, http.MethodPost, "/api/marketing/budget-feedback", `{"tuition_fee":-1}`).Code)
}
