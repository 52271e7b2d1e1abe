package school

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreSchool "hagwon_strategy/pkg/core/school"
	"hagwon_strategy/pkg/models"
)

type fakeDirectory struct {
	schools []coreSchool.School
	events  []coreSchool.Event
	err     error
	lastYM  string
}

func (f *fakeDirectory) Search(ctx context.Context, name string) ([]coreSchool.School, error) {
	if name == "" {
		return nil, models.NewValidationError(nil, models.FieldError{Field: "q", Error: "required"})
	}
	return f.schools, f.err
}

func (f *fakeDirectory) Schedule(ctx context.Context, officeCode, schoolCode, yyyymm string) ([]coreSchool.Event, error) {
	f.lastYM = yyyymm
	return f.events, f.err
}

func newHandler(dir Directory) *Handler {
	h := NewHandler(dir)
	h.now = func() time.Time { return time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC) }
	return h
}

func TestHandleSearch(t *testing.T) {
	dir := &fakeDirectory{schools: []coreSchool.School{{Name: "한빛초등학교", Address: "경기도 성남시 분당구 판교로 1"}}}
	h := newHandler(dir)

	rec := httptest.NewRecorder()
	h.HandleSearch(rec, httptest.NewRequest(http.MethodGet, "/api/schools/search?q="+url.QueryEscape("한빛"), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []searchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "경기도 성남시 분당구", got[0].Region)

	rec = httptest.NewRecorder()
	h.HandleSearch(rec, httptest.NewRequest(http.MethodGet, "/api/schools/search", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	dir.err = errors.New("neis down")
	rec = httptest.NewRecorder()
	h.HandleSearch(rec, httptest.NewRequest(http.MethodGet, "/api/schools/search?q="+url.QueryEscape("한빛"), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleSchedule(t *testing.T) {
	dir := &fakeDirectory{events: []coreSchool.Event{
		{Date: "20260220", Name: "졸업식"},
		{Date: "20260216", Name: "설날"},
	}}
	h := newHandler(dir)

	rec := httptest.NewRecorder()
	h.HandleSchedule(rec, httptest.NewRequest(http.MethodGet, "/api/schools/schedule?office=J10&school=7531100&name="+url.QueryEscape("한빛초등학교")+"&students=780&classes=26", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "202602", dir.lastYM)

	var resp ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 2)
	require.Len(t, resp.KeyEvents, 1)
	assert.Equal(t, 10, resp.KeyEvents[0].DDay)
	assert.Contains(t, resp.ActionPlan, "한빛초등학교 졸업생 130명")
	assert.Contains(t, resp.ClassAdvice, "과밀 학급")

	rec = httptest.NewRecorder()
	h.HandleSchedule(rec, httptest.NewRequest(http.MethodGet, "/api/schools/schedule?office=J10&school=1&students=many", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSchedule_NoEvents(t *testing.T) {
	h := newHandler(&fakeDirectory{})
	rec := httptest.NewRecorder()
	h.HandleSchedule(rec, httptest.NewRequest(http.MethodGet, "/api/schools/schedule?office=J10&school=1&ym=202608", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "202608", resp.Month)
	assert.NotNil(t, resp.Events)
	assert.Equal(t, "이번 달 예정된 주요 학사 일정이 없습니다.", resp.ActionPlan)
	assert.Empty(t, resp.ClassAdvice)
}
