package school

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hagwon_strategy/pkg/api/respond"
	coreSchool "hagwon_strategy/pkg/core/school"
)

// Directory is the part of the NEIS client the handlers use.
type Directory interface {
	Search(ctx context.Context, name string) ([]coreSchool.School, error)
	Schedule(ctx context.Context, officeCode, schoolCode, yyyymm string) ([]coreSchool.Event, error)
}

type Handler struct {
	dir Directory
	now func() time.Time
}

func NewHandler(dir Directory) *Handler {
	return &Handler{dir: dir, now: time.Now}
}

type searchResult struct {
	coreSchool.School
	Region string `json:"region"`
}

// HandleSearch: GET ?q= lists matching elementary and middle schools.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodGet) {
		return
	}
	schools, err := h.dir.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	out := make([]searchResult, 0, len(schools))
	for _, s := range schools {
		out = append(out, searchResult{School: s, Region: coreSchool.RegionFromAddress(s.Address)})
	}
	respond.JSON(w, http.StatusOK, out)
}

// ScheduleResponse is the school calendar plus the marketing points drawn
// from it. ClassAdvice is empty unless students and classes were given.
type ScheduleResponse struct {
	Month       string                `json:"month"`
	Events      []coreSchool.Event    `json:"events"`
	KeyEvents   []coreSchool.KeyEvent `json:"key_events"`
	ActionPlan  string                `json:"action_plan"`
	ClassAdvice string                `json:"class_advice,omitempty"`
}

// HandleSchedule: GET ?office=&school=&ym=[&name=&students=&classes=].
// ym defaults to the current month.
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	now := h.now()

	ym := strings.TrimSpace(q.Get("ym"))
	if ym == "" {
		ym = now.Format("200601")
	}
	students, err := respond.QueryInt(r, "students", 0)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	classes, err := respond.QueryInt(r, "classes", 0)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	events, err := h.dir.Schedule(r.Context(), q.Get("office"), q.Get("school"), ym)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if events == nil {
		events = []coreSchool.Event{}
	}

	key := coreSchool.ExtractKeyEvents(events, now)
	respond.JSON(w, http.StatusOK, ScheduleResponse{
		Month:       ym,
		Events:      events,
		KeyEvents:   key,
		ActionPlan:  coreSchool.ActionPlan(key, q.Get("name"), students),
		ClassAdvice: coreSchool.ClassSizeAdvice(students, classes),
	})
}
