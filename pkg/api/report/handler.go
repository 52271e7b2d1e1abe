package report

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/phuslu/log"

	"hagwon_strategy/pkg/api/respond"
	"hagwon_strategy/pkg/core/budget"
	"hagwon_strategy/pkg/core/narrative"
	"hagwon_strategy/pkg/core/render"
	coreReport "hagwon_strategy/pkg/core/report"
	"hagwon_strategy/pkg/core/store"
	"hagwon_strategy/pkg/models"
)

// Handler serves profiles, report composition and the saved-report archive.
type Handler struct {
	store    store.Store
	composer *coreReport.Composer
	offline  *coreReport.Composer
}

// NewHandler wires the handler. composer is used when a request asks for
// AI sections; a template-only composer serves the rest.
func NewHandler(st store.Store, composer *coreReport.Composer) *Handler {
	offline := coreReport.NewComposer()
	if composer == nil {
		composer = offline
	}
	return &Handler{store: st, composer: composer, offline: offline}
}

type idResponse struct {
	ID string `json:"id"`
}

// HandleProfiles: POST stores {profile, competitors}; GET ?id= loads one.
func (h *Handler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	ctx := r.Context()

	if r.Method == http.MethodGet {
		id, err := requiredID(r)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		rec, err := h.store.GetProfile(ctx, id)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, rec)
		return
	}

	var rec models.ProfileRecord
	if err := respond.Decode(r, &rec); err != nil {
		respond.Error(w, r, err)
		return
	}
	rec.ID = ""
	id, err := h.store.PutProfile(ctx, &rec)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	log.Info().Str("id", id).Msg("profile saved")
	respond.JSON(w, http.StatusCreated, idResponse{ID: id})
}

// ReportRequest names a stored profile or carries one inline. Plan
// defaults to the simulator's default plan, with the month's preset
// applied when Month is set. AI defaults to true.
type ReportRequest struct {
	ProfileID   string                 `json:"profile_id"`
	Profile     *models.AcademyProfile `json:"profile"`
	Competitors []models.Competitor    `json:"competitors"`
	Plan        *models.BudgetPlan     `json:"plan"`
	Month       int                    `json:"month"`
	AI          *bool                  `json:"ai"`
}

// ReportResponse adds rendered HTML per section to the report.
type ReportResponse struct {
	*coreReport.Report
	SectionHTML map[narrative.SectionTag]string `json:"section_html"`
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodPost) {
		return
	}
	ctx := r.Context()

	var req ReportRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	// 1. Resolve input
	in := coreReport.Input{Profile: req.Profile, Competitors: req.Competitors}
	if req.ProfileID != "" {
		rec, err := h.store.GetProfile(ctx, req.ProfileID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		in = coreReport.Input{ProfileID: rec.ID, Profile: &rec.Profile, Competitors: rec.Competitors}
	}

	plan, err := planFor(req.Plan, req.Month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	in.Plan = plan

	// 2. Compose
	composer := h.composer
	if req.AI != nil && !*req.AI {
		composer = h.offline
	}
	rep, err := composer.ComposeReport(ctx, in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	// 3. Render
	respond.JSON(w, http.StatusOK, ReportResponse{Report: rep, SectionHTML: sectionHTML(rep)})
}

func planFor(plan *models.BudgetPlan, month int) (models.BudgetPlan, error) {
	if plan != nil {
		return *plan, nil
	}
	p := budget.DefaultPlan()
	if month == 0 {
		return p, nil
	}
	return budget.ApplyPreset(p, month)
}

func sectionHTML(rep *coreReport.Report) map[narrative.SectionTag]string {
	out := make(map[narrative.SectionTag]string, len(rep.Sections))
	for _, s := range rep.Sections {
		html, err := render.ToHTML(s.Text)
		if err != nil {
			log.Warn().Str("tag", string(s.Tag)).Err(err).Msg("render section")
			continue
		}
		out[s.Tag] = html
	}
	return out
}

// SaveRequest is a report snapshot to archive.
type SaveRequest struct {
	Title    string          `json:"title"`
	InputID  string          `json:"input_data_id"`
	Report   json.RawMessage `json:"report_data"`
	Location string          `json:"location"`
}

// HandleReports: POST archives a snapshot; GET lists the archive, newest first.
func (h *Handler) HandleReports(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	ctx := r.Context()

	if r.Method == http.MethodGet {
		list, err := h.store.ListReports(ctx)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		if list == nil {
			list = []models.SavedReport{}
		}
		respond.JSON(w, http.StatusOK, list)
		return
	}

	var req SaveRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	id, err := h.store.SaveReport(ctx, &models.SavedReport{
		Title:    strings.TrimSpace(req.Title),
		InputID:  req.InputID,
		Report:   req.Report,
		Location: strings.TrimSpace(req.Location),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	log.Info().Str("id", id).Msg("report saved")
	respond.JSON(w, http.StatusCreated, idResponse{ID: id})
}

// HandleReportItem: GET ?id= loads one snapshot; DELETE ?id= removes it.
func (h *Handler) HandleReportItem(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodGet, http.MethodDelete) {
		return
	}
	ctx := r.Context()

	id, err := requiredID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if r.Method == http.MethodDelete {
		if err := h.store.DeleteReport(ctx, id); err != nil {
			respond.Error(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rep, err := h.store.GetReport(ctx, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, rep)
}

func requiredID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		return "", models.NewValidationError(nil, models.FieldError{Field: "id", Error: "is required"})
	}
	return id, nil
}
