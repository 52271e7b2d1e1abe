package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phuslu/log"

	"hagwon_strategy/pkg/core/budget"
	"hagwon_strategy/pkg/core/diagnosis"
	"hagwon_strategy/pkg/core/llm"
	"hagwon_strategy/pkg/core/metrics"
	"hagwon_strategy/pkg/core/narrative"
	"hagwon_strategy/pkg/core/prompt"
	"hagwon_strategy/pkg/core/utils"
	"hagwon_strategy/pkg/models"
)

// ErrExternalServiceDegraded marks a report whose AI sections fell back
// to templates. It is recorded on the Report, never returned.
var ErrExternalServiceDegraded = errors.New("external text service degraded")

// TextGenerator is the external text-generation boundary.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIStatus summarizes what happened to the external call.
type AIStatus string

const (
	AIDisabled  AIStatus = "disabled"   // no generator configured
	AIOK        AIStatus = "ok"         // every section came back
	AIPartial   AIStatus = "partial"    // some sections fell back
	AIDegraded  AIStatus = "degraded"   // call failed or nothing usable
	AIAuthError AIStatus = "auth_error" // credentials missing or rejected
)

const (
	authHint     = "텍스트 생성 서비스 인증에 실패했습니다. API 키 설정을 확인하십시오. 이번 리포트는 기본 템플릿으로 작성되었습니다."
	degradedHint = "AI 분석을 불러오지 못해 일부 또는 전체 섹션을 기본 템플릿으로 작성했습니다."

	defaultTimeout = 45 * time.Second
)

// Report is the composed view. It owns copies of its inputs and is never
// modified after ComposeReport returns.
type Report struct {
	ProfileID   string                       `json:"profile_id,omitempty"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Profile     models.AcademyProfile        `json:"profile"`
	Competitors []models.Competitor          `json:"competitors"`
	Metrics     metrics.DerivedMetrics       `json:"metrics"`
	Diagnosis   diagnosis.Diagnosis          `json:"diagnosis"`
	Sections    []narrative.NarrativeSection `json:"sections"`
	Plan        models.BudgetPlan            `json:"plan"`
	Budget      models.BudgetResult          `json:"budget"`
	SWOT        narrative.SWOT               `json:"swot"`
	Mix         narrative.MarketingMix       `json:"marketing_mix"`
	ThreeC      []narrative.CompetitorRow    `json:"three_c"`
	Insights    narrative.Insights           `json:"insights"`
	AIStatus    AIStatus                     `json:"ai_status"`
	Warnings    []string                     `json:"warnings"`
}

// Section returns the section for tag.
func (r *Report) Section(tag narrative.SectionTag) (narrative.NarrativeSection, bool) {
	for _, s := range r.Sections {
		if s.Tag == tag {
			return s, true
		}
	}
	return narrative.NarrativeSection{}, false
}

// DegradedCount is the number of sections filled from templates after an
// external attempt.
func (r *Report) DegradedCount() int {
	n := 0
	for _, s := range r.Sections {
		if s.Degraded {
			n++
		}
	}
	return n
}

// Composer builds reports. A Composer without a generator always uses
// the built-in templates.
type Composer struct {
	gen     TextGenerator
	prompts *prompt.Registry
	timeout time.Duration
	now     func() time.Time
}

type Option func(*Composer)

func WithGenerator(g TextGenerator) Option { return func(c *Composer) { c.gen = g } }

func WithPrompts(r *prompt.Registry) Option { return func(c *Composer) { c.prompts = r } }

func WithTimeout(d time.Duration) Option {
	return func(c *Composer) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option { return func(c *Composer) { c.now = now } }

func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		prompts: prompt.Get(),
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input is one composition request.
type Input struct {
	ProfileID   string
	Profile     *models.AcademyProfile
	Competitors []models.Competitor
	Plan        models.BudgetPlan
}

// ComposeReport runs metrics, diagnosis, one batched external call,
// section resolution and the budget simulation. Only invalid input is an
// error; a failing text service degrades sections instead.
func (c *Composer) ComposeReport(ctx context.Context, in Input) (*Report, error) {
	start := c.now()
	if in.Profile == nil {
		return nil, models.NewValidationError(nil, models.FieldError{Field: "profile", Error: "profile is required"})
	}

	// 1. snapshot and validate inputs
	profile := *in.Profile
	competitors := append([]models.Competitor{}, in.Competitors...)
	if err := models.Validate(&models.ProfileRecord{Profile: profile, Competitors: competitors}); err != nil {
		return nil, err
	}

	// 2. deterministic engines
	m, err := metrics.ComputeMetrics(&profile, competitors)
	if err != nil {
		return nil, err
	}
	diag, err := diagnosis.Diagnose(&profile)
	if err != nil {
		return nil, err
	}
	// the plan is checked before the external call so bad input costs nothing
	result, err := budget.Simulate(in.Plan)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		ProfileID:   in.ProfileID,
		GeneratedAt: start,
		Profile:     profile,
		Competitors: competitors,
		Metrics:     m,
		Diagnosis:   diag,
		Plan:        in.Plan,
		Budget:      result,
		SWOT:        narrative.BuildSWOT(&profile, competitors),
		Mix:         narrative.BuildMarketingMix(&profile),
		ThreeC:      narrative.BuildThreeC(&profile, competitors),
		Insights:    narrative.BuildInsights(&profile, competitors, m),
		Warnings:    []string{},
	}
	nctx := narrative.Context{Profile: &rep.Profile, Competitors: rep.Competitors, Metrics: m, Diagnosis: &rep.Diagnosis}

	// 3. one external call for all sections
	if c.gen == nil {
		rep.Sections = narrative.ResolveAll(narrative.AllTags, nctx, nil)
		rep.AIStatus = AIDisabled
	} else {
		text, err := c.generate(ctx, nctx)
		if err != nil {
			rep.Sections = narrative.Fallback(narrative.AllTags, nctx)
			rep.AIStatus = AIDegraded
			if errors.Is(err, llm.ErrAuth) {
				rep.AIStatus = AIAuthError
				rep.Warnings = append(rep.Warnings, authHint)
			} else {
				rep.Warnings = append(rep.Warnings, degradedHint)
			}
			log.Warn().Str("profile_id", in.ProfileID).Str("kind", llm.KindName(err)).Err(err).Msg("report sections degraded")
		} else {
			// 4. resolve each section against the single blob
			rep.Sections = narrative.ResolveAll(narrative.AllTags, nctx, &text)
			switch rep.DegradedCount() {
			case 0:
				rep.AIStatus = AIOK
			case len(rep.Sections):
				rep.AIStatus = AIDegraded
				rep.Warnings = append(rep.Warnings, degradedHint)
			default:
				rep.AIStatus = AIPartial
				rep.Warnings = append(rep.Warnings, degradedHint)
			}
			if rep.AIStatus != AIOK {
				log.Debug().Str("profile_id", in.ProfileID).Strs("headings", utils.Headings(text)).Msg("unmatched section headings")
			}
		}
	}

	log.Info().Str("profile_id", in.ProfileID).Str("ai", string(rep.AIStatus)).
		Int("degraded", rep.DegradedCount()).Dur("took", c.now().Sub(start)).Msg("report composed")
	return rep, nil
}

func (c *Composer) generate(ctx context.Context, nctx narrative.Context) (string, error) {
	p, err := c.prompts.Render(prompt.PromptIDs.ReportSections, sectionVars(nctx))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExternalServiceDegraded, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.gen.Generate(ctx, p)
	if err != nil {
		return "", err
	}
	return text, nil
}

type competitorVars struct {
	Name, Strength, Weakness, Fee string
}

func sectionVars(nctx narrative.Context) *prompt.PromptExecutionContext {
	p := nctx.Profile
	comps := make([]competitorVars, 0, len(nctx.Competitors))
	for _, cp := range nctx.Competitors {
		comps = append(comps, competitorVars{
			Name:     orDefault(cp.Name, "경쟁 학원"),
			Strength: orDefault(cp.Strength, "정보 없음"),
			Weakness: orDefault(cp.Weakness, "정보 없음"),
			Fee:      narrative.FormatWon(metrics.NormalizeFee(int64(cp.Fee))),
		})
	}
	tags := make([]string, 0, len(narrative.AllTags))
	for _, t := range narrative.AllTags {
		tags = append(tags, string(t))
	}
	diag := ""
	if nctx.Diagnosis != nil {
		diag = nctx.Diagnosis.Label
	}

	return prompt.NewContext().
		Set("Target", narrative.PrimarySegment(p)).
		Set("Persona", p.Persona.Label()).
		Set("Location", p.Location).
		Set("Strength", p.Strength).
		Set("Weakness", p.Weakness).
		Set("Competitors", comps).
		Set("Utilization", nctx.Metrics.UtilizationRate).
		Set("InstructorLoad", nctx.Metrics.InstructorLoad).
		Set("PriceLabel", nctx.Metrics.PricePosition.Label()).
		Set("Diagnosis", diag).
		Set("Tags", tags)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
