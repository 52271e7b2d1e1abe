package marketing

import (
	"context"
	"strings"
	"time"

	"github.com/phuslu/log"

	"hagwon_strategy/pkg/core/prompt"
	"hagwon_strategy/pkg/core/utils"
)

// Generator is the text service as seen by this package.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Planner produces AI-backed marketing content with deterministic
// fallbacks. A Planner with a nil generator only uses the fallbacks.
type Planner struct {
	gen     Generator
	prompts *prompt.Registry
	timeout time.Duration
}

func NewPlanner(gen Generator, prompts *prompt.Registry, timeout time.Duration) *Planner {
	if prompts == nil {
		prompts = prompt.Get()
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Planner{gen: gen, prompts: prompts, timeout: timeout}
}

// CalendarResult is the month's marketing calendar.
type CalendarResult struct {
	Month    int      `json:"month"`
	Items    []Action `json:"items"`
	Degraded bool     `json:"degraded"`
}

const calendarSize = 3

// Calendar asks the text service for three concrete actions for the
// month. Unusable output falls back to MonthlyPlan and is flagged
// degraded. Only an invalid month is an error.
func (p *Planner) Calendar(ctx context.Context, month int, location, persona string) (CalendarResult, error) {
	fallback, err := MonthlyPlan(month)
	if err != nil {
		return CalendarResult{}, err
	}
	if p.gen == nil {
		return CalendarResult{Month: month, Items: fallback}, nil
	}

	vars := prompt.NewContext().
		Set("Month", month).
		Set("Location", location).
		Set("Persona", persona)
	text, err := p.call(ctx, prompt.PromptIDs.MarketingCalendar, vars)
	if err != nil {
		log.Warn().Int("month", month).Err(err).Msg("marketing calendar degraded")
		return CalendarResult{Month: month, Items: fallback, Degraded: true}, nil
	}

	items := parseCalendar(text)
	if len(items) == 0 {
		log.Warn().Int("month", month).Msg("marketing calendar unparseable")
		return CalendarResult{Month: month, Items: fallback, Degraded: true}, nil
	}
	return CalendarResult{Month: month, Items: items}, nil
}

func (p *Planner) call(ctx context.Context, id string, vars *prompt.PromptExecutionContext) (string, error) {
	text, err := p.prompts.Render(id, vars)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.gen.Generate(ctx, text)
}

// parseCalendar accepts a JSON array, possibly fenced, wrapped in prose,
// or slightly malformed. Items without a title are dropped.
func parseCalendar(text string) []Action {
	raw := utils.ExtractJSON(utils.CleanMarkdown(text))
	if raw == "" {
		return nil
	}

	var items []Action
	if _, err := utils.SmartParse(raw, &items); err != nil {
		// some models wrap the array in an object
		var wrapped struct {
			Items []Action `json:"items"`
		}
		if _, err := utils.SmartParse(raw, &wrapped); err != nil {
			return nil
		}
		items = wrapped.Items
	}

	out := make([]Action, 0, calendarSize)
	for _, it := range items {
		it.Type = strings.TrimSpace(it.Type)
		it.Title = strings.TrimSpace(it.Title)
		it.Desc = strings.TrimSpace(it.Desc)
		if it.Title == "" {
			continue
		}
		out = append(out, it)
		if len(out) == calendarSize {
			break
		}
	}
	return out
}
