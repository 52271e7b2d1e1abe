// Package prompt provides a centralized prompt library for the text service.
// Prompts ship as built-ins and may be overridden by JSON files loaded at
// runtime, so wording can change without code changes.
package prompt

// PromptTemplate represents a reusable prompt with metadata
type PromptTemplate struct {
	ID             string           `json:"id"`                   // Unique identifier (e.g., "report.sections")
	Name           string           `json:"name"`                 // Human-readable name
	Category       string           `json:"category"`             // Category (report, marketing, budget)
	Description    string           `json:"description"`          // Description of prompt purpose
	SystemPrompt   string           `json:"system_prompt"`        // Role line prepended to the user prompt
	UserPromptTmpl string           `json:"user_prompt_template"` // Go template for user prompt
	Variables      []PromptVariable `json:"variables"`            // Variables used in template
	Version        string           `json:"version"`              // Version for tracking changes
}

// PromptVariable defines a variable used in a prompt template
type PromptVariable struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, int, float, array
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default"`
}

// PromptExecutionContext holds runtime values for prompt execution
type PromptExecutionContext struct {
	Variables map[string]interface{}
}

// NewContext creates a new execution context
func NewContext() *PromptExecutionContext {
	return &PromptExecutionContext{
		Variables: make(map[string]interface{}),
	}
}

// Set adds a variable to the context
func (c *PromptExecutionContext) Set(key string, value interface{}) *PromptExecutionContext {
	c.Variables[key] = value
	return c
}

// PromptIDs contains all built-in prompt identifiers
var PromptIDs = struct {
	ReportSections    string
	MarketingCalendar string
	BudgetFeedback    string
}{
	ReportSections:    "report.sections",
	MarketingCalendar: "marketing.calendar",
	BudgetFeedback:    "budget.feedback",
}
