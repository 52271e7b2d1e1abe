package narrative

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"hagwon_strategy/pkg/core/utils"
)

// SectionTag identifies one prose block of the report.
type SectionTag string

const (
	Segmentation SectionTag = "SEGMENTATION"
	Targeting    SectionTag = "TARGETING"
	Positioning  SectionTag = "POSITIONING"
	SOStrategy   SectionTag = "SO_STRATEGY"
	Opportunity  SectionTag = "OPPORTUNITY"
	Threat       SectionTag = "THREAT"
	Conclusion   SectionTag = "CONCLUSION"
)

// AllTags is the report order.
var AllTags = []SectionTag{Segmentation, Targeting, Positioning, SOStrategy, Opportunity, Threat, Conclusion}

// Valid reports whether t is one of AllTags.
func (t SectionTag) Valid() bool {
	for _, k := range AllTags {
		if k == t {
			return true
		}
	}
	return false
}

// Header grammar, one per line:
//
//	#{1,6} [N. | N)] [**] TAG [**] [(: | - ) inline body] <anything to end of line>
//
// TAG is matched case-insensitively; an underscore in a tag also matches a
// space or dash ("SO STRATEGY", "so-strategy"). Text after a colon or a
// spaced dash is the first line of the body ("### SEGMENTATION: ..."); any
// other trailing text is a title and is dropped. The first recognized
// header fixes the section level: later tag headers nested deeper than it
// ("#### Opportunity 활용" under "### SO_STRATEGY") stay in the body. A
// section body runs until the next section header or the end of the text.
var headerPattern = buildHeaderPattern()

func buildHeaderPattern() *regexp.Regexp {
	alts := make([]string, 0, len(AllTags))
	for _, t := range AllTags {
		alts = append(alts, strings.ReplaceAll(regexp.QuoteMeta(string(t)), "_", `[ \t_-]*`))
	}
	return regexp.MustCompile(`(?im)^[ \t]*(#{1,6})[ \t]*(?:\d+[.)][ \t]*)?(?:\*\*)?[ \t]*(` +
		strings.Join(alts, "|") + `)S?\b(?:\*\*)?[ \t]*([:\x{FF1A}]|[-\x{2013}\x{2014}][ \t])?([^\n]*)$`)
}

// tagFromMatch maps the matched keyword back to its tag.
func tagFromMatch(word string) SectionTag {
	norm := strings.ToUpper(word)
	norm = strings.NewReplacer(" ", "", "\t", "", "-", "", "_", "").Replace(norm)
	for _, t := range AllTags {
		if strings.ReplaceAll(string(t), "_", "") == norm {
			return t
		}
	}
	return ""
}

// sectionHeader is one accepted header line.
type sectionHeader struct {
	tag        SectionTag
	start, end int // the header line
	inline     string
}

// ParseSections splits free-form model output into tagged bodies. Markdown
// headers are the primary format; JSON objects keyed by tag name are also
// accepted. Tags without a non-empty body are absent from the map. The
// first non-empty body of a repeated tag wins. Malformed input yields an
// empty map, never an error.
func ParseSections(text string) map[SectionTag]string {
	out := make(map[SectionTag]string)
	cleaned := utils.CleanMarkdown(text)
	if cleaned == "" {
		return out
	}

	if utils.LooksLikeJSON(cleaned) {
		if parsed := parseJSONSections(cleaned); len(parsed) > 0 {
			return parsed
		}
	}

	headers := findHeaders(cleaned)
	for i, h := range headers {
		end := len(cleaned)
		if i+1 < len(headers) {
			end = headers[i+1].start
		}
		// the slice opens with the header's newline
		body := tidyBody(h.inline + cleaned[h.end:end])
		if body == "" {
			continue
		}
		if _, seen := out[h.tag]; !seen {
			out[h.tag] = body
		}
	}
	return out
}

func findHeaders(text string) []sectionHeader {
	var (
		headers []sectionHeader
		level   int
	)
	for _, m := range headerPattern.FindAllStringSubmatchIndex(text, -1) {
		tag := tagFromMatch(text[m[4]:m[5]])
		if tag == "" {
			continue
		}
		depth := m[3] - m[2]
		if level == 0 {
			level = depth
		} else if depth > level {
			continue
		}
		h := sectionHeader{tag: tag, start: m[0], end: m[1]}
		if m[6] >= 0 {
			h.inline = strings.TrimSpace(text[m[8]:m[9]])
		}
		headers = append(headers, h)
	}
	return headers
}

func parseJSONSections(text string) map[SectionTag]string {
	out := make(map[SectionTag]string)
	var raw map[string]interface{}
	if _, err := utils.SmartParse(text, &raw); err != nil {
		return out
	}

	// sorted keys keep duplicate-key resolution stable
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		tag := tagFromMatch(k)
		if tag == "" {
			continue
		}
		body := tidyBody(flatten(raw[k]))
		if body == "" {
			continue
		}
		if _, seen := out[tag]; !seen {
			out[tag] = body
		}
	}
	return out
}

func flatten(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(flatten(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

var ruleLine = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)

// tidyBody trims the body and drops horizontal rules that models like to
// put between sections.
func tidyBody(body string) string {
	body = ruleLine.ReplaceAllString(body, "")
	return strings.TrimSpace(body)
}
