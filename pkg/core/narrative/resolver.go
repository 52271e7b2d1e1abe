package narrative

import "strings"

// Source records where a section's text came from.
type Source string

const (
	SourceTemplate Source = "template"
	SourceExternal Source = "external"
)

// NarrativeSection is one tagged block of report prose. Degraded means
// external text was expected but the template had to be used.
type NarrativeSection struct {
	Tag      SectionTag `json:"tag"`
	Text     string     `json:"text"`
	Degraded bool       `json:"degraded"`
	Source   Source     `json:"source"`
}

// Paragraphs splits the text on newlines, dropping blank lines.
func (s NarrativeSection) Paragraphs() []string {
	lines := strings.Split(s.Text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// ResolveSection picks external text for tag when externalText carries a
// usable section, otherwise the built-in template. A nil externalText means
// no external service was asked, so the template result is not degraded.
func ResolveSection(tag SectionTag, ctx Context, externalText *string) NarrativeSection {
	var parsed map[SectionTag]string
	if externalText != nil {
		parsed = ParseSections(*externalText)
	}
	return resolve(tag, ctx, parsed, externalText != nil)
}

// ResolveAll resolves tags in order against one external blob, parsing it
// once.
func ResolveAll(tags []SectionTag, ctx Context, externalText *string) []NarrativeSection {
	var parsed map[SectionTag]string
	if externalText != nil {
		parsed = ParseSections(*externalText)
	}
	out := make([]NarrativeSection, 0, len(tags))
	for _, tag := range tags {
		out = append(out, resolve(tag, ctx, parsed, externalText != nil))
	}
	return out
}

// Fallback fills every tag from templates and marks each degraded. Used
// when the external call itself failed.
func Fallback(tags []SectionTag, ctx Context) []NarrativeSection {
	out := make([]NarrativeSection, 0, len(tags))
	for _, tag := range tags {
		out = append(out, NarrativeSection{
			Tag:      tag,
			Text:     RenderTemplate(tag, ctx),
			Degraded: true,
			Source:   SourceTemplate,
		})
	}
	return out
}

func resolve(tag SectionTag, ctx Context, parsed map[SectionTag]string, expectExternal bool) NarrativeSection {
	if body, ok := parsed[tag]; ok && body != "" {
		return NarrativeSection{Tag: tag, Text: body, Source: SourceExternal}
	}
	return NarrativeSection{
		Tag:      tag,
		Text:     RenderTemplate(tag, ctx),
		Degraded: expectExternal,
		Source:   SourceTemplate,
	}
}
