package utils

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var fenceOpen = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\r?\n?")

// CleanMarkdown trims whitespace and strips one outer code fence
// (```markdown, ```json, plain ```).
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)
	if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") && len(cleaned) >= 6 {
		cleaned = fenceOpen.ReplaceAllString(cleaned, "")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return strings.ReplaceAll(cleaned, "\r\n", "\n")
}

// Headings lists the ATX and setext heading texts of a markdown document,
// in document order.
func Headings(input string) []string {
	source := []byte(input)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		lines := h.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		out = append(out, strings.TrimSpace(b.String()))
		return ast.WalkSkipChildren, nil
	})
	return out
}
