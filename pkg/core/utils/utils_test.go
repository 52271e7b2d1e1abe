package utils

import (
	"errors"
	"reflect"
	"testing"
)

type calendarItem struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

func TestSmartParse_FencedJSON(t *testing.T) {
	input := "```json\n[{\"type\":\"블로그/맘카페\",\"title\":\"A\",\"desc\":\"B\"}]\n```"
	var items []calendarItem
	if _, err := SmartParse(input, &items); err != nil {
		t.Fatalf("SmartParse failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "A" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestSmartParse_ChattyAndBroken(t *testing.T) {
	input := "Here you go:\n[{type: '오프라인/현장', title: '할로윈 파티', desc: '정문 배포',},]\nEnjoy!"
	var items []calendarItem
	if _, err := SmartParse(input, &items); err != nil {
		t.Fatalf("SmartParse failed: %v", err)
	}
	if len(items) != 1 || items[0].Type != "오프라인/현장" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestParseHJSON(t *testing.T) {
	input := "{\n  # comment\n  segmentation: 틈새 시장\n  targeting: 초등 저학년\n}"
	out, err := ParseHJSON(input)
	if err != nil {
		t.Fatalf("ParseHJSON failed: %v", err)
	}
	want := `{"segmentation":"틈새 시장","targeting":"초등 저학년"}`
	if out != want {
		t.Errorf("ParseHJSON = %s, want %s", out, want)
	}
}

func TestSmartParse_Garbage(t *testing.T) {
	var items []calendarItem
	_, err := SmartParse("죄송합니다. 요청을 처리할 수 없습니다.", &items)
	if !errors.Is(err, ErrUnparseable) {
		t.Errorf("expected ErrUnparseable, got %v", err)
	}
}

func TestLooksLikeJSON(t *testing.T) {
	if !LooksLikeJSON("```json\n{\"a\":1}\n```") {
		t.Error("fenced object not detected")
	}
	if LooksLikeJSON("### SEGMENTATION\n본문") {
		t.Error("markdown detected as JSON")
	}
}

func TestCleanMarkdown(t *testing.T) {
	tests := map[string]string{
		"```markdown\n### A\nbody\n```": "### A\nbody",
		"```\nplain\n```":                "plain",
		"  ### B\r\nx  ":                 "### B\nx",
	}
	for in, want := range tests {
		if got := CleanMarkdown(in); got != want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHeadings(t *testing.T) {
	md := "# 리포트\n\n본문\n\n### 1. SEGMENTATION\n\n내용\n\nSetext\n------\n"
	got := Headings(md)
	want := []string{"리포트", "1. SEGMENTATION", "Setext"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Headings = %v, want %v", got, want)
	}
}
