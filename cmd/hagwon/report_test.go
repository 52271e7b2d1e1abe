package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hagwon_strategy/pkg/core/report"
)

func composeTestdata(t *testing.T) *report.Report {
	t.Helper()
	data, err := os.ReadFile("testdata/academy.json")
	require.NoError(t, err)
	var in reportFile
	require.NoError(t, json.Unmarshal(data, &in))

	rep, err := report.NewComposer().ComposeReport(context.Background(), report.Input{
		Profile:     in.Profile,
		Competitors: in.Competitors,
	})
	require.NoError(t, err)
	return rep
}

func TestFormatReport(t *testing.T) {
	rep := composeTestdata(t)

	md, err := formatReport(rep, "md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "#"))

	js, err := formatReport(rep, "JSON")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(js)))

	text, err := formatReport(rep, "text")
	require.NoError(t, err)
	assert.NotContains(t, text, "<p>")
	assert.Contains(t, text, "신도시 중심상가 학원가")

	_, err = formatReport(rep, "pdf")
	assert.Error(t, err)
}

func TestRunReport(t *testing.T) {
	configPath = "testdata/missing.yaml"
	require.NoError(t, runReport(context.Background(), "testdata/academy.json", "md", false, false))
	assert.Error(t, runReport(context.Background(), "testdata/nope.json", "md", false, false))
}
