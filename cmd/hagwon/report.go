package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"hagwon_strategy/pkg/core/agent"
	"hagwon_strategy/pkg/core/budget"
	"hagwon_strategy/pkg/core/render"
	"hagwon_strategy/pkg/core/report"
	"hagwon_strategy/pkg/models"
)

// reportFile is the input document: one profile, its competitors and an
// optional plan or preset month.
type reportFile struct {
	Profile     *models.AcademyProfile `json:"profile"`
	Competitors []models.Competitor    `json:"competitors"`
	Plan        *models.BudgetPlan     `json:"plan"`
	Month       int                    `json:"month"`
}

func reportCmd() *cobra.Command {
	var (
		format string
		useAI  bool
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "report [input.json]",
		Short: "Compose a strategy report from a JSON input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), args[0], format, useAI, save)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: json, md or text")
	cmd.Flags().BoolVar(&useAI, "ai", false, "ask the active text provider for the narrative sections")
	cmd.Flags().BoolVar(&save, "save", false, "archive the report in the configured store")
	return cmd
}

func runReport(ctx context.Context, path, format string, useAI, save bool) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	// 1. Read input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var in reportFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	plan := budget.DefaultPlan()
	switch {
	case in.Plan != nil:
		plan = *in.Plan
	case in.Month != 0:
		if plan, err = budget.ApplyPreset(plan, in.Month); err != nil {
			return err
		}
	}

	// 2. Compose
	opts := []report.Option{report.WithTimeout(cfg.Timeout())}
	if useAI {
		mgr, err := agent.NewManager(cfg.LLM)
		if err != nil {
			return err
		}
		opts = append(opts, report.WithGenerator(mgr.For("report")))
	}
	rep, err := report.NewComposer(opts...).ComposeReport(ctx, report.Input{
		Profile:     in.Profile,
		Competitors: in.Competitors,
		Plan:        plan,
	})
	if err != nil {
		return err
	}
	for _, w := range rep.Warnings {
		log.Warn().Str("ai", string(rep.AIStatus)).Msg(w)
	}

	// 3. Archive
	if save {
		if err := archive(ctx, cfg, rep); err != nil {
			return err
		}
	}

	// 4. Print
	out, err := formatReport(rep, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func formatReport(rep *report.Report, format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		b, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	case "md", "markdown":
		return report.Markdown(rep), nil
	case "text", "txt":
		return render.MarkdownToText(report.Markdown(rep))
	}
	return "", fmt.Errorf("unknown format %q", format)
}
