package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"hagwon_strategy/pkg/core/budget"
	"hagwon_strategy/pkg/core/config"
	"hagwon_strategy/pkg/core/fixture"
	"hagwon_strategy/pkg/core/report"
	"hagwon_strategy/pkg/models"
)

func seedCmd() *cobra.Command {
	var (
		count       int
		seed        int64
		withReports bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write generated academy profiles into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), count, seed, withReports)
		},
	}
	cmd.Flags().IntVarP(&count, "n", "n", 10, "number of profiles")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&withReports, "reports", false, "also archive a template report per profile")
	return cmd
}

func runSeed(ctx context.Context, count int, seed int64, withReports bool) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	composer := report.NewComposer()
	start := time.Now()
	for i, rec := range fixture.Generate(seed, count) {
		rec := rec
		id, err := st.PutProfile(ctx, &rec)
		if err != nil {
			return fmt.Errorf("profile %d: %w", i, err)
		}
		fmt.Println(id)

		if !withReports {
			continue
		}
		rep, err := composer.ComposeReport(ctx, report.Input{
			ProfileID:   id,
			Profile:     &rec.Profile,
			Competitors: rec.Competitors,
			Plan:        budget.DefaultPlan(),
		})
		if err != nil {
			return fmt.Errorf("report %d: %w", i, err)
		}
		data, err := json.Marshal(rep)
		if err != nil {
			return err
		}
		if _, err := st.SaveReport(ctx, &models.SavedReport{InputID: id, Report: data, Location: rec.Profile.Location}); err != nil {
			return fmt.Errorf("save report %d: %w", i, err)
		}
	}

	log.Info().Int("profiles", count).Int64("seed", seed).Str("store", cfg.Store.Driver).
		Dur("duration", time.Since(start)).Msg("seed completed")
	return nil
}

// archive stores rep as a saved report snapshot.
func archive(ctx context.Context, cfg *config.Config, rep *report.Report) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	id, err := st.SaveReport(ctx, &models.SavedReport{InputID: rep.ProfileID, Report: data, Location: rep.Profile.Location})
	if err != nil {
		return err
	}
	log.Info().Str("id", id).Msg("report archived")
	return nil
}
