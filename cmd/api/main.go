package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"

	apiConfig "hagwon_strategy/pkg/api/config"
	apiMarketing "hagwon_strategy/pkg/api/marketing"
	apiReport "hagwon_strategy/pkg/api/report"
	"hagwon_strategy/pkg/api/respond"
	apiSchool "hagwon_strategy/pkg/api/school"
	"hagwon_strategy/pkg/core/agent"
	"hagwon_strategy/pkg/core/config"
	"hagwon_strategy/pkg/core/logging"
	"hagwon_strategy/pkg/core/marketing"
	"hagwon_strategy/pkg/core/prompt"
	"hagwon_strategy/pkg/core/report"
	"hagwon_strategy/pkg/core/school"
	"hagwon_strategy/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load(envOr("HAGWON_CONFIG", "config/app.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Console)
	respond.AllowedOrigin = cfg.Server.AllowedOrigin

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prompt library: built-ins, overridden by files on disk
	if n, err := prompt.Get().LoadFromDirectory(cfg.PromptsDir); err != nil {
		log.Warn().Err(err).Str("dir", cfg.PromptsDir).Msg("prompt library not loaded, using built-in prompts")
	} else {
		log.Info().Int("loaded", n).Int("total", prompt.Get().Count()).Msg("prompt library ready")
	}

	st, err := store.Open(ctx, store.Options{
		Driver:      cfg.Store.Driver,
		BadgerDir:   cfg.Store.BadgerDir,
		DatabaseURL: cfg.Store.DatabaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open store")
	}
	defer st.Close()

	if m := store.NewMaintenance(st); m != nil {
		if err := m.Start(cfg.Store.Maintenance); err != nil {
			log.Fatal().Err(err).Msg("schedule store maintenance")
		}
		defer m.Stop()
	}

	agentMgr, err := agent.NewManager(cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("init text providers")
	}

	composer := report.NewComposer(
		report.WithGenerator(agentMgr.For("report")),
		report.WithTimeout(cfg.Timeout()),
	)
	planner := marketing.NewPlanner(agentMgr.For("marketing"), nil, cfg.Timeout())

	mux := http.NewServeMux()

	// Config endpoints
	configHandler := apiConfig.NewHandler(agentMgr)
	mux.HandleFunc("/api/config", configHandler.HandleConfig)
	mux.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Profiles, reports and the report archive
	reportHandler := apiReport.NewHandler(st, composer)
	mux.HandleFunc("/api/profiles", reportHandler.HandleProfiles)
	mux.HandleFunc("/api/report", reportHandler.HandleReport)
	mux.HandleFunc("/api/reports", reportHandler.HandleReports)
	mux.HandleFunc("/api/reports/item", reportHandler.HandleReportItem)

	// Budget simulator and marketing planner
	marketingHandler := apiMarketing.NewHandler(planner)
	mux.HandleFunc("/api/budget/simulate", marketingHandler.HandleSimulate)
	mux.HandleFunc("/api/budget/preset", marketingHandler.HandlePreset)
	mux.HandleFunc("/api/marketing/plan", marketingHandler.HandlePlan)
	mux.HandleFunc("/api/marketing/calendar", marketingHandler.HandleCalendar)
	mux.HandleFunc("/api/marketing/budget-feedback", marketingHandler.HandleBudgetFeedback)

	// School calendar (NEIS)
	schoolHandler := apiSchool.NewHandler(school.NewClient(cfg.NEIS.BaseURL, cfg.NEIS.APIKey()))
	mux.HandleFunc("/api/schools/search", schoolHandler.HandleSearch)
	mux.HandleFunc("/api/schools/schedule", schoolHandler.HandleSchedule)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("store", cfg.Store.Driver).
		Str("provider", agentMgr.GetActiveProvider()).
		Msg("API server starting")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server failed to start")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
