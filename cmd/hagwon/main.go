package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"hagwon_strategy/pkg/core/config"
	"hagwon_strategy/pkg/core/logging"
	"hagwon_strategy/pkg/core/prompt"
	"hagwon_strategy/pkg/core/store"
)

var configPath string

func main() {
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "hagwon",
		Short:         "Academy strategy report tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/app.yaml", "config file")

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(listModelsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setup loads config and configures logging and prompts.
func setup() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Console)
	if _, err := prompt.Get().LoadFromDirectory(cfg.PromptsDir); err != nil {
		log.Warn().Err(err).Msg("prompt library not loaded, using built-in prompts")
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	return store.Open(ctx, store.Options{
		Driver:      cfg.Store.Driver,
		BadgerDir:   cfg.Store.BadgerDir,
		DatabaseURL: cfg.Store.DatabaseURL,
	})
}
