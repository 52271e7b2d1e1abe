package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hagwon_strategy/pkg/core/llm"
)

func listModelsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "listmodels",
		Short: "List the Gemini models visible to the configured key",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			env := "GEMINI_API_KEY"
			if pc, ok := cfg.LLM.Providers["gemini"]; ok && pc.APIKeyEnv != "" {
				env = pc.APIKeyEnv
			}
			models, err := llm.ListGeminiModels(cmd.Context(), os.Getenv(env), !all)
			if err != nil {
				return err
			}
			for _, m := range models {
				fmt.Printf("%-45s %-30s %s\n", m.Name, m.DisplayName, strings.Join(m.Methods, ","))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include models without generateContent")
	return cmd
}
