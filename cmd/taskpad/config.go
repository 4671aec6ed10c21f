package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskpad-dev/taskpad/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the effective configuration.

Configuration is read from ~/.config/taskpad/config.yaml, with
project-level overrides from a .taskpad.config.yaml in the current
directory or a parent, and environment variables on top.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		apiKeyDisplay := "(not set)"
		if cfg.Anthropic.APIKey != "" {
			apiKeyDisplay = "****"
		}

		baseDir := cfg.BaseDir
		if baseDir == "" {
			baseDir = "(current directory)"
		}

		fmt.Printf("base_dir: %s\n", baseDir)
		fmt.Printf("color: %t\n", cfg.Color)
		fmt.Printf("anthropic.api_key: %s\n", apiKeyDisplay)
		fmt.Printf("suggest.model: %s\n", cfg.Suggest.Model)
		fmt.Printf("suggest.max_tokens: %d\n", cfg.Suggest.MaxTokens)
		fmt.Printf("suggest.use_bedrock: %t\n", cfg.Suggest.UseBedrock)
		fmt.Printf("\nUser config file: %s\n", config.GetUserConfigPath())
		return nil
	},
}
