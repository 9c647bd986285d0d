package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phishwise/phishwise/internal/config"
)

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write a default configuration file",
	RunE: func(_ *cobra.Command, _ []string) error {
		path := configPath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolving home directory: %w", err)
			}
			path = filepath.Join(home, ".config", "phishwise", "config.toml")
		}

		if err := config.GenerateDefaultConfig(path); err != nil {
			return fmt.Errorf("generating config: %w", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateConfigCmd)
}
