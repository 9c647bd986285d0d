// Package cli provides the command-line interface for phishwise.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/phishwise/phishwise/internal/cache"
	"github.com/phishwise/phishwise/internal/config"
	"github.com/phishwise/phishwise/internal/debuglog"
	"github.com/phishwise/phishwise/internal/engine"
	"github.com/phishwise/phishwise/internal/news"
	"github.com/phishwise/phishwise/internal/tui"
	"github.com/phishwise/phishwise/internal/validation"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var (
	configPath string
	baseURL    string
)

var rootCmd = &cobra.Command{
	Use:   "phishwise",
	Short: "A terminal reader for the daily phishing-news digest",
	Long: "phishwise fetches the daily phishing-news digest, keeps a per-day cache warm,\n" +
		"and degrades to cached copies when the network or the service misbehaves.\n" +
		"Run without arguments for the interactive reader.",
	SilenceUsage: true,
	RunE:         runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("phishwise %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the API base URL")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads configuration, applies flag overrides, validates the API
// endpoint, and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	normalized, err := validation.ValidateBaseURL(cfg.API.BaseURL)
	if err != nil {
		return nil, err
	}
	cfg.API.BaseURL = normalized

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		return nil, err
	}

	return cfg, nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	client := news.NewClient(cfg)
	eng := engine.New(client, cache.NewStore(), cfg.API.ListLimit)

	app := tui.NewApp(eng, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// The engine pushes every observable transition into the update loop;
	// the TUI itself never polls.
	eng.Notify(func(s engine.Snapshot) {
		p.Send(tui.SnapshotMsg(s))
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
