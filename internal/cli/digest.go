package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phishwise/phishwise/internal/news"
	"github.com/phishwise/phishwise/internal/tui"
)

var (
	digestLatest bool
	digestJSON   bool
)

var digestCmd = &cobra.Command{
	Use:   "digest [yyyy-mm-dd]",
	Short: "Fetch one digest and print it",
	Long: "Fetches the digest for the given date, or today's when no date is given.\n" +
		"When today's digest has not been published yet, falls back to the latest one.",
	Args: cobra.MaximumNArgs(1),
	RunE: digestAction,
}

func init() {
	digestCmd.Flags().BoolVar(&digestLatest, "latest", false, "fetch the most recently published digest")
	digestCmd.Flags().BoolVar(&digestJSON, "json", false, "print the raw digest as JSON")
	rootCmd.AddCommand(digestCmd)
}

func digestAction(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if digestLatest && len(args) > 0 {
		return fmt.Errorf("--latest and an explicit date are mutually exclusive")
	}

	client := news.NewClient(cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var digest *news.Digest
	switch {
	case digestLatest:
		digest, err = client.FetchLatest(ctx)
	case len(args) == 1:
		var date news.Date
		date, err = news.ParseDate(args[0])
		if err != nil {
			return err
		}
		digest, err = client.FetchDigest(ctx, date)
	default:
		digest, err = client.FetchToday(ctx)
		if errors.Is(err, news.ErrNotFound) {
			// Today's digest is not out yet; show the latest instead.
			fmt.Fprintln(os.Stderr, tui.MsgTodayPending+", showing the latest one")
			digest, err = client.FetchLatest(ctx)
		}
	}
	if err != nil {
		return errors.New(news.Message(err))
	}

	if digestJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(digest)
	}

	printDigest(digest)
	return nil
}

func printDigest(d *news.Digest) {
	title := lipgloss.NewStyle().Bold(true).Foreground(tui.PrimaryColor)
	meta := lipgloss.NewStyle().Foreground(tui.MutedColor)
	source := lipgloss.NewStyle().Foreground(tui.AccentColor)

	fmt.Println(title.Render("phishing digest — " + d.Date.String()))
	if d.Summary != "" {
		fmt.Println(d.Summary)
	}
	fmt.Println()

	for _, a := range d.SortedArticles() {
		fmt.Println(title.Render("• " + a.Title))
		fmt.Println("  " + source.Render(a.Source) + " " + meta.Render(a.FormattedDate()))
		if a.Description != "" {
			fmt.Println("  " + a.Description)
		}
		if a.Link != "" {
			fmt.Println("  " + meta.Render(a.Link))
		}
		fmt.Println()
	}
}
