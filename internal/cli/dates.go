package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phishwise/phishwise/internal/news"
)

var datesLimit int

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List the dates for which digests exist",
	RunE:  datesAction,
}

func init() {
	datesCmd.Flags().IntVar(&datesLimit, "limit", 0, "maximum number of entries (capped at 50)")
	rootCmd.AddCommand(datesCmd)
}

func datesAction(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := news.NewClient(cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	list, err := client.ListDigests(ctx, datesLimit)
	if err != nil {
		return fmt.Errorf("%s", news.Message(err))
	}

	for _, s := range list.Digests {
		fmt.Printf("%s  %3d articles, %2d sources\n", s.Date, s.ArticleCount, s.SourceCount)
	}
	return nil
}
