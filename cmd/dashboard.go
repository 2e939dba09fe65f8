package cmd

import (
	"fmt"

	"github.com/rogersnm/dolphin/internal/markdown"
	"github.com/rogersnm/dolphin/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show content totals and the latest reviews",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		n := termNotifier{&lockedWriter{w: cmd.ErrOrStderr()}}
		stats := []markdown.Stat{
			{Label: "Total Reviews"},
			{Label: "Total Services"},
			{Label: "Total FAQs"},
		}
		var reviews []model.Review

		// A failed collection shows as "-"; the others still render.
		var g errgroup.Group
		g.Go(func() error {
			list, err := reviewsResource.newStore(n).List(ctx)
			reviews = list
			stats[0].Count, stats[0].Loaded = len(list), err == nil
			return err
		})
		g.Go(func() error {
			list, err := servicesResource.newStore(n).List(ctx)
			stats[1].Count, stats[1].Loaded = len(list), err == nil
			return err
		})
		g.Go(func() error {
			list, err := faqsResource.newStore(n).List(ctx)
			stats[2].Count, stats[2].Loaded = len(list), err == nil
			return err
		})
		err := g.Wait()

		fmt.Fprint(cmd.OutOrStdout(), markdown.RenderDashboard(stats, reviews))
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
