package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/festhub/eventhub/pkg/client"
)

func newRecommendCmd() *cobra.Command {
	var budget, minPopularity float64
	var minEvents int
	var types []string

	cmd := &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"rec"},
		Short:   "Ask which events to organize within a budget",
		Example: `  eventhub recommend --budget 50000 --min-events 2 --type Concert --type Workshop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.RecommendationRequest{
				Budget:     budget,
				EventTypes: types,
			}
			if cmd.Flags().Changed("min-events") {
				req.MinEvents = &minEvents
			}
			if cmd.Flags().Changed("min-popularity") {
				req.MinPopularity = &minPopularity
			}

			rec, err := apiClient.Recommendations().Recommend(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("recommendation failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(rec)
			}

			if rec.Message != "" {
				fmt.Fprintln(out, rec.Message)
				return nil
			}

			t := NewTable("EVENT", "TYPE", "COST", "SCORE", "WHY")
			for _, e := range rec.SelectedEvents {
				t.AddRow(
					truncate(e.Event, 30),
					e.Type,
					formatRupees(e.Cost),
					strconv.FormatFloat(e.EngagementScore, 'f', 3, 64),
					truncate(e.Explanation, 60),
				)
			}
			t.Render()

			fmt.Fprintf(out, "\n%d event(s), total %s of %s\n",
				rec.EventsSelected, formatRupees(rec.TotalEstimatedCost), formatRupees(rec.Budget))
			return nil
		},
	}

	cmd.Flags().Float64Var(&budget, "budget", 0, "total budget")
	cmd.Flags().IntVar(&minEvents, "min-events", 0, "minimum number of events")
	cmd.Flags().StringSliceVar(&types, "type", nil, "event type to consider (repeatable)")
	cmd.Flags().Float64Var(&minPopularity, "min-popularity", 0, "minimum popularity (0-10)")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}
