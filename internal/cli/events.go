package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/festhub/eventhub/pkg/client"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events"},
		Short:   "Browse and manage events",
	}

	cmd.AddCommand(newEventListCmd())
	cmd.AddCommand(newEventGetCmd())
	cmd.AddCommand(newEventCreateCmd())
	cmd.AddCommand(newEventUpdateCmd())
	cmd.AddCommand(newEventDeleteCmd())
	cmd.AddCommand(newEventLikeCmd())
	cmd.AddCommand(newEventCommentCmd())

	return cmd
}

func newEventListCmd() *cobra.Command {
	var category string
	var owner int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.EventListOptions{Category: category}
			if owner > 0 {
				opts.OwnerID = &owner
			}

			events, err := apiClient.Events().List(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(events)
			}

			t := NewTable("ID", "TITLE", "CATEGORY", "WHEN", "PRICE", "LIKES")
			for _, e := range events {
				t.AddRow(
					strconv.FormatInt(e.ID, 10),
					truncate(e.Title, 40),
					e.Category,
					formatDate(e.EventDate, e.EventTime),
					formatRupees(e.TicketPrice),
					strconv.Itoa(e.Likes),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().Int64Var(&owner, "owner", 0, "filter by owner user ID")

	return cmd
}

func newEventGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			e, err := apiClient.Events().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get event: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(e)
			}
			printEvent(e)
			return nil
		},
	}
}

// eventFlags binds the editable event fields to cmd's flags
func eventFlags(cmd *cobra.Command, in *client.EventInput) {
	cmd.Flags().StringVar(&in.Title, "title", "", "event title")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	cmd.Flags().StringVar(&in.OrganizedBy, "organized-by", "", "organizer name")
	cmd.Flags().StringVar(&in.EventDate, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.EventTime, "time", "", "time (18:30 or 6:30 PM)")
	cmd.Flags().StringVar(&in.Location, "location", "", "venue")
	cmd.Flags().StringVar(&in.Category, "category", "", "category, e.g. Concert")
	cmd.Flags().Float64Var(&in.TicketPrice, "ticket-price", 0, "ticket price")
	cmd.Flags().IntVar(&in.Quantity, "quantity", 0, "tickets available")
	cmd.Flags().Float64Var(&in.EstimatedCost, "estimated-cost", 0, "estimated cost of organizing")
}

func newEventCreateCmd() *cobra.Command {
	var in client.EventInput
	var imagePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new event",
		RunE: func(cmd *cobra.Command, args []string) error {
			var image *client.Image
			if imagePath != "" {
				f, err := os.Open(imagePath)
				if err != nil {
					return fmt.Errorf("failed to open image: %w", err)
				}
				defer f.Close()
				image = &client.Image{Filename: filepath.Base(imagePath), Body: f}
			}

			e, err := apiClient.Events().Create(cmd.Context(), in, image)
			if err != nil {
				return fmt.Errorf("failed to create event: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(e)
			}
			fmt.Fprintf(out, "Created event %d: %s\n", e.ID, e.Title)
			return nil
		},
	}

	eventFlags(cmd, &in)
	cmd.Flags().StringVar(&imagePath, "image", "", "cover image file")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newEventUpdateCmd() *cobra.Command {
	var in client.EventInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the details of an event you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			e, err := apiClient.Events().Update(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("failed to update event: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(e)
			}
			fmt.Fprintf(out, "Updated event %d\n", e.ID)
			return nil
		},
	}

	eventFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newEventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			if err := apiClient.Events().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete event: %w", err)
			}
			fmt.Fprintf(out, "Deleted event %d\n", id)
			return nil
		},
	}
}

func newEventLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>",
		Short: "Like an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			e, err := apiClient.Events().Like(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to like event: %w", err)
			}
			fmt.Fprintf(out, "%s now has %d likes\n", e.Title, e.Likes)
			return nil
		},
	}
}

func newEventCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Comment on an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			e, err := apiClient.Events().Comment(cmd.Context(), id, args[1])
			if err != nil {
				return fmt.Errorf("failed to comment: %w", err)
			}
			fmt.Fprintf(out, "%s has %d comments\n", e.Title, len(e.Comments))
			return nil
		},
	}
}

func printEvent(e *client.Event) {
	fmt.Fprintf(out, "ID:          %d\n", e.ID)
	fmt.Fprintf(out, "Title:       %s\n", e.Title)
	if e.OrganizedBy != "" {
		fmt.Fprintf(out, "Organizer:   %s\n", e.OrganizedBy)
	}
	fmt.Fprintf(out, "When:        %s\n", formatDate(e.EventDate, e.EventTime))
	fmt.Fprintf(out, "Where:       %s\n", e.Location)
	if e.Category != "" {
		fmt.Fprintf(out, "Category:    %s\n", e.Category)
	}
	fmt.Fprintf(out, "Price:       %s\n", formatRupees(e.TicketPrice))
	fmt.Fprintf(out, "Quantity:    %d\n", e.Quantity)
	fmt.Fprintf(out, "Likes:       %d\n", e.Likes)
	if e.Description != "" {
		fmt.Fprintf(out, "\n%s\n", e.Description)
	}
	for _, c := range e.Comments {
		fmt.Fprintf(out, "  - %s\n", c)
	}
}

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}
