package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/festhub/eventhub/pkg/client"
)

func newTicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ticket",
		Aliases: []string{"tickets"},
		Short:   "Book and manage tickets",
	}

	cmd.AddCommand(newTicketListCmd())
	cmd.AddCommand(newTicketGetCmd())
	cmd.AddCommand(newTicketBookCmd())
	cmd.AddCommand(newTicketCancelCmd())

	return cmd
}

func newTicketListCmd() *cobra.Command {
	var user int64
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if mine {
				if err := requireAuth(); err != nil {
					return err
				}
				me, err := apiClient.GetCurrentUser(ctx)
				if err != nil {
					return fmt.Errorf("failed to get user info: %w", err)
				}
				user = me.ID
			}

			var tickets []client.Ticket
			var err error
			if user > 0 {
				tickets, err = apiClient.Tickets().ListByUser(ctx, user)
			} else {
				tickets, err = apiClient.Tickets().List(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list tickets: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(tickets)
			}

			t := NewTable("ID", "EVENT", "WHEN", "NAME", "COUNT", "PRICE")
			for _, tk := range tickets {
				t.AddRow(
					strconv.FormatInt(tk.ID, 10),
					truncate(tk.TicketDetails.EventName, 30),
					formatDate(tk.TicketDetails.EventDate, tk.TicketDetails.EventTime),
					tk.TicketDetails.Name,
					strconv.Itoa(tk.Count),
					formatRupees(tk.TicketDetails.TicketPrice),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().Int64Var(&user, "user", 0, "only tickets booked by this user ID")
	cmd.Flags().BoolVar(&mine, "mine", false, "only my tickets")

	return cmd
}

func newTicketGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			t, err := apiClient.Tickets().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get ticket: %w", err)
			}
			return printOutput(t)
		},
	}
}

func newTicketBookCmd() *cobra.Command {
	var name, email string
	var count int

	cmd := &cobra.Command{
		Use:   "book <event-id>",
		Short: "Book tickets for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}
			eventID, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, err := apiClient.Events().Get(ctx, eventID)
			if err != nil {
				return fmt.Errorf("failed to get event: %w", err)
			}

			if email == "" {
				email = viper.GetString("auth.email")
			}

			t, err := apiClient.Tickets().Create(ctx, client.CreateTicketRequest{
				EventID: eventID,
				TicketDetails: client.TicketDetails{
					Name:        name,
					Email:       email,
					EventName:   e.Title,
					EventDate:   e.EventDate,
					EventTime:   e.EventTime,
					TicketPrice: e.TicketPrice,
				},
				Count: count,
			})
			if err != nil {
				return fmt.Errorf("failed to book ticket: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(t)
			}
			fmt.Fprintf(out, "Booked ticket %d for %s\n", t.ID, e.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "attendee name")
	cmd.Flags().StringVar(&email, "email", "", "attendee email (default: logged in email)")
	cmd.Flags().IntVar(&count, "count", 1, "number of tickets")

	return cmd
}

func newTicketCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := apiClient.Tickets().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to cancel ticket: %w", err)
			}
			fmt.Fprintf(out, "Cancelled ticket %d\n", id)
			return nil
		},
	}
}
