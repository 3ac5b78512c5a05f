package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server and session summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			summary := map[string]interface{}{
				"server": viper.GetString("server_url"),
			}
			if serverURL != "" {
				summary["server"] = serverURL
			}

			health, healthErr := apiClient.Health(ctx)
			if healthErr == nil {
				summary["status"] = health.Status
				summary["database"] = health.Database
			} else {
				summary["status"] = "unreachable"
			}

			events, eventsErr := apiClient.Events().List(ctx, nil)
			if eventsErr == nil {
				summary["events"] = len(events)
			}

			email := viper.GetString("auth.email")
			if apiClient.GetToken() != "" {
				summary["user"] = email
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			fmt.Fprintln(out, "EventHub Status")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			fmt.Fprintf(out, "  Server:    %v\n", summary["server"])
			if healthErr != nil {
				fmt.Fprintf(out, "  Health:    (error: %v)\n", healthErr)
			} else {
				fmt.Fprintf(out, "  Health:    %s (database %s)\n", health.Status, health.Database)
			}
			if eventsErr != nil {
				fmt.Fprintf(out, "  Events:    (error: %v)\n", eventsErr)
			} else {
				fmt.Fprintf(out, "  Events:    %d published\n", len(events))
			}
			if apiClient.GetToken() != "" {
				fmt.Fprintf(out, "  Session:   %s\n", email)
			} else {
				fmt.Fprintln(out, "  Session:   not logged in")
			}
			return nil
		},
	}
}
