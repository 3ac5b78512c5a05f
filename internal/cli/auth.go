package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/festhub/eventhub/pkg/client"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthRefreshCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			resp, err := apiClient.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := saveSession(resp); err != nil {
				return err
			}

			name := email
			if resp.User != nil && resp.User.Name != "" {
				name = resp.User.Name
			}
			fmt.Printf("Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = promptInput("Name: ")
			}
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
				confirm := promptPassword("Confirm password: ")
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			resp, err := apiClient.Register(cmd.Context(), client.RegisterRequest{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			if err := saveSession(resp); err != nil {
				return err
			}

			fmt.Printf("Account created. Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Server side logout only clears cookies, so a failure here is not fatal
			if apiClient.GetToken() != "" {
				_ = apiClient.Logout(cmd.Context())
			}

			viper.Set("auth.token", "")
			viper.Set("auth.refresh_token", "")
			viper.Set("auth.email", "")

			if _, err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			fmt.Println("Logged out successfully")
			return nil
		},
	}
}

func newAuthRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored refresh token for a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh := viper.GetString("auth.refresh_token")
			if refresh == "" {
				return fmt.Errorf("no refresh token stored. Run 'eventhub auth login' first")
			}

			resp, err := apiClient.RefreshToken(cmd.Context(), refresh)
			if err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}
			if err := saveSession(resp); err != nil {
				return err
			}

			fmt.Println("Session refreshed")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			user, err := apiClient.GetCurrentUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(user)
			}

			fmt.Fprintf(out, "Name:   %s\n", user.Name)
			fmt.Fprintf(out, "Email:  %s\n", user.Email)
			if user.Role != "" {
				fmt.Fprintf(out, "Role:   %s\n", user.Role)
			}
			fmt.Fprintf(out, "ID:     %d\n", user.ID)
			return nil
		},
	}
}

func saveSession(resp *client.LoginResponse) error {
	viper.Set("auth.token", resp.AccessToken)
	if resp.RefreshToken != "" {
		viper.Set("auth.refresh_token", resp.RefreshToken)
	}
	if resp.User != nil {
		viper.Set("auth.email", resp.User.Email)
	}

	if _, err := writeConfig(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(password)
}
