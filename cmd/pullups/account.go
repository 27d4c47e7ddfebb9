// ABOUTME: CLI commands for signing in to and out of a pullups server.
// ABOUTME: Registers with the server and stores the issued token in auth.json.
package main

import (
	"fmt"

	"github.com/harperreed/pullups/internal/auth"
	"github.com/harperreed/pullups/internal/backend"
	"github.com/spf13/cobra"
)

var (
	loginServer string
	loginName   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Create an account on a pullups server",
	Long: `Register with a pullups server and sign this device in.

Guest counts on this device are not uploaded.

Examples:
  pullups login --server http://localhost:8080 --name harper`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noTracker: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginServer == "" {
			return fmt.Errorf("--server is required")
		}

		creds, err := auth.Load()
		if err != nil {
			return err
		}

		reg, err := backend.Register(cmd.Context(), loginServer, loginName, nil)
		if err != nil {
			return err
		}

		deviceID := creds.DeviceID
		if deviceID == "" {
			deviceID = auth.NewDeviceID()
		}
		creds = &auth.Credentials{
			Server:   loginServer,
			UserID:   reg.UserID,
			Token:    reg.Token,
			DeviceID: deviceID,
		}
		if err := auth.Save(creds); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		out := cmd.OutOrStdout()
		success(out, "Signed in to %s", loginServer)
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint("User:"), reg.UserID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "Sign this device out",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noTracker: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Clear(); err != nil {
			return fmt.Errorf("failed to remove credentials: %w", err)
		}
		success(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:         "whoami",
	Short:       "Show who this device is signed in as",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noTracker: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := auth.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !creds.IsAuthenticated() {
			fmt.Fprintln(out, "Guest (not signed in)")
			return nil
		}
		fmt.Fprintf(out, "%s %s\n", padRight("Server:", 8), creds.Server)
		fmt.Fprintf(out, "%s %s\n", padRight("User:", 8), creds.UserID)
		fmt.Fprintf(out, "%s %s\n", padRight("Device:", 8), creds.DeviceID)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginServer, "server", "s", "", "Server URL")
	loginCmd.Flags().StringVarP(&loginName, "name", "n", "", "Display name")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
