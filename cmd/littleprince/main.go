// Package main is the entry point for the littleprince application.
// It loads configuration, opens the host registry and the notifier, and
// starts the TUI or runs one of the subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "littleprince",
		Short: "Morning, day, evening and night on the little prince's planet",
		Long: `littleprince shows one of four times of day on the little prince's planet.
Picking a time of day changes the picture and posts a desktop notification
with the chore that belongs to it.

Data is kept in ~/.littleprince/ and the optional config file lives at
~/.config/littleprince/config.yaml.`,
		Example:       "  littleprince\n  littleprince notify evening\n  littleprince permission status",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer e.Close()
			return e.runTUI()
		},
	}

	rootCmd.Version = buildVersion()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/littleprince/config.yaml)")

	rootCmd.AddCommand(notifyCmd(&configPath))
	rootCmd.AddCommand(permissionCmd(&configPath))
	rootCmd.AddCommand(channelsCmd(&configPath))
	rootCmd.AddCommand(configCmd(&configPath))
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "littleprince version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
