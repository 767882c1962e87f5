package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func permissionCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permission",
		Short: "Show or change the notification permission",
		Long:  "Show or change whether littleprince may post notifications. Without a subcommand the current state is shown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPermission(cmd, *configPath)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the notification permission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPermission(cmd, *configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "grant",
		Short: "Allow notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPermission(cmd, *configPath, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "revoke",
		Aliases: []string{"deny"},
		Short:   "Stop notifications",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPermission(cmd, *configPath, false)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the answer so littleprince asks again on next start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.registry.ResetPermission(); err != nil {
				return fmt.Errorf("reset permission: %w", err)
			}
			e.log.Info("notification permission reset")
			fmt.Fprintln(cmd.OutOrStdout(), "Permission reset; you will be asked on next start.")
			return nil
		},
	})

	return cmd
}

func showPermission(cmd *cobra.Command, configPath string) error {
	e, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "permission: %s\n", e.registry.Permission())
	fmt.Fprintf(out, "asked:      %t\n", e.registry.Prompted())
	if !e.cfg.Notifications.RequirePermission {
		fmt.Fprintln(out, "(not required by config; notifications are always allowed)")
	}
	fmt.Fprintf(out, "registry:   %s\n", e.registry.Path())
	return nil
}

func setPermission(cmd *cobra.Command, configPath string, granted bool) error {
	e, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.registry.SetPermission(granted); err != nil {
		return fmt.Errorf("set permission: %w", err)
	}
	// An explicit answer counts as having been asked.
	if err := e.registry.MarkPrompted(); err != nil {
		return fmt.Errorf("set permission: %w", err)
	}
	e.log.Info("notification permission changed", "granted", granted)
	fmt.Fprintf(cmd.OutOrStdout(), "permission: %s\n", e.registry.Permission())
	return nil
}
