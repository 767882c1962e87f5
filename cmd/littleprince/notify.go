package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"littleprince/internal/daypart"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func notifyCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "notify <morning|day|evening|night>",
		Short:     "Post the notification for one time of day",
		Long:      "Post the notification for one time of day without starting the interface. If littleprince never asked for permission, it asks now.",
		Example:   "  littleprince notify day",
		Args:      cobra.ExactArgs(1),
		ValidArgs: selectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := daypart.ParseSelection(args[0])
			if err != nil {
				return fmt.Errorf("%w (want one of %s)", err, strings.Join(selectionNames(), ", "))
			}

			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			e.dispatcher.SetPrompter(confirmPrompter{})
			e.dispatcher.CheckAndRequestPermission()

			if !e.dispatcher.Granted() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Notifications are %s; nothing was shown.\n", e.dispatcher.PermissionState())
				return nil
			}
			if !e.cfg.Notifications.Enabled {
				fmt.Fprintln(cmd.ErrOrStderr(), "Notifications are disabled in the config; nothing was shown.")
				return nil
			}
			if !e.dispatcher.Notify(s) {
				fmt.Fprintf(cmd.ErrOrStderr(), "The %s notification was not shown; see %s.\n", s, e.cfg.GetLogFile())
				return nil
			}

			c := s.Content()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.Title, c.Body)
			return nil
		},
	}
}

func selectionNames() []string {
	all := daypart.All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.String()
	}
	return names
}

// confirmPrompter asks for the notification permission on the terminal.
type confirmPrompter struct{}

func (confirmPrompter) RequestPermission(answer func(granted bool)) {
	allow := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Allow littleprince to send you notifications?").
				Description("A notification is shown each time you pick a time of day.").
				Affirmative("Allow").
				Negative("Don't allow").
				Value(&allow),
		),
	)
	if err := form.Run(); err != nil {
		// An aborted prompt counts as a refusal.
		if !errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintf(os.Stderr, "Permission prompt failed: %v\n", err)
		}
		allow = false
	}
	answer(allow)
}
