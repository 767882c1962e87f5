package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func channelsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List registered notification channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			channels := e.registry.Channels()
			if len(channels) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No channels registered.")
				return nil
			}

			header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
			cell := lipgloss.NewStyle().Padding(0, 1)

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				Headers("ID", "NAME", "IMPORTANCE", "CREATED").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return header
					}
					return cell
				})
			for _, ch := range channels {
				t.Row(ch.ID, ch.Name, string(ch.Importance), ch.CreatedAt.Format("2006-01-02 15:04"))
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}
