package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// creates and returns the "history" command
func historyCmd(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List releases previously made from this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			releases, err := props.History.List()

			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(releases) == 0 {
				fmt.Fprintln(out, "No releases recorded yet")
				return nil
			}

			for _, r := range releases {
				fmt.Fprintf(
					out,
					"%s  %s -> %s  %s/%s  %s\n",
					r.Tag,
					r.PreviousVersion,
					r.Version,
					r.Remote,
					r.Branch,
					r.CreatedAt.Format("2006-01-02 15:04"),
				)
			}

			return nil
		},
	}

	return cmd
}
