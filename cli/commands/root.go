package commands

import (
	"errors"
	"fmt"

	"github.com/relkit/release/internal/config"
	"github.com/relkit/release/internal/history"
	"github.com/relkit/release/internal/manifest"
	"github.com/relkit/release/internal/release"
	"github.com/relkit/release/internal/vcs"
	"github.com/relkit/release/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	Conf     config.Config
	VCS      vcs.VersionControl
	Manifest manifest.Store
	History  history.Service
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool
	var dryRun bool
	var remote string
	var manifestPath string

	cmd := &cobra.Command{
		Use:           "release [patch|minor|major|x.y.z]",
		Short:         "Bump the project version, tag it, and push the release",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			conf := props.Conf

			if remote != "" {
				conf.Remote = remote
			}

			manifestStore := props.Manifest

			if manifestPath != "" {
				conf.Manifest = manifestPath
				manifestStore = manifest.NewNPM(manifestPath)
			}

			if len(args) == 0 {
				current, err := manifestStore.Version()

				if err != nil {
					return err
				}

				fmt.Fprintf(out, "Current version: %s\n\n", current)
				fmt.Fprintln(out, "Examples:")
				fmt.Fprintln(out, "  release patch")
				fmt.Fprintln(out, "  release minor")
				fmt.Fprintln(out, "  release 2.0.0")

				return errors.New("version argument required")
			}

			target, err := version.ParseTarget(args[0])

			if err != nil {
				return err
			}

			prompter := release.NewStdinPrompter(cmd.InOrStdin(), out)

			service := release.NewService(
				conf,
				props.VCS,
				manifestStore,
				props.History,
				prompter,
				out,
			)

			return service.Run(cmd.Context(), release.Request{
				Target: target,
				DryRun: dryRun,
			})
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the release plan without changing anything")
	cmd.Flags().StringVar(&remote, "remote", "", "push to this remote instead of the configured one")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to the manifest instead of the configured one")

	cmd.AddCommand(versionCmd())
	cmd.AddCommand(historyCmd(props))
	cmd.AddCommand(clear())

	return cmd
}
