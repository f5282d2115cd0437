package commands

import (
	"fmt"
	"os/exec"
	"strings"

	app_info "github.com/relkit/release/internal/app-info"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version info for this tool and its collaborators",
		Run: func(cmd *cobra.Command, args []string) {
			gitVersion, _ := exec.Command("git", "--version").Output()
			npmVersion, _ := exec.Command("npm", "--version").Output()

			fmt.Printf(
				"%s: %s\n%s\nnpm version %s\n",
				app_info.NAME,
				app_info.VERSION,
				strings.TrimSpace(string(gitVersion)),
				strings.TrimSpace(string(npmVersion)),
			)
		},
	}

	return cmd
}
