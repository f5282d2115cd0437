package commands

import (
	"os"

	"github.com/relkit/release/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/**
 * Command to remove the history database and log files
 */
func clear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clears release history and log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			dbFile, ok := viper.Get("database-file").(string)

			if ok && dbFile != "" {
				if err := os.RemoveAll(dbFile); err != nil {
					return err
				}
				log.Info().Msg("removed history database")
			}

			logFile, ok := viper.Get("log-file").(string)

			if ok && logFile != "" {
				if err := os.RemoveAll(logFile); err != nil {
					return err
				}
				log.Info().Msg("removed log file")
			}

			return nil
		},
	}

	return cmd
}
