package main

import (
	"context"
	"errors"
	"os"
	"path"

	"github.com/relkit/release/cli/commands"
	app_info "github.com/relkit/release/internal/app-info"
	"github.com/relkit/release/internal/config"
	"github.com/relkit/release/internal/history"
	"github.com/relkit/release/internal/logger"
	"github.com/relkit/release/internal/manifest"
	"github.com/relkit/release/internal/vcs"
	"github.com/spf13/viper"
)

/**
 * Main entry point for all commands
 * Here we setup environment config via viper
 */

func setRunTimeConfig() error {
	userHomeDir, err := os.UserHomeDir()

	if err != nil {
		return err
	}

	configDir := path.Join(userHomeDir, ".config", app_info.NAME)

	if err := os.MkdirAll(configDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	userCacheDir, err := os.UserCacheDir()

	if err != nil {
		return err
	}

	cacheDir := path.Join(userCacheDir, app_info.NAME)

	if err := os.MkdirAll(cacheDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	logFile := path.Join(configDir, app_info.NAME+".log")

	configFile := path.Join(configDir, "config.yml")

	dbFile := path.Join(cacheDir, app_info.NAME+".db")

	// share run-time config globally using viper
	viper.Set("log-file", logFile)
	viper.Set("config-dir", configDir)
	viper.Set("config-path", configFile)
	viper.Set("cache-dir", cacheDir)
	viper.Set("database-file", dbFile)

	return nil
}

// Entry point for the cli
func main() {
	log := logger.New()

	err := setRunTimeConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	configFile := viper.Get("config-path").(string)

	conf, err := config.New(configFile)

	if err != nil {
		// first run: seed the config file with defaults
		conf = config.Default()

		if err := config.Write(*conf); err != nil {
			log.Debug().Err(err).Msg("failed to write default config")
		}
	}

	workDir, err := os.Getwd()

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	git := vcs.NewGit(workDir)

	manifestStore := manifest.NewNPM(path.Join(workDir, conf.Manifest))

	historyRepo, err := history.NewSqliteDatabase()

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	historyService := history.NewService(historyRepo)

	// Get the "root" cobra cli command
	cmd := commands.Root(&commands.CommandProps{
		Conf:     *conf,
		VCS:      git,
		Manifest: manifestStore,
		History:  historyService,
	})

	// Allows "grepping" of command output
	cmd.SetOutput(os.Stdout)

	// execute the cobra command and exit with error code if necessary
	err = cmd.ExecuteContext(context.Background())

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
