package config

import (
	"os"

	"github.com/imdario/mergo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Messages represents the commit and tag message formats used when
// releasing. Both are passed through fmt with the new version as the
// only argument.
type Messages struct {
	Commit string `yaml:"commit"`
	Tag    string `yaml:"tag"`
}

// Config represents the data structure of our user provided yaml
// configuration. Branch is the branch to push when releasing; when
// unset the checked out branch is used.
type Config struct {
	Remote   string   `yaml:"remote"`
	Branch   string   `yaml:"branch"`
	Manifest string   `yaml:"manifest"`
	Messages Messages `yaml:"messages"`
}

// Default returns the configuration used when no user config exists
func Default() *Config {
	return &Config{
		Remote:   "origin",
		Manifest: "package.json",
		Messages: Messages{
			Commit: "chore: bump version to %s",
			Tag:    "Release v%s",
		},
	}
}

// New returns the unmarshaled user config with defaults merged in for
// any field the user left unset
func New(confPath string) (*Config, error) {
	var config Config

	raw, err := os.ReadFile(confPath)

	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&config, *Default()); err != nil {
		return nil, err
	}

	return &config, nil
}

// Write persists a config to the user config path
func Write(conf Config) error {
	configFile := viper.Get("config-path").(string)

	file, err := os.Create(configFile)

	if err != nil {
		return err
	}

	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	return encoder.Encode(conf)
}
