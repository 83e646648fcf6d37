package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"seotda-server/internal/util"
)

// Config provides configuration for the seotda server
type Config struct {
	loaded   bool
	Addr     string `yaml:"addr"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level"`
		Format            string `yaml:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" split_words:"true"`
	} `yaml:"log"`
	Game Game `yaml:"game"`
}

// Game configures the games played in every room
type Game struct {
	BaseStake int `yaml:"baseStake" split_words:"true"`
	// StartGameDelay is in seconds
	StartGameDelay int `yaml:"startGameDelay" split_words:"true"`
	// TurnTimeout is in seconds, zero disables it
	TurnTimeout     int `yaml:"turnTimeout" split_words:"true"`
	WinnerExp       int `yaml:"winnerExp" split_words:"true"`
	LoserExp        int `yaml:"loserExp" split_words:"true"`
	ExpPerLevel     int `yaml:"expPerLevel" split_words:"true"`
	StartingBalance int `yaml:"startingBalance" split_words:"true"`
}

// StartGameDelayDuration returns the start game delay as a duration
func (g Game) StartGameDelayDuration() time.Duration {
	return time.Duration(g.StartGameDelay) * time.Second
}

// TurnTimeoutDuration returns the turn timeout as a duration
func (g Game) TurnTimeoutDuration() time.Duration {
	return time.Duration(g.TurnTimeout) * time.Second
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	var c Config
	c.Addr = ":5000"
	c.Database.Driver = "sqlite"
	c.Database.DSN = "file:seotda.db"
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Game = Game{
		BaseStake:       100,
		WinnerExp:       100,
		LoserExp:        30,
		ExpPerLevel:     1000,
		StartingBalance: 10000,
	}

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The config file is optional, environment variables prefixed with SEOTDA_ take precedence
func Load() error {
	c := DefaultConfig()

	configFile := util.Getenv("SEOTDA_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	if err := envconfig.Process("seotda", &c); err != nil {
		return err
	}

	c.loaded = true
	config = c
	return nil
}
