package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"seotda-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("SEOTDA_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("SEOTDA_JWT_SECRET", "env-secret")
	defer clear2()
	clear3 := util.SetEnv("SEOTDA_GAME_WINNER_EXP", "250")
	defer clear3()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal(":6000", cfg.Addr)
	a.Equal("postgres", cfg.Database.Driver)
	a.Equal("env-secret", cfg.JWT.Secret)
	a.Equal("debug", cfg.Log.Level)
	a.True(cfg.Log.DisableAccessLogs)
	a.Equal(500, cfg.Game.BaseStake)
	a.Equal(250, cfg.Game.WinnerExp)
	a.Equal(30*time.Second, cfg.Game.TurnTimeoutDuration())

	// values not in the file keep their defaults
	a.Equal(30, cfg.Game.LoserExp)
	a.Equal(10000, cfg.Game.StartingBalance)

	// ensure that it's only loaded once
	_ = os.Setenv("SEOTDA_JWT_SECRET", "other-secret")
	// ensure we aren't using a pointer
	cfg.JWT.Secret = "bad"
	cfg = Instance()
	a.Equal("env-secret", cfg.JWT.Secret)
}

func TestLoad_missingFile(t *testing.T) {
	defer util.SetEnv("SEOTDA_CONFIG_FILE", "testdata/does-not-exist.yaml")()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, DefaultConfig().Addr, cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, time.Duration(0), cfg.Game.StartGameDelayDuration())
}

func TestLoad_invalidEnv(t *testing.T) {
	defer util.SetEnv("SEOTDA_CONFIG_FILE", "testdata/does-not-exist.yaml")()
	defer util.SetEnv("SEOTDA_GAME_BASE_STAKE", "lots")()

	assert.Error(t, Load())
}
