package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TRAINER_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, 6, cfg.Rules.NumDecks)
	assert.InDelta(t, 0.75, cfg.Rules.Penetration, 1e-9)
	assert.False(t, cfg.Rules.DealerHitsSoft17)
	assert.Equal(t, int64(1000), cfg.Rules.StartingBankroll)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, filepath.Join(cfg.DataDir, "trainer.db"), cfg.SQLitePath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRAINER_DATA_DIR", t.TempDir())
	t.Setenv("TRAINER_STORAGE", StorageMemory)
	t.Setenv("TRAINER_DECKS", "2")
	t.Setenv("TRAINER_H17", "true")
	t.Setenv("TRAINER_MIN_BET", "25")
	t.Setenv("TRAINER_BANKROLL", "5000")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 2, cfg.Rules.NumDecks)
	assert.True(t, cfg.Rules.DealerHitsSoft17)
	assert.Equal(t, int64(25), cfg.Rules.MinBet)
	assert.Equal(t, int64(5000), cfg.Rules.StartingBankroll)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("TRAINER_DATA_DIR", t.TempDir())
	t.Setenv("TRAINER_STORAGE", "redis")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidRules(t *testing.T) {
	t.Setenv("TRAINER_DATA_DIR", t.TempDir())
	t.Setenv("TRAINER_DECKS", "20")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMalformedNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("TRAINER_DATA_DIR", t.TempDir())
	t.Setenv("TRAINER_DECKS", "six")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Rules.NumDecks)
}
