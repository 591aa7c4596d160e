package repo

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	r := initRepoAt(t)

	// Remove the config written by init to exercise the missing-file path.
	require.NoError(t, os.Remove(r.configPath()))

	cfg, err := r.ReadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.UI.Color)
	assert.Zero(t, cfg.Log.MaxEntries)
	assert.Empty(t, cfg.Signing.Key)
}

func TestConfigRoundTrip(t *testing.T) {
	r := initRepoAt(t)

	want := &Config{
		Log:     LogConfig{MaxEntries: 25},
		UI:      UIConfig{Color: false},
		Signing: SigningConfig{Key: "~/.ssh/id_ed25519"},
	}
	require.NoError(t, r.WriteConfig(want))

	got, err := r.ReadConfig()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInitWritesDefaultConfig(t *testing.T) {
	r := initRepoAt(t)
	cfg, err := r.ReadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
