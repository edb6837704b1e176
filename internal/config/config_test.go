package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[registry]
name = "demo"

[frame]
tick_rate = "50ms"
max_frames = 10
`), "inline")
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Registry.Name)
	assert.Equal(t, 50*time.Millisecond, cfg.Frame.TickRate)
	assert.Equal(t, 10, cfg.Frame.MaxFrames)
	assert.Equal(t, "scripts", cfg.Data.Scripts, "unset keys keep their default")
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"zero tick":      "[frame]\ntick_rate = \"0s\"\n",
		"negative limit": "[frame]\nmax_frames = -1\n",
		"bad format":     "[logging]\nformat = \"xml\"\n",
		"bad toml":       "[frame\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), "inline")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecsreg.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\nformat = \"json\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().validate())
}
