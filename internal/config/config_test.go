package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-manager/internal/common"
	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/storage"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, storage.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join("/data", "money", "money.db"), cfg.Storage.Path)
	assert.Equal(t, ledger.CascadeDirect, cfg.Ledger.Cascade)
	assert.True(t, cfg.Ledger.Seed)
	assert.Equal(t, "INR", cfg.Display.Currency)
	assert.Equal(t, "en-IN", cfg.Display.Locale)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadOverrides(t *testing.T) {
	v := newViper()
	v.Set("storage.backend", "File")
	v.Set("storage.path", "$MONEY_TEST_DIR/state")
	v.Set("ledger.cascade", "subtree")
	v.Set("ledger.seed", false)
	v.Set("display.currency", "usd")
	t.Setenv("MONEY_TEST_DIR", "/tmp/money")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, storage.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/money/state", cfg.Storage.Path)
	assert.Equal(t, ledger.CascadeSubtree, cfg.Ledger.Cascade)
	assert.False(t, cfg.Ledger.Seed)
	assert.Equal(t, "USD", cfg.Display.Currency)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MONEY_STORAGE_BACKEND", "memory")
	t.Setenv("MONEY_LEDGER_CASCADE", "subtree")

	v := newViper()
	BindEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, storage.BackendMemory, cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, ledger.CascadeSubtree, cfg.Ledger.Cascade)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		want  error
		name  string
		key   string
		value string
	}{
		{name: "unknown backend", key: "storage.backend", value: "postgres", want: common.ErrInvalidConfig},
		{name: "unknown cascade", key: "ledger.cascade", value: "everything", want: common.ErrInvalidConfig},
		{name: "blank currency", key: "display.currency", value: " ", want: common.ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MONEY_DOTENV_CHECK=from-file\nMONEY_DOTENV_KEEP=from-file\n"), 0600))

	t.Setenv("MONEY_DOTENV_KEEP", "from-env")
	// t.Setenv restores the previous value; clear the other key explicitly.
	t.Setenv("MONEY_DOTENV_CHECK", "")
	require.NoError(t, os.Unsetenv("MONEY_DOTENV_CHECK"))

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "from-file", os.Getenv("MONEY_DOTENV_CHECK"))
	assert.Equal(t, "from-env", os.Getenv("MONEY_DOTENV_KEEP"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("MONEY_EXPAND", "value")

	tests := map[string]string{
		"":              "",
		"~":             home,
		"~/data":        filepath.Join(home, "data"),
		"$MONEY_EXPAND": "value",
		"/abs/path":     "/abs/path",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExpandPath(in), "ExpandPath(%q)", in)
	}
}
