package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-manager/internal/common"
	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/storage"
)

// EnvPrefix namespaces environment overrides, e.g. MONEY_STORAGE_BACKEND.
const EnvPrefix = "MONEY"

// Config is the resolved application configuration.
type Config struct {
	Storage StorageConfig
	Display DisplayConfig
	Logging LoggingConfig
	Ledger  LedgerConfig
}

// StorageConfig selects the medium the finance state lives on.
type StorageConfig struct {
	Backend string
	Path    string
}

// LedgerConfig controls store behavior.
type LedgerConfig struct {
	Cascade ledger.CascadePolicy
	Seed    bool
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Currency string
	Locale   string
}

// LoggingConfig mirrors the --log-level and --log-format flags.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", storage.BackendSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("ledger.cascade", string(ledger.CascadeDirect))
	v.SetDefault("ledger.seed", true)
	v.SetDefault("display.currency", "INR")
	v.SetDefault("display.locale", "en-IN")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindEnv makes every key overridable from MONEY_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv reads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load resolves the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cascade, err := ledger.ParseCascadePolicy(v.GetString("ledger.cascade"))
	if err != nil {
		return nil, fmt.Errorf("ledger.cascade: %w", err)
	}

	cfg := &Config{
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("storage.backend"))),
			Path:    ExpandPath(v.GetString("storage.path")),
		},
		Ledger: LedgerConfig{
			Cascade: cascade,
			Seed:    v.GetBool("ledger.seed"),
		},
		Display: DisplayConfig{
			Currency: strings.ToUpper(strings.TrimSpace(v.GetString("display.currency"))),
			Locale:   strings.TrimSpace(v.GetString("display.locale")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	switch cfg.Storage.Backend {
	case storage.BackendSQLite, storage.BackendFile, storage.BackendMemory:
	default:
		return nil, fmt.Errorf("%w: storage.backend %q", common.ErrInvalidConfig, cfg.Storage.Backend)
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath(cfg.Storage.Backend)
	}

	if cfg.Display.Currency == "" {
		return nil, fmt.Errorf("%w: display.currency", common.ErrMissingConfig)
	}

	return cfg, nil
}

// DefaultStoragePath is where a backend keeps its data when storage.path is unset.
func DefaultStoragePath(backend string) string {
	base := ExpandPath("$HOME/.local/share/money")
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		base = filepath.Join(dataHome, "money")
	}

	switch backend {
	case storage.BackendFile:
		return filepath.Join(base, "state")
	case storage.BackendMemory:
		return ""
	default:
		return filepath.Join(base, "money.db")
	}
}
