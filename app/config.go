package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"

	"github.com/algoswap/algoswap/api"
)

// Config is the daemon configuration read from config.toml, the environment
// and flags.
type Config struct {
	ChainID string        `mapstructure:"chain-id"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	API     api.Config    `mapstructure:"api"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// DBConfig selects the storage backend.
type DBConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the standalone Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// DefaultConfig returns the configuration written by `dexd init`.
func DefaultConfig() Config {
	return Config{
		ChainID: DefaultChainID,
		DB: DBConfig{
			Backend: string(dbm.GoLevelDBBackend),
			Dir:     "data",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		API: *api.DefaultConfig(),
		Metrics: MetricsConfig{
			Enabled: true,
			Address: "127.0.0.1:36660",
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ChainID == "" {
		return errors.New("chain-id is required")
	}
	switch dbm.BackendType(c.DB.Backend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("unsupported db backend %q", c.DB.Backend)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "plain" {
		return fmt.Errorf("log format must be json or plain, got %q", c.Log.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return errors.New("metrics address is required when metrics are enabled")
	}
	return c.API.Validate()
}

// DBDir resolves the data directory against home.
func (c Config) DBDir(home string) string {
	if filepath.IsAbs(c.DB.Dir) {
		return c.DB.Dir
	}
	return filepath.Join(home, c.DB.Dir)
}

// OpenDB opens the configured database under home.
func (c Config) OpenDB(home string) (dbm.DB, error) {
	return dbm.NewDB("application", dbm.BackendType(c.DB.Backend), c.DBDir(home))
}

// NewLogger builds the process logger described by the log section.
func (c LogConfig) NewLogger(w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.LevelOption(level)}
	if c.Format == "json" {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(w, opts...), nil
}
