package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/algoswap/algoswap/app"
)

const (
	flagHome      = "home"
	flagChainID   = "chain-id"
	flagLogLevel  = "log-level"
	flagOverwrite = "overwrite"
	flagOutput    = "output"

	envPrefix = "DEXD"

	configFile  = "config.toml"
	genesisFile = "genesis.json"
)

// Version is set at build time.
var Version = "dev"

var sdkConfigOnce sync.Once

// initSDKConfig installs the daemon's bech32 prefixes.
func initSDKConfig() {
	sdkConfigOnce.Do(app.SetConfig)
}

// NewRootCmd creates the dexd root command.
func NewRootCmd() *cobra.Command {
	initSDKConfig()

	rootCmd := &cobra.Command{
		Use:           "dexd",
		Short:         "AlgoSwap pool engine daemon",
		Long:          `dexd runs the constant-product pool engine and its HTTP gateway over a local database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String(flagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "override the configured log level")

	rootCmd.AddCommand(
		InitCmd(),
		StartCmd(),
		ExportCmd(),
		ValidateGenesisCmd(),
		VersionCmd(),
	)
	return rootCmd
}

func homeDir(cmd *cobra.Command) string {
	home, _ := cmd.Flags().GetString(flagHome)
	if env := os.Getenv(envPrefix + "_HOME"); env != "" && !cmd.Flags().Changed(flagHome) {
		home = env
	}
	return home
}

func configPath(home string) string  { return filepath.Join(home, "config", configFile) }
func genesisPath(home string) string { return filepath.Join(home, "config", genesisFile) }

// newViper returns a viper instance seeded with defaults for every key so
// DEXD_* environment variables can override any of them.
func newViper(defaults app.Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range configValues(defaults) {
		v.SetDefault(key, value)
	}
	return v
}

func configValues(c app.Config) map[string]any {
	return map[string]any{
		"chain-id":             c.ChainID,
		"db.backend":           c.DB.Backend,
		"db.dir":               c.DB.Dir,
		"log.level":            c.Log.Level,
		"log.format":           c.Log.Format,
		"api.host":             c.API.Host,
		"api.port":             c.API.Port,
		"api.cors-origins":     c.API.CORSOrigins,
		"api.rate-limit-rps":   c.API.RateLimitRPS,
		"api.enable-submit":    c.API.EnableSubmit,
		"api.read-timeout":     c.API.ReadTimeout.String(),
		"api.write-timeout":    c.API.WriteTimeout.String(),
		"api.shutdown-timeout": c.API.ShutdownTimeout.String(),
		"metrics.enabled":      c.Metrics.Enabled,
		"metrics.address":      c.Metrics.Address,
	}
}

// loadConfig reads config.toml under home, applies the environment and the
// persistent flags, and validates the result. A missing file is not an
// error; defaults apply.
func loadConfig(cmd *cobra.Command, home string) (app.Config, error) {
	v := newViper(app.DefaultConfig())
	v.SetConfigFile(configPath(home))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return app.Config{}, fmt.Errorf("read %s: %w", configPath(home), err)
		}
	}

	if f := cmd.Flags().Lookup(flagLogLevel); f != nil && f.Changed {
		v.Set("log.level", f.Value.String())
	}
	if f := cmd.Flags().Lookup(flagChainID); f != nil && f.Changed {
		v.Set("chain-id", f.Value.String())
	}

	var cfg app.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return app.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return app.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// writeConfig renders cfg to config.toml under home.
func writeConfig(home string, cfg app.Config) error {
	path := configPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("toml")
	for key, value := range configValues(cfg) {
		v.Set(key, value)
	}
	return v.WriteConfigAs(path)
}

// VersionCmd prints the build version.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application binary version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(Version)
		},
	}
}
