package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/trackers/internal/paths"
	"github.com/mesh-intelligence/trackers/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TRACKERS"

	// Config keys, matching the yaml tags on types.Config.
	cfgKeyBackend     = "backend"
	cfgKeyLogLevel    = "log_level"
	cfgKeyBorrowLimit = "borrow_limit"
	cfgKeyLibrarySeed = "library_seed"
)

// loadConfig resolves the configuration directory, loads its optional .env,
// and reads config.yaml with viper. Values are layered as
// flag > environment > config.yaml > default. A missing config.yaml or .env
// is not an error.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (types.Config, string, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, "", fmt.Errorf("resolve config dir: %w", err)
	}

	if err := godotenv.Load(paths.EnvFile(configDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return types.Config{}, "", fmt.Errorf("load %s: %w", paths.EnvFileName, err)
	}

	def := types.DefaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyBorrowLimit, def.BorrowLimit)
	v.SetDefault(cfgKeyLibrarySeed, def.LibrarySeed)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(v, cmd.Root().PersistentFlags()); err != nil {
		return types.Config{}, "", err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, "", fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		Backend:     v.GetString(cfgKeyBackend),
		LogLevel:    v.GetString(cfgKeyLogLevel),
		BorrowLimit: v.GetInt(cfgKeyBorrowLimit),
		LibrarySeed: v.GetStringSlice(cfgKeyLibrarySeed),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, configDir, nil
}

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	flagBackend:  cfgKeyBackend,
	flagLogLevel: cfgKeyLogLevel,
}

// bindFlags binds each flag in flagKeys so a flag set on the command line
// takes precedence over every other source.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("bind --%s: flag not defined", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
