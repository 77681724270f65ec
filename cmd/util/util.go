package util

import (
	"fmt"
	"github.com/ValentinKolb/dFarm/lib/common"
	"github.com/ValentinKolb/dFarm/lib/farm"
	"github.com/ValentinKolb/dFarm/lib/lockmgr"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// DefaultHive is the hive used when no --hive flag is given
	DefaultHive = "default"
)

var (
	log = logger.GetLogger("cmd")

	// Locks is the lock manager of the farm built by BuildFarm (used if --sync is set)
	Locks = lockmgr.NewLockManager()
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupFarmFlags adds the flags describing the farm to a command
func SetupFarmFlags(cmd *cobra.Command) {
	def := common.DefaultFarmConfig()

	key := "backend"
	cmd.PersistentFlags().String(key, string(def.Backend), WrapString("Storage backend (file, ram, sqlite)"))

	key = "root"
	cmd.PersistentFlags().String(key, def.Root, WrapString("Root directory of the file backend or database file of the sqlite backend"))

	key = "codec"
	cmd.PersistentFlags().String(key, def.Codec, WrapString("Encoding of document cells (yaml, json, cbor)"))

	key = "compression"
	cmd.PersistentFlags().String(key, def.Compression, WrapString("Compression of cell files (none, zstd, lz4), only for the file backend"))

	key = "cache"
	cmd.PersistentFlags().String(key, string(def.Cache), WrapString("Cache policy (none, simple)"))

	key = "cache-limit"
	cmd.PersistentFlags().Int64(key, 0, WrapString("Content larger than this (in bytes) is never cached, 0 caches everything"))

	key = "blacklist"
	cmd.PersistentFlags().StringSlice(key, nil, WrapString("Glob patterns of resource keys that bypass the cache (e.g. '*/*/secret')"))

	key = "sync"
	cmd.PersistentFlags().Bool(key, false, WrapString("Synchronize operations on the same resource key"))

	key = "log-level"
	cmd.PersistentFlags().String(key, def.LogLevel, WrapString("Log level (debug, info, warn, error)"))

	key = "hive"
	cmd.PersistentFlags().String(key, DefaultHive, WrapString("Name of the hive to operate on"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dfarm")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetFarmConfig reads the farm configuration from viper
func GetFarmConfig() common.FarmConfig {
	return common.FarmConfig{
		Backend:      common.BackendType(viper.GetString("backend")),
		Root:         viper.GetString("root"),
		Codec:        viper.GetString("codec"),
		Compression:  viper.GetString("compression"),
		Cache:        common.CachePolicy(viper.GetString("cache")),
		CacheLimit:   viper.GetInt64("cache-limit"),
		Blacklist:    viper.GetStringSlice("blacklist"),
		Synchronized: viper.GetBool("sync"),
		LogLevel:     viper.GetString("log-level"),
	}
}

// GetHive returns the name of the configured hive
func GetHive() string {
	return viper.GetString("hive")
}

// BuildFarm binds the flags of cmd, configures the loggers and builds the configured farm
func BuildFarm(cmd *cobra.Command) (farm.IFarm, error) {
	if err := BindCommandFlags(cmd); err != nil {
		return nil, err
	}

	cfg := GetFarmConfig()
	if err := common.InitLoggers(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.Debugf("farm configuration:\n%s", cfg.String())

	return farm.BuildWithLockManager(cfg, Locks)
}
