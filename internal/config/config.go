package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/listings-labs/listings/internal/branding"
	"github.com/listings-labs/listings/internal/cache"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI.
const (
	KeyManifest     = "manifest"
	KeyCacheBackend = "cache.backend"
	KeyCacheDir     = "cache.dir"
	KeyCacheSize    = "cache.size"
	KeyLogLevel     = "log.level"
)

// Keys lists every supported key in display order.
func Keys() []string {
	return []string{KeyManifest, KeyCacheBackend, KeyCacheDir, KeyCacheSize, KeyLogLevel}
}

// Dir returns the path to the config directory (~/.listings/).
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.listings/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// CacheDir returns the default badger directory (~/.listings/cache).
func CacheDir() string {
	return filepath.Join(Dir(), "cache")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyManifest, branding.ManifestFile())
	viper.SetDefault(KeyCacheBackend, cache.BackendMemory)
	viper.SetDefault(KeyCacheDir, CacheDir())
	viper.SetDefault(KeyCacheSize, cache.DefaultLRUSize)
	viper.SetDefault(KeyLogLevel, "warn")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !isKnown(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CacheConfig assembles the cache settings from the loaded configuration.
func CacheConfig() cache.Config {
	return cache.Config{
		Backend: viper.GetString(KeyCacheBackend),
		Dir:     viper.GetString(KeyCacheDir),
		Size:    viper.GetInt(KeyCacheSize),
	}
}

func isKnown(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
