// Package config resolves server configuration from defaults, an optional
// config file, environment variables, and CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// PERSONAL_MEMORY_STORAGE_PATH or PERSONAL_MEMORY_SERVER_TRANSPORT.
const EnvPrefix = "PERSONAL_MEMORY"

// Config holds everything the server needs at startup.
type Config struct {
	Storage struct {
		// Path of the JSON memory document.
		Path string
	}
	Server struct {
		// Transport is "stdio" or "http".
		Transport string
		// Listen is the HTTP listen address (http transport only).
		Listen string
	}
	Categorization struct {
		// QueueUnmatched queues uncategorizable keys for an explicit
		// decision instead of auto-filing them into misc.
		QueueUnmatched bool
	}
	Log struct {
		Debug bool
		JSON  bool
	}
}

// DefaultStoragePath returns the default memory document location under the
// user's home directory.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".personal-memory", "personal_memory.json")
	}
	return filepath.Join(home, ".personal-memory", "personal_memory.json")
}

// InitViper creates a configured *viper.Viper.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound by the caller)
//  2. Environment variables (PERSONAL_MEMORY_*)
//  3. Config file values
//  4. Defaults
func InitViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".personal-memory"))
		}
		if err := v.ReadInConfig(); err != nil {
			// A missing config file is fine, defaults apply.
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.path", DefaultStoragePath())
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.listen", ":8081")
	v.SetDefault("categorization.queue_unmatched", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.json", false)
}

// FromViper materializes a Config from resolved viper state.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{}
	cfg.Storage.Path = v.GetString("storage.path")
	cfg.Server.Transport = v.GetString("server.transport")
	cfg.Server.Listen = v.GetString("server.listen")
	cfg.Categorization.QueueUnmatched = v.GetBool("categorization.queue_unmatched")
	cfg.Log.Debug = v.GetBool("log.debug")
	cfg.Log.JSON = v.GetBool("log.json")
	return cfg
}
