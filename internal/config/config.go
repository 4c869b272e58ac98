package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level    string
	Format   string // json or console
	Output   string // stdout or file
	FilePath string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Log  LogConfig
	Tags struct {
		Separator string
	}

	v *viper.Viper
}

// Load reads config from environment (TAGGABLE_ prefix) and an optional YAML file. An empty
// path looks for taggable.yaml in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TAGGABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("taggable")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // optional config file
	}

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("tags.separator", ",")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{v: v}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Log.Output = v.GetString("log.output")
	cfg.Log.FilePath = v.GetString("log.file_path")
	cfg.Tags.Separator = v.GetString("tags.separator")

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("TAGGABLE_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("TAGGABLE_DB_DSN is required")
	}
	if cfg.Log.Output == "file" && cfg.Log.FilePath == "" {
		return nil, fmt.Errorf("TAGGABLE_LOG_FILE_PATH is required when log output is file")
	}
	if cfg.Tags.Separator == "" {
		return nil, fmt.Errorf("TAGGABLE_TAGS_SEPARATOR must not be empty")
	}
	return cfg, nil
}

// File returns the config file in use, or "" when only the environment was read.
func (c *Config) File() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Watch reloads the config file whenever it changes and passes the new config to onChange.
// Reload errors go to onError and keep the previous config. It reports whether a file is
// being watched.
func (c *Config) Watch(onChange func(*Config), onError func(error)) bool {
	if c.File() == "" {
		return false
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		next, err := fromViper(c.v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(next)
	})
	c.v.WatchConfig()
	return true
}
