// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads srvinv settings from defaults, srvinv.yaml, SRVINV_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the complete runtime configuration.
type Config struct {
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Log      struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`
	HTTP struct {
		Listen string `mapstructure:"listen" yaml:"listen"`
	} `mapstructure:"http" yaml:"http"`
}

// Defaults returns the default value of every configuration key.
func Defaults() map[string]any {
	return map[string]any{
		"database.type": "sqlite",
		"database.dsn":  "./srvinv.db",
		"language":      "en",
		"log.level":     "info",
		"http.listen":   ":8080",
	}
}

// DefaultConfig returns a Config populated from Defaults.
func DefaultConfig() Config {
	var c Config
	d := Defaults()
	c.Database.Type = d["database.type"].(string)
	c.Database.Dsn = d["database.dsn"].(string)
	c.Language = d["language"].(string)
	c.Log.Level = d["log.level"].(string)
	c.HTTP.Listen = d["http.listen"].(string)
	return c
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	supported := []string{"sqlite", "postgres", "mysql"}
	if !slices.Contains(supported, c.Database.Type) {
		return fmt.Errorf("unsupported database.type %q (want one of %s)", c.Database.Type, strings.Join(supported, ", "))
	}
	if strings.TrimSpace(c.Database.Dsn) == "" {
		return errors.New("database.dsn must not be empty")
	}
	return nil
}

// GetConfigPath returns the full path for the configuration file, either the
// per-user or the system-wide one.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "srvinv")
		default: // Linux, macOS, etc.
			configDir = "/etc/srvinv"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "srvinv")
	}
	return filepath.Join(configDir, "srvinv.yaml"), nil
}

// LoadConfig builds a T from defaults, the first srvinv.yaml found (or the
// explicit configFile), SRVINV_* environment variables and the flags of cmd.
// A missing config file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("srvinv")
	v.SetConfigType("yaml")
	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("srvinv")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := bindFlags(v, cmd, defaults); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// bindFlags binds every flag of cmd. A dashed flag name maps to the dotted
// key of the same name when that key has a default ("log-level" sets
// "log.level").
func bindFlags(v *viper.Viper, cmd *cobra.Command, defaults map[string]any) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		key := f.Name
		if dotted := strings.ReplaceAll(f.Name, "-", "."); dotted != key {
			if _, ok := defaults[dotted]; ok {
				key = dotted
			}
		}
		bindErr = v.BindPFlag(key, f)
	})
	return bindErr
}

// WriteConfigFile writes c as YAML to the user or system config path and
// returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	// 0600: the DSN may carry database credentials.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
