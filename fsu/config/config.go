package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/fsutils/fsu"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	TempFS     TempFSConfig     `mapstructure:"tempfs"`
	Checksum   ChecksumConfig   `mapstructure:"checksum"`
	FolderSize FolderSizeConfig `mapstructure:"foldersize"`
}

// LogConfig stores logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TempFSConfig stores where and how scoped temp resources are created.
type TempFSConfig struct {
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

// ChecksumConfig stores digest settings.
type ChecksumConfig struct {
	Algorithm string `mapstructure:"algorithm"`
	BlockSize int    `mapstructure:"blockSize"`
}

// FolderSizeConfig stores folder walk settings.
type FolderSizeConfig struct {
	Ignore         []string `mapstructure:"ignore"`
	IgnoreFile     string   `mapstructure:"ignoreFile"`
	SkipUnreadable *bool    `mapstructure:"skipUnreadable"` // nil keeps the default (skip)
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("log.level", internal.DefaultLogLevel)
	v.SetDefault("tempfs.dir", internal.DefaultTempDir)
	v.SetDefault("tempfs.prefix", internal.DefaultTempPrefix)
	v.SetDefault("checksum.algorithm", internal.DefaultChecksumAlgorithm)
	v.SetDefault("checksum.blockSize", internal.DefaultChecksumBlockSize)
	v.SetDefault("foldersize.ignore", []string{})
	v.SetDefault("foldersize.ignoreFile", "")
	v.SetDefault("foldersize.skipUnreadable", true)

	v.SetEnvPrefix(internal.DefaultEnvPrefix)
	v.AutomaticEnv()                                   // Read in environment variables that match
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // foldersize.skipUnreadable becomes FSU_FOLDERSIZE_SKIPUNREADABLE

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults and env are used.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if cfg.Checksum.BlockSize <= 0 {
		return nil, fmt.Errorf("checksum.blockSize must be positive, got %d", cfg.Checksum.BlockSize)
	}

	AppConfig = cfg
	return &AppConfig, nil
}
