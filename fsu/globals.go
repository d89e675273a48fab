package internal

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

var (
	DefaultAppName = "fsu"
	// DefaultEnvPrefix is prepended to every environment override, e.g. FSU_LOG_LEVEL
	DefaultEnvPrefix        = "FSU"
	DefaultConfigPath       = filepath.Join(getHomeDir(), ".config", DefaultAppName)
	DefaultGlobalConfigFile = filepath.Join(DefaultConfigPath, "config.yaml")

	// Temp resource defaults. An empty dir means os.TempDir().
	DefaultTempDir    = ""
	DefaultTempPrefix = DefaultAppName + "-"

	// Checksum defaults
	DefaultChecksumAlgorithm = "md5"
	DefaultChecksumBlockSize = 8192

	// Folder size defaults
	DefaultIgnoreFileName = "." + DefaultAppName + "ignore"

	DefaultLogLevel = "info"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory if home directory is unavailable
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// NewLogger returns a logger writing to w at the named level.
// Unknown or empty level names fall back to DefaultLogLevel.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl, _ = zerolog.ParseLevel(DefaultLogLevel)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
