// Package cli provides the cobra commands of the fsu binary.
package cli

import (
	"fmt"

	internal "github.com/ZanzyTHEbar/fsutils/fsu"
	"github.com/ZanzyTHEbar/fsutils/fsu/config"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand of one invocation
type app struct {
	configPath string
	logLevel   string

	fs     afero.Fs
	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCommand builds the fsu command tree over fs. A nil fs means the OS
// filesystem.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	a := &app{fs: fs}

	rootCmd := &cobra.Command{
		Use:   internal.DefaultAppName,
		Short: "Filesystem utilities: scoped temp paths, checksums and folder sizes",
		Long: `fsu bundles three small filesystem helpers.

  fsu checksum     digest a file, a string or stdin (md5 by default)
  fsu size         sum the file sizes under a directory, with glob excludes
  fsu tempfile     run a command with a temp file that is removed afterwards
  fsu tempdir      run a command with a temp directory that is removed afterwards

Settings are read from config.yaml in ., etc/fsu or ~/.config/fsu and can be
overridden with FSU_* environment variables, e.g. FSU_CHECKSUM_ALGORITHM=sha256.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: search ., etc/fsu, ~/.config/fsu)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(
		newChecksumCmd(a),
		newSizeCmd(a),
		newTempCmd(a, false),
		newTempCmd(a, true),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.logger = internal.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	return nil
}

// fileSystem builds the services from the loaded config after subcommand
// flags have been applied to it
func (a *app) fileSystem() (*filesystem.FileSystem, error) {
	dfs, err := filesystem.New(a.cfg, a.fs, a.logger)
	if err != nil {
		return nil, fmt.Errorf("initialize filesystem: %w", err)
	}
	return dfs, nil
}
