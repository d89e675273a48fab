package options

import (
	internal "github.com/ZanzyTHEbar/fsutils/fsu"
	"github.com/ZanzyTHEbar/fsutils/fsu/config"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// TempOptions configures scoped temp resource creation
type TempOptions struct {
	Fs     afero.Fs       // Filesystem to create resources on (nil = OS)
	Dir    string         // Parent directory ("" = system temp dir)
	Prefix string         // Name prefix for created files and directories
	Logger zerolog.Logger // Logger for acquire/release events
}

// ChecksumOptions configures digest computation
type ChecksumOptions struct {
	Fs        afero.Fs       // Filesystem used by File (nil = OS)
	Algorithm string         // md5, sha1 or sha256
	BlockSize int            // Read chunk size for streams
	Logger    zerolog.Logger // Logger for read failures
}

// SizeOptions configures folder size walks
type SizeOptions struct {
	Fs             afero.Fs       // Filesystem to walk (nil = OS)
	IgnoreFile     string         // Gitignore-style rules file looked up in the root ("" = none)
	SkipUnreadable bool           // Skip entries that cannot be read instead of failing
	Logger         zerolog.Logger // Logger for skipped entries and walk summaries
}

// NewTempOptions returns TempOptions with defaults applied
func NewTempOptions() TempOptions {
	return TempOptions{
		Fs:     afero.NewOsFs(),
		Dir:    internal.DefaultTempDir,
		Prefix: internal.DefaultTempPrefix,
		Logger: zerolog.Nop(),
	}
}

// NewChecksumOptions returns ChecksumOptions with defaults applied
func NewChecksumOptions() ChecksumOptions {
	return ChecksumOptions{
		Fs:        afero.NewOsFs(),
		Algorithm: internal.DefaultChecksumAlgorithm,
		BlockSize: internal.DefaultChecksumBlockSize,
		Logger:    zerolog.Nop(),
	}
}

// NewSizeOptions returns SizeOptions with defaults applied
func NewSizeOptions() SizeOptions {
	return SizeOptions{
		Fs:             afero.NewOsFs(),
		SkipUnreadable: true,
		Logger:         zerolog.Nop(),
	}
}

// FromConfig builds all three option sets from loaded configuration
func FromConfig(cfg *config.Config, fs afero.Fs, logger zerolog.Logger) (TempOptions, ChecksumOptions, SizeOptions) {
	temp := NewTempOptions()
	sum := NewChecksumOptions()
	size := NewSizeOptions()

	if fs != nil {
		temp.Fs, sum.Fs, size.Fs = fs, fs, fs
	}
	temp.Logger, sum.Logger, size.Logger = logger, logger, logger

	if cfg == nil {
		return temp, sum, size
	}

	temp.Dir = cfg.TempFS.Dir
	if cfg.TempFS.Prefix != "" {
		temp.Prefix = cfg.TempFS.Prefix
	}
	if cfg.Checksum.Algorithm != "" {
		sum.Algorithm = cfg.Checksum.Algorithm
	}
	if cfg.Checksum.BlockSize > 0 {
		sum.BlockSize = cfg.Checksum.BlockSize
	}
	size.IgnoreFile = cfg.FolderSize.IgnoreFile
	if cfg.FolderSize.SkipUnreadable != nil {
		size.SkipUnreadable = *cfg.FolderSize.SkipUnreadable
	}

	return temp, sum, size
}
