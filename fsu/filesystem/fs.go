package filesystem

import (
	"context"
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/fsutils/fsu/config"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/checksum"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/common"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/foldersize"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/interfaces"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/options"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/tempfs"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/types"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// FileSystem wires the temp resource, checksum and folder size services to
// one filesystem and one configuration.
type FileSystem struct {
	// Core services
	tempResources interfaces.TempResources
	checksummer   interfaces.Checksummer
	folderSizer   interfaces.FolderSizer

	// System components
	fs            afero.Fs
	config        *config.Config
	defaultIgnore foldersize.IgnoreSpec
	logger        zerolog.Logger
}

// New creates a FileSystem. A nil cfg uses built-in defaults and a nil fs
// uses the OS filesystem.
func New(cfg *config.Config, fs afero.Fs, logger zerolog.Logger) (*FileSystem, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	tempOpts, sumOpts, sizeOpts := options.FromConfig(cfg, fs, logger)

	hasher, err := checksum.NewHasher(sumOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create checksum service: %w", err)
	}

	var defaultIgnore foldersize.IgnoreSpec
	if cfg != nil && len(cfg.FolderSize.Ignore) > 0 {
		defaultIgnore = foldersize.Patterns(cfg.FolderSize.Ignore...)
		if _, err := defaultIgnore.Compile(); err != nil {
			return nil, fmt.Errorf("invalid foldersize.ignore: %w", err)
		}
	}

	logger.Debug().
		Str("algorithm", hasher.Algorithm()).
		Str("tempDir", tempOpts.Dir).
		Strs("ignore", defaultIgnore).
		Msg("filesystem services initialised")

	return &FileSystem{
		tempResources: tempfs.NewManager(tempOpts),
		checksummer:   hasher,
		folderSizer:   foldersize.NewCalculator(sizeOpts),
		fs:            fs,
		config:        cfg,
		defaultIgnore: defaultIgnore,
		logger:        logger,
	}, nil
}

// Temp resource methods

// WithTempFile runs fn with a scoped temp file
func (dfs *FileSystem) WithTempFile(fn func(path string) error) error {
	return dfs.tempResources.WithTempFile(fn)
}

// WithTempDir runs fn with a scoped temp directory
func (dfs *FileSystem) WithTempDir(fn func(path string) error) error {
	return dfs.tempResources.WithTempDir(fn)
}

// Checksum methods

// Checksum digests a string, []byte or io.Reader
func (dfs *FileSystem) Checksum(source any) (string, error) {
	return dfs.checksummer.Checksum(source)
}

// ChecksumReader digests a stream
func (dfs *FileSystem) ChecksumReader(r io.Reader) (string, error) {
	return dfs.checksummer.Reader(r)
}

// ChecksumFile digests the file at path
func (dfs *FileSystem) ChecksumFile(path string) (string, error) {
	if err := common.ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return dfs.checksummer.File(path)
}

// Folder size methods

// FolderSize sums the regular files under root. Patterns from
// foldersize.ignore in the configuration are applied along with ignore.
func (dfs *FileSystem) FolderSize(ctx context.Context, root string, ignore foldersize.IgnoreSpec) (int64, error) {
	report, err := dfs.MeasureFolder(ctx, root, ignore)
	if err != nil {
		return 0, err
	}
	return report.Bytes, nil
}

// MeasureFolder is FolderSize with a full report
func (dfs *FileSystem) MeasureFolder(ctx context.Context, root string, ignore foldersize.IgnoreSpec) (*types.SizeReport, error) {
	if err := common.ValidatePath(root); err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	return dfs.folderSizer.Measure(ctx, root, dfs.withDefaultIgnore(ignore))
}

// Metrics returns folder walk totals
func (dfs *FileSystem) Metrics() map[string]interface{} {
	return dfs.folderSizer.Metrics()
}

// Service accessor methods

// GetConfig returns the configuration
func (dfs *FileSystem) GetConfig() *config.Config {
	return dfs.config
}

// GetChecksummer returns the checksum service
func (dfs *FileSystem) GetChecksummer() interfaces.Checksummer {
	return dfs.checksummer
}

// GetFs returns the underlying filesystem
func (dfs *FileSystem) GetFs() afero.Fs {
	return dfs.fs
}

func (dfs *FileSystem) withDefaultIgnore(ignore foldersize.IgnoreSpec) foldersize.IgnoreSpec {
	if len(dfs.defaultIgnore) == 0 {
		return ignore
	}
	merged := make(foldersize.IgnoreSpec, 0, len(dfs.defaultIgnore)+len(ignore))
	merged = append(merged, dfs.defaultIgnore...)
	return append(merged, ignore...)
}
