// Package foldersize sums the sizes of regular files below a directory,
// leaving out files whose names match ignore patterns.
//
// Symbolic links below the root are never followed and never counted. A root
// that is itself a symlink to a directory is resolved first.
package foldersize

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/common"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/options"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/types"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const maxLinkHops = 40

// Calculator walks directory trees on one filesystem
type Calculator struct {
	fs             afero.Fs
	ignoreFile     string
	skipUnreadable bool
	logger         zerolog.Logger
	metrics        common.DirectoryMetrics
}

// NewCalculator creates a Calculator from opts
func NewCalculator(opts options.SizeOptions) *Calculator {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Calculator{
		fs:             fs,
		ignoreFile:     opts.IgnoreFile,
		skipUnreadable: opts.SkipUnreadable,
		logger:         opts.Logger,
	}
}

// Size returns the total size in bytes of the non-ignored regular files
// under root
func (c *Calculator) Size(ctx context.Context, root string, ignore IgnoreSpec) (int64, error) {
	report, err := c.Measure(ctx, root, ignore)
	if err != nil {
		return 0, err
	}
	return report.Bytes, nil
}

// Measure walks root like Size and reports what was counted and passed over
func (c *Calculator) Measure(ctx context.Context, root string, ignore IgnoreSpec) (report *types.SizeReport, err error) {
	start := time.Now()
	defer func() {
		var files, bytes int64
		if report != nil {
			files, bytes = report.Files, report.Bytes
		}
		c.metrics.UpdateMetrics(start, err == nil, files, bytes)
	}()

	matcher, err := ignore.Compile()
	if err != nil {
		return nil, err
	}

	walkRoot, err := c.resolveRoot(root)
	if err != nil {
		return nil, err
	}

	rules, err := loadRulesFile(c.fs, walkRoot, c.ignoreFile)
	if err != nil {
		return nil, err
	}

	result := &types.SizeReport{Root: root}

	walkErr := afero.Walk(c.fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if c.skipUnreadable {
				result.Skipped++
				c.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
				return nil
			}
			return common.IOFailure(err, "walk %s", path)
		}

		mode := info.Mode()
		switch {
		case mode&os.ModeSymlink != 0:
			result.Symlinks++
			return nil
		case mode.IsDir(), !mode.IsRegular():
			return nil
		}

		if matcher.Match(info.Name()) {
			result.Ignored++
			return nil
		}
		if rules != nil {
			if rel, relErr := filepath.Rel(walkRoot, path); relErr == nil && rules.match(rel) {
				result.Ignored++
				return nil
			}
		}

		result.Files++
		result.Bytes += info.Size()
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	result.Duration = time.Since(start)
	c.logger.Debug().
		Str("root", root).
		Int64("bytes", result.Bytes).
		Int64("files", result.Files).
		Int64("ignored", result.Ignored).
		Int64("skipped", result.Skipped).
		Dur("duration", result.Duration).
		Msg("folder size computed")

	return result, nil
}

// Metrics returns totals across every walk made by this Calculator
func (c *Calculator) Metrics() map[string]interface{} {
	return c.metrics.GetMetrics()
}

// resolveRoot checks that root is a directory, following symlinks, and
// returns the path to walk
func (c *Calculator) resolveRoot(root string) (string, error) {
	info, err := c.fs.Stat(root)
	if err != nil {
		if common.IsMissingFolder(err) {
			return "", common.FolderNotFound(root, err)
		}
		return "", common.IOFailure(err, "stat %s", root)
	}
	if !info.IsDir() {
		return "", common.FolderNotFound(root, nil)
	}

	lstater, ok := c.fs.(afero.Lstater)
	if !ok {
		return root, nil
	}
	reader, ok := c.fs.(afero.LinkReader)
	if !ok {
		return root, nil
	}

	path := root
	for range maxLinkHops {
		linfo, _, err := lstater.LstatIfPossible(path)
		if err != nil {
			if common.IsMissingFolder(err) {
				return "", common.FolderNotFound(root, err)
			}
			return "", common.IOFailure(err, "lstat %s", path)
		}
		if linfo.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}
		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", common.IOFailure(err, "readlink %s", path)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}
	return "", common.FolderNotFound(root, nil)
}

var defaultCalculator = NewCalculator(options.NewSizeOptions())

// FolderSize returns the size in bytes of the non-ignored regular files below
// path on the OS filesystem. Pass NoIgnore() to count everything.
func FolderSize(path string, ignore IgnoreSpec) (int64, error) {
	return defaultCalculator.Size(context.Background(), path, ignore)
}
