// Package tempfs hands out temporary files and directories that are removed
// when the scope using them ends.
package tempfs

import (
	"errors"

	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/common"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/options"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Resource is a temporary file or directory owned by a single scope
type Resource struct {
	ID uuid.UUID

	path     string
	kind     types.Kind
	fs       afero.Fs
	logger   zerolog.Logger
	released bool
}

// Path returns the location of the resource
func (r *Resource) Path() string { return r.path }

// Kind reports whether the resource is a file or a directory
func (r *Resource) Kind() types.Kind { return r.kind }

// Release deletes the resource. A resource that is already gone is not an
// error, and calling Release more than once is a no-op after the first success.
// Whatever is at the path is removed, including anything left inside it.
func (r *Resource) Release() error {
	if r.released {
		return nil
	}

	// RemoveAll for both kinds: a file may have been replaced by a directory
	err := r.fs.RemoveAll(r.path)
	if err != nil && !common.IsAlreadyAbsent(err) {
		r.logger.Error().Err(err).
			Str("id", r.ID.String()).
			Str("path", r.path).
			Msg("failed to release temp resource")
		return common.IOFailure(err, "release temp %s %s", r.kind, r.path)
	}

	r.released = true
	r.logger.Debug().
		Str("id", r.ID.String()).
		Str("path", r.path).
		Str("kind", string(r.kind)).
		Msg("temp resource released")
	return nil
}

// Manager creates scoped temp resources on one filesystem
type Manager struct {
	fs     afero.Fs
	dir    string
	prefix string
	logger zerolog.Logger
}

// NewManager creates a new Manager from opts
func NewManager(opts options.TempOptions) *Manager {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Manager{
		fs:     fs,
		dir:    opts.Dir,
		prefix: opts.Prefix,
		logger: opts.Logger,
	}
}

// CreateFile creates an empty, uniquely named file. The caller owns the
// returned resource and must Release it.
func (m *Manager) CreateFile() (*Resource, error) {
	f, err := afero.TempFile(m.fs, m.dir, m.prefix)
	if err != nil {
		return nil, common.IOFailure(err, "create temp file in %q", m.dir)
	}

	name := f.Name()
	if err := f.Close(); err != nil {
		_ = m.fs.Remove(name)
		return nil, common.IOFailure(err, "close temp file %s", name)
	}

	return m.track(name, types.KindFile), nil
}

// CreateDir creates an empty, uniquely named directory. The caller owns the
// returned resource and must Release it.
func (m *Manager) CreateDir() (*Resource, error) {
	name, err := afero.TempDir(m.fs, m.dir, m.prefix)
	if err != nil {
		return nil, common.IOFailure(err, "create temp directory in %q", m.dir)
	}
	return m.track(name, types.KindDirectory), nil
}

// WithTempFile runs fn with the path of a fresh temp file and deletes the
// file once fn returns or panics.
func (m *Manager) WithTempFile(fn func(path string) error) error {
	return m.with(m.CreateFile, fn)
}

// WithTempDir runs fn with the path of a fresh temp directory and deletes the
// directory tree once fn returns or panics.
func (m *Manager) WithTempDir(fn func(path string) error) error {
	return m.with(m.CreateDir, fn)
}

func (m *Manager) with(create func() (*Resource, error), fn func(path string) error) (err error) {
	res, err := create()
	if err != nil {
		return err
	}

	defer func() {
		if releaseErr := res.Release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	return fn(res.Path())
}

func (m *Manager) track(path string, kind types.Kind) *Resource {
	res := &Resource{
		ID:     uuid.New(),
		path:   path,
		kind:   kind,
		fs:     m.fs,
		logger: m.logger,
	}
	m.logger.Debug().
		Str("id", res.ID.String()).
		Str("path", path).
		Str("kind", string(kind)).
		Msg("temp resource acquired")
	return res
}

var defaultManager = NewManager(options.NewTempOptions())

// WithTempFile runs fn with a temp file in the system temp directory.
func WithTempFile(fn func(path string) error) error {
	return defaultManager.WithTempFile(fn)
}

// WithTempDir runs fn with a temp directory in the system temp directory.
func WithTempDir(fn func(path string) error) error {
	return defaultManager.WithTempDir(fn)
}
