package interfaces

import (
	"context"
	"io"

	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/checksum"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/foldersize"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/tempfs"
	"github.com/ZanzyTHEbar/fsutils/fsu/filesystem/types"
)

// TempResources defines scoped temp file and directory acquisition
type TempResources interface {
	CreateFile() (*tempfs.Resource, error)
	CreateDir() (*tempfs.Resource, error)
	WithTempFile(fn func(path string) error) error
	WithTempDir(fn func(path string) error) error
}

// Checksummer defines content digest operations
type Checksummer interface {
	Algorithm() string
	Checksum(source any) (string, error)
	String(s string) string
	Reader(r io.Reader) (string, error)
	File(path string) (string, error)
}

// FolderSizer defines recursive folder size operations
type FolderSizer interface {
	Size(ctx context.Context, root string, ignore foldersize.IgnoreSpec) (int64, error)
	Measure(ctx context.Context, root string, ignore foldersize.IgnoreSpec) (*types.SizeReport, error)
	Metrics() map[string]interface{}
}

var (
	_ TempResources = (*tempfs.Manager)(nil)
	_ Checksummer   = (*checksum.Hasher)(nil)
	_ FolderSizer   = (*foldersize.Calculator)(nil)
)
