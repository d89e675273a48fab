package common

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIOFailureKeepsBothKinds(t *testing.T) {
	err := IOFailure(fs.ErrPermission, "remove %s", "/x")

	assert.ErrorIs(t, err, ErrIOFailure)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "remove /x")
	assert.NoError(t, IOFailure(nil, "ignored"))
}

func TestFolderNotFound(t *testing.T) {
	err := FolderNotFound("/nope", nil)
	assert.ErrorIs(t, err, ErrFolderNotFound)
	assert.False(t, errors.Is(err, ErrIOFailure))

	_, statErr := os.Stat("/definitely/not/here")
	err = FolderNotFound("/definitely/not/here", statErr)
	assert.ErrorIs(t, err, ErrFolderNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIsAlreadyAbsent(t *testing.T) {
	err := os.Remove("/definitely/not/here")
	assert.True(t, IsAlreadyAbsent(err))
	assert.False(t, IsAlreadyAbsent(fs.ErrPermission))
	assert.False(t, IsAlreadyAbsent(nil))
}

func TestIsMissingFolder(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	assert.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))
	loop := filepath.Join(dir, "loop")
	assert.NoError(t, os.Symlink(loop, loop))

	_, absentErr := os.Stat(filepath.Join(dir, "absent"))
	_, notDirErr := os.Stat(filepath.Join(plain, "child"))
	_, loopErr := os.Stat(loop)

	assert.True(t, IsMissingFolder(absentErr))
	assert.True(t, IsMissingFolder(notDirErr))
	assert.True(t, IsMissingFolder(loopErr))
	assert.False(t, IsMissingFolder(fs.ErrPermission))
	assert.False(t, IsMissingFolder(nil))
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath("/valid/path"))
	assert.ErrorIs(t, ValidatePath(""), ErrPathEmpty)
	assert.ErrorIs(t, ValidatePath("   "), ErrPathEmpty)
	assert.ErrorIs(t, ValidatePath("bad\x00path"), ErrPathInvalid)
	assert.ErrorIs(t, ValidatePath("/"+strings.Repeat("a", 4096)), ErrPathTooLong)
}

func TestDirectoryMetrics(t *testing.T) {
	var dm DirectoryMetrics

	dm.UpdateMetrics(time.Now().Add(-10*time.Millisecond), true, 10, 1000)
	dm.UpdateMetrics(time.Now(), false, 0, 0)

	m := dm.GetMetrics()
	assert.Equal(t, int64(2), m["total_traversals"])
	assert.Equal(t, int64(1), m["failed_ops"])
	assert.Equal(t, int64(10), m["total_files"])
	assert.Equal(t, int64(1000), m["total_bytes"])
	assert.Greater(t, m["average_time"].(time.Duration), time.Duration(0))
}
