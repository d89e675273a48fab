package common

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// Common error types used across filesystem packages
var (
	ErrFolderNotFound       = errors.New("folder not found")
	ErrIOFailure            = errors.New("i/o failure")
	ErrInvalidPattern       = errors.New("invalid ignore pattern")
	ErrUnsupportedSource    = errors.New("unsupported checksum source")
	ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")
	ErrPathEmpty            = errors.New("path cannot be empty")
	ErrPathTooLong          = errors.New("path too long (max 4096 characters)")
	ErrPathInvalid          = errors.New("path contains invalid characters")
)

// IOFailure wraps err as an ErrIOFailure while keeping err itself reachable
// through errors.Is/As. A nil err stays nil.
func IOFailure(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrIOFailure, fmt.Sprintf(message, args...), err)
}

// FolderNotFound reports path as a missing folder, keeping the cause if any.
func FolderNotFound(path string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s is not a directory", ErrFolderNotFound, path)
	}
	return fmt.Errorf("%w: %s: %w", ErrFolderNotFound, path, cause)
}

// IsAlreadyAbsent reports whether err means the target was already gone.
func IsAlreadyAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsMissingFolder reports whether a stat error means no directory can exist
// at the path: it is absent, a parent is not a directory, or the path is a
// symlink loop
func IsMissingFolder(err error) bool {
	return IsAlreadyAbsent(err) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP)
}

// ValidatePath validates that a path is non-empty and well formed
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathEmpty
	}
	if strings.Contains(path, "\x00") {
		return ErrPathInvalid
	}
	if len(path) > 4096 {
		return ErrPathTooLong
	}
	return nil
}
