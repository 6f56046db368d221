package fserror

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"

	vserrors "github.com/sirseerhq/validation-state/internal/errors"
)

// Inspector provides methods for analyzing file access errors.
type Inspector interface {
	// IsNotFoundError returns true if the path does not exist.
	IsNotFoundError(err error) bool

	// IsPermissionError returns true if the process may not read the path.
	IsPermissionError(err error) bool

	// IsDirectoryError returns true if the path names a directory.
	IsDirectoryError(err error) bool
}

// FileErrorInspector implements the Inspector interface for OS file errors.
type FileErrorInspector struct{}

// NewInspector creates a new FileErrorInspector.
func NewInspector() Inspector {
	return &FileErrorInspector{}
}

// IsNotFoundError checks the error chain for fs.ErrNotExist, then falls back
// to the message.
func (i *FileErrorInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "no such file") ||
		strings.Contains(errStr, "cannot find the file")
}

// IsPermissionError checks the error chain for fs.ErrPermission, then falls
// back to the message.
func (i *FileErrorInspector) IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrPermission) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "access is denied")
}

// IsDirectoryError checks the error chain for EISDIR or a DirectoryError,
// then falls back to the message.
func (i *FileErrorInspector) IsDirectoryError(err error) bool {
	if err == nil {
		return false
	}
	var dirErr *DirectoryError
	if errors.As(err, &dirErr) || errors.Is(err, syscall.EISDIR) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "is a directory")
}

// DirectoryError reports a path that was expected to be a regular file.
type DirectoryError struct {
	Path string
}

func (e *DirectoryError) Error() string {
	return e.Path + " is a directory"
}

// Reason returns a short, actionable description of err.
func Reason(i Inspector, err error) string {
	switch {
	case i.IsNotFoundError(err):
		return "file does not exist, check the --logfile path"
	case i.IsPermissionError(err):
		return "permission denied, check the file permissions"
	case i.IsDirectoryError(err):
		return "path is a directory, pass the transcript file itself"
	default:
		return "read failed"
	}
}

// Wrap annotates an error from opening or reading path. The result matches
// both ErrFileAccess and the original error with errors.Is.
func Wrap(i Inspector, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w %q: %s: %w", vserrors.ErrFileAccess, path, Reason(i, err), err)
}
