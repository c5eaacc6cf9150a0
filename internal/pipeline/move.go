package pipeline

import (
	"errors"
	"io/fs"
	"os"
)

// moveNoReplace renames src to dst, refusing to replace an existing dst.
// os.Rename on POSIX silently replaces the destination, which would destroy
// the occupant; the explicit Lstat turns that case into fs.ErrExist. The
// check-then-rename window is acceptable here: the run is single-threaded
// and concurrent external modification is out of scope.
//
// No cross-device fallback: EXDEV from os.Rename surfaces as-is and
// classifies as the unexpected outcome.
func moveNoReplace(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

// classify maps a derive or move error onto the per-entry outcome taxonomy.
func classify(err error) Outcome {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return OutcomeNotFound
	case errors.Is(err, fs.ErrExist):
		return OutcomeAlreadyExists
	default:
		return OutcomeUnexpected
	}
}
