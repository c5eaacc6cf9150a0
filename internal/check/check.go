// Package check provides the source-directory preflight shared with the
// pipeline and the --check diagnostics flow.
package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"segmv/internal/config"
	"segmv/internal/naming"
)

// Sentinel errors returned by SourceDir when the precondition fails.
var (
	ErrSourceMissing = errors.New("source directory does not exist")
	ErrSourceNotDir  = errors.New("source path is not a directory")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// SourceDir is the fatal preflight: the source must exist and be a
// directory. It runs once, before any filesystem mutation.
func SourceDir(dir string) error {
	fi, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, dir)
	}
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, dir)
	}
	return nil
}

// RunCheck runs the interactive --check flow: source directory status, how
// many entry names derive cleanly, destination status and writability, and a
// cross-device warning. Informational per line; the return value reports
// whether every hard check passed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkSource(cfg, log)
	ok = checkDest(cfg, log) && ok
	checkDevices(cfg, log)
	return ok
}

// checkSource verifies the source directory and previews name derivation.
func checkSource(cfg *config.Config, log Logger) bool {
	if err := SourceDir(cfg.SourceDir); err != nil {
		log.Error("%v", err)
		return false
	}
	entries, err := os.ReadDir(cfg.SourceDir)
	if err != nil {
		log.Error("Cannot list source directory: %v", err)
		return false
	}

	derivable := 0
	for _, e := range entries {
		if _, err := naming.Derive(e.Name()); err == nil {
			derivable++
		} else {
			log.Debug(cfg.Verbose, "  %v", err)
		}
	}
	log.Success("Source: %s (%d entries)", cfg.SourceDir, len(entries))
	if derivable < len(entries) {
		log.Warn("%d of %d entry names will not derive (no usable '-' token)",
			len(entries)-derivable, len(entries))
	} else if len(entries) > 0 {
		log.Success("All %d entry names derive cleanly", len(entries))
	}
	return true
}

// checkDest reports destination status and, when it already exists, probes
// writability with a create+remove round trip.
func checkDest(cfg *config.Config, log Logger) bool {
	fi, err := os.Stat(cfg.DestDir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("Destination: %s (will be created)", cfg.DestDir)
		return true
	}
	if err != nil {
		log.Error("Cannot stat destination: %v", err)
		return false
	}
	if !fi.IsDir() {
		log.Error("Destination exists but is not a directory: %s", cfg.DestDir)
		return false
	}

	probe, err := os.CreateTemp(cfg.DestDir, ".segmv-check-*")
	if err != nil {
		log.Error("Destination not writable: %v", err)
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	log.Success("Destination: %s (writable)", cfg.DestDir)
	return true
}

// checkDevices warns when source and destination live on different devices:
// os.Rename cannot cross devices, so every move would fail with EXDEV.
func checkDevices(cfg *config.Config, log Logger) {
	same, known := sameDevice(cfg.SourceDir, nearestExisting(cfg.DestDir))
	if !known {
		return
	}
	if same {
		log.Success("Source and destination share a device (rename will work)")
	} else {
		log.Warn("Source and destination are on different devices; moves will fail (EXDEV)")
	}
}

// nearestExisting walks up from path to the closest existing ancestor, so a
// not-yet-created destination can still be device-checked.
func nearestExisting(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// sameDevice reports whether two paths are on the same device. known is
// false when either stat fails or the platform doesn't expose device IDs.
func sameDevice(a, b string) (same, known bool) {
	fa, err := os.Stat(a)
	if err != nil {
		return false, false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false, false
	}
	sa, okA := fa.Sys().(*syscall.Stat_t)
	sb, okB := fb.Sys().(*syscall.Stat_t)
	if !okA || !okB {
		return false, false
	}
	return sa.Dev == sb.Dev, true
}
