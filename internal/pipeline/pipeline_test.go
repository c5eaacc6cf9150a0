package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"segmv/internal/check"
	"segmv/internal/config"
	"segmv/internal/logging"
)

func testConfig(t *testing.T, src, dst string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.SourceDir = src
	cfg.DestDir = dst
	return &cfg
}

func testLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRun_MovesAndPreservesContent(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "renamed")
	writeFile(t, filepath.Join(src, "01-C4.wav"), "sample bytes C4")
	writeFile(t, filepath.Join(src, "02-D4.wav"), "sample bytes D4")

	cfg := testConfig(t, src, dst)
	report, stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Moved != 2 || stats.Failed != 0 {
		t.Fatalf("stats = %+v, want 2 moved, 0 failed", stats)
	}
	if got := readFile(t, filepath.Join(dst, "C4.wav")); got != "sample bytes C4" {
		t.Errorf("moved content = %q, want original bytes", got)
	}
	if got := readFile(t, filepath.Join(dst, "D4.wav")); got != "sample bytes D4" {
		t.Errorf("moved content = %q, want original bytes", got)
	}
	if _, err := os.Stat(filepath.Join(src, "01-C4.wav")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("source entry should be gone after a successful move")
	}
	for _, r := range report {
		if r.Outcome != OutcomeMoved || r.Err != nil {
			t.Errorf("result %+v, want moved with nil error", r)
		}
	}
}

func TestRun_MissingSourceFailsFast(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "missing")
	dst := filepath.Join(base, "renamed")

	cfg := testConfig(t, src, dst)
	_, _, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if !errors.Is(err, check.ErrSourceMissing) {
		t.Fatalf("Run error = %v, want %v", err, check.ErrSourceMissing)
	}
	if _, statErr := os.Stat(dst); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("destination must not be created when the source precondition fails")
	}
}

func TestRun_DestCreationIdempotent(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "a", "b", "renamed")
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t, src, dst)
	log := testLogger(t, cfg)
	for i := 0; i < 2; i++ {
		if _, _, err := Run(context.Background(), cfg, log); err != nil {
			t.Fatalf("run %d over existing destination: %v", i+1, err)
		}
	}
}

func TestRun_ConflictLeavesEverythingUntouched(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "A-B"), "new content")
	writeFile(t, filepath.Join(dst, "B"), "occupant content")

	cfg := testConfig(t, src, dst)
	report, stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Moved != 0 || stats.Failed != 1 {
		t.Fatalf("stats = %+v, want 0 moved, 1 failed", stats)
	}
	if report[0].Outcome != OutcomeAlreadyExists {
		t.Errorf("outcome = %v, want %v", report[0].Outcome, OutcomeAlreadyExists)
	}
	if got := readFile(t, filepath.Join(dst, "B")); got != "occupant content" {
		t.Errorf("destination content = %q, must be unchanged", got)
	}
	if got := readFile(t, filepath.Join(src, "A-B")); got != "new content" {
		t.Errorf("source entry = %q, must be untouched", got)
	}
}

func TestRun_PartialFailureBatch(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "x-foo"), "x")
	writeFile(t, filepath.Join(src, "y"), "y")
	writeFile(t, filepath.Join(src, "z-foo"), "z")
	writeFile(t, filepath.Join(dst, "foo"), "pre-existing")

	cfg := testConfig(t, src, dst)
	report, stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatal(err)
	}

	// Listing order is lexicographic: x-foo, y, z-foo.
	want := []Outcome{OutcomeAlreadyExists, OutcomeUnexpected, OutcomeAlreadyExists}
	if len(report) != len(want) {
		t.Fatalf("report has %d entries, want %d", len(report), len(want))
	}
	for i, o := range want {
		if report[i].Outcome != o {
			t.Errorf("report[%d] (%s) outcome = %v, want %v", i, report[i].OldName, report[i].Outcome, o)
		}
	}
	if stats.Moved != 0 || stats.Failed != 3 {
		t.Errorf("stats = %+v, want 0 moved, 3 failed", stats)
	}
	if got := readFile(t, filepath.Join(dst, "foo")); got != "pre-existing" {
		t.Errorf("destination foo = %q, must be unchanged", got)
	}
}

func TestRun_DuplicateDerivedNames(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a-foo"), "first")
	writeFile(t, filepath.Join(src, "b-foo"), "second")

	cfg := testConfig(t, src, dst)
	report, _, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatal(err)
	}
	// First claims dest/foo; the second collides. No dup-suffix resolution.
	if report[0].Outcome != OutcomeMoved {
		t.Errorf("first outcome = %v, want moved", report[0].Outcome)
	}
	if report[1].Outcome != OutcomeAlreadyExists {
		t.Errorf("second outcome = %v, want already exists", report[1].Outcome)
	}
	if got := readFile(t, filepath.Join(dst, "foo")); got != "first" {
		t.Errorf("dest foo = %q, want content of the first claimant", got)
	}
}

func TestRun_CancelledContextStopsBetweenEntries(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a-one"), "1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t, src, dst)
	report, _, err := Run(ctx, cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatal(err)
	}
	if len(report) != 0 {
		t.Errorf("report has %d entries, want 0 after pre-loop cancellation", len(report))
	}
	if _, err := os.Stat(filepath.Join(src, "a-one")); err != nil {
		t.Error("entry should remain in source when the run is cancelled")
	}
}

func TestProcessEntry_NotFound(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	cfg := testConfig(t, src, dst)
	stats := RunStats{Total: 1, Current: 1}
	// "gone-x" was never created: the listing-to-move vanish case.
	res := processEntry(cfg, testLogger(t, cfg), "gone-x", &stats)
	if res.Outcome != OutcomeNotFound {
		t.Errorf("outcome = %v, want %v", res.Outcome, OutcomeNotFound)
	}
	if !errors.Is(res.Err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", res.Err)
	}
}

func TestMoveNoReplace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, src, "payload")

	if err := moveNoReplace(src, dst); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, dst); got != "payload" {
		t.Errorf("content = %q, want %q", got, "payload")
	}

	// Occupied destination refuses the move.
	writeFile(t, src, "other")
	err := moveNoReplace(src, dst)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("err = %v, want fs.ErrExist", err)
	}
	if got := readFile(t, dst); got != "payload" {
		t.Errorf("occupant = %q, must be unchanged", got)
	}

	// Missing source surfaces not-exist.
	err = moveNoReplace(filepath.Join(dir, "nope"), filepath.Join(dir, "dst2"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"not exist", fs.ErrNotExist, OutcomeNotFound},
		{"wrapped not exist", &os.LinkError{Op: "rename", Old: "a", New: "b", Err: fs.ErrNotExist}, OutcomeNotFound},
		{"exist", fs.ErrExist, OutcomeAlreadyExists},
		{"permission", fs.ErrPermission, OutcomeUnexpected},
		{"arbitrary", errors.New("boom"), OutcomeUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
