// Package commands wires the segmv CLI: the flag surface, configuration
// loading, and the phased run (validate → logger → banner → check or
// pipeline).
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"segmv/internal/check"
	"segmv/internal/config"
	"segmv/internal/display"
	"segmv/internal/logging"
	"segmv/internal/pipeline"
)

// Execute builds and runs the root command. version and commit come from
// main's ldflags variables.
func Execute(version, commit string) error {
	return newRootCmd(version, commit).Execute()
}

func newRootCmd(version, commit string) *cobra.Command {
	root := &cobra.Command{
		Use:   "segmv [flags] <source_dir> <dest_dir>",
		Short: "Move directory entries, renaming each to its hyphen-delimited token",
		Long: `segmv moves every entry of <source_dir> into <dest_dir>, renaming each
entry to the second hyphen-delimited segment of its name:

  01-C4.wav        ->  C4.wav
  01-C4-take2.wav  ->  C4

One status line is emitted per entry. A failing entry (name without a
hyphen token, vanished source, occupied destination) is reported and the
batch continues; only a missing source directory aborts the run.`,
		Args:          cobra.ExactArgs(2),
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, version)
		},
	}

	root.Flags().String("color", string(config.ColorAuto), "Colored logs: auto | always | never")
	root.Flags().BoolP("verbose", "v", false, "Verbose output")
	root.Flags().StringP("log", "l", "", "Append logs to file")
	root.Flags().BoolP("check", "c", false, "Run diagnostics and exit")
	return root
}

func run(cmd *cobra.Command, args []string, version string) error {
	cfg, err := config.Load(cmd.Flags(), args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return errors.New("check failed")
		}
		return nil
	}

	log.Info("=== segmv v%s ===", version)
	log.Info("In:  %s", cfg.SourceDir)
	log.Info("Out: %s", cfg.DestDir)
	log.Info("")

	// SIGINT/SIGTERM cancel the context so the batch stops between entries.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current entry…")
		cancel()
	}()

	// Per-entry failures live in the report and summary only; they do not
	// change the exit status. Only the preflight can fail the run.
	if _, _, err := pipeline.Run(ctx, &cfg, log); err != nil {
		return err
	}
	return nil
}
