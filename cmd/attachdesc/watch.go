package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/attachdesc/internal/config"
	"github.com/nguyentantai21042004/attachdesc/internal/processor"
	"github.com/nguyentantai21042004/attachdesc/internal/report"
	"github.com/nguyentantai21042004/attachdesc/internal/watcher"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Describe every attachment dropped into paths.input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context())
		},
	}
}

func runWatch(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	log.Info(ctx, "Attachment pipeline %s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Captioner: %s, max concurrent: %d, archive workers: %d",
		cfg.Captioner.Provider, cfg.Performance.MaxConcurrent, cfg.Archive.Workers)

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	describer, err := newDescriber(cfg, log)
	if err != nil {
		return err
	}
	proc := processor.New(cfg, describer, report.New(cfg.Paths.Output, cfg.Watch.WriteDocx), log)

	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}

	log.Info(ctx, "Attachment pipeline stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Input, cfg.Paths.Output}
	if cfg.Watch.ArchiveProcessed {
		dirs = append(dirs, cfg.Paths.Archived)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
