// Package main provides the entry point for the tagforge CLI.
//
// tagforge runs the tag normalization engine over a corpus snapshot and
// prints the resulting canonical tags, categories, hierarchy edges, and
// consolidation suggestions as YAML. With -watch-rules it keeps running and
// re-executes the pass whenever the rule-table file changes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"gopkg.in/yaml.v3"

	"github.com/tagforge/tagforge/internal/config"
	"github.com/tagforge/tagforge/internal/consolidate"
	"github.com/tagforge/tagforge/internal/di"
	"github.com/tagforge/tagforge/internal/engine"
	"github.com/tagforge/tagforge/internal/logger"
	"github.com/tagforge/tagforge/internal/rules"
)

func main() {
	injector := di.NewContainer()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	if cfg.Snapshot.Path == "" {
		log.Error("no snapshot configured, pass -snapshot or set SNAPSHOT_PATH")
		os.Exit(1)
	}

	counts, err := engine.LoadSnapshot(cfg.Snapshot.Path)
	if err != nil {
		log.WithError(err).Error("failed to load snapshot")
		os.Exit(1)
	}

	eng := do.MustInvoke[*engine.Engine](injector)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runPass(ctx, eng, counts); err != nil {
		log.WithError(err).Error("pass failed")
		os.Exit(1)
	}

	watcher := do.MustInvoke[*rules.Watcher](injector)
	if watcher != nil {
		watchAndRerun(ctx, injector, watcher, counts, log)
	}

	if err := injector.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
	}
}

// runPass executes one engine pass and prints the result as YAML.
func runPass(ctx context.Context, eng *engine.Engine, counts map[string]int) error {
	result, err := eng.Run(ctx, counts)
	if err != nil {
		return err
	}
	return yaml.NewEncoder(os.Stdout).Encode(result)
}

// watchAndRerun blocks, re-running the pass with a fresh engine whenever the
// rule tables reload, until the context is cancelled.
func watchAndRerun(ctx context.Context, injector do.Injector, watcher *rules.Watcher, counts map[string]int, log *logger.Logger) {
	go func() {
		if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("rule watcher stopped")
		}
	}()
	defer watcher.Stop()

	consolidator := do.MustInvoke[*consolidate.Engine](injector)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case tables := <-watcher.Updates():
			eng := engine.New(tables, consolidator, log.Logger)
			if err := runPass(ctx, eng, counts); err != nil {
				log.WithError(err).Error("pass failed after rule reload")
			}
		}
	}
}
