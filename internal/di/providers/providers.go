// Package providers contains dependency injection providers for the tagforge CLI.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/tagforge/tagforge/internal/config"
	"github.com/tagforge/tagforge/internal/consolidate"
	"github.com/tagforge/tagforge/internal/engine"
	"github.com/tagforge/tagforge/internal/logger"
	"github.com/tagforge/tagforge/internal/rules"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("starting tagforge",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"rules_path", cfg.Rules.Path,
	)

	return log, nil
}

// ProvideRuleTables provides the curated rule tables: the configured YAML
// file when set, the built-in defaults otherwise.
func ProvideRuleTables(i do.Injector) (*rules.Tables, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Rules.Path == "" {
		return rules.Defaults(), nil
	}

	tables, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		return nil, err
	}
	if conflicts := tables.Conflicts(); len(conflicts) > 0 {
		log.Warn("rule tables loaded with conflicts", "count", len(conflicts))
	}
	return tables, nil
}

// ProvideRuleWatcher provides the optional hot-reload watcher. Returns nil
// when watching is disabled.
func ProvideRuleWatcher(i do.Injector) (*rules.Watcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if !cfg.Rules.Watch {
		return nil, nil
	}

	log := do.MustInvoke[*logger.Logger](i)
	return rules.NewWatcher(cfg.Rules.Path, log.Logger)
}

// ProvideConsolidator provides the similarity engine.
func ProvideConsolidator(i do.Injector) (*consolidate.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return consolidate.New(consolidate.Options{
		MaxEditDistance: cfg.Engine.MaxEditDistance,
		CountAsymmetry:  cfg.Engine.CountAsymmetry,
		MinUnknownCount: cfg.Engine.MinUnknownCount,
		Workers:         cfg.Engine.Workers,
	}, log.Logger), nil
}

// ProvideEngine provides the normalization engine over the loaded tables.
func ProvideEngine(i do.Injector) (*engine.Engine, error) {
	tables := do.MustInvoke[*rules.Tables](i)
	consolidator := do.MustInvoke[*consolidate.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return engine.New(tables, consolidator, log.Logger), nil
}
