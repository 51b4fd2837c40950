// Package di provides dependency injection configuration for the tagforge CLI.
package di

import (
	"github.com/samber/do/v2"

	"github.com/tagforge/tagforge/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Rule tables
	do.Provide(injector, providers.ProvideRuleTables)
	do.Provide(injector, providers.ProvideRuleWatcher)

	// Engine
	do.Provide(injector, providers.ProvideConsolidator)
	do.Provide(injector, providers.ProvideEngine)

	return injector
}
