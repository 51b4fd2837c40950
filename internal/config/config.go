// Package config provides application configuration management with support
// for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Rules    RulesConfig
	Engine   EngineConfig
	Snapshot SnapshotConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// RulesConfig holds rule-table configuration.
type RulesConfig struct {
	// Path to a YAML rule-table file. Empty means the built-in defaults.
	Path string
	// Watch enables hot reload of the rule-table file.
	Watch bool
}

// EngineConfig holds similarity-engine tuning.
type EngineConfig struct {
	// MaxEditDistance is the Levenshtein cutoff for misspelling pairs.
	MaxEditDistance int
	// CountAsymmetry is the minimum primary/secondary count ratio for a
	// misspelling merge.
	CountAsymmetry float64
	// MinUnknownCount excludes low-count Unknown tags from pairwise work.
	MinUnknownCount int
	// Workers is the parallelism of the pairwise stage (0 = NumCPU).
	Workers int
}

// SnapshotConfig holds corpus-snapshot input configuration for the CLI.
type SnapshotConfig struct {
	// Path to a YAML file mapping raw tag strings to observation counts.
	Path string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	rulesPath := flag.String("rules", "", "Path to YAML rule tables (default: built-in)")
	rulesWatch := flag.String("watch-rules", "", "Hot-reload rule tables on change (default: false)")
	snapshotPath := flag.String("snapshot", "", "Path to YAML tag-count snapshot")
	maxDistance := flag.String("max-edit-distance", "", "Levenshtein cutoff for misspelling pairs (default: 2)")
	asymmetry := flag.String("count-asymmetry", "", "Minimum count ratio for misspelling merges (default: 10)")
	unknownFloor := flag.String("min-unknown-count", "", "Count floor for Unknown tags in pairwise comparison (default: 2)")
	workers := flag.String("workers", "", "Pairwise comparison workers (default: NumCPU)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Rules: RulesConfig{
			Path:  getConfigValue(*rulesPath, "RULES_PATH", ""),
			Watch: getBoolConfigValue(*rulesWatch, "RULES_WATCH", false),
		},
		Engine: EngineConfig{
			MaxEditDistance: getIntConfigValue(*maxDistance, "MAX_EDIT_DISTANCE", 2),
			CountAsymmetry:  getFloatConfigValue(*asymmetry, "COUNT_ASYMMETRY", 10),
			MinUnknownCount: getIntConfigValue(*unknownFloor, "MIN_UNKNOWN_COUNT", 2),
			Workers:         getIntConfigValue(*workers, "WORKERS", 0),
		},
		Snapshot: SnapshotConfig{
			Path: getConfigValue(*snapshotPath, "SNAPSHOT_PATH", ""),
		},
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Engine.MaxEditDistance < 0 {
		return errors.New("max edit distance must be >= 0")
	}
	if c.Engine.CountAsymmetry < 0 {
		return errors.New("count asymmetry must be >= 0")
	}
	if c.Engine.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	if c.Rules.Watch && c.Rules.Path == "" {
		return errors.New("watch-rules requires a rules file path")
	}

	return nil
}

// expandPaths expands ~ and makes the rule and snapshot paths absolute.
func (c *Config) expandPaths() error {
	var err error
	if c.Rules.Path, err = expandPath(c.Rules.Path); err != nil {
		return fmt.Errorf("invalid rules path: %w", err)
	}
	if c.Snapshot.Path, err = expandPath(c.Snapshot.Path); err != nil {
		return fmt.Errorf("invalid snapshot path: %w", err)
	}
	return nil
}

// expandPath expands ~ and makes the path absolute. Empty stays empty.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Env vars take precedence over .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
