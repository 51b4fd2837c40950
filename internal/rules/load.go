package rules

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tagforge/tagforge/internal/errors"
)

// Load reads rule tables from a YAML file and validates them. Rule conflicts
// inside a valid file are not errors; they are compiled into Conflicts() for
// the caller to report.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeValidation, "reading rule tables from %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates rule tables from YAML bytes.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "parsing rule tables")
	}
	if err := Validate(&t); err != nil {
		return nil, err
	}
	t.finalize()
	return &t, nil
}

// Validate checks structural requirements on a rule table: the suffix and
// genre-root vocabularies must be non-empty, and no correction may map to an
// empty string.
func Validate(t *Tables) error {
	if err := validator.New().Struct(t); err != nil {
		return errors.Wrap(err, errors.CodeValidation, "rule tables failed validation")
	}
	for from, to := range t.WordMisspellings {
		if from == "" || to == "" {
			return errors.Validationf("word misspelling %q -> %q: both sides must be non-empty", from, to)
		}
	}
	for from, to := range t.PhraseMisspellings {
		if from == "" || to == "" {
			return errors.Validationf("phrase misspelling %q -> %q: both sides must be non-empty", from, to)
		}
	}
	for child, parent := range t.HierarchySeeds {
		if child == parent {
			return errors.Validationf("hierarchy seed %q is its own parent", child)
		}
	}
	return nil
}
