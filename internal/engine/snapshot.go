package engine

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tagforge/tagforge/internal/errors"
)

// LoadSnapshot reads a corpus snapshot from a YAML file mapping raw tag
// strings to observation counts:
//
//	"Prog-metal": 2966
//	"prog-metal": 2
//	"Atmosheric Black metal": 1
func LoadSnapshot(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeMalformedInput, "reading snapshot from %s", path)
	}

	var counts map[string]int
	if err := yaml.Unmarshal(data, &counts); err != nil {
		return nil, errors.Wrap(err, errors.CodeMalformedInput, "parsing snapshot")
	}
	return counts, nil
}
