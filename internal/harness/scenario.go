package harness

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quarrylabs/exprquest/internal/search"
)

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	for i, a := range s.Assertions {
		if !knownAssertion(a.Type) {
			return nil, fmt.Errorf("scenario %s: assertion %d has unknown type %q", path, i, a.Type)
		}
	}
	return &s, nil
}

// Run executes a scenario's search and returns the result.
func Run(s *Scenario) (*search.Result, error) {
	cfg, err := s.Profile.ToConfig()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	res, err := search.New(cfg).Run(context.Background())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return res, nil
}
