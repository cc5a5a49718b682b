package harness

import (
	"fmt"
	"time"

	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/profile"
	"github.com/quarrylabs/exprquest/internal/search"
)

// Scenario is one conformance test case.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Profile     Profile     `yaml:"profile"`
	Assertions  []Assertion `yaml:"assertions,omitempty"`
}

// Profile is the YAML form of a search configuration. It mirrors the CUE
// profile schema; constants are listed (not mapped) so their order is
// explicit in the scenario file.
type Profile struct {
	Target     float64            `yaml:"target"`
	Atoms      int                `yaml:"atoms"`
	Constants  []ConstantSpec     `yaml:"constants,omitempty"`
	Unary      []string           `yaml:"unary,omitempty"`
	Power      bool               `yaml:"power,omitempty"`
	MaxCost    int                `yaml:"max_cost"`
	MaxSeconds *float64           `yaml:"max_seconds,omitempty"`
	KeepTop    int                `yaml:"keep_top"`
	KeepSide   string             `yaml:"keep_side,omitempty"`
	Epsilon    float64            `yaml:"epsilon,omitempty"`
}

// ConstantSpec is one named constant in a scenario profile.
type ConstantSpec struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// Assertion is one check over a scenario's result set.
type Assertion struct {
	Type  string  `yaml:"type"`
	Bound float64 `yaml:"bound,omitempty"`
	Count int     `yaml:"count,omitempty"`
	Value string  `yaml:"value,omitempty"`
}

// ToConfig converts the scenario profile into a search configuration.
func (p *Profile) ToConfig() (search.Config, error) {
	side, err := search.ParseSide(p.KeepSide)
	if err != nil {
		return search.Config{}, err
	}

	cfg := search.Config{
		Target:       p.Target,
		AtomCount:    p.Atoms,
		PowerEnabled: p.Power,
		MaxCost:      p.MaxCost,
		MaxDuration:  time.Duration(profile.DefaultMaxSeconds * float64(time.Second)),
		KeepTop:      p.KeepTop,
		KeepSide:     side,
		Epsilon:      p.Epsilon,
	}
	if p.MaxSeconds != nil {
		cfg.MaxDuration = time.Duration(*p.MaxSeconds * float64(time.Second))
	}
	if cfg.KeepTop == 0 {
		cfg.KeepTop = profile.DefaultKeepTop
	}
	for _, k := range p.Constants {
		cfg.Constants = append(cfg.Constants, search.Constant{Name: k.Name, Value: k.Value})
	}
	for _, name := range p.Unary {
		op, ok := expr.ParseUnaryOp(name)
		if !ok {
			return search.Config{}, fmt.Errorf("unknown unary function %q", name)
		}
		cfg.Unaries = append(cfg.Unaries, op)
	}
	return cfg, nil
}
