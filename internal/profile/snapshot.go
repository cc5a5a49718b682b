package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/search"
)

// snapshot is the JSON form of a configuration, used by the run archive so
// an archived run can be replayed byte-for-byte. Constants are a slice, not
// a map: order is part of the configuration.
type snapshot struct {
	Target     float64            `json:"target"`
	Atoms      int                `json:"atoms"`
	Constants  []snapshotConstant `json:"constants,omitempty"`
	Unary      []string           `json:"unary,omitempty"`
	Power      bool               `json:"power"`
	MaxCost    int                `json:"max_cost"`
	MaxSeconds float64            `json:"max_seconds"`
	KeepTop    int                `json:"keep_top"`
	KeepSide   string             `json:"keep_side"`
	Epsilon    float64            `json:"epsilon,omitempty"`
}

type snapshotConstant struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MarshalConfig serializes a configuration for archival.
func MarshalConfig(cfg search.Config) ([]byte, error) {
	s := snapshot{
		Target:     cfg.Target,
		Atoms:      cfg.AtomCount,
		Power:      cfg.PowerEnabled,
		MaxCost:    cfg.MaxCost,
		MaxSeconds: cfg.MaxDuration.Seconds(),
		KeepTop:    cfg.KeepTop,
		KeepSide:   cfg.KeepSide.String(),
		Epsilon:    cfg.Epsilon,
	}
	for _, k := range cfg.Constants {
		s.Constants = append(s.Constants, snapshotConstant{Name: k.Name, Value: k.Value})
	}
	for _, op := range cfg.Unaries {
		s.Unary = append(s.Unary, op.String())
	}
	return json.Marshal(s)
}

// UnmarshalConfig restores an archived configuration.
func UnmarshalConfig(data []byte) (search.Config, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return search.Config{}, fmt.Errorf("decoding config snapshot: %w", err)
	}

	side, err := search.ParseSide(s.KeepSide)
	if err != nil {
		return search.Config{}, err
	}
	cfg := search.Config{
		Target:       s.Target,
		AtomCount:    s.Atoms,
		PowerEnabled: s.Power,
		MaxCost:      s.MaxCost,
		MaxDuration:  time.Duration(s.MaxSeconds * float64(time.Second)),
		KeepTop:      s.KeepTop,
		KeepSide:     side,
		Epsilon:      s.Epsilon,
	}
	for _, k := range s.Constants {
		cfg.Constants = append(cfg.Constants, search.Constant{Name: k.Name, Value: k.Value})
	}
	for _, name := range s.Unary {
		op, ok := expr.ParseUnaryOp(name)
		if !ok {
			return search.Config{}, fmt.Errorf("unknown unary function %q in config snapshot", name)
		}
		cfg.Unaries = append(cfg.Unaries, op)
	}
	return cfg, nil
}

// WriteCUE renders a configuration as a CUE profile file. Used by the
// interactive setup to persist what it collected; the output round-trips
// through Compile.
func WriteCUE(cfg search.Config) string {
	var sb strings.Builder
	sb.WriteString("profile: {\n")
	fmt.Fprintf(&sb, "\ttarget:      %s\n", formatFloat(cfg.Target))
	fmt.Fprintf(&sb, "\tatoms:       %d\n", cfg.AtomCount)
	if len(cfg.Constants) > 0 {
		sb.WriteString("\tconstants: {\n")
		for _, k := range cfg.Constants {
			fmt.Fprintf(&sb, "\t\t%q: %s\n", k.Name, formatFloat(k.Value))
		}
		sb.WriteString("\t}\n")
	}
	if len(cfg.Unaries) > 0 {
		names := make([]string, len(cfg.Unaries))
		for i, op := range cfg.Unaries {
			names[i] = strconv.Quote(op.String())
		}
		fmt.Fprintf(&sb, "\tunary: [%s]\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&sb, "\tpower:       %v\n", cfg.PowerEnabled)
	fmt.Fprintf(&sb, "\tmax_cost:    %d\n", cfg.MaxCost)
	fmt.Fprintf(&sb, "\tmax_seconds: %s\n", formatFloat(cfg.MaxDuration.Seconds()))
	fmt.Fprintf(&sb, "\tkeep_top:    %d\n", cfg.KeepTop)
	fmt.Fprintf(&sb, "\tkeep_side:   %q\n", cfg.KeepSide.String())
	if cfg.Epsilon > 0 {
		fmt.Fprintf(&sb, "\tepsilon:     %s\n", formatFloat(cfg.Epsilon))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// formatFloat renders a float with full round-trip precision, keeping an
// explicit decimal point so CUE reads it as a number, not an int.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
