package predictor

import (
	"fmt"

	"ai-music-be/internal/entity"
	"ai-music-be/pkg/preference"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Rule pairs a boolean predicate over the context features with the
// overlay it proposes. Predicates are expr-lang sources compiled once at
// table construction.
type Rule struct {
	Name      string
	Predicate string
	Overlay   preference.Document

	program *vm.Program
}

// RuleTable evaluates rules in declaration order; the first match wins,
// so a reordered table is a behavior change.
type RuleTable struct {
	rules []Rule
}

func NewRuleTable(rules []Rule) (*RuleTable, error) {
	sample := Env(entity.ContextSnapshot{})
	compiled := make([]Rule, len(rules))
	for i, rule := range rules {
		program, err := expr.Compile(rule.Predicate, expr.Env(sample), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", rule.Name, err)
		}
		rule.program = program
		compiled[i] = rule
	}
	return &RuleTable{rules: compiled}, nil
}

// Match returns the first rule whose predicate holds for the snapshot,
// or nil when none fires.
func (t *RuleTable) Match(snap entity.ContextSnapshot) (*Rule, error) {
	env := Env(snap)
	for i := range t.rules {
		out, err := expr.Run(t.rules[i].program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluate rule %q: %w", t.rules[i].Name, err)
		}
		if out.(bool) {
			return &t.rules[i], nil
		}
	}
	return nil, nil
}

// Len reports the number of rules in the table.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// DefaultRules is the built-in table for the music playback context.
// Order matters: the specific situations sit above the broad ones.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:      "late_night_wind_down",
			Predicate: "hour >= 22 || hour < 5",
			Overlay: preference.Document{
				"audio": {
					"volume":    preference.Number(35),
					"normalize": preference.Boolean(true),
				},
				"interface": {
					"theme": preference.Categorical("dark"),
				},
			},
		},
		{
			Name:      "rapid_editing",
			Predicate: "interaction_count >= 120 && session_duration_seconds <= 1800",
			Overlay: preference.Document{
				"audio": {
					"latency":     preference.Number(10),
					"buffer_size": preference.Number(128),
				},
				"interface": {
					"animations": preference.Boolean(false),
				},
			},
		},
		{
			Name:      "marathon_session",
			Predicate: "session_duration_seconds >= 7200",
			Overlay: preference.Document{
				"audio": {
					"volume":    preference.Number(55),
					"normalize": preference.Boolean(true),
				},
			},
		},
		{
			Name:      "weekend_morning",
			Predicate: "day_of_week in [0, 6] && hour >= 8 && hour <= 11",
			Overlay: preference.Document{
				"audio": {
					"eq_preset": preference.Categorical("treble_boost"),
					"volume":    preference.Number(65),
				},
			},
		},
	}
}

// NewDefaultRuleTable compiles DefaultRules.
func NewDefaultRuleTable() (*RuleTable, error) {
	return NewRuleTable(DefaultRules())
}
