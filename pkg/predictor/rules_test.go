package predictor

import (
	"testing"
	"time"

	"ai-music-be/internal/entity"
	"ai-music-be/pkg/preference"
)

func snapshotAt(hour int, weekday time.Weekday, sessionSeconds, interactions int) entity.ContextSnapshot {
	// 2026-03-02 is a Monday; shift to the wanted weekday.
	base := time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
	base = base.AddDate(0, 0, int(weekday)-int(base.Weekday()))
	return entity.ContextSnapshot{
		Time:                   base,
		SessionDurationSeconds: sessionSeconds,
		InteractionCount:       interactions,
		MinutesSinceLastChange: 30,
	}
}

func TestDefaultRuleTableMatches(t *testing.T) {
	table, err := NewDefaultRuleTable()
	if err != nil {
		t.Fatalf("compile default rules: %v", err)
	}

	tests := []struct {
		name     string
		snap     entity.ContextSnapshot
		wantRule string
	}{
		{
			name:     "late evening",
			snap:     snapshotAt(23, time.Tuesday, 600, 5),
			wantRule: "late_night_wind_down",
		},
		{
			name:     "early morning",
			snap:     snapshotAt(3, time.Wednesday, 600, 5),
			wantRule: "late_night_wind_down",
		},
		{
			name:     "burst of edits in a short session",
			snap:     snapshotAt(14, time.Tuesday, 900, 200),
			wantRule: "rapid_editing",
		},
		{
			name:     "long listening session",
			snap:     snapshotAt(15, time.Thursday, 9000, 20),
			wantRule: "marathon_session",
		},
		{
			name:     "saturday morning",
			snap:     snapshotAt(9, time.Saturday, 600, 5),
			wantRule: "weekend_morning",
		},
		{
			name:     "weekday afternoon, nothing special",
			snap:     snapshotAt(14, time.Tuesday, 600, 5),
			wantRule: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := table.Match(tt.snap)
			if err != nil {
				t.Fatalf("match: %v", err)
			}
			got := ""
			if rule != nil {
				got = rule.Name
			}
			if got != tt.wantRule {
				t.Errorf("matched %q, want %q", got, tt.wantRule)
			}
		})
	}
}

func TestRuleOrderDecidesOverlappingMatches(t *testing.T) {
	table, err := NewDefaultRuleTable()
	if err != nil {
		t.Fatalf("compile default rules: %v", err)
	}

	// 23:00 with a marathon-length session satisfies both the late night
	// and the marathon predicates; declaration order picks late night.
	snap := snapshotAt(23, time.Friday, 9000, 10)
	rule, err := table.Match(snap)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if rule == nil || rule.Name != "late_night_wind_down" {
		t.Fatalf("expected first declared rule to win, got %+v", rule)
	}
}

func TestNewRuleTableRejectsBadPredicate(t *testing.T) {
	_, err := NewRuleTable([]Rule{
		{
			Name:      "broken",
			Predicate: "hour >>> 2",
			Overlay:   preference.Document{},
		},
	})
	if err == nil {
		t.Fatal("expected compile error")
	}
}

func TestRuleOverlaysValidate(t *testing.T) {
	for _, rule := range DefaultRules() {
		if err := preference.Validate(rule.Overlay, preference.DefaultFieldTable); err != nil {
			t.Errorf("rule %q overlay invalid: %v", rule.Name, err)
		}
	}
}
