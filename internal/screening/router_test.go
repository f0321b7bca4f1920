package screening

import (
	"context"
	"errors"
	"testing"
)

func TestRouteCoversAllValidPairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     ExperienceLevel
		match     SkillMatch
		decision  Decision
		rationale string
	}{
		{ExperienceEntry, SkillsMatch, DecisionShortlist, RationaleShortlist},
		{ExperienceMid, SkillsMatch, DecisionShortlist, RationaleShortlist},
		{ExperienceSenior, SkillsMatch, DecisionShortlist, RationaleShortlist},
		{ExperienceEntry, SkillsNoMatch, DecisionReject, RationaleReject},
		{ExperienceMid, SkillsNoMatch, DecisionReject, RationaleReject},
		{ExperienceSenior, SkillsNoMatch, DecisionEscalate, RationaleEscalate},
	}

	for _, tt := range tests {
		decision, rationale, err := Route(tt.level, tt.match)
		if err != nil {
			t.Fatalf("Route(%s, %s): unexpected error: %v", tt.level, tt.match, err)
		}

		if decision != tt.decision {
			t.Fatalf("Route(%s, %s): expected %s, got %s", tt.level, tt.match, tt.decision, decision)
		}

		if rationale != tt.rationale {
			t.Fatalf("Route(%s, %s): unexpected rationale %q", tt.level, tt.match, rationale)
		}
	}
}

func TestRouteIsIdempotent(t *testing.T) {
	t.Parallel()

	first, firstRationale, err := Route(ExperienceSenior, SkillsNoMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, secondRationale, err := Route(ExperienceSenior, SkillsNoMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second || firstRationale != secondRationale {
		t.Fatalf("routing is not idempotent: (%s, %q) vs (%s, %q)", first, firstRationale, second, secondRationale)
	}
}

func TestRouteRejectsUnsetInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level ExperienceLevel
		match SkillMatch
	}{
		{name: "both unset"},
		{name: "match unset", level: ExperienceMid},
		{name: "level unset", match: SkillsMatch},
		{name: "unknown level", level: ExperienceLevel("principal"), match: SkillsMatch},
		{name: "unknown match", level: ExperienceMid, match: SkillMatch("maybe")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Route(tt.level, tt.match)

			var routingErr *RoutingError
			if !errors.As(err, &routingErr) {
				t.Fatalf("expected RoutingError, got %v", err)
			}
		})
	}
}

func TestDecisionRouterRefusesTerminalRecord(t *testing.T) {
	t.Parallel()

	state := &State{
		ApplicationText: "text",
		ExperienceLevel: ExperienceMid,
		SkillMatch:      SkillsMatch,
		Decision:        DecisionShortlist,
	}

	var routingErr *RoutingError
	if err := NewDecisionRouter().Run(context.Background(), state); !errors.As(err, &routingErr) {
		t.Fatalf("expected RoutingError for a terminal record, got %v", err)
	}
}
