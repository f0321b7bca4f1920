package screening

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type singleShotOracle struct {
	response   string
	err        error
	lastPrompt string
}

func (o *singleShotOracle) Classify(_ context.Context, prompt string) (string, error) {
	o.lastPrompt = prompt
	if o.err != nil {
		return "", o.err
	}
	return o.response, nil
}

func mustState(t *testing.T, text string) *State {
	t.Helper()

	state, err := NewState(text)
	if err != nil {
		t.Fatalf("creating state: %v", err)
	}
	return state
}

func TestParseExperienceLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		expect ExperienceLevel
		ok     bool
	}{
		{raw: "entry", expect: ExperienceEntry, ok: true},
		{raw: "Mid", expect: ExperienceMid, ok: true},
		{raw: " senior \n", expect: ExperienceSenior, ok: true},
		{raw: "Entry-level", expect: ExperienceEntry, ok: true},
		{raw: "'senior'", expect: ExperienceSenior, ok: true},
		{raw: "mid.", expect: ExperienceMid, ok: true},
		{raw: "principal"},
		{raw: "senior engineer"},
		{raw: ""},
	}

	for _, tt := range tests {
		level, ok := ParseExperienceLevel(tt.raw)
		if ok != tt.ok {
			t.Fatalf("ParseExperienceLevel(%q): expected ok=%v, got %v", tt.raw, tt.ok, ok)
		}
		if ok && level != tt.expect {
			t.Fatalf("ParseExperienceLevel(%q): expected %s, got %s", tt.raw, tt.expect, level)
		}
	}
}

func TestExperienceClassifierEmbedsBandGuidance(t *testing.T) {
	t.Parallel()

	oracle := &singleShotOracle{response: "mid"}
	classifier := NewExperienceClassifier(oracle, DefaultProfile(), zap.NewNop())

	state := mustState(t, "5 years of Python development.")
	if err := classifier.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.ExperienceLevel != ExperienceMid {
		t.Fatalf("expected mid, got %s", state.ExperienceLevel)
	}

	if !strings.Contains(oracle.lastPrompt, "- entry: 0-2 years") {
		t.Fatalf("expected band guidance in prompt, got: %s", oracle.lastPrompt)
	}

	if !strings.Contains(oracle.lastPrompt, "5 years of Python development.") {
		t.Fatal("expected application text in prompt")
	}
}

func TestExperienceClassifierRejectsUnknownLabel(t *testing.T) {
	t.Parallel()

	oracle := &singleShotOracle{response: "Principal-level"}
	classifier := NewExperienceClassifier(oracle, DefaultProfile(), zap.NewNop())

	state := mustState(t, "some application")
	err := classifier.Run(context.Background(), state)

	var classErr *ClassificationError
	if !errors.As(err, &classErr) {
		t.Fatalf("expected ClassificationError, got %v", err)
	}

	if !classErr.Malformed() {
		t.Fatal("unknown labels must be reported as malformed")
	}

	if state.ExperienceLevel != "" {
		t.Fatalf("failed classification must not set the level, got %s", state.ExperienceLevel)
	}
}

func TestExperienceClassifierRefusesSecondInvocation(t *testing.T) {
	t.Parallel()

	oracle := &singleShotOracle{response: "entry"}
	classifier := NewExperienceClassifier(oracle, DefaultProfile(), zap.NewNop())

	state := mustState(t, "some application")
	if err := classifier.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := classifier.Run(context.Background(), state); err == nil {
		t.Fatal("expected error on second invocation")
	}
}
