package screening

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSkillAssessorWritesVerdictAndJustification(t *testing.T) {
	t.Parallel()

	oracle := &singleShotOracle{
		response: `{"match": "match", "justification": "Covers Python, Django and Git."}`,
	}
	assessor := NewSkillAssessor(oracle, DefaultProfile(), zap.NewNop())

	state := mustState(t, "Python, Django, Git, PostgreSQL.")
	if err := assessor.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.SkillMatch != SkillsMatch {
		t.Fatalf("expected match, got %s", state.SkillMatch)
	}

	if state.SkillJustification != "Covers Python, Django and Git." {
		t.Fatalf("unexpected justification: %q", state.SkillJustification)
	}

	if !strings.Contains(oracle.lastPrompt, "Python Developer") {
		t.Fatal("expected role title in prompt")
	}

	if !strings.Contains(oracle.lastPrompt, "- Python programming") {
		t.Fatal("expected mandatory skills in prompt")
	}

	if !strings.Contains(oracle.lastPrompt, "- Testing frameworks") {
		t.Fatal("expected preferred skills in prompt")
	}
}

func TestSkillAssessorHandlesFencedJSON(t *testing.T) {
	t.Parallel()

	oracle := &singleShotOracle{
		response: "```json\n{\"match\": \"no_match\", \"justification\": \"No Python background.\"}\n```",
	}
	assessor := NewSkillAssessor(oracle, DefaultProfile(), zap.NewNop())

	state := mustState(t, "C++ game developer.")
	if err := assessor.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.SkillMatch != SkillsNoMatch {
		t.Fatalf("expected no_match, got %s", state.SkillMatch)
	}
}

func TestSkillAssessorContractViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
	}{
		{name: "not json", response: "Match"},
		{name: "unknown verdict", response: `{"match": "partial", "justification": "ok"}`},
		{name: "empty justification", response: `{"match": "match", "justification": "  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			oracle := &singleShotOracle{response: tt.response}
			assessor := NewSkillAssessor(oracle, DefaultProfile(), zap.NewNop())

			state := mustState(t, "some application")
			err := assessor.Run(context.Background(), state)

			var assessErr *AssessmentError
			if !errors.As(err, &assessErr) {
				t.Fatalf("expected AssessmentError, got %v", err)
			}

			if !assessErr.Malformed() {
				t.Fatal("contract violations must be reported as malformed")
			}

			if state.SkillMatch != "" || state.SkillJustification != "" {
				t.Fatal("failed assessment must not write to the record")
			}
		})
	}
}

func TestSkillAssessorPropagatesOracleFailure(t *testing.T) {
	t.Parallel()

	oracle := &singleShotOracle{err: errors.New("timeout")}
	assessor := NewSkillAssessor(oracle, DefaultProfile(), zap.NewNop())

	state := mustState(t, "some application")
	err := assessor.Run(context.Background(), state)

	var assessErr *AssessmentError
	if !errors.As(err, &assessErr) {
		t.Fatalf("expected AssessmentError, got %v", err)
	}

	if assessErr.Malformed() {
		t.Fatal("transport failures must not be reported as malformed")
	}
}

func TestParseSkillMatch(t *testing.T) {
	t.Parallel()

	if match, ok := ParseSkillMatch("No Match"); !ok || match != SkillsNoMatch {
		t.Fatalf("expected no_match, got %q (ok=%v)", match, ok)
	}

	if _, ok := ParseSkillMatch("strong match"); ok {
		t.Fatal("expected rejection of labels outside the closed set")
	}
}
