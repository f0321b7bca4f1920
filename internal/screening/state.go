package screening

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExperienceLevel is the closed set of experience classifications.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// SkillMatch is the closed set of skill assessment verdicts.
type SkillMatch string

const (
	SkillsMatch   SkillMatch = "match"
	SkillsNoMatch SkillMatch = "no_match"
)

// Decision is the closed set of terminal screening outcomes.
type Decision string

const (
	DecisionShortlist Decision = "shortlist"
	DecisionEscalate  Decision = "escalate"
	DecisionReject    Decision = "reject"
)

// State is the single record threaded through one screening. It is created
// with only the application text populated; each stage writes its own fields
// and never touches fields owned by another stage. Once the decision is set
// the record is terminal and safe to persist or display. A State must not be
// shared across concurrent screenings.
type State struct {
	ID              string
	CreatedAt       time.Time
	ApplicationText string

	ExperienceLevel    ExperienceLevel
	SkillMatch         SkillMatch
	SkillJustification string

	Decision          Decision
	DecisionRationale string
}

// NewState creates the record for one submission. The application text is
// trimmed and must be non-empty; otherwise ErrInvalidInput is returned before
// any stage can run.
func NewState(applicationText string) (*State, error) {
	applicationText = strings.TrimSpace(applicationText)
	if applicationText == "" {
		return nil, ErrInvalidInput
	}

	return &State{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		ApplicationText: applicationText,
	}, nil
}

// Terminal reports whether the record has reached a final decision.
func (s *State) Terminal() bool {
	return s.Decision != ""
}

// ParseExperienceLevel maps a raw oracle answer to the closed experience enum.
// It tolerates the label decorations models tend to add (casing, quoting,
// trailing punctuation, a "-level" suffix) but never guesses: anything that
// does not normalize to one of the three labels is rejected.
func ParseExperienceLevel(raw string) (ExperienceLevel, bool) {
	label := normalizeLabel(raw)
	label = strings.TrimSuffix(label, "-level")
	label = strings.TrimSuffix(label, " level")

	switch label {
	case "entry":
		return ExperienceEntry, true
	case "mid":
		return ExperienceMid, true
	case "senior":
		return ExperienceSenior, true
	default:
		return "", false
	}
}

// ParseSkillMatch maps a raw oracle verdict to the closed skill-match enum.
func ParseSkillMatch(raw string) (SkillMatch, bool) {
	label := normalizeLabel(raw)

	switch label {
	case "match":
		return SkillsMatch, true
	case "no_match", "no match":
		return SkillsNoMatch, true
	default:
		return "", false
	}
}

func normalizeLabel(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, "'\"`*.")
	return strings.TrimSpace(label)
}
