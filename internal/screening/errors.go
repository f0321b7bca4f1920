package screening

import (
	"errors"
	"fmt"
)

// ErrInvalidInput rejects empty or whitespace-only application text. It is
// returned synchronously, before any oracle call is made.
var ErrInvalidInput = errors.New("application text must not be empty")

// ClassificationError reports a failed experience classification: either the
// oracle call itself failed (Err is set) or its answer did not map to one of
// the three experience labels (Raw holds the offending output).
type ClassificationError struct {
	Raw string
	Err error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classifying experience: %v", e.Err)
	}
	return fmt.Sprintf("experience label %q is not one of entry, mid or senior", e.Raw)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Malformed reports whether the oracle answered but violated the label
// contract. Malformed answers are never retried.
func (e *ClassificationError) Malformed() bool { return e.Err == nil }

// AssessmentError reports a failed skill assessment: a transport failure (Err
// is set) or a contract violation in the oracle's verdict (Reason describes
// it, Raw holds the output).
type AssessmentError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *AssessmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assessing skills: %v", e.Err)
	}
	return fmt.Sprintf("skill assessment: %s", e.Reason)
}

func (e *AssessmentError) Unwrap() error { return e.Err }

// Malformed reports whether the oracle answered but violated the verdict
// contract. Malformed answers are never retried.
func (e *AssessmentError) Malformed() bool { return e.Err == nil }

// RoutingError signals that the router was invoked with an unset or unknown
// upstream result. Given correct orchestration it is unreachable; it marks a
// sequencing bug, must never be retried, and must never let a partial
// decision be recorded.
type RoutingError struct {
	ExperienceLevel ExperienceLevel
	SkillMatch      SkillMatch
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf(
		"no route for experience level %q and skill match %q; both stages must complete before routing",
		e.ExperienceLevel, e.SkillMatch,
	)
}
