package screening

import "context"

// Rationale templates attached to each terminal decision.
const (
	RationaleShortlist = "Skills match job requirements; proceeding to interview."
	RationaleReject    = "Insufficient skill match for current experience level."
	RationaleEscalate  = "Senior-level experience with skill mismatch; forwarding for alternative roles."
)

// DecisionRouter is the sole decision point of the workflow: a pure function
// of the two upstream classifications, no oracle calls, no hidden state.
type DecisionRouter struct{}

func NewDecisionRouter() *DecisionRouter { return &DecisionRouter{} }

func (r *DecisionRouter) Name() string { return "decision_router" }

func (r *DecisionRouter) Run(_ context.Context, state *State) error {
	if state.Terminal() {
		return &RoutingError{ExperienceLevel: state.ExperienceLevel, SkillMatch: state.SkillMatch}
	}

	decision, rationale, err := Route(state.ExperienceLevel, state.SkillMatch)
	if err != nil {
		return err
	}

	state.Decision = decision
	state.DecisionRationale = rationale

	return nil
}

// Route maps the six valid (experience level, skill match) pairs to a
// terminal decision and its rationale. The table is total over the valid
// pairs; there is deliberately no default that could absorb an unset or
// unknown classification, so a sequencing bug surfaces as a RoutingError
// instead of a silent decision.
func Route(level ExperienceLevel, match SkillMatch) (Decision, string, error) {
	switch match {
	case SkillsMatch:
		switch level {
		case ExperienceEntry, ExperienceMid, ExperienceSenior:
			return DecisionShortlist, RationaleShortlist, nil
		}
	case SkillsNoMatch:
		switch level {
		case ExperienceEntry, ExperienceMid:
			return DecisionReject, RationaleReject, nil
		case ExperienceSenior:
			return DecisionEscalate, RationaleEscalate, nil
		}
	}

	return "", "", &RoutingError{ExperienceLevel: level, SkillMatch: match}
}
