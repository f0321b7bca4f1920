package screening

import (
	"context"
	"fmt"

	"hr-screener/internal/logger"
	"hr-screener/internal/oracle"

	"go.uber.org/zap"
)

// Stage is one step of the screening workflow. A stage owns a subset of the
// State fields: it writes them on success and leaves them untouched on
// failure, so a failed stage never lets a later stage run on partial data.
type Stage interface {
	Name() string
	Run(ctx context.Context, state *State) error
}

// Pipeline executes the screening stages in their fixed order: experience
// classification, skill assessment, decision routing. The ordering carries no
// data dependency between the two oracle stages; it is fixed for
// auditability. A Pipeline is safe for concurrent use; every Screen call
// owns its State exclusively.
type Pipeline struct {
	stages []Stage
	logger *zap.Logger
}

// NewPipeline wires the three standard stages against the given oracle and
// job profile.
func NewPipeline(classifier oracle.Classifier, profile *JobProfile, log *zap.Logger) (*Pipeline, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classification oracle is required")
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("job profile: %w", err)
	}

	log = logger.WithFields(log)

	return &Pipeline{
		stages: []Stage{
			NewExperienceClassifier(classifier, profile, log),
			NewSkillAssessor(classifier, profile, log),
			NewDecisionRouter(),
		},
		logger: log,
	}, nil
}

// Screen runs one submission through the workflow and returns the terminal
// record. A stage error aborts the remaining stages and propagates to the
// caller; no partial decision is ever recorded.
func (p *Pipeline) Screen(ctx context.Context, applicationText string) (*State, error) {
	state, err := NewState(applicationText)
	if err != nil {
		return nil, err
	}

	p.logger.Info("screening started",
		zap.String("screening_id", state.ID),
		zap.Int("text_length", len(state.ApplicationText)),
	)

	for _, stage := range p.stages {
		if err := stage.Run(ctx, state); err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}

		p.logger.Debug("stage completed",
			zap.String("screening_id", state.ID),
			zap.String("stage", stage.Name()),
		)
	}

	p.logger.Info("screening completed",
		zap.String("screening_id", state.ID),
		zap.String("experience_level", string(state.ExperienceLevel)),
		zap.String("skill_match", string(state.SkillMatch)),
		zap.String("decision", string(state.Decision)),
	)

	return state, nil
}
