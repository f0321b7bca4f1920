package screening

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"hr-screener/internal/logger"
	"hr-screener/internal/oracle"

	"go.uber.org/zap"
)

//go:embed prompts/experience.md
var experiencePromptTemplate string

const promptPreviewLen = 200

// ExperienceClassifier maps the application text to one of the three
// experience levels by delegating the judgment to the oracle and validating
// its answer against the closed enum.
type ExperienceClassifier struct {
	oracle  oracle.Classifier
	profile *JobProfile
	logger  *zap.Logger
}

func NewExperienceClassifier(classifier oracle.Classifier, profile *JobProfile, log *zap.Logger) *ExperienceClassifier {
	return &ExperienceClassifier{
		oracle:  classifier,
		profile: profile,
		logger:  logger.WithFields(log),
	}
}

func (c *ExperienceClassifier) Name() string { return "experience_classifier" }

func (c *ExperienceClassifier) Run(ctx context.Context, state *State) error {
	if state.Terminal() || state.ExperienceLevel != "" {
		return fmt.Errorf("experience level is already set for screening %s", state.ID)
	}

	prompt := buildExperiencePrompt(c.profile, state.ApplicationText)

	c.logger.Debug("experience classification request",
		zap.String("screening_id", state.ID),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, promptPreviewLen)),
	)

	raw, err := c.oracle.Classify(ctx, prompt)
	if err != nil {
		return &ClassificationError{Err: err}
	}

	level, ok := ParseExperienceLevel(raw)
	if !ok {
		// Contract violation, not a transient failure: log it apart from
		// transport errors and do not retry.
		c.logger.Warn("oracle returned an unknown experience label",
			zap.String("screening_id", state.ID),
			zap.String("label", logger.TruncateForLog(raw, promptPreviewLen)),
		)
		return &ClassificationError{Raw: raw}
	}

	state.ExperienceLevel = level

	c.logger.Debug("experience level classified",
		zap.String("screening_id", state.ID),
		zap.String("experience_level", string(level)),
	)

	return nil
}

func buildExperiencePrompt(profile *JobProfile, applicationText string) string {
	prompt := strings.ReplaceAll(experiencePromptTemplate, "{{BANDS}}", profile.bandGuidance())
	return strings.ReplaceAll(prompt, "{{APPLICATION}}", applicationText)
}
