package screening

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"hr-screener/internal/logger"
	"hr-screener/internal/oracle"

	"go.uber.org/zap"
)

//go:embed prompts/skills.md
var skillsPromptTemplate string

// SkillAssessor asks the oracle for a binary skill verdict against the
// profile's mandatory skills plus a short justification, and validates both
// before writing them to the record.
type SkillAssessor struct {
	oracle  oracle.Classifier
	profile *JobProfile
	logger  *zap.Logger
}

func NewSkillAssessor(classifier oracle.Classifier, profile *JobProfile, log *zap.Logger) *SkillAssessor {
	return &SkillAssessor{
		oracle:  classifier,
		profile: profile,
		logger:  logger.WithFields(log),
	}
}

func (a *SkillAssessor) Name() string { return "skill_assessor" }

func (a *SkillAssessor) Run(ctx context.Context, state *State) error {
	if state.Terminal() || state.SkillMatch != "" {
		return fmt.Errorf("skill match is already set for screening %s", state.ID)
	}

	prompt := buildSkillsPrompt(a.profile, state.ApplicationText)

	a.logger.Debug("skill assessment request",
		zap.String("screening_id", state.ID),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, promptPreviewLen)),
	)

	raw, err := a.oracle.Classify(ctx, prompt)
	if err != nil {
		return &AssessmentError{Err: err}
	}

	match, justification, aerr := parseSkillVerdict(raw)
	if aerr != nil {
		a.logger.Warn("oracle returned a malformed skill verdict",
			zap.String("screening_id", state.ID),
			zap.String("reason", aerr.Reason),
			zap.String("response", logger.TruncateForLog(raw, promptPreviewLen)),
		)
		return aerr
	}

	state.SkillMatch = match
	state.SkillJustification = justification

	a.logger.Debug("skills assessed",
		zap.String("screening_id", state.ID),
		zap.String("skill_match", string(match)),
	)

	return nil
}

func buildSkillsPrompt(profile *JobProfile, applicationText string) string {
	prompt := strings.ReplaceAll(skillsPromptTemplate, "{{TITLE}}", profile.Title)
	prompt = strings.ReplaceAll(prompt, "{{MANDATORY_SKILLS}}", profile.mandatorySkillList())
	prompt = strings.ReplaceAll(prompt, "{{PREFERRED_SKILLS}}", profile.preferredSkillList())
	return strings.ReplaceAll(prompt, "{{APPLICATION}}", applicationText)
}

func parseSkillVerdict(raw string) (SkillMatch, string, *AssessmentError) {
	cleaned := extractJSON(raw)

	var verdict struct {
		Match         string `json:"match"`
		Justification string `json:"justification"`
	}

	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return "", "", &AssessmentError{Reason: "response is not a valid JSON verdict", Raw: raw}
	}

	match, ok := ParseSkillMatch(verdict.Match)
	if !ok {
		return "", "", &AssessmentError{
			Reason: fmt.Sprintf("verdict %q is not match or no_match", verdict.Match),
			Raw:    raw,
		}
	}

	justification := strings.TrimSpace(verdict.Justification)
	if justification == "" {
		return "", "", &AssessmentError{Reason: "justification is empty", Raw: raw}
	}

	return match, justification, nil
}

// extractJSON strips the markdown code fences models wrap JSON in despite
// instructions not to.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
