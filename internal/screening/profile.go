package screening

import (
	"fmt"
	"strings"
)

// ExperienceBand describes one experience level for prompt guidance.
type ExperienceBand struct {
	Level    ExperienceLevel `mapstructure:"level"`
	Guidance string          `mapstructure:"guidance"`
}

// JobProfile is the process-wide target role configuration. It is supplied at
// startup and read-only for the process lifetime; no screening mutates it.
type JobProfile struct {
	Title           string           `mapstructure:"title"`
	MandatorySkills []string         `mapstructure:"mandatory-skills"`
	PreferredSkills []string         `mapstructure:"preferred-skills"`
	Bands           []ExperienceBand `mapstructure:"bands"`
}

// DefaultProfile returns the built-in Python Developer profile used when the
// config file does not override it.
func DefaultProfile() *JobProfile {
	return &JobProfile{
		Title: "Python Developer",
		MandatorySkills: []string{
			"Python programming",
			"Web frameworks (Django, Flask, FastAPI)",
			"Database knowledge (SQL, PostgreSQL, MongoDB)",
			"Version control (Git)",
			"API development",
		},
		PreferredSkills: []string{
			"Testing frameworks",
			"Cloud platforms (AWS/GCP)",
			"DevOps knowledge",
			"Frontend technologies",
		},
		Bands: []ExperienceBand{
			{Level: ExperienceEntry, Guidance: "0-2 years of experience, recent graduate, junior positions"},
			{Level: ExperienceMid, Guidance: "3-7 years of experience, solid foundation, some leadership"},
			{Level: ExperienceSenior, Guidance: "8+ years of experience, leadership roles, expert knowledge"},
		},
	}
}

// Validate checks the profile is complete enough to drive both oracle stages.
func (p *JobProfile) Validate() error {
	if p == nil {
		return fmt.Errorf("job profile is required")
	}

	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("job profile title is required")
	}

	if len(p.MandatorySkills) == 0 {
		return fmt.Errorf("job profile needs at least one mandatory skill")
	}

	seen := map[ExperienceLevel]bool{}
	for _, band := range p.Bands {
		if strings.TrimSpace(band.Guidance) == "" {
			return fmt.Errorf("experience band %q has no guidance", band.Level)
		}
		seen[band.Level] = true
	}

	for _, level := range []ExperienceLevel{ExperienceEntry, ExperienceMid, ExperienceSenior} {
		if !seen[level] {
			return fmt.Errorf("job profile is missing the %q experience band", level)
		}
	}

	return nil
}

func (p *JobProfile) bandGuidance() string {
	lines := make([]string, 0, len(p.Bands))
	for _, band := range p.Bands {
		lines = append(lines, fmt.Sprintf("- %s: %s", band.Level, band.Guidance))
	}
	return strings.Join(lines, "\n")
}

func (p *JobProfile) mandatorySkillList() string {
	return bulletList(p.MandatorySkills)
}

func (p *JobProfile) preferredSkillList() string {
	if len(p.PreferredSkills) == 0 {
		return "- none"
	}
	return bulletList(p.PreferredSkills)
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
