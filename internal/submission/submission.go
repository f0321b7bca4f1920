// Package submission shapes the supported input methods into the single
// application-text contract of the screening workflow: pasted text, a text
// file (documents are assumed already extracted to plain text upstream), or a
// structured form flattened into a narrative.
package submission

import (
	"fmt"
	"os"
	"strings"
)

// FromFile reads a plain-text application from disk.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading application file %q: %w", path, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Form is the structured quick-application shape.
type Form struct {
	Name            string
	ExperienceYears int
	Skills          []string
	AdditionalInfo  string
}

// Narrative flattens the form into the single free-text string the workflow
// consumes. Empty fields are omitted.
func (f Form) Narrative() string {
	var lines []string

	if name := strings.TrimSpace(f.Name); name != "" {
		lines = append(lines, "Name: "+name)
	}

	if f.ExperienceYears > 0 {
		lines = append(lines, fmt.Sprintf("Experience: %d years", f.ExperienceYears))
	}

	skills := make([]string, 0, len(f.Skills))
	for _, skill := range f.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	if len(skills) > 0 {
		lines = append(lines, "Skills: "+strings.Join(skills, ", "))
	}

	if info := strings.TrimSpace(f.AdditionalInfo); info != "" {
		lines = append(lines, "Additional Information: "+info)
	}

	return strings.Join(lines, "\n")
}

// Empty reports whether the form carries no usable content.
func (f Form) Empty() bool {
	return f.Narrative() == ""
}
