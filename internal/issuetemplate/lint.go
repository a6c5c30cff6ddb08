package issuetemplate

import (
	"errors"
	"fmt"
	"io"
)

// RequiredSections are the level-2 headings every feature template carries.
var RequiredSections = []string{
	"Feature Description",
	"Tasks",
	"Technical Details",
	"Testing",
	"Documentation",
}

// Problem is one lint failure.
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}

// Lint checks a parsed template for required metadata and sections.
func Lint(t *Template, required []string) []Problem {
	var problems []Problem
	if t.FrontMatter.Name == "" {
		problems = append(problems, Problem{Field: "name", Message: "required"})
	}
	if t.FrontMatter.About == "" {
		problems = append(problems, Problem{Field: "about", Message: "required"})
	}

	for _, name := range required {
		h, ok := t.Section(name)
		switch {
		case !ok:
			problems = append(problems, Problem{Field: "section", Message: fmt.Sprintf("missing %q", name)})
		case h.Level != 2:
			problems = append(problems, Problem{
				Field:   "section",
				Message: fmt.Sprintf("line %d: %q should be a level-2 heading", h.Line, name),
			})
		}
	}
	return problems
}

// LintReader parses r and lints it against RequiredSections. Parse failures
// are reported as a front matter problem.
func LintReader(r io.Reader) ([]Problem, error) {
	t, err := Parse(r)
	if err != nil {
		if errors.Is(err, ErrNoFrontMatter) || errors.Is(err, ErrInvalidFrontMatter) {
			return []Problem{{Field: "front matter", Message: err.Error()}}, nil
		}
		return nil, err
	}
	return Lint(t, RequiredSections), nil
}
