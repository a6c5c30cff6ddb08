// Package issuetemplate parses and lints issue-template markdown files:
// YAML front matter followed by a markdown body.
package issuetemplate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoFrontMatter is returned when a template does not open with "---".
	ErrNoFrontMatter = errors.New("missing front matter")
	// ErrInvalidFrontMatter is returned when the front matter is not valid YAML.
	ErrInvalidFrontMatter = errors.New("invalid front matter")
)

// StringList accepts either a YAML sequence or a comma-separated string.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = nil
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*l = append(*l, part)
			}
		}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list", node.Line)
	}
}

// FrontMatter is the metadata block of an issue template.
type FrontMatter struct {
	Name      string     `yaml:"name"`
	About     string     `yaml:"about"`
	Title     string     `yaml:"title"`
	Labels    StringList `yaml:"labels"`
	Assignees StringList `yaml:"assignees"`
}

// Heading is an ATX heading in the body.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Template is a parsed issue template.
type Template struct {
	FrontMatter FrontMatter
	Body        string
	Headings    []Heading
}

const delimiter = "---"

// Parse reads an issue template.
func Parse(r io.Reader) (*Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	content := strings.TrimPrefix(string(data), "\ufeff")

	fm, body, bodyLine, err := splitFrontMatter(content)
	if err != nil {
		return nil, err
	}

	t := &Template{Body: body}
	if err := yaml.Unmarshal([]byte(fm), &t.FrontMatter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}
	t.Headings = headings(body, bodyLine)
	return t, nil
}

// splitFrontMatter returns the YAML block, the body and the 1-based line the
// body starts on.
func splitFrontMatter(content string) (string, string, int, error) {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != delimiter {
		return "", "", 0, ErrNoFrontMatter
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == delimiter {
			fm := strings.Join(lines[1:i], "")
			body := strings.Join(lines[i+1:], "")
			return fm, body, i + 2, nil
		}
	}
	return "", "", 0, fmt.Errorf("%w: no closing delimiter", ErrNoFrontMatter)
}

func headings(body string, firstLine int) []Heading {
	var out []Heading
	inFence := false
	sc := bufio.NewScanner(strings.NewReader(body))
	for n := firstLine; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), " \t\r")
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence || len(line)-len(trimmed) > 3 {
			continue
		}

		level := 0
		for level < len(trimmed) && trimmed[level] == '#' {
			level++
		}
		if level == 0 || level > 6 {
			continue
		}
		rest := trimmed[level:]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		text := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(rest), "#"))
		out = append(out, Heading{Level: level, Text: text, Line: n})
	}
	return out
}

// Section returns the first heading whose text equals name, ignoring case.
func (t *Template) Section(name string) (Heading, bool) {
	for _, h := range t.Headings {
		if strings.EqualFold(h.Text, name) {
			return h, true
		}
	}
	return Heading{}, false
}
