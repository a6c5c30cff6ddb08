// Package fixtures checks example bank reports: encoding, macros, parseability,
// income/expense coverage and anonymization.
package fixtures

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/model"
)

// Severity of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule names.
const (
	RuleEncoding   = "encoding"
	RuleMacros     = "macros"
	RuleLegacy     = "legacy-format"
	RuleParse      = "parse"
	RuleCoverage   = "coverage"
	RuleAnonymized = "anonymized"
)

// Finding is one problem with a fixture file or set.
type Finding struct {
	Path     string   `json:"path"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s [%s] %s", f.Path, f.Severity, f.Rule, f.Message)
}

// DefaultPatterns matches every bank report format below the root.
func DefaultPatterns() []string {
	return []string{"**/*.csv", "**/*.xlsx", "**/*.xlsm", "**/*.xls"}
}

// Discover returns the slash-separated paths under root matching any of
// patterns, sorted and without duplicates.
func Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var out []string
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", p, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Linter runs the fixture checks.
type Linter struct {
	Registry *importer.Registry
	Patterns []string
	// PlaceholderAccount is the account-number prefix that marks anonymized data.
	PlaceholderAccount string
}

// NewLinter returns a Linter with the default registry and patterns.
func NewLinter() *Linter {
	return &Linter{
		Registry:           importer.DefaultRegistry(),
		Patterns:           DefaultPatterns(),
		PlaceholderAccount: "FI00",
	}
}

var ibanLike = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[0-9A-Z ]{8,}$`)

// setStats counts income and expense rows per directory.
type setStats struct {
	income, expense int
}

// Lint checks every fixture under root. Each directory of fixtures is one
// example set.
func (l *Linter) Lint(root string) ([]Finding, error) {
	files, err := Discover(root, l.Patterns)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	sets := make(map[string]*setStats)
	var setOrder []string

	for _, rel := range files {
		dir := path.Dir(rel)
		if _, ok := sets[dir]; !ok {
			sets[dir] = &setStats{}
			setOrder = append(setOrder, dir)
		}

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}

		ff, txns := l.checkFile(rel, data)
		findings = append(findings, ff...)
		for _, t := range txns {
			switch {
			case t.IsIncome():
				sets[dir].income++
			case t.IsExpense():
				sets[dir].expense++
			}
		}
	}

	for _, dir := range setOrder {
		s := sets[dir]
		if s.income == 0 {
			findings = append(findings, Finding{
				Path: dir, Severity: SeverityError, Rule: RuleCoverage,
				Message: "example set has no income transaction",
			})
		}
		if s.expense == 0 {
			findings = append(findings, Finding{
				Path: dir, Severity: SeverityError, Rule: RuleCoverage,
				Message: "example set has no expense transaction",
			})
		}
	}
	return findings, nil
}

func (l *Linter) checkFile(rel string, data []byte) ([]Finding, []model.Transaction) {
	ext := strings.ToLower(path.Ext(rel))
	errorf := func(rule, format string, args ...any) Finding {
		return Finding{Path: rel, Severity: SeverityError, Rule: rule, Message: fmt.Sprintf(format, args...)}
	}

	switch ext {
	case ".xls":
		return []Finding{errorf(RuleLegacy, "legacy binary workbook; save as .xlsx")}, nil
	case ".xlsm":
		return []Finding{errorf(RuleMacros, "macro-enabled workbook; save as .xlsx")}, nil
	case ".xlsx":
		hasMacros, err := containsVBA(data)
		if err != nil {
			return []Finding{errorf(RuleParse, "not a valid workbook: %v", err)}, nil
		}
		if hasMacros {
			return []Finding{errorf(RuleMacros, "workbook contains a VBA project")}, nil
		}
	case ".csv":
		if !utf8.Valid(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))) {
			return []Finding{errorf(RuleEncoding, "file is not valid UTF-8")}, nil
		}
	}

	p, err := l.Registry.ForPath(rel)
	if err != nil {
		return []Finding{errorf(RuleParse, "%v", err)}, nil
	}
	txns, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return []Finding{errorf(RuleParse, "%v", err)}, nil
	}

	var findings []Finding
	for _, t := range txns {
		acct := strings.ToUpper(strings.TrimSpace(t.RecipientAccount))
		if acct == "" || strings.HasPrefix(acct, l.PlaceholderAccount) || !ibanLike.MatchString(acct) {
			continue
		}
		findings = append(findings, Finding{
			Path:     rel,
			Severity: SeverityWarning,
			Rule:     RuleAnonymized,
			Message:  fmt.Sprintf("row %d: account %s does not use the %s placeholder", t.Row, acct, l.PlaceholderAccount),
		})
	}
	return findings, txns
}

// containsVBA reports whether the OOXML package in data carries a VBA project.
func containsVBA(data []byte) (bool, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false, err
	}
	for _, f := range zr.File {
		if strings.EqualFold(path.Base(f.Name), "vbaProject.bin") {
			return true, nil
		}
	}
	return false, nil
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
