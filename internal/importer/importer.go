package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pennywise-app/pennywise/internal/model"
)

// ErrUnsupportedFormat is returned for files no registered parser can read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Parser converts a bank report into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
	Source() model.Source
}

// Registry holds named parsers and the file extensions they claim.
type Registry struct {
	parsers    map[string]Parser
	extensions map[string]string
}

// FileInfo describes a bank report in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers:    make(map[string]Parser),
		extensions: make(map[string]string),
	}
}

// Register adds a parser for the given extensions. Panics on duplicate format or extension.
func (r *Registry) Register(p Parser, exts ...string) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if _, ok := r.extensions[ext]; ok {
			panic("duplicate parser extension: " + ext)
		}
		r.extensions[ext] = key
	}
}

// ForPath returns the parser registered for the file's extension.
func (r *Registry) ForPath(path string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := r.extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return r.parsers[format], nil
}

// Supports reports whether some parser claims the file's extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&FinnishCSVParser{}, ".csv")
	r.Register(&XLSXParser{}, ".xlsx", ".xlsm")
	return r
}

// Report is an imported bank report split by direction.
// Expense amounts are positive magnitudes.
type Report struct {
	Income   []model.Transaction
	Expenses []model.Transaction
	Zero     int // rows with a zero amount, dropped
}

// Split separates parsed transactions into income and expenses.
func Split(txns []model.Transaction) Report {
	var rep Report
	for _, t := range txns {
		switch {
		case t.IsIncome():
			rep.Income = append(rep.Income, t)
		case t.IsExpense():
			t.Amount = t.Amount.Abs()
			rep.Expenses = append(rep.Expenses, t)
		default:
			rep.Zero++
		}
	}
	return rep
}

// ImportFile parses the bank report at path with the matching parser from reg
// and splits it into income and expenses. A non-empty source overrides the
// parser's default source tag.
func ImportFile(reg *Registry, path string, source model.Source) (Report, error) {
	p, err := reg.ForPath(path)
	if err != nil {
		return Report{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return Report{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	if source == "" {
		source = p.Source()
	}
	for i := range txns {
		txns[i].Source = source
	}
	return Split(txns), nil
}

// importDir is the subdirectory for incoming bank reports.
const importDir = "import"

// processedDir is the subdirectory for imported bank reports.
const processedDir = "import/processed"

// Scan returns the bank reports in <repoRoot>/import/ that reg can parse.
func Scan(reg *Registry, repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !reg.Supports(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
