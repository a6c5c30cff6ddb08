package categorize

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for mapping or export formats that are not known.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Category is a named list of description keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Mappings is an ordered list of categories. The first category with a
// matching keyword wins.
type Mappings []Category

// Names returns the category names in match order.
func (m Mappings) Names() []string {
	names := make([]string, len(m))
	for i, c := range m {
		names[i] = c.Name
	}
	return names
}

// Has reports whether name is a known category.
func (m Mappings) Has(name string) bool {
	for _, c := range m {
		if c.Name == name {
			return true
		}
	}
	return false
}

// LoadMappings reads category mappings from path. An empty path or a missing
// file yields DefaultMappings. JSON and YAML files hold an object of
// category → keyword list; CSV files hold "category,keyword" rows.
func LoadMappings(path string) (Mappings, error) {
	if path == "" {
		return DefaultMappings(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultMappings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading category mappings: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		m, err := decodeObject(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		return m, nil
	case ".csv":
		m, err := ReadCSV(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: category mappings %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// decodeObject walks the YAML node tree so file order becomes match order.
// JSON input is parsed by the same path.
func decodeObject(data []byte) (Mappings, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return Mappings{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected an object of category to keywords", root.Line)
	}

	m := make(Mappings, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var keywords []string
		if err := val.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("line %d: category %q: %w", val.Line, key.Value, err)
		}
		m = m.add(key.Value, keywords...)
	}
	return m, nil
}

func (m Mappings) add(name string, keywords ...string) Mappings {
	name = strings.TrimSpace(name)
	for i := range m {
		if m[i].Name == name {
			m[i].Keywords = append(m[i].Keywords, keywords...)
			return m
		}
	}
	return append(m, Category{Name: name, Keywords: keywords})
}

const (
	numFields  = 2
	colName    = 0
	colKeyword = 1
)

// ReadCSV reads "category,keyword" rows (with header).
func ReadCSV(r io.Reader) (Mappings, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mappings CSV: %w", err)
	}

	m := Mappings{}
	if len(records) == 0 {
		return m, nil
	}
	for i, rec := range records[1:] {
		if rec[colName] == "" || rec[colKeyword] == "" {
			return nil, fmt.Errorf("row %d: category and keyword are required", i+2)
		}
		m = m.add(rec[colName], rec[colKeyword])
	}
	return m, nil
}

// WriteCSV writes mappings as "category,keyword" rows.
func WriteCSV(w io.Writer, m Mappings) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"category", "keyword"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range m {
		for _, kw := range c.Keywords {
			if err := cw.Write([]string{c.Name, kw}); err != nil {
				return fmt.Errorf("writing %s: %w", c.Name, err)
			}
		}
	}
	return cw.Error()
}

// MarshalYAML encodes mappings as an ordered YAML mapping.
func (m Mappings) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range m {
		kws := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, kw := range c.Keywords {
			kws.Content = append(kws.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kw})
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
			kws,
		)
	}
	return root, nil
}

// SaveMappings writes mappings to path, choosing YAML or CSV by extension.
func SaveMappings(path string, m Mappings) error {
	var b strings.Builder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("marshaling mappings: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("marshaling mappings: %w", err)
		}
	case ".csv":
		if err := WriteCSV(&b, m); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: category mappings %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := renameio.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing mappings: %w", err)
	}
	return nil
}
