// Package tags holds the static tag metadata the tree builder consults: the
// set of known tag names and the subset that never opens a scope for children
// (void and self-closing tags).
//
// A Table is built once by the caller and passed to whatever needs it. It is
// never modified afterwards, so one Table can back any number of concurrent
// builds.
package tags

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed allTags.json
var defaultAllTags []byte

//go:embed selfClosingTags.json
var defaultSelfClosingTags []byte

const (
	AllTagsTable         = "allTags"
	SelfClosingTagsTable = "selfClosingTags"
)

// tableSchema is the shape both tables must have: a flat array of non-empty
// tag name strings.
const tableSchema = `{
	"type": "array",
	"items": {"type": "string", "minLength": 1}
}`

var compiledSchema *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(tableSchema))
	if err != nil {
		panic(fmt.Sprintf("tags: compiling table schema: %v", err))
	}
	compiledSchema = s
}

// LoadError reports a tag table that could not be read or did not have the
// expected shape. No Table is produced alongside it.
type LoadError struct {
	Table string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s tag table: %v", e.Table, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// Table is an immutable snapshot of the tag metadata.
type Table struct {
	all         map[string]struct{}
	selfClosing map[string]struct{}
}

// Load reads both tables as JSON arrays of strings.
func Load(all, selfClosing io.Reader) (*Table, error) {
	allNames, err := readTable(AllTagsTable, all)
	if err != nil {
		return nil, err
	}
	selfNames, err := readTable(SelfClosingTagsTable, selfClosing)
	if err != nil {
		return nil, err
	}
	return &Table{
		all:         toSet(allNames),
		selfClosing: toSet(selfNames),
	}, nil
}

// LoadFiles is Load for two files on disk.
func LoadFiles(allPath, selfClosingPath string) (*Table, error) {
	all, err := os.Open(allPath)
	if err != nil {
		return nil, &LoadError{Table: AllTagsTable, Cause: errors.Wrapf(err, "opening %s", allPath)}
	}
	defer all.Close()

	selfClosing, err := os.Open(selfClosingPath)
	if err != nil {
		return nil, &LoadError{Table: SelfClosingTagsTable, Cause: errors.Wrapf(err, "opening %s", selfClosingPath)}
	}
	defer selfClosing.Close()

	return Load(all, selfClosing)
}

// Default returns a Table built from the tables compiled into the binary.
func Default() (*Table, error) {
	return Load(bytes.NewReader(defaultAllTags), bytes.NewReader(defaultSelfClosingTags))
}

// MustDefault is Default for package-level initialization; it panics if the
// embedded tables are broken.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

func readTable(name string, r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Table: name, Cause: errors.Wrap(err, "reading table")}
	}

	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &LoadError{Table: name, Cause: errors.Wrap(err, "decoding table")}
	}
	if !result.Valid() {
		var b strings.Builder
		for _, e := range result.Errors() {
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(e.String())
		}
		return nil, &LoadError{Table: name, Cause: errors.New(b.String())}
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, &LoadError{Table: name, Cause: errors.Wrap(err, "decoding table")}
	}
	return names, nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AllTags returns every known tag name, sorted.
func (t *Table) AllTags() []string {
	return sortedKeys(t.all)
}

// SelfClosingTags returns the void/self-closing tag names, sorted.
func (t *Table) SelfClosingTags() []string {
	return sortedKeys(t.selfClosing)
}

// IsSelfClosing reports whether the bare tag name never opens a scope.
// Lookup is case-insensitive.
func (t *Table) IsSelfClosing(tagName string) bool {
	_, ok := t.selfClosing[strings.ToLower(tagName)]
	return ok
}

// IsKnown reports whether the bare tag name appears in the all-tags table.
func (t *Table) IsKnown(tagName string) bool {
	_, ok := t.all[strings.ToLower(tagName)]
	return ok
}
