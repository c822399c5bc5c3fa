package callsite

import (
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"format-generator/internal/kind"
	"format-generator/internal/typedmap"
)

// File is the top-level structure of a call-site file.
type File struct {
	// Version of the schema.
	Version string `yaml:"version"`
	// Package is the name of the generated Go package.
	Package string `yaml:"package"`
	// Imports maps a qualifier used in sinks and type names to an import path.
	Imports map[string]string `yaml:"imports,omitempty"`
	// Packages are Go package patterns loaded to resolve named parameter types.
	Packages []string `yaml:"packages,omitempty"`
	// Formats replaces the default type -> format fragment table.
	Formats []FormatDef `yaml:"formats,omitempty"`
	// Specifiers replaces the default verb -> type table.
	Specifiers []SpecifierDef `yaml:"specifiers,omitempty"`
	// Calls are the functions to generate.
	Calls []Call `yaml:"calls"`

	source []byte
}

// FormatDef binds a type to the format fragment substituted for it.
type FormatDef struct {
	Type   string `yaml:"type"`
	Format string `yaml:"format"`
}

// SpecifierDef binds a format verb to the type its argument must have.
type SpecifierDef struct {
	Char string `yaml:"char"`
	Type string `yaml:"type"`
}

// Call describes one generated function wrapping a single sink call.
type Call struct {
	// Name of the generated function.
	Name string `yaml:"name"`
	// Doc is appended to the function name in the generated doc comment.
	Doc string `yaml:"doc,omitempty"`
	// Sink is the qualified function receiving the format and values, e.g. fmt.Printf.
	Sink string `yaml:"sink"`
	// Lead lists parameters passed to the sink before the format string (e.g. a writer).
	Lead []string `yaml:"lead,omitempty"`
	// Params are the generated function's parameters.
	Params []Param `yaml:"params,omitempty"`
	// Returns are the sink's result types, returned by the generated function.
	Returns []string `yaml:"returns,omitempty"`
	// Stream is a token sequence assembled into a format string.
	Stream []StreamItem `yaml:"stream,omitempty"`
	// Format is a literal format string checked against Args.
	Format *string `yaml:"format,omitempty"`
	// Args are the operands checked against Format.
	Args []Operand `yaml:"args,omitempty"`
}

// HasStream reports whether the call is assembled from a token stream.
func (c *Call) HasStream() bool {
	return len(c.Stream) > 0
}

// HasFormat reports whether the call is checked against a literal format.
func (c *Call) HasFormat() bool {
	return c.Format != nil
}

// ParamNames returns the declared parameter names in order.
func (c *Call) ParamNames() []string {
	names := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		names = append(names, p.Name)
	}

	return names
}

// Param is a parameter of a generated function.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Operand is a value handed to the sink: either a parameter reference or a
// constant Go expression with an explicit type.
type Operand struct {
	Arg   string `yaml:"arg,omitempty"`
	Value string `yaml:"value,omitempty"`
	Type  string `yaml:"type,omitempty"`
}

// IsParam reports whether the operand references a parameter.
func (o Operand) IsParam() bool {
	return o.Arg != ""
}

// StreamItem is a literal fragment or an operand.
type StreamItem struct {
	Literal *string
	Operand Operand
}

// IsLiteral reports whether the item is a literal fragment.
func (s StreamItem) IsLiteral() bool {
	return s.Literal != nil
}

// FormatTable builds the type -> fragment table, falling back to kind.DefaultFormats.
func (f *File) FormatTable() (*kind.Formats, error) {
	if len(f.Formats) == 0 {
		return kind.DefaultFormats(), nil
	}

	pairs := make([]typedmap.Pair[kind.Key, string], 0, len(f.Formats))
	for _, def := range f.Formats {
		pairs = append(pairs, typedmap.P(kind.Parse(def.Type), def.Format))
	}

	return typedmap.New(pairs...)
}

// SpecifierTable builds the verb -> type table, falling back to kind.DefaultSpecifiers.
// Entries whose Char is not a single character are skipped; Validate reports them.
func (f *File) SpecifierTable() (*kind.Specifiers, error) {
	if len(f.Specifiers) == 0 {
		return kind.DefaultSpecifiers(), nil
	}

	pairs := make([]typedmap.Pair[rune, kind.Key], 0, len(f.Specifiers))
	for _, def := range f.Specifiers {
		r, ok := singleRune(def.Char)
		if !ok {
			continue
		}

		pairs = append(pairs, typedmap.P(r, kind.Parse(def.Type)))
	}

	return typedmap.New(pairs...)
}

// Fingerprint returns a hash of the source bytes the file was parsed from.
func (f *File) Fingerprint() uint64 {
	return xxhash.Sum64(f.source)
}

func singleRune(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(s)

	return r, r != '%'
}
