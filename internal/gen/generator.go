package gen

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"format-generator/internal/plan"
)

// GeneratedHeader starts every generated file.
const GeneratedHeader = "// Code generated by format-generator. DO NOT EDIT."

const fingerprintPrefix = "// fingerprint: "

// ErrPlanHasErrors is returned when generation is asked for a failed plan.
var ErrPlanHasErrors = errors.New("plan has errors")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName overrides the package name from the call-site file.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Filename overrides the name derived from the call-site file.
	Filename string
	// GenerateComments enables generation of doc comments on functions.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        ".",
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "calls_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one Go file holding a wrapper function per resolved call.
// A plan carrying error diagnostics produces no file.
func (g *Generator) Generate(p *plan.Plan) (*GeneratedFile, error) {
	if p == nil {
		return nil, errors.New("plan is nil")
	}

	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrPlanHasErrors, p.Diagnostics.Error())
	}

	data := g.buildTemplateData(p)
	filename := g.filename(p)

	var buf bytes.Buffer
	if err := callsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, p.Source, buf.Bytes(), err)
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

func (g *Generator) packageName(p *plan.Plan) string {
	if g.config.PackageName != "" {
		return g.config.PackageName
	}

	return p.Package
}

// filename returns the configured name or one derived from the plan source,
// e.g. "report/calls.yaml" -> "calls_gen.go".
func (g *Generator) filename(p *plan.Plan) string {
	if g.config.Filename != "" {
		return g.config.Filename
	}

	if p.Source == "" {
		return "formats_gen.go"
	}

	base := filepath.Base(p.Source)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return base + "_gen.go"
}

// FormatFingerprint renders a fingerprint as it appears in generated files.
func FormatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}

// ReadFingerprint extracts the fingerprint from the header of a generated
// file. It reports false when content was not produced by this generator.
func ReadFingerprint(content []byte) (uint64, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	if !scanner.Scan() || scanner.Text() != GeneratedHeader {
		return 0, false
	}

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "//") {
			break
		}

		if hex, ok := strings.CutPrefix(line, fingerprintPrefix); ok {
			fp, err := strconv.ParseUint(hex, 16, 64)
			if err != nil {
				return 0, false
			}

			return fp, true
		}
	}

	return 0, false
}

// Template for the generated calls file.
var callsTemplate = template.Must(template.New("calls").Parse(GeneratedHeader + `
{{- if .Source}}
// source: {{.Source}}
{{- end}}
` + fingerprintPrefix + `{{.Fingerprint}}

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}

{{range .Functions}}
{{- if $.GenerateComments}}// {{.Doc}}
{{end -}}
func {{.Name}}({{.Params}}) {{.Results}} {
	{{if .Return}}return {{end}}{{.Call}}
}

{{end}}
`))
