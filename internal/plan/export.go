package plan

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"format-generator/internal/callsite"
	"format-generator/internal/common"
	"format-generator/internal/diagnostic"
	"format-generator/internal/kind"
	"format-generator/internal/seq"
	"format-generator/internal/typedmap"
	"format-generator/internal/validate"
)

// ErrLoweringFailed is returned when a plan has no equivalent format-form
// call-site file.
var ErrLoweringFailed = errors.New("lowering failed")

// ExportCallSites converts a resolved plan back into a call-site file where
// every call is in format form. Stream calls are lowered to the format string
// they assembled to, and the specifier table is rebuilt from the verbs the
// calls actually use, so the result resolves to the same calls, imports and
// argument keys. A verb bound to two different keys fails with
// ErrLoweringFailed and lowering_conflict diagnostics.
func ExportCallSites(plan *Plan) (*callsite.File, error) {
	if plan.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrLoweringFailed, plan.Diagnostics.Error())
	}

	specifiers, diags := lowerSpecifiers(plan)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrLoweringFailed, diags.Error())
	}

	f := &callsite.File{
		Version:    "1",
		Package:    plan.Package,
		Imports:    exportImports(plan),
		Packages:   slices.Clone(plan.Packages),
		Specifiers: specifiers,
		Calls:      make([]callsite.Call, 0, len(plan.Calls)),
	}

	for key, frag := range plan.Formats.All() {
		f.Formats = append(f.Formats, callsite.FormatDef{Type: key.String(), Format: frag})
	}

	for i := range plan.Calls {
		f.Calls = append(f.Calls, exportCall(&plan.Calls[i]))
	}

	return f, nil
}

// ExportCallSitesYAML generates the lowered call-site file as YAML.
func ExportCallSitesYAML(plan *Plan) ([]byte, error) {
	f, err := ExportCallSites(plan)
	if err != nil {
		return nil, err
	}

	return callsite.Marshal(f)
}

// exportImports returns the file's imports entries plus a qualifier for every
// package the generated code uses.
func exportImports(plan *Plan) map[string]string {
	imports := maps.Clone(plan.FileImports)
	if imports == nil {
		imports = make(map[string]string, len(plan.Imports))
	}

	for _, imp := range plan.Imports {
		qualifier := imp.Alias
		if qualifier == "" {
			qualifier = common.PkgAlias(imp.Path)
		}

		if _, ok := imports[qualifier]; !ok {
			imports[qualifier] = imp.Path
		}
	}

	if len(imports) == 0 {
		return nil
	}

	return imports
}

// lowerSpecifiers binds every verb used by the calls to the key of its
// argument and checks each lowered call against the resulting table.
func lowerSpecifiers(plan *Plan) ([]callsite.SpecifierDef, diagnostic.Diagnostics) {
	var (
		diags diagnostic.Diagnostics
		pairs []typedmap.Pair[rune, kind.Key]
	)

	owners := make(map[rune]string)

	bind := func(call, loc string, verb rune, key kind.Key) {
		for _, p := range pairs {
			if p.Key != verb {
				continue
			}

			if p.Value != key {
				diags.AddError("lowering_conflict",
					fmt.Sprintf("%%%c is bound to %s by %s and to %s here", verb, p.Value, owners[verb], key), call, loc)
			}

			return
		}

		pairs = append(pairs, typedmap.P(verb, key))
		owners[verb] = call
	}

	current := validate.New(plan.Specifiers)

	for i := range plan.Calls {
		rc := &plan.Calls[i]

		if rc.Mode == ModeFormat {
			for j, verb := range current.Specifiers(rc.Format) {
				if j < len(rc.Args) {
					bind(rc.Name, fmt.Sprintf("args[%d]", j), verb, rc.Args[j].Key)
				}
			}

			continue
		}

		for j, arg := range rc.Args {
			loc := fmt.Sprintf("args[%d]", j)

			frag, err := plan.Formats.Lookup(arg.Key)
			if err != nil {
				diags.AddFromError(err, rc.Name, loc)
				continue
			}

			verbs := validate.Verbs(frag)
			if len(verbs) != 1 || validate.Directives(frag) != nil {
				diags.AddError("lowering_conflict",
					fmt.Sprintf("format %q for %s must contain exactly one plain verb", frag, arg.Key), rc.Name, loc)

				continue
			}

			bind(rc.Name, loc, verbs[0], arg.Key)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	table := kind.DefaultSpecifiers()
	if len(pairs) > 0 {
		table = typedmap.MustNew(pairs...)
	}

	lowered := validate.New(table)

	for i := range plan.Calls {
		rc := &plan.Calls[i]

		args := seq.Map(rc.Args, func(a ResolvedArg) validate.Arg[ResolvedArg] {
			return validate.Arg[ResolvedArg]{Value: a, Key: a.Key}
		})

		if err := validate.Check(lowered, rc.Format, args); err != nil {
			diags.AddError("lowering_conflict",
				fmt.Sprintf("lowered format %q does not check: %v", rc.Format, err), rc.Name, "format")
		}
	}

	return seq.Map(pairs, func(p typedmap.Pair[rune, kind.Key]) callsite.SpecifierDef {
		return callsite.SpecifierDef{Char: string(p.Key), Type: p.Value.String()}
	}), diags
}

// exportCall converts a ResolvedCall to its format-form callsite.Call.
func exportCall(rc *ResolvedCall) callsite.Call {
	format := rc.Format

	return callsite.Call{
		Name:    rc.Name,
		Doc:     rc.Doc,
		Sink:    rc.Sink,
		Lead:    rc.Lead,
		Params:  seq.Map(rc.Params, func(p ResolvedParam) callsite.Param { return callsite.Param{Name: p.Name, Type: p.Type} }),
		Returns: rc.Returns,
		Format:  &format,
		Args:    seq.Map(rc.Args, exportArg),
	}
}

func exportArg(a ResolvedArg) callsite.Operand {
	if a.IsParam() {
		return callsite.Operand{Arg: a.Param}
	}

	return callsite.Operand{Value: a.Value, Type: a.Type}
}

// Report is a human-readable summary of a resolved plan.
type Report struct {
	Package string       `yaml:"package"`
	Calls   []CallReport `yaml:"calls"`
	Errors  []string     `yaml:"errors,omitempty"`
	Warns   []string     `yaml:"warnings,omitempty"`
}

// CallReport describes one resolved call.
type CallReport struct {
	Name   string   `yaml:"name"`
	Mode   string   `yaml:"mode"`
	Call   string   `yaml:"call"`
	Format string   `yaml:"format"`
	Keys   []string `yaml:"keys,omitempty"`
}

// GenerateReport creates a report from a resolved plan.
func GenerateReport(plan *Plan) *Report {
	report := &Report{
		Package: plan.Package,
		Calls:   make([]CallReport, 0, len(plan.Calls)),
	}

	for i := range plan.Calls {
		rc := &plan.Calls[i]
		report.Calls = append(report.Calls, CallReport{
			Name:   rc.Name,
			Mode:   rc.Mode.String(),
			Call:   CallExpr(rc),
			Format: rc.Format,
			Keys:   seq.Map(rc.Args, func(a ResolvedArg) string { return a.Key.String() }),
		})
	}

	for _, d := range plan.Diagnostics.Errors {
		report.Errors = append(report.Errors, d.String())
	}

	for _, d := range plan.Diagnostics.Warnings {
		report.Warns = append(report.Warns, d.String())
	}

	return report
}

// ReportYAML renders the report as YAML.
func ReportYAML(plan *Plan) ([]byte, error) {
	return yaml.Marshal(GenerateReport(plan))
}

// CallExpr renders the sink call of rc as Go source.
func CallExpr(rc *ResolvedCall) string {
	operands := make([]string, 0, len(rc.Lead)+1+len(rc.Args))
	operands = append(operands, rc.Lead...)
	operands = append(operands, fmt.Sprintf("%q", rc.Format))
	operands = append(operands, seq.Map(rc.Args, ResolvedArg.String)...)

	return rc.Sink + "(" + strings.Join(operands, ", ") + ")"
}

// Keys returns the classification keys of the call's arguments in order.
func (c *ResolvedCall) Keys() []kind.Key {
	return seq.Map(c.Args, func(a ResolvedArg) kind.Key { return a.Key })
}
