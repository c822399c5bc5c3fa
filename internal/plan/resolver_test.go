package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"format-generator/internal/analyze"
	"format-generator/internal/callsite"
	"format-generator/internal/diagnostic"
	"format-generator/internal/kind"
)

const unitsPkg = "format-generator/examples/units"

func resolveYAML(t *testing.T, src string, graph *analyze.TypeGraph, cfg ResolutionConfig) (*Plan, error) {
	t.Helper()

	f, err := callsite.Parse([]byte(src))
	require.NoError(t, err)

	return NewResolver(f, graph, cfg).Resolve()
}

func errorCodes(p *Plan) []string {
	out := make([]string, 0, len(p.Diagnostics.Errors))
	for _, d := range p.Diagnostics.Errors {
		out = append(out, d.Code)
	}

	return out
}

// unitsGraph mirrors what analyze produces for examples/units.
func unitsGraph() *analyze.TypeGraph {
	graph := analyze.NewTypeGraph()

	celsius := analyze.TypeID{PkgPath: unitsPkg, Name: "Celsius"}
	meters := analyze.TypeID{PkgPath: unitsPkg, Name: "Meters"}

	graph.Types[celsius] = &analyze.TypeInfo{ID: celsius, Kind: analyze.TypeKindDefined, Key: "units.Celsius"}
	graph.Types[meters] = &analyze.TypeInfo{ID: meters, Kind: analyze.TypeKindAlias, Key: kind.Float64}
	graph.Packages[unitsPkg] = &analyze.PackageInfo{
		Path:  unitsPkg,
		Name:  "units",
		Types: []analyze.TypeID{celsius, meters},
	}

	return graph
}

const pointYAML = `
package: report
calls:
  - name: PrintPoint
    params:
      - {name: x, type: int}
      - {name: y, type: int}
    stream: ["X=", {arg: x}, ", Y=", {arg: y}]
  - name: PrintSummary
    sink: log.Printf
    params:
      - {name: n, type: int}
      - {name: ratio, type: float64}
      - {name: label, type: string}
    format: "%d, %f, %s"
    args: [n, ratio, label]
`

func TestResolve_Stream(t *testing.T) {
	plan, err := resolveYAML(t, pointYAML, nil, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, plan.Calls, 2)

	c := plan.Calls[0]
	assert.Equal(t, "PrintPoint", c.Name)
	assert.Equal(t, ModeStream, c.Mode)
	assert.Equal(t, "fmt.Printf", c.Sink)
	assert.Equal(t, "X=%d, Y=%d", c.Format)
	assert.Equal(t, []kind.Key{kind.Int, kind.Int}, c.Keys())
	assert.Equal(t, `fmt.Printf("X=%d, Y=%d", x, y)`, CallExpr(&c))
}

func TestResolve_Format(t *testing.T) {
	plan, err := resolveYAML(t, pointYAML, nil, DefaultConfig())
	require.NoError(t, err)

	c := plan.Calls[1]
	assert.Equal(t, ModeFormat, c.Mode)
	assert.Equal(t, "%d, %f, %s", c.Format)
	assert.Equal(t, []kind.Key{kind.Int, kind.Float64, kind.String}, c.Keys())
	assert.Equal(t, `log.Printf("%d, %f, %s", n, ratio, label)`, CallExpr(&c))
}

func TestResolve_Imports(t *testing.T) {
	plan, err := resolveYAML(t, pointYAML, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []Import{{Path: "fmt"}, {Path: "log"}}, plan.Imports)
}

func TestResolve_EmptyStream(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintPlain
    stream: ["no substitutions here"]
`, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "no substitutions here", plan.Calls[0].Format)
	assert.Empty(t, plan.Calls[0].Args)
}

func TestResolve_ConstantOperand(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintAnswer
    stream: ["answer=", {value: "42", type: int}]
`, nil, DefaultConfig())
	require.NoError(t, err)

	c := plan.Calls[0]
	assert.Equal(t, "answer=%d", c.Format)
	require.Len(t, c.Args, 1)
	assert.Equal(t, "int(42)", c.Args[0].Expr)
	assert.False(t, c.Args[0].IsParam())
}

func TestResolve_UnresolvedKey(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintFlag
    params: [{name: ok, type: bool}]
    stream: ["ok=", {arg: ok}]
`, nil, DefaultConfig())
	require.ErrorIs(t, err, ErrResolutionFailed)

	assert.Equal(t, []string{diagnostic.CodeUnresolvedKey}, errorCodes(plan))
	assert.Equal(t, "PrintFlag", plan.Diagnostics.Errors[0].Call)
	assert.Contains(t, plan.Diagnostics.Errors[0].Message, "token 1")
	assert.Contains(t, plan.Diagnostics.Errors[0].Message, "bool")
	assert.Empty(t, plan.Calls)
}

func TestResolve_UnresolvedKeysAllReported(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintTwo
    params: [{name: a, type: bool}, {name: b, type: int64}]
    stream: [{arg: a}, " ", {arg: b}]
`, nil, DefaultConfig())
	require.Error(t, err)

	assert.Equal(t, []string{diagnostic.CodeUnresolvedKey, diagnostic.CodeUnresolvedKey}, errorCodes(plan))
}

func TestResolve_ArgumentCountMismatch(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintPair
    params: [{name: x, type: int}]
    format: "%d %d"
    args: [x]
`, nil, DefaultConfig())
	require.ErrorIs(t, err, ErrResolutionFailed)

	assert.Equal(t, []string{diagnostic.CodeArgumentCountMismatch}, errorCodes(plan))
}

func TestResolve_UnsupportedDirective(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintIndexed
    params: [{name: x, type: int}]
    format: "%[1]d"
    args: [x]
`, nil, DefaultConfig())
	require.ErrorIs(t, err, ErrResolutionFailed)

	assert.Equal(t, []string{diagnostic.CodeUnsupportedDirective}, errorCodes(plan))
	assert.NotContains(t, err.Error(), "argument count mismatch")
}

func TestResolve_ArgumentTypeMismatch(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintWide
    params: [{name: n, type: int64}, {name: s, type: string}]
    format: "%d %s"
    args: [n, s]
`, nil, DefaultConfig())
	require.Error(t, err)

	require.Equal(t, []string{diagnostic.CodeArgumentTypeMismatch}, errorCodes(plan))
	assert.Contains(t, plan.Diagnostics.Errors[0].Message, "position 0")
	assert.Contains(t, plan.Diagnostics.Errors[0].Message, "expects int, got int64")
}

func TestResolve_EscapedPercentIsNotAVerb(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintPercent
    params: [{name: p, type: int}]
    format: "%d%%"
    args: [p]
`, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "%d%%", plan.Calls[0].Format)
}

func TestResolve_DuplicateFormatKey(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
formats:
  - {type: int, format: "%d"}
  - {type: int, format: "%x"}
calls:
  - name: PrintX
    params: [{name: x, type: int}]
    stream: [{arg: x}]
`, nil, DefaultConfig())
	require.Error(t, err)

	assert.Equal(t, []string{diagnostic.CodeDuplicateKey}, errorCodes(plan))
	assert.Equal(t, "formats", plan.Diagnostics.Errors[0].Location)
	assert.Empty(t, plan.Calls)
}

func TestResolve_CustomTables(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
formats:
  - {type: bool, format: "%t"}
specifiers:
  - {char: t, type: bool}
calls:
  - name: PrintStream
    params: [{name: ok, type: bool}]
    stream: ["ok=", {arg: ok}]
  - name: PrintFormat
    params: [{name: ok, type: bool}]
    format: "%t"
    args: [ok]
`, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "ok=%t", plan.Calls[0].Format)
	assert.Equal(t, "%t", plan.Calls[1].Format)
}

func TestResolve_NamedTypes(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
formats:
  - {type: units.Celsius, format: "%.1f°C"}
  - {type: float64, format: "%.2fm"}
calls:
  - name: PrintReading
    params:
      - {name: temp, type: units.Celsius}
      - {name: depth, type: units.Meters}
    stream: ["temp=", {arg: temp}, " depth=", {arg: depth}]
`, unitsGraph(), DefaultConfig())
	require.NoError(t, err)

	c := plan.Calls[0]
	assert.Equal(t, "temp=%.1f°C depth=%.2fm", c.Format)
	assert.Equal(t, []kind.Key{"units.Celsius", kind.Float64}, c.Keys())
	assert.Equal(t, []Import{{Path: "fmt"}, {Path: unitsPkg}}, plan.Imports)
}

func TestResolve_DefinedTypeIsNotUnderlying(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintTemp
    params: [{name: temp, type: units.Celsius}]
    format: "%f"
    args: [temp]
`, unitsGraph(), DefaultConfig())
	require.Error(t, err)

	assert.Equal(t, []string{diagnostic.CodeArgumentTypeMismatch}, errorCodes(plan))
}

func TestResolve_ImportsEntry(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
imports:
  zlog: example.com/zlog
calls:
  - name: LogCount
    sink: zlog.Printf
    params: [{name: n, type: int}]
    format: "%d"
    args: [n]
`, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []Import{{Path: "example.com/zlog"}}, plan.Imports)
}

func TestResolve_AliasedImport(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
imports:
  stdlog: log
calls:
  - name: LogCount
    sink: stdlog.Printf
    params: [{name: n, type: int}]
    format: "%d"
    args: [n]
`, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []Import{{Alias: "stdlog", Path: "log"}}, plan.Imports)
}

func TestResolve_UnknownPackage(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintThing
    params: [{name: v, type: mystery.Thing}]
    stream: [{arg: v}]
`, nil, DefaultConfig())
	require.Error(t, err)

	assert.Equal(t, []string{"unknown_package"}, errorCodes(plan))
}

func TestResolve_UnknownPackageSuggestion(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintThing
    params: [{name: v, type: unit.Celsius}]
    stream: [{arg: v}]
`, unitsGraph(), DefaultConfig())
	require.Error(t, err)

	require.Len(t, plan.Diagnostics.Errors, 1)
	assert.Equal(t, []string{"units"}, plan.Diagnostics.Errors[0].Suggestions)
	assert.Contains(t, err.Error(), "did you mean units?")
}

func TestResolve_InvalidType(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: PrintThing
    params: [{name: v, type: "map[int"}]
    stream: [{arg: v}]
`, nil, DefaultConfig())
	require.Error(t, err)

	assert.Equal(t, []string{"invalid_type"}, errorCodes(plan))
}

func TestResolve_StructuralErrorsStopResolution(t *testing.T) {
	plan, err := resolveYAML(t, `
package: demo
calls:
  - name: Empty
`, nil, DefaultConfig())
	require.ErrorIs(t, err, ErrResolutionFailed)

	assert.Equal(t, []string{"missing_body"}, errorCodes(plan))
	assert.Empty(t, plan.Calls)
}

func TestResolve_StrictMode(t *testing.T) {
	src := `
package: demo
calls:
  - name: PrintX
    params: [{name: x, type: int}, {name: unused, type: string}]
    stream: [{arg: x}]
`
	plan, err := resolveYAML(t, src, nil, DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, plan.Diagnostics.Warnings, 1)

	_, err = resolveYAML(t, src, nil, ResolutionConfig{StrictMode: true})
	require.ErrorIs(t, err, ErrResolutionFailed)
	assert.Contains(t, err.Error(), "strict mode")
}

func TestResolve_NilFile(t *testing.T) {
	_, err := NewResolver(nil, nil, DefaultConfig()).Resolve()
	assert.Error(t, err)
}

func TestResolve_Fingerprint(t *testing.T) {
	f, err := callsite.Parse([]byte(pointYAML))
	require.NoError(t, err)

	plan, err := NewResolver(f, nil, DefaultConfig()).WithSource("calls.yaml").Resolve()
	require.NoError(t, err)

	assert.Equal(t, f.Fingerprint(), plan.Fingerprint)
	assert.Equal(t, "calls.yaml", plan.Source)
	assert.Equal(t, "report", plan.Package)
}

func TestResolve_LogsEachCall(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	f, err := callsite.Parse([]byte(pointYAML))
	require.NoError(t, err)

	_, err = NewResolver(f, nil, DefaultConfig()).WithLogger(zap.New(core)).Resolve()
	require.NoError(t, err)

	entries := logs.FilterMessage("resolved call").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "PrintPoint", entries[0].ContextMap()["call"])
	assert.Equal(t, "X=%d, Y=%d", entries[0].ContextMap()["format"])
}
