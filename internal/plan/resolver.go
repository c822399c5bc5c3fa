package plan

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"format-generator/internal/analyze"
	"format-generator/internal/callsite"
	"format-generator/internal/common"
	"format-generator/internal/diagnostic"
	"format-generator/internal/kind"
	"format-generator/internal/match"
	"format-generator/internal/seq"
	"format-generator/internal/stream"
	"format-generator/internal/validate"
)

// ErrResolutionFailed is returned by Resolve when the plan carries errors.
var ErrResolutionFailed = errors.New("resolution failed")

// stdlibImports are qualifiers resolvable without an imports entry.
var stdlibImports = map[string]string{
	"context": "context",
	"errors":  "errors",
	"fmt":     "fmt",
	"io":      "io",
	"log":     "log",
	"os":      "os",
	"strings": "strings",
	"time":    "time",
}

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// StrictMode fails resolution on warnings as well as errors.
	StrictMode bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	file   *callsite.File
	graph  *analyze.TypeGraph
	config ResolutionConfig
	logger *zap.Logger

	formats    *kind.Formats
	specifiers *kind.Specifiers
	validator  *validate.Validator
	imports    map[string]string // path -> qualifier
	diags      *diagnostic.Diagnostics
	sourcePath string
}

// NewResolver creates a new Resolver. graph may be nil when the call-site
// file refers only to predeclared and imported types.
func NewResolver(file *callsite.File, graph *analyze.TypeGraph, config ResolutionConfig) *Resolver {
	return &Resolver{
		file:   file,
		graph:  graph,
		config: config,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used to trace resolution.
func (r *Resolver) WithLogger(logger *zap.Logger) *Resolver {
	if logger != nil {
		r.logger = logger
	}

	return r
}

// WithSource records the path the call-site file was loaded from.
func (r *Resolver) WithSource(path string) *Resolver {
	r.sourcePath = path
	return r
}

// Resolve runs the full resolution pipeline and returns a Plan.
// The plan is returned even on failure so its diagnostics can be reported.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.file == nil {
		return nil, errors.New("call-site file is required")
	}

	plan := &Plan{
		Package:     r.file.Package,
		Source:      r.sourcePath,
		Fingerprint: r.file.Fingerprint(),
		FileImports: maps.Clone(r.file.Imports),
		Packages:    slices.Clone(r.file.Packages),
		Calls:       []ResolvedCall{},
	}

	r.diags = &plan.Diagnostics
	r.imports = make(map[string]string)

	plan.Diagnostics.Merge(*callsite.Validate(r.file))

	if plan.Diagnostics.HasErrors() {
		return plan, r.fail(plan)
	}

	if !r.buildTables() {
		return plan, r.fail(plan)
	}

	plan.Formats = r.formats
	plan.Specifiers = r.specifiers

	for i := range r.file.Calls {
		resolved, ok := r.resolveCall(&r.file.Calls[i])
		if !ok {
			continue
		}

		r.logger.Debug("resolved call",
			zap.String("call", resolved.Name),
			zap.Stringer("mode", resolved.Mode),
			zap.String("format", resolved.Format),
			zap.Int("args", len(resolved.Args)),
		)

		plan.Calls = append(plan.Calls, *resolved)
	}

	plan.Imports = r.sortedImports()

	if plan.Diagnostics.HasErrors() || (r.config.StrictMode && len(plan.Diagnostics.Warnings) > 0) {
		return plan, r.fail(plan)
	}

	return plan, nil
}

func (r *Resolver) fail(plan *Plan) error {
	for _, d := range plan.Diagnostics.Errors {
		r.logger.Debug("diagnostic", zap.String("code", d.Code), zap.String("detail", d.String()))
	}

	if r.config.StrictMode && !plan.Diagnostics.HasErrors() {
		return fmt.Errorf("%w: strict mode: %d warnings", ErrResolutionFailed, len(plan.Diagnostics.Warnings))
	}

	return fmt.Errorf("%w: %w", ErrResolutionFailed, plan.Diagnostics.Error())
}

// buildTables constructs the format and specifier tables. A duplicate key
// aborts resolution since no call can be resolved against a broken table.
func (r *Resolver) buildTables() bool {
	formats, err := r.file.FormatTable()
	if err != nil {
		r.diags.AddFromError(err, "", "formats")
	}

	specifiers, specErr := r.file.SpecifierTable()
	if specErr != nil {
		r.diags.AddFromError(specErr, "", "specifiers")
	}

	if err != nil || specErr != nil {
		return false
	}

	r.formats = formats
	r.specifiers = specifiers
	r.validator = validate.New(specifiers)

	return true
}

// resolveCall resolves a single call definition.
func (r *Resolver) resolveCall(c *callsite.Call) (*ResolvedCall, bool) {
	before := len(r.diags.Errors)

	resolved := &ResolvedCall{
		Name:    c.Name,
		Doc:     c.Doc,
		Sink:    c.Sink,
		Lead:    c.Lead,
		Returns: c.Returns,
	}

	r.useQualifier(c.Name, "sink", c.Sink)

	params := make(map[string]ResolvedParam, len(c.Params))

	for i, p := range c.Params {
		key, ok := r.resolveType(c.Name, fmt.Sprintf("params[%d]", i), p.Type)
		if !ok {
			continue
		}

		rp := ResolvedParam{Name: p.Name, Type: p.Type, Key: key}
		params[p.Name] = rp
		resolved.Params = append(resolved.Params, rp)
	}

	for i, ret := range c.Returns {
		r.resolveType(c.Name, fmt.Sprintf("returns[%d]", i), ret)
	}

	if len(r.diags.Errors) > before {
		return nil, false
	}

	if c.HasStream() {
		resolved.Mode = ModeStream
		r.assembleStream(c, params, resolved)
	} else {
		resolved.Mode = ModeFormat
		r.checkFormat(c, params, resolved)
	}

	if len(r.diags.Errors) > before {
		return nil, false
	}

	return resolved, true
}

// assembleStream runs the token stream of c through a stream builder.
func (r *Resolver) assembleStream(c *callsite.Call, params map[string]ResolvedParam, out *ResolvedCall) {
	b := stream.New[ResolvedArg](r.formats)

	for i, item := range c.Stream {
		if item.IsLiteral() {
			b.Lit(*item.Literal)
			continue
		}

		arg, ok := r.resolveOperand(c.Name, fmt.Sprintf("stream[%d]", i), item.Operand, params)
		if !ok {
			return
		}

		b.Sub(arg, arg.Key)
	}

	call, err := b.Assemble()
	if err != nil {
		r.diags.AddFromError(err, c.Name, "stream")
		return
	}

	out.Format = call.Format
	out.Args = call.Args
}

// checkFormat validates the literal format of c against its operands.
func (r *Resolver) checkFormat(c *callsite.Call, params map[string]ResolvedParam, out *ResolvedCall) {
	args := make([]validate.Arg[ResolvedArg], 0, len(c.Args))

	for i, op := range c.Args {
		arg, ok := r.resolveOperand(c.Name, fmt.Sprintf("args[%d]", i), op, params)
		if !ok {
			return
		}

		args = append(args, validate.Arg[ResolvedArg]{Value: arg, Key: arg.Key})
	}

	if err := validate.Check(r.validator, *c.Format, args); err != nil {
		r.diags.AddFromError(err, c.Name, "format")
		return
	}

	out.Format = *c.Format
	out.Args = seq.Map(args, func(a validate.Arg[ResolvedArg]) ResolvedArg { return a.Value })
}

// resolveOperand turns an operand into the expression passed to the sink.
// Constants are converted to their declared type so the emitted value has
// exactly the type it was checked with.
func (r *Resolver) resolveOperand(
	call, loc string,
	op callsite.Operand,
	params map[string]ResolvedParam,
) (ResolvedArg, bool) {
	if op.IsParam() {
		p, ok := params[op.Arg]
		if !ok {
			// Its type failed to resolve and was already reported.
			return ResolvedArg{}, false
		}

		return ResolvedArg{Expr: p.Name, Key: p.Key, Param: p.Name}, true
	}

	key, ok := r.resolveType(call, loc, op.Type)
	if !ok {
		return ResolvedArg{}, false
	}

	return ResolvedArg{
		Expr:  fmt.Sprintf("%s(%s)", op.Type, op.Value),
		Key:   key,
		Value: op.Value,
		Type:  op.Type,
	}, true
}

// resolveType parses a Go type expression, records the imports it needs and
// returns its classification key. A qualified named type found in the type
// graph takes the graph's key, so an alias is keyed by its target.
func (r *Resolver) resolveType(call, loc, typ string) (kind.Key, bool) {
	expr, err := parser.ParseExpr(typ)
	if err != nil {
		r.diags.AddError("invalid_type", fmt.Sprintf("invalid type %q: %v", typ, err), call, loc)
		return kind.Invalid, false
	}

	ok := true

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, isSel := n.(*ast.SelectorExpr)
		if !isSel {
			return true
		}

		if ident, isIdent := sel.X.(*ast.Ident); isIdent {
			ok = r.useQualifier(call, loc, ident.Name+"."+sel.Sel.Name) && ok
		}

		return false
	})

	if !ok {
		return kind.Invalid, false
	}

	if _, isSel := expr.(*ast.SelectorExpr); isSel {
		if info := r.graph.Lookup(typ); info != nil {
			return info.Key, true
		}
	}

	return kind.Parse(typ), true
}

// useQualifier records the import needed by a qualified identifier.
func (r *Resolver) useQualifier(call, loc, qualified string) bool {
	qualifier, _ := common.SplitQualified(qualified)
	if qualifier == "" {
		return true
	}

	path, ok := r.importPath(qualifier)
	if !ok {
		r.diags.AddErrorWithSuggestions("unknown_package",
			fmt.Sprintf("no import path for %q; add it to imports or packages", qualifier), call, loc,
			match.Suggest(qualifier, r.knownQualifiers(), match.DefaultThreshold))

		return false
	}

	r.imports[path] = qualifier

	return true
}

func (r *Resolver) importPath(qualifier string) (string, bool) {
	if path, ok := r.file.Imports[qualifier]; ok {
		return path, true
	}

	if pkg := r.graph.PackageByName(qualifier); pkg != nil {
		return pkg.Path, true
	}

	path, ok := stdlibImports[qualifier]

	return path, ok
}

// knownQualifiers lists every qualifier importPath resolves, sorted.
func (r *Resolver) knownQualifiers() []string {
	known := make([]string, 0, len(r.file.Imports)+len(stdlibImports))

	for qualifier := range r.file.Imports {
		known = append(known, qualifier)
	}

	if r.graph != nil {
		for _, pkg := range r.graph.Packages {
			known = append(known, pkg.Name)
		}
	}

	for qualifier := range stdlibImports {
		known = append(known, qualifier)
	}

	slices.Sort(known)

	return slices.Compact(known)
}

func (r *Resolver) sortedImports() []Import {
	imports := make([]Import, 0, len(r.imports))

	for path, qualifier := range r.imports {
		imp := Import{Path: path}
		if common.PkgAlias(path) != qualifier {
			imp.Alias = qualifier
		}

		imports = append(imports, imp)
	}

	slices.SortFunc(imports, func(a, b Import) int {
		return strings.Compare(a.Path, b.Path)
	})

	return imports
}
