package fmtcheck

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/types"
	"strings"
	"unicode/utf8"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"format-generator/internal/kind"
	"format-generator/internal/typedmap"
	"format-generator/internal/validate"
)

// Default flag values.
const (
	DefaultFuncs      = "fmt.Printf,fmt.Sprintf,fmt.Fprintf,fmt.Errorf,log.Printf"
	DefaultSpecifiers = "d=int,f=float64,s=string"
)

// Analyzer checks calls using the default flag values.
var Analyzer = NewAnalyzer()

type checker struct {
	funcs      string
	specifiers string
}

// NewAnalyzer returns an Analyzer with its own -funcs and -specifiers flags.
func NewAnalyzer() *analysis.Analyzer {
	c := &checker{}

	a := &analysis.Analyzer{
		Name:     "fmtcheck",
		Doc:      "check printf-like calls against a specifier table",
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run:      c.run,
	}

	a.Flags.StringVar(&c.funcs, "funcs", DefaultFuncs,
		"comma-separated list of package-qualified printf-like functions")
	a.Flags.StringVar(&c.specifiers, "specifiers", DefaultSpecifiers,
		"comma-separated verb=type bindings")

	return a
}

func (c *checker) run(pass *analysis.Pass) (any, error) {
	funcs := ParseFuncs(c.funcs)

	specifiers, err := ParseSpecifiers(c.specifiers)
	if err != nil {
		return nil, fmt.Errorf("-specifiers: %w", err)
	}

	v := validate.New(specifiers)

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	nodeFilter := []ast.Node{(*ast.CallExpr)(nil)}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
		if !ok || fn.Pkg() == nil {
			return
		}

		sig := fn.Type().(*types.Signature)
		if sig.Recv() != nil {
			return
		}

		name := fn.Pkg().Path() + "." + fn.Name()
		if _, ok := funcs[name]; !ok {
			return
		}

		checkCall(pass, v, name, sig, call)
	})

	return nil, nil
}

// checkCall validates one call to a printf-like function.
func checkCall(pass *analysis.Pass, v *validate.Validator, name string, sig *types.Signature, call *ast.CallExpr) {
	idx := formatIndex(sig)
	if idx < 0 || idx >= len(call.Args) || call.Ellipsis.IsValid() {
		return
	}

	tv, ok := pass.TypesInfo.Types[call.Args[idx]]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return
	}

	format := constant.StringVal(tv.Value)
	if !v.Covers(format) {
		return
	}

	args := make([]validate.Arg[ast.Expr], 0, len(call.Args)-idx-1)
	for _, arg := range call.Args[idx+1:] {
		args = append(args, validate.Arg[ast.Expr]{
			Value: arg,
			Key:   kind.FromGoType(pass.TypesInfo.TypeOf(arg)),
		})
	}

	err := validate.Check(v, format, args)
	if err == nil {
		return
	}

	for _, cause := range causes(err) {
		var typeErr *validate.ArgumentTypeMismatchError
		if errors.As(cause, &typeErr) && typeErr.Position < len(args) {
			pass.Reportf(args[typeErr.Position].Value.Pos(), "%s: %v", name, cause)
			continue
		}

		pass.Reportf(call.Lparen, "%s: %v", name, cause)
	}
}

// formatIndex returns the position of the format parameter: the string
// parameter directly before a trailing ...any. It is -1 when sig is not
// printf-like.
func formatIndex(sig *types.Signature) int {
	params := sig.Params()
	if !sig.Variadic() || params.Len() < 2 {
		return -1
	}

	idx := params.Len() - 2

	basic, ok := params.At(idx).Type().Underlying().(*types.Basic)
	if !ok || basic.Kind() != types.String {
		return -1
	}

	return idx
}

func causes(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return []error{err}
}

// ParseFuncs parses a comma-separated list of qualified function names.
func ParseFuncs(s string) map[string]struct{} {
	funcs := make(map[string]struct{})

	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			funcs[name] = struct{}{}
		}
	}

	return funcs
}

// ParseSpecifiers parses "d=int,f=float64" into a specifier table.
func ParseSpecifiers(s string) (*kind.Specifiers, error) {
	var pairs []typedmap.Pair[rune, kind.Key]

	for _, binding := range strings.Split(s, ",") {
		binding = strings.TrimSpace(binding)
		if binding == "" {
			continue
		}

		verb, typ, ok := strings.Cut(binding, "=")
		if !ok || typ == "" {
			return nil, fmt.Errorf("binding %q: want verb=type", binding)
		}

		if utf8.RuneCountInString(verb) != 1 || verb == "%" {
			return nil, fmt.Errorf("binding %q: verb must be a single character other than %%", binding)
		}

		r, _ := utf8.DecodeRuneInString(verb)
		pairs = append(pairs, typedmap.P(r, kind.Parse(typ)))
	}

	return typedmap.New(pairs...)
}
