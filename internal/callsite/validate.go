package callsite

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"format-generator/internal/common"
	"format-generator/internal/diagnostic"
	"format-generator/internal/match"
)

// Validate checks the structure of a call-site file. It does not assemble or
// type-check any call; that happens during resolution.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "call-site file is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "version")
	}

	if !token.IsIdentifier(f.Package) {
		res.AddError("invalid_package", fmt.Sprintf("invalid package name %q", f.Package), "", "package")
	}

	for i, def := range f.Formats {
		if def.Type == "" {
			res.AddError("missing_type", "format entry has no type", "", fmt.Sprintf("formats[%d]", i))
		}
	}

	for i, def := range f.Specifiers {
		loc := fmt.Sprintf("specifiers[%d]", i)
		if _, ok := singleRune(def.Char); !ok {
			res.AddError("invalid_specifier", fmt.Sprintf("specifier %q must be a single character other than %%", def.Char), "", loc)
		}

		if def.Type == "" {
			res.AddError("missing_type", "specifier entry has no type", "", loc)
		}
	}

	seenCalls := map[string]struct{}{}

	for i := range f.Calls {
		c := &f.Calls[i]

		if !token.IsIdentifier(c.Name) {
			res.AddError("invalid_name", fmt.Sprintf("invalid function name %q", c.Name), c.Name, fmt.Sprintf("calls[%d]", i))
			continue
		}

		if _, ok := seenCalls[c.Name]; ok {
			res.AddError("duplicate_call", fmt.Sprintf("duplicate call %q", c.Name), c.Name, "")
			continue
		}

		seenCalls[c.Name] = struct{}{}

		validateCall(res, c)
	}

	return res
}

// validateCall validates a single call definition.
func validateCall(res *diagnostic.Diagnostics, c *Call) {
	params := validateParams(res, c)

	if _, name := common.SplitQualified(c.Sink); !token.IsIdentifier(name) {
		res.AddError("invalid_sink", fmt.Sprintf("invalid sink %q", c.Sink), c.Name, "sink")
	}

	for i, lead := range c.Lead {
		if _, ok := params[lead]; !ok {
			res.AddErrorWithSuggestions("unknown_arg", fmt.Sprintf("lead argument %q is not a parameter", lead),
				c.Name, fmt.Sprintf("lead[%d]", i), match.Suggest(lead, c.ParamNames(), match.DefaultThreshold))
			continue
		}

		params[lead] = true
	}

	switch {
	case c.HasStream() && c.HasFormat():
		res.AddError("ambiguous_body", "call defines both stream and format", c.Name, "")
	case !c.HasStream() && !c.HasFormat():
		res.AddError("missing_body", "call defines neither stream nor format", c.Name, "")
	case c.HasStream():
		if len(c.Args) > 0 {
			res.AddError("ambiguous_body", "args are only allowed with format", c.Name, "args")
		}

		for i, item := range c.Stream {
			if item.IsLiteral() {
				continue
			}

			validateOperand(res, c, fmt.Sprintf("stream[%d]", i), item.Operand, params)
		}
	default:
		for i, op := range c.Args {
			validateOperand(res, c, fmt.Sprintf("args[%d]", i), op, params)
		}
	}

	for i, p := range c.Params {
		if !params[p.Name] {
			res.AddWarning("unused_param", fmt.Sprintf("parameter %q is never passed to the sink", p.Name), c.Name, fmt.Sprintf("params[%d]", i))
		}
	}
}

// validateParams checks parameter declarations and returns a use-tracking set.
func validateParams(res *diagnostic.Diagnostics, c *Call) map[string]bool {
	params := make(map[string]bool, len(c.Params))

	for i, p := range c.Params {
		loc := fmt.Sprintf("params[%d]", i)

		if !token.IsIdentifier(p.Name) {
			res.AddError("invalid_name", fmt.Sprintf("invalid parameter name %q", p.Name), c.Name, loc)
			continue
		}

		if _, ok := params[p.Name]; ok {
			res.AddError("duplicate_param", fmt.Sprintf("duplicate parameter %q", p.Name), c.Name, loc)
			continue
		}

		if p.Type == "" {
			res.AddError("missing_type", fmt.Sprintf("parameter %q has no type", p.Name), c.Name, loc)
		}

		params[p.Name] = false
	}

	return params
}

func validateOperand(res *diagnostic.Diagnostics, c *Call, loc string, op Operand, params map[string]bool) {
	call := c.Name

	switch {
	case op.IsParam() && (op.Value != "" || op.Type != ""):
		res.AddError("invalid_operand", "operand must be either arg or value+type", call, loc)
	case op.IsParam():
		if _, ok := params[op.Arg]; !ok {
			res.AddErrorWithSuggestions("unknown_arg", fmt.Sprintf("%q is not a parameter", op.Arg), call, loc,
				match.Suggest(op.Arg, c.ParamNames(), match.DefaultThreshold))
			return
		}

		params[op.Arg] = true
	case op.Value == "":
		res.AddError("invalid_operand", "operand has neither arg nor value", call, loc)
	case op.Type == "":
		res.AddError("missing_type", fmt.Sprintf("constant %s has no type", op.Value), call, loc)
	default:
		if err := checkConstant(op.Value); err != nil {
			res.AddError("invalid_operand", fmt.Sprintf("constant %s: %v", op.Value, err), call, loc)
		}
	}
}

// checkConstant accepts Go literal expressions: basic literals, true and
// false, combined with unary and binary operators and parentheses.
func checkConstant(value string) error {
	expr, err := parser.ParseExpr(value)
	if err != nil {
		return errors.New("not a Go expression")
	}

	literal := true

	ast.Inspect(expr, func(n ast.Node) bool {
		switch n := n.(type) {
		case nil, *ast.BasicLit, *ast.UnaryExpr, *ast.BinaryExpr, *ast.ParenExpr:
			return true
		case *ast.Ident:
			if n.Name == "true" || n.Name == "false" {
				return true
			}
		}

		literal = false

		return false
	})

	if !literal {
		return errors.New("not a literal expression")
	}

	return nil
}
