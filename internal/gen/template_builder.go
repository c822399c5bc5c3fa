package gen

import (
	"fmt"
	"strings"

	"format-generator/internal/common"
	"format-generator/internal/plan"
	"format-generator/internal/seq"
)

// templateData holds all data needed for the call file template.
type templateData struct {
	PackageName      string
	Source           string
	Fingerprint      string
	Imports          []plan.Import
	Functions        []functionData
	GenerateComments bool
}

// functionData represents one generated wrapper function.
type functionData struct {
	Name    string
	Doc     string
	Params  string
	Results string
	Return  bool
	Call    string
}

// buildTemplateData constructs the template data from a resolved plan.
func (g *Generator) buildTemplateData(p *plan.Plan) *templateData {
	data := &templateData{
		PackageName:      g.packageName(p),
		Source:           p.Source,
		Fingerprint:      FormatFingerprint(p.Fingerprint),
		Imports:          p.Imports,
		GenerateComments: g.config.GenerateComments,
	}

	for i := range p.Calls {
		data.Functions = append(data.Functions, buildFunction(&p.Calls[i]))
	}

	return data
}

func buildFunction(rc *plan.ResolvedCall) functionData {
	fn := functionData{
		Name:    rc.Name,
		Doc:     functionDoc(rc),
		Params:  strings.Join(seq.Map(rc.Params, func(p plan.ResolvedParam) string { return p.Name + " " + p.Type }), ", "),
		Results: resultList(rc.Returns),
		Return:  rc.HasReturns(),
		Call:    plan.CallExpr(rc),
	}

	return fn
}

func functionDoc(rc *plan.ResolvedCall) string {
	if rc.Doc != "" {
		return rc.Name + " " + strings.ReplaceAll(strings.TrimSpace(rc.Doc), "\n", "\n// ")
	}

	return fmt.Sprintf("%s calls %s with format %q.", rc.Name, rc.Sink, rc.Format)
}

func resultList(returns []string) string {
	switch {
	case common.IsEmpty(returns):
		return ""
	case common.IsSingle(returns):
		return returns[0]
	default:
		return "(" + strings.Join(returns, ", ") + ")"
	}
}
