package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"format-generator/internal/kind"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
	dir   string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
	}
}

// WithDir sets the directory package patterns are resolved from.
func (a *Analyzer) WithDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./units", "format-generator/examples/units").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	if len(patterns) == 0 {
		return a.graph, nil
	}

	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts exported named types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		a.graph.Types[typeID] = analyzeTypeName(typeID, typeName)
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeTypeName builds the TypeInfo of a package-level type name.
func analyzeTypeName(id TypeID, obj *types.TypeName) *TypeInfo {
	info := &TypeInfo{
		ID:     id,
		Kind:   TypeKindDefined,
		GoType: obj.Type(),
		Key:    kind.FromGoType(obj.Type()),
	}

	if obj.IsAlias() {
		info.Kind = TypeKindAlias
	}

	return info
}
