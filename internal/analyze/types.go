package analyze

import (
	"go/types"

	"format-generator/internal/common"
	"format-generator/internal/kind"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "format-generator/examples/units"
	Name    string // e.g., "Celsius"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Qualified returns the type name as written in Go source outside its package.
func (t TypeID) Qualified() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// TypeKind represents the kind of a named type.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindDefined          // type T U
	TypeKindAlias            // type T = U
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindDefined:
		return "defined"
	case TypeKindAlias:
		return "alias"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a named type in the type graph.
type TypeInfo struct {
	ID     TypeID     // Unique identifier
	Kind   TypeKind   // Defined or alias
	Key    kind.Key   // Classification key; an alias has its target's key
	GoType types.Type // The original go/types.Type
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageByName returns the loaded package whose name is name, or nil.
// Call-site files qualify types by package name, as Go source does.
func (g *TypeGraph) PackageByName(name string) *PackageInfo {
	if g == nil {
		return nil
	}

	for _, pkg := range g.Packages {
		if pkg.Name == name {
			return pkg
		}
	}

	return nil
}

// Lookup resolves a qualified type name like "units.Celsius".
func (g *TypeGraph) Lookup(qualified string) *TypeInfo {
	qualifier, name := common.SplitQualified(qualified)
	if qualifier == "" {
		return nil
	}

	pkg := g.PackageByName(qualifier)
	if pkg == nil {
		return nil
	}

	return g.GetType(TypeID{PkgPath: pkg.Path, Name: name})
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory containing the package sources
	Types []TypeID // Named types defined in this package
}
