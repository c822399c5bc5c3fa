// Package analyze provides package loading and named-type extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to build a TypeGraph
// of the exported named types of the loaded packages, so that type names in
// call-site files (e.g. "units.Celsius") resolve to an import path and a
// classification key.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: the type's key, whether it is an alias, and its go/types type
//   - TypeGraph: all loaded types, queryable by package name qualifier
package analyze
