package common

import (
	"path"
	"strings"
)

// UnknownStr is the display value for enum values outside their defined range.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// SplitQualified splits "pkg.Name" into its qualifier and name.
// Unqualified names return an empty qualifier.
func SplitQualified(s string) (qualifier, name string) {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return "", s
	}

	return s[:i], s[i+1:]
}
