// Command format-check runs the fmtcheck analyzer as a standalone vet tool.
//
// Usage:
//
//	format-check [-funcs=fmt.Printf,...] [-specifiers=d=int,...] ./...
//
// It can also be used as a go vet tool:
//
//	go vet -vettool=$(which format-check) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"format-generator/internal/fmtcheck"
)

func main() {
	singlechecker.Main(fmtcheck.Analyzer)
}
