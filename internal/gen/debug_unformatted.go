package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// unformattedSuffix replaces ".go" in the name of a sidecar file.
const unformattedSuffix = ".unformatted.go"

// sidecarName returns the name of the debug copy of filename.
func sidecarName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + unformattedSuffix
}

// writeDebugUnformatted saves output that go/format rejected next to where
// filename would have been written. The copy carries an ignore build
// constraint so the broken source never joins the package build, and a
// comment naming the call-site file and the formatter error.
func writeDebugUnformatted(outDir, filename, source string, content []byte, cause error) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	if source == "" {
		source = "unknown call-site file"
	}

	var buf bytes.Buffer

	buf.WriteString("//go:build ignore\n\n")
	fmt.Fprintf(&buf, "// Output generated from %s that could not be formatted.\n", source)

	for _, line := range strings.Split(cause.Error(), "\n") {
		fmt.Fprintf(&buf, "// %s\n", line)
	}

	buf.WriteString("\n")
	buf.Write(content)

	return os.WriteFile(filepath.Join(outDir, sidecarName(filename)), buf.Bytes(), 0o644)
}
