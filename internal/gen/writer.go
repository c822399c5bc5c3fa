package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"format-generator/internal/common"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	// Create output directory if it doesn't exist
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// Staleness describes how a file on disk differs from its regenerated content.
type Staleness int

const (
	// UpToDate - the file on disk matches.
	UpToDate Staleness = iota
	// Missing - no file on disk.
	Missing
	// Foreign - the file on disk was not produced by this generator.
	Foreign
	// Outdated - the fingerprint differs; the call-site file changed.
	Outdated
	// Modified - the fingerprint matches but the content was edited.
	Modified
)

// String returns a human-readable staleness name.
func (s Staleness) String() string {
	switch s {
	case UpToDate:
		return "up to date"
	case Missing:
		return "missing"
	case Foreign:
		return "not generated"
	case Outdated:
		return "outdated"
	case Modified:
		return "modified"
	default:
		return common.UnknownStr
	}
}

// CheckFile compares a regenerated file against the one in outputDir.
func CheckFile(file GeneratedFile, outputDir string) (Staleness, error) {
	existing, err := os.ReadFile(filepath.Join(outputDir, file.Filename))
	if errors.Is(err, fs.ErrNotExist) {
		return Missing, nil
	}

	if err != nil {
		return UpToDate, fmt.Errorf("reading file %s: %w", file.Filename, err)
	}

	have, ok := ReadFingerprint(existing)
	if !ok {
		return Foreign, nil
	}

	want, _ := ReadFingerprint(file.Content)
	if have != want {
		return Outdated, nil
	}

	if !bytes.Equal(existing, file.Content) {
		return Modified, nil
	}

	return UpToDate, nil
}
