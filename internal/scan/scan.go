// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan finds candidate source PDFs in a directory.
package scan

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound reports that the directory to scan does not exist or cannot
// be reached.
var ErrNotFound = errors.New("directory not found")

const pdfExt = ".pdf"

// ListPDFFiles returns the names of the direct entries of dir whose name
// ends in ".pdf", compared case-insensitively, in the order the filesystem
// enumerates them. A path that cannot be stat'ed for any reason, or that is
// not a directory, yields an error matching ErrNotFound.
func ListPDFFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening directory %s: %w", dir, err)
	}
	defer f.Close()

	// Readdirnames keeps enumeration order; os.ReadDir would sort.
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	files := []string{}
	for _, name := range names {
		if IsPDFName(name) {
			files = append(files, name)
		}
	}
	return files, nil
}

// IsPDFName reports whether name carries a .pdf extension in any letter case.
func IsPDFName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), pdfExt)
}
