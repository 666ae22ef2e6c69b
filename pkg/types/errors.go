// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies the failures a split session can report.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindDirectoryNotFound
	KindNoPDFFiles
	KindSourceNotFound
	KindSourceRead
	KindPageOutOfRange
	KindDestinationWrite
)

var kindNames = map[ErrorKind]string{
	KindUnexpected:        "unexpected",
	KindDirectoryNotFound: "directory not found",
	KindNoPDFFiles:        "no pdf files",
	KindSourceNotFound:    "source not found",
	KindSourceRead:        "source read",
	KindPageOutOfRange:    "page out of range",
	KindDestinationWrite:  "destination write",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SplitError is a classified session failure. Path names the directory or
// file involved, if any.
type SplitError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *SplitError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return e.Kind.String()
}

func (e *SplitError) Unwrap() error { return e.Err }

// Message returns the single line shown to the user for this error.
func (e *SplitError) Message() string {
	switch e.Kind {
	case KindDirectoryNotFound:
		return fmt.Sprintf("Directory '%s' does not exist.", e.Path)
	case KindNoPDFFiles:
		return "No PDF files found in the directory."
	case KindSourceNotFound:
		return fmt.Sprintf("File not found: %s", e.Path)
	case KindSourceRead:
		return fmt.Sprintf("Error reading file: %s", e.Path)
	case KindPageOutOfRange:
		if e.Path != "" {
			return fmt.Sprintf("Invalid page range for %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("Invalid page range: %v", e.Err)
	case KindDestinationWrite:
		return fmt.Sprintf("Error writing file: %s", e.Path)
	}
	return fmt.Sprintf("An unexpected error occurred: %v", e.Err)
}

// KindOf classifies err. Errors that are not SplitErrors are mapped by their
// filesystem identity: not-exist errors are SourceNotFound, other path
// errors SourceRead, everything else Unexpected.
func KindOf(err error) ErrorKind {
	var se *SplitError
	if errors.As(err, &se) {
		return se.Kind
	}
	if errors.Is(err, fs.ErrNotExist) {
		return KindSourceNotFound
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return KindSourceRead
	}
	return KindUnexpected
}

// Classify wraps err as a SplitError for path, keeping an existing
// classification when err already carries one.
func Classify(err error, path string) *SplitError {
	var se *SplitError
	if errors.As(err, &se) {
		return se
	}
	return &SplitError{Kind: KindOf(err), Path: path, Err: err}
}
