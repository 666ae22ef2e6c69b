// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine adapts PDF libraries and tools to the narrow contract the
// splitter needs: open a source, report its page count, and write a new
// document holding a subset of its pages.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-splitter/pkg/types"
)

var (
	// ErrMalformed reports a source that exists but cannot be parsed as a PDF.
	ErrMalformed = errors.New("not a readable PDF")

	// ErrRead reports a failure reading pages out of an opened source.
	ErrRead = errors.New("reading source pages")
)

// Engine opens source documents. Different backends (pdfcpu, qpdf)
// implement this interface.
type Engine interface {
	// Name returns the backend name.
	Name() string

	// Open opens the PDF at path. Filesystem errors keep their identity
	// (fs.ErrNotExist, fs.ErrPermission); unparseable files wrap ErrMalformed.
	Open(ctx context.Context, path string) (Document, error)
}

// Document is an opened source PDF.
type Document interface {
	// PageCount returns the number of pages in the source.
	PageCount() int

	// ExtractPages writes a new PDF to w containing the given 1-indexed
	// source pages, appended in the order listed.
	ExtractPages(pages []int, w io.Writer) error

	// Close releases the source.
	Close() error
}

// New returns the engine selected by cfg.
func New(cfg types.EngineConfig, log *logrus.Logger) (Engine, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	switch cfg.Backend {
	case types.BackendPDFCPU, "":
		return NewPDFCPU(cfg.Validation, log)
	case types.BackendQPDF:
		return NewQPDF(cfg.QPDFPath, log)
	default:
		return nil, fmt.Errorf("unsupported backend %q: use %s or %s",
			cfg.Backend, types.BackendPDFCPU, types.BackendQPDF)
	}
}

// PageRanges formats page numbers as a compact range list such as
// "1-5,7,9-10". Consecutive ascending runs collapse into ranges; order is
// otherwise preserved.
func PageRanges(pages []int) string {
	var b strings.Builder
	for i := 0; i < len(pages); {
		j := i
		for j+1 < len(pages) && pages[j+1] == pages[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(pages[i]))
		if j > i {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(pages[j]))
		}
		i = j + 1
	}
	return b.String()
}

func checkPages(pages []int, pageCount int) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages requested")
	}
	for _, p := range pages {
		if p < 1 || p > pageCount {
			return &types.SplitError{
				Kind: types.KindPageOutOfRange,
				Err:  fmt.Errorf("page %d outside 1-%d", p, pageCount),
			}
		}
	}
	return nil
}
