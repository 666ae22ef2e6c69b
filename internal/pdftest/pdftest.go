// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small PDF fixtures for tests. Page i of a fixture
// is WidthBase+i points wide, so page order can be checked after a split by
// reading page widths back.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// WidthBase is added to the 1-indexed page number to get a page's width.
const WidthBase = 100

const pageHeight = 200

// Build returns an n-page PDF with a valid cross-reference table.
func Build(n int) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	obj("<</Type/Catalog/Pages 2 0 R>>")

	kids := new(bytes.Buffer)
	for i := 0; i < n; i++ {
		fmt.Fprintf(kids, "%d 0 R ", 3+2*i)
	}
	obj(fmt.Sprintf("<</Type/Pages/Kids[%s]/Count %d>>", bytes.TrimSpace(kids.Bytes()), n))

	for i := 1; i <= n; i++ {
		content := fmt.Sprintf("0 0 m %d %d l S", i, i)
		obj(fmt.Sprintf("<</Type/Page/Parent 2 0 R/MediaBox[0 0 %d %d]/Resources<<>>/Contents %d 0 R>>",
			WidthBase+i, pageHeight, 4+2*(i-1)))
		obj(fmt.Sprintf("<</Length %d>>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	fmt.Fprintf(&buf, "%010d %05d f \r\n", 0, 65535)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d %05d n \r\n", off, 0)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// Write stores an n-page fixture as dir/name and returns its path.
func Write(t testing.TB, dir, name string, n int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(n), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// SourcePages reads the PDF at path and returns, for each page, the
// 1-indexed fixture page it came from.
func SourcePages(t testing.TB, path string) []int {
	t.Helper()
	api.DisableConfigDir()
	dims, err := api.PageDimsFile(path)
	if err != nil {
		t.Fatalf("reading page dimensions of %s: %v", path, err)
	}
	pages := make([]int, len(dims))
	for i, d := range dims {
		pages[i] = int(d.Width+0.5) - WidthBase
	}
	return pages
}

// Pages returns start, start+1, ..., end.
func Pages(start, end int) []int {
	var pages []int
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
