// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func TestListPDFFiles(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name: "empty directory",
			want: []string{},
		},
		{
			name:  "mixed case extensions",
			files: []string{"a.pdf", "B.PDF", "c.Pdf", "notes.txt", "pdf", "archive.pdf.zip"},
			want:  []string{"a.pdf", "B.PDF", "c.Pdf"},
		},
		{
			name:  "no pdf files",
			files: []string{"readme.md", "image.png"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)

			got, err := ListPDFFiles(dir)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestListPDFFiles_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.pdf")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	touch(t, sub, "deep.pdf")

	got, err := ListPDFFiles(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"top.pdf"}, got)
}

func TestListPDFFiles_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := ListPDFFiles(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrNotFound)

	file := filepath.Join(dir, "plain.pdf")
	touch(t, dir, "plain.pdf")
	_, err = ListPDFFiles(file)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsPDFName(t *testing.T) {
	assert.True(t, IsPDFName("x.pdf"))
	assert.True(t, IsPDFName("X.PDF"))
	assert.False(t, IsPDFName("x.pdfx"))
	assert.False(t, IsPDFName("pdf"))
}

func TestListPDFFiles_UnreachablePath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "plain.txt")

	// Stat through a regular file fails with ENOTDIR, not ENOENT.
	_, err := ListPDFFiles(filepath.Join(dir, "plain.txt", "sub"))
	assert.ErrorIs(t, err, ErrNotFound)
}
