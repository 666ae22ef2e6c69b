// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-splitter/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.Record(ctx, types.SplitRecord{
		Source: "/docs/book.pdf", Output: "/docs/a.pdf",
		FirstPage: 1, LastPage: 5, Backend: types.BackendPDFCPU, CreatedAt: base,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 5, first.Pages)

	_, err = s.Record(ctx, types.SplitRecord{
		Source: "/docs/book.pdf", Output: "/docs/b.pdf",
		FirstPage: 6, LastPage: 10, Backend: types.BackendPDFCPU, CreatedAt: base.Add(time.Minute),
	})
	require.NoError(t, err)

	_, err = s.Record(ctx, types.SplitRecord{
		Source: "/docs/other.pdf", Output: "/docs/c.pdf",
		FirstPage: 2, LastPage: 2, Backend: types.BackendQPDF, CreatedAt: base.Add(2 * time.Minute),
	})
	require.NoError(t, err)

	all, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "/docs/c.pdf", all[0].Output, "newest first")
	assert.Equal(t, types.BackendQPDF, all[0].Backend)
	assert.Equal(t, "/docs/a.pdf", all[2].Output)
	assert.True(t, all[2].CreatedAt.Equal(base))

	book, err := s.List(ctx, ListOptions{Source: "/docs/book.pdf"})
	require.NoError(t, err)
	assert.Len(t, book, 2)

	limited, err := s.List(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), types.SplitRecord{Source: "s", Output: "o", FirstPage: 1, LastPage: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	records, err := s.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
