// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCursor(t *testing.T) {
	tests := []struct {
		start, end int
	}{
		{1, 1},
		{1, 10},
		{6, 10},
		{42, 57},
	}
	for _, tt := range tests {
		out := OutputFile{Name: "x.pdf", Interval: PageInterval{Start: tt.start, End: tt.end}}
		cur := out.Pages()
		assert.Equal(t, tt.end-tt.start+1, cur.Remaining())

		var got []int
		for {
			p, ok := cur.Next()
			if !ok {
				break
			}
			got = append(got, p)
		}

		require.Len(t, got, tt.end-tt.start+1)
		for i, p := range got {
			assert.Equal(t, tt.start+i, p)
		}

		// Exhausted for good.
		_, ok := cur.Next()
		assert.False(t, ok)
		assert.Zero(t, cur.Remaining())
		assert.Empty(t, cur.Drain())

		// A fresh cursor starts over; the old one stays exhausted.
		assert.Equal(t, got, out.Pages().Drain())
		_, ok = cur.Next()
		assert.False(t, ok)
	}
}

func TestPageCursor_Inverted(t *testing.T) {
	cur := OutputFile{Interval: PageInterval{Start: 5, End: 4}}.Pages()
	assert.Zero(t, cur.Remaining())
	assert.Empty(t, cur.Drain())
}

func TestPageInterval(t *testing.T) {
	assert.Equal(t, 5, PageInterval{Start: 6, End: 10}.Len())
	assert.Equal(t, 0, PageInterval{Start: 3, End: 2}.Len())
	assert.Equal(t, "6-10", PageInterval{Start: 6, End: 10}.String())

	assert.NoError(t, PageInterval{Start: 1, End: 10}.Validate(10))
	assert.NoError(t, PageInterval{Start: 10, End: 10}.Validate(10))

	for _, bad := range []PageInterval{{0, 1}, {2, 1}, {1, 11}, {11, 11}} {
		err := bad.Validate(10)
		require.Error(t, err, "interval %v", bad)
		assert.Equal(t, KindPageOutOfRange, KindOf(err))
	}
}

func TestOutputFile_String(t *testing.T) {
	out := OutputFile{Name: "a.pdf", Interval: PageInterval{Start: 1, End: 5}}
	assert.Equal(t, "a.pdf (1-5)", out.String())
}

func TestOutputFile_Replaces(t *testing.T) {
	out := OutputFile{Name: "report.pdf", Interval: PageInterval{Start: 1, End: 2}}

	assert.True(t, out.Replaces("report.pdf"))
	assert.True(t, out.Replaces("Report.PDF"))
	assert.True(t, out.Replaces("/docs/report.pdf"))
	assert.False(t, out.Replaces("report-2.pdf"))
	assert.False(t, out.Replaces(""))
}
