// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-splitter/pkg/types"
)

func TestPageRanges(t *testing.T) {
	tests := []struct {
		pages []int
		want  string
	}{
		{pages: nil, want: ""},
		{pages: []int{4}, want: "4"},
		{pages: []int{1, 2, 3, 4, 5}, want: "1-5"},
		{pages: []int{1, 2, 4, 6, 7}, want: "1-2,4,6-7"},
		{pages: []int{5, 6, 1, 2}, want: "5-6,1-2"},
		{pages: []int{3, 3}, want: "3,3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageRanges(tt.pages), "pages %v", tt.pages)
	}
}

func TestCheckPages(t *testing.T) {
	assert.NoError(t, checkPages([]int{1, 5, 10}, 10))
	assert.Error(t, checkPages(nil, 10))

	err := checkPages([]int{1, 11}, 10)
	require.Error(t, err)
	assert.Equal(t, types.KindPageOutOfRange, types.KindOf(err))

	err = checkPages([]int{0}, 10)
	assert.Equal(t, types.KindPageOutOfRange, types.KindOf(err))
}

func TestNew(t *testing.T) {
	log := logrus.New()

	eng, err := New(types.EngineConfig{}, log)
	require.NoError(t, err)
	assert.Equal(t, "pdfcpu", eng.Name())

	eng, err = New(types.EngineConfig{Backend: types.BackendPDFCPU, Validation: types.ValidationStrict}, log)
	require.NoError(t, err)
	assert.Equal(t, "pdfcpu", eng.Name())

	_, err = New(types.EngineConfig{Backend: "ghostscript"}, log)
	assert.ErrorContains(t, err, "unsupported backend")

	_, err = New(types.EngineConfig{Validation: "paranoid"}, log)
	assert.ErrorContains(t, err, "unsupported validation mode")
}
