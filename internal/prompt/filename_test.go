// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		allowHidden bool
		want        error
	}{
		{name: "plain", input: "chapter1"},
		{name: "spaces and dots", input: "part 1.final"},
		{name: "unicode letters", input: "résumé"},
		{name: "empty", input: "", want: ErrEmptyName},
		{name: "hidden", input: ".hidden", want: ErrHiddenName},
		{name: "hidden allowed", input: ".hidden", allowHidden: true},
		{name: "only dots", input: "...", allowHidden: true, want: ErrNoAlnum},
		{name: "only punctuation", input: "-_-", want: ErrNoAlnum},
		{name: "max length", input: strings.Repeat("a", MaxNameLength)},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), want: ErrNameTooLong},
		{name: "long multibyte within limit", input: strings.Repeat("é", MaxNameLength)},
		// Forbidden characters are checked before the hidden-name rule.
		{name: "hidden with colon", input: ".a:b", want: ErrForbiddenChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input, tt.allowHidden)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestValidateFileName_ForbiddenChars(t *testing.T) {
	for _, c := range ForbiddenChars {
		for _, name := range []string{string(c), "a" + string(c), string(c) + "b", "x" + string(c) + "y"} {
			err := ValidateFileName(name, true)
			assert.ErrorIs(t, err, ErrForbiddenChar, "name %q", name)
		}
	}
}
