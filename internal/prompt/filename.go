// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ForbiddenChars are rejected in output file names on every platform.
const ForbiddenChars = `<>:"/\|?*`

// MaxNameLength is the longest accepted file name, in characters.
const MaxNameLength = 255

// ErrInvalidName matches every file name validation failure.
var ErrInvalidName = errors.New("invalid file name")

// nameError carries the user-facing reason for a rejected name.
type nameError string

func (e nameError) Error() string { return string(e) }

func (e nameError) Is(target error) bool { return target == ErrInvalidName }

// Validation failures, in the order ValidateFileName checks them.
var (
	ErrEmptyName     error = nameError("File name cannot be empty.")
	ErrForbiddenChar error = nameError("File name cannot contain any of these characters: " + ForbiddenChars)
	ErrHiddenName    error = nameError("File name cannot start with a dot.")
	ErrNameTooLong   error = nameError("File name is too long. Maximum length is 255 characters.")
	ErrNoAlnum       error = nameError("File name must contain at least one letter or number.")
)

// ValidateFileName checks an already trimmed name and returns the first
// rule it breaks, or nil when the name is usable.
func ValidateFileName(name string, allowHidden bool) error {
	switch {
	case name == "":
		return ErrEmptyName
	case strings.ContainsAny(name, ForbiddenChars):
		return ErrForbiddenChar
	case !allowHidden && strings.HasPrefix(name, "."):
		return ErrHiddenName
	case utf8.RuneCountInString(name) > MaxNameLength:
		return ErrNameTooLong
	case !strings.ContainsFunc(name, isAlnum):
		return ErrNoAlnum
	}
	return nil
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
