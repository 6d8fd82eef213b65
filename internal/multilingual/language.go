// Package multilingual binds per-language translation records of an entity
// to form slots by position.
package multilingual

import (
	"fmt"
	"strings"
)

// Language is a supported content language.
type Language int

const (
	Vietnamese Language = iota
	English
	Japanese
)

// DefaultLanguages is the fixed slot order used by every entity type.
// Vietnamese is first and mandatory.
var DefaultLanguages = []Language{Vietnamese, English, Japanese}

// Code returns the ISO 639-1 code used by the backend.
func (l Language) Code() string {
	switch l {
	case Vietnamese:
		return "vi"
	case English:
		return "en"
	case Japanese:
		return "ja"
	}
	return ""
}

func (l Language) String() string { return l.Code() }

// ParseLanguage resolves a language code.
func ParseLanguage(code string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "vi":
		return Vietnamese, nil
	case "en":
		return English, nil
	case "ja":
		return Japanese, nil
	}
	return 0, fmt.Errorf("unsupported language %q", code)
}

// Field is a translatable entity field.
type Field int

const (
	Name Field = iota
	Description
)

func (f Field) String() string {
	switch f {
	case Name:
		return "name"
	case Description:
		return "description"
	}
	return ""
}

// JSONKey is the payload key holding the field's translation array.
func (f Field) JSONKey() string {
	return f.String() + "Translations"
}

// Slot addresses one translation input.
type Slot struct {
	Language Language
	Field    Field
}

// Path is the form field path of the slot, e.g. "name.vi".
func (s Slot) Path() string {
	return s.Field.String() + "." + s.Language.Code()
}
