package multilingual

import "slices"

// Layout is the fixed set of translatable fields of an entity type. Slots
// are indexed field-major, languages in DefaultLanguages order.
type Layout struct {
	fields []Field
}

// NewLayout returns a layout for the given fields in order.
func NewLayout(fields ...Field) Layout {
	return Layout{fields: slices.Clone(fields)}
}

func (l Layout) Fields() []Field       { return slices.Clone(l.fields) }
func (l Layout) Languages() []Language { return slices.Clone(DefaultLanguages) }

// Size is the number of slots.
func (l Layout) Size() int { return len(l.fields) * len(DefaultLanguages) }

// Index returns the positional index of a slot, or false when the field is
// not part of the layout.
func (l Layout) Index(s Slot) (int, bool) {
	fi := slices.Index(l.fields, s.Field)
	li := slices.Index(DefaultLanguages, s.Language)
	if fi < 0 || li < 0 {
		return 0, false
	}
	return fi*len(DefaultLanguages) + li, true
}

// Slots lists every slot in index order.
func (l Layout) Slots() []Slot {
	out := make([]Slot, 0, l.Size())
	for _, f := range l.fields {
		for _, lang := range DefaultLanguages {
			out = append(out, Slot{Language: lang, Field: f})
		}
	}
	return out
}
