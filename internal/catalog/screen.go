// Package catalog describes the console's list screens and runs their
// mutations. Every screen is a listing.Controller over display rows backed
// by one shared query cache.
package catalog

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/multilingual"
)

// Column is one table column.
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// FilterSpec is a user-adjustable filter of a screen. An empty Options list
// accepts any value.
type FilterSpec struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Options []string `json:"options,omitempty"`
}

// Allows reports whether value is acceptable for the filter.
func (f FilterSpec) Allows(value string) bool {
	return len(f.Options) == 0 || slices.Contains(f.Options, value)
}

// Row is one decoded list item, rendered as cells aligned with the
// screen's columns.
type Row struct {
	ID    string   `json:"id"`
	Cells []string `json:"cells"`
}

// Screen is a list screen of the console.
type Screen interface {
	Name() string
	Title() string
	Path() string
	Roles() []domain.Role
	Columns() []Column
	Filters() []FilterSpec

	// Layout returns the multilingual layout of the create form, if the
	// screen has translatable fields.
	Layout() (multilingual.Layout, bool)

	// CanCreate reports whether the screen supports create mutations.
	CanCreate() bool

	rows(items []json.RawMessage, lang multilingual.Language) ([]Row, error)
	payload(sub Submission) (any, error)
}

// resource is the Screen implementation for entity type T.
type resource[T any] struct {
	name    string
	title   string
	path    string
	roles   []domain.Role
	columns []Column
	filters []FilterSpec
	layout  *multilingual.Layout

	id    func(T) int
	cells func(T, multilingual.Language) []string

	// build turns a submission into a create payload. nil means the screen
	// is read-only apart from deletes.
	build func(Submission) (any, error)
}

func (r *resource[T]) Name() string          { return r.name }
func (r *resource[T]) Title() string         { return r.title }
func (r *resource[T]) Path() string          { return r.path }
func (r *resource[T]) Roles() []domain.Role  { return slices.Clone(r.roles) }
func (r *resource[T]) Columns() []Column     { return slices.Clone(r.columns) }
func (r *resource[T]) Filters() []FilterSpec { return slices.Clone(r.filters) }
func (r *resource[T]) CanCreate() bool       { return r.build != nil }

func (r *resource[T]) Layout() (multilingual.Layout, bool) {
	if r.layout == nil {
		return multilingual.Layout{}, false
	}
	return *r.layout, true
}

func (r *resource[T]) rows(items []json.RawMessage, lang multilingual.Language) ([]Row, error) {
	out := make([]Row, 0, len(items))
	for i, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s item %d: %w", r.name, i, err)
		}
		out = append(out, Row{ID: strconv.Itoa(r.id(v)), Cells: r.cells(v, lang)})
	}
	return out, nil
}

func (r *resource[T]) payload(sub Submission) (any, error) {
	if r.build == nil {
		return nil, fmt.Errorf("create %s: %w", r.name, domain.ErrNotSupported)
	}
	return r.build(sub)
}

// filter returns the filter definition for key.
func filter(s Screen, key string) (FilterSpec, bool) {
	for _, f := range s.Filters() {
		if f.Key == key {
			return f, true
		}
	}
	return FilterSpec{}, false
}

// pick returns the translation of f in lang, falling back to Vietnamese.
func pick(records []domain.Translation, f multilingual.Field, lang multilingual.Language) string {
	aligned := multilingual.Aligned(f, records)
	if i := slices.Index(multilingual.DefaultLanguages, lang); i >= 0 && aligned[i] != "" {
		return aligned[i]
	}
	return aligned[0]
}
