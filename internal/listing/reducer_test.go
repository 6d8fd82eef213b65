package listing

import (
	"errors"
	"testing"

	"github.com/pokenihongo/admin-console/internal/domain"
)

func stateAt(t *testing.T, page int, actions ...Action) FilterState {
	t.Helper()
	s := NewFilterState(domain.DefaultPageSize)
	for _, a := range actions {
		var err error
		s, err = Reduce(s, a)
		if err != nil {
			t.Fatalf("Reduce(%s): %v", a.ActionName(), err)
		}
	}
	s, err := Reduce(s, SetPage{Page: page})
	if err != nil {
		t.Fatalf("Reduce(set_page): %v", err)
	}
	return s
}

type bogusAction struct{}

func (bogusAction) ActionName() string { return "bogus" }

func TestNewFilterState_Defaults(t *testing.T) {
	t.Parallel()

	s := NewFilterState(0)
	if s.Page() != 1 {
		t.Errorf("Page() = %d, want 1", s.Page())
	}
	if s.PageSize() != 15 {
		t.Errorf("PageSize() = %d, want 15", s.PageSize())
	}
	if _, ok := s.Search(); ok {
		t.Error("search should be unset")
	}
	if len(s.Filters()) != 0 {
		t.Errorf("Filters() = %v, want empty", s.Filters())
	}
}

func TestReduce_ResetsPageToOne(t *testing.T) {
	t.Parallel()

	actions := []Action{
		SetSearch{Text: "taberu"},
		SetSearch{Text: ""},
		SetFilter{Key: "levelN", Value: "5"},
		SetFilter{Key: "levelN", Value: ""},
		SetPageSize{PageSize: 30},
		ClearFilters{},
	}

	for _, a := range actions {
		for _, page := range []int{1, 2, 7, 99} {
			s := stateAt(t, page, SetFilter{Key: "status", Value: "ACTIVE"})

			next, err := Reduce(s, a)
			if err != nil {
				t.Fatalf("Reduce(%s) from page %d: %v", a.ActionName(), page, err)
			}
			if next.Page() != 1 {
				t.Errorf("Reduce(%s) from page %d: page = %d, want 1", a.ActionName(), page, next.Page())
			}
		}
	}
}

func TestReduce_SetSearch_TrimsAndUnsets(t *testing.T) {
	t.Parallel()

	s, err := Reduce(NewFilterState(15), SetSearch{Text: "  ねこ  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := s.Search(); !ok || got != "ねこ" {
		t.Fatalf("Search() = %q, %v; want %q, true", got, ok, "ねこ")
	}

	s, err = Reduce(s, SetSearch{Text: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Search(); ok {
		t.Fatal("blank search should unset")
	}
	if s.Values().Has(ParamSearch) {
		t.Fatal("unset search must not be encoded")
	}
}

func TestReduce_Idempotent(t *testing.T) {
	t.Parallel()

	actions := []Action{
		SetSearch{Text: "abc"},
		SetFilter{Key: "levelN", Value: "3"},
		SetFilter{Key: "missing", Value: ""},
		SetPage{Page: 4},
		SetPageSize{PageSize: 45},
		ClearFilters{},
	}

	for _, a := range actions {
		t.Run(a.ActionName(), func(t *testing.T) {
			t.Parallel()

			start := stateAt(t, 3, SetFilter{Key: "status", Value: "DRAFT"})
			once, err := Reduce(start, a)
			if err != nil {
				t.Fatalf("first Reduce: %v", err)
			}
			twice, err := Reduce(once, a)
			if err != nil {
				t.Fatalf("second Reduce: %v", err)
			}
			if !once.Equal(twice) {
				t.Fatalf("second application changed state: %+v -> %+v", once, twice)
			}
		})
	}
}

func TestReduce_SetFilter(t *testing.T) {
	t.Parallel()

	s, err := Reduce(NewFilterState(15), SetFilter{Key: "isPublished", Value: BoolValue(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := s.Filter("isPublished"); !ok || v != "false" {
		t.Fatalf("explicit false must be a set value, got %q, %v", v, ok)
	}

	s, err = Reduce(s, SetFilter{Key: "isPublished", Value: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Filter("isPublished"); ok {
		t.Fatal("empty value should remove the filter")
	}
}

func TestReduce_SetFilter_TrimsValue(t *testing.T) {
	t.Parallel()

	s, err := Reduce(NewFilterState(15), SetFilter{Key: "levelN", Value: " 5 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := s.Filter("levelN"); v != "5" {
		t.Fatalf("value should be trimmed, got %q", v)
	}

	s, err = Reduce(s, SetFilter{Key: "levelN", Value: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Filter("levelN"); ok {
		t.Fatal("whitespace-only value should remove the filter")
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	s := stateAt(t, 2, SetFilter{Key: "levelN", Value: "5"})
	before := s.Filters()

	if _, err := Reduce(s, SetFilter{Key: "levelN", Value: "4"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Reduce(s, SetFilter{Key: "levelN", Value: ""}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := s.Filter("levelN"); v != before["levelN"] || s.Page() != 2 {
		t.Fatalf("input state was mutated: %+v", s)
	}
}

func TestReduce_SetPage_DoesNotClamp(t *testing.T) {
	t.Parallel()

	s, err := Reduce(NewFilterState(15), SetPage{Page: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Page() != 1000 {
		t.Fatalf("Page() = %d, want 1000", s.Page())
	}
}

func TestReduce_ClearFilters_RestoresDefaults(t *testing.T) {
	t.Parallel()

	s := NewFilterState(30)
	for _, a := range []Action{
		SetSearch{Text: "kanji"},
		SetFilter{Key: "jlptLevel", Value: "2"},
		SetPageSize{PageSize: 60},
		SetPage{Page: 5},
	} {
		var err error
		if s, err = Reduce(s, a); err != nil {
			t.Fatalf("Reduce(%s): %v", a.ActionName(), err)
		}
	}

	cleared, err := Reduce(s, ClearFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cleared.Equal(NewFilterState(30)) {
		t.Fatalf("ClearFilters() = %+v, want defaults with page size 30", cleared)
	}
}

func TestReduce_RejectsInvalidActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		action Action
	}{
		{name: "unknown type", action: bogusAction{}},
		{name: "nil", action: nil},
		{name: "page zero", action: SetPage{Page: 0}},
		{name: "negative page size", action: SetPageSize{PageSize: -15}},
		{name: "blank filter key", action: SetFilter{Key: "  ", Value: "x"}},
		{name: "filter on page key", action: SetFilter{Key: ParamPage, Value: "4"}},
		{name: "filter on page size key", action: SetFilter{Key: ParamPageSize, Value: "999"}},
		{name: "filter on search key", action: SetFilter{Key: ParamSearch, Value: "neko"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := stateAt(t, 3)
			next, err := Reduce(s, tt.action)
			if !errors.Is(err, domain.ErrInvalidAction) {
				t.Fatalf("expected ErrInvalidAction, got %v", err)
			}
			if !next.Equal(s) {
				t.Fatalf("state changed on rejected action: %+v", next)
			}
		})
	}
}

func TestFilterState_Values(t *testing.T) {
	t.Parallel()

	s := stateAt(t, 2, SetSearch{Text: "hiragana"}, SetFilter{Key: "levelN", Value: IntValue(4)})
	v := s.Values()

	want := map[string]string{
		ParamPage:     "2",
		ParamPageSize: "15",
		ParamSearch:   "hiragana",
		"levelN":      "4",
	}
	if len(v) != len(want) {
		t.Fatalf("Values() = %v, want %v", v, want)
	}
	for k, w := range want {
		if got := v.Get(k); got != w {
			t.Errorf("Values()[%q] = %q, want %q", k, got, w)
		}
	}
}
