package multilingual

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokenihongo/admin-console/internal/domain"
)

func TestLayout_IndexIsPositional(t *testing.T) {
	t.Parallel()

	l := NewLayout(Name, Description)
	require.Equal(t, 6, l.Size())

	for want, s := range l.Slots() {
		got, ok := l.Index(s)
		require.True(t, ok)
		assert.Equal(t, want, got, "slot %s", s.Path())
	}

	i, ok := l.Index(Slot{Language: Japanese, Field: Description})
	assert.True(t, ok)
	assert.Equal(t, 5, i)

	_, ok = NewLayout(Name).Index(Slot{Language: Vietnamese, Field: Description})
	assert.False(t, ok)
}

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	lang, err := ParseLanguage(" JA ")
	require.NoError(t, err)
	assert.Equal(t, Japanese, lang)

	_, err = ParseLanguage("fr")
	assert.Error(t, err)

	assert.Equal(t, "descriptionTranslations", Description.JSONKey())
}

// Both implementations must behave identically through the interface.
func TestBindings_Interchangeable(t *testing.T) {
	t.Parallel()

	layout := NewLayout(Name, Description)
	bindings := map[string]Binding{
		"form":  NewFormBinding(layout, url.Values{}),
		"state": NewStateBinding(layout),
	}

	for name, b := range bindings {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Set(Slot{Language: Vietnamese, Field: Name}, " Bài 1 "))
			require.NoError(t, b.Set(Slot{Language: Japanese, Field: Name}, "第一課"))

			assert.Equal(t, "Bài 1", b.Get(Slot{Language: Vietnamese, Field: Name}))
			assert.Equal(t, "", b.Get(Slot{Language: English, Field: Name}))

			got := Translations(b, Name)
			assert.Equal(t, []domain.Translation{
				{LanguageCode: "vi", Value: "Bài 1"},
				{LanguageCode: "ja", Value: "第一課"},
			}, got)
		})
	}
}

func TestBindings_RejectSlotsOutsideLayout(t *testing.T) {
	t.Parallel()

	layout := NewLayout(Name)
	outside := Slot{Language: Vietnamese, Field: Description}

	for _, b := range []Binding{NewFormBinding(layout, nil), NewStateBinding(layout)} {
		assert.Error(t, b.Set(outside, "x"))
		assert.Equal(t, "", b.Get(outside))
	}
}

func TestFormBinding_UsesSlotPaths(t *testing.T) {
	t.Parallel()

	form := url.Values{"name.vi": {"Chữ Hán"}, "name.en": {"Kanji"}}
	b := NewFormBinding(NewLayout(Name), form)

	assert.Equal(t, "Kanji", b.Get(Slot{Language: English, Field: Name}))
	require.NoError(t, b.Set(Slot{Language: Japanese, Field: Name}, "漢字"))
	assert.Equal(t, "漢字", b.Values().Get("name.ja"))
}

func TestLoad_FillsMissingLanguagesWithEmpty(t *testing.T) {
	t.Parallel()

	b := NewStateBinding(NewLayout(Name))
	require.NoError(t, b.Set(Slot{Language: English, Field: Name}, "stale"))

	require.NoError(t, Load(b, Name, []domain.Translation{
		{LanguageCode: "ja", Value: "ひらがな"},
		{LanguageCode: "VI", Value: "Hiragana"},
	}))

	assert.Equal(t, "Hiragana", b.Get(Slot{Language: Vietnamese, Field: Name}))
	assert.Equal(t, "", b.Get(Slot{Language: English, Field: Name}))
	assert.Equal(t, "ひらがな", b.Get(Slot{Language: Japanese, Field: Name}))

	assert.Equal(t, []string{"", "Greeting", ""}, Aligned(Name, []domain.Translation{
		{LanguageCode: "en", Value: "Greeting"},
	}))
}

func TestCheck(t *testing.T) {
	t.Parallel()

	type input map[Slot]string
	vi := func(f Field) Slot { return Slot{Language: Vietnamese, Field: f} }
	en := func(f Field) Slot { return Slot{Language: English, Field: f} }

	tests := []struct {
		name       string
		in         input
		wantFields []string
	}{
		{
			name: "vietnamese only",
			in:   input{vi(Name): "Tên", vi(Description): "Mô tả"},
		},
		{
			name: "complete english",
			in:   input{vi(Name): "Tên", vi(Description): "Mô tả", en(Name): "Name", en(Description): "Desc"},
		},
		{
			name:       "missing vietnamese",
			in:         input{en(Name): "Name", en(Description): "Desc"},
			wantFields: []string{"nameTranslations.vi", "descriptionTranslations.vi"},
		},
		{
			name:       "partial english",
			in:         input{vi(Name): "Tên", vi(Description): "Mô tả", en(Name): "Name"},
			wantFields: []string{"descriptionTranslations.en"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewStateBinding(NewLayout(Name, Description))
			for s, v := range tt.in {
				require.NoError(t, b.Set(s, v))
			}

			err := Check(b)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			var fields []string
			for _, fe := range verr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}
