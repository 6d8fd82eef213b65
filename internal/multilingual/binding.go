package multilingual

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// Binding stores translation inputs for the slots of a Layout.
// FormBinding and StateBinding are the two implementations; callers pick
// one explicitly.
type Binding interface {
	Layout() Layout
	Get(s Slot) string
	Set(s Slot, value string) error
}

// FormBinding reads and writes submitted form values. The form path of a
// slot is Slot.Path.
type FormBinding struct {
	layout Layout
	values url.Values
}

// NewFormBinding binds a layout to form values. values is used in place.
func NewFormBinding(layout Layout, values url.Values) *FormBinding {
	if values == nil {
		values = url.Values{}
	}
	return &FormBinding{layout: layout, values: values}
}

func (b *FormBinding) Layout() Layout { return b.layout }

func (b *FormBinding) Get(s Slot) string {
	if _, ok := b.layout.Index(s); !ok {
		return ""
	}
	return strings.TrimSpace(b.values.Get(s.Path()))
}

func (b *FormBinding) Set(s Slot, value string) error {
	if _, ok := b.layout.Index(s); !ok {
		return fmt.Errorf("slot %s not in layout", s.Path())
	}
	b.values.Set(s.Path(), value)
	return nil
}

// Values returns the underlying form values.
func (b *FormBinding) Values() url.Values { return b.values }

// StateBinding keeps inputs in memory, one string per slot.
type StateBinding struct {
	layout Layout
	slots  []string
}

// NewStateBinding returns an empty in-memory binding.
func NewStateBinding(layout Layout) *StateBinding {
	return &StateBinding{layout: layout, slots: make([]string, layout.Size())}
}

func (b *StateBinding) Layout() Layout { return b.layout }

func (b *StateBinding) Get(s Slot) string {
	i, ok := b.layout.Index(s)
	if !ok {
		return ""
	}
	return b.slots[i]
}

func (b *StateBinding) Set(s Slot, value string) error {
	i, ok := b.layout.Index(s)
	if !ok {
		return fmt.Errorf("slot %s not in layout", s.Path())
	}
	b.slots[i] = strings.TrimSpace(value)
	return nil
}

// Load fills the field's slots from translation records. Languages without
// a record are set to "", so every slot stays aligned by position.
func Load(b Binding, f Field, records []domain.Translation) error {
	byCode := make(map[string]string, len(records))
	for _, r := range records {
		byCode[strings.ToLower(r.LanguageCode)] = r.Value
	}
	for _, lang := range DefaultLanguages {
		if err := b.Set(Slot{Language: lang, Field: f}, byCode[lang.Code()]); err != nil {
			return err
		}
	}
	return nil
}

// Aligned returns the field's values in DefaultLanguages order, "" for
// missing translations.
func Aligned(f Field, records []domain.Translation) []string {
	b := NewStateBinding(NewLayout(f))
	_ = Load(b, f, records) // the layout always contains f
	out := make([]string, len(DefaultLanguages))
	for i, lang := range DefaultLanguages {
		out[i] = b.Get(Slot{Language: lang, Field: f})
	}
	return out
}

// Translations returns the non-empty translation records of a field in
// slot order.
func Translations(b Binding, f Field) []domain.Translation {
	var out []domain.Translation
	for _, lang := range DefaultLanguages {
		v := b.Get(Slot{Language: lang, Field: f})
		if v == "" {
			continue
		}
		out = append(out, domain.Translation{LanguageCode: lang.Code(), Value: v})
	}
	return out
}

// Check enforces the completeness rules: every field is required in
// Vietnamese, and any other language is either complete across all fields
// or entirely absent.
func Check(b Binding) error {
	layout := b.Layout()
	var errs []domain.FieldError

	for _, lang := range DefaultLanguages {
		var missing []Field
		for _, f := range layout.fields {
			if b.Get(Slot{Language: lang, Field: f}) == "" {
				missing = append(missing, f)
			}
		}

		partial := len(missing) > 0 && len(missing) < len(layout.fields)
		if lang != Vietnamese && !partial {
			continue
		}
		for _, f := range missing {
			msg := "required"
			if lang != Vietnamese {
				msg = "incomplete translation"
			}
			errs = append(errs, domain.FieldError{
				Field:   f.JSONKey() + "." + lang.Code(),
				Message: msg,
			})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
