package catalog

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/multilingual"
)

// Submission is the raw input of a create or update form.
type Submission struct {
	// Fields holds the plain fields by payload key, e.g. "slug".
	Fields url.Values

	// Binding holds the translation inputs. Screens without a layout
	// ignore it.
	Binding multilingual.Binding
}

// FormSubmission builds a Submission whose translations are read from the
// same form values, at paths like "name.vi".
func FormSubmission(s Screen, values url.Values) Submission {
	sub := Submission{Fields: values}
	if layout, ok := s.Layout(); ok {
		sub.Binding = multilingual.NewFormBinding(layout, values)
	}
	return sub
}

// fields reads typed values out of a submission and collects parse
// failures as field errors.
type fields struct {
	values url.Values
	errs   []domain.FieldError
}

func newFields(sub Submission) *fields {
	v := sub.Fields
	if v == nil {
		v = url.Values{}
	}
	return &fields{values: v}
}

func (f *fields) str(key string) string {
	return strings.TrimSpace(f.values.Get(key))
}

func (f *fields) int(key string) int {
	s := f.str(key)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f.errs = append(f.errs, domain.FieldError{Field: key, Message: "must be a number"})
		return 0
	}
	return n
}

func (f *fields) bool(key string) bool {
	s := f.str(key)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		f.errs = append(f.errs, domain.FieldError{Field: key, Message: "must be true or false"})
		return false
	}
	return b
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func (f *fields) time(key string) time.Time {
	s := f.str(key)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	f.errs = append(f.errs, domain.FieldError{Field: key, Message: "must be a date"})
	return time.Time{}
}

// translations checks the binding and returns the records of field.
// Problems are collected like parse failures.
func (f *fields) translations(sub Submission, field multilingual.Field) []domain.Translation {
	if sub.Binding == nil {
		f.errs = append(f.errs, domain.FieldError{Field: field.JSONKey(), Message: "required"})
		return nil
	}
	return multilingual.Translations(sub.Binding, field)
}

// checkBinding runs the completeness rules once per submission.
func (f *fields) checkBinding(sub Submission) {
	if sub.Binding == nil {
		return
	}
	if err := multilingual.Check(sub.Binding); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			f.errs = append(f.errs, ve.Errors...)
			return
		}
		f.errs = append(f.errs, domain.FieldError{Field: "translations", Message: err.Error()})
	}
}

func (f *fields) err() error {
	if len(f.errs) > 0 {
		return domain.NewValidationErrors(f.errs)
	}
	return nil
}
