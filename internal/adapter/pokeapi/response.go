package pokeapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// envelope is the common response shape of the backend.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    messages        `json:"message"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

type listData struct {
	Results    []json.RawMessage `json:"results"`
	Pagination *apiPagination    `json:"pagination"`
}

type apiPagination struct {
	Current   int `json:"current"`
	PageSize  int `json:"pageSize"`
	TotalPage int `json:"totalPage"`
	TotalItem int `json:"totalItem"`
}

func (p *apiPagination) toDomain() domain.Pagination {
	if p == nil {
		return domain.Pagination{}
	}
	return domain.Pagination{
		CurrentPage: p.Current,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPage,
		TotalItems:  p.TotalItem,
	}
}

// messages accepts either a single string or an array of strings.
type messages []string

func (m *messages) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return fmt.Errorf("message list: %w", err)
		}
		*m = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("message: %w", err)
	}
	*m = messages{s}
	return nil
}

func (m messages) String() string { return strings.Join(m, "; ") }

// validationError maps a 422 message list to field errors. Messages that
// start with a property path ("slug should not be empty",
// "nameTranslations.0.value must be a string") keep it as the field; anything
// else is reported against the request as a whole.
func validationError(msgs messages) *domain.ValidationError {
	if len(msgs) == 0 {
		return domain.NewValidationError("request", "rejected by server")
	}
	errs := make([]domain.FieldError, 0, len(msgs))
	for _, msg := range msgs {
		field, rest, ok := strings.Cut(msg, " ")
		if !ok || !looksLikePath(field) {
			errs = append(errs, domain.FieldError{Field: "request", Message: msg})
			continue
		}
		errs = append(errs, domain.FieldError{Field: field, Message: rest})
	}
	return domain.NewValidationErrors(errs)
}

func looksLikePath(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_':
		default:
			return false
		}
	}
	return true
}
