package middleware

import (
	"net/http"
	"strings"

	"github.com/pokenihongo/admin-console/internal/multilingual"
	"github.com/pokenihongo/admin-console/pkg/ctxutil"
)

// Locale picks the display language from the "locale" query parameter or
// the first supported Accept-Language tag, falling back to def.
func Locale(def string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := def
			if l, ok := supported(r.URL.Query().Get("locale")); ok {
				locale = l
			} else if l, ok := fromAcceptLanguage(r.Header.Get("Accept-Language")); ok {
				locale = l
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithLocale(r.Context(), locale)))
		})
	}
}

func fromAcceptLanguage(h string) (string, bool) {
	for _, part := range strings.Split(h, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		base, _, _ := strings.Cut(tag, "-")
		if l, ok := supported(base); ok {
			return l, true
		}
	}
	return "", false
}

func supported(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	lang, err := multilingual.ParseLanguage(code)
	if err != nil {
		return "", false
	}
	return lang.Code(), true
}
