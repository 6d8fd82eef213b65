package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pokenihongo/admin-console/internal/adapter/pokeapi"
	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/listing"
	"github.com/pokenihongo/admin-console/internal/multilingual"
	"github.com/pokenihongo/admin-console/internal/query"
)

// apiClient defines the backend operations needed by the registry.
type apiClient interface {
	List(ctx context.Context, path string, query url.Values, locale string) (pokeapi.ListResult, error)
	Create(ctx context.Context, path string, payload any) (json.RawMessage, error)
	Update(ctx context.Context, path, id string, payload any) (json.RawMessage, error)
	Delete(ctx context.Context, path, id string) error
}

// Registry holds the screens, the shared page cache and the mutation
// pipeline.
type Registry struct {
	log      *slog.Logger
	client   apiClient
	screens  []Screen
	byName   map[string]Screen
	cache    *query.Cache[pokeapi.ListResult]
	validate *validator.Validate
}

// NewRegistry creates a registry over the given screens. Pass Screens()
// for the built-in set.
func NewRegistry(
	logger *slog.Logger,
	client apiClient,
	screens []Screen,
	cacheOpts query.Options,
	metrics *query.Metrics,
) *Registry {
	r := &Registry{
		log:      logger.With("service", "catalog"),
		client:   client,
		screens:  screens,
		byName:   make(map[string]Screen, len(screens)),
		validate: newValidator(),
	}
	for _, s := range screens {
		r.byName[s.Name()] = s
	}
	r.cache = query.New(r.load, cacheOpts, metrics, logger)
	return r
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Screens returns all screens in menu order.
func (r *Registry) Screens() []Screen {
	return append([]Screen(nil), r.screens...)
}

// Visible returns the screens role may open.
func (r *Registry) Visible(role domain.Role) []Screen {
	var out []Screen
	for _, s := range r.screens {
		if auth.Authorize(role, s.Roles()) == nil {
			out = append(out, s)
		}
	}
	return out
}

// Lookup finds a screen by name.
func (r *Registry) Lookup(name string) (Screen, error) {
	s, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScreen, name)
	}
	return s, nil
}

// Guard looks up a screen and checks that role may use it.
func (r *Registry) Guard(name string, role domain.Role) (Screen, error) {
	s, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(role, s.Roles()); err != nil {
		return nil, fmt.Errorf("screen %s: %w", s.Name(), err)
	}
	return s, nil
}

// Open creates a list controller for screen on behalf of role. opts.Screen
// and opts.Role are filled in.
func (r *Registry) Open(name string, role domain.Role, opts listing.Options) (*listing.Controller[Row], error) {
	s, err := r.Guard(name, role)
	if err != nil {
		return nil, err
	}
	opts.Screen = s.Name()
	opts.Role = role
	return listing.NewController[Row](r.Fetcher(s), opts, r.log)
}

// Fetcher returns the listing.Fetcher of a screen.
func (r *Registry) Fetcher(s Screen) listing.Fetcher[Row] {
	return &screenFetcher{reg: r, screen: s}
}

// CheckFilters rejects filter keys the screen does not offer and values
// outside a filter's options. Paging and search parameters pass through.
func (r *Registry) CheckFilters(s Screen, values map[string]string) error {
	var errs []domain.FieldError
	for k, v := range values {
		if v == "" {
			continue
		}
		def, ok := filter(s, k)
		switch {
		case !ok:
			errs = append(errs, domain.FieldError{Field: k, Message: "unknown filter"})
		case !def.Allows(v):
			errs = append(errs, domain.FieldError{Field: k, Message: "must be one of " + strings.Join(def.Options, ", ")})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// load is the cache's LoadFunc.
func (r *Registry) load(ctx context.Context, key listing.QueryKey) (pokeapi.ListResult, error) {
	s, err := r.Lookup(key.Screen)
	if err != nil {
		return pokeapi.ListResult{}, err
	}
	return r.client.List(ctx, s.Path(), key.Values(), key.Locale)
}

// Invalidate drops every cached page of screen.
func (r *Registry) Invalidate(ctx context.Context, screen string) int {
	return r.cache.InvalidateScreen(ctx, screen)
}

// CachedPages reports how many list pages are currently cached.
func (r *Registry) CachedPages() int {
	return r.cache.Len()
}

type screenFetcher struct {
	reg    *Registry
	screen Screen
}

func (f *screenFetcher) Fetch(ctx context.Context, key listing.QueryKey, _ url.Values) (listing.Page[Row], error) {
	res, err := f.reg.cache.Get(ctx, key)
	if err != nil {
		return listing.Page[Row]{}, &domain.FetchError{
			Screen: f.screen.Name(),
			Status: pokeapi.StatusOf(err),
			Err:    err,
		}
	}

	lang, err := multilingual.ParseLanguage(key.Locale)
	if err != nil {
		lang = multilingual.Vietnamese
	}
	rows, err := f.screen.rows(res.Items, lang)
	if err != nil {
		return listing.Page[Row]{}, &domain.FetchError{Screen: f.screen.Name(), Err: err}
	}
	return listing.Page[Row]{Items: rows, Pagination: res.Pagination}, nil
}

// toValidationError converts validator output to field errors keyed by
// payload path, e.g. "nameTranslations[0].value".
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out = append(out, domain.FieldError{Field: field, Message: message(fe)})
	}
	return domain.NewValidationErrors(out)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min", "gte":
		switch fe.Kind() {
		case reflect.String:
			return "must have at least " + fe.Param() + " characters"
		case reflect.Slice:
			return "must have at least " + fe.Param() + " items"
		}
		return "must be at least " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gtfield":
		return "must be after " + fe.Param()
	case "startswith":
		return "must start with " + fe.Param()
	}
	return "invalid (" + fe.Tag() + ")"
}
