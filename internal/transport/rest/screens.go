package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/internal/catalog"
	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/listing"
	"github.com/pokenihongo/admin-console/pkg/ctxutil"
)

// scopePrefix marks query parameters that become scoping filters, e.g.
// scope.lessonId=3 on a lesson's vocabulary list.
const scopePrefix = "scope."

// maxFormBytes bounds create and update bodies.
const maxFormBytes = 1 << 20

type screenService interface {
	Visible(role domain.Role) []catalog.Screen
	Guard(name string, role domain.Role) (catalog.Screen, error)
	Open(name string, role domain.Role, opts listing.Options) (*listing.Controller[catalog.Row], error)
	CheckFilters(s catalog.Screen, values map[string]string) error
	Create(ctx context.Context, role domain.Role, screen string, sub catalog.Submission) (json.RawMessage, error)
	Update(ctx context.Context, role domain.Role, screen, id string, sub catalog.Submission) (json.RawMessage, error)
	Delete(ctx context.Context, role domain.Role, screen, id string) error
}

// PagingConfig holds the pager settings shared by every list request.
type PagingConfig struct {
	DefaultPageSize int
	PageSizeOptions []int
	MaxVisiblePages int
}

// ScreensHandler exposes the list screens and their mutations as JSON.
type ScreensHandler struct {
	screens screenService
	paging  PagingConfig
	log     *slog.Logger
}

// NewScreensHandler creates a ScreensHandler.
func NewScreensHandler(screens screenService, paging PagingConfig, logger *slog.Logger) *ScreensHandler {
	if paging.DefaultPageSize < 1 {
		paging.DefaultPageSize = domain.DefaultPageSize
	}
	if len(paging.PageSizeOptions) == 0 {
		paging.PageSizeOptions = slices.Clone(domain.PageSizeOptions)
	}
	if paging.MaxVisiblePages < 1 {
		paging.MaxVisiblePages = listing.DefaultMaxVisiblePages
	}
	return &ScreensHandler{
		screens: screens,
		paging:  paging,
		log:     logger.With("handler", "screens"),
	}
}

// ScreenInfo describes a screen in the menu.
type ScreenInfo struct {
	Name      string               `json:"name"`
	Title     string               `json:"title"`
	Columns   []catalog.Column     `json:"columns"`
	Filters   []catalog.FilterSpec `json:"filters"`
	CanCreate bool                 `json:"canCreate"`
}

// PageCell is one pager cell; Page is 0 for an ellipsis.
type PageCell struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// StateView echoes the applied filter state.
type StateView struct {
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Search   string            `json:"search,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
	Scope    map[string]string `json:"scope,omitempty"`
}

// ListResponse is the body of GET /api/screens/{screen}.
type ListResponse struct {
	Screen     ScreenInfo        `json:"screen"`
	Items      []catalog.Row     `json:"items"`
	Pagination domain.Pagination `json:"pagination"`
	Pages      []PageCell        `json:"pages"`
	State      StateView         `json:"state"`
}

// MutationResponse is the body of a successful create or update.
type MutationResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Index lists the screens the caller may open.
// GET /api/screens
func (h *ScreensHandler) Index(w http.ResponseWriter, r *http.Request) {
	s, _ := auth.SessionFromCtx(r.Context())

	visible := h.screens.Visible(s.Role)
	out := make([]ScreenInfo, 0, len(visible))
	for _, sc := range visible {
		out = append(out, screenInfo(sc))
	}
	writeJSON(w, http.StatusOK, out)
}

// List returns one page of a screen.
// GET /api/screens/{screen}?page=2&pageSize=30&search=neko&levelN=5
func (h *ScreensHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := auth.SessionFromCtx(ctx)

	screen, err := h.screens.Guard(r.PathValue("screen"), session.Role)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	req, err := parseListRequest(r.URL.Query(), h.paging.PageSizeOptions)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if err := h.screens.CheckFilters(screen, req.filters); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	ctrl, err := h.screens.Open(screen.Name(), session.Role, listing.Options{
		Locale:          ctxutil.LocaleFromCtx(ctx),
		Scope:           req.scope,
		InitialPageSize: h.paging.DefaultPageSize,
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	for _, a := range req.actions() {
		if err := ctrl.Dispatch(a); err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
	}

	if err := ctrl.Refresh(ctx); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	// A requested page past the end was clamped; fetch the last page.
	if ctrl.Snapshot().Loading {
		if err := ctrl.Refresh(ctx); err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, h.listResponse(screen, ctrl))
}

// Create submits a new record.
// POST /api/screens/{screen}
func (h *ScreensHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := auth.SessionFromCtx(ctx)

	screen, err := h.screens.Guard(r.PathValue("screen"), session.Role)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	values, err := readSubmission(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := h.screens.Create(ctx, session.Role, screen.Name(), catalog.FormSubmission(screen, values))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, MutationResponse{
		Message: screen.Title() + " created",
		Data:    data,
	})
}

// Update replaces a record.
// PUT /api/screens/{screen}/{id}
func (h *ScreensHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := auth.SessionFromCtx(ctx)

	screen, err := h.screens.Guard(r.PathValue("screen"), session.Role)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	values, err := readSubmission(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := h.screens.Update(ctx, session.Role, screen.Name(), r.PathValue("id"), catalog.FormSubmission(screen, values))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, MutationResponse{
		Message: screen.Title() + " updated",
		Data:    data,
	})
}

// Delete removes a record.
// DELETE /api/screens/{screen}/{id}
func (h *ScreensHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := auth.SessionFromCtx(ctx)

	if err := h.screens.Delete(ctx, session.Role, r.PathValue("screen"), r.PathValue("id")); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScreensHandler) listResponse(screen catalog.Screen, ctrl *listing.Controller[catalog.Row]) ListResponse {
	snap := ctrl.Snapshot()

	items := snap.Items
	if items == nil {
		items = []catalog.Row{}
	}

	current := snap.State.Page()
	window := listing.PageWindow(current, snap.Pagination.LastPage(), h.paging.MaxVisiblePages)
	pages := make([]PageCell, 0, len(window))
	for _, it := range window {
		pages = append(pages, PageCell{
			Page:     it.Page,
			Ellipsis: it.Ellipsis,
			Current:  !it.Ellipsis && it.Page == current,
		})
	}

	search, _ := snap.State.Search()
	return ListResponse{
		Screen:     screenInfo(screen),
		Items:      items,
		Pagination: snap.Pagination,
		Pages:      pages,
		State: StateView{
			Page:     current,
			PageSize: snap.State.PageSize(),
			Search:   search,
			Filters:  snap.State.Filters(),
			Scope:    ctrl.Scope(),
		},
	}
}

func screenInfo(s catalog.Screen) ScreenInfo {
	return ScreenInfo{
		Name:      s.Name(),
		Title:     s.Title(),
		Columns:   s.Columns(),
		Filters:   s.Filters(),
		CanCreate: s.CanCreate(),
	}
}

// listRequest is a parsed list query.
type listRequest struct {
	page     int
	pageSize int
	search   string
	filters  map[string]string
	scope    map[string]string
}

// actions orders the reducer dispatches so that the requested page
// survives: every action other than SetPage resets to page 1.
func (q listRequest) actions() []listing.Action {
	var out []listing.Action
	if q.pageSize > 0 {
		out = append(out, listing.SetPageSize{PageSize: q.pageSize})
	}
	if q.search != "" {
		out = append(out, listing.SetSearch{Text: q.search})
	}
	keys := make([]string, 0, len(q.filters))
	for k := range q.filters {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out = append(out, listing.SetFilter{Key: k, Value: q.filters[k]})
	}
	if q.page > 1 {
		out = append(out, listing.SetPage{Page: q.page})
	}
	return out
}

func parseListRequest(q url.Values, pageSizes []int) (listRequest, error) {
	req := listRequest{
		filters: make(map[string]string),
		scope:   make(map[string]string),
	}
	var errs []domain.FieldError

	for key, vals := range q {
		val := ""
		if len(vals) > 0 {
			val = strings.TrimSpace(vals[0])
		}
		switch {
		case key == "page":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				errs = append(errs, domain.FieldError{Field: "page", Message: "must be a positive integer"})
				continue
			}
			req.page = n
		case key == "pageSize":
			n, err := strconv.Atoi(val)
			if err != nil || !slices.Contains(pageSizes, n) {
				errs = append(errs, domain.FieldError{Field: "pageSize", Message: "must be one of " + joinInts(pageSizes)})
				continue
			}
			req.pageSize = n
		case key == "search":
			req.search = val
		case key == "locale":
			// Consumed by the locale middleware.
		case strings.HasPrefix(key, scopePrefix):
			name := strings.TrimPrefix(key, scopePrefix)
			if listing.IsReserved(name) {
				errs = append(errs, domain.FieldError{Field: key, Message: "is a reserved parameter"})
				continue
			}
			if name == "" || val == "" {
				continue
			}
			req.scope[name] = val
		case listing.IsReserved(key):
			errs = append(errs, domain.FieldError{Field: key, Message: "is a reserved parameter; use page"})
		default:
			if val != "" {
				req.filters[key] = val
			}
		}
	}

	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b domain.FieldError) int { return strings.Compare(a.Field, b.Field) })
		return listRequest{}, domain.NewValidationErrors(errs)
	}
	return req, nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// readSubmission accepts either a form post or a JSON object. JSON objects
// are flattened to form paths, so {"name":{"vi":"x"}} becomes name.vi=x.
func readSubmission(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	out := url.Values{}
	flatten("", body, out)
	return out, nil
}

func flatten(prefix string, v any, out url.Values) {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		for _, child := range v {
			flatten(prefix, child, out)
		}
	case string:
		out.Add(prefix, v)
	case json.Number:
		out.Add(prefix, v.String())
	case bool:
		out.Add(prefix, strconv.FormatBool(v))
	}
}
