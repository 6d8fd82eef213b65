package rest

import (
	"net/http"
	"strings"

	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/transport/middleware"
)

// Router holds the handlers and per-route middleware of the gateway.
// Metrics and Mutations are optional.
type Router struct {
	Screens *ScreensHandler
	Health  *HealthHandler

	// MetricsHandler serves /metrics, typically promhttp.HandlerFor.
	MetricsHandler http.Handler
	HTTPMetrics    *middleware.HTTPMetrics

	// Mutations guards POST, PUT and DELETE, e.g. a rate limiter.
	Mutations middleware.Middleware
}

// Handler registers every route on a new mux. Global middleware (request
// id, logging, recovery, CORS, locale, auth) is applied by the caller.
func (rt Router) Handler() http.Handler {
	mux := http.NewServeMux()

	api := middleware.Group{middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff)}
	mutations := api.With(rt.Mutations)

	rt.handle(mux, "GET /live", rt.Health.Live, nil)
	rt.handle(mux, "GET /ready", rt.Health.Ready, nil)
	rt.handle(mux, "GET /health", rt.Health.Health, nil)
	if rt.MetricsHandler != nil {
		mux.Handle("GET /metrics", rt.MetricsHandler)
	}

	rt.handle(mux, "GET /api/screens", rt.Screens.Index, api)
	rt.handle(mux, "GET /api/screens/{screen}", rt.Screens.List, api)
	rt.handle(mux, "POST /api/screens/{screen}", rt.Screens.Create, mutations)
	rt.handle(mux, "PUT /api/screens/{screen}/{id}", rt.Screens.Update, mutations)
	rt.handle(mux, "DELETE /api/screens/{screen}/{id}", rt.Screens.Delete, mutations)

	return mux
}

// handle registers h under pattern. Request metrics are labelled with the
// pattern's path, so /api/screens/lessons and /api/screens/kanji share one
// series.
func (rt Router) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc, group middleware.Group) {
	var instrument middleware.Middleware
	if rt.HTTPMetrics != nil {
		_, route, _ := strings.Cut(pattern, " ")
		instrument = rt.HTTPMetrics.Route(route)
	}
	mux.Handle(pattern, middleware.Group{instrument}.With(group...).Then(h))
}
