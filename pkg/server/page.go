package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vitrine-dev/vitrine/pkg/middleware"
	"github.com/vitrine-dev/vitrine/pkg/render"
	"github.com/vitrine-dev/vitrine/pkg/routepath"
	"github.com/vitrine-dev/vitrine/pkg/router"
	"github.com/vitrine-dev/vitrine/pkg/vdom"
	"go.uber.org/zap"
)

// handlePage boots a router from the request path and renders the page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rt, err := s.newRouter()
	if err != nil {
		s.logger.Error("router construction failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The escaped path keeps %3F and %23 inside the path instead of
	// letting them pose as a query or hash.
	target := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	err = rt.Ready(r.Context(), target)
	switch {
	case errors.Is(err, router.ErrOutsideBase):
		middleware.SetRouteLabel(r.Context(), "outside_base")
		s.writePage(w, r, rt, rt.StartLocation(), http.StatusNotFound)
		return
	case err != nil:
		s.logger.Warn("initial navigation failed",
			zap.String("path", target),
			zap.Error(err))
		middleware.SetRouteLabel(r.Context(), "failed")
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	loc := rt.CurrentRoute()
	status := http.StatusOK
	if !loc.Matched() {
		status = http.StatusNotFound
	}
	middleware.SetRouteLabel(r.Context(), routeLabel(loc))
	s.writePage(w, r, rt, loc, status)
}

// writePage renders a full document for loc. For unmatched locations the
// not-found view is shown.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, rt *router.Router, loc router.Location, status int) {
	view := s.site.view(loc)
	if status == http.StatusNotFound {
		view = s.site.NotFound
	}

	var buf bytes.Buffer
	err := s.renderer.RenderPage(&buf, render.PageData{
		Body:        s.site.Layout(rt, vdom.Mount(view)),
		Title:       s.site.title(loc),
		Description: s.site.description(loc),
		BaseHref:    routepath.BaseHref(s.base),
		Lang:        s.site.Lang,
	})
	if err != nil {
		s.logger.Error("render failed", zap.String("path", loc.FullPath), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

// renderView renders only the view for loc, as placed in the outlet.
func (s *Server) renderView(loc router.Location) (string, error) {
	return s.renderer.RenderComponent(s.site.view(loc))
}

func routeLabel(loc router.Location) string {
	if loc.Name == "" {
		return "unmatched"
	}
	return loc.Name
}

type healthResponse struct {
	Status string `json:"status"`
	Routes int    `json:"routes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	middleware.SetRouteLabel(r.Context(), "healthz")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Routes: len(s.site.Routes)})
}
