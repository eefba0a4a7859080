package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/vitrine-dev/vitrine/pkg/middleware"
	"github.com/vitrine-dev/vitrine/pkg/router"
	"go.uber.org/zap"
)

// Live frame types.
const (
	FrameNavigate = "navigate"
	FrameBack     = "back"
	FrameForward  = "forward"
	FrameView     = "view"
	FrameError    = "error"
)

// ClientFrame is a frame sent by the client script.
type ClientFrame struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`
}

// ServerFrame is a frame sent to the client script.
type ServerFrame struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Href    string `json:"href,omitempty"`
	Name    string `json:"name,omitempty"`
	Title   string `json:"title,omitempty"`
	HTML    string `json:"html,omitempty"`
	Status  int    `json:"status,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleLive upgrades to a websocket and serves navigations for one
// router. The "path" query parameter is the page the client booted on,
// relative to the base.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	middleware.SetRouteLabel(r.Context(), "live")

	rt, err := s.newRouter()
	if err != nil {
		s.logger.Error("router construction failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	start := r.URL.Query().Get("path")
	if start == "" {
		start = "/"
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if s.metrics != nil {
		s.metrics.LiveConnectionOpened()
		defer s.metrics.LiveConnectionClosed()
	}

	log := s.logger.With(zap.String("request_id", chimw.GetReqID(r.Context())))
	log.Debug("live connection opened", zap.String("path", start))

	// The connection outlives the request context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rt.Replace(ctx, start); err != nil {
		log.Debug("live boot navigation failed", zap.Error(err))
	}

	conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		conn.SetReadDeadline(time.Now().Add(s.config.LiveIdleTimeout))

		var frame ClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				log.Warn("live read error", zap.Error(err))
			}
			return
		}

		reply := s.handleFrame(ctx, rt, frame)
		conn.SetWriteDeadline(time.Now().Add(s.config.liveWriteTimeout()))
		if err := conn.WriteJSON(reply); err != nil {
			log.Warn("live write error", zap.Error(err))
			return
		}
	}
}

// handleFrame applies one client frame to rt and builds the reply.
func (s *Server) handleFrame(ctx context.Context, rt *router.Router, frame ClientFrame) ServerFrame {
	var err error
	switch frame.Type {
	case FrameNavigate:
		if frame.Replace {
			err = rt.Replace(ctx, frame.Path)
		} else {
			err = rt.Push(ctx, frame.Path)
		}
	case FrameBack:
		err = rt.Back(ctx)
	case FrameForward:
		err = rt.Forward(ctx)
	default:
		return ServerFrame{Type: FrameError, Reason: middleware.StatusError, Message: "unknown frame type " + frame.Type}
	}
	if err != nil {
		return errorFrame(err)
	}
	return s.viewFrame(rt.CurrentRoute())
}

// viewFrame renders loc for the outlet.
func (s *Server) viewFrame(loc router.Location) ServerFrame {
	html, err := s.renderView(loc)
	if err != nil {
		s.logger.Error("render failed", zap.String("path", loc.FullPath), zap.Error(err))
		return ServerFrame{Type: FrameError, Reason: middleware.StatusError, Message: "render failed"}
	}

	status := http.StatusOK
	if !loc.Matched() {
		status = http.StatusNotFound
	}
	return ServerFrame{
		Type:   FrameView,
		Path:   loc.FullPath,
		Href:   loc.Href,
		Name:   loc.Name,
		Title:  s.site.title(loc),
		HTML:   html,
		Status: status,
	}
}

func errorFrame(err error) ServerFrame {
	reason := middleware.NavigationStatus(router.Location{}, err)
	if errors.Is(err, router.ErrHistoryBoundary) {
		reason = "boundary"
	}
	return ServerFrame{Type: FrameError, Reason: reason, Message: err.Error()}
}
