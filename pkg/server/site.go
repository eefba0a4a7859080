package server

import (
	"github.com/vitrine-dev/vitrine/pkg/render"
	"github.com/vitrine-dev/vitrine/pkg/router"
	"github.com/vitrine-dev/vitrine/pkg/vdom"
)

// Site describes what the server renders.
type Site struct {
	// Routes is the route table. Each navigation session builds its own
	// router from it.
	Routes []router.Route

	// Layout frames the current view. It must place view inside the
	// element with id render.OutletID. Default: a bare <main id="app">.
	Layout func(r *router.Router, view *vdom.VNode) *vdom.VNode

	// NotFound is rendered for unmatched locations. Default: a short
	// message.
	NotFound vdom.Component

	// Title is used when the matched route has no Meta.Title.
	Title string

	// Lang is the document language. Default: "pt-BR".
	Lang string
}

func defaultLayout(_ *router.Router, view *vdom.VNode) *vdom.VNode {
	return vdom.Main(vdom.ID(render.OutletID), view)
}

var defaultNotFound = vdom.Func(func() *vdom.VNode {
	return vdom.Section(vdom.H1("404"), vdom.P("Not found"))
})

func (s Site) withDefaults() Site {
	if s.Layout == nil {
		s.Layout = defaultLayout
	}
	if s.NotFound == nil {
		s.NotFound = defaultNotFound
	}
	return s
}

// view returns the component for a location.
func (s Site) view(loc router.Location) vdom.Component {
	if loc.Route != nil {
		return loc.Route.Component
	}
	return s.NotFound
}

// title returns the document title for a location.
func (s Site) title(loc router.Location) string {
	if loc.Route != nil && loc.Route.Meta.Title != "" {
		return loc.Route.Meta.Title
	}
	return s.Title
}

func (s Site) description(loc router.Location) string {
	if loc.Route != nil {
		return loc.Route.Meta.Description
	}
	return ""
}
