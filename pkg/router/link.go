package router

import (
	"github.com/vitrine-dev/vitrine/pkg/vdom"
)

// Link creates an anchor to a named route. The client script intercepts
// clicks on data-link anchors and navigates without a full page load.
// An unknown name renders a plain, inert anchor.
func Link(r *Router, name string, children ...any) *vdom.VNode {
	href, err := r.Href(name)
	if err != nil {
		return vdom.A(vdom.Data("route-missing", name), children)
	}
	return vdom.A(
		vdom.Href(href),
		vdom.Data("link", "true"),
		vdom.Data("route", name),
		children,
	)
}

// ActiveLink creates a link that carries activeClass and aria-current when
// the router's current route is name.
func ActiveLink(r *Router, name, activeClass string, children ...any) *vdom.VNode {
	node := Link(r, name, children...)
	if r.CurrentRoute().Name == name {
		node.Props["class"] = activeClass
		node.Props["aria-current"] = "page"
	}
	return node
}

// NavLink is ActiveLink with the "active" class.
func NavLink(r *Router, name string, children ...any) *vdom.VNode {
	return ActiveLink(r, name, "active", children...)
}
