package views

import (
	"github.com/vitrine-dev/vitrine/pkg/render"
	"github.com/vitrine-dev/vitrine/pkg/router"
	. "github.com/vitrine-dev/vitrine/pkg/vdom"
)

// Layout frames a view with the site header and the outlet element the
// client script swaps on live navigation.
func Layout(r *router.Router, view *VNode) *VNode {
	return Div(Class("site"),
		Header(Class("site-header"),
			Strong(Class("brand"), "vitrine"),
			Nav(AriaLabel("Principal"),
				Ul(
					Li(router.NavLink(r, "home", "Início")),
					Li(router.NavLink(r, "produto", "Produto")),
				),
			),
		),
		Main(ID(render.OutletID), view),
		Footer(Class("site-footer"), Small("© vitrine")),
	)
}
