package views

import (
	. "github.com/vitrine-dev/vitrine/pkg/vdom"
)

// HomeView is the landing page.
type HomeView struct{}

// Render implements vdom.Component.
func (HomeView) Render() *VNode {
	return Section(Class("home"),
		H1("Bem-vindo à vitrine"),
		P("Uma loja pequena com um único produto em destaque."),
		A(Href("produto"), Data("link", "true"), Class("cta"), "Ver o produto"),
	)
}
