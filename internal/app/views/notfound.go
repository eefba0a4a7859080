package views

import (
	. "github.com/vitrine-dev/vitrine/pkg/vdom"
)

// NotFoundView is shown for locations no route matches.
type NotFoundView struct{}

// Render implements vdom.Component.
func (NotFoundView) Render() *VNode {
	return Section(Class("not-found"),
		H1("Página não encontrada"),
		P("O endereço acessado não existe nesta loja."),
		A(Href("./"), Data("link", "true"), "Voltar ao início"),
	)
}
