// Package vdom provides the in-memory view tree used by vitrine views.
//
// A VNode is an element, text, fragment, nested component or raw HTML.
// Views implement Component and return a VNode tree from Render; the
// render package turns that tree into HTML.
//
//	Div(Class("card"),
//	    H1(Text("Produto")),
//	    P(Text("Descrição")),
//	)
package vdom
