package views

import (
	"strconv"
	"strings"

	. "github.com/vitrine-dev/vitrine/pkg/vdom"
)

// Product is the data shown on a product card.
type Product struct {
	Name        string
	Description string
	// PriceCents is the price in centavos.
	PriceCents int
	Image      string
}

// FeaturedProduct is the product the storefront shows.
var FeaturedProduct = Product{
	Name:        "Caneca de cerâmica",
	Description: "Caneca artesanal de 350 ml, esmaltada à mão.",
	PriceCents:  5990,
	Image:       "static/caneca.jpg",
}

// ProdutoView renders a product card.
type ProdutoView struct {
	Product Product
}

// Render implements vdom.Component.
func (v ProdutoView) Render() *VNode {
	p := v.Product
	return Article(Class("product-card"),
		If(p.Image != "", Figure(Img(Src(p.Image), Alt(p.Name)))),
		H2(p.Name),
		If(p.Description != "", P(Class("description"), p.Description)),
		P(Class("price"), Strong(FormatPrice(p.PriceCents))),
		A(Href("./"), Data("link", "true"), "Voltar ao início"),
	)
}

// FormatPrice formats centavos as Brazilian reais: 129990 → "R$ 1.299,90".
func FormatPrice(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := strconv.Itoa(cents / 100)
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}

	frac := cents % 100
	pad := ""
	if frac < 10 {
		pad = "0"
	}
	return sign + "R$ " + b.String() + "," + pad + strconv.Itoa(frac)
}
