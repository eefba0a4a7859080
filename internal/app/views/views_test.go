package views

import (
	"context"
	"strings"
	"testing"

	"github.com/vitrine-dev/vitrine/pkg/render"
	"github.com/vitrine-dev/vitrine/pkg/router"
	"github.com/vitrine-dev/vitrine/pkg/vdom"
)

func renderString(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return html
}

func TestHomeView(t *testing.T) {
	html := renderString(t, HomeView{}.Render())

	for _, want := range []string{
		`<h1>Bem-vindo à vitrine</h1>`,
		`<a class="cta" data-link="true" href="produto">Ver o produto</a>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("home view missing %q in %s", want, html)
		}
	}
}

func TestProdutoView(t *testing.T) {
	html := renderString(t, ProdutoView{Product: FeaturedProduct}.Render())

	for _, want := range []string{
		`<article class="product-card">`,
		`<h2>Caneca de cerâmica</h2>`,
		`<img alt="Caneca de cerâmica" src="static/caneca.jpg">`,
		`<strong>R$ 59,90</strong>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("product view missing %q in %s", want, html)
		}
	}
}

func TestProdutoViewOptionalFields(t *testing.T) {
	html := renderString(t, ProdutoView{Product: Product{Name: "X", PriceCents: 100}}.Render())
	if strings.Contains(html, "<figure>") || strings.Contains(html, "description") {
		t.Errorf("empty image and description should be omitted: %s", html)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{5990, "R$ 59,90"},
		{129990, "R$ 1.299,90"},
		{123456789, "R$ 1.234.567,89"},
		{-250, "-R$ 2,50"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.cents); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestLayoutMarksActiveRoute(t *testing.T) {
	r, err := router.New(router.Options{Routes: []router.Route{
		{Path: "/", Name: "home", Component: HomeView{}},
		{Path: "/produto", Name: "produto", Component: ProdutoView{}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Push(context.Background(), "/produto"); err != nil {
		t.Fatal(err)
	}

	html := renderString(t, Layout(r, vdom.Mount(NotFoundView{})))

	for _, want := range []string{
		`<a aria-current="page" class="active" data-link="true" data-route="produto" href="/produto">Produto</a>`,
		`<a data-link="true" data-route="home" href="/">Início</a>`,
		`<main id="app"><section class="not-found">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("layout missing %q in %s", want, html)
		}
	}
}
