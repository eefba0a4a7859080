package app

import (
	"github.com/vitrine-dev/vitrine/internal/app/views"
	"github.com/vitrine-dev/vitrine/pkg/server"
)

// Site returns the storefront as served by pkg/server.
func Site() server.Site {
	return server.Site{
		Routes:   Routes(),
		Layout:   views.Layout,
		NotFound: views.NotFoundView{},
		Title:    "vitrine",
		Lang:     "pt-BR",
	}
}
