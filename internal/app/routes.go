package app

import (
	"github.com/vitrine-dev/vitrine/internal/app/views"
	"github.com/vitrine-dev/vitrine/pkg/router"
	"go.uber.org/zap"
)

// Route names.
const (
	RouteHome    = "home"
	RouteProduto = "produto"
)

// Routes returns the application route table.
func Routes() []router.Route {
	return []router.Route{
		{
			Path:      "/",
			Name:      RouteHome,
			Component: views.HomeView{},
			Meta: router.PageMeta{
				Title:       "vitrine",
				Description: "Loja vitrine: página inicial.",
			},
		},
		{
			Path:      "/produto",
			Name:      RouteProduto,
			Component: views.ProdutoView{Product: views.FeaturedProduct},
			Meta: router.PageMeta{
				Title:       views.FeaturedProduct.Name + " | vitrine",
				Description: views.FeaturedProduct.Description,
			},
		},
	}
}

// NewRouter builds a router over Routes with a web history rooted at base.
func NewRouter(base string, logger *zap.Logger) (*router.Router, error) {
	history, err := router.NewWebHistory(base)
	if err != nil {
		return nil, err
	}
	return router.New(router.Options{
		History: history,
		Routes:  Routes(),
		Logger:  logger,
	})
}
