package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vitrine-dev/vitrine/internal/app"
	"github.com/vitrine-dev/vitrine/internal/config"
	apperrors "github.com/vitrine-dev/vitrine/internal/errors"
	"github.com/vitrine-dev/vitrine/pkg/router"
)

func routesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long: `List every route with its name, pattern and the URL it is served at
under the configured base path.

Examples:
  vitrine routes
  vitrine routes --base /loja/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(flags.dir, config.Overrides{BaseURL: flags.base})
			if err != nil {
				return err
			}

			r, err := app.NewRouter(cfg.BaseURL, nil)
			if err != nil {
				return routerError(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tURL\tVIEW")
			for _, route := range r.Routes() {
				href, err := r.Href(route.Name)
				if err != nil {
					href = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%T\n", route.Name, route.Path, href, route.Component)
			}
			return w.Flush()
		},
	}
}

// routerError maps router construction failures to coded errors.
func routerError(err error) error {
	var multi *router.MultiValidationError
	if errors.As(err, &multi) {
		return apperrors.New("V001").Wrap(err)
	}
	return apperrors.New("V002").Wrap(err)
}
