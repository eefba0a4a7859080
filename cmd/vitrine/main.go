package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	apperrors "github.com/vitrine-dev/vitrine/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootFlags are shared by every command.
type rootFlags struct {
	dir  string
	base string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		apperrors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "vitrine",
		Short: "A small storefront with a server-driven route table",
		Long: `vitrine serves a two-page storefront.

Routes are declared once in a table and resolved by a history-mode router
rooted at a deployment base path (BASE_URL). Pages are rendered on the
server; in-page navigation travels over a websocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dir, "config", "c", ".", "Directory holding vitrine.json and .env files")
	rootCmd.PersistentFlags().StringVar(&flags.base, "base", "", "Base path the app is mounted under (overrides BASE_URL)")

	rootCmd.AddCommand(
		serveCmd(flags),
		routesCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
