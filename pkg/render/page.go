package render

import (
	"fmt"
	"io"

	"github.com/vitrine-dev/vitrine/pkg/vdom"
)

// DefaultClientScript is the path of the navigation client, relative to the
// document base.
const DefaultClientScript = "_vitrine/client.js"

// OutletID is the id of the element that holds the current view. The client
// script replaces its content on live navigation.
const OutletID = "app"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Description fills the description meta tag when set.
	Description string

	// BaseHref is written as <base href>. It must end in "/".
	// Defaults to "/".
	BaseHref string

	// ClientScript is the path to the navigation client, resolved against
	// BaseHref. Defaults to DefaultClientScript. Set to "-" to omit it.
	ClientScript string

	// Lang is the language attribute for the html element.
	// Defaults to "pt-BR".
	Lang string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "pt-BR"
	}
	base := page.BaseHref
	if base == "" {
		base = "/"
	}
	script := page.ClientScript
	if script == "" {
		script = DefaultClientScript
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "  <meta charset=\"utf-8\">\n  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <base href=\"%s\">\n", escapeAttr(base)); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	if page.Description != "" {
		if _, err := fmt.Fprintf(w, "  <meta name=\"description\" content=\"%s\">\n", escapeAttr(page.Description)); err != nil {
			return err
		}
	}
	if script != "-" {
		if _, err := fmt.Fprintf(w, "  <script src=\"%s\" defer></script>\n", escapeAttr(script)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
		return err
	}

	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}
