// Package views holds the storefront's page views and the layout that
// frames them.
//
// Views render links relative to the document base (see render.PageData),
// so they stay correct under any deployment base path without needing a
// router instance. The layout receives the router and renders the
// navigation with router.NavLink.
package views
