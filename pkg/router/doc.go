// Package router implements vitrine's history-mode route table.
//
// A Router owns an ordered, immutable table of named routes, each binding a
// path pattern to a view component, and a History rooted at a base path:
//
//	r, err := router.New(router.Options{
//	    History: router.NewWebHistory("/loja/"),
//	    Routes: []router.Route{
//	        {Path: "/", Name: "home", Component: views.Home()},
//	        {Path: "/produto", Name: "produto", Component: views.Produto()},
//	    },
//	})
//
//	loc := r.Resolve("/produto")   // loc.Name == "produto", loc.Href == "/loja/produto"
//	err = r.Push(ctx, "/produto")  // runs guards, updates history and CurrentRoute
//
// # Patterns
//
// Route paths are "/"-separated segments. A segment is static ("produto"),
// a parameter (":id", or ":id:int" to require digits) or a trailing
// catch-all ("*rest"). Static segments win over parameters, parameters over
// catch-alls. A table without catch-all routes resolves unknown paths to an
// unmatched Location.
//
// # Guards
//
// BeforeEach guards wrap every navigation the way middleware wraps a
// handler. A guard that returns without calling next aborts the navigation;
// AfterEach hooks observe the outcome.
package router
