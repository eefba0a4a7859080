// Package server serves a vitrine route table over HTTP.
//
// Every page request gets its own router, built from the shared immutable
// table and booted from the request path with router.Ready. A matched
// location renders with status 200, anything else renders the site's
// not-found view with status 404.
//
// After the first paint the client script (served at
// {base}/_vitrine/client.js) opens a websocket at {base}/_vitrine/live and
// forwards in-page navigations. Each connection owns one router for its
// lifetime. The wire format is JSON text frames:
//
//	client → server
//	  {"type":"navigate","path":"/produto","replace":false}
//	  {"type":"back"}
//	  {"type":"forward"}
//
//	server → client
//	  {"type":"view","path":"/produto","href":"/loja/produto","name":"produto",
//	   "title":"…","html":"…","status":200}
//	  {"type":"error","reason":"duplicated","message":"navigation duplicated"}
//
// The server also exposes GET /healthz and, when metrics are configured,
// GET /metrics.
package server
