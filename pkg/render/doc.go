// Package render turns vdom trees into HTML.
//
// Text and attribute values are escaped; KindRaw nodes are written as-is and
// must only carry trusted markup.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// RenderPage wraps a view in a full document with a <base href> so relative
// links keep working when the application is mounted under a sub-path.
package render
