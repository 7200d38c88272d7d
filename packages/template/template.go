// Package template renders Jinja2-style config templates.
//
// Rendering is modeled as an injected capability: the loader takes a
// Renderer and reports a format error when a template file is encountered
// without one, so the engine stays an optional dependency of the pipeline.
package template

// Renderer turns template source into plain text. No variables are passed
// in; templates are expected to be self-contained (defaults, filters).
type Renderer interface {
	Render(src string) (string, error)
}
