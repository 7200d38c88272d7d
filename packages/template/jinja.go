package template

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// Jinja renders Jinja2-compatible templates with an empty context. Filters
// such as |default(...) still expand, which is the main reason templated
// config files exist.
type Jinja struct{}

func NewJinja() *Jinja { return &Jinja{} }

func (j *Jinja) Render(src string) (string, error) {
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}
	out, err := tpl.Execute(pongo2.Context{})
	if err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return out, nil
}
