package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/extconf/extconf/packages/core/document"
	"github.com/extconf/extconf/packages/core/env"
	"github.com/extconf/extconf/packages/template"
)

// TemplateExt marks files that are rendered through the template engine
// before being parsed as YAML.
const TemplateExt = ".j2"

// Loader reads config sources into documents. The renderer is optional;
// without one, template files are rejected with a format error.
type Loader struct {
	renderer template.Renderer
	log      zerolog.Logger
}

type Option func(*Loader)

// WithRenderer enables template file support.
func WithRenderer(r template.Renderer) Option {
	return func(l *Loader) { l.renderer = r }
}

// WithLogger sets the logger used for per-source debug lines.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

func New(opts ...Option) *Loader {
	l := &Loader{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile parses one config file. Files ending in .j2 are rendered first
// (with no variables) and the output parsed as YAML.
func (l *Loader) LoadFile(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &document.FormatError{Source: path, Err: err}
	}

	if strings.HasSuffix(path, TemplateExt) {
		if l.renderer == nil {
			return nil, &document.FormatError{
				Source: path,
				Err:    errors.New("template file given but no template engine is configured"),
			}
		}
		l.log.Debug().Str("file", path).Msg("rendering template")
		rendered, err := l.renderer.Render(string(data))
		if err != nil {
			return nil, &document.FormatError{Source: path, Err: err}
		}
		data = []byte(rendered)
	}

	l.log.Debug().Str("file", path).Msg("parsing")
	return document.Parse(data, path)
}

// LoadEnv builds the environment document from an environ snapshot. The
// result is always applied after all file documents.
func (l *Loader) LoadEnv(environ []string, prefix string) *document.Document {
	doc := env.FromEnviron(environ, prefix)
	l.log.Debug().Int("keys", len(doc.Sections[0].Body)).Str("prefix", prefix).Msg("scanned environment")
	return doc
}

// ExpandGlobs resolves file arguments. With glob enabled each argument is
// treated as a pattern and its matches are sorted lexicographically, so a
// pattern expands to a deterministic document order.
func ExpandGlobs(args []string, glob bool) ([]string, error) {
	if !glob {
		return args, nil
	}
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
