package views

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var files embed.FS

// Pages every console build must provide.
var Pages = []string{"login", "dashboard", "entity"}

// Views holds one parsed template set per page, each on top of the shared
// layout.
type Views struct {
	pages map[string]*template.Template
}

// Load parses the embedded templates.
func Load() (*Views, error) {
	return Parse(files)
}

// Parse parses templates/layout.html plus one templates/<page>.html per
// entry of Pages. A missing page is an error.
func Parse(fsys fs.FS) (*Views, error) {
	base, err := template.New("").ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse layout")
	}
	v := &Views{pages: make(map[string]*template.Template, len(Pages))}
	for _, page := range Pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, errors.Wrap(err, "clone layout")
		}
		t, err := clone.ParseFS(fsys, "templates/"+page+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parse view %s", page)
		}
		if t.Lookup("content") == nil {
			return nil, errors.Errorf("view %s does not define a content block", page)
		}
		v.pages[page] = t
	}
	return v, nil
}

// Render executes the layout with the named page as its content.
func (v *Views) Render(w io.Writer, page string, data any) error {
	t, ok := v.pages[page]
	if !ok {
		return errors.Errorf("unknown view %s", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
