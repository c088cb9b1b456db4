package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pacificair.org/pacificair-web/internal/format"
)

// Renderer executes the site's html/template tree. In dev mode templates
// are reparsed on every request.
type Renderer struct {
	dir string
	dev bool

	mu    sync.RWMutex
	cache *template.Template
}

// New constructs a Renderer rooted at dir. Outside dev mode the tree is
// parsed once, eagerly, so a broken template fails startup rather than the
// first request.
func New(dir string, dev bool) (*Renderer, error) {
	r := &Renderer{dir: dir, dev: dev}
	if !dev {
		t, err := r.parse()
		if err != nil {
			return nil, err
		}
		r.cache = t
	}
	return r, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"now":      time.Now,
		"richtext": RichText,
		"fmtdate":  format.Date,
		"fmtprice": format.Price,
		"join":     strings.Join,
	}
}

// parse recursively discovers and parses all .tmpl files. ParseGlob does
// not support **, hence the walk.
func (r *Renderer) parse() (*template.Template, error) {
	var files []string
	if err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", r.dir)
	}
	return template.New("_root").Funcs(funcMap()).ParseFiles(files...)
}

func (r *Renderer) templates() (*template.Template, error) {
	if r.dev {
		return r.parse()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cache == nil {
		return nil, fmt.Errorf("templates not initialized")
	}
	return r.cache, nil
}

// HTML renders the named template into the response with the given status.
// The body is buffered so a template error returns without emitting a
// half-written page; the caller chooses the fallback.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, data any) error {
	t, err := r.templates()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
