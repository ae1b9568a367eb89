// Package web provides infrastructure for serving server-rendered pages with
// Go templates, embedded static assets, and fallback routing.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef defines a page with its route, template file, and title.
type ViewDef struct {
	Route    string
	Template string
	Title    string
}

// ViewData contains the data passed to page templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// ErrorData is the view data of an error page.
type ErrorData struct {
	Status  int
	Message string
}

// LoadFunc resolves the data a view renders from the incoming request.
type LoadFunc func(r *http.Request) (any, error)

// StatusFunc maps a load error to an HTTP status code.
type StatusFunc func(error) int

// TemplateSet holds one parsed template tree per view, each a clone of the
// shared layouts, and the base path links are rendered against.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layouts matching layoutGlob, then clones them
// once per view and adds that view's file from viewSubdir. Any parse error
// fails construction.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts %s: %w", layoutGlob, err)
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	viewTemplates := make(map[string]*template.Template, len(views))
	for _, p := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", p.Template, err)
		}
		_, err = t.ParseFS(viewSub, p.Template)
		if err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", p.Template, err)
		}
		viewTemplates[p.Template] = t
	}

	return &TemplateSet{
		views:    viewTemplates,
		basePath: basePath,
	}, nil
}

// BasePath returns the prefix the set renders links against.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// ErrorHandler returns an HTTP handler that renders an error page with the given status code.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts.RenderError(w, layout, view, status, http.StatusText(status))
	}
}

// PageHandler returns an HTTP handler that renders the given view. When load
// is non-nil its result becomes ViewData.Data; a load error renders errView
// with the status reported by status.
func (ts *TemplateSet) PageHandler(layout string, view, errView ViewDef, load LoadFunc, status StatusFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewData{
			Title:    view.Title,
			BasePath: ts.basePath,
		}

		if load != nil {
			result, err := load(r)
			if err != nil {
				code := http.StatusInternalServerError
				if status != nil {
					code = status(err)
				}
				ts.RenderError(w, layout, errView, code, err.Error())
				return
			}
			data.Data = result
		}

		if err := ts.Render(w, layout, view.Template, data); err != nil {
			ts.RenderError(w, layout, errView, http.StatusInternalServerError, err.Error())
		}
	}
}

// RenderError writes status and renders view with an ErrorData payload.
// Server errors are rendered with the generic status text.
func (ts *TemplateSet) RenderError(w http.ResponseWriter, layout string, view ViewDef, status int, message string) {
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	data := ViewData{
		Title:    view.Title,
		BasePath: ts.basePath,
		Data:     ErrorData{Status: status, Message: message},
	}
	page, err := ts.execute(layout, view.Template, data)
	if err != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	writeHTML(w, status, page)
}

// Render executes the layout for viewPath and writes the page with 200.
// Nothing is written when execution fails, so the caller can still send
// an error page.
func (ts *TemplateSet) Render(w http.ResponseWriter, layoutName, viewPath string, data ViewData) error {
	page, err := ts.execute(layoutName, viewPath, data)
	if err != nil {
		return err
	}
	writeHTML(w, http.StatusOK, page)
	return nil
}

func (ts *TemplateSet) execute(layout, viewPath string, data ViewData) ([]byte, error) {
	t, ok := ts.views[viewPath]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", viewPath)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layout, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", viewPath, err)
	}
	return buf.Bytes(), nil
}

func writeHTML(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(page)
}
