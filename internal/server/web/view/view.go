// Package view renders the HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed template set. Every page template is parsed
// together with the shared layout partials.
type Renderer struct {
	templates *template.Template
}

var funcs = template.FuncMap{
	"userHomePath":   func(username string) string { return fmt.Sprintf("/users/%s", username) },
	"booksPath":      func(username string) string { return fmt.Sprintf("/users/%s/books", username) },
	"newBookPath":    func(username string) string { return fmt.Sprintf("/users/%s/books/new", username) },
	"bookPath":       func(username, id string) string { return fmt.Sprintf("/users/%s/books/%s", username, id) },
	"editBookPath":   func(username, id string) string { return fmt.Sprintf("/users/%s/books/%s/edit", username, id) },
	"deleteBookPath": func(username, id string) string { return fmt.Sprintf("/users/%s/books/%s/delete", username, id) },
	"confirmDeleteBookPath": func(username, id string) string {
		return fmt.Sprintf("/users/%s/books/%s/confirm_delete", username, id)
	},
	"exportBooksPath": func(username string) string { return fmt.Sprintf("/users/%s/books.csv", username) },
	"importBooksFormPath": func(username string) string {
		return fmt.Sprintf("/users/%s/books/import_csv/form", username)
	},
	"importBooksPath": func(username string) string { return fmt.Sprintf("/users/%s/books/import_csv", username) },
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named page template with data.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("error rendering %s: %w", name, err)
	}
	return nil
}
