// Package views renders the list and detail screens of every entity. Handlers return a Page
// that the shell places in its content area, or a redirect once an action is done.
package views

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/ui/components"
)

//go:embed templates
var files embed.FS

var templates = template.Must(template.New("views").ParseFS(files, "templates/*.html"))

// Page is the outcome of a view handler: content for the shell, or a location to go to.
type Page struct {
	Title    string
	Section  string
	Content  template.HTML
	Redirect string
}

type Handler func(r *http.Request) (*Page, error)

type Route struct {
	Method  string
	Path    string
	Handler Handler
}

// View is a screen reachable through the navigation of the shell.
type View interface {
	Routes() []Route
}

const (
	SectionCooks       = "cooks"
	SectionDishes      = "dishes"
	SectionIngredients = "ingredients"
)

func redirect(url string) *Page {
	return &Page{Redirect: url}
}

func renderPage(title, section, name string, data any) (*Page, error) {
	var buf bytes.Buffer

	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}

	return &Page{Title: title, Section: section, Content: template.HTML(buf.String())}, nil //nolint:gosec // produced by html/template
}

// readIDParam reads a numeric route parameter. Malformed values are reported as absent.
func readIDParam(r *http.Request, name string) (uint, bool) {
	return parseID(httprouter.ParamsFromContext(r.Context()).ByName(name))
}

func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}

func parseWeight(value string) (float64, bool) {
	weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || weight < 0 {
		return 0, false
	}

	return weight, true
}

type submitter interface {
	Submit(ctx context.Context, values url.Values) error
}

// submitForm parses the request body and submits it to form. Missing required fields are not
// an error for the caller: the form keeps the messages and is shown again.
func submitForm(r *http.Request, form submitter) (bool, error) {
	if err := r.ParseForm(); err != nil {
		return false, err
	}

	err := form.Submit(r.Context(), r.PostForm)
	if errors.Is(err, components.ErrRequired) {
		return false, nil
	}

	return err == nil, err
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

func cookOptions(cooks []model.Cook) []components.Option {
	options := make([]components.Option, 0, len(cooks))
	for _, cook := range cooks {
		options = append(options, components.Option{Value: strconv.FormatUint(uint64(cook.ID), 10), Label: cook.Name})
	}

	return options
}

func ingredientOptions(ingredients []model.Ingredient) []components.Option {
	options := make([]components.Option, 0, len(ingredients))
	for _, ingredient := range ingredients {
		options = append(options, components.Option{Value: strconv.FormatUint(uint64(ingredient.ID), 10), Label: ingredient.Name})
	}

	return options
}

func optionalID(id *uint) string {
	if id == nil {
		return ""
	}

	return strconv.FormatUint(uint64(*id), 10)
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
