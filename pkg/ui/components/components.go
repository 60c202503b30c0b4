// Package components renders the reusable pieces the views are built from. Every factory is
// stateless and returns markup ready to be placed in a page.
package components

import (
	"bytes"
	"embed"
	"html/template"
	texttemplate "text/template"

	"github.com/google/uuid"
)

//go:embed templates
var files embed.FS

var (
	templates  = template.Must(template.New("components").ParseFS(files, "templates/components.html"))
	stylesheet = texttemplate.Must(texttemplate.New("style.css").ParseFS(files, "templates/style.css"))
)

type Icon string

const (
	IconAdd      Icon = "+"
	IconDelete   Icon = "\U0001F5D1"
	IconEdit     Icon = "✎"
	IconSearch   Icon = "\U0001F50D"
	IconClose    Icon = "✕"
	IconCook     Icon = "\U0001F9D1\u200d\U0001F373"
	IconDish     Icon = "\U0001F37D"
	IconEgg      Icon = "\U0001F95A"
	IconDownload Icon = "⬇"
)

type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantDanger    Variant = "danger"
)

// Action is what happens when a control is activated: following a link or posting to a URL.
type Action struct {
	URL  string
	Post bool
}

func Link(url string) Action {
	return Action{URL: url}
}

func Post(url string) Action {
	return Action{URL: url, Post: true}
}

func Button(text string, action Action, variant Variant) template.HTML {
	return render("button", struct {
		Text    string
		Action  Action
		Variant Variant
	}{text, action, variant})
}

func IconButton(icon Icon, title string, action Action) template.HTML {
	return render("icon-button", struct {
		Icon   Icon
		Title  string
		Action Action
	}{icon, title, action})
}

// FieldOption adjusts a single input field.
type FieldOption func(field *Field)

func Required() FieldOption {
	return func(field *Field) { field.Required = true }
}

func Multiline() FieldOption {
	return func(field *Field) { field.Kind = KindMultiline }
}

func Placeholder(text string) FieldOption {
	return func(field *Field) { field.Placeholder = text }
}

func TextField(name, label, value string, options ...FieldOption) template.HTML {
	return renderField(Field{Kind: KindText, Name: name, Label: label, Default: value}, options)
}

func NumberField(name, label, value string, options ...FieldOption) template.HTML {
	return renderField(Field{Kind: KindNumber, Name: name, Label: label, Default: value}, options)
}

func Dropdown(name, label string, choices []Option, value string, options ...FieldOption) template.HTML {
	return renderField(Field{Kind: KindDropdown, Name: name, Label: label, Options: choices, Default: value}, options)
}

func ListItem(title, subtitle, href string, trailing ...template.HTML) template.HTML {
	return render("list-item", struct {
		Title    string
		Subtitle string
		Href     string
		Trailing []template.HTML
	}{title, subtitle, href, trailing})
}

// Card shows an image above a title. The dish glyph replaces the image when there is none
// or it fails to load.
func Card(title, subtitle, imageURL, href string) template.HTML {
	return render("card", struct {
		Title    string
		Subtitle string
		ImageURL string
		Href     string
		Fallback Icon
	}{title, subtitle, imageURL, href, IconDish})
}

// AlertDialog asks for confirmation before posting to confirm.
func AlertDialog(title, message, confirmText string, confirm Action, cancelURL string) template.HTML {
	return render("alert-dialog", struct {
		ID          string
		Title       string
		Message     string
		ConfirmText string
		Confirm     Action
		CancelURL   string
	}{uuid.NewString(), title, message, confirmText, confirm, cancelURL})
}

func renderField(field Field, options []FieldOption) template.HTML {
	for _, option := range options {
		option(&field)
	}

	return render("field", field.view(uuid.NewString(), field.Default))
}

func render(name string, data any) template.HTML {
	var buf bytes.Buffer

	must(templates.ExecuteTemplate(&buf, name, data))

	return template.HTML(buf.String()) //nolint:gosec // produced by html/template
}

// must panics on template execution errors, which only come from broken templates.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
