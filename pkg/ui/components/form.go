package components

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

var ErrRequired = errors.New("required field is empty")

var validate = validator.New()

// CancelField is submitted by the cancel button of a form dialog.
const CancelField = "_cancel"

type FieldKind string

const (
	KindText      FieldKind = "text"
	KindMultiline FieldKind = "multiline"
	KindNumber    FieldKind = "number"
	KindDropdown  FieldKind = "dropdown"
	KindDate      FieldKind = "date"
	KindCheckbox  FieldKind = "checkbox"
)

type Option struct {
	Value string
	Label string
}

// Field describes one input of a form.
type Field struct {
	Kind        FieldKind
	Name        string
	Label       string
	Options     []Option
	Default     string
	Placeholder string
	Required    bool
}

type fieldView struct {
	Field
	ID    string
	Value string
}

func (f Field) view(id, value string) fieldView {
	return fieldView{Field: f, ID: id, Value: value}
}

// value reads the field from a submitted form. An unchecked checkbox is not submitted at all.
func (f Field) value(form url.Values) string {
	if f.Kind == KindCheckbox {
		if form.Get(f.Name) == "" {
			return "false"
		}

		return "true"
	}

	return strings.TrimSpace(form.Get(f.Name))
}

type (
	SaveFunc   func(ctx context.Context, values map[string]string) error
	CancelFunc func()
)

// FormBuilder collects field descriptors and callbacks and builds a Form or a FormDialog.
type FormBuilder struct {
	title    string
	action   string
	saveText string
	fields   []Field
	onSave   SaveFunc
	onCancel CancelFunc
}

func NewFormBuilder(title, action string) *FormBuilder {
	return &FormBuilder{title: title, action: action, saveText: "Save"}
}

func (b *FormBuilder) AddTextField(name, label, defaultValue string, required bool) *FormBuilder {
	return b.add(Field{Kind: KindText, Name: name, Label: label, Default: defaultValue, Required: required})
}

func (b *FormBuilder) AddMultilineField(name, label, defaultValue string, required bool) *FormBuilder {
	return b.add(Field{Kind: KindMultiline, Name: name, Label: label, Default: defaultValue, Required: required})
}

func (b *FormBuilder) AddNumberField(name, label, defaultValue string, required bool) *FormBuilder {
	return b.add(Field{Kind: KindNumber, Name: name, Label: label, Default: defaultValue, Required: required})
}

func (b *FormBuilder) AddDropdown(name, label string, options []Option, defaultValue string, required bool) *FormBuilder {
	return b.add(Field{Kind: KindDropdown, Name: name, Label: label, Options: options, Default: defaultValue, Required: required})
}

func (b *FormBuilder) AddDatePicker(name, label, defaultValue string, required bool) *FormBuilder {
	return b.add(Field{Kind: KindDate, Name: name, Label: label, Default: defaultValue, Required: required})
}

func (b *FormBuilder) AddCheckbox(name, label string, defaultValue bool) *FormBuilder {
	return b.add(Field{Kind: KindCheckbox, Name: name, Label: label, Default: fmt.Sprint(defaultValue)})
}

func (b *FormBuilder) SaveText(text string) *FormBuilder {
	b.saveText = text

	return b
}

func (b *FormBuilder) OnSave(fn SaveFunc) *FormBuilder {
	b.onSave = fn

	return b
}

func (b *FormBuilder) OnCancel(fn CancelFunc) *FormBuilder {
	b.onCancel = fn

	return b
}

func (b *FormBuilder) add(field Field) *FormBuilder {
	b.fields = append(b.fields, field)

	return b
}

// Build creates an inline form.
func (b *FormBuilder) Build() *Form {
	form := &Form{
		id:       uuid.NewString(),
		title:    b.title,
		action:   b.action,
		saveText: b.saveText,
		fields:   b.fields,
		onSave:   b.onSave,
		onCancel: b.onCancel,
		values:   make(map[string]string, len(b.fields)),
	}

	for _, field := range b.fields {
		form.values[field.Name] = field.Default
	}

	return form
}

// BuildDialog creates a modal form dialog.
func (b *FormBuilder) BuildDialog() *FormDialog {
	return &FormDialog{Form: b.Build()}
}

type Form struct {
	id       string
	title    string
	action   string
	saveText string
	fields   []Field
	onSave   SaveFunc
	onCancel CancelFunc
	values   map[string]string
	errors   []string
}

// Values returns the current value of every field by name.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.values))
	for name, value := range f.values {
		values[name] = value
	}

	return values
}

// Submit reads the submitted values, checks the required fields and hands the values to the
// save callback. Submitting the cancel button runs the cancel callback instead. Failed
// required checks are returned together, each wrapping ErrRequired.
func (f *Form) Submit(ctx context.Context, form url.Values) error {
	if form.Get(CancelField) != "" {
		if f.onCancel != nil {
			f.onCancel()
		}

		return nil
	}

	var errs error

	f.errors = nil

	for _, field := range f.fields {
		value := field.value(form)
		f.values[field.Name] = value

		if field.Required && validate.Var(value, "required") != nil {
			err := fmt.Errorf("%w: %s", ErrRequired, field.Label)
			multierr.AppendInto(&errs, err)
			f.errors = append(f.errors, err.Error())
		}
	}

	if errs != nil {
		return errs
	}

	if f.onSave == nil {
		return nil
	}

	return f.onSave(ctx, f.Values())
}

func (f *Form) Render() template.HTML {
	return render("form", f.view(false))
}

func (f *Form) view(modal bool) any {
	fields := make([]fieldView, 0, len(f.fields))
	for _, field := range f.fields {
		fields = append(fields, field.view(f.id+"-"+field.Name, f.values[field.Name]))
	}

	return struct {
		ID         string
		Title      string
		Action     string
		SaveText   string
		CancelName string
		Modal      bool
		Fields     []fieldView
		Errors     []string
	}{f.id, f.title, f.action, f.saveText, CancelField, modal, fields, f.errors}
}

// FormDialog is a Form shown as a modal dialog with save and cancel buttons.
type FormDialog struct {
	*Form
}

func (d *FormDialog) Render() template.HTML {
	return render("form-dialog", d.view(true))
}
