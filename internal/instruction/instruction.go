// Package instruction validates answers against an install config and
// renders the resulting instructions.
package instruction

import (
	"errors"
	"fmt"

	"github.com/re-cinq/instruct/internal/config"
	"github.com/re-cinq/instruct/internal/options"
	"github.com/re-cinq/instruct/internal/render"
	"github.com/re-cinq/instruct/internal/schema"
)

// Outcome is the result of ValidateAndRender. When IsError is set, Text is
// the message to show the user and Lines is empty.
type Outcome struct {
	Text    string
	Lines   []string
	IsError bool
}

// TemplateError is returned when a template fails for a reason other than a
// raised domain error, which points at a mistake in the config.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("rendering template: %s", e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Instruction is a loaded config ready to answer questions. It holds no
// mutable state and may be shared between goroutines.
type Instruction struct {
	doc        *config.Document
	properties *schema.Set
	tmpl       *render.Template
}

// New parses raw config text.
func New(raw string) (*Instruction, error) {
	doc, err := config.Parse(raw)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// FromFile loads the config at path.
func FromFile(path string) (*Instruction, error) {
	doc, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func fromDocument(doc *config.Document) (*Instruction, error) {
	tmpl, err := render.Compile("install.cfg", doc.TemplateText)
	if err != nil {
		return nil, err
	}
	return &Instruction{
		doc:        doc,
		properties: schema.Normalize(doc.Schema),
		tmpl:       tmpl,
	}, nil
}

// Document returns the parsed config.
func (in *Instruction) Document() *config.Document {
	return in.doc
}

// Properties returns the normalized option set.
func (in *Instruction) Properties() *schema.Set {
	return in.properties
}

// ProjectID identifies the project for saved defaults: the schema $id, or
// its title when there is no $id.
func (in *Instruction) ProjectID() string {
	if in.doc.Schema.ID != "" {
		return in.doc.Schema.ID
	}
	return in.doc.Schema.Title
}

// Options returns the option flags for this config.
func (in *Instruction) Options(p options.Params) ([]options.Flag, map[string]any) {
	p.Misc = in.doc.Misc
	return options.Extract(in.properties, p)
}

// ValidateAndRender checks input against the schema and, when it conforms,
// renders the template. Invalid answers and raised errors come back as an
// Outcome with IsError set; only faults in the config itself are errors.
func (in *Instruction) ValidateAndRender(input map[string]any) (Outcome, error) {
	if err := in.doc.Validator.Validate(input); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			return Outcome{Text: "Schema validation error: " + verr.Error(), IsError: true}, nil
		}
		return Outcome{}, err
	}

	out, err := in.tmpl.Execute(in.renderData(input))
	if err != nil {
		var de *render.DomainError
		if errors.As(err, &de) {
			return Outcome{Text: de.Message, IsError: true}, nil
		}
		if msg, ok := render.ExtractErrorMessage(err.Error()); ok {
			return Outcome{Text: msg, IsError: true}, nil
		}
		return Outcome{}, &TemplateError{Err: err}
	}

	if msg, ok := render.ExtractTaggedError(out); ok {
		return Outcome{Text: msg, IsError: true}, nil
	}
	return Outcome{
		Text:  render.CollapseWhitespace(out),
		Lines: render.SplitLines(out),
	}, nil
}

// renderData is input with every known option present: answers first, then
// schema defaults, then nil.
func (in *Instruction) renderData(input map[string]any) map[string]any {
	data := make(map[string]any, len(input)+in.properties.Len())
	for _, p := range in.properties.All() {
		data[p.Key] = p.Default
	}
	for k, v := range input {
		if p, ok := in.properties.Get(k); ok {
			v = p.Coerce(v)
		}
		data[k] = v
	}
	return data
}
