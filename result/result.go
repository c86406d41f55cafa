package result

import (
	"time"

	"github.com/aaltat/robotframework/model"
)

// Result is the root of a reconstructed execution report: one top-level
// suite, the execution errors and generation metadata. It is created once
// per parse, mutated only while parsing and immutable thereafter from the
// reconstruction engine's perspective.
type Result struct {
	Generator string
	Generated *time.Time
	Suite     *Suite
	Errors    *ExecutionErrors
	rpa       *bool
}

// NewResult creates an empty result with its top-level suite and errors
// container in place.
func NewResult() *Result {
	return &Result{
		Generator: "unknown",
		Suite:     NewSuite(""),
		Errors:    NewExecutionErrors(),
	}
}

// RPA reports whether the report was produced in RPA (task) mode.
func (r *Result) RPA() bool {
	return r.rpa != nil && *r.rpa
}

// RPASet reports whether the RPA mode has been decided yet.
func (r *Result) RPASet() bool {
	return r.rpa != nil
}

// SetRPA decides the RPA mode.
func (r *Result) SetRPA(rpa bool) {
	r.rpa = &rpa
}

// Type returns the SUITE discriminant of the contained top-level suite; the
// root itself has no discriminant of its own in serialized bodies.
func (r *Result) Type() model.BodyItemType {
	return model.SuiteType
}

// ToMap serializes the whole result.
func (r *Result) ToMap() map[string]any {
	out := map[string]any{
		"generator": r.Generator,
		"rpa":       r.RPA(),
		"suite":     r.Suite.ToMap(),
	}
	if r.Generated != nil {
		out["generated"] = r.Generated.Format(timeFormat)
	}
	if len(r.Errors.Messages) > 0 {
		out["errors"] = r.Errors.ToMaps()
	}
	return out
}

// Configure applies the given attributes to the result.
func (r *Result) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		switch name {
		case "generator":
			v, err := model.AsString(r, name, value)
			if err != nil {
				return err
			}
			r.Generator = v
		case "generated":
			t, err := timeAttr(r, name, value)
			if err != nil {
				return err
			}
			r.Generated = t
		case "rpa":
			v, err := model.AsBool(r, name, value)
			if err != nil {
				return err
			}
			r.SetRPA(v)
		case "suite":
			data, ok := value.(map[string]any)
			if !ok {
				return model.NewDataError("'%s' object attribute '%s' is 'mapping', got '%T'", model.TypeName(r), name, value)
			}
			suite, err := SuiteFromMap(data)
			if err != nil {
				return err
			}
			r.Suite = suite
		case "errors":
			items, err := itemMaps(r, name, value)
			if err != nil {
				return err
			}
			r.Errors = NewExecutionErrors()
			for _, data := range items {
				msg := NewMessage("", LevelInfo, false, nil)
				if err := msg.Configure(data); err != nil {
					return err
				}
				r.Errors.Append(msg)
			}
		default:
			return model.UnknownAttributeError(r, name)
		}
	}
	return nil
}

// ResultFromMap constructs a result from its serialized map.
func ResultFromMap(data map[string]any) (*Result, error) {
	res := NewResult()
	if err := res.Configure(data); err != nil {
		return nil, err
	}
	return res, nil
}

// DeepCopy returns a recursive copy of the result.
func (r *Result) DeepCopy() (*Result, error) {
	out := NewResult()
	out.Generator = r.Generator
	if r.Generated != nil {
		t := *r.Generated
		out.Generated = &t
	}
	if r.rpa != nil {
		rpa := *r.rpa
		out.rpa = &rpa
	}
	suite, err := r.Suite.DeepCopy(nil)
	if err != nil {
		return nil, err
	}
	out.Suite = suite
	for _, msg := range r.Errors.Messages {
		copied, err := msg.DeepCopy(nil)
		if err != nil {
			return nil, err
		}
		out.Errors.Append(copied)
	}
	return out, nil
}

// String returns the result representation.
func (r *Result) String() string {
	return model.Repr("result.Result", []model.ReprField{
		{Name: "suite", Value: r.Suite.Name},
		{Name: "generator", Value: r.Generator, OmitEmpty: true},
	})
}

// ExecutionErrors collects the messages reported outside any suite, such as
// import failures noticed while the run was set up.
type ExecutionErrors struct {
	Messages []*Message
}

// NewExecutionErrors creates an empty errors container.
func NewExecutionErrors() *ExecutionErrors {
	return &ExecutionErrors{}
}

// Append adds a message to the container.
func (e *ExecutionErrors) Append(msg *Message) {
	e.Messages = append(e.Messages, msg)
}

// CreateMessage appends and returns a new message.
func (e *ExecutionErrors) CreateMessage(text string, level MessageLevel, html bool, timestamp *time.Time) *Message {
	msg := NewMessage(text, level, html, timestamp)
	e.Append(msg)
	return msg
}

// ToMaps serializes the contained messages in order.
func (e *ExecutionErrors) ToMaps() []any {
	out := make([]any, 0, len(e.Messages))
	for _, msg := range e.Messages {
		out = append(out, msg.ToMap())
	}
	return out
}
