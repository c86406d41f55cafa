package result

import (
	"github.com/aaltat/robotframework/model"
)

// Return is an executed RETURN statement carrying the returned values.
type Return struct {
	Values []string
	Body   *Body
	StatusInfo
}

// NewReturn creates a RETURN node.
func NewReturn() *Return {
	return &Return{Body: NewBody(), StatusInfo: newStatusInfo()}
}

// Type returns the RETURN discriminant.
func (r *Return) Type() model.BodyItemType {
	return model.ReturnType
}

// AddValues appends returned values. Values are immutable once appended.
func (r *Return) AddValues(values ...string) {
	r.Values = append(r.Values, values...)
}

// ToMap serializes the statement.
func (r *Return) ToMap() map[string]any {
	out := map[string]any{"type": string(model.ReturnType)}
	if len(r.Values) > 0 {
		out["values"] = append([]string(nil), r.Values...)
	}
	if r.Body.Len() > 0 {
		out["body"] = r.Body.ToMaps()
	}
	r.statusToMap(out)
	return out
}

// Configure applies the given attributes to the statement.
func (r *Return) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := r.configureStatus(r, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.ReturnType, value) {
				return model.FixedAttributeError(r, name)
			}
		case "values":
			v, err := model.AsStringSlice(r, name, value)
			if err != nil {
				return err
			}
			r.Values = v
		case "body":
			if err := r.Body.configureFrom(r, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(r, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (r *Return) Copy(overrides map[string]any) (*Return, error) {
	out := *r
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (r *Return) DeepCopy(overrides map[string]any) (*Return, error) {
	out := *r
	out.StatusInfo = r.StatusInfo.deepCopy()
	out.Values = append([]string(nil), r.Values...)
	body, err := r.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the statement representation.
func (r *Return) String() string {
	return model.Repr("result.Return", []model.ReprField{
		{Name: "values", Value: r.Values, OmitEmpty: true},
	})
}

// Continue is an executed CONTINUE statement.
type Continue struct {
	Body *Body
	StatusInfo
}

// NewContinue creates a CONTINUE node.
func NewContinue() *Continue {
	return &Continue{Body: NewBody(), StatusInfo: newStatusInfo()}
}

// Type returns the CONTINUE discriminant.
func (c *Continue) Type() model.BodyItemType {
	return model.ContinueType
}

// ToMap serializes the statement.
func (c *Continue) ToMap() map[string]any {
	out := map[string]any{"type": string(model.ContinueType)}
	if c.Body.Len() > 0 {
		out["body"] = c.Body.ToMaps()
	}
	c.statusToMap(out)
	return out
}

// Configure applies the given attributes to the statement.
func (c *Continue) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := c.configureStatus(c, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.ContinueType, value) {
				return model.FixedAttributeError(c, name)
			}
		case "body":
			if err := c.Body.configureFrom(c, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(c, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (c *Continue) Copy(overrides map[string]any) (*Continue, error) {
	out := *c
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (c *Continue) DeepCopy(overrides map[string]any) (*Continue, error) {
	out := *c
	out.StatusInfo = c.StatusInfo.deepCopy()
	body, err := c.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the statement representation.
func (c *Continue) String() string {
	return model.Repr("result.Continue", nil)
}

// Break is an executed BREAK statement.
type Break struct {
	Body *Body
	StatusInfo
}

// NewBreak creates a BREAK node.
func NewBreak() *Break {
	return &Break{Body: NewBody(), StatusInfo: newStatusInfo()}
}

// Type returns the BREAK discriminant.
func (b *Break) Type() model.BodyItemType {
	return model.BreakType
}

// ToMap serializes the statement.
func (b *Break) ToMap() map[string]any {
	out := map[string]any{"type": string(model.BreakType)}
	if b.Body.Len() > 0 {
		out["body"] = b.Body.ToMaps()
	}
	b.statusToMap(out)
	return out
}

// Configure applies the given attributes to the statement.
func (b *Break) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := b.configureStatus(b, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.BreakType, value) {
				return model.FixedAttributeError(b, name)
			}
		case "body":
			if err := b.Body.configureFrom(b, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(b, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (b *Break) Copy(overrides map[string]any) (*Break, error) {
	out := *b
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (b *Break) DeepCopy(overrides map[string]any) (*Break, error) {
	out := *b
	out.StatusInfo = b.StatusInfo.deepCopy()
	body, err := b.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the statement representation.
func (b *Break) String() string {
	return model.Repr("result.Break", nil)
}

// Error represents invalid syntax noticed during execution, carrying the
// offending values.
type Error struct {
	Values []string
	Body   *Body
	StatusInfo
}

// NewError creates an ERROR node.
func NewError() *Error {
	return &Error{Body: NewBody(), StatusInfo: newStatusInfo()}
}

// Type returns the ERROR discriminant.
func (e *Error) Type() model.BodyItemType {
	return model.ErrorType
}

// AddValues appends error values. Values are immutable once appended.
func (e *Error) AddValues(values ...string) {
	e.Values = append(e.Values, values...)
}

// ToMap serializes the node.
func (e *Error) ToMap() map[string]any {
	out := map[string]any{"type": string(model.ErrorType)}
	if len(e.Values) > 0 {
		out["values"] = append([]string(nil), e.Values...)
	}
	if e.Body.Len() > 0 {
		out["body"] = e.Body.ToMaps()
	}
	e.statusToMap(out)
	return out
}

// Configure applies the given attributes to the node.
func (e *Error) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := e.configureStatus(e, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.ErrorType, value) {
				return model.FixedAttributeError(e, name)
			}
		case "values":
			v, err := model.AsStringSlice(e, name, value)
			if err != nil {
				return err
			}
			e.Values = v
		case "body":
			if err := e.Body.configureFrom(e, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(e, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (e *Error) Copy(overrides map[string]any) (*Error, error) {
	out := *e
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (e *Error) DeepCopy(overrides map[string]any) (*Error, error) {
	out := *e
	out.StatusInfo = e.StatusInfo.deepCopy()
	out.Values = append([]string(nil), e.Values...)
	body, err := e.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the node representation.
func (e *Error) String() string {
	return model.Repr("result.Error", []model.ReprField{
		{Name: "values", Value: e.Values, OmitEmpty: true},
	})
}
