package result

import (
	"github.com/aaltat/robotframework/model"
)

// If is an executed IF/ELSE structure. Its body holds the Branch nodes in
// document order.
type If struct {
	Body *Body
	StatusInfo
}

// NewIf creates an IF/ELSE container.
func NewIf() *If {
	return &If{Body: NewBody(), StatusInfo: newStatusInfo()}
}

// Type returns the IF/ELSE ROOT discriminant.
func (i *If) Type() model.BodyItemType {
	return model.IfElseType
}

// ToMap serializes the container.
func (i *If) ToMap() map[string]any {
	out := map[string]any{"type": string(model.IfElseType)}
	if i.Body.Len() > 0 {
		out["body"] = i.Body.ToMaps()
	}
	i.statusToMap(out)
	return out
}

// Configure applies the given attributes to the container.
func (i *If) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := i.configureStatus(i, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.IfElseType, value) {
				return model.FixedAttributeError(i, name)
			}
		case "body":
			if err := i.Body.configureFrom(i, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(i, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (i *If) Copy(overrides map[string]any) (*If, error) {
	out := *i
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (i *If) DeepCopy(overrides map[string]any) (*If, error) {
	out := *i
	out.StatusInfo = i.StatusInfo.deepCopy()
	body, err := i.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the container representation.
func (i *If) String() string {
	return model.Repr("result.If", nil)
}

// Try is an executed TRY/EXCEPT structure. Its body holds the Branch nodes
// in document order.
type Try struct {
	Body *Body
	StatusInfo
}

// NewTry creates a TRY/EXCEPT container.
func NewTry() *Try {
	return &Try{Body: NewBody(), StatusInfo: newStatusInfo()}
}

// Type returns the TRY/EXCEPT ROOT discriminant.
func (t *Try) Type() model.BodyItemType {
	return model.TryExceptType
}

// ToMap serializes the container.
func (t *Try) ToMap() map[string]any {
	out := map[string]any{"type": string(model.TryExceptType)}
	if t.Body.Len() > 0 {
		out["body"] = t.Body.ToMaps()
	}
	t.statusToMap(out)
	return out
}

// Configure applies the given attributes to the container.
func (t *Try) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := t.configureStatus(t, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.TryExceptType, value) {
				return model.FixedAttributeError(t, name)
			}
		case "body":
			if err := t.Body.configureFrom(t, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(t, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (t *Try) Copy(overrides map[string]any) (*Try, error) {
	out := *t
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (t *Try) DeepCopy(overrides map[string]any) (*Try, error) {
	out := *t
	out.StatusInfo = t.StatusInfo.deepCopy()
	body, err := t.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the container representation.
func (t *Try) String() string {
	return model.Repr("result.Try", nil)
}

// Branch is one branch of an IF/ELSE or TRY/EXCEPT structure. Unlike the
// other discriminants, the branch type is a regular attribute because it is
// decided by the document, not by the node kind.
type Branch struct {
	BranchType model.BodyItemType
	Condition  string
	// Patterns are EXCEPT matching patterns, appended in document order.
	Patterns    []string
	PatternType string
	Assign      string
	Body        *Body
	StatusInfo
}

// NewBranch creates a branch of the given type.
func NewBranch(branchType model.BodyItemType) *Branch {
	return &Branch{
		BranchType: branchType,
		Body:       NewBody(),
		StatusInfo: newStatusInfo(),
	}
}

// Type returns the branch type discriminant: IF, ELSE IF, ELSE, TRY, EXCEPT
// or FINALLY.
func (b *Branch) Type() model.BodyItemType {
	return b.BranchType
}

// AddPatterns appends matching patterns. Patterns are immutable once
// appended.
func (b *Branch) AddPatterns(patterns ...string) {
	b.Patterns = append(b.Patterns, patterns...)
}

// ToMap serializes the branch.
func (b *Branch) ToMap() map[string]any {
	out := map[string]any{"type": string(b.BranchType)}
	if b.Condition != "" {
		out["condition"] = b.Condition
	}
	if len(b.Patterns) > 0 {
		out["patterns"] = append([]string(nil), b.Patterns...)
	}
	if b.PatternType != "" {
		out["pattern_type"] = b.PatternType
	}
	if b.Assign != "" {
		out["assign"] = b.Assign
	}
	if b.Body.Len() > 0 {
		out["body"] = b.Body.ToMaps()
	}
	b.statusToMap(out)
	return out
}

// Configure applies the given attributes to the branch.
func (b *Branch) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := b.configureStatus(b, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			v, err := model.AsString(b, name, value)
			if err != nil {
				return err
			}
			b.BranchType = model.BodyItemType(v)
		case "condition":
			v, err := model.AsString(b, name, value)
			if err != nil {
				return err
			}
			b.Condition = v
		case "patterns":
			v, err := model.AsStringSlice(b, name, value)
			if err != nil {
				return err
			}
			b.Patterns = v
		case "pattern_type":
			v, err := model.AsString(b, name, value)
			if err != nil {
				return err
			}
			b.PatternType = v
		case "assign":
			v, err := model.AsString(b, name, value)
			if err != nil {
				return err
			}
			b.Assign = v
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
func (b *Branch) Copy(overrides map[string]any) (*Branch, error) {
	out := *b
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (b *Branch) DeepCopy(overrides map[string]any) (*Branch, error) {
	out := *b
	out.StatusInfo = b.StatusInfo.deepCopy()
	out.Patterns = append([]string(nil), b.Patterns...)
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

// String returns the branch representation.
func (b *Branch) String() string {
	return model.Repr("result.Branch", []model.ReprField{
		{Name: "type", Value: string(b.BranchType)},
		{Name: "condition", Value: b.Condition, OmitEmpty: true},
	})
}
