package result

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/aaltat/robotframework/model"
)

// For is an executed FOR loop. Its body consists of Iteration nodes.
type For struct {
	Flavor string
	Start  string
	Mode   string
	Fill   string
	Assign []string
	Values []string
	Body   *Body
	StatusInfo
}

// NewFor creates a FOR loop node.
func NewFor(flavor, start, mode, fill string) *For {
	return &For{
		Flavor:     flavor,
		Start:      start,
		Mode:       mode,
		Fill:       fill,
		Body:       NewBody(),
		StatusInfo: newStatusInfo(),
	}
}

// Type returns the FOR discriminant.
func (f *For) Type() model.BodyItemType {
	return model.ForType
}

// AddAssign appends loop variable names. Assignments are immutable once
// appended.
func (f *For) AddAssign(assign ...string) {
	f.Assign = append(f.Assign, assign...)
}

// AddValues appends loop values. Values are immutable once appended.
func (f *For) AddValues(values ...string) {
	f.Values = append(f.Values, values...)
}

// ToMap serializes the loop.
func (f *For) ToMap() map[string]any {
	out := map[string]any{"type": string(model.ForType)}
	if f.Flavor != "" {
		out["flavor"] = f.Flavor
	}
	if f.Start != "" {
		out["start"] = f.Start
	}
	if f.Mode != "" {
		out["mode"] = f.Mode
	}
	if f.Fill != "" {
		out["fill"] = f.Fill
	}
	if len(f.Assign) > 0 {
		out["assign"] = append([]string(nil), f.Assign...)
	}
	if len(f.Values) > 0 {
		out["values"] = append([]string(nil), f.Values...)
	}
	if f.Body.Len() > 0 {
		out["body"] = f.Body.ToMaps()
	}
	f.statusToMap(out)
	return out
}

// Configure applies the given attributes to the loop.
func (f *For) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := f.configureStatus(f, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.ForType, value) {
				return model.FixedAttributeError(f, name)
			}
		case "flavor":
			v, err := model.AsString(f, name, value)
			if err != nil {
				return err
			}
			f.Flavor = v
		case "start":
			v, err := model.AsString(f, name, value)
			if err != nil {
				return err
			}
			f.Start = v
		case "mode":
			v, err := model.AsString(f, name, value)
			if err != nil {
				return err
			}
			f.Mode = v
		case "fill":
			v, err := model.AsString(f, name, value)
			if err != nil {
				return err
			}
			f.Fill = v
		case "assign":
			v, err := model.AsStringSlice(f, name, value)
			if err != nil {
				return err
			}
			f.Assign = v
		case "values":
			v, err := model.AsStringSlice(f, name, value)
			if err != nil {
				return err
			}
			f.Values = v
		case "body":
			if err := f.Body.configureFrom(f, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(f, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (f *For) Copy(overrides map[string]any) (*For, error) {
	out := *f
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (f *For) DeepCopy(overrides map[string]any) (*For, error) {
	out := *f
	out.StatusInfo = f.StatusInfo.deepCopy()
	out.Assign = append([]string(nil), f.Assign...)
	out.Values = append([]string(nil), f.Values...)
	body, err := f.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the loop representation.
func (f *For) String() string {
	return model.Repr("result.For", []model.ReprField{
		{Name: "assign", Value: f.Assign, OmitEmpty: true},
		{Name: "flavor", Value: f.Flavor, OmitEmpty: true},
	})
}

// While is an executed WHILE loop. Its body consists of Iteration nodes.
type While struct {
	Condition      string
	Limit          string
	OnLimit        string
	OnLimitMessage string
	Body           *Body
	StatusInfo
}

// NewWhile creates a WHILE loop node.
func NewWhile(condition, limit, onLimit, onLimitMessage string) *While {
	return &While{
		Condition:      condition,
		Limit:          limit,
		OnLimit:        onLimit,
		OnLimitMessage: onLimitMessage,
		Body:           NewBody(),
		StatusInfo:     newStatusInfo(),
	}
}

// Type returns the WHILE discriminant.
func (w *While) Type() model.BodyItemType {
	return model.WhileType
}

// ToMap serializes the loop.
func (w *While) ToMap() map[string]any {
	out := map[string]any{"type": string(model.WhileType)}
	if w.Condition != "" {
		out["condition"] = w.Condition
	}
	if w.Limit != "" {
		out["limit"] = w.Limit
	}
	if w.OnLimit != "" {
		out["on_limit"] = w.OnLimit
	}
	if w.OnLimitMessage != "" {
		out["on_limit_message"] = w.OnLimitMessage
	}
	if w.Body.Len() > 0 {
		out["body"] = w.Body.ToMaps()
	}
	w.statusToMap(out)
	return out
}

// Configure applies the given attributes to the loop.
func (w *While) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := w.configureStatus(w, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.WhileType, value) {
				return model.FixedAttributeError(w, name)
			}
		case "condition":
			v, err := model.AsString(w, name, value)
			if err != nil {
				return err
			}
			w.Condition = v
		case "limit":
			v, err := model.AsString(w, name, value)
			if err != nil {
				return err
			}
			w.Limit = v
		case "on_limit":
			v, err := model.AsString(w, name, value)
			if err != nil {
				return err
			}
			w.OnLimit = v
		case "on_limit_message":
			v, err := model.AsString(w, name, value)
			if err != nil {
				return err
			}
			w.OnLimitMessage = v
		case "body":
			if err := w.Body.configureFrom(w, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(w, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (w *While) Copy(overrides map[string]any) (*While, error) {
	out := *w
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (w *While) DeepCopy(overrides map[string]any) (*While, error) {
	out := *w
	out.StatusInfo = w.StatusInfo.deepCopy()
	body, err := w.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the loop representation.
func (w *While) String() string {
	return model.Repr("result.While", []model.ReprField{
		{Name: "condition", Value: w.Condition, OmitEmpty: true},
		{Name: "limit", Value: w.Limit, OmitEmpty: true},
	})
}

// Iteration is one round of a FOR or WHILE loop. For FOR loops the assign
// mapping binds each loop variable to its value on this round, in document
// order; WHILE iterations have no bindings.
type Iteration struct {
	assign *orderedmap.OrderedMap[string, string]
	Body   *Body
	StatusInfo
}

// NewIteration creates an iteration node.
func NewIteration() *Iteration {
	return &Iteration{
		assign:     orderedmap.New[string, string](),
		Body:       NewBody(),
		StatusInfo: newStatusInfo(),
	}
}

// Type returns the ITERATION discriminant.
func (i *Iteration) Type() model.BodyItemType {
	return model.IterationType
}

// BindAssign binds a loop variable to its value for this round.
func (i *Iteration) BindAssign(name, value string) {
	i.assign.Set(name, value)
}

// AssignValue returns the value bound to the given loop variable.
func (i *Iteration) AssignValue(name string) (string, bool) {
	return i.assign.Get(name)
}

// AssignNames returns the bound loop variable names in document order.
func (i *Iteration) AssignNames() []string {
	names := make([]string, 0, i.assign.Len())
	for pair := i.assign.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// ToMap serializes the iteration.
func (i *Iteration) ToMap() map[string]any {
	out := map[string]any{"type": string(model.IterationType)}
	if i.assign.Len() > 0 {
		// The bindings keep document order, so serialization emits them
		// in the order the loop variables were assigned.
		out["assign"] = i.assign
	}
	if i.Body.Len() > 0 {
		out["body"] = i.Body.ToMaps()
	}
	i.statusToMap(out)
	return out
}

// Configure applies the given attributes to the iteration.
func (i *Iteration) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := i.configureStatus(i, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.IterationType, value) {
				return model.FixedAttributeError(i, name)
			}
		case "assign":
			switch bindings := value.(type) {
			case *orderedmap.OrderedMap[string, string]:
				i.assign = orderedmap.New[string, string]()
				for pair := bindings.Oldest(); pair != nil; pair = pair.Next() {
					i.assign.Set(pair.Key, pair.Value)
				}
			case map[string]any:
				i.assign = orderedmap.New[string, string]()
				for key, raw := range bindings {
					v, err := model.AsString(i, name, raw)
					if err != nil {
						return err
					}
					i.assign.Set(key, v)
				}
			default:
				return model.NewDataError("'%s' object attribute '%s' is 'mapping', got '%T'", model.TypeName(i), name, value)
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
func (i *Iteration) Copy(overrides map[string]any) (*Iteration, error) {
	out := *i
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (i *Iteration) DeepCopy(overrides map[string]any) (*Iteration, error) {
	out := *i
	out.StatusInfo = i.StatusInfo.deepCopy()
	out.assign = orderedmap.New[string, string]()
	for pair := i.assign.Oldest(); pair != nil; pair = pair.Next() {
		out.assign.Set(pair.Key, pair.Value)
	}
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

// String returns the iteration representation.
func (i *Iteration) String() string {
	return model.Repr("result.Iteration", []model.ReprField{
		{Name: "assign", Value: i.AssignNames(), OmitEmpty: true},
	})
}

// Group is a named grouping block around other body items.
type Group struct {
	Name string
	Body *Body
	StatusInfo
}

// NewGroup creates a GROUP node.
func NewGroup(name string) *Group {
	return &Group{Name: name, Body: NewBody(), StatusInfo: newStatusInfo()}
}

// Type returns the GROUP discriminant.
func (g *Group) Type() model.BodyItemType {
	return model.GroupType
}

// ToMap serializes the group.
func (g *Group) ToMap() map[string]any {
	out := map[string]any{"type": string(model.GroupType)}
	if g.Name != "" {
		out["name"] = g.Name
	}
	if g.Body.Len() > 0 {
		out["body"] = g.Body.ToMaps()
	}
	g.statusToMap(out)
	return out
}

// Configure applies the given attributes to the group.
func (g *Group) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := g.configureStatus(g, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.GroupType, value) {
				return model.FixedAttributeError(g, name)
			}
		case "name":
			v, err := model.AsString(g, name, value)
			if err != nil {
				return err
			}
			g.Name = v
		case "body":
			if err := g.Body.configureFrom(g, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(g, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (g *Group) Copy(overrides map[string]any) (*Group, error) {
	out := *g
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (g *Group) DeepCopy(overrides map[string]any) (*Group, error) {
	out := *g
	out.StatusInfo = g.StatusInfo.deepCopy()
	body, err := g.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the group representation.
func (g *Group) String() string {
	return model.Repr("result.Group", []model.ReprField{
		{Name: "name", Value: g.Name},
	})
}

// Var is an executed VAR assignment.
type Var struct {
	Name  string
	Scope string
	// Separator distinguishes an explicitly empty separator from an absent
	// one, so a nil pointer and an empty string round-trip differently.
	Separator *string
	Value     []string
	Body      *Body
	StatusInfo
}

// NewVar creates a VAR node.
func NewVar(name, scope string, separator *string) *Var {
	return &Var{
		Name:       name,
		Scope:      scope,
		Separator:  separator,
		Body:       NewBody(),
		StatusInfo: newStatusInfo(),
	}
}

// Type returns the VAR discriminant.
func (v *Var) Type() model.BodyItemType {
	return model.VarType
}

// AddValue appends value segments. Values are immutable once appended.
func (v *Var) AddValue(values ...string) {
	v.Value = append(v.Value, values...)
}

// ToMap serializes the assignment.
func (v *Var) ToMap() map[string]any {
	out := map[string]any{
		"type": string(model.VarType),
		"name": v.Name,
	}
	if v.Scope != "" {
		out["scope"] = v.Scope
	}
	if v.Separator != nil {
		out["separator"] = *v.Separator
	}
	if len(v.Value) > 0 {
		out["value"] = append([]string(nil), v.Value...)
	}
	if v.Body.Len() > 0 {
		out["body"] = v.Body.ToMaps()
	}
	v.statusToMap(out)
	return out
}

// Configure applies the given attributes to the assignment.
func (v *Var) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := v.configureStatus(v, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(model.VarType, value) {
				return model.FixedAttributeError(v, name)
			}
		case "name":
			s, err := model.AsString(v, name, value)
			if err != nil {
				return err
			}
			v.Name = s
		case "scope":
			s, err := model.AsString(v, name, value)
			if err != nil {
				return err
			}
			v.Scope = s
		case "separator":
			if value == nil {
				v.Separator = nil
				continue
			}
			s, err := model.AsString(v, name, value)
			if err != nil {
				return err
			}
			v.Separator = &s
		case "value":
			s, err := model.AsStringSlice(v, name, value)
			if err != nil {
				return err
			}
			v.Value = s
		case "body":
			if err := v.Body.configureFrom(v, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(v, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied.
func (v *Var) Copy(overrides map[string]any) (*Var, error) {
	out := *v
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied.
func (v *Var) DeepCopy(overrides map[string]any) (*Var, error) {
	out := *v
	out.StatusInfo = v.StatusInfo.deepCopy()
	out.Value = append([]string(nil), v.Value...)
	if v.Separator != nil {
		sep := *v.Separator
		out.Separator = &sep
	}
	body, err := v.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the assignment representation.
func (v *Var) String() string {
	return model.Repr("result.Var", []model.ReprField{
		{Name: "name", Value: v.Name},
		{Name: "value", Value: v.Value, OmitEmpty: true},
	})
}
