package result

import (
	"github.com/aaltat/robotframework/model"
)

// Keyword is an executed keyword call. The same node kind also represents
// setup and teardown fixtures, discriminated by the fixed type attribute.
type Keyword struct {
	kwType     model.BodyItemType
	Name       string
	Owner      string
	SourceName string
	Doc        string
	Args       []string
	Assign     []string
	Tags       *model.Tags
	Timeout    string
	Body       *Body
	StatusInfo
	setup    *Keyword
	teardown *Keyword
}

// NewKeyword creates a plain keyword.
func NewKeyword(name, owner, sourceName string) *Keyword {
	kw := newKeywordWithType(model.KeywordType)
	kw.Name = name
	kw.Owner = owner
	kw.SourceName = sourceName
	return kw
}

func newKeywordWithType(kwType model.BodyItemType) *Keyword {
	return &Keyword{
		kwType:     kwType,
		Tags:       model.NewTags(),
		Body:       NewBody(),
		StatusInfo: newStatusInfo(),
	}
}

// Type returns KEYWORD, SETUP or TEARDOWN. The discriminant is fixed at
// construction time.
func (k *Keyword) Type() model.BodyItemType {
	return k.kwType
}

// HasName reports whether the keyword has been given a name. An unnamed
// fixture keyword counts as unset.
func (k *Keyword) HasName() bool {
	return k.Name != ""
}

// FullName returns the keyword name prefixed with its owner, matching how
// executed keywords are displayed, e.g. "BuiltIn.Log".
func (k *Keyword) FullName() string {
	if k.Owner != "" {
		return k.Owner + "." + k.Name
	}
	return k.Name
}

// Setup returns the setup fixture, materializing an empty one on first use.
func (k *Keyword) Setup() *Keyword {
	if k.setup == nil {
		k.setup = newKeywordWithType(model.SetupType)
	}
	return k.setup
}

// HasSetup reports whether a named setup fixture exists.
func (k *Keyword) HasSetup() bool {
	return k.setup != nil && k.setup.HasName()
}

// Teardown returns the teardown fixture, materializing an empty one on
// first use.
func (k *Keyword) Teardown() *Keyword {
	if k.teardown == nil {
		k.teardown = newKeywordWithType(model.TeardownType)
	}
	return k.teardown
}

// HasTeardown reports whether a named teardown fixture exists.
func (k *Keyword) HasTeardown() bool {
	return k.teardown != nil && k.teardown.HasName()
}

// AddArgs appends arguments. Arguments are immutable once appended.
func (k *Keyword) AddArgs(args ...string) {
	k.Args = append(k.Args, args...)
}

// AddAssign appends variable names receiving the keyword's return value.
func (k *Keyword) AddAssign(assign ...string) {
	k.Assign = append(k.Assign, assign...)
}

// ToMap serializes the keyword.
func (k *Keyword) ToMap() map[string]any {
	out := map[string]any{
		"type": string(k.kwType),
		"name": k.Name,
	}
	if k.Owner != "" {
		out["owner"] = k.Owner
	}
	if k.SourceName != "" {
		out["source_name"] = k.SourceName
	}
	if k.Doc != "" {
		out["doc"] = k.Doc
	}
	if len(k.Args) > 0 {
		out["args"] = append([]string(nil), k.Args...)
	}
	if len(k.Assign) > 0 {
		out["assign"] = append([]string(nil), k.Assign...)
	}
	if !k.Tags.Empty() {
		out["tags"] = k.Tags.List()
	}
	if k.Timeout != "" {
		out["timeout"] = k.Timeout
	}
	if k.HasSetup() {
		out["setup"] = k.setup.ToMap()
	}
	if k.HasTeardown() {
		out["teardown"] = k.teardown.ToMap()
	}
	if k.Body.Len() > 0 {
		out["body"] = k.Body.ToMaps()
	}
	k.statusToMap(out)
	return out
}

// Configure applies the given attributes to the keyword.
func (k *Keyword) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := k.configureStatus(k, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "type":
			if !model.SameType(k.kwType, value) {
				return model.FixedAttributeError(k, name)
			}
		case "name":
			v, err := model.AsString(k, name, value)
			if err != nil {
				return err
			}
			k.Name = v
		case "owner":
			v, err := model.AsString(k, name, value)
			if err != nil {
				return err
			}
			k.Owner = v
		case "source_name":
			v, err := model.AsString(k, name, value)
			if err != nil {
				return err
			}
			k.SourceName = v
		case "doc":
			v, err := model.AsString(k, name, value)
			if err != nil {
				return err
			}
			k.Doc = v
		case "args":
			v, err := model.AsStringSlice(k, name, value)
			if err != nil {
				return err
			}
			k.Args = v
		case "assign":
			v, err := model.AsStringSlice(k, name, value)
			if err != nil {
				return err
			}
			k.Assign = v
		case "tags":
			v, err := model.AsStringSlice(k, name, value)
			if err != nil {
				return err
			}
			k.Tags.Set(v)
		case "timeout":
			v, err := model.AsString(k, name, value)
			if err != nil {
				return err
			}
			k.Timeout = v
		case "setup":
			if err := configureFixture(k.Setup(), k, name, value); err != nil {
				return err
			}
		case "teardown":
			if err := configureFixture(k.Teardown(), k, name, value); err != nil {
				return err
			}
		case "body":
			if err := k.Body.configureFrom(k, name, value); err != nil {
				return err
			}
		default:
			return model.UnknownAttributeError(k, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with the given overrides applied. The tag set
// and body are shared with the original, matching shallow copy semantics.
func (k *Keyword) Copy(overrides map[string]any) (*Keyword, error) {
	out := *k
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with the given overrides applied.
// Nothing is aliased with the original.
func (k *Keyword) DeepCopy(overrides map[string]any) (*Keyword, error) {
	out := *k
	out.StatusInfo = k.StatusInfo.deepCopy()
	out.Args = append([]string(nil), k.Args...)
	out.Assign = append([]string(nil), k.Assign...)
	out.Tags = k.Tags.DeepCopy()
	body, err := k.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if k.setup != nil {
		setup, err := k.setup.DeepCopy(nil)
		if err != nil {
			return nil, err
		}
		out.setup = setup
	}
	if k.teardown != nil {
		teardown, err := k.teardown.DeepCopy(nil)
		if err != nil {
			return nil, err
		}
		out.teardown = teardown
	}
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the keyword representation.
func (k *Keyword) String() string {
	return model.Repr("result.Keyword", []model.ReprField{
		{Name: "name", Value: k.Name},
		{Name: "owner", Value: k.Owner, OmitEmpty: true},
		{Name: "args", Value: k.Args, OmitEmpty: true},
		{Name: "assign", Value: k.Assign, OmitEmpty: true},
	})
}
