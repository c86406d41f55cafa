package result

import (
	"github.com/aaltat/robotframework/model"
)

// Test is a single executed test case.
type Test struct {
	Name    string
	LineNo  int
	Doc     string
	Tags    *model.Tags
	Timeout string
	Body    *Body
	StatusInfo
	setup    *Keyword
	teardown *Keyword
	// parent is a weak back-reference used only for full name computation.
	parent *Suite
}

// NewTest creates a test case.
func NewTest(name string, lineno int) *Test {
	return &Test{
		Name:       name,
		LineNo:     lineno,
		Tags:       model.NewTags(),
		Body:       NewBody(),
		StatusInfo: newStatusInfo(),
	}
}

// Type returns the TEST discriminant.
func (t *Test) Type() model.BodyItemType {
	return model.TestType
}

// Setup returns the setup fixture, materializing an empty one on first use.
func (t *Test) Setup() *Keyword {
	if t.setup == nil {
		t.setup = newKeywordWithType(model.SetupType)
	}
	return t.setup
}

// HasSetup reports whether a named setup fixture exists.
func (t *Test) HasSetup() bool {
	return t.setup != nil && t.setup.HasName()
}

// Teardown returns the teardown fixture, materializing an empty one on
// first use.
func (t *Test) Teardown() *Keyword {
	if t.teardown == nil {
		t.teardown = newKeywordWithType(model.TeardownType)
	}
	return t.teardown
}

// HasTeardown reports whether a named teardown fixture exists.
func (t *Test) HasTeardown() bool {
	return t.teardown != nil && t.teardown.HasName()
}

// Parent returns the owning suite, or nil for a detached test.
func (t *Test) Parent() *Suite {
	return t.parent
}

// FullName returns the test name prefixed with the full name of its parent
// suite.
func (t *Test) FullName() string {
	if t.parent != nil && t.parent.FullName() != "" {
		return t.parent.FullName() + "." + t.Name
	}
	return t.Name
}

// ToMap serializes the test.
func (t *Test) ToMap() map[string]any {
	out := map[string]any{"name": t.Name}
	if t.LineNo > 0 {
		out["lineno"] = t.LineNo
	}
	if t.Doc != "" {
		out["doc"] = t.Doc
	}
	if !t.Tags.Empty() {
		out["tags"] = t.Tags.List()
	}
	if t.Timeout != "" {
		out["timeout"] = t.Timeout
	}
	if t.HasSetup() {
		out["setup"] = t.setup.ToMap()
	}
	if t.HasTeardown() {
		out["teardown"] = t.teardown.ToMap()
	}
	if t.Body.Len() > 0 {
		out["body"] = t.Body.ToMaps()
	}
	t.statusToMap(out)
	return out
}

// Configure applies the given attributes to the test.
func (t *Test) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		if handled, err := t.configureStatus(t, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "name":
			v, err := model.AsString(t, name, value)
			if err != nil {
				return err
			}
			t.Name = v
		case "lineno":
			v, err := model.AsInt(t, name, value)
			if err != nil {
				return err
			}
			t.LineNo = v
		case "doc":
			v, err := model.AsString(t, name, value)
			if err != nil {
				return err
			}
			t.Doc = v
		case "tags":
			v, err := model.AsStringSlice(t, name, value)
			if err != nil {
				return err
			}
			t.Tags.Set(v)
		case "timeout":
			v, err := model.AsString(t, name, value)
			if err != nil {
				return err
			}
			t.Timeout = v
		case "setup":
			if err := configureFixture(t.Setup(), t, name, value); err != nil {
				return err
			}
		case "teardown":
			if err := configureFixture(t.Teardown(), t, name, value); err != nil {
				return err
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

// Copy returns a shallow copy with overrides applied. The tag set, fixtures
// and body are shared with the original.
func (t *Test) Copy(overrides map[string]any) (*Test, error) {
	out := *t
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied. The parent
// back-reference is dropped; the copy is detached.
func (t *Test) DeepCopy(overrides map[string]any) (*Test, error) {
	out := *t
	out.parent = nil
	out.StatusInfo = t.StatusInfo.deepCopy()
	out.Tags = t.Tags.DeepCopy()
	body, err := t.Body.DeepCopy()
	if err != nil {
		return nil, err
	}
	out.Body = body
	if t.setup != nil {
		setup, err := t.setup.DeepCopy(nil)
		if err != nil {
			return nil, err
		}
		out.setup = setup
	}
	if t.teardown != nil {
		teardown, err := t.teardown.DeepCopy(nil)
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

// String returns the test representation.
func (t *Test) String() string {
	return model.Repr("result.Test", []model.ReprField{
		{Name: "name", Value: t.Name},
	})
}

// configureFixture applies a setup or teardown configuration value, which
// must be an attribute map for the fixture keyword.
func configureFixture(fixture *Keyword, owner any, name string, value any) error {
	data, ok := value.(map[string]any)
	if !ok {
		return model.NewDataError("'%s' object attribute '%s' is 'mapping', got '%T'", model.TypeName(owner), name, value)
	}
	return fixture.Configure(data)
}
