package result

import (
	"github.com/aaltat/robotframework/model"
)

// Suite is an executed test suite containing child suites and tests. The
// document grammar decides whether a suite holds suites or tests; the model
// itself does not forbid mixing them.
type Suite struct {
	Name     string
	Source   string
	RPA      bool
	Doc      string
	Metadata *model.Metadata
	Suites   []*Suite
	Tests    []*Test
	StatusInfo
	setup    *Keyword
	teardown *Keyword
	// parent is a weak back-reference used only for full name computation,
	// never for ownership.
	parent *Suite
}

// NewSuite creates a suite.
func NewSuite(name string) *Suite {
	return &Suite{
		Name:       name,
		Metadata:   model.NewMetadata(),
		StatusInfo: newStatusInfo(),
	}
}

// Type returns the SUITE discriminant.
func (s *Suite) Type() model.BodyItemType {
	return model.SuiteType
}

// CreateSuite appends and returns a new child suite.
func (s *Suite) CreateSuite(name, source string, rpa bool) *Suite {
	child := NewSuite(name)
	child.Source = source
	child.RPA = rpa
	child.parent = s
	s.Suites = append(s.Suites, child)
	return child
}

// CreateTest appends and returns a new test.
func (s *Suite) CreateTest(name string, lineno int) *Test {
	test := NewTest(name, lineno)
	test.parent = s
	s.Tests = append(s.Tests, test)
	return test
}

// Setup returns the setup fixture, materializing an empty one on first use.
func (s *Suite) Setup() *Keyword {
	if s.setup == nil {
		s.setup = newKeywordWithType(model.SetupType)
	}
	return s.setup
}

// HasSetup reports whether a named setup fixture exists.
func (s *Suite) HasSetup() bool {
	return s.setup != nil && s.setup.HasName()
}

// Teardown returns the teardown fixture, materializing an empty one on
// first use.
func (s *Suite) Teardown() *Keyword {
	if s.teardown == nil {
		s.teardown = newKeywordWithType(model.TeardownType)
	}
	return s.teardown
}

// HasTeardown reports whether a named teardown fixture exists.
func (s *Suite) HasTeardown() bool {
	return s.teardown != nil && s.teardown.HasName()
}

// Parent returns the parent suite, or nil for the top-level suite.
func (s *Suite) Parent() *Suite {
	return s.parent
}

// FullName returns the suite name prefixed with the names of its parents,
// e.g. "Root.Sub.Leaf".
func (s *Suite) FullName() string {
	if s.parent != nil && s.parent.FullName() != "" {
		return s.parent.FullName() + "." + s.Name
	}
	return s.Name
}

// TestCount returns the number of tests in this suite and its child suites.
func (s *Suite) TestCount() int {
	count := len(s.Tests)
	for _, child := range s.Suites {
		count += child.TestCount()
	}
	return count
}

// ToMap serializes the suite.
func (s *Suite) ToMap() map[string]any {
	out := map[string]any{"name": s.Name}
	if s.Source != "" {
		out["source"] = s.Source
	}
	if s.RPA {
		out["rpa"] = true
	}
	if s.Doc != "" {
		out["doc"] = s.Doc
	}
	if s.Metadata.Len() > 0 {
		// The metadata object keeps insertion order, so serialization
		// emits entries in document order instead of sorted order.
		out["metadata"] = s.Metadata
	}
	if s.HasSetup() {
		out["setup"] = s.setup.ToMap()
	}
	if s.HasTeardown() {
		out["teardown"] = s.teardown.ToMap()
	}
	if len(s.Suites) > 0 {
		suites := make([]any, 0, len(s.Suites))
		for _, child := range s.Suites {
			suites = append(suites, child.ToMap())
		}
		out["suites"] = suites
	}
	if len(s.Tests) > 0 {
		tests := make([]any, 0, len(s.Tests))
		for _, test := range s.Tests {
			tests = append(tests, test.ToMap())
		}
		out["tests"] = tests
	}
	s.statusToMap(out)
	return out
}

// Configure applies the given attributes to the suite.
func (s *Suite) Configure(attrs map[string]any) error {
	// The RPA mode is applied before anything else so that nested suites
	// inherit the configured value regardless of map iteration order.
	if raw, ok := attrs["rpa"]; ok {
		v, err := model.AsBool(s, "rpa", raw)
		if err != nil {
			return err
		}
		s.RPA = v
	}
	for name, value := range attrs {
		if name == "rpa" {
			continue
		}
		if handled, err := s.configureStatus(s, name, value); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case "name":
			v, err := model.AsString(s, name, value)
			if err != nil {
				return err
			}
			s.Name = v
		case "source":
			v, err := model.AsString(s, name, value)
			if err != nil {
				return err
			}
			s.Source = v
		case "doc":
			v, err := model.AsString(s, name, value)
			if err != nil {
				return err
			}
			s.Doc = v
		case "metadata":
			switch data := value.(type) {
			case *model.Metadata:
				s.Metadata = data.DeepCopy()
			case map[string]any:
				s.Metadata = model.NewMetadata()
				for key, raw := range data {
					v, err := model.AsString(s, name, raw)
					if err != nil {
						return err
					}
					s.Metadata.Set(key, v)
				}
			default:
				return model.NewDataError("'%s' object attribute '%s' is 'mapping', got '%T'", model.TypeName(s), name, value)
			}
		case "setup":
			if err := configureFixture(s.Setup(), s, name, value); err != nil {
				return err
			}
		case "teardown":
			if err := configureFixture(s.Teardown(), s, name, value); err != nil {
				return err
			}
		case "suites":
			items, err := itemMaps(s, name, value)
			if err != nil {
				return err
			}
			s.Suites = nil
			for _, data := range items {
				child := s.CreateSuite("", "", s.RPA)
				if err := child.Configure(data); err != nil {
					return err
				}
			}
		case "tests":
			items, err := itemMaps(s, name, value)
			if err != nil {
				return err
			}
			s.Tests = nil
			for _, data := range items {
				test := s.CreateTest("", 0)
				if err := test.Configure(data); err != nil {
					return err
				}
			}
		default:
			return model.UnknownAttributeError(s, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with overrides applied. Child collections,
// metadata and fixtures are shared with the original.
func (s *Suite) Copy(overrides map[string]any) (*Suite, error) {
	out := *s
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns a recursive copy with overrides applied. The copy is
// detached from its parent.
func (s *Suite) DeepCopy(overrides map[string]any) (*Suite, error) {
	out := *s
	out.parent = nil
	out.StatusInfo = s.StatusInfo.deepCopy()
	out.Metadata = s.Metadata.DeepCopy()
	out.Suites = nil
	for _, child := range s.Suites {
		copied, err := child.DeepCopy(nil)
		if err != nil {
			return nil, err
		}
		copied.parent = &out
		out.Suites = append(out.Suites, copied)
	}
	out.Tests = nil
	for _, test := range s.Tests {
		copied, err := test.DeepCopy(nil)
		if err != nil {
			return nil, err
		}
		copied.parent = &out
		out.Tests = append(out.Tests, copied)
	}
	if s.setup != nil {
		setup, err := s.setup.DeepCopy(nil)
		if err != nil {
			return nil, err
		}
		out.setup = setup
	}
	if s.teardown != nil {
		teardown, err := s.teardown.DeepCopy(nil)
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

// SuiteFromMap constructs a suite from its serialized map.
func SuiteFromMap(data map[string]any) (*Suite, error) {
	suite := NewSuite("")
	if err := suite.Configure(data); err != nil {
		return nil, err
	}
	return suite, nil
}

// String returns the suite representation.
func (s *Suite) String() string {
	return model.Repr("result.Suite", []model.ReprField{
		{Name: "name", Value: s.Name},
	})
}
