package result

import (
	"time"

	"github.com/aaltat/robotframework/model"
)

// BodyItem is implemented by every node kind that can appear inside the body
// of a test, keyword or control-flow block.
type BodyItem interface {
	model.ModelObject
}

// Body is an ordered sequence of body items. All container nodes expose the
// same body construction capability set, so handler logic works identically
// whether the parent is a test, a keyword or a nested block.
type Body struct {
	items []BodyItem
}

// NewBody creates an empty body.
func NewBody() *Body {
	return &Body{}
}

// Items returns the body items in order. The returned slice is the body's
// own storage; callers must not reorder it concurrently with a parse.
func (b *Body) Items() []BodyItem {
	return b.items
}

// Len returns the number of items in the body.
func (b *Body) Len() int {
	return len(b.items)
}

// Append adds an already constructed item to the body.
func (b *Body) Append(item BodyItem) {
	b.items = append(b.items, item)
}

// CreateKeyword appends and returns a new keyword.
func (b *Body) CreateKeyword(name, owner, sourceName string) *Keyword {
	kw := NewKeyword(name, owner, sourceName)
	b.Append(kw)
	return kw
}

// CreateFor appends and returns a new FOR block.
func (b *Body) CreateFor(flavor, start, mode, fill string) *For {
	f := NewFor(flavor, start, mode, fill)
	b.Append(f)
	return f
}

// CreateWhile appends and returns a new WHILE block.
func (b *Body) CreateWhile(condition, limit, onLimit, onLimitMessage string) *While {
	w := NewWhile(condition, limit, onLimit, onLimitMessage)
	b.Append(w)
	return w
}

// CreateIteration appends and returns a new loop iteration.
func (b *Body) CreateIteration() *Iteration {
	it := NewIteration()
	b.Append(it)
	return it
}

// CreateGroup appends and returns a new GROUP block.
func (b *Body) CreateGroup(name string) *Group {
	g := NewGroup(name)
	b.Append(g)
	return g
}

// CreateIf appends and returns a new IF/ELSE container.
func (b *Body) CreateIf() *If {
	i := NewIf()
	b.Append(i)
	return i
}

// CreateTry appends and returns a new TRY/EXCEPT container.
func (b *Body) CreateTry() *Try {
	t := NewTry()
	b.Append(t)
	return t
}

// CreateBranch appends and returns a new branch configured from the given
// attributes. Branches are created only inside IF/ELSE and TRY/EXCEPT
// containers.
func (b *Body) CreateBranch(attrs map[string]any) (*Branch, error) {
	branch := NewBranch("")
	if err := branch.Configure(attrs); err != nil {
		return nil, err
	}
	b.Append(branch)
	return branch, nil
}

// CreateVar appends and returns a new VAR assignment.
func (b *Body) CreateVar(name, scope string, separator *string) *Var {
	v := NewVar(name, scope, separator)
	b.Append(v)
	return v
}

// CreateReturn appends and returns a new RETURN node.
func (b *Body) CreateReturn() *Return {
	r := NewReturn()
	b.Append(r)
	return r
}

// CreateContinue appends and returns a new CONTINUE node.
func (b *Body) CreateContinue() *Continue {
	c := NewContinue()
	b.Append(c)
	return c
}

// CreateBreak appends and returns a new BREAK node.
func (b *Body) CreateBreak() *Break {
	br := NewBreak()
	b.Append(br)
	return br
}

// CreateError appends and returns a new ERROR node.
func (b *Body) CreateError() *Error {
	e := NewError()
	b.Append(e)
	return e
}

// CreateMessage appends and returns a new log message.
func (b *Body) CreateMessage(text string, level MessageLevel, html bool, timestamp *time.Time) *Message {
	msg := NewMessage(text, level, html, timestamp)
	b.Append(msg)
	return msg
}

// ToMaps serializes the body into an ordered sequence of item maps.
func (b *Body) ToMaps() []any {
	out := make([]any, 0, len(b.items))
	for _, item := range b.items {
		out = append(out, item.ToMap())
	}
	return out
}

// DeepCopy returns a recursive copy of the body.
func (b *Body) DeepCopy() (*Body, error) {
	out := NewBody()
	for _, item := range b.items {
		copied, err := deepCopyItem(item)
		if err != nil {
			return nil, err
		}
		out.Append(copied)
	}
	return out, nil
}

// configureFrom replaces the body content from a configuration value, which
// must be a sequence of item maps carrying type discriminants.
func (b *Body) configureFrom(owner any, name string, value any) error {
	items, err := itemMaps(owner, name, value)
	if err != nil {
		return err
	}
	b.items = nil
	for _, data := range items {
		item, err := BodyItemFromMap(data)
		if err != nil {
			return err
		}
		b.Append(item)
	}
	return nil
}

func itemMaps(owner any, name string, value any) ([]map[string]any, error) {
	seq, ok := value.([]any)
	if !ok {
		if typed, ok := value.([]map[string]any); ok {
			return typed, nil
		}
		return nil, model.NewDataError("'%s' object attribute '%s' is 'list', got '%T'", model.TypeName(owner), name, value)
	}
	out := make([]map[string]any, 0, len(seq))
	for _, item := range seq {
		data, ok := item.(map[string]any)
		if !ok {
			return nil, model.NewDataError("'%s' object attribute '%s' items must be mappings, got '%T'", model.TypeName(owner), name, item)
		}
		out = append(out, data)
	}
	return out, nil
}

// BodyItemFromMap constructs a body item from its serialized map. The item
// kind is dispatched on the 'type' discriminant; a missing type means a
// plain keyword. Unknown discriminants fail with a DataError.
func BodyItemFromMap(data map[string]any) (BodyItem, error) {
	itemType := model.KeywordType
	if raw, ok := data["type"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, model.NewDataError("body item 'type' must be a string, got '%T'", raw)
		}
		itemType = model.BodyItemType(s)
	}
	var item BodyItem
	switch itemType {
	case model.KeywordType, model.SetupType, model.TeardownType:
		item = newKeywordWithType(itemType)
	case model.ForType:
		item = NewFor("", "", "", "")
	case model.WhileType:
		item = NewWhile("", "", "", "")
	case model.IterationType:
		item = NewIteration()
	case model.GroupType:
		item = NewGroup("")
	case model.IfElseType:
		item = NewIf()
	case model.TryExceptType:
		item = NewTry()
	case model.IfBranchType, model.ElseIfType, model.ElseType,
		model.TryBranchType, model.ExceptType, model.FinallyType:
		item = NewBranch(itemType)
	case model.VarType:
		item = NewVar("", "", nil)
	case model.ReturnType:
		item = NewReturn()
	case model.ContinueType:
		item = NewContinue()
	case model.BreakType:
		item = NewBreak()
	case model.ErrorType:
		item = NewError()
	case model.MessageType:
		item = NewMessage("", LevelInfo, false, nil)
	default:
		return nil, model.NewDataError("unsupported body item type '%s'", itemType)
	}
	if err := item.Configure(data); err != nil {
		return nil, err
	}
	return item, nil
}

func deepCopyItem(item BodyItem) (BodyItem, error) {
	switch v := item.(type) {
	case *Keyword:
		return v.DeepCopy(nil)
	case *For:
		return v.DeepCopy(nil)
	case *While:
		return v.DeepCopy(nil)
	case *Iteration:
		return v.DeepCopy(nil)
	case *Group:
		return v.DeepCopy(nil)
	case *If:
		return v.DeepCopy(nil)
	case *Try:
		return v.DeepCopy(nil)
	case *Branch:
		return v.DeepCopy(nil)
	case *Var:
		return v.DeepCopy(nil)
	case *Return:
		return v.DeepCopy(nil)
	case *Continue:
		return v.DeepCopy(nil)
	case *Break:
		return v.DeepCopy(nil)
	case *Error:
		return v.DeepCopy(nil)
	case *Message:
		return v.DeepCopy(nil)
	}
	return nil, model.NewDataError("cannot copy body item of type '%s'", model.TypeName(item))
}
