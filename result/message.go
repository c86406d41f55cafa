package result

import (
	"time"

	"github.com/aaltat/robotframework/model"
)

// MessageLevel enumerates log message severities.
type MessageLevel string

const (
	LevelTrace MessageLevel = "TRACE"
	LevelDebug MessageLevel = "DEBUG"
	LevelInfo  MessageLevel = "INFO"
	LevelWarn  MessageLevel = "WARN"
	LevelError MessageLevel = "ERROR"
	LevelFail  MessageLevel = "FAIL"
	LevelSkip  MessageLevel = "SKIP"
)

// Message is a single log message. It is a leaf node: no body, no children.
type Message struct {
	Text      string
	Level     MessageLevel
	HTML      bool
	Timestamp *time.Time
}

// NewMessage creates a message with the given content.
func NewMessage(text string, level MessageLevel, html bool, timestamp *time.Time) *Message {
	if level == "" {
		level = LevelInfo
	}
	return &Message{Text: text, Level: level, HTML: html, Timestamp: timestamp}
}

// Type returns the MESSAGE discriminant.
func (m *Message) Type() model.BodyItemType {
	return model.MessageType
}

// ToMap serializes the message.
func (m *Message) ToMap() map[string]any {
	out := map[string]any{
		"type":    string(model.MessageType),
		"message": m.Text,
		"level":   string(m.Level),
	}
	if m.HTML {
		out["html"] = true
	}
	if m.Timestamp != nil {
		out["timestamp"] = m.Timestamp.Format(timeFormat)
	}
	return out
}

// Configure applies the given attributes to the message.
func (m *Message) Configure(attrs map[string]any) error {
	for name, value := range attrs {
		switch name {
		case "type":
			if !model.SameType(model.MessageType, value) {
				return model.FixedAttributeError(m, name)
			}
		case "message":
			v, err := model.AsString(m, name, value)
			if err != nil {
				return err
			}
			m.Text = v
		case "level":
			v, err := model.AsString(m, name, value)
			if err != nil {
				return err
			}
			m.Level = MessageLevel(v)
		case "html":
			v, err := model.AsBool(m, name, value)
			if err != nil {
				return err
			}
			m.HTML = v
		case "timestamp":
			t, err := timeAttr(m, name, value)
			if err != nil {
				return err
			}
			m.Timestamp = t
		default:
			return model.UnknownAttributeError(m, name)
		}
	}
	return nil
}

// Copy returns a shallow copy with the given attribute overrides applied.
func (m *Message) Copy(overrides map[string]any) (*Message, error) {
	out := *m
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeepCopy returns an independent copy with the given overrides applied.
func (m *Message) DeepCopy(overrides map[string]any) (*Message, error) {
	out := *m
	if m.Timestamp != nil {
		t := *m.Timestamp
		out.Timestamp = &t
	}
	if err := out.Configure(overrides); err != nil {
		return nil, err
	}
	return &out, nil
}

// String returns the message representation.
func (m *Message) String() string {
	return model.Repr("result.Message", []model.ReprField{
		{Name: "message", Value: m.Text},
		{Name: "level", Value: string(m.Level)},
	})
}
