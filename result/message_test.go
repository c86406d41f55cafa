package result

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageDefaultsToInfo(t *testing.T) {
	msg := NewMessage("hello", "", false, nil)

	assert.Equal(t, LevelInfo, msg.Level)
}

func TestMessageToMap(t *testing.T) {
	ts := time.Date(2023, 1, 1, 12, 0, 0, 1000, time.UTC)
	msg := NewMessage("<b>hello</b>", LevelWarn, true, &ts)

	data := msg.ToMap()
	assert.Equal(t, "MESSAGE", data["type"])
	assert.Equal(t, "<b>hello</b>", data["message"])
	assert.Equal(t, "WARN", data["level"])
	assert.Equal(t, true, data["html"])
	assert.Equal(t, "2023-01-01T12:00:00.000001", data["timestamp"])
}

func TestMessageToMapOmitsDefaults(t *testing.T) {
	msg := NewMessage("hello", LevelInfo, false, nil)

	data := msg.ToMap()
	assert.NotContains(t, data, "html")
	assert.NotContains(t, data, "timestamp")
}

func TestMessageMapRoundTrip(t *testing.T) {
	ts := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := NewMessage("failure", LevelFail, false, &ts)

	restored, err := BodyItemFromMap(msg.ToMap())
	require.NoError(t, err)

	restoredMsg, ok := restored.(*Message)
	require.True(t, ok)
	assert.Equal(t, msg.Text, restoredMsg.Text)
	assert.Equal(t, msg.Level, restoredMsg.Level)
	require.NotNil(t, restoredMsg.Timestamp)
	assert.True(t, restoredMsg.Timestamp.Equal(ts))
}

func TestMessageConfigureFixedType(t *testing.T) {
	msg := NewMessage("hello", LevelInfo, false, nil)

	require.NoError(t, msg.Configure(map[string]any{"type": "MESSAGE"}))
	assert.Error(t, msg.Configure(map[string]any{"type": "KEYWORD"}))
}

func TestMessageCopy(t *testing.T) {
	msg := NewMessage("hello", LevelInfo, false, nil)
	copied, err := msg.Copy(map[string]any{"level": "ERROR"})
	require.NoError(t, err)

	assert.Equal(t, LevelError, copied.Level)
	assert.Equal(t, LevelInfo, msg.Level)
}

func TestMessageDeepCopyTimestampIndependent(t *testing.T) {
	ts := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := NewMessage("hello", LevelInfo, false, &ts)

	copied, err := msg.DeepCopy(nil)
	require.NoError(t, err)

	assert.NotSame(t, msg.Timestamp, copied.Timestamp)
	assert.True(t, copied.Timestamp.Equal(*msg.Timestamp))
}
