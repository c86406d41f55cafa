package result

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordFullName(t *testing.T) {
	kw := NewKeyword("Log", "BuiltIn", "")
	assert.Equal(t, "BuiltIn.Log", kw.FullName())

	kw = NewKeyword("Local Keyword", "", "")
	assert.Equal(t, "Local Keyword", kw.FullName())
}

func TestKeywordType(t *testing.T) {
	kw := NewKeyword("Log", "", "")
	assert.Equal(t, "KEYWORD", string(kw.Type()))
}

func TestKeywordToMap(t *testing.T) {
	kw := NewKeyword("Log", "BuiltIn", "Original Name")
	kw.Doc = "Logs the message."
	kw.AddArgs("hello", "WARN")
	kw.AddAssign("${result}")
	kw.Tags.Add("logging")
	kw.Timeout = "10 seconds"
	kw.Status = StatusPass

	data := kw.ToMap()
	assert.Equal(t, "KEYWORD", data["type"])
	assert.Equal(t, "Log", data["name"])
	assert.Equal(t, "BuiltIn", data["owner"])
	assert.Equal(t, "Original Name", data["source_name"])
	assert.Equal(t, []string{"hello", "WARN"}, data["args"])
	assert.Equal(t, []string{"${result}"}, data["assign"])
	assert.Equal(t, []string{"logging"}, data["tags"])
	assert.Equal(t, "10 seconds", data["timeout"])
	assert.Equal(t, "PASS", data["status"])
}

func TestKeywordMapRoundTrip(t *testing.T) {
	kw := NewKeyword("Run Process", "Process", "")
	kw.AddArgs("ls", "-la")
	kw.Setup().Name = "Prepare"
	kw.Teardown().Name = "Cleanup"
	kw.Body.CreateMessage("output", LevelInfo, false, nil)
	kw.Status = StatusPass

	restored, err := BodyItemFromMap(kw.ToMap())
	require.NoError(t, err)

	if diff := cmp.Diff(kw.ToMap(), restored.ToMap()); diff != "" {
		t.Errorf("round trip mismatch (-original +restored):\n%s", diff)
	}
}

func TestKeywordConfigureFixedType(t *testing.T) {
	kw := newKeywordWithType("SETUP")

	require.NoError(t, kw.Configure(map[string]any{"type": "SETUP"}))

	err := kw.Configure(map[string]any{"type": "TEARDOWN"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setting attribute 'type' of 'Keyword' object failed")
}

func TestKeywordConfigureUnknownAttribute(t *testing.T) {
	kw := NewKeyword("Log", "", "")
	err := kw.Configure(map[string]any{"no_such": true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "'Keyword' object does not have attribute 'no_such'")
}

func TestKeywordCopySharesBody(t *testing.T) {
	kw := NewKeyword("Log", "BuiltIn", "")
	kw.Body.CreateMessage("hello", LevelInfo, false, nil)

	copied, err := kw.Copy(map[string]any{"name": "Renamed"})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", copied.Name)
	assert.Equal(t, "Log", kw.Name)
	assert.Same(t, kw.Body, copied.Body)
	assert.Same(t, kw.Tags, copied.Tags)
}

func TestKeywordDeepCopyIsIndependent(t *testing.T) {
	kw := NewKeyword("Log", "BuiltIn", "")
	kw.AddArgs("one")
	kw.Tags.Add("smoke")
	kw.Body.CreateMessage("hello", LevelInfo, false, nil)

	copied, err := kw.DeepCopy(nil)
	require.NoError(t, err)

	copied.AddArgs("two")
	copied.Tags.Add("extra")
	copied.Body.CreateMessage("more", LevelInfo, false, nil)

	assert.Equal(t, []string{"one"}, kw.Args)
	assert.Equal(t, []string{"smoke"}, kw.Tags.List())
	assert.Equal(t, 1, kw.Body.Len())
	assert.Equal(t, 2, copied.Body.Len())
}

func TestKeywordCopyWithBadOverrideFails(t *testing.T) {
	kw := NewKeyword("Log", "", "")
	_, err := kw.Copy(map[string]any{"name": 42})

	assert.Error(t, err)
}
