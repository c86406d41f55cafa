package result

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/aaltat/robotframework/metrics/prometheus"
	"github.com/aaltat/robotframework/model"
)

// JSONOptions controls JSON output formatting. The zero value produces
// compact output with UTF-8 text kept as is.
type JSONOptions struct {
	// EnsureASCII escapes every non-ASCII character as \uXXXX.
	EnsureASCII bool
	// Indent pretty-prints with the given number of spaces per level when
	// positive.
	Indent int
	// ItemSeparator goes between sequence items and object members.
	// Defaults to ",".
	ItemSeparator string
	// KeySeparator goes between object keys and values. Defaults to ":".
	KeySeparator string
}

func (o *JSONOptions) itemSep() string {
	if o != nil && o.ItemSeparator != "" {
		return o.ItemSeparator
	}
	return ","
}

func (o *JSONOptions) keySep() string {
	if o != nil && o.KeySeparator != "" {
		return o.KeySeparator
	}
	return ":"
}

func (o *JSONOptions) indent() int {
	if o == nil {
		return 0
	}
	return o.Indent
}

func (o *JSONOptions) ascii() bool {
	return o != nil && o.EnsureASCII
}

// ToJSON serializes any model object into a JSON string.
func ToJSON(obj model.ModelObject, opts *JSONOptions) (string, error) {
	var b strings.Builder
	if err := WriteJSON(&b, obj, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteJSON serializes any model object into the given writer.
func WriteJSON(w io.Writer, obj model.ModelObject, opts *JSONOptions) error {
	started := time.Now()
	enc := &jsonEncoder{w: w, opts: opts}
	err := enc.encode(obj.ToMap(), 0)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		prometheus.RecordSerialize("json", prometheus.StatusError, elapsed)
		return model.NewDataError("serializing '%s' object to JSON failed: %v", model.TypeName(obj), err)
	}
	prometheus.RecordSerialize("json", prometheus.StatusSuccess, elapsed)
	return nil
}

// WriteJSONFile serializes any model object into a UTF-8 encoded file.
func WriteJSONFile(path string, obj model.ModelObject, opts *JSONOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return model.NewDataError("opening JSON output file failed: %v", err)
	}
	defer f.Close()
	if err := WriteJSON(f, obj, opts); err != nil {
		return err
	}
	return f.Close()
}

// ResultFromJSON constructs a result from JSON data given as a string,
// bytes or reader.
func ResultFromJSON(source any) (*Result, error) {
	data, err := decodeJSON(source)
	if err != nil {
		return nil, err
	}
	return ResultFromMap(data)
}

// ResultFromJSONFile constructs a result from a UTF-8 encoded JSON file.
func ResultFromJSONFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.NewDataError("loading JSON data failed: %v", err)
	}
	defer f.Close()
	return ResultFromJSON(f)
}

// SuiteFromJSON constructs a suite from JSON data given as a string, bytes
// or reader.
func SuiteFromJSON(source any) (*Suite, error) {
	data, err := decodeJSON(source)
	if err != nil {
		return nil, err
	}
	return SuiteFromMap(data)
}

// BodyItemFromJSON constructs a body item from JSON data given as a string,
// bytes or reader. The item kind is dispatched on the 'type' discriminant.
func BodyItemFromJSON(source any) (BodyItem, error) {
	data, err := decodeJSON(source)
	if err != nil {
		return nil, err
	}
	return BodyItemFromMap(data)
}

func decodeJSON(source any) (map[string]any, error) {
	var raw []byte
	switch v := source.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return nil, model.NewDataError("loading JSON data failed: %v", err)
		}
		raw = data
	default:
		return nil, model.NewDataError("loading JSON data failed: invalid source type '%T'", source)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, model.NewDataError("loading JSON data failed: %v", err)
	}
	return data, nil
}

// jsonEncoder writes maps and sequences with deterministic key order and
// configurable separators, indentation and ASCII escaping.
type jsonEncoder struct {
	w    io.Writer
	opts *JSONOptions
}

func (e *jsonEncoder) encode(value any, depth int) error {
	switch v := value.(type) {
	case nil:
		return e.write("null")
	case bool:
		return e.write(strconv.FormatBool(v))
	case string:
		return e.write(encodeJSONString(v, e.opts.ascii()))
	case int:
		return e.write(strconv.Itoa(v))
	case int64:
		return e.write(strconv.FormatInt(v, 10))
	case float64:
		return e.write(formatJSONNumber(v))
	case map[string]any:
		return e.encodeMap(v, depth)
	case *model.Metadata:
		return e.encodeObject(v.Keys(), func(key string) any {
			value, _ := v.Get(key)
			return value
		}, depth)
	case *orderedmap.OrderedMap[string, string]:
		keys := make([]string, 0, v.Len())
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}
		return e.encodeObject(keys, func(key string) any {
			value, _ := v.Get(key)
			return value
		}, depth)
	case []any:
		return e.encodeSeq(v, depth)
	case []string:
		seq := make([]any, len(v))
		for i, s := range v {
			seq[i] = s
		}
		return e.encodeSeq(seq, depth)
	case json.Marshaler:
		raw, err := v.MarshalJSON()
		if err != nil {
			return err
		}
		return e.write(string(raw))
	}
	return fmt.Errorf("unsupported value type '%T'", value)
}

// encodeMap writes a plain map with deterministically sorted keys.
func (e *jsonEncoder) encodeMap(m map[string]any, depth int) error {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return e.encodeObject(keys, func(key string) any { return m[key] }, depth)
}

// encodeObject writes a JSON object with the given key order. Ordered
// mappings pass their insertion order here, so document order survives
// serialization.
func (e *jsonEncoder) encodeObject(keys []string, lookup func(string) any, depth int) error {
	if len(keys) == 0 {
		return e.write("{}")
	}
	if err := e.write("{"); err != nil {
		return err
	}
	for i, key := range keys {
		if i > 0 {
			if err := e.write(e.opts.itemSep()); err != nil {
				return err
			}
		}
		if err := e.newlineIndent(depth + 1); err != nil {
			return err
		}
		if err := e.write(encodeJSONString(key, e.opts.ascii()) + e.opts.keySep()); err != nil {
			return err
		}
		if e.opts.indent() > 0 {
			if err := e.write(" "); err != nil {
				return err
			}
		}
		if err := e.encode(lookup(key), depth+1); err != nil {
			return err
		}
	}
	if err := e.newlineIndent(depth); err != nil {
		return err
	}
	return e.write("}")
}

func (e *jsonEncoder) encodeSeq(seq []any, depth int) error {
	if len(seq) == 0 {
		return e.write("[]")
	}
	if err := e.write("["); err != nil {
		return err
	}
	for i, item := range seq {
		if i > 0 {
			if err := e.write(e.opts.itemSep()); err != nil {
				return err
			}
		}
		if err := e.newlineIndent(depth + 1); err != nil {
			return err
		}
		if err := e.encode(item, depth+1); err != nil {
			return err
		}
	}
	if err := e.newlineIndent(depth); err != nil {
		return err
	}
	return e.write("]")
}

func (e *jsonEncoder) newlineIndent(depth int) error {
	if e.opts.indent() <= 0 {
		return nil
	}
	return e.write("\n" + strings.Repeat(" ", e.opts.indent()*depth))
}

func (e *jsonEncoder) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func formatJSONNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func encodeJSONString(s string, ensureASCII bool) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(&b, `\u%04x`, r)
			case r > 0x7f && ensureASCII:
				if r > 0xffff {
					r1, r2 := utf16.EncodeRune(r)
					fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
				} else {
					fmt.Fprintf(&b, `\u%04x`, r)
				}
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
