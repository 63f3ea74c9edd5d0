package wire

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/tsawler/oxa/violation"
)

// Reader reads the fields of one JSON object. The first shape error is kept
// and every later call becomes a no-op, so decoders can read all fields and
// check Err once.
type Reader struct {
	path   string
	fields map[string]*Node
	used   map[string]bool
	err    *violation.Violation
}

// Open parses data as a JSON object located at path.
func Open(data []byte, path string) (*Reader, error) {
	n, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	return OpenNode(n, path)
}

// OpenNode reads an already parsed object located at path.
func OpenNode(n *Node, path string) (*Reader, error) {
	if n == nil || n.kind != kindObject {
		return nil, violation.Schema(path, "expected an object, got %s", describeNode(n))
	}
	return &Reader{path: path, fields: n.fields, used: make(map[string]bool)}, nil
}

// Path returns the path of a field of this object.
func (r *Reader) Path(key string) string {
	return Key(r.path, key)
}

// Err returns the first shape error, if any.
func (r *Reader) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Fail records a schema violation at the given field.
func (r *Reader) Fail(key, format string, args ...any) {
	if r.err == nil {
		r.err = violation.Schema(r.Path(key), format, args...)
	}
}

// Failed reports whether an error has been recorded.
func (r *Reader) Failed() bool {
	return r.err != nil
}

// Has reports whether the field is present (null counts as absent).
func (r *Reader) Has(key string) bool {
	n, ok := r.fields[key]
	return ok && !n.IsNull()
}

// Node returns the parsed field value.
func (r *Reader) Node(key string, required bool) (*Node, bool) {
	if r.err != nil {
		return nil, false
	}
	r.used[key] = true
	n, ok := r.fields[key]
	if !ok || n.IsNull() {
		if required {
			r.Fail(key, "required field missing")
		}
		return nil, false
	}
	return n, true
}

// Raw returns the raw field value.
func (r *Reader) Raw(key string, required bool) (json.RawMessage, bool) {
	n, ok := r.Node(key, required)
	if !ok {
		return nil, false
	}
	return n.Raw, true
}

// Type reads the "type" discriminant and checks it against want.
func (r *Reader) Type(want string) {
	got := r.String("type", true)
	if r.err == nil && got != want {
		r.Fail("type", "expected type %q, got %q", want, got)
	}
}

// String reads a string field; absent optional fields yield "".
func (r *Reader) String(key string, required bool) string {
	n, ok := r.Node(key, required)
	if !ok {
		return ""
	}
	if n.kind != kindString {
		r.Fail(key, "expected a string, got %s", describeNode(n))
		return ""
	}
	return n.str
}

// Strings reads an array of strings. An absent field yields nil; a present
// empty array yields a non-nil empty slice.
func (r *Reader) Strings(key string, required bool) []string {
	n, ok := r.Node(key, required)
	if !ok {
		return nil
	}
	if n.kind != kindArray {
		r.Fail(key, "expected an array of strings, got %s", describeNode(n))
		return nil
	}
	ss := make([]string, 0, len(n.items))
	for i, item := range n.items {
		if item.kind != kindString {
			r.err = violation.Schema(Index(r.Path(key), i), "expected a string, got %s", describeNode(item))
			return nil
		}
		ss = append(ss, item.str)
	}
	return ss
}

// Int reads an integral number.
func (r *Reader) Int(key string, required bool) (int, bool) {
	f, ok := r.number(key, required)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		r.Fail(key, "expected an integer, got %v", f)
		return 0, false
	}
	return int(f), true
}

// Float reads a number; absent optional fields yield nil.
func (r *Reader) Float(key string, required bool) *float64 {
	f, ok := r.number(key, required)
	if !ok {
		return nil
	}
	return &f
}

func (r *Reader) number(key string, required bool) (float64, bool) {
	n, ok := r.Node(key, required)
	if !ok {
		return 0, false
	}
	if n.kind != kindNumber {
		r.Fail(key, "expected a number, got %s", describeNode(n))
		return 0, false
	}
	f, err := strconv.ParseFloat(n.str, 64)
	if err != nil {
		r.Fail(key, "number %s out of range", n.str)
		return 0, false
	}
	return f, true
}

// Array reads an array field as parsed elements. present is false when the
// field is absent.
func (r *Reader) Array(key string, required bool) (items []*Node, present bool) {
	n, ok := r.Node(key, required)
	if !ok {
		return nil, false
	}
	if n.kind != kindArray {
		r.Fail(key, "expected an array, got %s", describeNode(n))
		return nil, false
	}
	return n.items, true
}

// Map reads an open object field, compacting every value. Absent fields and
// empty objects yield nil.
func (r *Reader) Map(key string, required bool) map[string]json.RawMessage {
	n, ok := r.Node(key, required)
	if !ok {
		return nil
	}
	if n.kind != kindObject {
		r.Fail(key, "expected an object, got %s", describeNode(n))
		return nil
	}
	if len(n.fields) == 0 {
		return nil
	}
	m := make(map[string]json.RawMessage, len(n.fields))
	for k, v := range n.fields {
		m[k] = Compact(v.Raw)
	}
	return m
}

// Rest returns the fields not read so far, compacted, or nil if none remain.
// Use it for open records.
func (r *Reader) Rest() map[string]json.RawMessage {
	var rest map[string]json.RawMessage
	for k, v := range r.fields {
		if r.used[k] {
			continue
		}
		if rest == nil {
			rest = make(map[string]json.RawMessage)
		}
		rest[k] = Compact(v.Raw)
	}
	return rest
}

// Close fails on any field not read so far. Use it for closed shapes.
func (r *Reader) Close() error {
	if r.err != nil {
		return r.err
	}
	for _, k := range sortedKeys(r.fields) {
		if !r.used[k] {
			r.Fail(k, "unknown field")
			break
		}
	}
	return r.Err()
}

// describe names the JSON kind of a raw value for error messages.
func describe(raw []byte) string {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return "nothing"
	}
	switch b[0] {
	case '{':
		return "an object"
	case '[':
		return "an array"
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	case 'n':
		return "null"
	default:
		return "a number"
	}
}

// SetErr records an error produced by a nested decoder. Violations keep
// their own path; other errors are reported at this object.
func (r *Reader) SetErr(err error) {
	if r.err != nil || err == nil {
		return
	}
	if v, ok := err.(*violation.Violation); ok {
		r.err = v
		return
	}
	r.err = violation.Schema(r.path, "%v", err)
}

// List decodes an array field element by element. A missing optional field
// yields nil. An empty array yields nil for required fields and an empty,
// non-nil slice for optional ones, so absent and empty stay distinguishable
// where the schema allows both.
func List[T any](r *Reader, key string, required bool, dec func(n *Node, path string) (T, error)) []T {
	items, present := r.Array(key, required)
	if !present {
		return nil
	}
	if len(items) == 0 {
		if required {
			return nil
		}
		return []T{}
	}
	out := make([]T, 0, len(items))
	base := r.Path(key)
	for i, item := range items {
		v, err := dec(item, Index(base, i))
		if err != nil {
			r.SetErr(err)
			return nil
		}
		out = append(out, v)
	}
	return out
}

// One decodes a single nested field.
func One[T any](r *Reader, key string, required bool, dec func(n *Node, path string) (T, error)) (T, bool) {
	var zero T
	n, ok := r.Node(key, required)
	if !ok {
		return zero, false
	}
	v, err := dec(n, r.Path(key))
	if err != nil {
		r.SetErr(err)
		return zero, false
	}
	return v, true
}

// Value returns a field that may hold any JSON value, null included.
func (r *Reader) Value(key string, required bool) (json.RawMessage, bool) {
	if r.err != nil {
		return nil, false
	}
	r.used[key] = true
	n, ok := r.fields[key]
	if !ok {
		if required {
			r.Fail(key, "required field missing")
		}
		return nil, false
	}
	return n.Raw, true
}
