// Package wire holds the JSON plumbing shared by the model and scholarly
// codecs: an object writer that emits declared fields in a fixed order, and a
// path-aware reader that turns shape errors into SchemaViolations.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Marshal encodes v without HTML escaping and without a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Compact returns raw with insignificant whitespace removed. Invalid JSON is
// returned unchanged so the caller's encoder reports it.
func Compact(raw []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return json.RawMessage(raw)
	}
	return json.RawMessage(buf.Bytes())
}

// Key appends a field name to a path.
func Key(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Index appends an array index to a path.
func Index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// Object writes a JSON object field by field, in call order.
type Object struct {
	buf  bytes.Buffer
	seen map[string]bool
	err  error
}

// NewObject starts an object.
func NewObject() *Object {
	o := &Object{seen: make(map[string]bool)}
	o.buf.WriteByte('{')
	return o
}

func (o *Object) key(k string) {
	if len(o.seen) > 0 {
		o.buf.WriteByte(',')
	}
	o.seen[k] = true
	kb, _ := Marshal(k)
	o.buf.Write(kb)
	o.buf.WriteByte(':')
}

// Type writes the "type" discriminant.
func (o *Object) Type(t string) {
	o.String("type", t)
}

// String writes a string field, even when empty.
func (o *Object) String(k, s string) {
	o.Field(k, s)
}

// OptString writes a string field only when s is non-empty.
func (o *Object) OptString(k, s string) {
	if s != "" {
		o.Field(k, s)
	}
}

// Field writes any value encodable by encoding/json.
func (o *Object) Field(k string, v any) {
	if o.err != nil {
		return
	}
	b, err := Marshal(v)
	if err != nil {
		o.err = fmt.Errorf("encode %s: %w", k, err)
		return
	}
	o.key(k)
	o.buf.Write(b)
}

// Array writes a slice field; a nil slice is written as [].
func (o *Object) Array(k string, v any) {
	if o.err != nil {
		return
	}
	b, err := Marshal(v)
	if err != nil {
		o.err = fmt.Errorf("encode %s: %w", k, err)
		return
	}
	if string(b) == "null" {
		b = []byte("[]")
	}
	o.key(k)
	o.buf.Write(b)
}

// Raw writes an already encoded value.
func (o *Object) Raw(k string, raw []byte) {
	if o.err != nil {
		return
	}
	o.key(k)
	o.buf.Write(Compact(raw))
}

// Map writes an open map as a nested object with keys in sorted order.
func (o *Object) Map(k string, m map[string]json.RawMessage) {
	if o.err != nil {
		return
	}
	o.key(k)
	writeMap(&o.buf, m)
}

// Inline writes the entries of an open map as fields of this object, in
// sorted key order. Keys already written are skipped, so declared fields
// always win over a stray entry of the same name.
func (o *Object) Inline(m map[string]json.RawMessage) {
	for _, k := range sortedKeys(m) {
		if o.seen[k] {
			continue
		}
		o.Raw(k, m[k])
	}
}

// Bytes closes the object and returns its encoding.
func (o *Object) Bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	o.buf.WriteByte('}')
	return o.buf.Bytes(), nil
}

func writeMap(buf *bytes.Buffer, m map[string]json.RawMessage) {
	buf.WriteByte('{')
	for i, k := range sortedKeys(m) {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(Compact(m[k]))
	}
	buf.WriteByte('}')
}

// EncodeMap encodes an open map with keys in sorted order.
func EncodeMap(m map[string]json.RawMessage) []byte {
	var buf bytes.Buffer
	writeMap(&buf, m)
	return buf.Bytes()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
