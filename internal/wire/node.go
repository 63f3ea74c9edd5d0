package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/tsawler/oxa/violation"
)

// MaxNesting bounds how many objects and arrays may be open at once while
// parsing. A document node costs at most four levels, so the default depth
// limit of validation fits well inside it.
const MaxNesting = 512

type kind uint8

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

// Node is one parsed JSON value. Raw holds its exact bytes; objects and
// arrays also keep their parsed members, so decoders walk the tree without
// scanning any subtree twice.
type Node struct {
	Raw    json.RawMessage
	kind   kind
	str    string // string value, or the literal of a number
	fields map[string]*Node
	items  []*Node
}

// IsNull reports whether the value is JSON null.
func (n *Node) IsNull() bool {
	return n == nil || n.kind == kindNull
}

// Parse parses data in a single pass. Syntax errors are SchemaViolations at
// path; nesting deeper than MaxNesting is a DepthExceeded violation at the
// first value past the limit. The input is copied, so Raw never aliases the
// caller's buffer.
func Parse(data []byte, path string) (*Node, error) {
	data = bytes.Clone(data)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	p := &parser{data: data, dec: dec, root: path}
	n, err := p.value(0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, violation.Schema(path, "unexpected data after the value")
	}
	return n, nil
}

// Decode parses data and hands the root to dec.
func Decode[T any](data []byte, path string, dec func(n *Node, path string) (T, error)) (T, error) {
	n, err := Parse(data, path)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec(n, path)
}

type parser struct {
	data []byte
	dec  *json.Decoder
	root string
	path []segment // joined only when reporting
}

// segment is an object key, or an array index when key is empty and index
// is not negative.
type segment struct {
	key   string
	index int
}

func (p *parser) where() string {
	path := p.root
	for _, s := range p.path {
		if s.index >= 0 {
			path = Index(path, s.index)
		} else {
			path = Key(path, s.key)
		}
	}
	return path
}

func (p *parser) syntax(err error) error {
	return violation.Schema(p.where(), "invalid JSON: %v", err)
}

func (p *parser) value(depth int) (*Node, error) {
	start := p.dec.InputOffset()
	tok, err := p.dec.Token()
	if err != nil {
		return nil, p.syntax(err)
	}

	n := &Node{}
	switch t := tok.(type) {
	case json.Delim:
		if depth >= MaxNesting {
			return nil, violation.New(violation.DepthExceeded, p.where(),
				"value nested more than %d levels deep", MaxNesting)
		}
		if t == '{' {
			n.kind = kindObject
			n.fields = make(map[string]*Node)
			for p.dec.More() {
				kt, err := p.dec.Token()
				if err != nil {
					return nil, p.syntax(err)
				}
				key, _ := kt.(string)
				p.path = append(p.path, segment{key: key, index: -1})
				child, err := p.value(depth + 1)
				p.path = p.path[:len(p.path)-1]
				if err != nil {
					return nil, err
				}
				n.fields[key] = child
			}
		} else {
			n.kind = kindArray
			for i := 0; p.dec.More(); i++ {
				p.path = append(p.path, segment{index: i})
				child, err := p.value(depth + 1)
				p.path = p.path[:len(p.path)-1]
				if err != nil {
					return nil, err
				}
				n.items = append(n.items, child)
			}
		}
		if _, err := p.dec.Token(); err != nil {
			return nil, p.syntax(err)
		}
	case string:
		n.kind = kindString
		n.str = t
	case json.Number:
		n.kind = kindNumber
		n.str = string(t)
	case bool:
		n.kind = kindBool
	case nil:
		n.kind = kindNull
	}

	raw := bytes.TrimLeft(p.data[start:p.dec.InputOffset()], " \t\r\n,:")
	n.Raw = json.RawMessage(raw)
	return n, nil
}

// TypeOf returns the "type" discriminant of an object node.
func TypeOf(n *Node, path string) (string, error) {
	if n == nil || n.kind != kindObject {
		return "", violation.Schema(path, "expected an object, got %s", describeNode(n))
	}
	t, ok := n.fields["type"]
	if !ok || t.kind == kindNull {
		return "", violation.Schema(Key(path, "type"), "required field missing")
	}
	if t.kind != kindString {
		return "", violation.Schema(Key(path, "type"), "expected a string, got %s", describeNode(t))
	}
	return t.str, nil
}

func describeNode(n *Node) string {
	if n == nil {
		return "nothing"
	}
	return describe(n.Raw)
}

// Text returns the value of a string node.
func (n *Node) Text() (string, bool) {
	if n == nil || n.kind != kindString {
		return "", false
	}
	return n.str, true
}

// Each decodes every element of an array node.
func Each[T any](n *Node, path string, dec func(n *Node, path string) (T, error)) ([]T, error) {
	if n == nil || n.kind != kindArray {
		return nil, violation.Schema(path, "expected an array, got %s", describeNode(n))
	}
	out := make([]T, 0, len(n.items))
	for i, item := range n.items {
		v, err := dec(item, Index(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
