package model

import (
	"encoding/json"
	"sort"

	"github.com/tsawler/oxa/internal/wire"
)

// Attr is the identity and classification block carried by every node.
type Attr struct {
	ID      string   // "" means no id
	Classes []string // a set, kept sorted and without duplicates
	Data    map[string]json.RawMessage
}

// NewAttr creates an Attr with canonical classes.
func NewAttr(id string, classes ...string) Attr {
	return Attr{ID: id, Classes: CanonicalClasses(classes)}
}

// Identifier returns the id.
func (a Attr) Identifier() string { return a.ID }

// HasClass reports whether the class is set.
func (a Attr) HasClass(class string) bool {
	i := sort.SearchStrings(a.Classes, class)
	return i < len(a.Classes) && a.Classes[i] == class
}

// WithClasses returns a copy with the classes added.
func (a Attr) WithClasses(classes ...string) Attr {
	merged := make([]string, 0, len(a.Classes)+len(classes))
	merged = append(merged, a.Classes...)
	merged = append(merged, classes...)
	a.Classes = CanonicalClasses(merged)
	return a
}

// WithData returns a copy with one data entry set to the JSON encoding of v.
func (a Attr) WithData(key string, v any) (Attr, error) {
	raw, err := wire.Marshal(v)
	if err != nil {
		return a, err
	}
	data := make(map[string]json.RawMessage, len(a.Data)+1)
	for k, v := range a.Data {
		data[k] = v
	}
	data[key] = raw
	a.Data = data
	return a, nil
}

// CanonicalClasses returns the classes sorted and de-duplicated. Empty
// strings are dropped.
func CanonicalClasses(classes []string) []string {
	if len(classes) == 0 {
		return nil
	}
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	n := 0
	for i, c := range out {
		if i == 0 || c != out[n-1] {
			out[n] = c
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return out[:n]
}

func (a Attr) write(o *wire.Object) {
	o.OptString("id", a.ID)
	o.Array("classes", a.Classes)
	o.Map("data", a.Data)
}

func readAttr(r *wire.Reader) Attr {
	return Attr{
		ID:      r.String("id", false),
		Classes: CanonicalClasses(r.Strings("classes", true)),
		Data:    requiredMap(r, "data"),
	}
}
