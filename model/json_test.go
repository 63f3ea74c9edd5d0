package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/oxa/violation"
)

// canonical is a document in canonical form: keys in encoding order,
// classes sorted, data keys sorted, no whitespace.
const canonical = `{"metadata":{"author":[],"x-custom":{"b":[1,2],"a":null}},` +
	`"title":[{"type":"Text","classes":[],"data":{},"value":"On <Things> & Stuff"}],` +
	`"children":[` +
	`{"type":"Heading","id":"intro","classes":["a","b"],"data":{"n":1},"level":1,"children":[{"type":"Emphasis","classes":[],"data":{},"children":[]}]},` +
	`{"type":"Paragraph","classes":[],"data":{},"children":[` +
	`{"type":"Cite","classes":[],"data":{},"citations":[{"id":"ref1","classes":[],"data":{},"mode":"SuppressAuthor","prefix":[],"suffix":[{"type":"Text","classes":[],"data":{},"value":", p. 3"}]}],"children":[]},` +
	`{"type":"InlineQuote","classes":[],"data":{},"mark":"Double","children":[]},` +
	`{"type":"Link","classes":[],"data":{},"uri":"https://example.org","title":"","children":[]},` +
	`{"type":"InlinePanel","classes":[],"data":{},"caption":{},"kind":"margin","children":[{"type":"InlineMath","classes":[],"data":{},"value":"x^2"}]}]},` +
	`{"type":"BlockPanel","classes":[],"data":{},"caption":{"short":[],"long":[{"type":"Plain","classes":[],"data":{},"children":[]}]},"kind":"figure","children":[{"type":"CodeBlock","classes":[],"data":{},"value":"x := 1"}]},` +
	`{"type":"Table","id":"t1","classes":[],"data":{"alignment":"center"},"caption":{},` +
	`"columnSpecs":[{"alignment":"left","width":0.25},{"x-note":"keep"}],` +
	`"head":{"classes":[],"data":{},"rows":[{"classes":[],"data":{},"cells":[{"classes":[],"data":{"columnSpan":2,"rowSpan":1},"children":[]}]}]},` +
	`"rows":[{"classes":[],"data":{},"cells":[{"classes":[],"data":{"width":0.5,"columnSpan":1,"rowSpan":1,"z":true},"children":[]},{"classes":[],"data":{"columnSpan":1,"rowSpan":1},"children":[]}]}]}` +
	`]}`

func TestDocument_RoundTrip(t *testing.T) {
	doc, err := DecodeDocument([]byte(canonical))
	if err != nil {
		t.Fatalf("DecodeDocument() error: %v", err)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	// encoding/json escapes HTML in Marshaler output; compare decoded forms.
	again, err := DecodeDocument(out)
	if err != nil {
		t.Fatalf("DecodeDocument(encoded) error: %v", err)
	}
	if diff := cmp.Diff(doc, again); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}

	// Without HTML escaping the encoding is byte-identical.
	raw, err := doc.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != canonical {
		t.Errorf("canonical mismatch\n got: %s\nwant: %s", raw, canonical)
	}
}

func TestDocument_DecodeShapes(t *testing.T) {
	doc, err := DecodeDocument([]byte(canonical))
	if err != nil {
		t.Fatal(err)
	}

	h := doc.Children[0].(*Heading)
	if h.ID != "intro" || h.Level != 1 || string(h.Data["n"]) != "1" {
		t.Errorf("heading = %+v", h)
	}
	if h.Children[0].(*Emphasis).Children != nil {
		t.Error("an empty required array should decode to nil")
	}

	cite := doc.Children[1].(*Paragraph).Children[0].(*Cite)
	if cite.Citations[0].Mode != SuppressAuthor || cite.Citations[0].ID != "ref1" {
		t.Errorf("citation = %+v", cite.Citations[0])
	}

	panel := doc.Children[2].(*BlockPanel)
	if panel.Caption.Short == nil || len(panel.Caption.Short) != 0 {
		t.Error("a present empty optional array should decode to an empty slice")
	}

	table := doc.Children[3].(*Table)
	if table.Data.EffectiveAlignment() != AlignCenter {
		t.Errorf("table alignment = %q", table.Data.Alignment)
	}
	if table.ColumnSpecs[1].Alignment != "" || table.ColumnSpecs[1].EffectiveAlignment() != AlignDefault {
		t.Error("absent alignment must stay absent")
	}
	if string(table.ColumnSpecs[1].Extra["x-note"]) != `"keep"` {
		t.Errorf("column extra = %v", table.ColumnSpecs[1].Extra)
	}
	cell := table.Rows[0].Cells[0]
	if cell.Data.Width == nil || *cell.Data.Width != 0.5 || string(cell.Data.Extra["z"]) != "true" {
		t.Errorf("cell spec = %+v", cell.Data)
	}
	if string(doc.Metadata["x-custom"]) != `{"b":[1,2],"a":null}` {
		t.Errorf("metadata must be preserved verbatim, got %s", doc.Metadata["x-custom"])
	}
}

func TestDecodeDocument_Violations(t *testing.T) {
	wrap := func(block string) string {
		return `{"metadata":{},"title":[],"children":[` + block + `]}`
	}
	tests := []struct {
		name     string
		input    string
		wantPath string
		wantMsg  string
	}{
		{"not an object", `[]`, "", "expected an object"},
		{"missing metadata", `{"title":[],"children":[]}`, "metadata", "required"},
		{"missing children", `{"metadata":{},"title":[]}`, "children", "required"},
		{"unknown root key", `{"metadata":{},"title":[],"children":[],"extra":1}`, "extra", "unknown field"},
		{"unknown type", wrap(`{"type":"Para","classes":[],"data":{},"children":[]}`), "children[0].type", "unknown node type"},
		{"inline in block position", wrap(`{"type":"Text","classes":[],"data":{},"value":"x"}`), "children[0].type", "not a block"},
		{"missing type", wrap(`{"classes":[],"data":{},"children":[]}`), "children[0].type", "required"},
		{"missing classes", wrap(`{"type":"Paragraph","data":{},"children":[]}`), "children[0].classes", "required"},
		{"missing data", wrap(`{"type":"Paragraph","classes":[],"children":[]}`), "children[0].data", "required"},
		{"missing children", wrap(`{"type":"Div","classes":[],"data":{}}`), "children[0].children", "required"},
		{"wrong level type", wrap(`{"type":"Heading","classes":[],"data":{},"level":"1","children":[]}`), "children[0].level", "expected a number"},
		{"unknown node key", wrap(`{"type":"CodeBlock","classes":[],"data":{},"value":"","lang":"go"}`), "children[0].lang", "unknown field"},
		{"nested", wrap(`{"type":"Section","classes":[],"data":{},"children":[{"type":"Paragraph","classes":[],"data":{},"children":[{"type":"Strong","classes":[],"data":{}}]}]}`),
			"children[0].children[0].children[0].children", "required"},
		{"legacy citation mode", wrap(`{"type":"Paragraph","classes":[],"data":{},"children":[{"type":"Cite","classes":[],"data":{},"citations":[{"classes":[],"data":{},"mode":"SupressAuthor","prefix":[],"suffix":[]}],"children":[]}]}`),
			"children[0].children[0].citations[0].mode", `use "SuppressAuthor"`},
		{"bad quote mark", wrap(`{"type":"Paragraph","classes":[],"data":{},"children":[{"type":"InlineQuote","classes":[],"data":{},"mark":"Guillemet","children":[]}]}`),
			"children[0].children[0].mark", "unknown quote mark"},
		{"bad alignment", wrap(`{"type":"Table","classes":[],"data":{},"caption":{},"columnSpecs":[{"alignment":"justify"}],"head":{"classes":[],"data":{},"rows":[]},"rows":[]}`),
			"children[0].columnSpecs[0].alignment", "unknown alignment"},
		{"missing span", wrap(`{"type":"Table","classes":[],"data":{},"caption":{},"columnSpecs":[{}],"head":{"classes":[],"data":{},"rows":[]},"rows":[{"classes":[],"data":{},"cells":[{"classes":[],"data":{"columnSpan":1},"children":[]}]}]}`),
			"children[0].rows[0].cells[0].data.rowSpan", "required"},
		{"missing table rows", wrap(`{"type":"Table","classes":[],"data":{},"caption":{},"columnSpecs":[],"head":{"classes":[],"data":{},"rows":[]}}`),
			"children[0].rows", "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.input))
			var v *violation.Violation
			if !errors.As(err, &v) {
				t.Fatalf("err = %v, want a violation", err)
			}
			if v.Kind != violation.SchemaViolation {
				t.Errorf("Kind = %v, want SchemaViolation", v.Kind)
			}
			if v.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", v.Path, tt.wantPath)
			}
			if !strings.Contains(v.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", v.Message, tt.wantMsg)
			}
		})
	}
}

func TestDecodeDocument_NullIsAbsent(t *testing.T) {
	input := `{"metadata":{},"title":[],"children":[{"type":"Heading","id":null,"classes":[],"data":{},"level":2,"children":[]}]}`
	doc, err := DecodeDocument([]byte(input))
	if err != nil {
		t.Fatalf("DecodeDocument() error: %v", err)
	}
	if doc.Children[0].Identifier() != "" {
		t.Errorf("id = %q, want absent", doc.Children[0].Identifier())
	}
	out, _ := doc.MarshalJSON()
	if strings.Contains(string(out), `"id"`) {
		t.Errorf("absent id was written: %s", out)
	}
}

func TestDecodeDocument_OpaqueValuesCompacted(t *testing.T) {
	input := `{"metadata":{"x-note": { "tags" : [ "a", "b" ] }},"title":[],"children":[` +
		`{"type":"Plain","classes":[],"data":{"n" :  [1,  2], "s":"a  b"},"children":[]}]}`
	doc, err := DecodeDocument([]byte(input))
	if err != nil {
		t.Fatalf("DecodeDocument() error: %v", err)
	}
	out, err := doc.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	want := `{"metadata":{"x-note":{"tags":["a","b"]}},"title":[],"children":[` +
		`{"type":"Plain","classes":[],"data":{"n":[1,2],"s":"a  b"},"children":[]}]}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Errorf("encoding mismatch (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Nesting
// ============================================================================

// nestedDivs builds a document of depth nested Divs around one large
// CodeBlock.
func nestedDivs(depth, payload int) []byte {
	var b strings.Builder
	b.WriteString(`{"metadata":{},"title":[],"children":[`)
	for i := 0; i < depth; i++ {
		b.WriteString(`{"type":"Div","classes":[],"data":{},"children":[`)
	}
	b.WriteString(`{"type":"CodeBlock","classes":[],"data":{},"value":"`)
	b.WriteString(strings.Repeat("x", payload))
	b.WriteString(`"}`)
	b.WriteString(strings.Repeat("]}", depth))
	b.WriteString(`]}`)
	return []byte(b.String())
}

func TestDecodeDocument_DeepNestingIsLinear(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	const payload = 1 << 20
	fastest := func(data []byte) time.Duration {
		best := time.Duration(1<<63 - 1)
		for i := 0; i < 3; i++ {
			start := time.Now()
			if _, err := DecodeDocument(data); err != nil {
				t.Fatalf("DecodeDocument() error: %v", err)
			}
			best = min(best, time.Since(start))
		}
		return best
	}

	shallow := fastest(nestedDivs(2, payload))
	deep := fastest(nestedDivs(200, payload))
	// Each level used to rescan the whole subtree, which made the deep
	// document about a hundred times slower than the shallow one.
	if deep > 10*shallow+50*time.Millisecond {
		t.Errorf("depth 200 took %v, depth 2 took %v", deep, shallow)
	}
}

func TestDecodeDocument_NestingLimit(t *testing.T) {
	_, err := DecodeDocument(nestedDivs(2000, 16))
	var v *violation.Violation
	if !errors.As(err, &v) {
		t.Fatalf("err = %v, want a violation", err)
	}
	if v.Kind != violation.DepthExceeded {
		t.Errorf("Kind = %v, want DepthExceeded", v.Kind)
	}
	if !strings.HasPrefix(v.Path, "children[0].children[0].children[0]") {
		t.Errorf("Path = %q", v.Path)
	}
}
