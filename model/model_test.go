package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/oxa/scholarly"
)

// ============================================================================
// NodeType Tests
// ============================================================================

func TestNodeTypeString(t *testing.T) {
	tests := []struct {
		nt       NodeType
		expected string
	}{
		{NodeTypeText, "Text"},
		{NodeTypeInlinePanel, "InlinePanel"},
		{NodeTypeBlockPanel, "BlockPanel"},
		{NodeTypeTable, "Table"},
		{NodeTypeCitation, "Citation"},
		{NodeTypeUnknown, "Unknown"},
		{NodeType(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.nt.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
			if tt.nt != NodeTypeUnknown && tt.nt != NodeType(999) {
				if got := ParseNodeType(tt.expected); got != tt.nt {
					t.Errorf("ParseNodeType(%q) = %v, want %v", tt.expected, got, tt.nt)
				}
			}
		})
	}
}

func TestNodeTypeFamilies(t *testing.T) {
	inline, block := 0, 0
	for nt := range nodeTypeNames {
		if nt.IsInline() {
			inline++
		}
		if nt.IsBlock() {
			block++
		}
		if nt.IsInline() && nt.IsBlock() {
			t.Errorf("%v is both inline and block", nt)
		}
	}
	if inline != 16 {
		t.Errorf("inline variants = %d, want 16", inline)
	}
	if block != 9 {
		t.Errorf("block variants = %d, want 9", block)
	}
}

// ============================================================================
// Attr Tests
// ============================================================================

func TestCanonicalClasses(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"sorted", []string{"b", "a"}, []string{"a", "b"}},
		{"duplicates", []string{"x", "a", "x", "a"}, []string{"a", "x"}},
		{"empty strings", []string{"", ""}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, CanonicalClasses(tt.in)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttr_WithClassesAndData(t *testing.T) {
	a := NewAttr("fig1", "wide", "figure")
	b := a.WithClasses("figure", "center")

	if diff := cmp.Diff([]string{"figure", "wide"}, a.Classes); diff != "" {
		t.Errorf("original modified (-want +got):\n%s", diff)
	}
	if !b.HasClass("center") || !b.HasClass("wide") || b.HasClass("narrow") {
		t.Errorf("HasClass on %v", b.Classes)
	}

	c, err := b.WithData("source", map[string]int{"page": 3})
	if err != nil {
		t.Fatalf("WithData() error: %v", err)
	}
	if b.Data != nil {
		t.Error("WithData modified its receiver")
	}
	if string(c.Data["source"]) != `{"page":3}` {
		t.Errorf("Data[source] = %s", c.Data["source"])
	}
}

// ============================================================================
// Walk Tests
// ============================================================================

func sampleDocument() *Document {
	cite := &Cite{
		Citations: []*Citation{{
			Attr:   NewAttr("smith2020"),
			Mode:   NormalCitation,
			Prefix: []Inline{&Emphasis{Attr: NewAttr("pre"), Children: []Inline{NewText("see")}}},
		}},
		Children: []Inline{NewText("[1]")},
	}
	cell := NewCell(NewParagraph(NewText("a")))
	cell.ID = "cell"
	table := NewTable(1)
	table.Caption = Caption{Short: []Inline{NewText("Results")}}
	table.Rows = []*TableRow{NewRow(cell)}

	return &Document{
		Title: []Inline{NewText("Title")},
		Children: []Block{
			&Heading{Attr: NewAttr("intro"), Level: 1, Children: []Inline{NewText("Intro")}},
			&Section{Children: []Block{
				NewParagraph(NewText("Body "), cite),
				&Heading{Level: 2, Children: []Inline{&Strong{Children: []Inline{NewText("Sub")}}}},
			}},
			table,
		},
	}
}

func TestWalkDocument_Paths(t *testing.T) {
	doc := sampleDocument()
	paths := map[string]NodeType{}
	depth := map[string]int{}
	err := WalkDocument(doc, func(v Visit) error {
		paths[v.Path] = v.Node.Type()
		depth[v.Path] = v.Depth
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDocument() error: %v", err)
	}

	want := []struct {
		path string
		nt   NodeType
	}{
		{"title[0]", NodeTypeText},
		{"children[0]", NodeTypeHeading},
		{"children[1].children[0].children[1]", NodeTypeCite},
		{"children[1].children[0].children[1].citations[0]", NodeTypeCitation},
		{"children[1].children[0].children[1].citations[0].prefix[0]", NodeTypeEmphasis},
		{"children[1].children[0].children[1].citations[0].prefix[0].children[0]", NodeTypeText},
		{"children[2].caption.short[0]", NodeTypeText},
		{"children[2].head", NodeTypeTableHead},
		{"children[2].rows[0]", NodeTypeTableRow},
		{"children[2].rows[0].cells[0]", NodeTypeTableCell},
		{"children[2].rows[0].cells[0].children[0].children[0]", NodeTypeText},
	}
	for _, w := range want {
		if paths[w.path] != w.nt {
			t.Errorf("node at %s = %v, want %v", w.path, paths[w.path], w.nt)
		}
	}
	if depth["children[2].rows[0].cells[0]"] != 2 {
		t.Errorf("cell depth = %d, want 2", depth["children[2].rows[0].cells[0]"])
	}
}

func TestWalk_SkipAndStop(t *testing.T) {
	doc := sampleDocument()

	var visited int
	_ = WalkDocument(doc, func(v Visit) error {
		visited++
		if v.Node.Type() == NodeTypeSection || v.Node.Type() == NodeTypeTable {
			return SkipChildren
		}
		return nil
	})
	// title text, heading + its text, section, table
	if visited != 5 {
		t.Errorf("visited %d nodes, want 5", visited)
	}

	stop := errors.New("stop")
	err := WalkDocument(doc, func(v Visit) error {
		if v.Node.Type() == NodeTypeCitation {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Errorf("WalkDocument() = %v, want stop", err)
	}
}

// ============================================================================
// Text and Outline Tests
// ============================================================================

func TestExtractText(t *testing.T) {
	doc := sampleDocument()
	text := doc.ExtractText()
	for _, want := range []string{"Title", "Intro", "Body [1]", "Sub", "a"} {
		if !strings.Contains(text, want) {
			t.Errorf("ExtractText() missing %q in %q", want, text)
		}
	}
	if strings.Contains(text, "see") {
		t.Error("citation prefix should not be part of the text")
	}
}

func TestOutline(t *testing.T) {
	got := sampleDocument().Outline()
	want := []OutlineEntry{
		{Level: 1, ID: "intro", Text: "Intro", Path: "children[0]"},
		{Level: 2, Text: "Sub", Path: "children[1].children[1]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Outline() mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_Helpers(t *testing.T) {
	table := NewTable(2)
	table.Head.Rows = []*TableRow{NewRow(NewCell(&Plain{Children: []Inline{NewText("h")}}).Span(1, 2))}
	table.Rows = []*TableRow{NewRow(NewCell(), NewCell(&CodeBlock{Value: "x"}))}

	if table.ColCount() != 2 || table.RowCount() != 2 {
		t.Errorf("ColCount, RowCount = %d, %d", table.ColCount(), table.RowCount())
	}
	if got := table.GetText(); got != "h\n\tx\n" {
		t.Errorf("GetText() = %q", got)
	}

	cell := table.Head.Rows[0].Cells[0]
	if cell.Data.ColumnSpan != 2 || cell.Data.RowSpan != 1 {
		t.Errorf("spans = %+v", cell.Data)
	}
	right := &ColumnSpec{Alignment: AlignRight}
	if got := cell.EffectiveAlignment(right); got != AlignRight {
		t.Errorf("EffectiveAlignment() = %q, want right", got)
	}
	if got := cell.EffectiveAlignment(nil); got != AlignDefault {
		t.Errorf("EffectiveAlignment(nil) = %q, want default", got)
	}
	if table.ColumnSpecs[0].Alignment != "" {
		t.Error("the default alignment must not be stored")
	}
}

// ============================================================================
// Metadata Tests
// ============================================================================

func TestDocument_Authors(t *testing.T) {
	doc := NewDocument()
	p := &scholarly.Person{Names: []*scholarly.PersonName{{FamilyNames: []string{"Noether"}}}}

	withAuthors, err := doc.WithAuthors([]*scholarly.Author{scholarly.NewAuthor(p).WithOrder(1)})
	if err != nil {
		t.Fatalf("WithAuthors() error: %v", err)
	}
	if doc.Metadata != nil {
		t.Error("WithAuthors modified the original document")
	}

	authors, err := withAuthors.Authors()
	if err != nil {
		t.Fatalf("Authors() error: %v", err)
	}
	if len(authors) != 1 || authors[0].Person().FamilyName() != "Noether" {
		t.Errorf("Authors() = %+v", authors)
	}

	withLicense, err := withAuthors.WithLicense(&scholarly.License{Name: "CC-BY-4.0"})
	if err != nil {
		t.Fatal(err)
	}
	l, ok, err := withLicense.License()
	if err != nil || !ok || l.Name != "CC-BY-4.0" {
		t.Errorf("License() = %+v, %v, %v", l, ok, err)
	}
	if _, ok, _ := doc.License(); ok {
		t.Error("License() reported a license on an empty document")
	}

	out, err := json.Marshal(withLicense)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), `{"metadata":{"author":[{"type":"Author"`) {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestDocument_WithAuthorsRejectsReferenceCycle(t *testing.T) {
	a := &scholarly.Organization{Name: "A", Identifiers: []*scholarly.PropertyValue{}}
	a.MemberOf = []*scholarly.Organization{a}

	_, err := NewDocument().WithAuthors([]*scholarly.Author{scholarly.NewAuthor(a)})
	if err == nil {
		t.Fatal("WithAuthors() accepted a self-referencing organization")
	}
}
