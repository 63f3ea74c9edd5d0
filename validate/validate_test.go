package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/oxa/model"
	"github.com/tsawler/oxa/scholarly"
	"github.com/tsawler/oxa/tables"
	"github.com/tsawler/oxa/violation"
)

func heading(id, text string) *model.Heading {
	return &model.Heading{Attr: model.NewAttr(id), Level: 1, Children: []model.Inline{model.NewText(text)}}
}

func ror(name, id string) *scholarly.Organization {
	return &scholarly.Organization{
		Name:        name,
		Identifiers: []*scholarly.PropertyValue{scholarly.NewPropertyValue("ror", id)},
	}
}

// brokenDocument has a repeated id, a table with a gap and an organization
// cycle in its authors.
func brokenDocument(t *testing.T) *model.Document {
	t.Helper()

	bad := model.NewTable(2)
	bad.Rows = []*model.TableRow{model.NewRow(model.NewCell())}

	a := ror("A", "a")
	b := ror("B", "b")
	a.ParentOrganizations = []*scholarly.Organization{b}
	b.ParentOrganizations = []*scholarly.Organization{ror("A", "a")}

	doc := model.NewDocument(
		heading("intro", "Introduction"),
		&model.Section{Children: []model.Block{bad}},
		heading("intro", "Again"),
	)
	doc, err := doc.WithAuthors([]*scholarly.Author{scholarly.NewAuthor(a)})
	if err != nil {
		t.Fatalf("WithAuthors() error: %v", err)
	}
	return doc
}

// ============================================================================
// Identifiers
// ============================================================================

func TestIdentifiers_Duplicate(t *testing.T) {
	doc := model.NewDocument(
		heading("intro", "Introduction"),
		model.NewParagraph(model.NewText("body")),
		heading("intro", "Introduction, again"),
	)

	vs := Identifiers(doc)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(vs), vs)
	}
	v := vs[0]
	if !errors.Is(v, violation.ErrDuplicateIdentifier) || v.ID != "intro" {
		t.Errorf("violation = %+v", v)
	}
	if v.Path != "children[2]" || !strings.Contains(v.Message, "children[0]") {
		t.Errorf("Path = %q, Message = %q", v.Path, v.Message)
	}

	fixed, err := doc.RemoveBlock(0)
	if err != nil {
		t.Fatalf("RemoveBlock() error: %v", err)
	}
	if vs := Identifiers(fixed); len(vs) != 0 {
		t.Errorf("after removal got %v, want none", vs)
	}
	if vs := Identifiers(doc); len(vs) != 1 {
		t.Error("the original document changed")
	}
}

func TestIdentifiers_Everywhere(t *testing.T) {
	cell := model.NewCell(model.NewParagraph(&model.Span{Attr: model.NewAttr("x")}))
	table := model.NewTable(1)
	table.Rows = []*model.TableRow{model.NewRow(cell)}

	doc := &model.Document{
		Title: []model.Inline{&model.Emphasis{Attr: model.NewAttr("x")}},
		Children: []model.Block{
			model.NewParagraph(&model.Cite{Citations: []*model.Citation{{
				Attr:   model.NewAttr("x"),
				Prefix: []model.Inline{&model.Span{Attr: model.NewAttr("x")}},
			}}}),
			table,
			&model.Div{Attr: model.NewAttr("")},
			&model.Div{Attr: model.NewAttr("")},
		},
	}

	var paths []string
	for _, v := range Identifiers(doc) {
		paths = append(paths, v.Path)
	}
	want := []string{
		"children[0].children[0].citations[0].prefix[0]",
		"children[1].rows[0].cells[0].children[0].children[0]",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentifiers_CitationsReferenceTargets(t *testing.T) {
	cite := func() *model.Cite {
		return &model.Cite{Citations: []*model.Citation{{Attr: model.NewAttr("sec-methods"), Mode: model.NormalCitation}}}
	}
	doc := model.NewDocument(
		heading("sec-methods", "Methods"),
		model.NewParagraph(model.NewText("As shown in "), cite(), model.NewText(".")),
		model.NewParagraph(cite()),
	)
	if vs := Identifiers(doc); len(vs) != 0 {
		t.Errorf("got %v, want no violations", vs)
	}
}

// ============================================================================
// Depth
// ============================================================================

func TestDepth(t *testing.T) {
	var inner model.Inline = model.NewText("deep")
	for i := 0; i < 4; i++ {
		inner = &model.Strong{Children: []model.Inline{inner}}
	}
	// paragraph(1) > strong(2) > strong(3) > strong(4) > strong(5) > text(6)
	doc := model.NewDocument(model.NewParagraph(inner))

	tests := []struct {
		limit int
		want  []string
	}{
		{0, nil},
		{6, nil},
		{5, []string{"children[0].children[0].children[0].children[0].children[0].children[0]"}},
		{2, []string{"children[0].children[0].children[0]"}},
	}
	for _, tt := range tests {
		var paths []string
		for _, v := range Depth(doc, tt.limit) {
			if v.Kind != violation.DepthExceeded {
				t.Errorf("Kind = %v", v.Kind)
			}
			paths = append(paths, v.Path)
		}
		if diff := cmp.Diff(tt.want, paths); diff != "" {
			t.Errorf("Depth(%d) mismatch (-want +got):\n%s", tt.limit, diff)
		}
	}
}

// ============================================================================
// Tables and metadata
// ============================================================================

func TestTables_Nested(t *testing.T) {
	inner := model.NewTable(1)
	inner.Rows = []*model.TableRow{model.NewRow(model.NewCell().Span(2, 1))}
	outer := model.NewTable(1)
	outer.Rows = []*model.TableRow{model.NewRow(model.NewCell(inner))}

	vs := Tables(model.NewDocument(outer), tables.DefaultConfig())
	if len(vs) != 1 {
		t.Fatalf("got %v, want one violation", vs)
	}
	if vs[0].Reason != violation.RowOverflow || vs[0].Path != "children[0].rows[0].cells[0].children[0].rows[0].cells[0]" {
		t.Errorf("violation = %+v", vs[0])
	}
}

func TestMetadata(t *testing.T) {
	vs := Metadata(brokenDocument(t))
	if len(vs) != 1 || !errors.Is(vs[0], violation.ErrOrganizationCycle) {
		t.Fatalf("got %v, want one organization cycle", vs)
	}

	doc := model.NewDocument().
		WithMetadata(model.MetaAuthor, []byte(`[{"type":"Nope"}]`)).
		WithMetadata(model.MetaLicense, []byte(`{"uri":"https://example.org"}`))
	vs = Metadata(doc)
	if len(vs) != 1 || vs[0].Kind != violation.SchemaViolation {
		t.Fatalf("got %v, want one schema violation", vs)
	}
	if !strings.HasPrefix(vs[0].Path, "metadata.author[0]") {
		t.Errorf("Path = %q", vs[0].Path)
	}
}

// ============================================================================
// Document and Parallel
// ============================================================================

func TestDocument_CollectsAll(t *testing.T) {
	doc := brokenDocument(t)

	var kinds []violation.Kind
	for _, v := range Document(doc) {
		kinds = append(kinds, v.Kind)
	}
	want := []violation.Kind{violation.DuplicateIdentifier, violation.TableGeometry, violation.OrganizationCycle}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}

	skipped := Document(doc, SkipIdentifiers(), SkipTables(), SkipMetadata())
	if len(skipped) != 0 {
		t.Errorf("every check skipped, got %v", skipped)
	}

	if vs := Document(model.NewDocument(heading("a", "A"), heading("b", "B"))); len(vs) != 0 {
		t.Errorf("valid document reported %v", vs)
	}
}

func TestParallel_MatchesDocument(t *testing.T) {
	doc := brokenDocument(t)
	for i := 0; i < 10; i++ {
		doc = doc.WithChildren(append(doc.Children, model.NewTable(3))...)
	}

	want := Document(doc)
	for _, workers := range []int{1, 2, 8} {
		got, err := Parallel(context.Background(), doc, WithWorkers(workers))
		if err != nil {
			t.Fatalf("Parallel() error: %v", err)
		}
		if diff := cmp.Diff(want.String(), got.String()); diff != "" {
			t.Errorf("workers=%d mismatch (-sequential +parallel):\n%s", workers, diff)
		}
	}
}

func TestParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vs, err := Parallel(ctx, brokenDocument(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if vs != nil {
		t.Errorf("violations = %v, want nil", vs)
	}
}
