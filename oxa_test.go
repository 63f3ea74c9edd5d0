package oxa

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/oxa/format"
	"github.com/tsawler/oxa/model"
	"github.com/tsawler/oxa/violation"
)

const paper = `{"metadata":{"author":[` +
	`{"type":"Author","author":{"type":"Person","names":[{"type":"PersonName","familyNames":["Zimmer"]}]},"contributorRoles":[]},` +
	`{"type":"Author","author":{"type":"Organization","name":"Baker Lab","identifiers":[]},"contributorRoles":["Software"]},` +
	`{"type":"Author","author":{"type":"Person","names":[{"type":"PersonName","familyNames":["Adams"]}]},"contributorRoles":[]}` +
	`]},` +
	`"title":[{"type":"Text","classes":[],"data":{},"value":"Paper"}],` +
	`"children":[` +
	`{"type":"Heading","id":"intro","classes":[],"data":{},"level":1,"children":[{"type":"Text","classes":[],"data":{},"value":"Introduction"}]},` +
	`{"type":"Paragraph","classes":[],"data":{},"children":[{"type":"Text","classes":[],"data":{},"value":"Body."}]},` +
	`{"type":"Heading","id":"intro","classes":[],"data":{},"level":2,"children":[{"type":"Text","classes":[],"data":{},"value":"Details"}]},` +
	`{"type":"Table","classes":[],"data":{},"caption":{},"columnSpecs":[{},{}],"head":{"classes":[],"data":{},"rows":[]},` +
	`"rows":[{"classes":[],"data":{},"cells":[{"classes":[],"data":{"columnSpan":1,"rowSpan":1},"children":[]}]}]}` +
	`]}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	// Test with non-existent file
	_, err := Open("nonexistent.json").Document()
	if err == nil {
		t.Error("expected error for non-existent file")
	}

	path := writeTemp(t, "paper.json", paper)
	doc, err := Open(path).Document()
	if err != nil {
		t.Fatalf("failed to load document: %v", err)
	}
	if len(doc.Children) != 4 {
		t.Errorf("got %d children, want 4", len(doc.Children))
	}
}

func TestOpen_YAML(t *testing.T) {
	input := "metadata: {}\ntitle: []\nchildren:\n  - type: Paragraph\n    classes: []\n    data: {}\n    children:\n      - type: Text\n        classes: []\n        data: {}\n        value: hello\n"

	for _, name := range []string{"doc.yaml", "doc.txt"} {
		text, err := Open(writeTemp(t, name, input)).Text()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if strings.TrimSpace(text) != "hello" {
			t.Errorf("%s: text = %q", name, text)
		}
	}
}

func TestOpen_MaxSize(t *testing.T) {
	path := writeTemp(t, "paper.json", paper)
	if _, err := Open(path).MaxSize(16).Document(); err == nil {
		t.Error("expected error for oversized file")
	}
}

func TestFromBytes_Format(t *testing.T) {
	if _, err := FromBytes([]byte("plain text")).Document(); err == nil {
		t.Error("expected error for undetectable format")
	}
	if _, err := FromBytes([]byte(paper)).Format(format.YAML).Document(); err != nil {
		// JSON is valid YAML
		t.Errorf("JSON read as YAML: %v", err)
	}
}

func TestFromBytes_DecodeError(t *testing.T) {
	_, err := FromBytes([]byte(`{"metadata":{},"title":[]}`)).Document()
	var v *violation.Violation
	if !errors.As(err, &v) || v.Path != "children" {
		t.Errorf("err = %v, want a schema violation at children", err)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		checker *Checker
		want    []violation.Kind
	}{
		{"all checks", FromBytes([]byte(paper)), []violation.Kind{violation.DuplicateIdentifier, violation.TableGeometry}},
		{"parallel", FromBytes([]byte(paper)).Workers(4), []violation.Kind{violation.DuplicateIdentifier, violation.TableGeometry}},
		{"skip tables", FromBytes([]byte(paper)).SkipTables(), []violation.Kind{violation.DuplicateIdentifier}},
		{"skip identifiers", FromBytes([]byte(paper)).SkipIdentifiers(), []violation.Kind{violation.TableGeometry}},
		{"depth", FromBytes([]byte(paper)).SkipTables().SkipIdentifiers().MaxDepth(1), []violation.Kind{
			violation.DepthExceeded, violation.DepthExceeded, violation.DepthExceeded, violation.DepthExceeded, violation.DepthExceeded,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs, err := tt.checker.Validate(ctx)
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			var kinds []violation.Kind
			for _, v := range vs {
				kinds = append(kinds, v.Kind)
			}
			if diff := cmp.Diff(tt.want, kinds); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s\n%v", diff, vs)
			}
		})
	}
}

func TestValidate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FromBytes([]byte(paper)).Validate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestChainIsImmutable(t *testing.T) {
	base := FromBytes([]byte(paper))
	_ = base.SkipTables().SkipIdentifiers().Workers(3)

	if base.options.skipTables || base.options.skipIdentifiers || base.options.workers != 1 {
		t.Errorf("base options changed: %+v", base.options)
	}
}

func TestChainErrors(t *testing.T) {
	tests := []struct {
		name    string
		checker *Checker
	}{
		{"negative depth", FromBytes([]byte(paper)).MaxDepth(-1)},
		{"zero workers", FromBytes([]byte(paper)).Workers(0)},
		{"zero size", Open("x.json").MaxSize(0)},
		{"nil document", FromDocument(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the error sticks through later chain calls
			if _, err := tt.checker.SkipTables().Validate(context.Background()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestAuthors(t *testing.T) {
	authors, err := FromBytes([]byte(paper)).Authors()
	if err != nil {
		t.Fatalf("Authors() error: %v", err)
	}
	var names []string
	for _, a := range authors {
		if p := a.Person(); p != nil {
			names = append(names, p.FamilyName())
		} else {
			names = append(names, a.Organization().Name)
		}
	}
	if diff := cmp.Diff([]string{"Adams", "Baker Lab", "Zimmer"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestOutline(t *testing.T) {
	outline, err := FromBytes([]byte(paper)).Outline()
	if err != nil {
		t.Fatal(err)
	}
	want := []model.OutlineEntry{
		{Level: 1, ID: "intro", Text: "Introduction", Path: "children[0]"},
		{Level: 2, ID: "intro", Text: "Details", Path: "children[2]"},
	}
	if diff := cmp.Diff(want, outline); diff != "" {
		t.Errorf("Outline() mismatch (-want +got):\n%s", diff)
	}
}

func TestTables(t *testing.T) {
	layouts, err := FromBytes([]byte(paper)).Tables()
	if err != nil {
		t.Fatal(err)
	}
	if len(layouts) != 1 || layouts[0].Path != "children[3]" {
		t.Fatalf("layouts = %+v", layouts)
	}
	if len(layouts[0].Cells) != 1 || !layouts[0].Violations.Has(violation.TableGeometry) {
		t.Errorf("layout = %+v", layouts[0])
	}
}

func TestFromDocument(t *testing.T) {
	doc := model.NewDocument(model.NewParagraph(model.NewText("x")))
	got := Must(FromDocument(doc).Document())
	if got != doc {
		t.Error("FromDocument should return the same document")
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(Open("nonexistent.json").Document())
}
