package model

import (
	"encoding/json"

	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/violation"
)

// DecodeDocument decodes a document. Decoding is strict: a missing required
// field, a value of the wrong shape, an unknown "type" or an unknown key on
// a closed shape is a SchemaViolation whose Path locates the problem.
// Unknown keys in metadata, data and open records are kept, with their
// values compacted.
//
// The input is parsed once; nesting past wire.MaxNesting is reported as
// DepthExceeded before any node is built.
func DecodeDocument(data []byte) (*Document, error) {
	return wire.Decode(data, "", decodeDocument)
}

func decodeDocument(n *wire.Node, path string) (*Document, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	d := &Document{
		Metadata: requiredMap(r, "metadata"),
		Title:    wire.List(r, "title", true, decodeInline),
		Children: wire.List(r, "children", true, decodeBlock),
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return d, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// DecodeInline decodes one Inline node located at path.
func DecodeInline(data []byte, path string) (Inline, error) {
	return wire.Decode(data, path, decodeInline)
}

func decodeInline(node *wire.Node, path string) (Inline, error) {
	nt, r, err := open(node, path)
	if err != nil {
		return nil, err
	}
	if !nt.IsInline() {
		return nil, violation.Schema(wire.Key(path, "type"), "%s is not an inline node", nt)
	}
	a := readAttr(r)
	var n Inline
	switch nt {
	case NodeTypeText:
		n = &Text{Attr: a, Value: r.String("value", true)}
	case NodeTypeDisplayMath:
		n = &DisplayMath{Attr: a, Value: r.String("value", true)}
	case NodeTypeInlineMath:
		n = &InlineMath{Attr: a, Value: r.String("value", true)}
	case NodeTypeStrong:
		n = &Strong{Attr: a, Children: inlines(r, "children")}
	case NodeTypeEmphasis:
		n = &Emphasis{Attr: a, Children: inlines(r, "children")}
	case NodeTypeStrikeout:
		n = &Strikeout{Attr: a, Children: inlines(r, "children")}
	case NodeTypeSuperscript:
		n = &Superscript{Attr: a, Children: inlines(r, "children")}
	case NodeTypeSubscript:
		n = &Subscript{Attr: a, Children: inlines(r, "children")}
	case NodeTypeSmallCaps:
		n = &SmallCaps{Attr: a, Children: inlines(r, "children")}
	case NodeTypeUnderline:
		n = &Underline{Attr: a, Children: inlines(r, "children")}
	case NodeTypeSpan:
		n = &Span{Attr: a, Children: inlines(r, "children")}
	case NodeTypeInlineQuote:
		q := &InlineQuote{Attr: a, Mark: QuoteMark(r.String("mark", true))}
		if !r.Failed() && !q.Mark.Valid() {
			r.Fail("mark", "unknown quote mark %q, expected Single or Double", q.Mark)
		}
		q.Children = inlines(r, "children")
		n = q
	case NodeTypeImage:
		n = &Image{Attr: a, URI: r.String("uri", true), Title: r.String("title", true), Children: inlines(r, "children")}
	case NodeTypeLink:
		n = &Link{Attr: a, URI: r.String("uri", true), Title: r.String("title", true), Children: inlines(r, "children")}
	case NodeTypeCite:
		n = &Cite{
			Attr:      a,
			Citations: wire.List(r, "citations", true, decodeCitation),
			Children:  inlines(r, "children"),
		}
	case NodeTypeInlinePanel:
		p := &InlinePanel{Attr: a}
		p.Caption, _ = wire.One(r, "caption", false, decodeCaption)
		p.Kind = r.String("kind", true)
		p.Children = inlines(r, "children")
		n = p
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return n, nil
}

// DecodeBlock decodes one Block node located at path.
func DecodeBlock(data []byte, path string) (Block, error) {
	return wire.Decode(data, path, decodeBlock)
}

func decodeBlock(node *wire.Node, path string) (Block, error) {
	nt, r, err := open(node, path)
	if err != nil {
		return nil, err
	}
	if !nt.IsBlock() {
		return nil, violation.Schema(wire.Key(path, "type"), "%s is not a block node", nt)
	}
	if nt == NodeTypeTable {
		return decodeTable(r)
	}
	a := readAttr(r)
	var b Block
	switch nt {
	case NodeTypeParagraph:
		b = &Paragraph{Attr: a, Children: inlines(r, "children")}
	case NodeTypePlain:
		b = &Plain{Attr: a, Children: inlines(r, "children")}
	case NodeTypeHeading:
		h := &Heading{Attr: a}
		h.Level, _ = r.Int("level", true)
		h.Children = inlines(r, "children")
		b = h
	case NodeTypeCodeBlock:
		b = &CodeBlock{Attr: a, Value: r.String("value", true)}
	case NodeTypeSection:
		b = &Section{Attr: a, Children: blocks(r, "children")}
	case NodeTypeDiv:
		b = &Div{Attr: a, Children: blocks(r, "children")}
	case NodeTypeBlockQuote:
		b = &BlockQuote{Attr: a, Children: blocks(r, "children")}
	case NodeTypeBlockPanel:
		p := &BlockPanel{Attr: a}
		p.Caption, _ = wire.One(r, "caption", false, decodeCaption)
		p.Kind = r.String("kind", true)
		p.Children = blocks(r, "children")
		b = p
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeCitation decodes a citation. The "type" key is optional and, when
// present, must be "Citation". The legacy mode spelling "SupressAuthor" is
// rejected.
func DecodeCitation(data []byte, path string) (*Citation, error) {
	return wire.Decode(data, path, decodeCitation)
}

func decodeCitation(n *wire.Node, path string) (*Citation, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	optionalType(r, NodeTypeCitation)
	c := &Citation{Attr: readAttr(r), Mode: CitationMode(r.String("mode", true))}
	if !r.Failed() && !c.Mode.Valid() {
		if c.Mode == legacySuppressAuthor {
			r.Fail("mode", "%q is a legacy misspelling, use %q", c.Mode, SuppressAuthor)
		} else {
			r.Fail("mode", "unknown citation mode %q", c.Mode)
		}
	}
	c.Prefix = inlines(r, "prefix")
	c.Suffix = inlines(r, "suffix")
	if err := r.Close(); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeCaption decodes a caption; both parts are optional.
func DecodeCaption(data []byte, path string) (*Caption, error) {
	return wire.Decode(data, path, decodeCaption)
}

func decodeCaption(n *wire.Node, path string) (*Caption, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	c := &Caption{
		Short: wire.List(r, "short", false, decodeInline),
		Long:  wire.List(r, "long", false, decodeBlock),
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return c, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Caption) UnmarshalJSON(data []byte) error {
	v, err := DecodeCaption(data, "")
	if err != nil {
		return err
	}
	*c = *v
	return nil
}

func decodeTable(r *wire.Reader) (Block, error) {
	t := &Table{TableAttr: readTableAttr(r)}
	if c, ok := wire.One(r, "caption", true, decodeCaption); ok {
		t.Caption = *c
	}
	t.ColumnSpecs = wire.List(r, "columnSpecs", true, decodeColumnSpec)
	if h, ok := wire.One(r, "head", true, decodeTableHead); ok {
		t.Head = *h
	}
	t.Rows = wire.List(r, "rows", true, decodeTableRow)
	if err := r.Close(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeTableHead(n *wire.Node, path string) (*TableHead, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	optionalType(r, NodeTypeTableHead)
	h := &TableHead{TableAttr: readTableAttr(r), Rows: wire.List(r, "rows", true, decodeTableRow)}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return h, nil
}

func decodeTableRow(n *wire.Node, path string) (*TableRow, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	optionalType(r, NodeTypeTableRow)
	row := &TableRow{TableAttr: readTableAttr(r), Cells: wire.List(r, "cells", true, decodeTableCell)}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return row, nil
}

func decodeTableCell(n *wire.Node, path string) (*TableCell, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	optionalType(r, NodeTypeTableCell)
	c := &TableCell{}
	c.ID = r.String("id", false)
	c.Classes = CanonicalClasses(r.Strings("classes", true))
	if spec, ok := wire.One(r, "data", true, decodeCellSpec); ok {
		c.Data = *spec
	}
	c.Children = blocks(r, "children")
	if err := r.Close(); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeColumnSpec decodes a column spec. Unknown keys are kept in Extra.
func DecodeColumnSpec(data []byte, path string) (*ColumnSpec, error) {
	return wire.Decode(data, path, decodeColumnSpec)
}

func decodeColumnSpec(n *wire.Node, path string) (*ColumnSpec, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	c := &ColumnSpec{}
	readColumnSpec(r, c)
	if err := r.Err(); err != nil {
		return nil, err
	}
	c.Extra = r.Rest()
	return c, nil
}

// DecodeCellSpec decodes a cell spec. Both spans are required integers;
// their range is checked by table validation, not here.
func DecodeCellSpec(data []byte, path string) (*CellSpec, error) {
	return wire.Decode(data, path, decodeCellSpec)
}

func decodeCellSpec(n *wire.Node, path string) (*CellSpec, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	c := &CellSpec{}
	readColumnSpec(r, &c.ColumnSpec)
	c.ColumnSpan, _ = r.Int("columnSpan", true)
	c.RowSpan, _ = r.Int("rowSpan", true)
	if err := r.Err(); err != nil {
		return nil, err
	}
	c.Extra = r.Rest()
	return c, nil
}

func readColumnSpec(r *wire.Reader, c *ColumnSpec) {
	c.Alignment = Alignment(r.String("alignment", false))
	if c.Alignment != "" && !c.Alignment.Valid() {
		r.Fail("alignment", "unknown alignment %q", c.Alignment)
	}
	c.Width = r.Float("width", false)
}

func readTableAttr(r *wire.Reader) TableAttr {
	a := TableAttr{
		ID:      r.String("id", false),
		Classes: CanonicalClasses(r.Strings("classes", true)),
	}
	if spec, ok := wire.One(r, "data", true, decodeColumnSpec); ok {
		a.Data = *spec
	}
	return a
}

// open reads the discriminant and opens the object.
func open(n *wire.Node, path string) (NodeType, *wire.Reader, error) {
	typ, err := wire.TypeOf(n, path)
	if err != nil {
		return NodeTypeUnknown, nil, err
	}
	nt := ParseNodeType(typ)
	if nt == NodeTypeUnknown {
		return nt, nil, violation.Schema(wire.Key(path, "type"), "unknown node type %q", typ)
	}
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nt, nil, err
	}
	r.Type(typ)
	return nt, r, nil
}

// optionalType accepts a "type" key on shapes that do not require one, as
// long as it names the shape.
func optionalType(r *wire.Reader, want NodeType) {
	if typ := r.String("type", false); typ != "" && typ != want.String() {
		r.Fail("type", "expected type %q, got %q", want, typ)
	}
}

func inlines(r *wire.Reader, key string) []Inline {
	return wire.List(r, key, true, decodeInline)
}

func blocks(r *wire.Reader, key string) []Block {
	return wire.List(r, key, true, decodeBlock)
}

func requiredMap(r *wire.Reader, key string) map[string]json.RawMessage {
	if _, ok := r.Raw(key, true); !ok {
		return nil
	}
	return r.Map(key, false)
}
