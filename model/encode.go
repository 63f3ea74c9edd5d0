package model

import (
	"encoding/json"

	"github.com/tsawler/oxa/internal/wire"
)

// Node encodings write "type" first, then the Attr fields, then the
// variant's fields in declaration order. Absent optional fields are
// omitted; required sequences are written as [] when empty.

func leaf(t NodeType, a Attr, value string) ([]byte, error) {
	o := wire.NewObject()
	o.Type(t.String())
	a.write(o)
	o.String("value", value)
	return o.Bytes()
}

func inlineContainer(t NodeType, a Attr, children []Inline) ([]byte, error) {
	o := wire.NewObject()
	o.Type(t.String())
	a.write(o)
	o.Array("children", children)
	return o.Bytes()
}

func blockContainer(t NodeType, a Attr, children []Block) ([]byte, error) {
	o := wire.NewObject()
	o.Type(t.String())
	a.write(o)
	o.Array("children", children)
	return o.Bytes()
}

func (n *Text) MarshalJSON() ([]byte, error)       { return leaf(NodeTypeText, n.Attr, n.Value) }
func (n *InlineMath) MarshalJSON() ([]byte, error) { return leaf(NodeTypeInlineMath, n.Attr, n.Value) }
func (n *CodeBlock) MarshalJSON() ([]byte, error)  { return leaf(NodeTypeCodeBlock, n.Attr, n.Value) }

func (n *DisplayMath) MarshalJSON() ([]byte, error) {
	return leaf(NodeTypeDisplayMath, n.Attr, n.Value)
}

func (n *Strong) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeStrong, n.Attr, n.Children)
}

func (n *Emphasis) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeEmphasis, n.Attr, n.Children)
}

func (n *Strikeout) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeStrikeout, n.Attr, n.Children)
}

func (n *Superscript) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeSuperscript, n.Attr, n.Children)
}

func (n *Subscript) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeSubscript, n.Attr, n.Children)
}

func (n *SmallCaps) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeSmallCaps, n.Attr, n.Children)
}

func (n *Underline) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeUnderline, n.Attr, n.Children)
}

func (n *Span) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeSpan, n.Attr, n.Children)
}

func (n *Paragraph) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypeParagraph, n.Attr, n.Children)
}

func (n *Plain) MarshalJSON() ([]byte, error) {
	return inlineContainer(NodeTypePlain, n.Attr, n.Children)
}

func (n *Section) MarshalJSON() ([]byte, error) {
	return blockContainer(NodeTypeSection, n.Attr, n.Children)
}

func (n *Div) MarshalJSON() ([]byte, error) {
	return blockContainer(NodeTypeDiv, n.Attr, n.Children)
}

func (n *BlockQuote) MarshalJSON() ([]byte, error) {
	return blockContainer(NodeTypeBlockQuote, n.Attr, n.Children)
}

func (n *InlineQuote) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(NodeTypeInlineQuote.String())
	n.Attr.write(o)
	o.String("mark", string(n.Mark))
	o.Array("children", n.Children)
	return o.Bytes()
}

func (n *Image) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(NodeTypeImage.String())
	n.Attr.write(o)
	o.String("uri", n.URI)
	o.String("title", n.Title)
	o.Array("children", n.Children)
	return o.Bytes()
}

func (n *Link) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(NodeTypeLink.String())
	n.Attr.write(o)
	o.String("uri", n.URI)
	o.String("title", n.Title)
	o.Array("children", n.Children)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler. A citation is not a union member
// and carries no "type".
func (n *Citation) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	n.Attr.write(o)
	o.String("mode", string(n.Mode))
	o.Array("prefix", n.Prefix)
	o.Array("suffix", n.Suffix)
	return o.Bytes()
}

func (n *Cite) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(NodeTypeCite.String())
	n.Attr.write(o)
	o.Array("citations", n.Citations)
	o.Array("children", n.Children)
	return o.Bytes()
}

func (n *InlinePanel) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(NodeTypeInlinePanel.String())
	n.Attr.write(o)
	if n.Caption != nil {
		o.Field("caption", n.Caption)
	}
	o.String("kind", n.Kind)
	o.Array("children", n.Children)
	return o.Bytes()
}

func (n *BlockPanel) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(NodeTypeBlockPanel.String())
	n.Attr.write(o)
	if n.Caption != nil {
		o.Field("caption", n.Caption)
	}
	o.String("kind", n.Kind)
	o.Array("children", n.Children)
	return o.Bytes()
}

func (n *Heading) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(NodeTypeHeading.String())
	n.Attr.write(o)
	o.Field("level", n.Level)
	o.Array("children", n.Children)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (c *Caption) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	if c.Short != nil {
		o.Array("short", c.Short)
	}
	if c.Long != nil {
		o.Array("long", c.Long)
	}
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (c *ColumnSpec) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	c.write(o)
	o.Inline(c.Extra)
	return o.Bytes()
}

func (c *ColumnSpec) write(o *wire.Object) {
	o.OptString("alignment", string(c.Alignment))
	if c.Width != nil {
		o.Field("width", *c.Width)
	}
}

// MarshalJSON implements json.Marshaler.
func (c *CellSpec) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	c.ColumnSpec.write(o)
	o.Field("columnSpan", c.ColumnSpan)
	o.Field("rowSpan", c.RowSpan)
	o.Inline(c.Extra)
	return o.Bytes()
}

func (a *TableAttr) write(o *wire.Object) {
	o.OptString("id", a.ID)
	o.Array("classes", a.Classes)
	o.Field("data", &a.Data)
}

func (a *CellAttr) write(o *wire.Object) {
	o.OptString("id", a.ID)
	o.Array("classes", a.Classes)
	o.Field("data", &a.Data)
}

func (n *Table) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(NodeTypeTable.String())
	n.TableAttr.write(o)
	o.Field("caption", &n.Caption)
	o.Array("columnSpecs", n.ColumnSpecs)
	o.Field("head", &n.Head)
	o.Array("rows", n.Rows)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler. Table parts carry no "type".
func (n *TableHead) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	n.TableAttr.write(o)
	o.Array("rows", n.Rows)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (n *TableRow) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	n.TableAttr.write(o)
	o.Array("cells", n.Cells)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (n *TableCell) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	n.CellAttr.write(o)
	o.Array("children", n.Children)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler. metadata is always written, {}
// when empty.
func (d *Document) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Map("metadata", d.Metadata)
	o.Array("title", d.Title)
	o.Array("children", d.Children)
	return o.Bytes()
}

var (
	_ json.Marshaler = (*Document)(nil)
	_ json.Marshaler = (*Table)(nil)
	_ json.Marshaler = (*Citation)(nil)
)
