package model

import "encoding/json"

// NodeType identifies the variant of a node. Its String form is the wire
// discriminant.
type NodeType int

const (
	NodeTypeUnknown NodeType = iota

	// Inline variants.
	NodeTypeText
	NodeTypeStrong
	NodeTypeEmphasis
	NodeTypeStrikeout
	NodeTypeSuperscript
	NodeTypeSubscript
	NodeTypeSmallCaps
	NodeTypeUnderline
	NodeTypeSpan
	NodeTypeInlineQuote
	NodeTypeDisplayMath
	NodeTypeInlineMath
	NodeTypeImage
	NodeTypeLink
	NodeTypeCite
	NodeTypeInlinePanel

	// Block variants.
	NodeTypeSection
	NodeTypeBlockPanel
	NodeTypeBlockQuote
	NodeTypeCodeBlock
	NodeTypeDiv
	NodeTypeHeading
	NodeTypeParagraph
	NodeTypeTable
	NodeTypePlain

	// Parts that carry an identity but are not Inline or Block.
	NodeTypeCitation
	NodeTypeTableHead
	NodeTypeTableRow
	NodeTypeTableCell
)

var nodeTypeNames = map[NodeType]string{
	NodeTypeText:        "Text",
	NodeTypeStrong:      "Strong",
	NodeTypeEmphasis:    "Emphasis",
	NodeTypeStrikeout:   "Strikeout",
	NodeTypeSuperscript: "Superscript",
	NodeTypeSubscript:   "Subscript",
	NodeTypeSmallCaps:   "SmallCaps",
	NodeTypeUnderline:   "Underline",
	NodeTypeSpan:        "Span",
	NodeTypeInlineQuote: "InlineQuote",
	NodeTypeDisplayMath: "DisplayMath",
	NodeTypeInlineMath:  "InlineMath",
	NodeTypeImage:       "Image",
	NodeTypeLink:        "Link",
	NodeTypeCite:        "Cite",
	NodeTypeInlinePanel: "InlinePanel",
	NodeTypeSection:     "Section",
	NodeTypeBlockPanel:  "BlockPanel",
	NodeTypeBlockQuote:  "BlockQuote",
	NodeTypeCodeBlock:   "CodeBlock",
	NodeTypeDiv:         "Div",
	NodeTypeHeading:     "Heading",
	NodeTypeParagraph:   "Paragraph",
	NodeTypeTable:       "Table",
	NodeTypePlain:       "Plain",
	NodeTypeCitation:    "Citation",
	NodeTypeTableHead:   "TableHead",
	NodeTypeTableRow:    "TableRow",
	NodeTypeTableCell:   "TableCell",
}

func (nt NodeType) String() string {
	if s, ok := nodeTypeNames[nt]; ok {
		return s
	}
	return "Unknown"
}

// ParseNodeType returns the node type for a wire discriminant, or
// NodeTypeUnknown.
func ParseNodeType(s string) NodeType {
	for nt, name := range nodeTypeNames {
		if name == s {
			return nt
		}
	}
	return NodeTypeUnknown
}

// IsInline reports whether nt is one of the sixteen Inline variants.
func (nt NodeType) IsInline() bool {
	return nt >= NodeTypeText && nt <= NodeTypeInlinePanel
}

// IsBlock reports whether nt is one of the nine Block variants.
func (nt NodeType) IsBlock() bool {
	return nt >= NodeTypeSection && nt <= NodeTypePlain
}

// Node is implemented by every value in the document tree that carries an
// identity: Inline and Block variants, citations and table parts.
type Node interface {
	json.Marshaler
	Type() NodeType
	// Identifier returns the node's id, or "" when it has none.
	Identifier() string
}

// Inline is a node that lives within a line of text. The set of
// implementations is closed.
type Inline interface {
	Node
	inline()
}

// Block is a paragraph-level or larger node. The set of implementations is
// closed.
type Block interface {
	Node
	block()
}

// InlineContainer is a node whose children are Inline nodes. The slice is
// always present in the encoding, possibly empty.
type InlineContainer interface {
	Node
	Inlines() []Inline
}

// BlockContainer is a node whose children are Block nodes.
type BlockContainer interface {
	Node
	Blocks() []Block
}

// Leaf is a node carrying a scalar value and no children.
type Leaf interface {
	Node
	ScalarValue() string
}

// Captioned is a node with an optional caption.
type Captioned interface {
	Node
	CaptionOf() *Caption
}
