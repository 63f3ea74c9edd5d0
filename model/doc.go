// Package model provides the document object model: a tree of Inline and
// Block nodes under a Document root.
//
// This package defines the values that producers build and consumers walk.
// All nodes are treated as immutable once constructed; edits produce new
// trees that share unchanged subtrees with the original.
//
// # Document Structure
//
// The [Document] type holds open metadata, a title and a sequence of blocks:
//
//	doc := model.NewDocument(
//	    &model.Heading{Attr: model.NewAttr("intro"), Level: 1,
//	        Children: []model.Inline{model.NewText("Introduction")}},
//	    model.NewParagraph(model.NewText("Hello.")),
//	)
//
// # Nodes
//
// Every node implements [Node] and reports its [NodeType]. The two closed
// families are:
//
//   - [Inline] - Text, Strong, Emphasis, Strikeout, Superscript, Subscript,
//     SmallCaps, Underline, Span, InlineQuote, DisplayMath, InlineMath,
//     Image, Link, Cite, InlinePanel
//   - [Block] - Section, BlockPanel, BlockQuote, CodeBlock, Div, Heading,
//     Paragraph, Table, Plain
//
// Traversal is written against capability interfaces rather than concrete
// variants: [InlineContainer], [BlockContainer], [Leaf] and [Captioned].
// [Walk] and [WalkDocument] visit every node with its path, including
// citations and table parts.
//
// # Tables
//
// A [Table] declares its columns in ColumnSpecs and holds header rows in
// Head and body rows in Rows. Cells carry their spans in a [CellSpec].
// Geometry is checked by package tables.
//
// # Wire Format
//
// Every node implements json.Marshaler. [DecodeDocument], [DecodeInline]
// and [DecodeBlock] decode strictly and report problems as violations
// with a JSON path.
package model
