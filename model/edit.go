package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by edits addressing a missing block.
var ErrIndexOutOfRange = errors.New("model: index out of range")

// WithTitle returns a copy of the document with a new title.
func (d *Document) WithTitle(title ...Inline) *Document {
	cp := *d
	cp.Title = title
	return &cp
}

// WithChildren returns a copy of the document with new top-level blocks.
func (d *Document) WithChildren(children ...Block) *Document {
	cp := *d
	cp.Children = children
	return &cp
}

// WithMetadata returns a copy of the document with one metadata entry set.
// raw must be valid JSON.
func (d *Document) WithMetadata(key string, raw json.RawMessage) *Document {
	cp := *d
	cp.Metadata = make(map[string]json.RawMessage, len(d.Metadata)+1)
	for k, v := range d.Metadata {
		cp.Metadata[k] = v
	}
	cp.Metadata[key] = raw
	return &cp
}

// WithoutMetadata returns a copy of the document without the given
// metadata entry.
func (d *Document) WithoutMetadata(key string) *Document {
	if _, ok := d.Metadata[key]; !ok {
		return d
	}
	cp := *d
	cp.Metadata = make(map[string]json.RawMessage, len(d.Metadata))
	for k, v := range d.Metadata {
		if k != key {
			cp.Metadata[k] = v
		}
	}
	return &cp
}

// InsertBlock returns a copy of the document with b inserted before the
// top-level block at index i. i == len(Children) appends.
func (d *Document) InsertBlock(i int, b Block) (*Document, error) {
	if i < 0 || i > len(d.Children) {
		return nil, fmt.Errorf("insert at %d of %d blocks: %w", i, len(d.Children), ErrIndexOutOfRange)
	}
	children := make([]Block, 0, len(d.Children)+1)
	children = append(children, d.Children[:i]...)
	children = append(children, b)
	children = append(children, d.Children[i:]...)
	return d.WithChildren(children...), nil
}

// ReplaceBlock returns a copy of the document with the top-level block at
// index i replaced by b.
func (d *Document) ReplaceBlock(i int, b Block) (*Document, error) {
	if i < 0 || i >= len(d.Children) {
		return nil, fmt.Errorf("replace block %d of %d: %w", i, len(d.Children), ErrIndexOutOfRange)
	}
	children := append([]Block(nil), d.Children...)
	children[i] = b
	return d.WithChildren(children...), nil
}

// RemoveBlock returns a copy of the document without the top-level block at
// index i.
func (d *Document) RemoveBlock(i int) (*Document, error) {
	if i < 0 || i >= len(d.Children) {
		return nil, fmt.Errorf("remove block %d of %d: %w", i, len(d.Children), ErrIndexOutOfRange)
	}
	children := make([]Block, 0, len(d.Children)-1)
	children = append(children, d.Children[:i]...)
	children = append(children, d.Children[i+1:]...)
	return d.WithChildren(children...), nil
}

// FilterBlocks returns a document without the blocks for which keep
// returns false, at any depth: inside block containers, table cells and
// the captions of tables and panels, including inline panels within text.
// Containers on the path to a removal are copied; everything else is
// shared with d. If nothing is removed d itself is returned.
func FilterBlocks(d *Document, keep func(Block) bool) *Document {
	return rewriteDocument(d, func(b Block) (Block, bool) {
		return b, keep(b)
	})
}

// MapBlocks returns a document with every block replaced by fn(block),
// bottom-up: fn sees a container after its children have been mapped.
// Blocks for which fn returns its argument are shared with d.
func MapBlocks(d *Document, fn func(Block) Block) *Document {
	return rewriteDocument(d, func(b Block) (Block, bool) {
		return fn(b), true
	})
}

type rewriteFunc func(Block) (Block, bool)

func rewriteDocument(d *Document, fn rewriteFunc) *Document {
	title, tc := rewriteInlines(d.Title, fn)
	children, cc := rewriteList(d.Children, fn)
	if !tc && !cc {
		return d
	}
	cp := *d
	cp.Title = title
	cp.Children = children
	return &cp
}

func rewriteList(blocks []Block, fn rewriteFunc) ([]Block, bool) {
	var (
		out     []Block
		changed bool
	)
	for i, b := range blocks {
		nb, keep := rewriteBlock(b, fn)
		if !changed && (!keep || nb != b) {
			changed = true
			out = make([]Block, 0, len(blocks))
			out = append(out, blocks[:i]...)
		}
		if changed && keep {
			out = append(out, nb)
		}
	}
	if !changed {
		return blocks, false
	}
	return out, true
}

// rewriteBlock rewrites the children of b and then b itself.
func rewriteBlock(b Block, fn rewriteFunc) (Block, bool) {
	if b == nil {
		return b, true
	}
	switch v := b.(type) {
	case *Table:
		b = rewriteTable(v, fn)
	case *BlockPanel:
		children, cc := rewriteList(v.Children, fn)
		caption, pc := rewriteCaption(v.Caption, fn)
		if cc || pc {
			cp := *v
			cp.Children = children
			cp.Caption = caption
			b = &cp
		}
	case blockRebuilder:
		if children, changed := rewriteList(v.Blocks(), fn); changed {
			b = v.withBlocks(children)
		}
	case InlineContainer:
		if children, changed := rewriteInlines(v.Inlines(), fn); changed {
			b = blockWithInlines(b, children)
		}
	}
	return fn(b)
}

func rewriteCaption(c *Caption, fn rewriteFunc) (*Caption, bool) {
	if c == nil {
		return nil, false
	}
	short, sc := rewriteInlines(c.Short, fn)
	long, lc := rewriteList(c.Long, fn)
	if !sc && !lc {
		return c, false
	}
	return &Caption{Short: short, Long: long}, true
}

func rewriteTable(t *Table, fn rewriteFunc) *Table {
	caption, cc := rewriteCaption(&t.Caption, fn)
	head, hc := rewriteRows(t.Head.Rows, fn)
	rows, rc := rewriteRows(t.Rows, fn)
	if !cc && !hc && !rc {
		return t
	}
	cp := *t
	cp.Caption = *caption
	cp.Head.Rows = head
	cp.Rows = rows
	return &cp
}

// rewriteInlines looks for blocks held by inline panel captions. Inline
// nodes themselves are never passed to fn.
func rewriteInlines(ns []Inline, fn rewriteFunc) ([]Inline, bool) {
	var out []Inline
	for i, n := range ns {
		nn, changed := rewriteInline(n, fn)
		if !changed {
			continue
		}
		if out == nil {
			out = append([]Inline(nil), ns...)
		}
		out[i] = nn
	}
	if out == nil {
		return ns, false
	}
	return out, true
}

func rewriteInline(n Inline, fn rewriteFunc) (Inline, bool) {
	switch v := n.(type) {
	case *InlinePanel:
		caption, pc := rewriteCaption(v.Caption, fn)
		children, cc := rewriteInlines(v.Children, fn)
		if !pc && !cc {
			return n, false
		}
		cp := *v
		cp.Caption = caption
		cp.Children = children
		return &cp, true
	case *Cite:
		citations, sc := rewriteCitations(v.Citations, fn)
		children, cc := rewriteInlines(v.Children, fn)
		if !sc && !cc {
			return n, false
		}
		cp := *v
		cp.Citations = citations
		cp.Children = children
		return &cp, true
	case InlineContainer:
		children, changed := rewriteInlines(v.Inlines(), fn)
		if !changed {
			return n, false
		}
		return inlineWithChildren(n, children), true
	}
	return n, false
}

func rewriteCitations(cs []*Citation, fn rewriteFunc) ([]*Citation, bool) {
	var out []*Citation
	for i, c := range cs {
		if c == nil {
			continue
		}
		prefix, pc := rewriteInlines(c.Prefix, fn)
		suffix, sc := rewriteInlines(c.Suffix, fn)
		if !pc && !sc {
			continue
		}
		if out == nil {
			out = append([]*Citation(nil), cs...)
		}
		cp := *c
		cp.Prefix = prefix
		cp.Suffix = suffix
		out[i] = &cp
	}
	if out == nil {
		return cs, false
	}
	return out, true
}

// blockWithInlines copies a block of inline content with new children.
func blockWithInlines(b Block, children []Inline) Block {
	switch v := b.(type) {
	case *Paragraph:
		cp := *v
		cp.Children = children
		return &cp
	case *Plain:
		cp := *v
		cp.Children = children
		return &cp
	case *Heading:
		cp := *v
		cp.Children = children
		return &cp
	}
	return b
}

// inlineWithChildren copies an inline container with new children.
func inlineWithChildren(n Inline, children []Inline) Inline {
	switch v := n.(type) {
	case *Strong:
		cp := *v
		cp.Children = children
		return &cp
	case *Emphasis:
		cp := *v
		cp.Children = children
		return &cp
	case *Strikeout:
		cp := *v
		cp.Children = children
		return &cp
	case *Superscript:
		cp := *v
		cp.Children = children
		return &cp
	case *Subscript:
		cp := *v
		cp.Children = children
		return &cp
	case *SmallCaps:
		cp := *v
		cp.Children = children
		return &cp
	case *Underline:
		cp := *v
		cp.Children = children
		return &cp
	case *Span:
		cp := *v
		cp.Children = children
		return &cp
	case *InlineQuote:
		cp := *v
		cp.Children = children
		return &cp
	case *Image:
		cp := *v
		cp.Children = children
		return &cp
	case *Link:
		cp := *v
		cp.Children = children
		return &cp
	}
	return n
}

func rewriteRows(rows []*TableRow, fn rewriteFunc) ([]*TableRow, bool) {
	var out []*TableRow
	for i, row := range rows {
		if row == nil {
			continue
		}
		cells, changed := rewriteCells(row.Cells, fn)
		if !changed {
			continue
		}
		if out == nil {
			out = append([]*TableRow(nil), rows...)
		}
		cp := *row
		cp.Cells = cells
		out[i] = &cp
	}
	if out == nil {
		return rows, false
	}
	return out, true
}

func rewriteCells(cells []*TableCell, fn rewriteFunc) ([]*TableCell, bool) {
	var out []*TableCell
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		children, changed := rewriteList(cell.Children, fn)
		if !changed {
			continue
		}
		if out == nil {
			out = append([]*TableCell(nil), cells...)
		}
		cp := *cell
		cp.Children = children
		out[i] = &cp
	}
	if out == nil {
		return cells, false
	}
	return out, true
}
