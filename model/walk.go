package model

import (
	"errors"

	"github.com/tsawler/oxa/internal/wire"
)

// SkipChildren can be returned by a WalkFunc to skip the children of the
// node being visited. It is not returned by Walk.
var SkipChildren = errors.New("model: skip children")

// Visit is one node reached by a walk.
type Visit struct {
	Node  Node
	Path  string // e.g. "children[2].rows[0].cells[1]"
	Depth int    // 0 for the node the walk started at
}

// WalkFunc is called for every node in pre-order. Returning SkipChildren
// prunes the subtree; any other error stops the walk and is returned.
type WalkFunc func(v Visit) error

// Walk visits n and every node below it. Captions, citations and table
// parts are descended into like any other child.
func Walk(n Node, path string, fn WalkFunc) error {
	return walk(Visit{Node: n, Path: path}, fn)
}

// WalkDocument walks the title and then the children of a document. The
// top-level nodes have depth 0.
func WalkDocument(d *Document, fn WalkFunc) error {
	for i, n := range d.Title {
		if n == nil {
			continue
		}
		if err := walk(Visit{Node: n, Path: wire.Index("title", i)}, fn); err != nil {
			return err
		}
	}
	for i, n := range d.Children {
		if n == nil {
			continue
		}
		if err := walk(Visit{Node: n, Path: wire.Index("children", i)}, fn); err != nil {
			return err
		}
	}
	return nil
}

func walk(v Visit, fn WalkFunc) error {
	if err := fn(v); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}
	for _, c := range Children(v.Node, v.Path) {
		c.Depth = v.Depth + 1
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the immediate children of n with their paths, in
// encoding order. Depth is left zero.
func Children(n Node, path string) []Visit {
	var out []Visit
	add := func(field string, i int, c Node) {
		if !isNilNode(c) {
			out = append(out, Visit{Node: c, Path: wire.Index(wire.Key(path, field), i)})
		}
	}
	addInlines := func(field string, ns []Inline) {
		for i, c := range ns {
			add(field, i, c)
		}
	}
	addBlocks := func(field string, ns []Block) {
		for i, c := range ns {
			add(field, i, c)
		}
	}
	addCaption := func(c *Caption) {
		if c == nil {
			return
		}
		addInlines("caption.short", c.Short)
		addBlocks("caption.long", c.Long)
	}

	switch v := n.(type) {
	case *Cite:
		for i, c := range v.Citations {
			add("citations", i, c)
		}
		addInlines("children", v.Children)
	case *Citation:
		addInlines("prefix", v.Prefix)
		addInlines("suffix", v.Suffix)
	case *Table:
		addCaption(&v.Caption)
		out = append(out, Visit{Node: &v.Head, Path: wire.Key(path, "head")})
		for i, r := range v.Rows {
			add("rows", i, r)
		}
	case *TableHead:
		for i, r := range v.Rows {
			add("rows", i, r)
		}
	case *TableRow:
		for i, c := range v.Cells {
			add("cells", i, c)
		}
	default:
		if c, ok := n.(Captioned); ok {
			addCaption(c.CaptionOf())
		}
		switch c := n.(type) {
		case InlineContainer:
			addInlines("children", c.Inlines())
		case BlockContainer:
			addBlocks("children", c.Blocks())
		}
	}
	return out
}

// isNilNode reports whether n is nil or holds a nil pointer.
func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Citation:
		return v == nil
	case *TableRow:
		return v == nil
	case *TableCell:
		return v == nil
	}
	return false
}
