package model

import "strings"

// InlinesText returns the plain text of a sequence of inline nodes. Math is
// kept as its source; citations contribute their display children only.
func InlinesText(nodes []Inline) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeInlineText(&sb, n)
	}
	return sb.String()
}

func writeInlineText(sb *strings.Builder, n Inline) {
	switch v := n.(type) {
	case nil:
	case Leaf:
		sb.WriteString(v.ScalarValue())
	case InlineContainer:
		for _, c := range v.Inlines() {
			writeInlineText(sb, c)
		}
	}
}

// BlockText returns the plain text of a block. Child blocks are separated
// by blank lines.
func BlockText(b Block) string {
	switch v := b.(type) {
	case nil:
		return ""
	case *Table:
		return strings.TrimRight(v.GetText(), "\n")
	case Leaf:
		return v.ScalarValue()
	case InlineContainer:
		return InlinesText(v.Inlines())
	case BlockContainer:
		return BlocksText(v.Blocks())
	}
	return ""
}

// BlocksText joins the text of blocks with blank lines, skipping empty
// ones.
func BlocksText(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if t := BlockText(b); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}
