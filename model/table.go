package model

import (
	"encoding/json"
	"strings"
)

// Alignment is the horizontal alignment of a column or cell.
type Alignment string

const (
	AlignDefault Alignment = "default"
	AlignLeft    Alignment = "left"
	AlignRight   Alignment = "right"
	AlignCenter  Alignment = "center"
)

// Valid reports whether a is one of the four alignments.
func (a Alignment) Valid() bool {
	switch a {
	case AlignDefault, AlignLeft, AlignRight, AlignCenter:
		return true
	}
	return false
}

// ColumnSpec describes one logical column of a table. It is an open record:
// unknown keys are kept in Extra.
type ColumnSpec struct {
	Alignment Alignment // "" means not set
	Width     *float64  // fraction of the container width, in [0, 1]
	Extra     map[string]json.RawMessage
}

// EffectiveAlignment returns the alignment, falling back to AlignDefault
// when none is set.
func (c ColumnSpec) EffectiveAlignment() Alignment {
	if c.Alignment == "" {
		return AlignDefault
	}
	return c.Alignment
}

// CellSpec is the ColumnSpec of a cell plus its spans.
type CellSpec struct {
	ColumnSpec
	ColumnSpan int
	RowSpan    int
}

// TableAttr is the Attr of a table, its head and its rows. Data holds the
// column spec inherited by their cells.
type TableAttr struct {
	ID      string
	Classes []string
	Data    ColumnSpec
}

// Identifier returns the id.
func (a TableAttr) Identifier() string { return a.ID }

// CellAttr is the Attr of a table cell.
type CellAttr struct {
	ID      string
	Classes []string
	Data    CellSpec
}

// Identifier returns the id.
func (a CellAttr) Identifier() string { return a.ID }

// Table is a table. ColumnSpecs declares the number of logical columns;
// Head and Rows are independent row groups whose geometry must agree with
// it (see package tables).
type Table struct {
	TableAttr
	Caption     Caption
	ColumnSpecs []*ColumnSpec
	Head        TableHead
	Rows        []*TableRow
}

func (*Table) Type() NodeType        { return NodeTypeTable }
func (t *Table) CaptionOf() *Caption { return &t.Caption }
func (*Table) block()                {}

// NewTable creates a table with the given number of default columns and no
// rows.
func NewTable(cols int) *Table {
	t := &Table{ColumnSpecs: make([]*ColumnSpec, cols)}
	for i := range t.ColumnSpecs {
		t.ColumnSpecs[i] = &ColumnSpec{}
	}
	return t
}

// ColCount returns the number of declared columns.
func (t *Table) ColCount() int {
	return len(t.ColumnSpecs)
}

// RowCount returns the number of head and body rows.
func (t *Table) RowCount() int {
	return len(t.Head.Rows) + len(t.Rows)
}

// GetText returns the plain text of the table, one row per line with cells
// separated by tabs. Head rows come first.
func (t *Table) GetText() string {
	var sb strings.Builder
	write := func(rows []*TableRow) {
		for _, row := range rows {
			if row == nil {
				continue
			}
			for j, cell := range row.Cells {
				if cell != nil {
					sb.WriteString(BlocksText(cell.Children))
				}
				if j < len(row.Cells)-1 {
					sb.WriteString("\t")
				}
			}
			sb.WriteString("\n")
		}
	}
	write(t.Head.Rows)
	write(t.Rows)
	return sb.String()
}

// TableHead holds the header rows of a table.
type TableHead struct {
	TableAttr
	Rows []*TableRow
}

func (*TableHead) Type() NodeType { return NodeTypeTableHead }

// TableRow is one row of cells.
type TableRow struct {
	TableAttr
	Cells []*TableCell
}

func (*TableRow) Type() NodeType { return NodeTypeTableRow }

// NewRow creates a row from cells.
func NewRow(cells ...*TableCell) *TableRow {
	return &TableRow{Cells: cells}
}

// TableCell is a cell of block content spanning one or more grid slots.
type TableCell struct {
	CellAttr
	Children []Block
}

func (*TableCell) Type() NodeType    { return NodeTypeTableCell }
func (c *TableCell) Blocks() []Block { return c.Children }

// NewCell creates a cell spanning one row and one column.
func NewCell(children ...Block) *TableCell {
	return &TableCell{
		CellAttr: CellAttr{Data: CellSpec{ColumnSpan: 1, RowSpan: 1}},
		Children: children,
	}
}

// Span returns a copy of the cell with the given spans.
func (c *TableCell) Span(rows, cols int) *TableCell {
	cp := *c
	cp.Data.RowSpan = rows
	cp.Data.ColumnSpan = cols
	return &cp
}

// EffectiveAlignment resolves the alignment of a cell: its own, else its
// column's, else AlignDefault.
func (c *TableCell) EffectiveAlignment(column *ColumnSpec) Alignment {
	if c.Data.Alignment != "" {
		return c.Data.Alignment
	}
	if column != nil {
		return column.EffectiveAlignment()
	}
	return AlignDefault
}
