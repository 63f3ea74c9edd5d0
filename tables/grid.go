package tables

import (
	"fmt"
	"strings"

	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/model"
	"github.com/tsawler/oxa/violation"
)

// Group names a row group of a table.
type Group string

const (
	GroupHead Group = "head"
	GroupBody Group = "body"
)

// Placement is where the grid put one cell.
type Placement struct {
	Group   Group
	Row     int // row index within the group
	Index   int // cell index within the row
	Column  int // first column covered
	RowSpan int
	ColSpan int
	Cell    *model.TableCell
}

// grid is the occupancy grid of one row group. until[c] is the first row
// at which column c is free again.
type grid struct {
	cols  int
	rows  int
	until []int
	path  string // path of the row list
	out   violation.List
	place []Placement
	group Group
}

func newGrid(group Group, cols, rows int, path string) *grid {
	return &grid{
		cols:  cols,
		rows:  rows,
		until: make([]int, cols),
		path:  path,
		group: group,
	}
}

func (g *grid) fail(reason violation.Reason, row, cell int, format string, args ...any) {
	path := wire.Index(g.path, row)
	if cell >= 0 {
		path = wire.Index(wire.Key(path, "cells"), cell)
	}
	v := violation.New(violation.TableGeometry, path, format, args...)
	v.Reason = reason
	v.Row = row
	v.Cell = cell
	g.out = append(g.out, v)
}

// placeRow assigns the cells of row r left to right, each to the first
// column not reserved by an earlier row span, and then checks that every
// column is accounted for.
func (g *grid) placeRow(r int, row *model.TableRow) {
	var cells []*model.TableCell
	if row != nil {
		cells = row.Cells
	}

	col := 0
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		cs, rs := cell.Data.ColumnSpan, cell.Data.RowSpan
		if cs < 1 || rs < 1 {
			g.fail(violation.InvalidSpan, r, i, "columnSpan %d and rowSpan %d must both be at least 1", cs, rs)
			cs, rs = max(cs, 1), max(rs, 1)
		}

		for col < g.cols && g.until[col] > r {
			col++
		}
		if col >= g.cols {
			g.fail(violation.ColumnOverflow, r, i, "no free column left for cell %d of %d in a %d-column table", i+1, len(cells), g.cols)
			return
		}
		if col+cs > g.cols {
			g.fail(violation.ColumnOverflow, r, i, "columnSpan %d at column %d runs past the last column (%d)", cs, col, g.cols-1)
			cs = g.cols - col
		}
		for c := col; c < col+cs; c++ {
			if g.until[c] > r {
				g.fail(violation.RowOverlap, r, i, "column %d is still occupied by a cell from an earlier row", c)
				break
			}
		}
		if r+rs > g.rows {
			g.fail(violation.RowOverflow, r, i, "rowSpan %d at row %d runs past the last row (%d)", rs, r, g.rows-1)
			rs = g.rows - r
		}

		for c := col; c < col+cs; c++ {
			g.until[c] = max(g.until[c], r+rs)
		}
		g.place = append(g.place, Placement{
			Group: g.group, Row: r, Index: i, Column: col, RowSpan: rs, ColSpan: cs, Cell: cell,
		})
		col += cs
	}

	var missing []string
	for c := 0; c < g.cols; c++ {
		if g.until[c] <= r {
			missing = append(missing, fmt.Sprint(c))
		}
	}
	if len(missing) > 0 {
		g.fail(violation.SpanUnderflow, r, -1, "column(s) %s not covered by any cell", strings.Join(missing, ", "))
	}
}

func (g *grid) run(rows []*model.TableRow) {
	for r, row := range rows {
		g.placeRow(r, row)
	}
}
