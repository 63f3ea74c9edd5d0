// Package tables checks the geometry of document tables.
//
// A [model.Table] declares N logical columns in ColumnSpecs. Every row of
// its head and of its body must cover exactly those N columns, counting
// cells from earlier rows that still reserve a column through rowSpan.
//
// # Occupancy Grid
//
// Validation keeps one counter per column holding the first row at which
// the column is free again. For each row:
//
//  1. Cells are taken in order and placed at the first free column
//  2. A placed cell reserves columnSpan columns through row + rowSpan - 1
//  3. After the last cell, every column must be reserved
//
// The head rows and the body rows are separate grids.
//
// # Reasons
//
// Problems are [violation.TableGeometry] violations refined by a
// [violation.Reason]:
//
//   - ColumnOverflow - no free column left, or a span past the last column
//   - RowOverflow - a row span past the last row of its group
//   - RowOverlap - a span across a column reserved by an earlier row
//   - SpanUnderflow - columns left uncovered at the end of a row
//   - InvalidSpan - a span below 1
//   - WidthOverflow - a width outside [0, 1] or widths summing past 1
//
// # Configuration
//
// Validator behavior is controlled by [Config]:
//
//	v := tables.NewValidator()
//	v.Configure(tables.Config{CheckWidths: false})
//	vs := v.Validate(table, "children[3]")
//
// [Place] returns the column each cell lands in, for renderers that need
// the grid.
package tables
