package tables

import (
	"errors"

	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/model"
	"github.com/tsawler/oxa/violation"
)

// Config holds validator configuration
type Config struct {
	// Whether to check declared column widths
	CheckWidths bool

	// Slack allowed on the sum of column widths, for rounding in producers
	WidthTolerance float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		CheckWidths:    true,
		WidthTolerance: 1e-9,
	}
}

// Validator checks table geometry
type Validator struct {
	config Config
}

// NewValidator creates a validator with the default configuration
func NewValidator() *Validator {
	return &Validator{config: DefaultConfig()}
}

// Configure sets validator parameters
func (v *Validator) Configure(config Config) error {
	if config.WidthTolerance < 0 {
		return errors.New("tables: width tolerance must not be negative")
	}
	v.config = config
	return nil
}

// Validate checks a table located at path and returns every geometry
// violation found. The head rows and the body rows are checked as two
// independent groups; a row span never crosses from one into the other.
func (v *Validator) Validate(t *model.Table, path string) violation.List {
	if t == nil {
		return nil
	}
	var out violation.List
	if v.config.CheckWidths {
		out = append(out, v.checkWidths(t, path)...)
	}
	head, body := groups(t, path)
	out = append(out, head.out...)
	out = append(out, body.out...)
	return out
}

func (v *Validator) checkWidths(t *model.Table, path string) violation.List {
	var (
		out violation.List
		sum float64
	)
	for i, spec := range t.ColumnSpecs {
		if spec == nil || spec.Width == nil {
			continue
		}
		w := *spec.Width
		if w < 0 || w > 1 {
			out = append(out, widthViolation(wire.Key(wire.Index(wire.Key(path, "columnSpecs"), i), "width"),
				"width %v is outside [0, 1]", w))
		}
		sum += w
	}
	if sum > 1+v.config.WidthTolerance {
		out = append(out, widthViolation(wire.Key(path, "columnSpecs"),
			"column widths sum to %v, more than 1", sum))
	}
	return out
}

func widthViolation(path, format string, args ...any) *violation.Violation {
	v := violation.New(violation.TableGeometry, path, format, args...)
	v.Reason = violation.WidthOverflow
	return v
}

func groups(t *model.Table, path string) (head, body *grid) {
	cols := len(t.ColumnSpecs)
	head = newGrid(GroupHead, cols, len(t.Head.Rows), wire.Key(wire.Key(path, "head"), "rows"))
	head.run(t.Head.Rows)
	body = newGrid(GroupBody, cols, len(t.Rows), wire.Key(path, "rows"))
	body.run(t.Rows)
	return head, body
}

// Validate checks a table with the default configuration.
func Validate(t *model.Table, path string) violation.List {
	return NewValidator().Validate(t, path)
}

// Place returns the grid position of every cell that could be placed, head
// rows first, together with any geometry violations. Cells that overflow
// the table are clamped to it.
func Place(t *model.Table) ([]Placement, violation.List) {
	if t == nil {
		return nil, nil
	}
	head, body := groups(t, "")
	placements := append(head.place, body.place...)
	out := append(head.out, body.out...)
	return placements, out
}

// ColumnSpecAt returns the spec of the column a placement starts in, or nil.
func ColumnSpecAt(t *model.Table, p Placement) *model.ColumnSpec {
	if p.Column < 0 || p.Column >= len(t.ColumnSpecs) {
		return nil
	}
	return t.ColumnSpecs[p.Column]
}
