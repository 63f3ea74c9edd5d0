// Package violation defines the error kinds reported by the oxa decoder and
// validators.
//
// Every problem is a [*Violation] carrying a [Kind], the location of the
// offending node and a human readable message. Validators never stop at the
// first problem; they return a [List] with everything found in one pass:
//
//	vs := validate.Document(doc)
//	for _, v := range vs {
//	    fmt.Println(v.Path, v.Message)
//	}
//	if err := vs.Err(); err != nil {
//	    // at least one violation
//	}
//
// A Violation matches its kind's sentinel with errors.Is:
//
//	if errors.Is(err, violation.ErrTableGeometry) { ... }
package violation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a violation.
type Kind int

const (
	// SchemaViolation is a required field missing or a value of the wrong
	// shape. It is raised at decode time and is fatal to that decode.
	SchemaViolation Kind = iota
	// DuplicateIdentifier is a non-empty id used by more than one node.
	DuplicateIdentifier
	// TableGeometry is an inconsistency between column specs and cell spans.
	TableGeometry
	// OrganizationCycle is an organization that is transitively its own
	// parent or member container.
	OrganizationCycle
	// DateOrderViolation is an affiliation whose start is after its end.
	DateOrderViolation
	// MalformedDate is an affiliation date that is neither a date nor a
	// date-time.
	MalformedDate
	// DepthExceeded is a tree nested deeper than the configured limit.
	DepthExceeded
)

func (k Kind) String() string {
	switch k {
	case SchemaViolation:
		return "SchemaViolation"
	case DuplicateIdentifier:
		return "DuplicateIdentifier"
	case TableGeometry:
		return "TableGeometryError"
	case OrganizationCycle:
		return "OrganizationCycle"
	case DateOrderViolation:
		return "DateOrderViolation"
	case MalformedDate:
		return "MalformedDate"
	case DepthExceeded:
		return "DepthExceeded"
	default:
		return "Unknown"
	}
}

// Sentinel errors, one per Kind.
var (
	ErrSchema              = errors.New("schema violation")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrTableGeometry       = errors.New("table geometry error")
	ErrOrganizationCycle   = errors.New("organization cycle")
	ErrDateOrder           = errors.New("affiliation date order violation")
	ErrMalformedDate       = errors.New("malformed date")
	ErrDepthExceeded       = errors.New("maximum depth exceeded")
)

// Sentinel returns the sentinel error for the kind.
func (k Kind) Sentinel() error {
	switch k {
	case SchemaViolation:
		return ErrSchema
	case DuplicateIdentifier:
		return ErrDuplicateIdentifier
	case TableGeometry:
		return ErrTableGeometry
	case OrganizationCycle:
		return ErrOrganizationCycle
	case DateOrderViolation:
		return ErrDateOrder
	case MalformedDate:
		return ErrMalformedDate
	case DepthExceeded:
		return ErrDepthExceeded
	default:
		return nil
	}
}

// Reason refines a TableGeometry violation.
type Reason int

const (
	NoReason Reason = iota
	// ColumnOverflow: a cell has no free column left in its row, or its
	// column span runs past the last declared column.
	ColumnOverflow
	// RowOverflow: a cell's row span runs past the last row of its group.
	RowOverflow
	// RowOverlap: a cell's footprint covers a column still reserved by a
	// row-spanning cell from an earlier row.
	RowOverlap
	// SpanUnderflow: after placing every cell of a row some columns are
	// still unaccounted for.
	SpanUnderflow
	// InvalidSpan: columnSpan or rowSpan below 1.
	InvalidSpan
	// WidthOverflow: declared column widths sum past 1, or a width lies
	// outside [0, 1].
	WidthOverflow
)

func (r Reason) String() string {
	switch r {
	case ColumnOverflow:
		return "ColumnOverflow"
	case RowOverflow:
		return "RowOverflow"
	case RowOverlap:
		return "RowOverlap"
	case SpanUnderflow:
		return "SpanUnderflow"
	case InvalidSpan:
		return "InvalidSpan"
	case WidthOverflow:
		return "WidthOverflow"
	default:
		return ""
	}
}

// Violation is a single problem found while decoding or validating.
type Violation struct {
	Kind    Kind
	Reason  Reason   // TableGeometry only
	Path    string   // location in the document, e.g. "children[2].rows[0]"
	ID      string   // offending identifier, when there is one
	Row     int      // row index within its group (TableGeometry), else -1
	Cell    int      // cell index within its row (TableGeometry), else -1
	Cycle   []string // organizations forming the cycle (OrganizationCycle)
	Message string
}

// New creates a violation of the given kind at path.
func New(kind Kind, path, format string, args ...any) *Violation {
	return &Violation{
		Kind:    kind,
		Path:    path,
		Row:     -1,
		Cell:    -1,
		Message: fmt.Sprintf(format, args...),
	}
}

// Schema is shorthand for a SchemaViolation at path.
func Schema(path, format string, args ...any) *Violation {
	return New(SchemaViolation, path, format, args...)
}

func (v *Violation) Error() string {
	var sb strings.Builder
	sb.WriteString(v.Kind.String())
	if v.Reason != NoReason {
		sb.WriteString("(")
		sb.WriteString(v.Reason.String())
		sb.WriteString(")")
	}
	if v.Path != "" {
		sb.WriteString(" at ")
		sb.WriteString(v.Path)
	}
	if v.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(v.Message)
	}
	return sb.String()
}

// Unwrap returns the sentinel for the violation's kind.
func (v *Violation) Unwrap() error {
	return v.Kind.Sentinel()
}

// List is the set of violations produced by one validation pass.
type List []*Violation

// Err returns nil for an empty list and otherwise an error joining every
// violation.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, v := range l {
		errs[i] = v
	}
	return errors.Join(errs...)
}

// ByKind returns the violations of one kind, in order.
func (l List) ByKind(kind Kind) List {
	var out List
	for _, v := range l {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// Has reports whether any violation is of the given kind.
func (l List) Has(kind Kind) bool {
	for _, v := range l {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// Sort orders violations by path and then kind. Paths compare by their
// textual form, so siblings with index 10 sort before index 2; callers that
// need document order should rely on the order validators emit instead.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Path != l[j].Path {
			return l[i].Path < l[j].Path
		}
		return l[i].Kind < l[j].Kind
	})
}

// String renders one violation per line.
func (l List) String() string {
	var sb strings.Builder
	for i, v := range l {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(v.Error())
	}
	return sb.String()
}
