package oxa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/oxa/codec"
	"github.com/tsawler/oxa/format"
	"github.com/tsawler/oxa/model"
	"github.com/tsawler/oxa/scholarly"
	"github.com/tsawler/oxa/tables"
	"github.com/tsawler/oxa/validate"
	"github.com/tsawler/oxa/violation"
)

// Checker provides a fluent interface for loading and checking a document.
// Each configuration method returns a new Checker instance, making it
// safe for concurrent use and allowing method chaining.
type Checker struct {
	// Source (only one is set)
	filename string
	data     []byte
	inMemory bool
	doc      *model.Document

	// Forced format, Unknown means detect
	format format.Format

	// Configuration
	options CheckOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Checker with a copy of its options.
// The source bytes and document are shared; neither is ever modified.
func (c *Checker) clone() *Checker {
	return &Checker{
		filename: c.filename,
		data:     c.data,
		inMemory: c.inMemory,
		doc:      c.doc,
		format:   c.format,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// fail returns a copy of the Checker carrying err, unless it already
// carries one.
func (c *Checker) fail(err error) *Checker {
	n := c.clone()
	if n.err == nil {
		n.err = err
	}
	return n
}

// ============================================================================
// Configuration Methods (return new Checker instance)
// ============================================================================

// MaxDepth bounds the nesting depth of the document tree. Zero disables the
// check; negative values are an error.
//
// Example:
//
//	vs, err := oxa.Open("paper.json").MaxDepth(32).Validate(ctx)
func (c *Checker) MaxDepth(depth int) *Checker {
	if depth < 0 {
		return c.fail(fmt.Errorf("max depth must not be negative, got %d", depth))
	}
	n := c.clone()
	n.options.maxDepth = depth
	return n
}

// Workers sets how many checks run at once. 1 (the default) validates
// sequentially.
//
// Example:
//
//	vs, err := oxa.Open("book.json").Workers(8).Validate(ctx)
func (c *Checker) Workers(n int) *Checker {
	if n < 1 {
		return c.fail(fmt.Errorf("workers must be at least 1, got %d", n))
	}
	nc := c.clone()
	nc.options.workers = n
	return nc
}

// SkipIdentifiers disables the identifier uniqueness check.
func (c *Checker) SkipIdentifiers() *Checker {
	n := c.clone()
	n.options.skipIdentifiers = true
	return n
}

// SkipTables disables table geometry checks.
func (c *Checker) SkipTables() *Checker {
	n := c.clone()
	n.options.skipTables = true
	return n
}

// SkipMetadata disables the author, funding and license checks.
func (c *Checker) SkipMetadata() *Checker {
	n := c.clone()
	n.options.skipMetadata = true
	return n
}

// TableConfig sets the table geometry configuration.
func (c *Checker) TableConfig(cfg tables.Config) *Checker {
	if cfg.WidthTolerance < 0 {
		return c.fail(errors.New("width tolerance must not be negative"))
	}
	n := c.clone()
	n.options.tableConfig = cfg
	return n
}

// Format forces the input format instead of detecting it.
//
// Example:
//
//	doc, err := oxa.FromBytes(data).Format(format.YAML).Document()
func (c *Checker) Format(f format.Format) *Checker {
	n := c.clone()
	n.format = f
	return n
}

// MaxSize limits how many bytes Open reads.
func (c *Checker) MaxSize(bytes int64) *Checker {
	if bytes <= 0 {
		return c.fail(fmt.Errorf("max size must be positive, got %d", bytes))
	}
	n := c.clone()
	n.options.maxSize = bytes
	return n
}

// Logger sets the logger used for debug tracing. The default is
// slog.Default().
func (c *Checker) Logger(l *slog.Logger) *Checker {
	n := c.clone()
	n.options.logger = l
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document loads and decodes the document. Decoding is strict: a
// structural problem is returned as a *violation.Violation.
func (c *Checker) Document() (*model.Document, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.doc != nil {
		return c.doc, nil
	}
	log := c.options.log()

	data, name, err := c.source()
	if err != nil {
		return nil, err
	}
	f := c.format
	if f == format.Unknown {
		f = format.Resolve(name, data)
	}
	log.Debug("decoding document", "source", name, "format", f.String(), "bytes", len(data))

	var doc *model.Document
	switch f {
	case format.JSON:
		doc, err = codec.Unmarshal(data)
	case format.YAML:
		doc, err = codec.UnmarshalYAML(data)
	default:
		return nil, fmt.Errorf("%s: cannot detect document format", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

func (c *Checker) source() ([]byte, string, error) {
	if c.inMemory {
		return c.data, "<bytes>", nil
	}
	if c.filename == "" {
		return nil, "", fmt.Errorf("no filename specified")
	}
	f, err := os.Open(c.filename)
	if err != nil {
		return nil, c.filename, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, c.options.maxSize+1))
	if err != nil {
		return nil, c.filename, fmt.Errorf("failed to read document: %w", err)
	}
	if int64(len(data)) > c.options.maxSize {
		return nil, c.filename, fmt.Errorf("%s: exceeds the %d byte limit", c.filename, c.options.maxSize)
	}
	return data, c.filename, nil
}

// Validate loads the document and runs every enabled check. The returned
// list holds all violations found; err is reserved for documents that
// cannot be loaded and for cancellation.
//
// Example:
//
//	vs, err := oxa.Open("paper.json").Validate(ctx)
//	if err == nil && len(vs) == 0 {
//	    fmt.Println("ok")
//	}
func (c *Checker) Validate(ctx context.Context) (violation.List, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	log := c.options.log()
	opts := c.options.validateOptions()

	var vs violation.List
	if c.options.workers > 1 {
		vs, err = validate.Parallel(ctx, doc, opts...)
		if err != nil {
			return nil, err
		}
	} else {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs = validate.Document(doc, opts...)
	}
	log.Debug("validated document", "violations", len(vs), "workers", c.options.workers)
	return vs, nil
}

// Authors returns the document's authors in display order: explicit order
// first, then by family or organization name.
func (c *Checker) Authors() ([]*scholarly.Author, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	authors, err := doc.Authors()
	if err != nil {
		return nil, err
	}
	return scholarly.SortAuthors(authors), nil
}

// Funding returns the document's funding records in document order.
func (c *Checker) Funding() ([]scholarly.Funding, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	return doc.Funding()
}

// Outline returns the headings of the document in order.
func (c *Checker) Outline() ([]model.OutlineEntry, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	return doc.Outline(), nil
}

// Text returns the plain text of the document: the title, then each
// top-level block, separated by blank lines.
func (c *Checker) Text() (string, error) {
	doc, err := c.Document()
	if err != nil {
		return "", err
	}
	return doc.ExtractText(), nil
}

// Tables returns every table in document order with its path and cell
// placements.
func (c *Checker) Tables() ([]TableLayout, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	var out []TableLayout
	_ = model.WalkDocument(doc, func(v model.Visit) error {
		t, ok := v.Node.(*model.Table)
		if !ok {
			return nil
		}
		cells, vs := tables.Place(t)
		out = append(out, TableLayout{Path: v.Path, Table: t, Cells: cells, Violations: vs})
		return nil
	})
	return out, nil
}

// TableLayout is one table of a document with its computed grid.
type TableLayout struct {
	Path       string
	Table      *model.Table
	Cells      []tables.Placement
	Violations violation.List // geometry problems; cells past the grid are clamped
}
