package validate

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/oxa/model"
	"github.com/tsawler/oxa/scholarly"
	"github.com/tsawler/oxa/tables"
	"github.com/tsawler/oxa/violation"
)

// Identifiers reports every node whose non-empty id was already used by an
// earlier node. Each repeat is one violation at the repeat's path, naming
// the id and the path of its first use. A Citation's id is a reference to
// its target, not an identity, so citations are skipped; their prefix and
// suffix are still checked.
func Identifiers(doc *model.Document) violation.List {
	if doc == nil {
		return nil
	}
	var (
		out   violation.List
		first = make(map[string]string)
	)
	_ = model.WalkDocument(doc, func(v model.Visit) error {
		if _, ok := v.Node.(*model.Citation); ok {
			return nil
		}
		id := v.Node.Identifier()
		if id == "" {
			return nil
		}
		prev, seen := first[id]
		if !seen {
			first[id] = v.Path
			return nil
		}
		dup := violation.New(violation.DuplicateIdentifier, v.Path, "id %q is already used at %s", id, prev)
		dup.ID = id
		out = append(out, dup)
		return nil
	})
	return out
}

// Depth reports every node nested deeper than limit and does not descend
// below it. Top-level nodes are at depth 1.
func Depth(doc *model.Document, limit int) violation.List {
	if doc == nil || limit <= 0 {
		return nil
	}
	var out violation.List
	_ = model.WalkDocument(doc, func(v model.Visit) error {
		if v.Depth < limit {
			return nil
		}
		out = append(out, violation.New(violation.DepthExceeded, v.Path,
			"node nested %d levels deep, limit is %d", v.Depth+1, limit))
		return model.SkipChildren
	})
	return out
}

// located is a table and its path in the document.
type located struct {
	table *model.Table
	path  string
}

func findTables(doc *model.Document) []located {
	var out []located
	_ = model.WalkDocument(doc, func(v model.Visit) error {
		if t, ok := v.Node.(*model.Table); ok {
			out = append(out, located{t, v.Path})
		}
		return nil
	})
	return out
}

// Tables checks the geometry of every table in the document, nested tables
// included, in document order. A negative width tolerance is treated as
// zero.
func Tables(doc *model.Document, cfg tables.Config) violation.List {
	if doc == nil {
		return nil
	}
	tv := tableValidator(cfg)
	var out violation.List
	for _, t := range findTables(doc) {
		out = append(out, tv.Validate(t.table, t.path)...)
	}
	return out
}

func tableValidator(cfg tables.Config) *tables.Validator {
	tv := tables.NewValidator()
	cfg.WidthTolerance = max(cfg.WidthTolerance, 0)
	_ = tv.Configure(cfg)
	return tv
}

// Metadata decodes the license, author and funding metadata and checks the
// scholarly graph they describe. A metadata entry that fails to decode is
// reported as its schema violation and its graph is not checked.
func Metadata(doc *model.Document) violation.List {
	if doc == nil {
		return nil
	}
	var out violation.List
	if _, _, err := doc.License(); err != nil {
		out = append(out, asViolation(err, "metadata."+model.MetaLicense))
	}
	if authors, err := doc.Authors(); err != nil {
		out = append(out, asViolation(err, "metadata."+model.MetaAuthor))
	} else {
		out = append(out, scholarly.Check(authors, "metadata."+model.MetaAuthor)...)
	}
	if funding, err := doc.Funding(); err != nil {
		out = append(out, asViolation(err, "metadata."+model.MetaFunding))
	} else {
		out = append(out, scholarly.CheckFunding(funding, "metadata."+model.MetaFunding)...)
	}
	return out
}

func asViolation(err error, path string) *violation.Violation {
	var v *violation.Violation
	if errors.As(err, &v) {
		return v
	}
	return violation.Schema(path, "%v", err)
}

// check is one independent unit of validation.
type check func() violation.List

// checks lists the enabled checks in the order their results are reported:
// identifiers, depth, each table in document order, metadata.
func checks(doc *model.Document, o *options) []check {
	var cs []check
	if !o.skipIdentifiers {
		cs = append(cs, func() violation.List { return Identifiers(doc) })
	}
	if o.maxDepth > 0 {
		cs = append(cs, func() violation.List { return Depth(doc, o.maxDepth) })
	}
	if !o.skipTables {
		tv := tableValidator(o.tables)
		for _, t := range findTables(doc) {
			t := t
			cs = append(cs, func() violation.List { return tv.Validate(t.table, t.path) })
		}
	}
	if !o.skipMetadata {
		cs = append(cs, func() violation.List { return Metadata(doc) })
	}
	return cs
}

// Document runs every enabled check and returns all violations found. The
// document is not modified.
func Document(doc *model.Document, opts ...Option) violation.List {
	if doc == nil {
		return nil
	}
	var out violation.List
	for _, c := range checks(doc, newOptions(opts)) {
		out = append(out, c()...)
	}
	return out
}

// Parallel runs the same checks as Document on a bounded pool of
// goroutines. Results are merged in the order Document reports them. The
// only error is the context's, in which case no violations are returned.
func Parallel(ctx context.Context, doc *model.Document, opts ...Option) (violation.List, error) {
	if doc == nil {
		return nil, ctx.Err()
	}
	o := newOptions(opts)
	cs := checks(doc, o)
	results := make([]violation.List, len(cs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, c := range cs {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out violation.List
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
