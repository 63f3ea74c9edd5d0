package scholarly

import (
	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/violation"
)

// root is an agent a metadata check starts from.
type root struct {
	agent Agent
	path  string
}

func authorRoots(authors []*Author, path string) []root {
	var roots []root
	for i, a := range authors {
		if a != nil && a.Author != nil {
			roots = append(roots, root{a.Author, wire.Key(wire.Index(path, i), "author")})
		}
	}
	return roots
}

// fundingRoots returns the funders and the funded agents of a funding list.
func fundingRoots(funding []Funding, path string) []root {
	var roots []root
	for i, f := range funding {
		if f == nil {
			continue
		}
		p := wire.Index(path, i)
		if src := f.Source(); src.Funder != nil {
			roots = append(roots, root{src.Funder, wire.Key(p, "funder")})
		}
		if g, ok := f.(*Grant); ok {
			if a, ok := g.FundedItem.(Agent); ok && a != nil {
				roots = append(roots, root{a, wire.Key(p, "fundedItem")})
			}
		}
	}
	return roots
}

// Check runs every metadata check over an author list: organization cycles,
// affiliation dates and negative orders.
func Check(authors []*Author, path string) violation.List {
	var out violation.List
	for i, a := range authors {
		if a != nil && a.Order != nil && *a.Order < 0 {
			out = append(out, violation.Schema(wire.Key(wire.Index(path, i), "order"),
				"order must be non-negative, got %d", *a.Order))
		}
	}
	roots := authorRoots(authors, path)
	out = append(out, checkCycles(roots)...)
	out = append(out, checkDates(roots)...)
	return out
}

// CheckFunding runs the organization cycle and affiliation date checks over
// the funders and funded agents of a funding list.
func CheckFunding(funding []Funding, path string) violation.List {
	roots := fundingRoots(funding, path)
	return append(checkCycles(roots), checkDates(roots)...)
}
