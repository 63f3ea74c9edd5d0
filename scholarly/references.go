package scholarly

import (
	"fmt"

	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/violation"
)

// ReferenceCycle reports whether the values reachable from roots contain a
// cycle by reference: a pointer that is reachable from itself through any
// agent, affiliation or funding edge. Such a graph cannot be written as JSON.
// The returned violation names the entities on the cycle.
func ReferenceCycle(path string, roots ...any) *violation.Violation {
	w := &refWalker{state: make(map[any]int)}
	for i, r := range roots {
		if v := w.visit(r, wire.Index(path, i)); v != nil {
			return v
		}
	}
	return nil
}

type refWalker struct {
	state map[any]int // grey while on the stack, black when done
	stack []any
}

func (w *refWalker) visit(n any, path string) *violation.Violation {
	if isNilRef(n) {
		return nil
	}
	switch w.state[n] {
	case grey:
		return w.cycle(n, path)
	case black:
		return nil
	}
	w.state[n] = grey
	w.stack = append(w.stack, n)
	for _, e := range refEdges(n) {
		if v := w.visit(e.to, wire.Key(path, e.field)); v != nil {
			return v
		}
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.state[n] = black
	return nil
}

func (w *refWalker) cycle(n any, path string) *violation.Violation {
	start := 0
	for i, s := range w.stack {
		if s == n {
			start = i
			break
		}
	}
	var labels []string
	for _, s := range w.stack[start:] {
		if l := refLabel(s); l != "" {
			labels = append(labels, l)
		}
	}
	v := violation.New(violation.OrganizationCycle, path,
		"reference cycle through %v cannot be encoded", labels)
	v.Cycle = labels
	return v
}

type refEdge struct {
	field string
	to    any
}

func refEdges(n any) []refEdge {
	var out []refEdge
	add := func(field string, i int, to any) {
		out = append(out, refEdge{field: fmt.Sprintf("%s[%d]", field, i), to: to})
	}
	switch v := n.(type) {
	case *Author:
		out = append(out, refEdge{field: "author", to: v.Author})
	case *Person:
		for i, a := range v.Affiliations {
			add("affiliations", i, a)
		}
	case *Affiliation:
		out = append(out, refEdge{field: "affiliate", to: v.Affiliate})
	case *Organization:
		for i, o := range v.ParentOrganizations {
			add("parentOrganizations", i, o)
		}
		for i, o := range v.MemberOf {
			add("memberOf", i, o)
		}
		for i, m := range v.Members {
			add("members", i, m)
		}
		for i, o := range v.SubOrganization {
			add("subOrganization", i, o)
		}
	case *FundingSource:
		out = append(out, refEdge{field: "funder", to: v.Funder})
	case *Grant:
		out = append(out,
			refEdge{field: "funder", to: v.Funder},
			refEdge{field: "fundedItem", to: v.FundedItem})
	}
	return out
}

func refLabel(n any) string {
	switch v := n.(type) {
	case *Person:
		return v.DisplayName()
	case *Organization:
		return v.Name
	}
	return ""
}

// isNilRef reports whether n is nil or a typed nil pointer of a known kind.
func isNilRef(n any) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Author:
		return v == nil
	case *Person:
		return v == nil
	case *Affiliation:
		return v == nil
	case *Organization:
		return v == nil
	case *FundingSource:
		return v == nil
	case *Grant:
		return v == nil
	}
	return false
}
