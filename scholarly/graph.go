package scholarly

import (
	"fmt"
	"strings"

	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/violation"
)

// Relation selects the organization edges a cycle check follows.
type Relation int

const (
	// ParentRelation follows ParentOrganizations.
	ParentRelation Relation = iota
	// MembershipRelation follows MemberOf.
	MembershipRelation
)

func (r Relation) String() string {
	if r == MembershipRelation {
		return "memberOf"
	}
	return "parentOrganizations"
}

func (r Relation) targets(o *Organization) []*Organization {
	if r == MembershipRelation {
		return o.MemberOf
	}
	return o.ParentOrganizations
}

// OrganizationKey returns the identity used by the cycle check. Two
// organizations are the same entity when their first identifiers match;
// an organization without identifiers is only ever itself. Names are never
// compared, since distinct organizations may share one.
func OrganizationKey(o *Organization) string {
	if len(o.Identifiers) > 0 && o.Identifiers[0] != nil {
		id := o.Identifiers[0]
		return id.PropertyID + "=" + string(wire.Compact(id.Value))
	}
	return fmt.Sprintf("%p", o)
}

// CheckOrganization reports every cycle reachable from org along
// parentOrganizations and, independently, along memberOf.
func CheckOrganization(org *Organization, path string) violation.List {
	if org == nil {
		return nil
	}
	c := newCollector()
	c.collect(org, path)
	return c.cycles()
}

// CheckAuthors reports every organization cycle reachable from an author
// list: organizations that are authors, affiliates of authors and anything
// reachable from those through organization or affiliation edges.
func CheckAuthors(authors []*Author, path string) violation.List {
	return checkCycles(authorRoots(authors, path))
}

func checkCycles(roots []root) violation.List {
	c := newCollector()
	for _, r := range roots {
		c.collect(r.agent, r.path)
	}
	return c.cycles()
}

// orgNode is one organization identity in the graph.
type orgNode struct {
	key   string
	label string
	path  string
	edges [2][]string // by Relation
}

// collector gathers organizations reachable through any edge. It walks by
// pointer, so it terminates on graphs that are cyclic by reference too.
type collector struct {
	visited map[any]bool
	order   []string
	nodes   map[string]*orgNode
}

func newCollector() *collector {
	return &collector{
		visited: make(map[any]bool),
		nodes:   make(map[string]*orgNode),
	}
}

func (c *collector) collect(n any, path string) {
	switch v := n.(type) {
	case *Organization:
		if v == nil || c.visited[v] {
			return
		}
		c.visited[v] = true
		node := c.node(v, path)
		for _, rel := range []Relation{ParentRelation, MembershipRelation} {
			for _, t := range rel.targets(v) {
				if t != nil {
					node.addEdge(rel, OrganizationKey(t))
				}
			}
		}
		c.collectOrgs(v.ParentOrganizations, wire.Key(path, "parentOrganizations"))
		c.collectOrgs(v.MemberOf, wire.Key(path, "memberOf"))
		c.collectOrgs(v.SubOrganization, wire.Key(path, "subOrganization"))
		for i, m := range v.Members {
			c.collect(m, wire.Index(wire.Key(path, "members"), i))
		}
	case *Person:
		if v == nil || c.visited[v] {
			return
		}
		c.visited[v] = true
		for i, aff := range v.Affiliations {
			if aff != nil {
				c.collect(aff.Affiliate, wire.Key(wire.Index(wire.Key(path, "affiliations"), i), "affiliate"))
			}
		}
	}
}

func (c *collector) collectOrgs(orgs []*Organization, path string) {
	for i, o := range orgs {
		c.collect(o, wire.Index(path, i))
	}
}

func (c *collector) node(o *Organization, path string) *orgNode {
	key := OrganizationKey(o)
	if n, ok := c.nodes[key]; ok {
		return n
	}
	label := o.Name
	if label == "" {
		label = "<unnamed organization>"
	}
	n := &orgNode{key: key, label: label, path: path}
	c.nodes[key] = n
	c.order = append(c.order, key)
	return n
}

func (n *orgNode) addEdge(rel Relation, key string) {
	for _, e := range n.edges[rel] {
		if e == key {
			return
		}
	}
	n.edges[rel] = append(n.edges[rel], key)
}

// cycles runs a colouring DFS per relation over the collected identities.
func (c *collector) cycles() violation.List {
	var out violation.List
	for _, rel := range []Relation{ParentRelation, MembershipRelation} {
		out = append(out, c.cyclesFor(rel)...)
	}
	return out
}

const (
	white = iota
	grey
	black
)

func (c *collector) cyclesFor(rel Relation) violation.List {
	var (
		out   violation.List
		color = make(map[string]int, len(c.order))
		stack []string
		seen  = make(map[string]bool)
	)

	var visit func(key string)
	visit = func(key string) {
		color[key] = grey
		stack = append(stack, key)
		node := c.nodes[key]
		for _, next := range node.edges[rel] {
			if _, known := c.nodes[next]; !known {
				continue
			}
			switch color[next] {
			case white:
				visit(next)
			case grey:
				start := indexOf(stack, next)
				cycle := append([]string(nil), stack[start:]...)
				sig := signature(cycle)
				if !seen[sig] {
					seen[sig] = true
					out = append(out, c.cycleViolation(rel, cycle))
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[key] = black
	}

	for _, key := range c.order {
		if color[key] == white {
			visit(key)
		}
	}
	return out
}

func (c *collector) cycleViolation(rel Relation, cycle []string) *violation.Violation {
	labels := make([]string, 0, len(cycle)+1)
	for _, k := range cycle {
		labels = append(labels, c.nodes[k].label)
	}
	first := c.nodes[cycle[0]]
	v := violation.New(violation.OrganizationCycle, first.path,
		"%s -> %s (%s)", strings.Join(labels, " -> "), labels[0], rel)
	v.ID = first.label
	v.Cycle = labels
	return v
}

// signature identifies a cycle independent of its starting node.
func signature(cycle []string) string {
	lo := 0
	for i, k := range cycle {
		if k < cycle[lo] {
			lo = i
		}
	}
	rotated := append(append([]string(nil), cycle[lo:]...), cycle[:lo]...)
	return strings.Join(rotated, "\x00")
}

func indexOf(stack []string, key string) int {
	for i, k := range stack {
		if k == key {
			return i
		}
	}
	return 0
}
