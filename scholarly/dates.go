package scholarly

import (
	"time"

	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/violation"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
}

// ParseDate parses an affiliation date: a calendar date (YYYY-MM-DD) or an
// RFC 3339 date-time.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CheckAffiliation reports malformed dates and a start date later than the
// end date. An affiliation without an end date is current and only its
// start date is checked.
func CheckAffiliation(a *Affiliation, path string) violation.List {
	if a == nil {
		return nil
	}
	var (
		out        violation.List
		start, end time.Time
		okS, okE   bool
	)
	if a.DateStart != "" {
		if start, okS = ParseDate(a.DateStart); !okS {
			out = append(out, violation.New(violation.MalformedDate, wire.Key(path, "dateStart"),
				"cannot parse date %q", a.DateStart))
		}
	}
	if a.DateEnd != "" {
		if end, okE = ParseDate(a.DateEnd); !okE {
			out = append(out, violation.New(violation.MalformedDate, wire.Key(path, "dateEnd"),
				"cannot parse date %q", a.DateEnd))
		}
	}
	if okS && okE && start.After(end) {
		out = append(out, violation.New(violation.DateOrderViolation, path,
			"dateStart %s is after dateEnd %s", a.DateStart, a.DateEnd))
	}
	return out
}

// CheckAffiliations checks the dates of every affiliation reachable from
// the authors, each affiliation once.
func CheckAffiliations(authors []*Author, path string) violation.List {
	return checkDates(authorRoots(authors, path))
}

func checkDates(roots []root) violation.List {
	var (
		out     violation.List
		visited = make(map[any]bool)
	)
	var walk func(n Agent, path string)
	walk = func(n Agent, path string) {
		switch v := n.(type) {
		case *Person:
			if v == nil || visited[v] {
				return
			}
			visited[v] = true
			for i, aff := range v.Affiliations {
				if aff == nil || visited[aff] {
					continue
				}
				visited[aff] = true
				p := wire.Index(wire.Key(path, "affiliations"), i)
				out = append(out, CheckAffiliation(aff, p)...)
				walk(aff.Affiliate, wire.Key(p, "affiliate"))
			}
		case *Organization:
			if v == nil || visited[v] {
				return
			}
			visited[v] = true
			for i, m := range v.Members {
				walk(m, wire.Index(wire.Key(path, "members"), i))
			}
			for _, rel := range []struct {
				key  string
				orgs []*Organization
			}{
				{"parentOrganizations", v.ParentOrganizations},
				{"memberOf", v.MemberOf},
				{"subOrganization", v.SubOrganization},
			} {
				for i, o := range rel.orgs {
					walk(o, wire.Index(wire.Key(path, rel.key), i))
				}
			}
		}
	}
	for _, r := range roots {
		walk(r.agent, r.path)
	}
	return out
}
