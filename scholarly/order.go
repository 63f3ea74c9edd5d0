package scholarly

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SortAuthors returns the authors in display order without modifying the
// input slice:
//
//  1. authors with an explicit Order come first, ascending;
//  2. ties and unordered authors are ordered by name key: the first family
//     name of a person's first name, or an organization's name, compared
//     after NFC normalization; an empty key sorts last;
//  3. remaining ties keep their original position.
func SortAuthors(authors []*Author) []*Author {
	type keyed struct {
		author *Author
		name   string
		pos    int
	}

	items := make([]keyed, len(authors))
	for i, a := range authors {
		items[i] = keyed{author: a, name: nameKey(a), pos: i}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		ao, bo := order(a.author), order(b.author)
		switch {
		case ao != nil && bo == nil:
			return true
		case ao == nil && bo != nil:
			return false
		case ao != nil && bo != nil && *ao != *bo:
			return *ao < *bo
		}

		if a.name != b.name {
			if a.name == "" {
				return false
			}
			if b.name == "" {
				return true
			}
			return a.name < b.name
		}
		return a.pos < b.pos
	})

	out := make([]*Author, len(items))
	for i, it := range items {
		out[i] = it.author
	}
	return out
}

func order(a *Author) *int {
	if a == nil {
		return nil
	}
	return a.Order
}

// nameKey returns the secondary sort key of an author.
func nameKey(a *Author) string {
	if a == nil {
		return ""
	}
	var name string
	switch v := a.Author.(type) {
	case *Person:
		if v != nil {
			name = v.FamilyName()
		}
	case *Organization:
		if v != nil {
			name = v.Name
		}
	}
	return norm.NFC.String(strings.TrimSpace(name))
}
