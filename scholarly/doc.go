// Package scholarly models who created and funded a work: persons,
// organizations, affiliations, authors, funding sources and grants.
//
// # Graph shape
//
// Unlike the document tree, the organization graph is not a tree.
// ParentOrganizations and MemberOf may form cycles, either by identity (two
// organizations whose first identifiers match) or by reference (a pointer
// reachable from itself). CheckOrganization and CheckAuthors find cycles of
// the first kind and terminate on both:
//
//	for _, v := range scholarly.CheckAuthors(authors, "metadata.author") {
//	    fmt.Println(v)
//	}
//
// Reference cycles cannot be written as JSON. EncodeAuthors and
// EncodeFunding refuse them with an OrganizationCycle violation.
//
// # Ordering
//
// SortAuthors returns authors in display order: explicit Order first, then
// family name, then original position.
//
// # Wire format
//
// Every type encodes to an object with a "type" discriminant followed by its
// declared fields. Unknown keys of open records are kept in Extra and written
// back after the declared fields.
package scholarly
