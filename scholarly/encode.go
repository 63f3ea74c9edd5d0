package scholarly

import (
	"encoding/json"

	"github.com/tsawler/oxa/internal/wire"
)

// Wire type names.
const (
	typePropertyValue  = "PropertyValue"
	typePersonName     = "PersonName"
	typePerson         = "Person"
	typeOrganization   = "Organization"
	typeAffiliation    = "Affiliation"
	typeAuthor         = "Author"
	typeFundingSource  = "FundingSource"
	typeGrant          = "Grant"
	typeMonetaryAmount = "MonetaryAmount"
	typeScholarlyWork  = "ScholarlyWork"
	typeEvent          = "Event"
	typeProduct        = "Product"
	typeService        = "Service"
	typeMediaObject    = "MediaObject"
)

// MarshalJSON implements json.Marshaler.
func (p *PropertyValue) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typePropertyValue)
	o.String("propertyId", p.PropertyID)
	if p.Value == nil {
		o.Raw("value", []byte("null"))
	} else {
		o.Raw("value", p.Value)
	}
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (n *PersonName) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typePersonName)
	optArray(o, "familyNames", n.FamilyNames)
	optArray(o, "givenNames", n.GivenNames)
	optArray(o, "honorificPrefixes", n.HonorificPrefixes)
	optArray(o, "honorificSuffixes", n.HonorificSuffixes)
	o.Inline(n.Extra)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (p *Person) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typePerson)
	o.Array("names", p.Names)
	optArray(o, "identifiers", p.Identifiers)
	optArray(o, "affiliations", p.Affiliations)
	optArray(o, "emails", p.Emails)
	if p.Address != nil {
		o.Field("address", p.Address)
	}
	o.Inline(p.Extra)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler. The organization graph must be
// acyclic by reference; EncodeAuthors and EncodeFunding check this first.
func (org *Organization) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typeOrganization)
	o.String("name", org.Name)
	o.Array("identifiers", org.Identifiers)
	optArray(o, "parentOrganizations", org.ParentOrganizations)
	optArray(o, "memberOf", org.MemberOf)
	optArray(o, "members", org.Members)
	optArray(o, "subOrganization", org.SubOrganization)
	if org.Address != nil {
		o.Field("address", org.Address)
	}
	optArray(o, "uris", org.URIs)
	optArray(o, "emails", org.Emails)
	o.Inline(org.Extra)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (a *Affiliation) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typeAffiliation)
	o.Field("affiliate", a.Affiliate)
	o.OptString("dateStart", a.DateStart)
	o.OptString("dateEnd", a.DateEnd)
	o.String("affiliationType", a.AffiliationType)
	o.Inline(a.Extra)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (r ContributorRole) MarshalJSON() ([]byte, error) {
	if r.Property != nil {
		return r.Property.MarshalJSON()
	}
	return wire.Marshal(string(r.CRediT))
}

// MarshalJSON implements json.Marshaler.
func (a *Author) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typeAuthor)
	o.Field("author", a.Author)
	o.Array("contributorRoles", a.ContributorRoles)
	if a.Order != nil {
		o.Field("order", *a.Order)
	}
	o.Inline(a.Extra)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (m *MonetaryAmount) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typeMonetaryAmount)
	o.String("currency", m.Currency)
	o.Field("value", m.Value)
	o.Inline(m.Extra)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (f *FundingSource) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typeFundingSource)
	f.writeFields(o)
	o.Inline(f.Extra)
	return o.Bytes()
}

func (f *FundingSource) writeFields(o *wire.Object) {
	optArray(o, "identifiers", f.Identifiers)
	o.Field("funder", f.Funder)
	o.Field("funding", f.Funding)
	o.OptString("description", f.Description)
}

// MarshalJSON implements json.Marshaler.
func (g *Grant) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typeGrant)
	g.writeFields(o)
	o.Field("fundedItem", g.FundedItem)
	o.Inline(g.Extra)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (l *License) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.OptString("uri", l.URI)
	o.OptString("name", l.Name)
	o.OptString("text", l.Text)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (a *PostalAddress) MarshalJSON() ([]byte, error) {
	return wire.EncodeMap(a.Fields), nil
}

// MarshalJSON implements json.Marshaler.
func (m *MediaObject) MarshalJSON() ([]byte, error) {
	o := wire.NewObject()
	o.Type(typeMediaObject)
	o.String("contentUri", m.ContentURI)
	o.Inline(m.Extra)
	return o.Bytes()
}

// MarshalJSON implements json.Marshaler.
func (w *ScholarlyWork) MarshalJSON() ([]byte, error) { return opaque(typeScholarlyWork, w.Fields) }

// MarshalJSON implements json.Marshaler.
func (e *Event) MarshalJSON() ([]byte, error) { return opaque(typeEvent, e.Fields) }

// MarshalJSON implements json.Marshaler.
func (p *Product) MarshalJSON() ([]byte, error) { return opaque(typeProduct, p.Fields) }

// MarshalJSON implements json.Marshaler.
func (s *Service) MarshalJSON() ([]byte, error) { return opaque(typeService, s.Fields) }

func opaque(typ string, fields Fields) ([]byte, error) {
	o := wire.NewObject()
	o.Type(typ)
	o.Inline(fields)
	return o.Bytes()
}

// optArray writes a slice field only when it is non-nil.
func optArray[T any](o *wire.Object, key string, items []T) {
	if items != nil {
		o.Array(key, items)
	}
}

// EncodeAuthors encodes an author list. Graphs that are cyclic by reference
// are refused with an OrganizationCycle violation instead of recursing.
func EncodeAuthors(authors []*Author) (json.RawMessage, error) {
	roots := make([]any, len(authors))
	for i, a := range authors {
		roots[i] = a
	}
	if v := ReferenceCycle("author", roots...); v != nil {
		return nil, v
	}
	if authors == nil {
		authors = []*Author{}
	}
	return wire.Marshal(authors)
}

// EncodeFunding encodes a list of funding sources and grants, refusing
// graphs that are cyclic by reference.
func EncodeFunding(funding []Funding) (json.RawMessage, error) {
	roots := make([]any, len(funding))
	for i, f := range funding {
		roots[i] = f
	}
	if v := ReferenceCycle("funding", roots...); v != nil {
		return nil, v
	}
	if funding == nil {
		funding = []Funding{}
	}
	return wire.Marshal(funding)
}

// DecodeFundingList decodes an array of funding sources and grants.
func DecodeFundingList(data []byte, path string) ([]Funding, error) {
	n, err := wire.Parse(data, path)
	if err != nil {
		return nil, err
	}
	return wire.Each(n, path, decodeFunding)
}

var (
	_ json.Marshaler = (*Person)(nil)
	_ json.Marshaler = (*Organization)(nil)
	_ json.Marshaler = ContributorRole{}
)
