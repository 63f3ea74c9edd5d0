package scholarly

import (
	"encoding/json"

	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/violation"
)

// DecodePropertyValue decodes a PropertyValue located at path.
func DecodePropertyValue(data []byte, path string) (*PropertyValue, error) {
	return wire.Decode(data, path, decodePropertyValue)
}

func decodePropertyValue(n *wire.Node, path string) (*PropertyValue, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typePropertyValue)
	p := &PropertyValue{PropertyID: r.String("propertyId", true)}
	if raw, ok := r.Value("value", true); ok {
		p.Value = wire.Compact(raw)
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodePersonName decodes a PersonName located at path.
func DecodePersonName(data []byte, path string) (*PersonName, error) {
	return wire.Decode(data, path, decodePersonName)
}

func decodePersonName(n *wire.Node, path string) (*PersonName, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typePersonName)
	name := &PersonName{
		FamilyNames:       r.Strings("familyNames", false),
		GivenNames:        r.Strings("givenNames", false),
		HonorificPrefixes: r.Strings("honorificPrefixes", false),
		HonorificSuffixes: r.Strings("honorificSuffixes", false),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	name.Extra = r.Rest()
	return name, nil
}

// DecodePerson decodes a Person located at path.
func DecodePerson(data []byte, path string) (*Person, error) {
	return wire.Decode(data, path, decodePerson)
}

func decodePerson(n *wire.Node, path string) (*Person, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typePerson)
	p := &Person{
		Names:        wire.List(r, "names", true, decodePersonName),
		Identifiers:  wire.List(r, "identifiers", false, decodePropertyValue),
		Affiliations: wire.List(r, "affiliations", false, decodeAffiliation),
		Emails:       r.Strings("emails", false),
	}
	if len(p.Names) == 0 {
		r.Fail("names", "a person needs at least one name")
	}
	if addr, ok := wire.One(r, "address", false, decodePostalAddress); ok {
		p.Address = addr
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	p.Extra = r.Rest()
	return p, nil
}

// DecodeOrganization decodes an Organization located at path.
func DecodeOrganization(data []byte, path string) (*Organization, error) {
	return wire.Decode(data, path, decodeOrganization)
}

func decodeOrganization(n *wire.Node, path string) (*Organization, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typeOrganization)
	org := &Organization{
		Name:                r.String("name", true),
		Identifiers:         wire.List(r, "identifiers", true, decodePropertyValue),
		ParentOrganizations: wire.List(r, "parentOrganizations", false, decodeOrganization),
		MemberOf:            wire.List(r, "memberOf", false, decodeOrganization),
		Members:             wire.List(r, "members", false, decodeAgent),
		SubOrganization:     wire.List(r, "subOrganization", false, decodeOrganization),
		URIs:                r.Strings("uris", false),
		Emails:              r.Strings("emails", false),
	}
	if addr, ok := wire.One(r, "address", false, decodePostalAddress); ok {
		org.Address = addr
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	org.Extra = r.Rest()
	return org, nil
}

// DecodeAgent decodes a Person or an Organization, chosen by its "type".
func DecodeAgent(data []byte, path string) (Agent, error) {
	return wire.Decode(data, path, decodeAgent)
}

func decodeAgent(n *wire.Node, path string) (Agent, error) {
	typ, err := wire.TypeOf(n, path)
	if err != nil {
		return nil, err
	}
	switch typ {
	case typePerson:
		return decodePerson(n, path)
	case typeOrganization:
		return decodeOrganization(n, path)
	default:
		return nil, violation.Schema(wire.Key(path, "type"), "expected Person or Organization, got %q", typ)
	}
}

// DecodeAffiliation decodes an Affiliation located at path.
func DecodeAffiliation(data []byte, path string) (*Affiliation, error) {
	return wire.Decode(data, path, decodeAffiliation)
}

func decodeAffiliation(n *wire.Node, path string) (*Affiliation, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typeAffiliation)
	a := &Affiliation{}
	a.Affiliate, _ = wire.One(r, "affiliate", true, decodeAgent)
	a.DateStart = r.String("dateStart", false)
	a.DateEnd = r.String("dateEnd", false)
	a.AffiliationType = r.String("affiliationType", true)
	if err := r.Err(); err != nil {
		return nil, err
	}
	a.Extra = r.Rest()
	return a, nil
}

// DecodeContributorRole decodes a CRediT string or a PropertyValue.
func DecodeContributorRole(data []byte, path string) (ContributorRole, error) {
	return wire.Decode(data, path, decodeContributorRole)
}

func decodeContributorRole(n *wire.Node, path string) (ContributorRole, error) {
	if s, ok := n.Text(); ok {
		c := CRediT(s)
		if !c.Valid() {
			return ContributorRole{}, violation.Schema(path, "%q is not a CRediT role", s)
		}
		return Role(c), nil
	}
	p, err := decodePropertyValue(n, path)
	if err != nil {
		return ContributorRole{}, err
	}
	return PropertyRole(p), nil
}

// DecodeAuthor decodes an Author located at path.
func DecodeAuthor(data []byte, path string) (*Author, error) {
	return wire.Decode(data, path, decodeAuthor)
}

func decodeAuthor(n *wire.Node, path string) (*Author, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typeAuthor)
	a := &Author{}
	a.Author, _ = wire.One(r, "author", true, decodeAgent)
	a.ContributorRoles = wire.List(r, "contributorRoles", true, decodeContributorRole)
	if order, ok := r.Int("order", false); ok {
		if order < 0 {
			r.Fail("order", "order must be non-negative, got %d", order)
		}
		a.Order = &order
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	a.Extra = r.Rest()
	return a, nil
}

// DecodeAuthors decodes an array of authors located at path.
func DecodeAuthors(data []byte, path string) ([]*Author, error) {
	n, err := wire.Parse(data, path)
	if err != nil {
		return nil, err
	}
	return wire.Each(n, path, decodeAuthor)
}

// DecodeMonetaryAmount decodes a MonetaryAmount located at path.
func DecodeMonetaryAmount(data []byte, path string) (*MonetaryAmount, error) {
	return wire.Decode(data, path, decodeMonetaryAmount)
}

func decodeMonetaryAmount(n *wire.Node, path string) (*MonetaryAmount, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typeMonetaryAmount)
	m := &MonetaryAmount{Currency: r.String("currency", true)}
	if v := r.Float("value", true); v != nil {
		m.Value = *v
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	m.Extra = r.Rest()
	return m, nil
}

// DecodeContribution decodes a MonetaryAmount, Product or Service.
func DecodeContribution(data []byte, path string) (Contribution, error) {
	return wire.Decode(data, path, decodeContribution)
}

func decodeContribution(n *wire.Node, path string) (Contribution, error) {
	typ, err := wire.TypeOf(n, path)
	if err != nil {
		return nil, err
	}
	switch typ {
	case typeMonetaryAmount:
		return decodeMonetaryAmount(n, path)
	case typeProduct:
		f, err := decodeOpaque(n, path)
		return &Product{Fields: f}, err
	case typeService:
		f, err := decodeOpaque(n, path)
		return &Service{Fields: f}, err
	default:
		return nil, violation.Schema(wire.Key(path, "type"), "expected MonetaryAmount, Product or Service, got %q", typ)
	}
}

// DecodeFundedItem decodes a ScholarlyWork, Person, Organization, Event or
// Product.
func DecodeFundedItem(data []byte, path string) (FundedItem, error) {
	return wire.Decode(data, path, decodeFundedItem)
}

func decodeFundedItem(n *wire.Node, path string) (FundedItem, error) {
	typ, err := wire.TypeOf(n, path)
	if err != nil {
		return nil, err
	}
	switch typ {
	case typePerson:
		return decodePerson(n, path)
	case typeOrganization:
		return decodeOrganization(n, path)
	case typeScholarlyWork:
		f, err := decodeOpaque(n, path)
		return &ScholarlyWork{Fields: f}, err
	case typeEvent:
		f, err := decodeOpaque(n, path)
		return &Event{Fields: f}, err
	case typeProduct:
		f, err := decodeOpaque(n, path)
		return &Product{Fields: f}, err
	default:
		return nil, violation.Schema(wire.Key(path, "type"), "unsupported funded item type %q", typ)
	}
}

// Funding is a FundingSource or a Grant.
type Funding interface {
	json.Marshaler
	// Source returns the funding source part of the record.
	Source() *FundingSource
}

// Source returns f.
func (f *FundingSource) Source() *FundingSource { return f }

// Source returns the embedded funding source.
func (g *Grant) Source() *FundingSource { return &g.FundingSource }

// DecodeFunding decodes a FundingSource or a Grant, chosen by its "type".
func DecodeFunding(data []byte, path string) (Funding, error) {
	return wire.Decode(data, path, decodeFunding)
}

func decodeFunding(n *wire.Node, path string) (Funding, error) {
	typ, err := wire.TypeOf(n, path)
	if err != nil {
		return nil, err
	}
	if typ != typeFundingSource && typ != typeGrant {
		return nil, violation.Schema(wire.Key(path, "type"), "expected FundingSource or Grant, got %q", typ)
	}
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typ)
	src := FundingSource{
		Identifiers: wire.List(r, "identifiers", false, decodePropertyValue),
		Description: r.String("description", false),
	}
	src.Funder, _ = wire.One(r, "funder", true, decodeAgent)
	src.Funding, _ = wire.One(r, "funding", true, decodeContribution)
	if typ == typeFundingSource {
		if err := r.Err(); err != nil {
			return nil, err
		}
		src.Extra = r.Rest()
		return &src, nil
	}
	g := &Grant{FundingSource: src}
	g.FundedItem, _ = wire.One(r, "fundedItem", true, decodeFundedItem)
	if err := r.Err(); err != nil {
		return nil, err
	}
	g.Extra = r.Rest()
	return g, nil
}

// DecodeLicense decodes a License located at path.
func DecodeLicense(data []byte, path string) (*License, error) {
	return wire.Decode(data, path, decodeLicense)
}

func decodeLicense(n *wire.Node, path string) (*License, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	l := &License{
		URI:  r.String("uri", false),
		Name: r.String("name", false),
		Text: r.String("text", false),
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return l, nil
}

// DecodePostalAddress decodes an address, keeping every field.
func DecodePostalAddress(data []byte, path string) (*PostalAddress, error) {
	return wire.Decode(data, path, decodePostalAddress)
}

func decodePostalAddress(n *wire.Node, path string) (*PostalAddress, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	return &PostalAddress{Fields: r.Rest()}, nil
}

// DecodeMediaObject decodes a MediaObject located at path.
func DecodeMediaObject(data []byte, path string) (*MediaObject, error) {
	return wire.Decode(data, path, decodeMediaObject)
}

func decodeMediaObject(n *wire.Node, path string) (*MediaObject, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.Type(typeMediaObject)
	m := &MediaObject{ContentURI: r.String("contentUri", true)}
	if err := r.Err(); err != nil {
		return nil, err
	}
	m.Extra = r.Rest()
	return m, nil
}

func decodeOpaque(n *wire.Node, path string) (Fields, error) {
	r, err := wire.OpenNode(n, path)
	if err != nil {
		return nil, err
	}
	r.String("type", true)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return r.Rest(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PropertyValue) UnmarshalJSON(data []byte) error { return into(p, data, DecodePropertyValue) }

// UnmarshalJSON implements json.Unmarshaler.
func (n *PersonName) UnmarshalJSON(data []byte) error { return into(n, data, DecodePersonName) }

// UnmarshalJSON implements json.Unmarshaler.
func (p *Person) UnmarshalJSON(data []byte) error { return into(p, data, DecodePerson) }

// UnmarshalJSON implements json.Unmarshaler.
func (org *Organization) UnmarshalJSON(data []byte) error {
	return into(org, data, DecodeOrganization)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Affiliation) UnmarshalJSON(data []byte) error { return into(a, data, DecodeAffiliation) }

// UnmarshalJSON implements json.Unmarshaler.
func (a *Author) UnmarshalJSON(data []byte) error { return into(a, data, DecodeAuthor) }

// UnmarshalJSON implements json.Unmarshaler.
func (m *MonetaryAmount) UnmarshalJSON(data []byte) error {
	return into(m, data, DecodeMonetaryAmount)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MediaObject) UnmarshalJSON(data []byte) error { return into(m, data, DecodeMediaObject) }

// UnmarshalJSON implements json.Unmarshaler.
func (l *License) UnmarshalJSON(data []byte) error { return into(l, data, DecodeLicense) }

// UnmarshalJSON implements json.Unmarshaler. The input must be a Grant.
func (g *Grant) UnmarshalJSON(data []byte) error {
	f, err := DecodeFunding(data, "")
	if err != nil {
		return err
	}
	grant, ok := f.(*Grant)
	if !ok {
		return violation.Schema("type", "expected type %q", typeGrant)
	}
	*g = *grant
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. The input must be a
// FundingSource; use DecodeFunding when it may also be a Grant.
func (f *FundingSource) UnmarshalJSON(data []byte) error {
	v, err := DecodeFunding(data, "")
	if err != nil {
		return err
	}
	src, ok := v.(*FundingSource)
	if !ok {
		return violation.Schema("type", "expected type %q", typeFundingSource)
	}
	*f = *src
	return nil
}

func into[T any](dst *T, data []byte, dec func([]byte, string) (*T, error)) error {
	v, err := dec(data, "")
	if err != nil {
		return err
	}
	*dst = *v
	return nil
}
