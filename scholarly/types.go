package scholarly

import (
	"encoding/json"
	"strings"
)

// Fields holds the keys of an open record that are not declared fields.
// Values are raw JSON, compacted when decoded and written back in that form.
type Fields map[string]json.RawMessage

// PropertyValue is an open-ended key/value tag, used for external
// identifiers such as ORCID, DOI, ROR or grant numbers.
type PropertyValue struct {
	PropertyID string
	Value      json.RawMessage // any JSON value
}

// NewPropertyValue creates a PropertyValue with a string value.
func NewPropertyValue(propertyID, value string) *PropertyValue {
	raw, _ := json.Marshal(value)
	return &PropertyValue{PropertyID: propertyID, Value: raw}
}

// StringValue returns the value when it is a JSON string.
func (p *PropertyValue) StringValue() (string, bool) {
	var s string
	if err := json.Unmarshal(p.Value, &s); err != nil {
		return "", false
	}
	return s, true
}

// PersonName is one of the names a Person is known by. Every list is
// independently optional and order-significant; nil means absent.
type PersonName struct {
	FamilyNames       []string
	GivenNames        []string
	HonorificPrefixes []string
	HonorificSuffixes []string
	Extra             Fields
}

// String joins prefixes, given names, family names and suffixes with spaces.
func (n *PersonName) String() string {
	var parts []string
	parts = append(parts, n.HonorificPrefixes...)
	parts = append(parts, n.GivenNames...)
	parts = append(parts, n.FamilyNames...)
	parts = append(parts, n.HonorificSuffixes...)
	return strings.Join(parts, " ")
}

// Agent is a Person or an Organization. The set of implementations is closed.
type Agent interface {
	json.Marshaler
	// DisplayName returns a short human readable name.
	DisplayName() string
	agent()
}

// Person is an individual.
type Person struct {
	Names        []*PersonName // non-empty
	Identifiers  []*PropertyValue
	Affiliations []*Affiliation
	Emails       []string
	Address      *PostalAddress
	Extra        Fields
}

func (*Person) agent() {}

// DisplayName returns the first name of the person.
func (p *Person) DisplayName() string {
	if len(p.Names) == 0 || p.Names[0] == nil {
		return ""
	}
	return p.Names[0].String()
}

// FamilyName returns the first family name of the first name, or "".
func (p *Person) FamilyName() string {
	if len(p.Names) == 0 || p.Names[0] == nil || len(p.Names[0].FamilyNames) == 0 {
		return ""
	}
	return p.Names[0].FamilyNames[0]
}

// Organization is a company, institution or other body. ParentOrganizations
// and SubOrganization are intended inverses, as are MemberOf and Members.
// Nothing about construction keeps the graph acyclic; see CheckOrganization.
type Organization struct {
	Name                string
	Identifiers         []*PropertyValue // required, may be empty
	ParentOrganizations []*Organization
	MemberOf            []*Organization
	Members             []Agent
	SubOrganization     []*Organization
	Address             *PostalAddress
	URIs                []string
	Emails              []string
	Extra               Fields
}

func (*Organization) agent() {}

// DisplayName returns the organization name.
func (o *Organization) DisplayName() string { return o.Name }

// Affiliation links an affiliate to a time interval. An empty DateEnd means
// the affiliation is current.
type Affiliation struct {
	Affiliate       Agent
	DateStart       string // YYYY-MM-DD or RFC 3339 date-time, optional
	DateEnd         string
	AffiliationType string
	Extra           Fields
}

// Current reports whether the affiliation has no end date.
func (a *Affiliation) Current() bool {
	return a.DateEnd == ""
}

// License describes the license a document is published under.
type License struct {
	URI  string // link to the full license text
	Name string // short name, e.g. "CC-BY-4.0"
	Text string // full text of a nonstandard license
}

// PostalAddress is an opaque extension point: its fields are carried
// through unchanged apart from compaction.
type PostalAddress struct {
	Fields Fields
}

// MediaObject points at the bytes of an image, video or other file.
type MediaObject struct {
	ContentURI string
	Extra      Fields
}

// ScholarlyWork is an opaque extension point used as a Grant's funded item.
type ScholarlyWork struct {
	Fields Fields
}

// Event is an opaque extension point used as a Grant's funded item.
type Event struct {
	Fields Fields
}

// Product is an opaque extension point used as funding or funded item.
type Product struct {
	Fields Fields
}

// Service is an opaque extension point used as funding.
type Service struct {
	Fields Fields
}
