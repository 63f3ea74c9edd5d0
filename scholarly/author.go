package scholarly

// CRediT is one of the fourteen standard contributor roles of the CRediT
// taxonomy. Values are the exact strings below.
type CRediT string

const (
	Conceptualization     CRediT = "Conceptualization"
	Methodology           CRediT = "Methodology"
	Software              CRediT = "Software"
	Validation            CRediT = "Validation"
	FormalAnalysis        CRediT = "Formal analysis"
	Investigation         CRediT = "Investigation"
	Resources             CRediT = "Resources"
	DataCuration          CRediT = "Data Curation"
	WritingOriginalDraft  CRediT = "Writing - Original Draft"
	WritingReviewEditing  CRediT = "Writing - Review & Editing"
	Visualization         CRediT = "Visualization"
	Supervision           CRediT = "Supervision"
	ProjectAdministration CRediT = "Project administration"
	FundingAcquisition    CRediT = "Funding acquisition"
)

var creditRoles = []CRediT{
	Conceptualization,
	Methodology,
	Software,
	Validation,
	FormalAnalysis,
	Investigation,
	Resources,
	DataCuration,
	WritingOriginalDraft,
	WritingReviewEditing,
	Visualization,
	Supervision,
	ProjectAdministration,
	FundingAcquisition,
}

// CRediTRoles returns all fourteen roles in taxonomy order.
func CRediTRoles() []CRediT {
	return append([]CRediT(nil), creditRoles...)
}

// Valid reports whether c is one of the fourteen exact role strings.
func (c CRediT) Valid() bool {
	for _, r := range creditRoles {
		if c == r {
			return true
		}
	}
	return false
}

// ContributorRole describes how an author contributed: either a CRediT
// role or a free-form PropertyValue. Exactly one of the fields is set.
type ContributorRole struct {
	CRediT   CRediT
	Property *PropertyValue
}

// Role wraps a CRediT role.
func Role(c CRediT) ContributorRole {
	return ContributorRole{CRediT: c}
}

// PropertyRole wraps a free-form role.
func PropertyRole(p *PropertyValue) ContributorRole {
	return ContributorRole{Property: p}
}

// Author is the creator of a work.
type Author struct {
	Author           Agent
	ContributorRoles []ContributorRole
	// Order is the display position among co-authors, non-negative. nil
	// means unspecified.
	Order *int
	Extra Fields
}

// NewAuthor creates an author with no roles and no explicit order.
func NewAuthor(a Agent) *Author {
	return &Author{Author: a}
}

// WithOrder returns a copy of the author with an explicit order.
func (a *Author) WithOrder(order int) *Author {
	cp := *a
	cp.Order = &order
	return &cp
}

// Person returns the author as a Person, or nil.
func (a *Author) Person() *Person {
	p, _ := a.Author.(*Person)
	return p
}

// Organization returns the author as an Organization, or nil.
func (a *Author) Organization() *Organization {
	o, _ := a.Author.(*Organization)
	return o
}
