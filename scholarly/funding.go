package scholarly

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/currency"
)

// Contribution is what a FundingSource provides: a *MonetaryAmount, a
// *Product or a *Service.
type Contribution interface {
	json.Marshaler
	contribution()
}

// FundedItem is what a Grant funds: a *ScholarlyWork, *Person,
// *Organization, *Event or *Product.
type FundedItem interface {
	json.Marshaler
	fundedItem()
}

func (*MonetaryAmount) contribution() {}
func (*Product) contribution()        {}
func (*Service) contribution()        {}

func (*ScholarlyWork) fundedItem() {}
func (*Person) fundedItem()        {}
func (*Organization) fundedItem()  {}
func (*Event) fundedItem()         {}
func (*Product) fundedItem()       {}

// MonetaryAmount is an amount of money. Currency is usually an ISO 4217 code
// but symbolic tokens such as "BTC" are allowed. Value is unconstrained in
// sign.
type MonetaryAmount struct {
	Currency string
	Value    float64
	Extra    Fields
}

// IsISO4217 reports whether the currency is a recognized ISO 4217 code.
func (m *MonetaryAmount) IsISO4217() bool {
	if len(m.Currency) != 3 || strings.ToUpper(m.Currency) != m.Currency {
		return false
	}
	_, err := currency.ParseISO(m.Currency)
	return err == nil
}

// FundingSource is the source of funding for a scholarly work.
type FundingSource struct {
	Identifiers []*PropertyValue
	Funder      Agent
	Funding     Contribution
	Description string
	Extra       Fields
}

// Grant is a FundingSource connected to the item it funds.
type Grant struct {
	FundingSource
	FundedItem FundedItem
}
