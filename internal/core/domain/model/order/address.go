package order

import (
	"errors"
	"strings"

	"orderledger/internal/pkg/errs"
)

// Address is the structured shipping address of an order.
// Street, city, postal code and country are mandatory; district and state are optional.
type Address struct {
	street     string
	city       string
	district   string
	state      string
	postalCode string
	country    string
}

// NewAddress validates and builds an Address. Values are trimmed of surrounding spaces.
func NewAddress(street, city, district, state, postalCode, country string) (Address, error) {
	a := Address{
		street:     strings.TrimSpace(street),
		city:       strings.TrimSpace(city),
		district:   strings.TrimSpace(district),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
	}
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

// Validate reports every missing mandatory field at once.
func (a Address) Validate() error {
	var problems []error
	if a.street == "" {
		problems = append(problems, errs.NewValueIsRequiredError("shippingAddress.address"))
	}
	if a.city == "" {
		problems = append(problems, errs.NewValueIsRequiredError("shippingAddress.city"))
	}
	if a.postalCode == "" {
		problems = append(problems, errs.NewValueIsRequiredError("shippingAddress.postalCode"))
	}
	if a.country == "" {
		problems = append(problems, errs.NewValueIsRequiredError("shippingAddress.country"))
	}
	return errors.Join(problems...)
}

// Street returns the street line, sent to the tracking service as "address".
func (a Address) Street() string {
	return a.street
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// District returns the district, possibly empty.
func (a Address) District() string {
	return a.district
}

// State returns the state, possibly empty.
func (a Address) State() string {
	return a.state
}

// PostalCode returns the postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country.
func (a Address) Country() string {
	return a.country
}

// IsEqual compares all six fields.
func (a Address) IsEqual(other Address) bool {
	return a == other
}

// Merge applies every field present in patch and validates the result as a whole.
// The patch is normalized first, so the result matches what WithAddressPatch writes to
// a parcel for the same patch. The receiver is left untouched.
func (a Address) Merge(patch AddressPatch) (Address, error) {
	patch = patch.Normalized()
	merged := a
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&merged.street, patch.Street)
	apply(&merged.city, patch.City)
	apply(&merged.district, patch.District)
	apply(&merged.state, patch.State)
	apply(&merged.postalCode, patch.PostalCode)
	apply(&merged.country, patch.Country)

	if err := merged.Validate(); err != nil {
		return Address{}, err
	}
	return merged, nil
}

// AddressPatch is a partial address. A nil field is left as it is by Merge.
type AddressPatch struct {
	Street     *string
	City       *string
	District   *string
	State      *string
	PostalCode *string
	Country    *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p AddressPatch) IsEmpty() bool {
	return p.Street == nil && p.City == nil && p.District == nil &&
		p.State == nil && p.PostalCode == nil && p.Country == nil
}

// Normalized returns a copy of the patch with every present value trimmed of surrounding
// spaces. Present fields stay present, even when they trim to "". Address.Merge and
// parcel.WithAddressPatch both apply it.
func (p AddressPatch) Normalized() AddressPatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		s := strings.TrimSpace(*v)
		return &s
	}
	return AddressPatch{
		Street:     trim(p.Street),
		City:       trim(p.City),
		District:   trim(p.District),
		State:      trim(p.State),
		PostalCode: trim(p.PostalCode),
		Country:    trim(p.Country),
	}
}
