// Package parcel models the record the external tracking service keeps for a shipment.
//
// The ledger reads and rewrites only the shippingAddress and isAddressChanged members.
// Every other member, and every unknown key inside shippingAddress, is carried as the raw
// JSON it arrived as and written back unchanged.
package parcel

import (
	"bytes"
	"encoding/json"
	"fmt"

	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/pkg/errs"
)

const (
	keyShippingAddress  = "shippingAddress"
	keyIsAddressChanged = "isAddressChanged"
)

// Address member names as the tracking service spells them.
const (
	AddressKeyStreet     = "address"
	AddressKeyCity       = "city"
	AddressKeyDistrict   = "district"
	AddressKeyState      = "state"
	AddressKeyPostalCode = "postalCode"
	AddressKeyCountry    = "country"
)

// Parcel is an immutable view of one tracking-service document.
type Parcel struct {
	id     string
	fields map[string]json.RawMessage
	etag   string
}

// Decode parses a parcel document. data must be a JSON object; etag may be empty when
// the tracking service does not send one.
func Decode(id string, data []byte, etag string) (*Parcel, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("parcelId")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("parcel", err)
	}
	if fields == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("parcel", fmt.Errorf("document is null"))
	}
	if raw, ok := fields[keyShippingAddress]; ok && !isNull(raw) {
		var addr map[string]json.RawMessage
		if err := json.Unmarshal(raw, &addr); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("parcel.shippingAddress", err)
		}
	}
	return &Parcel{id: id, fields: fields, etag: etag}, nil
}

// ID is the tracking service's identifier for the parcel.
func (p *Parcel) ID() string {
	return p.id
}

// ETag is the version tag the tracking service attached to this copy, if any.
func (p *Parcel) ETag() string {
	return p.etag
}

// WithETag returns a copy carrying etag.
func (p *Parcel) WithETag(etag string) *Parcel {
	c := p.clone()
	c.etag = etag
	return c
}

// RawShippingAddress returns shippingAddress exactly as received.
func (p *Parcel) RawShippingAddress() json.RawMessage {
	raw, ok := p.fields[keyShippingAddress]
	if !ok {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

// WithAddressPatch returns the candidate sent to the tracking service when an address
// changes: shippingAddress merged with the normalized patch and isAddressChanged set to
// true.
func (p *Parcel) WithAddressPatch(patch order.AddressPatch) (*Parcel, error) {
	patch = patch.Normalized()
	addr := p.addressFields()
	set := func(key string, v *string) error {
		if v == nil {
			return nil
		}
		raw, err := json.Marshal(*v)
		if err != nil {
			return err
		}
		addr[key] = raw
		return nil
	}
	for key, v := range map[string]*string{
		AddressKeyStreet:     patch.Street,
		AddressKeyCity:       patch.City,
		AddressKeyDistrict:   patch.District,
		AddressKeyState:      patch.State,
		AddressKeyPostalCode: patch.PostalCode,
		AddressKeyCountry:    patch.Country,
	} {
		if err := set(key, v); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("parcel.shippingAddress", err)
		}
	}

	rawAddr, err := json.Marshal(addr)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("parcel.shippingAddress", err)
	}
	c := p.clone()
	c.fields[keyShippingAddress] = rawAddr
	c.fields[keyIsAddressChanged] = json.RawMessage("true")
	return c, nil
}

// Reverted returns the inverse of a WithAddressPatch applied to p: p's own shippingAddress
// with isAddressChanged cleared. It is computed before the forward write is sent.
func (p *Parcel) Reverted() *Parcel {
	c := p.clone()
	c.fields[keyIsAddressChanged] = json.RawMessage("false")
	return c
}

// MarshalJSON writes every member back, including ones the ledger does not understand.
func (p *Parcel) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	return json.Marshal(p.fields)
}

func (p *Parcel) addressFields() map[string]json.RawMessage {
	addr := map[string]json.RawMessage{}
	if raw, ok := p.fields[keyShippingAddress]; ok && !isNull(raw) {
		_ = json.Unmarshal(raw, &addr)
	}
	return addr
}

func (p *Parcel) clone() *Parcel {
	fields := make(map[string]json.RawMessage, len(p.fields))
	for k, v := range p.fields {
		fields[k] = append(json.RawMessage(nil), v...)
	}
	return &Parcel{id: p.id, fields: fields, etag: p.etag}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
