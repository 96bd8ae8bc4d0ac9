package parcel

import (
	"bytes"
	"encoding/json"
)

// IsAddressChanged reads the isAddressChanged flag. A missing or malformed flag reads as false.
func (p *Parcel) IsAddressChanged() bool {
	var v bool
	if raw, ok := p.fields[keyIsAddressChanged]; ok {
		_ = json.Unmarshal(raw, &v)
	}
	return v
}

// AddressField returns one string member of shippingAddress.
func (p *Parcel) AddressField(key string) (string, bool) {
	addr := p.addressFields()
	raw, ok := addr[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// HasSameAddress compares the shippingAddress members semantically.
func (p *Parcel) HasSameAddress(other *Parcel) bool {
	a, b := p.addressFields(), other.addressFields()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !jsonEqual(v, w) {
			return false
		}
	}
	return true
}

func jsonEqual(a, b json.RawMessage) bool {
	var x, y any
	if json.Unmarshal(a, &x) != nil || json.Unmarshal(b, &y) != nil {
		return bytes.Equal(a, b)
	}
	ax, _ := json.Marshal(x)
	by, _ := json.Marshal(y)
	return bytes.Equal(ax, by)
}
