// Package address holds the shipping address collected at checkout.
package address

import (
	"strings"
)

type Shipping struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// Normalize trims every field and upper-cases the postal code.
func (s Shipping) Normalize() Shipping {
	return Shipping{
		Name:    strings.TrimSpace(s.Name),
		Address: strings.TrimSpace(s.Address),
		City:    strings.TrimSpace(s.City),
		Country: strings.TrimSpace(s.Country),
		Zip:     strings.ToUpper(strings.TrimSpace(s.Zip)),
	}
}

// Validate reports the first missing required field. Call it on a
// normalized address.
func (s Shipping) Validate() error {
	switch {
	case s.Name == "":
		return ErrMissingName
	case s.Address == "":
		return ErrMissingAddress
	case s.City == "":
		return ErrMissingCity
	case s.Country == "":
		return ErrMissingCountry
	case s.Zip == "":
		return ErrMissingZip
	case len(s.Zip) > 12:
		return ErrInvalidZip
	}
	return nil
}

func (s Shipping) String() string {
	parts := []string{s.Name, s.Address, s.City, s.Zip, s.Country}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
