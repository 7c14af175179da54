package domain

import "strings"

// Address is a Brazilian postal address.
type Address struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
}

// Complete reports whether every required address field is filled.
// Complement is optional.
func (a Address) Complete() bool {
	return filled(a.Street, a.Number, a.Neighborhood, a.City, a.State, a.ZipCode)
}

// Data is everything the checkout collects before an order is placed.
type Data struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerCPF     string
	ShippingAddress Address
	BillingAddress  *Address
	PaymentMethod   PaymentMethod
	ShippingMethod  ShippingMethod
	Notes           string
}

func (d Data) customerComplete() bool {
	return filled(d.CustomerName, d.CustomerEmail, d.CustomerPhone)
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
