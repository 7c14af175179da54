package mapper

import (
	"github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/checkout/ports"
	ordermapper "github.com/Apurer/storefront-api/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/storefront-api/internal/shared/money"
	"github.com/Apurer/storefront-api/internal/shared/phone"
)

type CustomerRequest struct {
	Name  string `json:"customerName"`
	Email string `json:"customerEmail"`
	Phone string `json:"customerPhone"`
	CPF   string `json:"customerCpf,omitempty"`
}

func (r CustomerRequest) ToInput() ports.CustomerInput {
	return ports.CustomerInput{Name: r.Name, Email: r.Email, Phone: r.Phone, CPF: r.CPF}
}

// BillingAddressRequest clears the separate billing address when Address is null.
type BillingAddressRequest struct {
	Address *ordermapper.Address `json:"billingAddress"`
}

type ShippingMethodRequest struct {
	ShippingMethod string `json:"shippingMethod"`
}

type PaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type Data struct {
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail"`
	CustomerPhone   string               `json:"customerPhone"`
	CustomerCPF     string               `json:"customerCpf,omitempty"`
	ShippingAddress ordermapper.Address  `json:"shippingAddress"`
	BillingAddress  *ordermapper.Address `json:"billingAddress,omitempty"`
	PaymentMethod   string               `json:"paymentMethod"`
	ShippingMethod  string               `json:"shippingMethod"`
	Notes           string               `json:"notes,omitempty"`
}

type PlacedOrder struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Location    string `json:"location"`
}

// Summary is the checkout state rendered after every step operation.
type Summary struct {
	Step            string       `json:"step"`
	StepNumber      int          `json:"stepNumber"`
	Data            Data         `json:"data"`
	Error           string       `json:"error,omitempty"`
	CartTotal       string       `json:"cartTotal"`
	ShippingCost    string       `json:"shippingCost"`
	FinalTotal      string       `json:"finalTotal"`
	FinalTotalLabel string       `json:"finalTotalLabel"`
	Order           *PlacedOrder `json:"order,omitempty"`
}

func FromSummary(s domain.Summary) Summary {
	out := Summary{
		Step:       string(s.Step),
		StepNumber: s.StepNumber,
		Data: Data{
			CustomerName:    s.Data.CustomerName,
			CustomerEmail:   s.Data.CustomerEmail,
			CustomerPhone:   phone.Mask(s.Data.CustomerPhone),
			CustomerCPF:     s.Data.CustomerCPF,
			ShippingAddress: ordermapper.FromDomainAddress(s.Data.ShippingAddress),
			PaymentMethod:   string(s.Data.PaymentMethod),
			ShippingMethod:  string(s.Data.ShippingMethod),
			Notes:           s.Data.Notes,
		},
		Error:           s.Banner,
		CartTotal:       s.CartTotal.StringFixed(2),
		ShippingCost:    s.ShippingCost.StringFixed(2),
		FinalTotal:      s.FinalTotal.StringFixed(2),
		FinalTotalLabel: money.FormatBRL(s.FinalTotal),
	}
	if s.Data.BillingAddress != nil {
		billing := ordermapper.FromDomainAddress(*s.Data.BillingAddress)
		out.Data.BillingAddress = &billing
	}
	if s.Order != nil {
		out.Order = &PlacedOrder{
			ID:          s.Order.ID,
			OrderNumber: s.Order.OrderNumber,
			Location:    "/v1/orders/" + s.Order.OrderNumber,
		}
	}
	return out
}

type ShippingOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	EstimatedDays string `json:"estimatedDays"`
	Price         string `json:"price"`
	PriceLabel    string `json:"priceLabel"`
}

type PaymentOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Options struct {
	ShippingMethods []ShippingOption `json:"shippingMethods"`
	PaymentMethods  []PaymentOption  `json:"paymentMethods"`
}

// OptionTables returns the static shipping and payment tables.
func OptionTables() Options {
	out := Options{}
	for _, opt := range domain.ShippingOptions() {
		out.ShippingMethods = append(out.ShippingMethods, ShippingOption{
			ID:            string(opt.ID),
			Name:          opt.Name,
			Description:   opt.Description,
			EstimatedDays: opt.EstimatedDays,
			Price:         opt.Price.StringFixed(2),
			PriceLabel:    money.FormatBRL(opt.Price),
		})
	}
	for _, opt := range domain.PaymentOptions() {
		out.PaymentMethods = append(out.PaymentMethods, PaymentOption{
			ID:          string(opt.ID),
			Name:        opt.Name,
			Description: opt.Description,
			Icon:        opt.Icon,
		})
	}
	return out
}
