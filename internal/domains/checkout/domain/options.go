package domain

import "github.com/shopspring/decimal"

// ShippingMethod identifies an entry of the compiled-in shipping table.
type ShippingMethod string

const (
	ShippingCorreiosPAC    ShippingMethod = "correios_pac"
	ShippingCorreiosSEDEX  ShippingMethod = "correios_sedex"
	ShippingTransportadora ShippingMethod = "transportadora"
	ShippingPickup         ShippingMethod = "pickup"
)

// PaymentMethod identifies an entry of the compiled-in payment table.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

const (
	DefaultShippingMethod = ShippingCorreiosPAC
	DefaultPaymentMethod  = PaymentCreditCard
)

type ShippingOption struct {
	ID            ShippingMethod
	Name          string
	Description   string
	EstimatedDays string
	Price         decimal.Decimal
}

type PaymentOption struct {
	ID          PaymentMethod
	Name        string
	Description string
	Icon        string
}

var shippingOptions = []ShippingOption{
	{ID: ShippingCorreiosPAC, Name: "PAC", Description: "Correios economy delivery", EstimatedDays: "8-12 business days", Price: decimal.RequireFromString("15.00")},
	{ID: ShippingCorreiosSEDEX, Name: "SEDEX", Description: "Correios express delivery", EstimatedDays: "3-5 business days", Price: decimal.RequireFromString("25.00")},
	{ID: ShippingTransportadora, Name: "Carrier", Description: "Door-to-door carrier delivery", EstimatedDays: "5-8 business days", Price: decimal.RequireFromString("35.00")},
	{ID: ShippingPickup, Name: "Store pickup", Description: "Pick up at the store", EstimatedDays: "Available in 1 business day", Price: decimal.Zero},
}

var paymentOptions = []PaymentOption{
	{ID: PaymentCreditCard, Name: "Credit card", Description: "Pay in up to 12 installments", Icon: "credit-card"},
	{ID: PaymentDebitCard, Name: "Debit card", Description: "Instant debit", Icon: "debit-card"},
	{ID: PaymentPix, Name: "PIX", Description: "Instant payment via PIX key or QR code", Icon: "pix"},
	{ID: PaymentBoleto, Name: "Boleto", Description: "Bank slip, clears in up to 3 business days", Icon: "barcode"},
}

// ShippingOptions returns the shipping table in display order.
func ShippingOptions() []ShippingOption {
	out := make([]ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

// PaymentOptions returns the payment table in display order.
func PaymentOptions() []PaymentOption {
	out := make([]PaymentOption, len(paymentOptions))
	copy(out, paymentOptions)
	return out
}

func LookupShipping(id ShippingMethod) (ShippingOption, bool) {
	for _, opt := range shippingOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return ShippingOption{}, false
}

func LookupPayment(id PaymentMethod) (PaymentOption, bool) {
	for _, opt := range paymentOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return PaymentOption{}, false
}
