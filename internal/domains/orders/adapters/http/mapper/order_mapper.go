package mapper

import (
	"time"

	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/shared/money"
	"github.com/Apurer/storefront-api/internal/shared/phone"
)

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type OrderItem struct {
	ProductID       int64  `json:"productId"`
	ProductName     string `json:"productName"`
	ProductImageURL string `json:"productImageUrl,omitempty"`
	Size            string `json:"size,omitempty"`
	Color           string `json:"color,omitempty"`
	Quantity        int    `json:"quantity"`
	UnitPrice       string `json:"unitPrice"`
	TotalPrice      string `json:"totalPrice"`
}

// Order is the confirmation view of a persisted order.
type Order struct {
	ID               string      `json:"id"`
	OrderNumber      string      `json:"orderNumber"`
	Status           string      `json:"status"`
	PaymentStatus    string      `json:"paymentStatus"`
	CustomerName     string      `json:"customerName"`
	CustomerEmail    string      `json:"customerEmail"`
	CustomerPhone    string      `json:"customerPhone"`
	ShippingAddress  Address     `json:"shippingAddress"`
	BillingAddress   *Address    `json:"billingAddress,omitempty"`
	PaymentMethod    string      `json:"paymentMethod"`
	ShippingMethod   string      `json:"shippingMethod"`
	Notes            string      `json:"notes,omitempty"`
	Subtotal         string      `json:"subtotal"`
	ShippingCost     string      `json:"shippingCost"`
	Discount         string      `json:"discount"`
	TotalAmount      string      `json:"totalAmount"`
	TotalAmountLabel string      `json:"totalAmountLabel"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"createdAt"`
}

func FromDomainAddress(a checkoutdomain.Address) Address {
	return Address{
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}

func ToDomainAddress(a Address) checkoutdomain.Address {
	return checkoutdomain.Address{
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}

// FromDomainOrder converts the order aggregate for the confirmation view.
func FromDomainOrder(o *domain.Order) Order {
	out := Order{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    phone.Mask(o.CustomerPhone),
		ShippingAddress:  FromDomainAddress(o.ShippingAddress),
		PaymentMethod:    string(o.PaymentMethod),
		ShippingMethod:   string(o.ShippingMethod),
		Notes:            o.Notes,
		Subtotal:         o.Subtotal.StringFixed(2),
		ShippingCost:     o.ShippingCost.StringFixed(2),
		Discount:         o.Discount.StringFixed(2),
		TotalAmount:      o.TotalAmount.StringFixed(2),
		TotalAmountLabel: money.FormatBRL(o.TotalAmount),
		Items:            make([]OrderItem, 0, len(o.Items)),
		CreatedAt:        o.CreatedAt,
	}
	if o.BillingAddress != nil {
		billing := FromDomainAddress(*o.BillingAddress)
		out.BillingAddress = &billing
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, OrderItem{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductImageURL: item.ProductImageURL,
			Size:            item.Size,
			Color:           item.Color,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice.StringFixed(2),
			TotalPrice:      item.TotalPrice.StringFixed(2),
		})
	}
	return out
}
