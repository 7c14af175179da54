package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/shared/money"
)

// Status enumerates order fulfilment progression.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus enumerates the payment lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var (
	ErrEmptyOrder     = errors.New("order must contain at least one item")
	ErrTotalsMismatch = errors.New("order totals do not reconcile")
	ErrInvalidStatus  = errors.New("order status is invalid")
	ErrInvalidItem    = errors.New("order item needs a positive quantity and a price in whole cents")
)

// Item is one persisted order line.
type Item struct {
	ID              string
	OrderID         string
	ProductID       int64
	ProductName     string
	ProductImageURL string
	Size            string
	Color           string
	Quantity        int
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
}

// Order is the persisted purchase built from a cart snapshot and checkout data.
type Order struct {
	ID              string
	OrderNumber     string
	Status          Status
	PaymentStatus   PaymentStatus
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerCPF     string
	ShippingAddress checkoutdomain.Address
	BillingAddress  *checkoutdomain.Address
	PaymentMethod   checkoutdomain.PaymentMethod
	ShippingMethod  checkoutdomain.ShippingMethod
	Notes           string
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	Discount        decimal.Decimal
	TotalAmount     decimal.Decimal
	Items           []Item
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BuildOrder prices the cart lines, looks up the flat shipping cost of the
// selected method and returns a pending order. Discount is always zero here.
func BuildOrder(lines []cartdomain.LineItem, data checkoutdomain.Data) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	shipping, ok := checkoutdomain.LookupShipping(data.ShippingMethod)
	if !ok {
		return nil, fmt.Errorf("%w: %q", checkoutdomain.ErrUnknownShippingMethod, data.ShippingMethod)
	}
	if _, ok := checkoutdomain.LookupPayment(data.PaymentMethod); !ok {
		return nil, fmt.Errorf("%w: %q", checkoutdomain.ErrUnknownPaymentMethod, data.PaymentMethod)
	}

	items := make([]Item, 0, len(lines))
	totals := make([]decimal.Decimal, 0, len(lines))
	for _, line := range lines {
		if err := validLine(line.ID, line.Quantity, line.Price); err != nil {
			return nil, err
		}
		total := money.LineTotal(line.Price, line.Quantity)
		items = append(items, Item{
			ProductID:       line.ID,
			ProductName:     line.Name,
			ProductImageURL: line.ImageURL,
			Size:            line.Size,
			Color:           line.Color,
			Quantity:        line.Quantity,
			UnitPrice:       line.Price,
			TotalPrice:      total,
		})
		totals = append(totals, total)
	}
	subtotal := money.Sum(totals...)

	order := &Order{
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		CustomerName:    data.CustomerName,
		CustomerEmail:   data.CustomerEmail,
		CustomerPhone:   data.CustomerPhone,
		CustomerCPF:     data.CustomerCPF,
		ShippingAddress: data.ShippingAddress,
		BillingAddress:  data.BillingAddress,
		PaymentMethod:   data.PaymentMethod,
		ShippingMethod:  data.ShippingMethod,
		Notes:           data.Notes,
		Subtotal:        subtotal,
		ShippingCost:    shipping.Price,
		Discount:        decimal.Zero,
		TotalAmount:     subtotal.Add(shipping.Price),
		Items:           items,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate checks totalAmount == subtotal + shippingCost - discount and each
// line's totalPrice == unitPrice * quantity.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if !isValidStatus(o.Status) || !isValidPaymentStatus(o.PaymentStatus) {
		return ErrInvalidStatus
	}
	lineTotals := make([]decimal.Decimal, 0, len(o.Items))
	for _, item := range o.Items {
		if err := validLine(item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return err
		}
		if !item.TotalPrice.Equal(money.LineTotal(item.UnitPrice, item.Quantity)) {
			return fmt.Errorf("%w: item %d", ErrTotalsMismatch, item.ProductID)
		}
		lineTotals = append(lineTotals, item.TotalPrice)
	}
	if !o.Subtotal.Equal(money.Sum(lineTotals...)) {
		return fmt.Errorf("%w: subtotal", ErrTotalsMismatch)
	}
	if !o.TotalAmount.Equal(o.Subtotal.Add(o.ShippingCost).Sub(o.Discount)) {
		return fmt.Errorf("%w: total amount", ErrTotalsMismatch)
	}
	return nil
}

// Header returns a copy of the order without its items.
func (o *Order) Header() *Order {
	header := *o
	header.Items = nil
	return &header
}

func validLine(productID int64, quantity int, unitPrice decimal.Decimal) error {
	if quantity < 1 || quantity > cartdomain.MaxQuantity {
		return fmt.Errorf("%w: item %d quantity %d", ErrInvalidItem, productID, quantity)
	}
	if unitPrice.IsNegative() || !money.IsCents(unitPrice) {
		return fmt.Errorf("%w: item %d price %s", ErrInvalidItem, productID, unitPrice)
	}
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func isValidPaymentStatus(status PaymentStatus) bool {
	switch status {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}
