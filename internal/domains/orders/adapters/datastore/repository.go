package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
	"github.com/Apurer/storefront-api/internal/platform/datastore"
)

const (
	OrdersTable     = "orders"
	OrderItemsTable = "order_items"

	orderNumberAttempts = 3
)

var _ ports.Repository = (*Repository)(nil)

// Repository maps orders onto the orders/order_items tables of a datastore.Store.
type Repository struct {
	store     datastore.Store
	now       func() time.Time
	newNumber func(time.Time) string
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithOrderNumbers overrides the human-facing order number generator.
func WithOrderNumbers(gen func(time.Time) string) Option {
	return func(r *Repository) {
		if gen != nil {
			r.newNumber = gen
		}
	}
}

func NewRepository(store datastore.Store, opts ...Option) *Repository {
	r := &Repository{store: store, now: time.Now, newNumber: NewOrderNumber}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// NewOrderNumber formats ORD-YYYYMMDD-XXXXXX with a random upper-case hex suffix.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}

// CreateHeader inserts the order row, regenerating the order number on a
// unique-key collision. A caller-assigned ID is kept.
func (r *Repository) CreateHeader(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	now := r.now().UTC()
	header := order.Header()
	if strings.TrimSpace(header.ID) == "" {
		header.ID = uuid.NewString()
	}
	header.CreatedAt = now
	header.UpdatedAt = now

	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		header.OrderNumber = r.newNumber(now)
		record, err := toOrderRecord(header)
		if err != nil {
			return nil, err
		}
		rows, err := r.store.Insert(ctx, OrdersTable, record)
		if errors.Is(err, datastore.ErrDuplicateKey) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(rows) != 1 {
			return nil, fmt.Errorf("insert order: expected 1 row, got %d", len(rows))
		}
		return toOrder(rows[0])
	}
	return nil, fmt.Errorf("allocate order number after %d attempts: %w", orderNumberAttempts, lastErr)
}

// CreateItems writes all lines of an order as one batch.
func (r *Repository) CreateItems(ctx context.Context, orderID string, items []domain.Item) ([]domain.Item, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.New("order id is required")
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	now := r.now().UTC()
	records := make([]datastore.Record, 0, len(items))
	for idx, item := range items {
		item.ID = uuid.NewString()
		item.OrderID = orderID
		records = append(records, toItemRecord(item, idx, now))
	}
	rows, err := r.store.Insert(ctx, OrderItemsTable, records...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		item, err := toItem(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *Repository) DeleteOrder(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errors.New("order id is required")
	}
	if err := r.store.Delete(ctx, OrderItemsTable, datastore.Filter{"order_id": orderID}); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if err := r.store.Delete(ctx, OrdersTable, datastore.Filter{"id": orderID}); err != nil {
		return fmt.Errorf("delete order header: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.getOne(ctx, datastore.Filter{"id": id})
}

func (r *Repository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return r.getOne(ctx, datastore.Filter{"order_number": orderNumber})
}

func (r *Repository) getOne(ctx context.Context, filter datastore.Filter) (*domain.Order, error) {
	rows, err := r.store.Select(ctx, OrdersTable, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	order, err := toOrder(rows[0])
	if err != nil {
		return nil, err
	}
	itemRows, err := r.store.Select(ctx, OrderItemsTable, datastore.Filter{"order_id": order.ID}, datastore.Asc("position"))
	if err != nil {
		return nil, err
	}
	order.Items = make([]domain.Item, 0, len(itemRows))
	for _, row := range itemRows {
		item, err := toItem(row)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return order, nil
}

func toOrderRecord(o *domain.Order) (datastore.Record, error) {
	shipping, err := json.Marshal(toAddressDoc(o.ShippingAddress))
	if err != nil {
		return nil, fmt.Errorf("encode shipping address: %w", err)
	}
	var billing any
	if o.BillingAddress != nil {
		raw, err := json.Marshal(toAddressDoc(*o.BillingAddress))
		if err != nil {
			return nil, fmt.Errorf("encode billing address: %w", err)
		}
		billing = string(raw)
	}
	return datastore.Record{
		"id":               o.ID,
		"order_number":     o.OrderNumber,
		"status":           string(o.Status),
		"payment_status":   string(o.PaymentStatus),
		"customer_name":    o.CustomerName,
		"customer_email":   o.CustomerEmail,
		"customer_phone":   o.CustomerPhone,
		"customer_cpf":     o.CustomerCPF,
		"shipping_address": string(shipping),
		"billing_address":  billing,
		"payment_method":   string(o.PaymentMethod),
		"shipping_method":  string(o.ShippingMethod),
		"notes":            o.Notes,
		"subtotal":         o.Subtotal,
		"shipping_cost":    o.ShippingCost,
		"discount":         o.Discount,
		"total_amount":     o.TotalAmount,
		"created_at":       o.CreatedAt,
		"updated_at":       o.UpdatedAt,
	}, nil
}

func toItemRecord(item domain.Item, position int, now time.Time) datastore.Record {
	return datastore.Record{
		"id":                item.ID,
		"order_id":          item.OrderID,
		"position":          position,
		"product_id":        item.ProductID,
		"product_name":      item.ProductName,
		"product_image_url": item.ProductImageURL,
		"size":              item.Size,
		"color":             item.Color,
		"quantity":          item.Quantity,
		"unit_price":        item.UnitPrice,
		"total_price":       item.TotalPrice,
		"created_at":        now,
	}
}

func toOrder(row datastore.Record) (*domain.Order, error) {
	shipping, err := decodeAddress(row["shipping_address"])
	if err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	order := &domain.Order{
		ID:              asString(row["id"]),
		OrderNumber:     asString(row["order_number"]),
		Status:          domain.Status(asString(row["status"])),
		PaymentStatus:   domain.PaymentStatus(asString(row["payment_status"])),
		CustomerName:    asString(row["customer_name"]),
		CustomerEmail:   asString(row["customer_email"]),
		CustomerPhone:   asString(row["customer_phone"]),
		CustomerCPF:     asString(row["customer_cpf"]),
		PaymentMethod:   checkoutdomain.PaymentMethod(asString(row["payment_method"])),
		ShippingMethod:  checkoutdomain.ShippingMethod(asString(row["shipping_method"])),
		Notes:           asString(row["notes"]),
		ShippingAddress: shipping,
		CreatedAt:       asTime(row["created_at"]),
		UpdatedAt:       asTime(row["updated_at"]),
	}
	if raw := asString(row["billing_address"]); raw != "" {
		billing, err := decodeAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("decode billing address: %w", err)
		}
		order.BillingAddress = &billing
	}
	amounts := []struct {
		column string
		dst    *decimal.Decimal
	}{
		{"subtotal", &order.Subtotal},
		{"shipping_cost", &order.ShippingCost},
		{"discount", &order.Discount},
		{"total_amount", &order.TotalAmount},
	}
	for _, amount := range amounts {
		value, err := asDecimal(row[amount.column])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", amount.column, err)
		}
		*amount.dst = value
	}
	return order, nil
}

func toItem(row datastore.Record) (domain.Item, error) {
	unit, err := asDecimal(row["unit_price"])
	if err != nil {
		return domain.Item{}, fmt.Errorf("decode unit_price: %w", err)
	}
	total, err := asDecimal(row["total_price"])
	if err != nil {
		return domain.Item{}, fmt.Errorf("decode total_price: %w", err)
	}
	return domain.Item{
		ID:              asString(row["id"]),
		OrderID:         asString(row["order_id"]),
		ProductID:       asInt64(row["product_id"]),
		ProductName:     asString(row["product_name"]),
		ProductImageURL: asString(row["product_image_url"]),
		Size:            asString(row["size"]),
		Color:           asString(row["color"]),
		Quantity:        int(asInt64(row["quantity"])),
		UnitPrice:       unit,
		TotalPrice:      total,
	}, nil
}

type addressDoc struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

func toAddressDoc(a checkoutdomain.Address) addressDoc {
	return addressDoc{
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}

func decodeAddress(value any) (checkoutdomain.Address, error) {
	raw := asString(value)
	if raw == "" {
		return checkoutdomain.Address{}, nil
	}
	var doc addressDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return checkoutdomain.Address{}, err
	}
	return checkoutdomain.Address{
		Street:       doc.Street,
		Number:       doc.Number,
		Complement:   doc.Complement,
		Neighborhood: doc.Neighborhood,
		City:         doc.City,
		State:        doc.State,
		ZipCode:      doc.ZipCode,
	}, nil
}
