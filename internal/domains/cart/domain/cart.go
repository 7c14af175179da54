package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-api/internal/shared/money"
)

const (
	// NoticeWindow bounds how long the "just added" feedback stays visible.
	NoticeWindow = 2 * time.Second
	// MaxQuantity caps a single line item.
	MaxQuantity = 9999
)

var (
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = fmt.Errorf("quantity must be between 1 and %d", MaxQuantity)
	ErrInvalidPrice     = errors.New("price must be a non-negative amount in whole cents")
)

// Product is the catalog snapshot a shopper puts in the cart.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	ImageURL string
	Size     string
	Color    string
}

// LineItem is one product entry in the cart.
type LineItem struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	ImageURL string
	Quantity int
	Size     string
	Color    string
}

// Total returns price × quantity.
func (l LineItem) Total() decimal.Decimal {
	return money.LineTotal(l.Price, l.Quantity)
}

// Notice is the transient feedback emitted when a product is added.
type Notice struct {
	Product      Product
	VisibleUntil time.Time
}

// Cart models the session shopping cart aggregate. Total and ItemCount are
// derived from Items after every mutation.
type Cart struct {
	Items     []LineItem
	Total     decimal.Decimal
	ItemCount int
	notice    *Notice
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Total: decimal.Zero}
}

// Add merges quantity into the line item for product.ID or appends a new one.
func (c *Cart) Add(product Product, quantity int, now time.Time) error {
	if product.ID <= 0 {
		return ErrInvalidProductID
	}
	if quantity < 1 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if product.Price.IsNegative() || !money.IsCents(product.Price) {
		return ErrInvalidPrice
	}
	merged := false
	for i := range c.Items {
		if c.Items[i].ID == product.ID {
			if quantity > MaxQuantity-c.Items[i].Quantity {
				return ErrInvalidQuantity
			}
			c.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, LineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			ImageURL: product.ImageURL,
			Quantity: quantity,
			Size:     product.Size,
			Color:    product.Color,
		})
	}
	c.notice = &Notice{Product: product, VisibleUntil: now.Add(NoticeWindow)}
	c.recompute()
	return nil
}

// UpdateQuantity sets the quantity of a line item; non-positive quantities remove it.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id int64, quantity int) error {
	if quantity <= 0 {
		c.Remove(id)
		return nil
	}
	if quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
		}
	}
	c.recompute()
	return nil
}

// Remove drops the line item with id. Unknown ids are ignored.
func (c *Cart) Remove(id int64) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.recompute()
}

// Deduct takes ordered quantities back out of the cart. Lines added or raised
// after the order snapshot keep the difference.
func (c *Cart) Deduct(ordered []LineItem) {
	for _, line := range ordered {
		for i := range c.Items {
			if c.Items[i].ID == line.ID {
				c.Items[i].Quantity -= line.Quantity
			}
		}
	}
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.recompute()
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.Items = nil
	c.notice = nil
	c.recompute()
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Item looks up a line item by product id.
func (c *Cart) Item(id int64) (LineItem, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return LineItem{}, false
}

// ActiveNotice returns the last "just added" notice while it is still visible.
func (c *Cart) ActiveNotice(now time.Time) (Notice, bool) {
	if c.notice == nil || !now.Before(c.notice.VisibleUntil) {
		return Notice{}, false
	}
	return *c.notice, true
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return New()
	}
	clone := &Cart{
		Items:     append([]LineItem(nil), c.Items...),
		Total:     c.Total,
		ItemCount: c.ItemCount,
	}
	if c.notice != nil {
		n := *c.notice
		clone.notice = &n
	}
	return clone
}

func (c *Cart) recompute() {
	total := decimal.Zero
	count := 0
	for _, item := range c.Items {
		total = total.Add(item.Total())
		count += item.Quantity
	}
	c.Total = total
	c.ItemCount = count
}
