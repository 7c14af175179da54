package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/storefront-api/internal/shared/money"
)

// Product is the transport shape of a product added to the cart.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	Size     string          `json:"size,omitempty"`
	Color    string          `json:"color,omitempty"`
}

// LineItem is the transport shape of a cart line.
type LineItem struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	ImageURL       string `json:"imageUrl"`
	Quantity       int    `json:"quantity"`
	Size           string `json:"size,omitempty"`
	Color          string `json:"color,omitempty"`
	LineTotal      string `json:"lineTotal"`
	LineTotalLabel string `json:"lineTotalLabel"`
}

// Notice mirrors the "just added" feedback.
type Notice struct {
	Product      Product   `json:"product"`
	VisibleUntil time.Time `json:"visibleUntil"`
}

// Cart is the transport shape returned by the cart endpoints.
type Cart struct {
	Items      []LineItem `json:"items"`
	Total      string     `json:"total"`
	TotalLabel string     `json:"totalLabel"`
	ItemCount  int        `json:"itemCount"`
	JustAdded  *Notice    `json:"justAdded,omitempty"`
}

// ToDomainProduct converts a transport product into the cart domain model.
func ToDomainProduct(p Product) cartdomain.Product {
	return cartdomain.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Size:     p.Size,
		Color:    p.Color,
	}
}

func fromDomainProduct(p cartdomain.Product) Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Size:     p.Size,
		Color:    p.Color,
	}
}

// FromDomainCart converts a cart aggregate to its transport representation.
func FromDomainCart(c *cartdomain.Cart, now time.Time) Cart {
	if c == nil {
		c = cartdomain.New()
	}
	out := Cart{
		Items:      make([]LineItem, 0, len(c.Items)),
		Total:      c.Total.StringFixed(2),
		TotalLabel: money.FormatBRL(c.Total),
		ItemCount:  c.ItemCount,
	}
	for _, item := range c.Items {
		line := item.Total()
		out.Items = append(out.Items, LineItem{
			ID:             item.ID,
			Name:           item.Name,
			Price:          item.Price.StringFixed(2),
			ImageURL:       item.ImageURL,
			Quantity:       item.Quantity,
			Size:           item.Size,
			Color:          item.Color,
			LineTotal:      line.StringFixed(2),
			LineTotalLabel: money.FormatBRL(line),
		})
	}
	if notice, ok := c.ActiveNotice(now); ok {
		out.JustAdded = &Notice{Product: fromDomainProduct(notice.Product), VisibleUntil: notice.VisibleUntil}
	}
	return out
}
