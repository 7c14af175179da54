package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-api/internal/domains/favorites/domain"
	"github.com/Apurer/storefront-api/internal/domains/favorites/ports"
	"github.com/Apurer/storefront-api/internal/shared/money"
)

// Product is the request body used to favorite a product.
type Product struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Price    decimal.Decimal  `json:"price"`
	OldPrice *decimal.Decimal `json:"oldPrice,omitempty"`
	ImageURL string           `json:"imageUrl"`
	Category string           `json:"category"`
}

type Favorite struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           string    `json:"price"`
	PriceLabel      string    `json:"priceLabel"`
	OldPrice        *string   `json:"oldPrice,omitempty"`
	DiscountPercent int       `json:"discountPercent,omitempty"`
	ImageURL        string    `json:"imageUrl"`
	Category        string    `json:"category"`
	AddedAt         time.Time `json:"addedAt"`
}

type Favorites struct {
	Items           []Favorite `json:"items"`
	Count           int        `json:"count"`
	FeedbackVisible bool       `json:"feedbackVisible"`
}

type ToggleResponse struct {
	Result    string    `json:"result"`
	Favorites Favorites `json:"favorites"`
}

func ToDomainItem(p Product) domain.Item {
	return domain.Item{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		OldPrice: p.OldPrice,
		ImageURL: p.ImageURL,
		Category: p.Category,
	}
}

func FromDomainItem(item domain.Item) Favorite {
	out := Favorite{
		ID:         item.ID,
		Name:       item.Name,
		Price:      item.Price.StringFixed(2),
		PriceLabel: money.FormatBRL(item.Price),
		ImageURL:   item.ImageURL,
		Category:   item.Category,
		AddedAt:    item.AddedAt,
	}
	if item.OldPrice != nil {
		old := item.OldPrice.StringFixed(2)
		out.OldPrice = &old
		out.DiscountPercent = money.DiscountPercent(*item.OldPrice, item.Price)
	}
	return out
}

func FromView(view ports.View) Favorites {
	out := Favorites{Items: make([]Favorite, 0, len(view.Items)), Count: len(view.Items), FeedbackVisible: view.FeedbackVisible}
	for _, item := range view.Items {
		out.Items = append(out.Items, FromDomainItem(item))
	}
	return out
}
