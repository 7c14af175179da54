package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type snapshotItem struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Price    decimal.Decimal  `json:"price"`
	OldPrice *decimal.Decimal `json:"oldPrice,omitempty"`
	ImageURL string           `json:"imageUrl"`
	Category string           `json:"category"`
	AddedAt  string           `json:"addedAt"`
}

// EncodeSnapshot serializes the full collection for durable storage.
func EncodeSnapshot(items []Item) ([]byte, error) {
	out := make([]snapshotItem, 0, len(items))
	for _, item := range items {
		out = append(out, snapshotItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			OldPrice: item.OldPrice,
			ImageURL: item.ImageURL,
			Category: item.Category,
			AddedAt:  item.AddedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return json.Marshal(out)
}

// DecodeSnapshot rebuilds items from a stored snapshot, parsing timestamps back.
func DecodeSnapshot(data []byte) ([]Item, error) {
	var raw []snapshotItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode favorites snapshot: %w", err)
	}
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		addedAt, err := time.Parse(time.RFC3339Nano, r.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("decode favorite %d addedAt: %w", r.ID, err)
		}
		item := Item{
			ID:       r.ID,
			Name:     r.Name,
			Price:    r.Price,
			OldPrice: r.OldPrice,
			ImageURL: r.ImageURL,
			Category: r.Category,
			AddedAt:  addedAt,
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("decode favorite %d: %w", r.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}
