package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-api/internal/shared/money"
)

// FeedbackWindow bounds how long the "added to favorites" flag stays visible.
const FeedbackWindow = 2 * time.Second

var (
	ErrInvalidProductID = errors.New("favorite product id must be positive")
	ErrInvalidPrice     = errors.New("favorite price must be a non-negative amount in whole cents")
)

// ToggleResult reports which transition Toggle performed.
type ToggleResult string

const (
	ToggleAdded   ToggleResult = "added"
	ToggleRemoved ToggleResult = "removed"
)

// Item is a favorited product with the moment it was favorited.
type Item struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	OldPrice *decimal.Decimal
	ImageURL string
	Category string
	AddedAt  time.Time
}

// Validate checks the invariants required to store the item.
func (i Item) Validate() error {
	if i.ID <= 0 {
		return ErrInvalidProductID
	}
	if i.Price.IsNegative() || !money.IsCents(i.Price) {
		return ErrInvalidPrice
	}
	if i.OldPrice != nil && (i.OldPrice.IsNegative() || !money.IsCents(*i.OldPrice)) {
		return ErrInvalidPrice
	}
	return nil
}

// List is the ordered, id-unique favorites collection of a session.
// New favorites go to the head.
type List struct {
	items        []Item
	feedbackTill time.Time
}

// NewList builds a list from already persisted items, dropping duplicate ids.
func NewList(items []Item) *List {
	l := &List{items: make([]Item, 0, len(items))}
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		l.items = append(l.items, item)
	}
	return l
}

// Favorite inserts the item at the head. It returns false when the id is
// already present, leaving the list untouched.
func (l *List) Favorite(item Item, now time.Time) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}
	if l.Contains(item.ID) {
		return false, nil
	}
	item.AddedAt = now
	l.items = append([]Item{item}, l.items...)
	l.feedbackTill = now.Add(FeedbackWindow)
	return true, nil
}

// Unfavorite removes the id; absent ids are a no-op returning false.
func (l *List) Unfavorite(id int64) bool {
	for idx, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:idx:idx], l.items[idx+1:]...)
			return true
		}
	}
	return false
}

// Toggle favorites an absent product or unfavorites a present one.
func (l *List) Toggle(item Item, now time.Time) (ToggleResult, error) {
	if l.Contains(item.ID) {
		l.Unfavorite(item.ID)
		return ToggleRemoved, nil
	}
	if _, err := l.Favorite(item, now); err != nil {
		return "", err
	}
	return ToggleAdded, nil
}

func (l *List) Contains(id int64) bool {
	_, ok := l.Get(id)
	return ok
}

func (l *List) Get(id int64) (Item, bool) {
	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func (l *List) Clear() {
	l.items = nil
	l.feedbackTill = time.Time{}
}

func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the collection in display order.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// FeedbackVisible reports whether the last insertion is still within its feedback window.
func (l *List) FeedbackVisible(now time.Time) bool {
	return !l.feedbackTill.IsZero() && now.Before(l.feedbackTill)
}
