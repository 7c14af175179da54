package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&orderItemRecord{},
		&storageRecord{},
	)
}

// Order schema mirrors the orders datastore repository.
type orderRecord struct {
	ID              string          `gorm:"primaryKey;column:id;size:64"`
	OrderNumber     string          `gorm:"column:order_number;size:32;uniqueIndex"`
	Status          string          `gorm:"column:status;type:varchar(32);index"`
	PaymentStatus   string          `gorm:"column:payment_status;type:varchar(32)"`
	CustomerName    string          `gorm:"column:customer_name"`
	CustomerEmail   string          `gorm:"column:customer_email;index"`
	CustomerPhone   string          `gorm:"column:customer_phone"`
	CustomerCPF     string          `gorm:"column:customer_cpf"`
	ShippingAddress string          `gorm:"column:shipping_address;type:text"`
	BillingAddress  *string         `gorm:"column:billing_address;type:text"`
	PaymentMethod   string          `gorm:"column:payment_method;type:varchar(32)"`
	ShippingMethod  string          `gorm:"column:shipping_method;type:varchar(32)"`
	Notes           string          `gorm:"column:notes;type:text"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)"`
	ShippingCost    decimal.Decimal `gorm:"column:shipping_cost;type:numeric(12,2)"`
	Discount        decimal.Decimal `gorm:"column:discount;type:numeric(12,2)"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	CreatedAt       time.Time       `gorm:"column:created_at;index"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID              string          `gorm:"primaryKey;column:id;size:64"`
	OrderID         string          `gorm:"column:order_id;size:64;index:idx_order_items_order_position"`
	Position        int             `gorm:"column:position;index:idx_order_items_order_position"`
	ProductID       int64           `gorm:"column:product_id"`
	ProductName     string          `gorm:"column:product_name"`
	ProductImageURL string          `gorm:"column:product_image_url"`
	Size            string          `gorm:"column:size;size:16"`
	Color           string          `gorm:"column:color;size:32"`
	Quantity        int             `gorm:"column:quantity"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	TotalPrice      decimal.Decimal `gorm:"column:total_price;type:numeric(12,2)"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Local storage schema mirrors the favorites snapshot storage.
type storageRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:512"`
	Value     []byte    `gorm:"column:value;type:bytea"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (storageRecord) TableName() string { return "local_storage" }
