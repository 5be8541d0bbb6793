package migrations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run applies the schema. The unique index on order_number is load-bearing:
// the number generator only minimizes collision probability, this constraint
// is the authority.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderNumber  string    `gorm:"column:order_number;size:20;uniqueIndex"`
	CustomerName string    `gorm:"column:customer_name;size:100"`
	ProductName  string    `gorm:"column:product_name;size:200"`
	Quantity     int       `gorm:"column:quantity"`
	PriceCents   int64     `gorm:"column:price_cents"`
	Status       string    `gorm:"column:status;type:varchar(20);index"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }
