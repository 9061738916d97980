package models

import "github.com/shopspring/decimal"

// Product is a sellable item. IDs are assigned by the seed data, never by the store.
type Product struct {
	ID               int             `gorm:"column:id;primaryKey;autoIncrement:false" json:"ID"`
	ProductName      string          `gorm:"column:product_name;not null" json:"ProductName"`
	PricePerQuantity decimal.Decimal `gorm:"column:price_per_quantity;type:numeric(18,2);not null" json:"PricePerQuantity"`
}

func (Product) TableName() string { return "products" }
