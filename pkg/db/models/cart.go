package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the single in-progress basket owned by a customer.
type Cart struct {
	ID           int             `gorm:"column:id;primaryKey" json:"ID"`
	CustomerName string          `gorm:"column:customer_name;not null;uniqueIndex:idx_carts_customer_name" json:"CustomerName"`
	CartItems    []*CartItem     `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"CartItems"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:numeric(18,2);not null;default:0" json:"TotalAmount"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Cart) TableName() string { return "carts" }

// ItemForProduct returns the line holding productID, or nil.
func (c *Cart) ItemForProduct(productID int) *CartItem {
	if c == nil {
		return nil
	}
	for _, item := range c.CartItems {
		if item != nil && item.ProductID == productID {
			return item
		}
	}
	return nil
}
