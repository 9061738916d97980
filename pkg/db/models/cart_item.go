package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one product line inside a cart. A cart holds at most one item per product.
type CartItem struct {
	ID        int             `gorm:"column:id;primaryKey" json:"ID"`
	CartID    int             `gorm:"column:cart_id;not null;uniqueIndex:idx_cart_items_cart_product,priority:1" json:"CartID"`
	Cart      *Cart           `gorm:"foreignKey:CartID" json:"-"`
	ProductID int             `gorm:"column:product_id;not null;uniqueIndex:idx_cart_items_cart_product,priority:2" json:"ProductID"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"Product"`
	Quantity  int             `gorm:"column:quantity;not null" json:"Quantity"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(18,2);not null;default:0" json:"Amount"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (CartItem) TableName() string { return "cart_items" }

// Recompute sets Amount to Quantity × the product's unit price.
func (i *CartItem) Recompute() {
	if i.Product == nil {
		i.Amount = decimal.Zero
		return
	}
	i.Amount = i.Product.PricePerQuantity.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
