package shoppingcart

import (
	"context"

	"github.com/angelmondragon/shoppingcart/pkg/db/models"
	"gorm.io/gorm"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindProduct(ctx context.Context, id int) (*models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	FindCartByCustomer(ctx context.Context, customerName string) (*models.Cart, error)
	FindCartByID(ctx context.Context, id int) (*models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) error
	SaveItem(ctx context.Context, item *models.CartItem) error
	SaveCart(ctx context.Context, cart *models.Cart) error
}
