package seed

import (
	"errors"
	"fmt"

	"github.com/angelmondragon/shoppingcart/pkg/db/models"
	"go.uber.org/multierr"
)

// ErrInvalidSeed marks every failure caused by the content of a seed document.
var ErrInvalidSeed = errors.New("invalid seed document")

// Document is the in-memory form of a seed file. Pointers are shared: an item's Product
// is the same value held in Products, and a cart's CartItems are the values held in CartItems.
type Document struct {
	Products  []*models.Product
	Carts     []*models.Cart
	CartItems []*models.CartItem
}

// Empty reports whether the document holds no entities at all.
func (d *Document) Empty() bool {
	return d == nil || len(d.Products)+len(d.Carts)+len(d.CartItems) == 0
}

// normalize folds entities reachable through nesting into the top-level lists, collapses
// duplicate definitions of the same ID and aligns foreign keys with the referenced entities.
func (d *Document) normalize() error {
	var errs error

	products := newSet[models.Product]()
	carts := newSet[models.Cart]()
	items := newSet[models.CartItem]()
	owner := map[*models.CartItem]*models.Cart{}

	for _, p := range d.Products {
		products.add(p)
	}
	for _, c := range d.Carts {
		carts.add(c)
		for _, item := range c.CartItems {
			if item == nil {
				errs = multierr.Append(errs, fmt.Errorf("cart %d holds a null item", c.ID))
				continue
			}
			owner[item] = c
		}
	}
	for _, item := range d.CartItems {
		items.add(item)
	}
	for _, c := range d.Carts {
		for _, item := range c.CartItems {
			if item != nil {
				items.add(item)
			}
		}
	}
	for _, item := range items.list {
		if item.Product != nil {
			products.add(item.Product)
		}
		if item.Cart != nil {
			carts.add(item.Cart)
			if _, ok := owner[item]; !ok {
				owner[item] = item.Cart
			}
		}
	}

	productByID := map[int]*models.Product{}
	d.Products = d.Products[:0]
	for _, p := range products.list {
		if p.ID < 1 {
			errs = multierr.Append(errs, fmt.Errorf("product %q has no positive ID", p.ProductName))
			continue
		}
		if prev, ok := productByID[p.ID]; ok {
			if prev.ProductName != p.ProductName || !prev.PricePerQuantity.Equal(p.PricePerQuantity) {
				errs = multierr.Append(errs, fmt.Errorf("conflicting definitions for product %d", p.ID))
			}
			continue
		}
		productByID[p.ID] = p
		d.Products = append(d.Products, p)
	}

	cartByID := map[int]*models.Cart{}
	names := map[string]int{}
	d.Carts = d.Carts[:0]
	for _, c := range carts.list {
		if c.ID != 0 {
			if prev, ok := cartByID[c.ID]; ok {
				if prev.CustomerName != c.CustomerName {
					errs = multierr.Append(errs, fmt.Errorf("conflicting definitions for cart %d", c.ID))
				}
				continue
			}
			cartByID[c.ID] = c
		}
		if id, ok := names[c.CustomerName]; ok {
			errs = multierr.Append(errs, fmt.Errorf("carts %d and %d share customer name %q", id, c.ID, c.CustomerName))
			continue
		}
		names[c.CustomerName] = c.ID
		d.Carts = append(d.Carts, c)
	}

	itemByID := map[int]*models.CartItem{}
	d.CartItems = d.CartItems[:0]
	for _, item := range items.list {
		if item.ID != 0 {
			if prev, ok := itemByID[item.ID]; ok {
				if !sameItem(prev, item, owner[item]) {
					errs = multierr.Append(errs, fmt.Errorf("conflicting definitions for cart item %d", item.ID))
				}
				continue
			}
			itemByID[item.ID] = item
		}
		if err := alignItem(item, owner[item], productByID, cartByID); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		d.CartItems = append(d.CartItems, item)
	}

	return errs
}

func alignItem(item *models.CartItem, cart *models.Cart, products map[int]*models.Product, carts map[int]*models.Cart) error {
	if item.Product != nil {
		if item.ProductID != 0 && item.ProductID != item.Product.ID {
			return fmt.Errorf("cart item %d references product %d but embeds product %d", item.ID, item.ProductID, item.Product.ID)
		}
		item.ProductID = item.Product.ID
	}
	canonical, ok := products[item.ProductID]
	if !ok {
		return fmt.Errorf("cart item %d references unknown product %d", item.ID, item.ProductID)
	}
	item.Product = canonical

	if cart != nil {
		if owned, ok := carts[cart.ID]; ok && cart.ID != 0 {
			cart = owned
		}
		if item.CartID != 0 && cart.ID != 0 && item.CartID != cart.ID {
			return fmt.Errorf("cart item %d references cart %d but belongs to cart %d", item.ID, item.CartID, cart.ID)
		}
		item.Cart = cart
		return nil
	}
	resolved, ok := carts[item.CartID]
	if !ok || item.CartID == 0 {
		return fmt.Errorf("cart item %d references unknown cart %d", item.ID, item.CartID)
	}
	item.Cart = resolved
	return nil
}

// sameItem reports whether item restates kept, which has already been aligned.
func sameItem(kept, item *models.CartItem, cart *models.Cart) bool {
	productID := item.ProductID
	if item.Product != nil {
		productID = item.Product.ID
	}
	cartID := item.CartID
	if cart != nil && cart.ID != 0 {
		cartID = cart.ID
	}
	keptCartID := kept.CartID
	if kept.Cart != nil && kept.Cart.ID != 0 {
		keptCartID = kept.Cart.ID
	}
	return productID == kept.ProductID &&
		cartID == keptCartID &&
		item.Quantity == kept.Quantity &&
		item.Amount.Equal(kept.Amount)
}

// pointerSet keeps first-seen order while rejecting repeated pointers.
type pointerSet[T any] struct {
	seen map[*T]struct{}
	list []*T
}

func newSet[T any]() *pointerSet[T] {
	return &pointerSet[T]{seen: map[*T]struct{}{}}
}

func (s *pointerSet[T]) add(v *T) {
	if v == nil {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.list = append(s.list, v)
}
