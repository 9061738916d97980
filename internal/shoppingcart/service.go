package shoppingcart

import (
	"context"
	"fmt"

	"github.com/angelmondragon/shoppingcart/pkg/db"
	"github.com/angelmondragon/shoppingcart/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/logger"
	"github.com/angelmondragon/shoppingcart/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the cart mutation used by the HTTP surface.
type Service interface {
	AddProductToCart(ctx context.Context, customerName string, productID, quantity int) (*models.Cart, error)
}

// ServiceParams groups the service dependencies. Metrics and Logger are optional.
type ServiceParams struct {
	Repo    CartRepository
	Tx      txRunner
	Metrics *metrics.CartMetrics
	Logger  *logger.Logger
}

type service struct {
	repo    CartRepository
	tx      txRunner
	metrics *metrics.CartMetrics
	logg    *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

// AddProductToCart adds quantity units of productID to the customer's cart, creating the cart on first use,
// and returns the cart as stored after the change.
func (s *service) AddProductToCart(ctx context.Context, customerName string, productID, quantity int) (*models.Cart, error) {
	input := AddProductInput{CustomerName: customerName, ProductID: productID, Quantity: quantity}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(s.logg.WithCustomer(ctx, customerName), map[string]any{
			"product_id": productID,
			"quantity":   quantity,
		})
	}

	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgProductNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	cart, created, err := s.loadOrCreateCart(ctx, customerName)
	if err != nil {
		return nil, err
	}

	outcome := metrics.OutcomeItemIncremented
	item := cart.ItemForProduct(productID)
	if item != nil {
		if item.Quantity > maxColumnInt-quantity {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidParameters).
				WithDetails(map[string]any{"field": "Quantity", "rule": "max"})
		}
		item.Quantity += quantity
		item.Product = product
	} else {
		outcome = metrics.OutcomeItemAdded
		item = &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			Product:   product,
		}
		cart.CartItems = append(cart.CartItems, item)
	}

	if err := s.recomputeTotals(ctx, cart); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, line := range cart.CartItems {
			if err := repo.SaveItem(ctx, line); err != nil {
				return err
			}
		}
		return repo.SaveCart(ctx, cart)
	})
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart.save_failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart")
	}

	stored, err := s.repo.FindCartByID(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
	}

	if created {
		s.metrics.IncCartCreated()
	}
	s.metrics.IncOperation(outcome)
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"cart_id":      stored.ID,
			"outcome":      outcome,
			"total_amount": stored.TotalAmount.StringFixed(2),
		}), "cart.product_added")
	}
	return stored, nil
}

// loadOrCreateCart returns the customer's cart, persisting an empty one when none exists.
// A unique violation on create means a concurrent call created it first; that cart is used.
func (s *service) loadOrCreateCart(ctx context.Context, customerName string) (*models.Cart, bool, error) {
	cart, err := s.repo.FindCartByCustomer(ctx, customerName)
	if err == nil {
		return cart, false, nil
	}
	if !db.IsNotFound(err) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	cart = &models.Cart{CustomerName: customerName, CartItems: []*models.CartItem{}, TotalAmount: decimal.Zero}
	if err := s.repo.CreateCart(ctx, cart); err != nil {
		if !db.IsUniqueViolation(err, "") {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
		}
		existing, findErr := s.repo.FindCartByCustomer(ctx, customerName)
		if findErr != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "load cart")
		}
		return existing, false, nil
	}
	return cart, true, nil
}

// recomputeTotals refreshes every line amount from the current product price and sums the cart total.
func (s *service) recomputeTotals(ctx context.Context, cart *models.Cart) error {
	total := decimal.Zero
	for _, line := range cart.CartItems {
		if line.Product == nil {
			product, err := s.repo.FindProduct(ctx, line.ProductID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}
			line.Product = product
		}
		line.Recompute()
		total = total.Add(line.Amount)
	}
	cart.TotalAmount = total
	return nil
}
