package controllers

import (
	"net/http"

	"github.com/angelmondragon/shoppingcart/api/responses"
	"github.com/angelmondragon/shoppingcart/api/validators"
	"github.com/angelmondragon/shoppingcart/internal/shoppingcart"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/logger"
)

// AddProductToCart adds a product to the customer's cart.
// @Summary Add a product to a cart
// @Description Adds quantity units of a product to the named customer's cart, creating the cart on first use.
// @Description An existing line for the same product is incremented; the cart total is recomputed.
// @Tags ShoppingCart
// @Produce json
// @Produce plain
// @Param customerName query string true "Customer name (exact match, must not be blank)"
// @Param productId query int true "Product ID (>= 1)"
// @Param quantity query int true "Quantity to add (>= 1)"
// @Success 200 {object} models.Cart
// @Failure 400 {string} string "Invalid parameters. | Product does not exist."
// @Failure 500 {string} string "Failure message"
// @Router /ShoppingCart/AddProductToCart [post]
func AddProductToCart(svc shoppingcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		customerName := validators.QueryString(r, "customerName")
		productID, err := validators.ParseQueryInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.AddProductToCart(r.Context(), customerName, productID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}
