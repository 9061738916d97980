package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemRecompute(t *testing.T) {
	item := &CartItem{Quantity: 3, Product: &Product{ID: 1, PricePerQuantity: decimal.RequireFromString("10.25")}}
	item.Recompute()
	assert.True(t, decimal.RequireFromString("30.75").Equal(item.Amount), "got %s", item.Amount)

	item.Product = nil
	item.Recompute()
	assert.True(t, item.Amount.IsZero())
}

func TestCartItemForProduct(t *testing.T) {
	cart := &Cart{CartItems: []*CartItem{{ID: 1, ProductID: 4}, {ID: 2, ProductID: 9}}}
	assert.Equal(t, 2, cart.ItemForProduct(9).ID)
	assert.Nil(t, cart.ItemForProduct(5))

	var missing *Cart
	assert.Nil(t, missing.ItemForProduct(1))
}

func TestCartJSONOmitsBackReferenceAndTimestamps(t *testing.T) {
	product := &Product{ID: 1, ProductName: "Bluetooth Headset", PricePerQuantity: decimal.NewFromInt(10)}
	cart := &Cart{ID: 7, CustomerName: "John", TotalAmount: decimal.NewFromInt(20)}
	cart.CartItems = []*CartItem{{ID: 3, CartID: 7, Cart: cart, ProductID: 1, Product: product, Quantity: 2, Amount: decimal.NewFromInt(20)}}

	raw, err := json.Marshal(cart)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.ElementsMatch(t, []string{"ID", "CustomerName", "CartItems", "TotalAmount"}, keys(body))

	items := body["CartItems"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.ElementsMatch(t, []string{"ID", "CartID", "ProductID", "Product", "Quantity", "Amount"}, keys(item))
	assert.Equal(t, "Bluetooth Headset", item["Product"].(map[string]any)["ProductName"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
