package seed

import (
	"errors"
	"testing"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const preservedDocument = `{
  "$id": "1",
  "Products": {"$id": "2", "$values": [
    {"$id": "3", "ID": 1, "ProductName": "Chair", "PricePerQuantity": 10.00},
    {"$id": "4", "ID": 2, "ProductName": "Desk", "PricePerQuantity": 15.5}
  ]},
  "Carts": {"$id": "5", "$values": [
    {"$id": "6", "ID": 1, "CustomerName": "John", "CartItems": {"$id": "7", "$values": [
      {"$id": "8", "ID": 1, "CartID": 1, "Cart": {"$ref": "6"}, "ProductID": 1, "Product": {"$ref": "3"}, "Quantity": 2, "Amount": 20}
    ]}, "TotalAmount": 20}
  ]},
  "CartItems": {"$id": "9", "$values": [
    {"$ref": "8"},
    {"$id": "10", "ID": 2, "CartID": 1, "Cart": null, "ProductID": 2, "Product": null, "Quantity": 1, "Amount": 0}
  ]}
}`

func requireSeedError(t *testing.T, err error) *pkgerrors.Error {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSeed), "expected ErrInvalidSeed, got %v", err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeSeedFormat, typed.Code())
	return typed
}

func TestDecodeResolvesReferences(t *testing.T) {
	doc, err := Decode([]byte(preservedDocument))
	require.NoError(t, err)

	require.Len(t, doc.Products, 2)
	require.Len(t, doc.Carts, 1)
	require.Len(t, doc.CartItems, 2)

	assert.Equal(t, "Chair", doc.Products[0].ProductName)
	assert.True(t, doc.Products[1].PricePerQuantity.Equal(decimal.RequireFromString("15.5")))

	first := doc.CartItems[0]
	assert.Same(t, doc.Products[0], first.Product)
	assert.Same(t, doc.Carts[0], first.Cart)
	assert.Same(t, first, doc.Carts[0].CartItems[0])

	second := doc.CartItems[1]
	assert.Same(t, doc.Products[1], second.Product)
	assert.Same(t, doc.Carts[0], second.Cart)
	assert.Equal(t, 1, second.Quantity)
}

func TestDecodeAcceptsPlainJSON(t *testing.T) {
	data := `{
	  "Products": [{"ID": 1, "ProductName": "Chair", "PricePerQuantity": 10}],
	  "Carts": [{"ID": 4, "CustomerName": "Ann", "CartItems": [], "TotalAmount": 0}],
	  "CartItems": [{"ID": 1, "CartID": 4, "ProductID": 1, "Quantity": 3, "Amount": "30.00"}]
	}`
	doc, err := Decode([]byte(data))
	require.NoError(t, err)

	require.Len(t, doc.CartItems, 1)
	item := doc.CartItems[0]
	assert.Same(t, doc.Products[0], item.Product)
	assert.Same(t, doc.Carts[0], item.Cart)
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(30)))
}

func TestDecodeMergesNestedEntities(t *testing.T) {
	data := `{
	  "Products": [],
	  "Carts": [{"ID": 1, "CustomerName": "Ann", "CartItems": [
	    {"ID": 5, "ProductID": 9, "Product": {"ID": 9, "ProductName": "Lamp", "PricePerQuantity": 4}, "Quantity": 1}
	  ]}],
	  "CartItems": []
	}`
	doc, err := Decode([]byte(data))
	require.NoError(t, err)

	require.Len(t, doc.Products, 1)
	assert.Equal(t, 9, doc.Products[0].ID)
	require.Len(t, doc.CartItems, 1)
	assert.Equal(t, 5, doc.CartItems[0].ID)
	assert.Same(t, doc.Carts[0], doc.CartItems[0].Cart)
}

func TestDecodeCollapsesRepeatedProductDefinitions(t *testing.T) {
	data := `{
	  "Products": [{"ID": 1, "ProductName": "Chair", "PricePerQuantity": 10}],
	  "Carts": [{"ID": 1, "CustomerName": "Ann"}],
	  "CartItems": [{"ID": 1, "CartID": 1, "ProductID": 1, "Product": {"ID": 1, "ProductName": "Chair", "PricePerQuantity": 10.0}, "Quantity": 1}]
	}`
	doc, err := Decode([]byte(data))
	require.NoError(t, err)
	require.Len(t, doc.Products, 1)
	assert.Same(t, doc.Products[0], doc.CartItems[0].Product)
}

func TestDecodeCollapsesRepeatedItemDefinitions(t *testing.T) {
	data := `{
	  "Products": [{"ID": 1, "ProductName": "Chair", "PricePerQuantity": 10}],
	  "Carts": [{"ID": 1, "CustomerName": "Ann", "CartItems": [
	    {"ID": 1, "ProductID": 1, "Quantity": 2, "Amount": 20}
	  ]}],
	  "CartItems": [{"ID": 1, "CartID": 1, "ProductID": 1, "Quantity": 2, "Amount": "20.00"}]
	}`
	doc, err := Decode([]byte(data))
	require.NoError(t, err)
	require.Len(t, doc.CartItems, 1)
	assert.Equal(t, 2, doc.CartItems[0].Quantity)
}

func TestDecodeRejectsConflictingItemDefinitions(t *testing.T) {
	data := `{
	  "Products": [
	    {"ID": 1, "ProductName": "Chair", "PricePerQuantity": 10},
	    {"ID": 2, "ProductName": "Desk", "PricePerQuantity": 15}
	  ],
	  "Carts": [{"ID": 1, "CustomerName": "Ann"}],
	  "CartItems": [
	    {"ID": 1, "CartID": 1, "ProductID": 1, "Quantity": 2, "Amount": 20},
	    {"ID": 1, "CartID": 1, "ProductID": 2, "Quantity": 9, "Amount": 135}
	  ]
	}`
	_, err := Decode([]byte(data))
	typed := requireSeedError(t, err)
	assert.Contains(t, typed.Cause().Error(), "conflicting definitions for cart item 1")
}

func TestDecodeReportsAllMissingFields(t *testing.T) {
	typed := requireSeedError(t, func() error {
		_, err := Decode([]byte(`{"Products": []}`))
		return err
	}())
	require.NotNil(t, typed.Cause())
	assert.Contains(t, typed.Cause().Error(), `"Carts"`)
	assert.Contains(t, typed.Cause().Error(), `"CartItems"`)
}

func TestDecodeRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":            `{"Products": [`,
		"top level array":     `[]`,
		"empty document":      `{"Products": [], "Carts": [], "CartItems": []}`,
		"unresolved ref":      `{"Products": [{"$ref": "42"}], "Carts": [], "CartItems": []}`,
		"duplicate id":        `{"Products": [{"$id": "1", "ID": 1}, {"$id": "1", "ID": 2}], "Carts": [], "CartItems": []}`,
		"string id":           `{"Products": [{"ID": "one", "ProductName": "x", "PricePerQuantity": 1}], "Carts": [], "CartItems": []}`,
		"fractional quantity": `{"Products": [{"ID": 1, "PricePerQuantity": 1}], "Carts": [{"ID": 1, "CustomerName": "a"}], "CartItems": [{"ID": 1, "CartID": 1, "ProductID": 1, "Quantity": 1.5}]}`,
		"bad price":           `{"Products": [{"ID": 1, "PricePerQuantity": "cheap"}], "Carts": [], "CartItems": []}`,
		"unknown product":     `{"Products": [{"ID": 1, "PricePerQuantity": 1}], "Carts": [{"ID": 1, "CustomerName": "a"}], "CartItems": [{"ID": 1, "CartID": 1, "ProductID": 7, "Quantity": 1}]}`,
		"unknown cart":        `{"Products": [{"ID": 1, "PricePerQuantity": 1}], "Carts": [], "CartItems": [{"ID": 1, "CartID": 3, "ProductID": 1, "Quantity": 1}]}`,
		"null product":        `{"Products": [null], "Carts": [], "CartItems": []}`,
		"duplicate customer":  `{"Products": [], "Carts": [{"ID": 1, "CustomerName": "a"}, {"ID": 2, "CustomerName": "a"}], "CartItems": []}`,
		"conflicting product": `{"Products": [{"ID": 1, "ProductName": "a", "PricePerQuantity": 1}, {"ID": 1, "ProductName": "b", "PricePerQuantity": 1}], "Carts": [], "CartItems": []}`,
		"conflicting item":    `{"Products": [{"ID": 1, "PricePerQuantity": 1}, {"ID": 2, "PricePerQuantity": 2}], "Carts": [{"ID": 1, "CustomerName": "a"}], "CartItems": [{"ID": 1, "CartID": 1, "ProductID": 1, "Quantity": 2}, {"ID": 1, "CartID": 1, "ProductID": 2, "Quantity": 9}]}`,
		"wrong ref type":      `{"Products": [{"$id": "1", "ID": 1, "PricePerQuantity": 1}], "Carts": [{"$ref": "1"}], "CartItems": []}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(data))
			requireSeedError(t, err)
		})
	}
}

func TestEncodeWritesReferenceMarkers(t *testing.T) {
	doc, err := Decode([]byte(preservedDocument))
	require.NoError(t, err)

	data, err := Encode(doc)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"$id": "1"`)
	assert.Contains(t, text, `"$values"`)
	assert.Contains(t, text, `"$ref"`)
	assert.NotContains(t, text, `"Cart":`)

	again, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, again.CartItems, 2)
	assert.Same(t, again.Products[0], again.CartItems[0].Product)
	assert.Same(t, again.CartItems[0], again.Carts[0].CartItems[0])
}
