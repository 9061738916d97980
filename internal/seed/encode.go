package seed

import (
	"strconv"

	"github.com/angelmondragon/shoppingcart/pkg/db/models"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

type refWire struct {
	Ref string `json:"$ref"`
}

type valuesWire struct {
	ID     string `json:"$id"`
	Values []any  `json:"$values"`
}

type documentWire struct {
	ID        string     `json:"$id"`
	Products  valuesWire `json:"Products"`
	Carts     valuesWire `json:"Carts"`
	CartItems valuesWire `json:"CartItems"`
}

type productWire struct {
	RefID            string          `json:"$id"`
	ID               int             `json:"ID"`
	ProductName      string          `json:"ProductName"`
	PricePerQuantity decimal.Decimal `json:"PricePerQuantity"`
}

type cartWire struct {
	RefID        string          `json:"$id"`
	ID           int             `json:"ID"`
	CustomerName string          `json:"CustomerName"`
	CartItems    valuesWire      `json:"CartItems"`
	TotalAmount  decimal.Decimal `json:"TotalAmount"`
}

type cartItemWire struct {
	RefID     string          `json:"$id"`
	ID        int             `json:"ID"`
	CartID    int             `json:"CartID"`
	ProductID int             `json:"ProductID"`
	Product   any             `json:"Product"`
	Quantity  int             `json:"Quantity"`
	Amount    decimal.Decimal `json:"Amount"`
}

// encoder hands out sequential $id values and emits a $ref for any pointer already written.
type encoder struct {
	next int
	seen map[any]string
}

// Encode renders the document as indented JSON with reference markers.
func Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	e := &encoder{seen: map[any]string{}}

	wire := documentWire{ID: e.id()}
	wire.Products = e.values(len(doc.Products))
	for _, p := range doc.Products {
		wire.Products.Values = append(wire.Products.Values, e.product(p))
	}
	wire.Carts = e.values(len(doc.Carts))
	for _, c := range doc.Carts {
		wire.Carts.Values = append(wire.Carts.Values, e.cart(c))
	}
	wire.CartItems = e.values(len(doc.CartItems))
	for _, item := range doc.CartItems {
		wire.CartItems.Values = append(wire.CartItems.Values, e.item(item))
	}
	return json.MarshalIndent(wire, "", "  ")
}

func (e *encoder) id() string {
	e.next++
	return strconv.Itoa(e.next)
}

func (e *encoder) values(n int) valuesWire {
	return valuesWire{ID: e.id(), Values: make([]any, 0, n)}
}

func (e *encoder) ref(ptr any) (any, bool) {
	if id, ok := e.seen[ptr]; ok {
		return refWire{Ref: id}, true
	}
	return nil, false
}

func (e *encoder) product(p *models.Product) any {
	if p == nil {
		return nil
	}
	if ref, ok := e.ref(p); ok {
		return ref
	}
	id := e.id()
	e.seen[p] = id
	return productWire{
		RefID:            id,
		ID:               p.ID,
		ProductName:      p.ProductName,
		PricePerQuantity: p.PricePerQuantity,
	}
}

func (e *encoder) cart(c *models.Cart) any {
	if c == nil {
		return nil
	}
	if ref, ok := e.ref(c); ok {
		return ref
	}
	id := e.id()
	e.seen[c] = id
	wire := cartWire{
		RefID:        id,
		ID:           c.ID,
		CustomerName: c.CustomerName,
		TotalAmount:  c.TotalAmount,
	}
	wire.CartItems = e.values(len(c.CartItems))
	for _, item := range c.CartItems {
		wire.CartItems.Values = append(wire.CartItems.Values, e.item(item))
	}
	return wire
}

func (e *encoder) item(item *models.CartItem) any {
	if item == nil {
		return nil
	}
	if ref, ok := e.ref(item); ok {
		return ref
	}
	id := e.id()
	e.seen[item] = id
	return cartItemWire{
		RefID:     id,
		ID:        item.ID,
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Product:   e.product(item.Product),
		Quantity:  item.Quantity,
		Amount:    item.Amount,
	}
}
