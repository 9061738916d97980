package seed

import (
	"fmt"

	"github.com/angelmondragon/shoppingcart/pkg/db/models"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const (
	DefaultProducts = 10
	DefaultCarts    = 3
	DefaultItems    = 7

	minPrice    = 2
	maxPrice    = 500
	minQuantity = 1
	maxQuantity = 10

	// beyond this many (cart, product) pairs, items are drawn by rejection instead of a full shuffle
	shuffleLimit = 1 << 16
)

// GeneratorConfig sizes the synthetic document. Seed 0 picks a random seed.
type GeneratorConfig struct {
	Products int
	Carts    int
	Items    int
	Seed     uint64
}

// DefaultGeneratorConfig returns the stock document size.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Products: DefaultProducts,
		Carts:    DefaultCarts,
		Items:    DefaultItems,
	}
}

// Validate rejects sizes that cannot produce a consistent document.
func (c GeneratorConfig) Validate() error {
	if c.Products < 0 || c.Carts < 0 || c.Items < 0 {
		return fmt.Errorf("counts must be non-negative")
	}
	if c.Items > 0 && (c.Products == 0 || c.Carts == 0) {
		return fmt.Errorf("items need at least one product and one cart")
	}
	if int64(c.Items) > int64(c.Products)*int64(c.Carts) {
		return fmt.Errorf("%d items exceed the %d distinct (cart, product) pairs", c.Items, c.Products*c.Carts)
	}
	return nil
}

// Generator fabricates seed documents.
type Generator struct {
	cfg   GeneratorConfig
	faker *gofakeit.Faker
}

// NewGenerator validates cfg and seeds the fake data source.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, faker: gofakeit.New(cfg.Seed)}, nil
}

// Generate builds a document whose items hold distinct (cart, product) pairs and whose
// amounts and totals are already computed.
func (g *Generator) Generate() *Document {
	doc := &Document{
		Products:  g.products(),
		Carts:     g.carts(),
		CartItems: make([]*models.CartItem, 0, g.cfg.Items),
	}

	for i, pair := range g.pairs() {
		cart := doc.Carts[pair[0]]
		product := doc.Products[pair[1]]
		item := &models.CartItem{
			ID:        i + 1,
			CartID:    cart.ID,
			Cart:      cart,
			ProductID: product.ID,
			Product:   product,
			Quantity:  g.faker.Number(minQuantity, maxQuantity),
		}
		item.Recompute()
		cart.CartItems = append(cart.CartItems, item)
		cart.TotalAmount = cart.TotalAmount.Add(item.Amount)
		doc.CartItems = append(doc.CartItems, item)
	}
	return doc
}

func (g *Generator) products() []*models.Product {
	products := make([]*models.Product, 0, g.cfg.Products)
	for i := 0; i < g.cfg.Products; i++ {
		products = append(products, &models.Product{
			ID:               i + 1,
			ProductName:      g.faker.ProductName(),
			PricePerQuantity: decimal.NewFromFloat(g.faker.Price(minPrice, maxPrice)).Round(2),
		})
	}
	return products
}

func (g *Generator) carts() []*models.Cart {
	carts := make([]*models.Cart, 0, g.cfg.Carts)
	used := make(map[string]struct{}, g.cfg.Carts)
	for i := 0; i < g.cfg.Carts; i++ {
		name := g.faker.Name()
		for attempt := 0; ; attempt++ {
			if _, taken := used[name]; !taken {
				break
			}
			if attempt >= 10 {
				name = fmt.Sprintf("%s %d", g.faker.Name(), i+1)
				continue
			}
			name = g.faker.Name()
		}
		used[name] = struct{}{}
		carts = append(carts, &models.Cart{
			ID:           i + 1,
			CustomerName: name,
			CartItems:    []*models.CartItem{},
			TotalAmount:  decimal.Zero,
		})
	}
	return carts
}

// pairs returns Items distinct (cart index, product index) pairs.
func (g *Generator) pairs() [][2]int {
	n := g.cfg.Items
	if n == 0 {
		return nil
	}
	total := g.cfg.Carts * g.cfg.Products
	if total <= shuffleLimit {
		all := make([][2]int, 0, total)
		for c := 0; c < g.cfg.Carts; c++ {
			for p := 0; p < g.cfg.Products; p++ {
				all = append(all, [2]int{c, p})
			}
		}
		for i := len(all) - 1; i > 0; i-- {
			j := g.faker.Number(0, i)
			all[i], all[j] = all[j], all[i]
		}
		return all[:n]
	}

	out := make([][2]int, 0, n)
	seen := make(map[[2]int]struct{}, n)
	for len(out) < n {
		pair := [2]int{g.faker.Number(0, g.cfg.Carts-1), g.faker.Number(0, g.cfg.Products-1)}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out
}
