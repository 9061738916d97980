package seed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/angelmondragon/shoppingcart/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const (
	markerID     = "$id"
	markerRef    = "$ref"
	markerValues = "$values"
)

var requiredFields = []string{"Products", "Carts", "CartItems"}

// Decode parses a seed document. Reference markers ($id, $ref, $values) are honoured so that
// repeated references resolve to the same pointer; documents without markers are accepted too.
func Decode(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, invalid(fmt.Errorf("parse json: %w", err))
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, invalid(fmt.Errorf("top level must be an object"))
	}

	var missing error
	for _, field := range requiredFields {
		if _, ok := obj[field]; !ok {
			missing = multierr.Append(missing, fmt.Errorf("missing top-level field %q", field))
		}
	}
	if missing != nil {
		return nil, invalid(missing)
	}

	r := newResolver()
	if err := r.index(obj); err != nil {
		return nil, invalid(err)
	}

	doc := &Document{}
	products, err := r.list(obj["Products"], "Products")
	if err != nil {
		return nil, invalid(err)
	}
	for i, raw := range products {
		p, err := r.product(raw, fmt.Sprintf("Products[%d]", i))
		if err != nil {
			return nil, invalid(err)
		}
		if p == nil {
			return nil, invalid(fmt.Errorf("Products[%d] is null", i))
		}
		doc.Products = append(doc.Products, p)
	}

	carts, err := r.list(obj["Carts"], "Carts")
	if err != nil {
		return nil, invalid(err)
	}
	for i, raw := range carts {
		c, err := r.cart(raw, fmt.Sprintf("Carts[%d]", i))
		if err != nil {
			return nil, invalid(err)
		}
		if c == nil {
			return nil, invalid(fmt.Errorf("Carts[%d] is null", i))
		}
		doc.Carts = append(doc.Carts, c)
	}

	items, err := r.list(obj["CartItems"], "CartItems")
	if err != nil {
		return nil, invalid(err)
	}
	for i, raw := range items {
		item, err := r.item(raw, fmt.Sprintf("CartItems[%d]", i))
		if err != nil {
			return nil, invalid(err)
		}
		if item == nil {
			return nil, invalid(fmt.Errorf("CartItems[%d] is null", i))
		}
		doc.CartItems = append(doc.CartItems, item)
	}

	if err := doc.normalize(); err != nil {
		return nil, invalid(err)
	}
	if doc.Empty() {
		return nil, invalid(fmt.Errorf("document holds no products, carts or cart items"))
	}
	return doc, nil
}

func invalid(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeSeedFormat, fmt.Errorf("%w: %w", ErrInvalidSeed, err), "decode seed document")
}

// resolver materialises JSON objects into entities, memoising everything that carries an $id.
type resolver struct {
	raw   map[string]map[string]any
	built map[string]any
}

func newResolver() *resolver {
	return &resolver{
		raw:   map[string]map[string]any{},
		built: map[string]any{},
	}
}

func (r *resolver) index(v any) error {
	switch t := v.(type) {
	case map[string]any:
		if id, ok := t[markerID]; ok {
			key, ok := id.(string)
			if !ok {
				return fmt.Errorf("%s must be a string, got %T", markerID, id)
			}
			if _, dup := r.raw[key]; dup {
				return fmt.Errorf("duplicate %s %q", markerID, key)
			}
			r.raw[key] = t
		}
		for k, child := range t {
			if k == markerID || k == markerRef {
				continue
			}
			if err := r.index(child); err != nil {
				return err
			}
		}
	case []any:
		for _, child := range t {
			if err := r.index(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// deref follows a $ref to its target object.
func (r *resolver) deref(obj map[string]any, path string) (map[string]any, string, error) {
	ref, ok := obj[markerRef]
	if !ok {
		id, _ := obj[markerID].(string)
		return obj, id, nil
	}
	key, ok := ref.(string)
	if !ok {
		return nil, "", fmt.Errorf("%s: %s must be a string", path, markerRef)
	}
	target, ok := r.raw[key]
	if !ok {
		return nil, "", fmt.Errorf("%s: unresolved reference %q", path, key)
	}
	if _, chained := target[markerRef]; chained {
		return nil, "", fmt.Errorf("%s: reference %q points at another reference", path, key)
	}
	return target, key, nil
}

func (r *resolver) list(v any, path string) ([]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return t, nil
	case map[string]any:
		obj, _, err := r.deref(t, path)
		if err != nil {
			return nil, err
		}
		values, ok := obj[markerValues]
		if !ok {
			return nil, fmt.Errorf("%s: expected an array or a %s wrapper", path, markerValues)
		}
		arr, ok := values.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: %s must be an array", path, markerValues)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("%s: expected an array, got %T", path, v)
	}
}

func (r *resolver) object(v any, path string) (map[string]any, string, error) {
	switch t := v.(type) {
	case nil:
		return nil, "", nil
	case map[string]any:
		return r.deref(t, path)
	default:
		return nil, "", fmt.Errorf("%s: expected an object, got %T", path, v)
	}
}

func (r *resolver) product(v any, path string) (*models.Product, error) {
	obj, id, err := r.object(v, path)
	if err != nil || obj == nil {
		return nil, err
	}
	if id != "" {
		if built, ok := r.built[id]; ok {
			p, ok := built.(*models.Product)
			if !ok {
				return nil, fmt.Errorf("%s: reference %q is not a product", path, id)
			}
			return p, nil
		}
	}

	p := &models.Product{}
	if id != "" {
		r.built[id] = p
	}
	var errs error
	p.ID, err = intField(obj, "ID", path)
	errs = multierr.Append(errs, err)
	p.ProductName, err = stringField(obj, "ProductName", path)
	errs = multierr.Append(errs, err)
	p.PricePerQuantity, err = decimalField(obj, "PricePerQuantity", path)
	errs = multierr.Append(errs, err)
	return p, errs
}

func (r *resolver) cart(v any, path string) (*models.Cart, error) {
	obj, id, err := r.object(v, path)
	if err != nil || obj == nil {
		return nil, err
	}
	if id != "" {
		if built, ok := r.built[id]; ok {
			c, ok := built.(*models.Cart)
			if !ok {
				return nil, fmt.Errorf("%s: reference %q is not a cart", path, id)
			}
			return c, nil
		}
	}

	c := &models.Cart{CartItems: []*models.CartItem{}}
	if id != "" {
		r.built[id] = c
	}
	var errs error
	c.ID, err = intField(obj, "ID", path)
	errs = multierr.Append(errs, err)
	c.CustomerName, err = stringField(obj, "CustomerName", path)
	errs = multierr.Append(errs, err)
	c.TotalAmount, err = decimalField(obj, "TotalAmount", path)
	errs = multierr.Append(errs, err)
	if errs != nil {
		return nil, errs
	}

	items, err := r.list(obj["CartItems"], path+".CartItems")
	if err != nil {
		return nil, err
	}
	for i, raw := range items {
		item, err := r.item(raw, fmt.Sprintf("%s.CartItems[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%s.CartItems[%d] is null", path, i)
		}
		if item.Cart == nil {
			item.Cart = c
		}
		c.CartItems = append(c.CartItems, item)
	}
	return c, nil
}

func (r *resolver) item(v any, path string) (*models.CartItem, error) {
	obj, id, err := r.object(v, path)
	if err != nil || obj == nil {
		return nil, err
	}
	if id != "" {
		if built, ok := r.built[id]; ok {
			item, ok := built.(*models.CartItem)
			if !ok {
				return nil, fmt.Errorf("%s: reference %q is not a cart item", path, id)
			}
			return item, nil
		}
	}

	item := &models.CartItem{}
	if id != "" {
		r.built[id] = item
	}
	var errs error
	item.ID, err = intField(obj, "ID", path)
	errs = multierr.Append(errs, err)
	item.CartID, err = intField(obj, "CartID", path)
	errs = multierr.Append(errs, err)
	item.ProductID, err = intField(obj, "ProductID", path)
	errs = multierr.Append(errs, err)
	item.Quantity, err = intField(obj, "Quantity", path)
	errs = multierr.Append(errs, err)
	item.Amount, err = decimalField(obj, "Amount", path)
	errs = multierr.Append(errs, err)
	if errs != nil {
		return nil, errs
	}

	if item.Product, err = r.product(obj["Product"], path+".Product"); err != nil {
		return nil, err
	}
	if item.Cart, err = r.cart(obj["Cart"], path+".Cart"); err != nil {
		return nil, err
	}
	return item, nil
}

func intField(obj map[string]any, key, path string) (int, error) {
	switch v := obj[key].(type) {
	case nil:
		return 0, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %q is not an integer", path, key, v.String())
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s.%s: expected a number, got %T", path, key, v)
	}
}

func stringField(obj map[string]any, key, path string) (string, error) {
	switch v := obj[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%s.%s: expected a string, got %T", path, key, v)
	}
}

func decimalField(obj map[string]any, key, path string) (decimal.Decimal, error) {
	var raw string
	switch v := obj[key].(type) {
	case nil:
		return decimal.Zero, nil
	case json.Number:
		raw = v.String()
	case string:
		raw = strings.TrimSpace(v)
	default:
		return decimal.Zero, fmt.Errorf("%s.%s: expected a number, got %T", path, key, v)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s.%s: %q is not a decimal", path, key, raw)
	}
	return d, nil
}
