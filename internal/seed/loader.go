package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/shoppingcart/pkg/config"
	"github.com/angelmondragon/shoppingcart/pkg/db"
	"github.com/angelmondragon/shoppingcart/pkg/logger"
	"github.com/angelmondragon/shoppingcart/pkg/metrics"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

// serial columns whose sequences must move past explicitly inserted IDs on postgres.
var serialTables = []string{"carts", "cart_items"}

type productCounter interface {
	CountProducts(ctx context.Context) (int64, error)
}

// LoaderParams groups the loader dependencies. Logger and Metrics are optional.
type LoaderParams struct {
	Client   *db.Client
	Products productCounter
	Config   config.SeedConfig
	Logger   *logger.Logger
	Metrics  *metrics.SeedMetrics
}

// Loader populates an empty store from a seed document.
type Loader struct {
	client   *db.Client
	products productCounter
	path     string
	logg     *logger.Logger
	metrics  *metrics.SeedMetrics
}

// NewLoader resolves the seed path and validates the dependencies.
func NewLoader(params LoaderParams) (*Loader, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product counter required")
	}
	path, err := ResolvePath(params.Config)
	if err != nil {
		return nil, err
	}
	return &Loader{
		client:   params.Client,
		products: params.Products,
		path:     path,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// Path returns the resolved seed file location.
func (l *Loader) Path() string {
	return l.path
}

// LoadIfEmpty loads the seed document only when no product is stored yet.
func (l *Loader) LoadIfEmpty(ctx context.Context) (bool, error) {
	count, err := l.products.CountProducts(ctx)
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		l.metrics.ObserveLoad(metrics.SeedResultSkipped, 0)
		if l.logg != nil {
			l.logg.Info(l.logg.WithField(ctx, "products", count), "seed.skipped")
		}
		return false, nil
	}
	if err := l.LoadSeedData(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// LoadSeedData reads the seed file and inserts every product, cart and cart item in one transaction.
func (l *Loader) LoadSeedData(ctx context.Context) error {
	start := time.Now()
	if l.logg != nil {
		ctx = l.logg.WithField(ctx, "seed_file", l.path)
	}

	err := l.load(ctx)
	if err != nil {
		l.metrics.ObserveLoad(metrics.SeedResultFailed, time.Since(start))
		if l.logg != nil {
			l.logg.Error(ctx, "seed.failed", err)
		}
		return err
	}
	l.metrics.ObserveLoad(metrics.SeedResultLoaded, time.Since(start))
	return nil
}

func (l *Loader) load(ctx context.Context) error {
	doc, err := ReadFile(l.path)
	if err != nil {
		return err
	}

	err = l.client.WithTx(ctx, func(tx *gorm.DB) error {
		return Insert(ctx, tx, doc)
	})
	if err != nil {
		return fmt.Errorf("insert seed data: %w", err)
	}

	if l.client.Driver() == config.DriverPostgres {
		if err := resetSequences(ctx, l.client.DB()); err != nil {
			return err
		}
	}

	if l.logg != nil {
		l.logg.Info(l.logg.WithFields(ctx, map[string]any{
			"products":   len(doc.Products),
			"carts":      len(doc.Carts),
			"cart_items": len(doc.CartItems),
		}), "seed.loaded")
	}
	return nil
}

// Insert writes the document through tx. Cart IDs assigned by the store are copied onto their items.
func Insert(ctx context.Context, tx *gorm.DB, doc *Document) error {
	tx = tx.WithContext(ctx)
	if len(doc.Products) > 0 {
		if err := tx.Omit(clause.Associations).CreateInBatches(doc.Products, insertBatchSize).Error; err != nil {
			return fmt.Errorf("products: %w", err)
		}
	}
	if len(doc.Carts) > 0 {
		if err := tx.Omit(clause.Associations).CreateInBatches(doc.Carts, insertBatchSize).Error; err != nil {
			return fmt.Errorf("carts: %w", err)
		}
	}
	for _, item := range doc.CartItems {
		if item.Cart != nil {
			item.CartID = item.Cart.ID
		}
	}
	if len(doc.CartItems) > 0 {
		if err := tx.Omit(clause.Associations).CreateInBatches(doc.CartItems, insertBatchSize).Error; err != nil {
			return fmt.Errorf("cart items: %w", err)
		}
	}
	return nil
}

func resetSequences(ctx context.Context, conn *gorm.DB) error {
	for _, table := range serialTables {
		if err := conn.WithContext(ctx).Exec(sequenceResetSQL(table)).Error; err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}
	return nil
}

func sequenceResetSQL(table string) string {
	return fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence(%s, 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s",
		pq.QuoteLiteral(table),
		pq.QuoteIdentifier(table),
	)
}
