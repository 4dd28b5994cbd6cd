package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
)

type ctxKey string

const (
	// ShopIDKey is the context key for the active shop ID
	ShopIDKey ctxKey = "shop_id"
)

// txKey carries an open transaction handle through the context.
type txKey struct{}

// ShopScope returns a GORM scope that filters by the active shop.
// This should be applied to all queries for shop-scoped entities.
func ShopScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		shopID, ok := ctx.Value(ShopIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if shop context missing.
			// This prevents accidental cross-shop data access.
			return db.Where("1 = 0")
		}
		return db.Where("shop_id = ?", shopID)
	}
}

// WithShop adds the active shop ID to the context
func WithShop(ctx context.Context, shopID uuid.UUID) context.Context {
	return context.WithValue(ctx, ShopIDKey, shopID)
}

// GetShopID extracts the active shop ID from the context
func GetShopID(ctx context.Context) (uuid.UUID, bool) {
	shopID, ok := ctx.Value(ShopIDKey).(uuid.UUID)
	return shopID, ok
}

// WithTx stores an open transaction in the context so that repository calls
// made inside a Transactor callback all share it.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext resolves the database handle: the context transaction if one
// is open, the repository's own connection otherwise.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor backed by GORM transactions
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls reuse the already-open transaction.
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
