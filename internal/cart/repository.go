package cart

import (
	"context"
	"database/sql"
	"errors"

	"ecommerce-be/internal/logger"
	"ecommerce-be/internal/metrics"
	"ecommerce-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// GetProduct returns nil, nil for unknown or inactive products.
	GetProduct(ctx context.Context, productID string) (*Product, error)
	// GetCartItem returns nil, nil when the user has no line for the product.
	GetCartItem(ctx context.Context, userID uint, productID string) (*CartItem, error)
	// AddCartItem inserts the line or increments its quantity.
	AddCartItem(ctx context.Context, params AddCartItemParams) (*CartItem, error)
	// DeleteCartItem returns the deleted line, or nil, nil if there was none.
	DeleteCartItem(ctx context.Context, userID uint, productID string) (*CartItem, error)
	GetCartRows(ctx context.Context, userID uint) ([]CartItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanCartItem reads product_id, name, price, quantity, created_at.
func scanCartItem(s rowScanner) (*CartItem, error) {
	var item CartItem
	if err := s.Scan(
		&item.ProductID,
		&item.Name,
		&item.Price,
		&item.Quantity,
		&item.AddedAt,
	); err != nil {
		return nil, err
	}

	item = withSubtotal(item)
	return &item, nil
}

func (r *repository) GetProduct(ctx context.Context, productID string) (*Product, error) {
	query := `
	SELECT id, name, price, stock, status
	FROM products
	WHERE id = $1 AND status = $2
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, productID, utils.ProductStatusActive).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetCartItem(ctx context.Context, userID uint, productID string) (*CartItem, error) {
	query := `
	SELECT c.product_id, p.name, p.price, c.quantity, c.created_at
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
	WHERE c.user_id = $1 AND c.product_id = $2
	`

	item, err := scanCartItem(r.db.QueryRowContext(ctx, query, userID, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *repository) AddCartItem(ctx context.Context, params AddCartItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddCartItem"),
		zap.Uint("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	query := `
	WITH upserted AS (
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = NOW()
		RETURNING product_id, quantity, created_at
	)
	SELECT u.product_id, p.name, p.price, u.quantity, u.created_at
	FROM upserted u
	JOIN products p ON p.id = u.product_id
	`

	item, err := scanCartItem(r.db.QueryRowContext(ctx, query,
		params.UserID,
		params.ProductID,
		params.Quantity,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			log.Warn("product vanished before insert")
			return nil, errProductGone
		}
		log.Error("failed to upsert cart item", zap.Error(err))
		return nil, err
	}

	log.Debug("cart item stored", zap.Int("quantity", item.Quantity))
	return item, nil
}

func (r *repository) DeleteCartItem(ctx context.Context, userID uint, productID string) (*CartItem, error) {
	query := `
	WITH removed AS (
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2
		RETURNING product_id, quantity, created_at
	)
	SELECT rm.product_id, p.name, p.price, rm.quantity, rm.created_at
	FROM removed rm
	JOIN products p ON p.id = rm.product_id
	`

	item, err := scanCartItem(r.db.QueryRowContext(ctx, query, userID, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *repository) GetCartRows(ctx context.Context, userID uint) ([]CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartRows"),
		zap.Uint("user_id", userID),
	)
	timer := metrics.StartTimer()

	query := `
	SELECT c.product_id, p.name, p.price, c.quantity, c.created_at
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
	WHERE c.user_id = $1
	ORDER BY c.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(items)),
		zap.Duration("duration", timer.Duration()),
	)
	return items, nil
}
