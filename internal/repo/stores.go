// internal/repo/stores.go
package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// ---------------- Stores ----------------

const storeCols = `id, user_id, name, slug, currency, created_at, updated_at`

func scanStore(row pgx.Row) (models.Store, error) {
	var s models.Store
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Slug, &s.Currency, &s.CreatedAt, &s.UpdatedAt)
	return s, mapErr(err)
}

func (p *pgRepo) UpsertStore(ctx context.Context, userID uuid.UUID, arg UpsertStoreParams) (models.Store, error) {
	slog.DebugContext(ctx, "UpsertStore", "user_id", userID.String(), "store_id", arg.ID.String())
	if arg.ID != uuid.Nil {
		return scanStore(p.pool.QueryRow(ctx,
			`UPDATE stores
			 SET name = $1, slug = $2, currency = $3, updated_at = now()
			 WHERE id = $4 AND user_id = $5
			 RETURNING `+storeCols,
			arg.Name, arg.Slug, arg.Currency, arg.ID, userID))
	}
	return scanStore(p.pool.QueryRow(ctx,
		`INSERT INTO stores (id, user_id, name, slug, currency)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+storeCols,
		uuid.New(), userID, arg.Name, arg.Slug, arg.Currency))
}

func (p *pgRepo) ListStores(ctx context.Context, userID uuid.UUID) ([]models.Store, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+storeCols+` FROM stores WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, mapErr(rows.Err())
}

func (p *pgRepo) DeleteStore(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM stores WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ---------------- Store products ----------------

// AttachProductToStore links an owned product to an owned store. The link is
// idempotent: re-attaching returns the existing row.
func (p *pgRepo) AttachProductToStore(ctx context.Context, userID, storeID, productID uuid.UUID) (models.StoreProduct, error) {
	slog.DebugContext(ctx, "AttachProductToStore",
		"user_id", userID.String(), "store_id", storeID.String(), "product_id", productID.String())
	var sp models.StoreProduct
	err := p.pool.QueryRow(ctx,
		`INSERT INTO store_products (id, store_id, product_id)
		 SELECT $1, s.id, pr.id
		 FROM stores s
		 JOIN products pr ON pr.id = $2 AND pr.user_id = $4
		 WHERE s.id = $3 AND s.user_id = $4
		 ON CONFLICT (store_id, product_id) DO UPDATE SET store_id = EXCLUDED.store_id
		 RETURNING id, store_id, product_id, created_at`,
		uuid.New(), productID, storeID, userID).
		Scan(&sp.ID, &sp.StoreID, &sp.ProductID, &sp.CreatedAt)
	if err != nil {
		// No row means either the store or the product is not the caller's.
		return models.StoreProduct{}, mapErr(err)
	}
	return sp, nil
}

// GetStoreProductForUser walks the association up to the owning store, so a
// store product is only visible through its owner.
func (p *pgRepo) GetStoreProductForUser(ctx context.Context, storeProductID, userID uuid.UUID) (models.StoreProduct, error) {
	var sp models.StoreProduct
	err := p.pool.QueryRow(ctx,
		`SELECT sp.id, sp.store_id, sp.product_id, sp.created_at
		 FROM store_products sp
		 JOIN stores s ON s.id = sp.store_id
		 WHERE sp.id = $1 AND s.user_id = $2`,
		storeProductID, userID).
		Scan(&sp.ID, &sp.StoreID, &sp.ProductID, &sp.CreatedAt)
	return sp, mapErr(err)
}

func (p *pgRepo) ListStoreProducts(ctx context.Context, storeID, userID uuid.UUID) ([]models.StoreProduct, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT sp.id, sp.store_id, sp.product_id, sp.created_at
		 FROM store_products sp
		 JOIN stores s ON s.id = sp.store_id
		 WHERE sp.store_id = $1 AND s.user_id = $2
		 ORDER BY sp.created_at DESC`,
		storeID, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.StoreProduct{}
	for rows.Next() {
		var sp models.StoreProduct
		if err := rows.Scan(&sp.ID, &sp.StoreID, &sp.ProductID, &sp.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, sp)
	}
	return out, mapErr(rows.Err())
}

// ---------------- Store prices ----------------

const priceCols = `id, store_product_id, variant_id, price_cents, currency, visibility, created_at, updated_at`

func scanPrice(row pgx.Row) (models.StorePrice, error) {
	var sp models.StorePrice
	err := row.Scan(&sp.ID, &sp.StoreProductID, &sp.VariantID,
		&sp.PriceCents, &sp.Currency, &sp.Visibility, &sp.CreatedAt, &sp.UpdatedAt)
	return sp, mapErr(err)
}

// EnsureStorePrice lazily creates the default price row for a store product.
// The default is the first variant's price, zero when the product has no
// variants. Concurrent callers race on the unique constraint; the loser's
// insert is a no-op and both observe the same single row.
func (p *pgRepo) EnsureStorePrice(ctx context.Context, storeProductID uuid.UUID) (models.StorePrice, error) {
	slog.DebugContext(ctx, "EnsureStorePrice", "store_product_id", storeProductID.String())
	sp, err := scanPrice(p.pool.QueryRow(ctx,
		`SELECT `+priceCols+` FROM store_prices
		 WHERE store_product_id = $1 AND variant_id IS NULL`,
		storeProductID))
	if err == nil {
		return sp, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.StorePrice{}, err
	}

	cents, err := p.defaultPriceCents(ctx, storeProductID)
	if err != nil {
		return models.StorePrice{}, err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO store_prices (id, store_product_id, price_cents, currency, visibility)
		 VALUES ($1, $2, $3, 'USD', 'VISIBLE')
		 ON CONFLICT (store_product_id, variant_id) DO NOTHING`,
		uuid.New(), storeProductID, cents)
	if err != nil && !isUniqueViolation(err) {
		slog.ErrorContext(ctx, "EnsureStorePrice insert failed", "err", err)
		return models.StorePrice{}, mapErr(err)
	}
	return scanPrice(p.pool.QueryRow(ctx,
		`SELECT `+priceCols+` FROM store_prices
		 WHERE store_product_id = $1 AND variant_id IS NULL`,
		storeProductID))
}

// defaultPriceCents derives the lazy-creation default from the product's
// first variant by position.
func (p *pgRepo) defaultPriceCents(ctx context.Context, storeProductID uuid.UUID) (int64, error) {
	var cents int64
	err := p.pool.QueryRow(ctx,
		`SELECT COALESCE((
			SELECT v.price_cents
			FROM variants v
			JOIN store_products sp ON sp.product_id = v.product_id
			WHERE sp.id = $1
			ORDER BY v.position, v.created_at
			LIMIT 1
		 ), 0)`,
		storeProductID).Scan(&cents)
	if err != nil {
		return 0, mapErr(err)
	}
	return cents, nil
}

func (p *pgRepo) SetStorePrice(ctx context.Context, userID, storeProductID uuid.UUID, arg SetStorePriceParams) (models.StorePrice, error) {
	slog.DebugContext(ctx, "SetStorePrice", "user_id", userID.String(), "store_product_id", storeProductID.String())
	sp, err := p.GetStoreProductForUser(ctx, storeProductID, userID)
	if err != nil {
		return models.StorePrice{}, err
	}
	// A variant-level price must reference a variant of this association's
	// product. Absent and foreign-owned variants are the same ErrNotFound.
	if arg.VariantID != nil {
		var one int
		err := p.pool.QueryRow(ctx,
			`SELECT 1 FROM variants WHERE id = $1 AND product_id = $2`,
			*arg.VariantID, sp.ProductID).Scan(&one)
		if err != nil {
			return models.StorePrice{}, mapErr(err)
		}
	}
	price, err := scanPrice(p.pool.QueryRow(ctx,
		`INSERT INTO store_prices (id, store_product_id, variant_id, price_cents, currency, visibility)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (store_product_id, variant_id) DO UPDATE
		 SET price_cents = EXCLUDED.price_cents,
		     currency = EXCLUDED.currency,
		     visibility = EXCLUDED.visibility,
		     updated_at = now()
		 RETURNING `+priceCols,
		uuid.New(), storeProductID, arg.VariantID, arg.PriceCents, arg.Currency, arg.Visibility))
	if err != nil {
		slog.ErrorContext(ctx, "SetStorePrice failed", "err", err)
		return models.StorePrice{}, err
	}
	return price, nil
}
