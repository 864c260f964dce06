// internal/repo/integrations.go
package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// ---------------- Payout accounts ----------------

const payoutCols = `id, user_id, stripe_account_id, onboarded, created_at, updated_at`

func scanPayout(row pgx.Row) (models.PayoutAccount, error) {
	var a models.PayoutAccount
	err := row.Scan(&a.ID, &a.UserID, &a.StripeAccountID, &a.Onboarded, &a.CreatedAt, &a.UpdatedAt)
	return a, mapErr(err)
}

func (p *pgRepo) GetPayoutAccount(ctx context.Context, userID uuid.UUID) (models.PayoutAccount, error) {
	return scanPayout(p.pool.QueryRow(ctx,
		`SELECT `+payoutCols+` FROM payout_accounts WHERE user_id = $1`, userID))
}

func (p *pgRepo) UpsertPayoutAccount(ctx context.Context, userID uuid.UUID, stripeAccountID string, onboarded bool) (models.PayoutAccount, error) {
	slog.DebugContext(ctx, "UpsertPayoutAccount", "user_id", userID.String())
	return scanPayout(p.pool.QueryRow(ctx,
		`INSERT INTO payout_accounts (id, user_id, stripe_account_id, onboarded)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET stripe_account_id = EXCLUDED.stripe_account_id,
		     onboarded = EXCLUDED.onboarded,
		     updated_at = now()
		 RETURNING `+payoutCols,
		uuid.New(), userID, stripeAccountID, onboarded))
}

// ---------------- Printify connections ----------------

const printifyCols = `id, user_id, api_key, shop_id, created_at, updated_at`

func scanPrintify(row pgx.Row) (models.PrintifyConnection, error) {
	var c models.PrintifyConnection
	err := row.Scan(&c.ID, &c.UserID, &c.APIKey, &c.ShopID, &c.CreatedAt, &c.UpdatedAt)
	return c, mapErr(err)
}

func (p *pgRepo) GetPrintifyConnection(ctx context.Context, userID uuid.UUID) (models.PrintifyConnection, error) {
	return scanPrintify(p.pool.QueryRow(ctx,
		`SELECT `+printifyCols+` FROM printify_connections WHERE user_id = $1`, userID))
}

func (p *pgRepo) UpsertPrintifyConnection(ctx context.Context, userID uuid.UUID, apiKey, shopID string) (models.PrintifyConnection, error) {
	slog.DebugContext(ctx, "UpsertPrintifyConnection", "user_id", userID.String())
	return scanPrintify(p.pool.QueryRow(ctx,
		`INSERT INTO printify_connections (id, user_id, api_key, shop_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET api_key = EXCLUDED.api_key,
		     shop_id = EXCLUDED.shop_id,
		     updated_at = now()
		 RETURNING `+printifyCols,
		uuid.New(), userID, apiKey, shopID))
}

// ImportProduct creates a product plus its variants from an external listing
// in one transaction. A product already imported for this user (matched on the
// external ID) is returned unchanged with created=false.
func (p *pgRepo) ImportProduct(ctx context.Context, userID uuid.UUID, arg ImportProductParams) (models.Product, bool, error) {
	slog.DebugContext(ctx, "ImportProduct", "user_id", userID.String(), "printify_product_id", arg.PrintifyProductID)
	existing, err := scanProduct(p.pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM products
		 WHERE user_id = $1 AND printify_product_id = $2`,
		userID, arg.PrintifyProductID))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.Product{}, false, err
	}

	var pr models.Product
	err = pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var err error
		pr, err = scanProduct(tx.QueryRow(ctx,
			`INSERT INTO products (id, user_id, name, description, printify_product_id)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+productCols,
			uuid.New(), userID, arg.Name, arg.Description, arg.PrintifyProductID))
		if err != nil {
			return err
		}
		for _, v := range arg.Variants {
			if _, err := tx.Exec(ctx,
				`INSERT INTO variants (id, product_id, name, sku, price_cents, position)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.New(), pr.ID, v.Name, v.SKU, v.PriceCents, v.Position); err != nil {
				return mapErr(err)
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent import of the same listing loses the race on the
		// unique constraint; treat it as already imported.
		if isUniqueViolation(err) {
			pr, gerr := scanProduct(p.pool.QueryRow(ctx,
				`SELECT `+productCols+` FROM products
				 WHERE user_id = $1 AND printify_product_id = $2`,
				userID, arg.PrintifyProductID))
			return pr, false, gerr
		}
		slog.ErrorContext(ctx, "ImportProduct failed", "err", err)
		return models.Product{}, false, err
	}
	return pr, true, nil
}
