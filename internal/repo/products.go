// internal/repo/products.go
package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// ---------------- Products ----------------

const productCols = `id, user_id, name, description, COALESCE(printify_product_id, ''), created_at, updated_at`

func scanProduct(row pgx.Row) (models.Product, error) {
	var pr models.Product
	err := row.Scan(&pr.ID, &pr.UserID, &pr.Name, &pr.Description,
		&pr.PrintifyProductID, &pr.CreatedAt, &pr.UpdatedAt)
	return pr, mapErr(err)
}

// GetProductForUser is the ownership assertion: the query is scoped to the
// caller, so absent and foreign-owned both come back as ErrNotFound.
func (p *pgRepo) GetProductForUser(ctx context.Context, id, userID uuid.UUID) (models.Product, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id = $1 AND user_id = $2`,
		id, userID)
	return scanProduct(row)
}

func (p *pgRepo) ListProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+productCols+` FROM products WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		slog.ErrorContext(ctx, "ListProducts failed", "err", err)
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		pr, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, mapErr(rows.Err())
}

// UpsertProduct creates or updates a product and re-links its categories and
// tags in one transaction. The owner is always the caller; an update on a row
// the caller does not own fails with ErrNotFound before anything is written.
func (p *pgRepo) UpsertProduct(ctx context.Context, userID uuid.UUID, arg UpsertProductParams) (models.Product, error) {
	slog.DebugContext(ctx, "UpsertProduct", "user_id", userID.String(), "product_id", arg.ID.String())
	var pr models.Product
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var err error
		if arg.ID != uuid.Nil {
			pr, err = scanProduct(tx.QueryRow(ctx,
				`UPDATE products
				 SET name = $1, description = $2, updated_at = now()
				 WHERE id = $3 AND user_id = $4
				 RETURNING `+productCols,
				arg.Name, arg.Description, arg.ID, userID))
		} else {
			pr, err = scanProduct(tx.QueryRow(ctx,
				`INSERT INTO products (id, user_id, name, description)
				 VALUES ($1, $2, $3, $4)
				 RETURNING `+productCols,
				uuid.New(), userID, arg.Name, arg.Description))
		}
		if err != nil {
			return err
		}
		if err := relinkProduct(ctx, tx, pr.ID, userID, "product_categories", "category_id", "categories", arg.CategoryIDs); err != nil {
			return err
		}
		return relinkProduct(ctx, tx, pr.ID, userID, "product_tags", "tag_id", "tags", arg.TagIDs)
	})
	if err != nil {
		slog.ErrorContext(ctx, "UpsertProduct failed", "err", err)
		return models.Product{}, err
	}
	return pr, nil
}

// relinkProduct replaces the product's category or tag links. Linked rows must
// belong to the same user; foreign IDs are rejected as ErrNotFound.
func relinkProduct(ctx context.Context, tx pgx.Tx, productID, userID uuid.UUID, joinTable, joinCol, refTable string, ids []uuid.UUID) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM `+joinTable+` WHERE product_id = $1`, productID); err != nil {
		return mapErr(err)
	}
	for _, id := range ids {
		tag, err := tx.Exec(ctx,
			`INSERT INTO `+joinTable+` (product_id, `+joinCol+`)
			 SELECT $1, id FROM `+refTable+` WHERE id = $2 AND user_id = $3`,
			productID, id, userID)
		if err != nil {
			return mapErr(err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrNotFound
		}
	}
	return nil
}

func (p *pgRepo) DeleteProduct(ctx context.Context, id, userID uuid.UUID) error {
	slog.DebugContext(ctx, "DeleteProduct", "product_id", id.String(), "user_id", userID.String())
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ---------------- Variants ----------------

const variantCols = `id, product_id, name, sku, price_cents, position, created_at, updated_at`

func scanVariant(row pgx.Row) (models.Variant, error) {
	var v models.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.Name, &v.SKU,
		&v.PriceCents, &v.Position, &v.CreatedAt, &v.UpdatedAt)
	return v, mapErr(err)
}

func (p *pgRepo) ListVariants(ctx context.Context, productID, userID uuid.UUID) ([]models.Variant, error) {
	if _, err := p.GetProductForUser(ctx, productID, userID); err != nil {
		return nil, err
	}
	rows, err := p.pool.Query(ctx,
		`SELECT `+variantCols+` FROM variants WHERE product_id = $1 ORDER BY position, created_at`,
		productID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Variant{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, mapErr(rows.Err())
}

func (p *pgRepo) UpsertVariant(ctx context.Context, userID, productID uuid.UUID, arg UpsertVariantParams) (models.Variant, error) {
	slog.DebugContext(ctx, "UpsertVariant", "user_id", userID.String(), "product_id", productID.String())
	// Ownership is transitive: the variant is authorized through its product.
	if _, err := p.GetProductForUser(ctx, productID, userID); err != nil {
		return models.Variant{}, err
	}
	if arg.ID != uuid.Nil {
		return scanVariant(p.pool.QueryRow(ctx,
			`UPDATE variants
			 SET name = $1, sku = $2, price_cents = $3, position = $4, updated_at = now()
			 WHERE id = $5 AND product_id = $6
			 RETURNING `+variantCols,
			arg.Name, arg.SKU, arg.PriceCents, arg.Position, arg.ID, productID))
	}
	return scanVariant(p.pool.QueryRow(ctx,
		`INSERT INTO variants (id, product_id, name, sku, price_cents, position)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+variantCols,
		uuid.New(), productID, arg.Name, arg.SKU, arg.PriceCents, arg.Position))
}

func (p *pgRepo) DeleteVariant(ctx context.Context, userID, productID, variantID uuid.UUID) error {
	if _, err := p.GetProductForUser(ctx, productID, userID); err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM variants WHERE id = $1 AND product_id = $2`, variantID, productID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (p *pgRepo) ListProductCategoryIDs(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error) {
	return p.listLinkedIDs(ctx, productID, userID, "product_categories", "category_id")
}

func (p *pgRepo) ListProductTagIDs(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error) {
	return p.listLinkedIDs(ctx, productID, userID, "product_tags", "tag_id")
}

func (p *pgRepo) listLinkedIDs(ctx context.Context, productID, userID uuid.UUID, joinTable, joinCol string) ([]uuid.UUID, error) {
	if _, err := p.GetProductForUser(ctx, productID, userID); err != nil {
		return nil, err
	}
	rows, err := p.pool.Query(ctx,
		`SELECT `+joinCol+` FROM `+joinTable+` WHERE product_id = $1`, productID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, id)
	}
	return out, mapErr(rows.Err())
}
