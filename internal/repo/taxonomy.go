// internal/repo/taxonomy.go
package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// ---------------- Categories ----------------

const namedCols = `id, user_id, name, created_at, updated_at`

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	return c, mapErr(err)
}

// UpsertCategory creates or renames a category. A duplicate name for the same
// user surfaces as ErrConflict from the unique constraint.
func (p *pgRepo) UpsertCategory(ctx context.Context, userID uuid.UUID, arg UpsertNameParams) (models.Category, error) {
	slog.DebugContext(ctx, "UpsertCategory", "user_id", userID.String(), "category_id", arg.ID.String())
	if arg.ID != uuid.Nil {
		return scanCategory(p.pool.QueryRow(ctx,
			`UPDATE categories
			 SET name = $1, updated_at = now()
			 WHERE id = $2 AND user_id = $3
			 RETURNING `+namedCols,
			arg.Name, arg.ID, userID))
	}
	return scanCategory(p.pool.QueryRow(ctx,
		`INSERT INTO categories (id, user_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING `+namedCols,
		uuid.New(), userID, arg.Name))
}

func (p *pgRepo) ListCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+namedCols+` FROM categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, mapErr(rows.Err())
}

func (p *pgRepo) DeleteCategory(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ---------------- Tags ----------------

func scanTag(row pgx.Row) (models.Tag, error) {
	var t models.Tag
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	return t, mapErr(err)
}

func (p *pgRepo) UpsertTag(ctx context.Context, userID uuid.UUID, arg UpsertNameParams) (models.Tag, error) {
	slog.DebugContext(ctx, "UpsertTag", "user_id", userID.String(), "tag_id", arg.ID.String())
	if arg.ID != uuid.Nil {
		return scanTag(p.pool.QueryRow(ctx,
			`UPDATE tags
			 SET name = $1, updated_at = now()
			 WHERE id = $2 AND user_id = $3
			 RETURNING `+namedCols,
			arg.Name, arg.ID, userID))
	}
	return scanTag(p.pool.QueryRow(ctx,
		`INSERT INTO tags (id, user_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING `+namedCols,
		uuid.New(), userID, arg.Name))
}

func (p *pgRepo) ListTags(ctx context.Context, userID uuid.UUID) ([]models.Tag, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+namedCols+` FROM tags WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, mapErr(rows.Err())
}

func (p *pgRepo) DeleteTag(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM tags WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
