// internal/repo/orders.go
package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// ---------------- Orders ----------------

const orderCols = `id, user_id, store_id, status, total_cents, currency, customer_email, created_at, updated_at`

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.StoreID, &o.Status,
		&o.TotalCents, &o.Currency, &o.CustomerEmail, &o.CreatedAt, &o.UpdatedAt)
	return o, mapErr(err)
}

func (p *pgRepo) CreateOrder(ctx context.Context, userID uuid.UUID, arg CreateOrderParams) (models.Order, error) {
	slog.DebugContext(ctx, "CreateOrder", "user_id", userID.String())
	return scanOrder(p.pool.QueryRow(ctx,
		`INSERT INTO orders (id, user_id, store_id, total_cents, currency, customer_email)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+orderCols,
		uuid.New(), userID, arg.StoreID, arg.TotalCents, arg.Currency, arg.CustomerEmail))
}

func (p *pgRepo) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderCols+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, mapErr(rows.Err())
}

func (p *pgRepo) GetOrderForUser(ctx context.Context, id, userID uuid.UUID) (models.Order, error) {
	return scanOrder(p.pool.QueryRow(ctx,
		`SELECT `+orderCols+` FROM orders WHERE id = $1 AND user_id = $2`, id, userID))
}

func (p *pgRepo) SetOrderStatus(ctx context.Context, userID, id uuid.UUID, status models.OrderStatus) (models.Order, error) {
	slog.DebugContext(ctx, "SetOrderStatus", "user_id", userID.String(), "order_id", id.String(), "status", string(status))
	return scanOrder(p.pool.QueryRow(ctx,
		`UPDATE orders
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3
		 RETURNING `+orderCols,
		status, id, userID))
}
