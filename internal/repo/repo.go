// internal/repo/repo.go
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// Repo defines the methods the rest of the app uses. Every read or mutation of
// an owned resource takes the caller's user ID and scopes the query to it;
// a row that is absent or foreign-owned surfaces as models.ErrNotFound either way.
type Repo interface {
	// Users & sessions
	CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	CreateSession(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (models.Session, error)
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error)
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error

	// Products & variants
	GetProductForUser(ctx context.Context, id, userID uuid.UUID) (models.Product, error)
	ListProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
	UpsertProduct(ctx context.Context, userID uuid.UUID, arg UpsertProductParams) (models.Product, error)
	DeleteProduct(ctx context.Context, id, userID uuid.UUID) error
	ListVariants(ctx context.Context, productID, userID uuid.UUID) ([]models.Variant, error)
	UpsertVariant(ctx context.Context, userID, productID uuid.UUID, arg UpsertVariantParams) (models.Variant, error)
	DeleteVariant(ctx context.Context, userID, productID, variantID uuid.UUID) error
	ListProductCategoryIDs(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error)
	ListProductTagIDs(ctx context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error)

	// Stores & pricing
	UpsertStore(ctx context.Context, userID uuid.UUID, arg UpsertStoreParams) (models.Store, error)
	ListStores(ctx context.Context, userID uuid.UUID) ([]models.Store, error)
	DeleteStore(ctx context.Context, id, userID uuid.UUID) error
	AttachProductToStore(ctx context.Context, userID, storeID, productID uuid.UUID) (models.StoreProduct, error)
	GetStoreProductForUser(ctx context.Context, storeProductID, userID uuid.UUID) (models.StoreProduct, error)
	ListStoreProducts(ctx context.Context, storeID, userID uuid.UUID) ([]models.StoreProduct, error)
	EnsureStorePrice(ctx context.Context, storeProductID uuid.UUID) (models.StorePrice, error)
	SetStorePrice(ctx context.Context, userID, storeProductID uuid.UUID, arg SetStorePriceParams) (models.StorePrice, error)

	// Categories & tags
	UpsertCategory(ctx context.Context, userID uuid.UUID, arg UpsertNameParams) (models.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id, userID uuid.UUID) error
	UpsertTag(ctx context.Context, userID uuid.UUID, arg UpsertNameParams) (models.Tag, error)
	ListTags(ctx context.Context, userID uuid.UUID) ([]models.Tag, error)
	DeleteTag(ctx context.Context, id, userID uuid.UUID) error

	// Orders
	CreateOrder(ctx context.Context, userID uuid.UUID, arg CreateOrderParams) (models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	GetOrderForUser(ctx context.Context, id, userID uuid.UUID) (models.Order, error)
	SetOrderStatus(ctx context.Context, userID, id uuid.UUID, status models.OrderStatus) (models.Order, error)

	// Integrations
	GetPayoutAccount(ctx context.Context, userID uuid.UUID) (models.PayoutAccount, error)
	UpsertPayoutAccount(ctx context.Context, userID uuid.UUID, stripeAccountID string, onboarded bool) (models.PayoutAccount, error)
	GetPrintifyConnection(ctx context.Context, userID uuid.UUID) (models.PrintifyConnection, error)
	UpsertPrintifyConnection(ctx context.Context, userID uuid.UUID, apiKey, shopID string) (models.PrintifyConnection, error)
	ImportProduct(ctx context.Context, userID uuid.UUID, arg ImportProductParams) (models.Product, bool, error)
}

// UpsertProductParams carries the validated product patch. The owner is never
// part of the patch; it is always the authenticated caller.
type UpsertProductParams struct {
	ID          uuid.UUID // uuid.Nil means create
	Name        string
	Description string
	CategoryIDs []uuid.UUID
	TagIDs      []uuid.UUID
}

type UpsertVariantParams struct {
	ID         uuid.UUID
	Name       string
	SKU        string
	PriceCents int64
	Position   int32
}

type UpsertStoreParams struct {
	ID       uuid.UUID
	Name     string
	Slug     string
	Currency string
}

type SetStorePriceParams struct {
	VariantID  *uuid.UUID
	PriceCents int64
	Currency   string
	Visibility models.Visibility
}

type UpsertNameParams struct {
	ID   uuid.UUID
	Name string
}

type CreateOrderParams struct {
	StoreID       *uuid.UUID
	TotalCents    int64
	Currency      string
	CustomerEmail string
}

type ImportProductParams struct {
	PrintifyProductID string
	Name              string
	Description       string
	Variants          []UpsertVariantParams
}

// pgRepo issues SQL against a pgx pool.
type pgRepo struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) Repo { return &pgRepo{pool: pool} }

// mapErr converts pgx-level failures to domain errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return models.ErrConflict
		case "23503":
			// A failed reference behaves like the referenced row being absent.
			return models.ErrNotFound
		}
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ---------------- pgtype helpers ----------------

func fromUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func toUUID(u pgtype.UUID) uuid.UUID {
	return uuid.UUID(u.Bytes)
}

func fromUUIDPtr(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func toUUIDPtr(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}

func toText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func fromText(t pgtype.Text) string {
	return t.String
}

func toTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
