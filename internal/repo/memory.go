// internal/repo/memory.go
package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// memRepo is the in-memory Repo used when the database is unavailable and by
// the handler tests. It enforces the same ownership and uniqueness semantics
// as the Postgres implementation; the mutex stands in for the DB's constraint
// checks, so idempotent creation stays single-row under concurrent callers.
type memRepo struct {
	mu sync.Mutex

	users         map[uuid.UUID]models.User
	sessions      map[string]models.Session
	products      map[uuid.UUID]models.Product
	variants      map[uuid.UUID]models.Variant
	stores        map[uuid.UUID]models.Store
	storeProducts map[uuid.UUID]models.StoreProduct
	storePrices   map[uuid.UUID]models.StorePrice
	categories    map[uuid.UUID]models.Category
	tags          map[uuid.UUID]models.Tag
	orders        map[uuid.UUID]models.Order
	payouts       map[uuid.UUID]models.PayoutAccount      // keyed by user ID
	printify      map[uuid.UUID]models.PrintifyConnection // keyed by user ID
	productCats   map[uuid.UUID][]uuid.UUID
	productTags   map[uuid.UUID][]uuid.UUID
}

// NewMemory returns a Repo backed by process memory.
func NewMemory() Repo {
	return &memRepo{
		users:         map[uuid.UUID]models.User{},
		sessions:      map[string]models.Session{},
		products:      map[uuid.UUID]models.Product{},
		variants:      map[uuid.UUID]models.Variant{},
		stores:        map[uuid.UUID]models.Store{},
		storeProducts: map[uuid.UUID]models.StoreProduct{},
		storePrices:   map[uuid.UUID]models.StorePrice{},
		categories:    map[uuid.UUID]models.Category{},
		tags:          map[uuid.UUID]models.Tag{},
		orders:        map[uuid.UUID]models.Order{},
		payouts:       map[uuid.UUID]models.PayoutAccount{},
		printify:      map[uuid.UUID]models.PrintifyConnection{},
		productCats:   map[uuid.UUID][]uuid.UUID{},
		productTags:   map[uuid.UUID][]uuid.UUID{},
	}
}

// ---------------- Users & Sessions ----------------

func (m *memRepo) CreateUser(_ context.Context, email, name, passwordHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, models.ErrConflict
		}
	}
	u := models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memRepo) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (m *memRepo) GetUserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) CreateSession(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	m.sessions[tokenHash] = s
	return s, nil
}

func (m *memRepo) GetSessionByTokenHash(_ context.Context, tokenHash string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[tokenHash]
	if !ok || s.ExpiresAt.Before(time.Now()) {
		return models.Session{}, models.ErrNotFound
	}
	return s, nil
}

func (m *memRepo) DeleteSessionByTokenHash(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenHash)
	return nil
}

// ---------------- Products ----------------

func (m *memRepo) GetProductForUser(_ context.Context, id, userID uuid.UUID) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.productForUserLocked(id, userID)
}

func (m *memRepo) productForUserLocked(id, userID uuid.UUID) (models.Product, error) {
	pr, ok := m.products[id]
	if !ok || pr.UserID != userID {
		return models.Product{}, models.ErrNotFound
	}
	return pr, nil
}

func (m *memRepo) ListProducts(_ context.Context, userID uuid.UUID) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, pr := range m.products {
		if pr.UserID == userID {
			out = append(out, pr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) UpsertProduct(_ context.Context, userID uuid.UUID, arg UpsertProductParams) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate links first so a failure leaves nothing behind.
	for _, id := range arg.CategoryIDs {
		if c, ok := m.categories[id]; !ok || c.UserID != userID {
			return models.Product{}, models.ErrNotFound
		}
	}
	for _, id := range arg.TagIDs {
		if t, ok := m.tags[id]; !ok || t.UserID != userID {
			return models.Product{}, models.ErrNotFound
		}
	}

	now := time.Now()
	var pr models.Product
	if arg.ID != uuid.Nil {
		existing, err := m.productForUserLocked(arg.ID, userID)
		if err != nil {
			return models.Product{}, err
		}
		existing.Name = arg.Name
		existing.Description = arg.Description
		existing.UpdatedAt = now
		pr = existing
	} else {
		pr = models.Product{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        arg.Name,
			Description: arg.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	m.products[pr.ID] = pr
	m.productCats[pr.ID] = append([]uuid.UUID{}, arg.CategoryIDs...)
	m.productTags[pr.ID] = append([]uuid.UUID{}, arg.TagIDs...)
	return pr, nil
}

func (m *memRepo) DeleteProduct(_ context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.productForUserLocked(id, userID); err != nil {
		return err
	}
	delete(m.products, id)
	delete(m.productCats, id)
	delete(m.productTags, id)
	for vid, v := range m.variants {
		if v.ProductID == id {
			delete(m.variants, vid)
		}
	}
	for spid, sp := range m.storeProducts {
		if sp.ProductID == id {
			delete(m.storeProducts, spid)
		}
	}
	return nil
}

func (m *memRepo) ListVariants(_ context.Context, productID, userID uuid.UUID) ([]models.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.productForUserLocked(productID, userID); err != nil {
		return nil, err
	}
	out := []models.Variant{}
	for _, v := range m.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memRepo) UpsertVariant(_ context.Context, userID, productID uuid.UUID, arg UpsertVariantParams) (models.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.productForUserLocked(productID, userID); err != nil {
		return models.Variant{}, err
	}
	now := time.Now()
	if arg.ID != uuid.Nil {
		v, ok := m.variants[arg.ID]
		if !ok || v.ProductID != productID {
			return models.Variant{}, models.ErrNotFound
		}
		v.Name = arg.Name
		v.SKU = arg.SKU
		v.PriceCents = arg.PriceCents
		v.Position = arg.Position
		v.UpdatedAt = now
		m.variants[v.ID] = v
		return v, nil
	}
	v := models.Variant{
		ID:         uuid.New(),
		ProductID:  productID,
		Name:       arg.Name,
		SKU:        arg.SKU,
		PriceCents: arg.PriceCents,
		Position:   arg.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.variants[v.ID] = v
	return v, nil
}

func (m *memRepo) DeleteVariant(_ context.Context, userID, productID, variantID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.productForUserLocked(productID, userID); err != nil {
		return err
	}
	v, ok := m.variants[variantID]
	if !ok || v.ProductID != productID {
		return models.ErrNotFound
	}
	delete(m.variants, variantID)
	return nil
}

func (m *memRepo) ListProductCategoryIDs(_ context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.productForUserLocked(productID, userID); err != nil {
		return nil, err
	}
	return append([]uuid.UUID{}, m.productCats[productID]...), nil
}

func (m *memRepo) ListProductTagIDs(_ context.Context, productID, userID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.productForUserLocked(productID, userID); err != nil {
		return nil, err
	}
	return append([]uuid.UUID{}, m.productTags[productID]...), nil
}

// ---------------- Stores ----------------

func (m *memRepo) UpsertStore(_ context.Context, userID uuid.UUID, arg UpsertStoreParams) (models.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.stores {
		if s.Slug == arg.Slug && s.ID != arg.ID {
			return models.Store{}, models.ErrConflict
		}
	}
	now := time.Now()
	if arg.ID != uuid.Nil {
		s, ok := m.stores[arg.ID]
		if !ok || s.UserID != userID {
			return models.Store{}, models.ErrNotFound
		}
		s.Name = arg.Name
		s.Slug = arg.Slug
		s.Currency = arg.Currency
		s.UpdatedAt = now
		m.stores[s.ID] = s
		return s, nil
	}
	s := models.Store{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      arg.Name,
		Slug:      arg.Slug,
		Currency:  arg.Currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.stores[s.ID] = s
	return s, nil
}

func (m *memRepo) ListStores(_ context.Context, userID uuid.UUID) ([]models.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Store{}
	for _, s := range m.stores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) DeleteStore(_ context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[id]
	if !ok || s.UserID != userID {
		return models.ErrNotFound
	}
	delete(m.stores, id)
	for spid, sp := range m.storeProducts {
		if sp.StoreID == id {
			delete(m.storeProducts, spid)
		}
	}
	return nil
}

func (m *memRepo) AttachProductToStore(_ context.Context, userID, storeID, productID uuid.UUID) (models.StoreProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[storeID]
	if !ok || s.UserID != userID {
		return models.StoreProduct{}, models.ErrNotFound
	}
	if _, err := m.productForUserLocked(productID, userID); err != nil {
		return models.StoreProduct{}, err
	}
	for _, sp := range m.storeProducts {
		if sp.StoreID == storeID && sp.ProductID == productID {
			return sp, nil
		}
	}
	sp := models.StoreProduct{
		ID:        uuid.New(),
		StoreID:   storeID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	m.storeProducts[sp.ID] = sp
	return sp, nil
}

func (m *memRepo) GetStoreProductForUser(_ context.Context, storeProductID, userID uuid.UUID) (models.StoreProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeProductForUserLocked(storeProductID, userID)
}

func (m *memRepo) storeProductForUserLocked(storeProductID, userID uuid.UUID) (models.StoreProduct, error) {
	sp, ok := m.storeProducts[storeProductID]
	if !ok {
		return models.StoreProduct{}, models.ErrNotFound
	}
	s, ok := m.stores[sp.StoreID]
	if !ok || s.UserID != userID {
		return models.StoreProduct{}, models.ErrNotFound
	}
	return sp, nil
}

func (m *memRepo) ListStoreProducts(_ context.Context, storeID, userID uuid.UUID) ([]models.StoreProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[storeID]
	if !ok || s.UserID != userID {
		return nil, models.ErrNotFound
	}
	out := []models.StoreProduct{}
	for _, sp := range m.storeProducts {
		if sp.StoreID == storeID {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) EnsureStorePrice(_ context.Context, storeProductID uuid.UUID) (models.StorePrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sp := range m.storePrices {
		if sp.StoreProductID == storeProductID && sp.VariantID == nil {
			return sp, nil
		}
	}
	assoc, ok := m.storeProducts[storeProductID]
	if !ok {
		return models.StorePrice{}, models.ErrNotFound
	}

	// Default to the first variant's price by position, zero without variants.
	variants := []models.Variant{}
	for _, v := range m.variants {
		if v.ProductID == assoc.ProductID {
			variants = append(variants, v)
		}
	}
	sort.Slice(variants, func(i, j int) bool {
		if variants[i].Position != variants[j].Position {
			return variants[i].Position < variants[j].Position
		}
		return variants[i].CreatedAt.Before(variants[j].CreatedAt)
	})
	var cents int64
	if len(variants) > 0 {
		cents = variants[0].PriceCents
	}

	now := time.Now()
	sp := models.StorePrice{
		ID:             uuid.New(),
		StoreProductID: storeProductID,
		PriceCents:     cents,
		Currency:       "USD",
		Visibility:     models.VisibilityVisible,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.storePrices[sp.ID] = sp
	return sp, nil
}

func (m *memRepo) SetStorePrice(ctx context.Context, userID, storeProductID uuid.UUID, arg SetStorePriceParams) (models.StorePrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	assoc, err := m.storeProductForUserLocked(storeProductID, userID)
	if err != nil {
		return models.StorePrice{}, err
	}
	// Variant prices may only reference the association's own product.
	if arg.VariantID != nil {
		v, ok := m.variants[*arg.VariantID]
		if !ok || v.ProductID != assoc.ProductID {
			return models.StorePrice{}, models.ErrNotFound
		}
	}
	now := time.Now()
	for id, sp := range m.storePrices {
		if sp.StoreProductID != storeProductID {
			continue
		}
		if !sameVariant(sp.VariantID, arg.VariantID) {
			continue
		}
		sp.PriceCents = arg.PriceCents
		sp.Currency = arg.Currency
		sp.Visibility = arg.Visibility
		sp.UpdatedAt = now
		m.storePrices[id] = sp
		return sp, nil
	}
	sp := models.StorePrice{
		ID:             uuid.New(),
		StoreProductID: storeProductID,
		VariantID:      arg.VariantID,
		PriceCents:     arg.PriceCents,
		Currency:       arg.Currency,
		Visibility:     arg.Visibility,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.storePrices[sp.ID] = sp
	return sp, nil
}

func sameVariant(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ---------------- Categories & Tags ----------------

func (m *memRepo) UpsertCategory(_ context.Context, userID uuid.UUID, arg UpsertNameParams) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.UserID == userID && c.Name == arg.Name && c.ID != arg.ID {
			return models.Category{}, models.ErrConflict
		}
	}
	now := time.Now()
	if arg.ID != uuid.Nil {
		c, ok := m.categories[arg.ID]
		if !ok || c.UserID != userID {
			return models.Category{}, models.ErrNotFound
		}
		c.Name = arg.Name
		c.UpdatedAt = now
		m.categories[c.ID] = c
		return c, nil
	}
	c := models.Category{ID: uuid.New(), UserID: userID, Name: arg.Name, CreatedAt: now, UpdatedAt: now}
	m.categories[c.ID] = c
	return c, nil
}

func (m *memRepo) ListCategories(_ context.Context, userID uuid.UUID) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Category{}
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) DeleteCategory(_ context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok || c.UserID != userID {
		return models.ErrNotFound
	}
	delete(m.categories, id)
	for pid, ids := range m.productCats {
		m.productCats[pid] = removeID(ids, id)
	}
	return nil
}

func (m *memRepo) UpsertTag(_ context.Context, userID uuid.UUID, arg UpsertNameParams) (models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tags {
		if t.UserID == userID && t.Name == arg.Name && t.ID != arg.ID {
			return models.Tag{}, models.ErrConflict
		}
	}
	now := time.Now()
	if arg.ID != uuid.Nil {
		t, ok := m.tags[arg.ID]
		if !ok || t.UserID != userID {
			return models.Tag{}, models.ErrNotFound
		}
		t.Name = arg.Name
		t.UpdatedAt = now
		m.tags[t.ID] = t
		return t, nil
	}
	t := models.Tag{ID: uuid.New(), UserID: userID, Name: arg.Name, CreatedAt: now, UpdatedAt: now}
	m.tags[t.ID] = t
	return t, nil
}

func (m *memRepo) ListTags(_ context.Context, userID uuid.UUID) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Tag{}
	for _, t := range m.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) DeleteTag(_ context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[id]
	if !ok || t.UserID != userID {
		return models.ErrNotFound
	}
	delete(m.tags, id)
	for pid, ids := range m.productTags {
		m.productTags[pid] = removeID(ids, id)
	}
	return nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// ---------------- Orders ----------------

func (m *memRepo) CreateOrder(_ context.Context, userID uuid.UUID, arg CreateOrderParams) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	o := models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		StoreID:       arg.StoreID,
		Status:        models.OrderPending,
		TotalCents:    arg.TotalCents,
		Currency:      arg.Currency,
		CustomerEmail: arg.CustomerEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.orders[o.ID] = o
	return o, nil
}

func (m *memRepo) ListOrders(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) GetOrderForUser(_ context.Context, id, userID uuid.UUID) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return models.Order{}, models.ErrNotFound
	}
	return o, nil
}

func (m *memRepo) SetOrderStatus(_ context.Context, userID, id uuid.UUID, status models.OrderStatus) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return models.Order{}, models.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return o, nil
}

// ---------------- Integrations ----------------

func (m *memRepo) GetPayoutAccount(_ context.Context, userID uuid.UUID) (models.PayoutAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.payouts[userID]
	if !ok {
		return models.PayoutAccount{}, models.ErrNotFound
	}
	return a, nil
}

func (m *memRepo) UpsertPayoutAccount(_ context.Context, userID uuid.UUID, stripeAccountID string, onboarded bool) (models.PayoutAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	a, ok := m.payouts[userID]
	if !ok {
		a = models.PayoutAccount{ID: uuid.New(), UserID: userID, CreatedAt: now}
	}
	a.StripeAccountID = stripeAccountID
	a.Onboarded = onboarded
	a.UpdatedAt = now
	m.payouts[userID] = a
	return a, nil
}

func (m *memRepo) GetPrintifyConnection(_ context.Context, userID uuid.UUID) (models.PrintifyConnection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.printify[userID]
	if !ok {
		return models.PrintifyConnection{}, models.ErrNotFound
	}
	return c, nil
}

func (m *memRepo) UpsertPrintifyConnection(_ context.Context, userID uuid.UUID, apiKey, shopID string) (models.PrintifyConnection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	c, ok := m.printify[userID]
	if !ok {
		c = models.PrintifyConnection{ID: uuid.New(), UserID: userID, CreatedAt: now}
	}
	c.APIKey = apiKey
	c.ShopID = shopID
	c.UpdatedAt = now
	m.printify[userID] = c
	return c, nil
}

func (m *memRepo) ImportProduct(_ context.Context, userID uuid.UUID, arg ImportProductParams) (models.Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pr := range m.products {
		if pr.UserID == userID && pr.PrintifyProductID == arg.PrintifyProductID {
			return pr, false, nil
		}
	}
	now := time.Now()
	pr := models.Product{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              arg.Name,
		Description:       arg.Description,
		PrintifyProductID: arg.PrintifyProductID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	m.products[pr.ID] = pr
	for _, v := range arg.Variants {
		mv := models.Variant{
			ID:         uuid.New(),
			ProductID:  pr.ID,
			Name:       v.Name,
			SKU:        v.SKU,
			PriceCents: v.PriceCents,
			Position:   v.Position,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		m.variants[mv.ID] = mv
	}
	return pr, true, nil
}
