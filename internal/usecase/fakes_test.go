package usecase

import (
	"cmp"
	"context"
	"maps"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/data/repository"
	"beauty-orders/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	utils.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// memStore keeps rows by value so a transaction can snapshot and restore it.
type memStore struct {
	users     map[uuid.UUID]entity.User
	products  map[uuid.UUID]entity.Product
	customers map[uuid.UUID]entity.Customer
	orders    map[uuid.UUID]entity.Order
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]entity.User{},
		products:  map[uuid.UUID]entity.Product{},
		customers: map[uuid.UUID]entity.Customer{},
		orders:    map[uuid.UUID]entity.Order{},
	}
}

func (s *memStore) clone() memStore {
	return memStore{
		users:     maps.Clone(s.users),
		products:  maps.Clone(s.products),
		customers: maps.Clone(s.customers),
		orders:    maps.Clone(s.orders),
	}
}

type fakeTx struct {
	store *memStore
	calls int
}

func (t *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	snapshot := t.store.clone()
	if err := fn(ctx); err != nil {
		*t.store = snapshot
		return err
	}
	return nil
}

type fixture struct {
	repo      *repository.Repository
	store     *memStore
	tx        *fakeTx
	analytics *fakeAnalyticsRepo
	config    *utils.Config
	log       *zap.Logger
}

func newFixture() *fixture {
	store := newMemStore()
	tx := &fakeTx{store: store}
	analytics := &fakeAnalyticsRepo{}

	return &fixture{
		repo: &repository.Repository{
			User:      &fakeUserRepo{s: store},
			Product:   &fakeProductRepo{s: store},
			Customer:  &fakeCustomerRepo{s: store},
			Order:     &fakeOrderRepo{s: store},
			Analytics: analytics,
			Tx:        tx,
		},
		store:     store,
		tx:        tx,
		analytics: analytics,
		config: &utils.Config{
			App:       utils.AppConfig{Name: "beauty-orders"},
			JWT:       utils.JWTConfig{Secret: "test-secret-at-least-32-characters", ExpiryMinutes: 60},
			Inventory: utils.InventoryConfig{LowStockThreshold: 10},
		},
		log: zap.NewNop(),
	}
}

func (f *fixture) addProduct(name, sku, price string, stock int, keywords string) entity.Product {
	p := entity.Product{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:          name,
		SKU:           sku,
		CurrentPrice:  decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	if keywords != "" {
		p.Keywords = &keywords
	}
	f.store.products[p.ID] = p
	return p
}

func (f *fixture) addCustomer(name, email string, t entity.CustomerType) entity.Customer {
	c := entity.Customer{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         name,
		Email:        email,
		CustomerType: t,
	}
	f.store.customers[c.ID] = c
	return c
}

type line struct {
	product entity.Product
	qty     int
}

func (f *fixture) addOrder(customerID uuid.UUID, status entity.OrderStatus, lines ...line) entity.Order {
	o := entity.Order{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		CustomerID:  customerID,
		OrderNumber: utils.GenerateOrderNumber(time.Now()),
		Status:      status,
	}
	for _, l := range lines {
		item := entity.NewOrderItem(o.ID, &l.product, l.qty)
		item.ID = uuid.New()
		o.Items = append(o.Items, item)
	}
	o.RecalculateTotal()
	f.store.orders[o.ID] = o
	return o
}

func (f *fixture) addUser(email, password string, role entity.UserRole, active bool) entity.User {
	hash, err := utils.HashPassword(password)
	if err != nil {
		panic(err)
	}
	u := entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
	f.store.users[u.ID] = u
	return u
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return nil
	}
	return rows[offset:min(offset+limit, len(rows))]
}

func contains(field *string, term string) bool {
	return field != nil && strings.Contains(strings.ToLower(*field), strings.ToLower(term))
}

// Users

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, &u)
	}
	slices.SortFunc(users, func(a, b *entity.User) int { return cmp.Compare(a.Email, b.Email) })
	return page(users, limit, offset), nil
}

func (r *fakeUserRepo) CountAll(context.Context) (int64, error) {
	return int64(len(r.s.users)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

// Products

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) sorted(keep func(entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.s.products {
		if keep(p) {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Product) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func (r *fakeProductRepo) matches(p entity.Product, term string) bool {
	return contains(&p.Name, term) || contains(&p.SKU, term) || contains(p.Keywords, term)
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return repository.ErrDuplicate
		}
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, limit, offset int, category *string) ([]*entity.Product, error) {
	rows := r.sorted(func(p entity.Product) bool {
		return category == nil || (p.Category != nil && *p.Category == *category)
	})
	return page(rows, limit, offset), nil
}

func (r *fakeProductRepo) CountAll(ctx context.Context, category *string) (int64, error) {
	rows, _ := r.FindAll(ctx, len(r.s.products)+1, 0, category)
	return int64(len(rows)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.s.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.products[id]; !ok {
		return repository.ErrNotFound
	}
	for _, o := range r.s.orders {
		for _, item := range o.Items {
			if item.ProductID == id {
				return repository.ErrReferenced
			}
		}
	}
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) Search(_ context.Context, term string, limit int) ([]*entity.Product, error) {
	rows := r.sorted(func(p entity.Product) bool { return r.matches(p, term) })
	return page(rows, limit, 0), nil
}

func (r *fakeProductRepo) FindLowStock(_ context.Context, threshold, limit int) ([]*entity.Product, error) {
	rows := r.sorted(func(p entity.Product) bool { return p.StockQuantity < threshold })
	return page(rows, limit, 0), nil
}

func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) FindByKeywordForUpdate(_ context.Context, keyword string) ([]*entity.Product, error) {
	return r.sorted(func(p entity.Product) bool { return r.matches(p, keyword) }), nil
}

func (r *fakeProductRepo) UpdatePrice(_ context.Context, id uuid.UUID, price decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.CurrentPrice = price
	r.s.products[id] = p
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.StockQuantity < quantity {
		return repository.ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	r.s.products[id] = p
	return nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.StockQuantity += quantity
	r.s.products[id] = p
	return nil
}

// Customers

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) sorted(keep func(entity.Customer) bool) []*entity.Customer {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if keep(c) {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Customer) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	for _, c := range r.s.customers {
		if strings.EqualFold(c.Email, customer.Email) {
			return repository.ErrDuplicate
		}
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindAll(_ context.Context, limit, offset int, customerType *entity.CustomerType) ([]*entity.Customer, error) {
	rows := r.sorted(func(c entity.Customer) bool {
		return customerType == nil || c.CustomerType == *customerType
	})
	return page(rows, limit, offset), nil
}

func (r *fakeCustomerRepo) CountAll(ctx context.Context, customerType *entity.CustomerType) (int64, error) {
	rows, _ := r.FindAll(ctx, len(r.s.customers)+1, 0, customerType)
	return int64(len(rows)), nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	if _, ok := r.s.customers[customer.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

func (r *fakeCustomerRepo) Search(_ context.Context, term string, limit int) ([]*entity.Customer, error) {
	rows := r.sorted(func(c entity.Customer) bool {
		return contains(&c.Name, term) || contains(&c.Email, term)
	})
	return page(rows, limit, 0), nil
}

func (r *fakeCustomerRepo) CountByType(context.Context) ([]entity.CustomerTypeSummary, error) {
	counts := map[entity.CustomerType]int64{}
	for _, c := range r.s.customers {
		counts[c.CustomerType]++
	}
	var out []entity.CustomerTypeSummary
	for _, t := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, entity.CustomerTypeSummary{CustomerType: t, Count: counts[t]})
	}
	return out, nil
}

// Orders

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) sorted(keep func(entity.Order) bool) []*entity.Order {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if keep(o) {
			out = append(out, &o)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	for _, o := range r.s.orders {
		if o.OrderNumber == order.OrderNumber {
			return repository.ErrDuplicate
		}
	}
	r.s.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeOrderRepo) FindAll(_ context.Context, limit, offset int, status *entity.OrderStatus) ([]*entity.Order, error) {
	rows := r.sorted(func(o entity.Order) bool { return status == nil || o.Status == *status })
	return page(rows, limit, offset), nil
}

func (r *fakeOrderRepo) CountAll(ctx context.Context, status *entity.OrderStatus) (int64, error) {
	rows, _ := r.FindAll(ctx, len(r.s.orders)+1, 0, status)
	return int64(len(rows)), nil
}

func (r *fakeOrderRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	return r.sorted(func(o entity.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *fakeOrderRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	rows, _ := r.FindByCustomerID(ctx, customerID)
	return int64(len(rows)), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	o, ok := r.s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	r.s.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

func (r *fakeOrderRepo) StatsByStatus(context.Context) ([]entity.StatusSummary, error) {
	byStatus := map[entity.OrderStatus]*entity.StatusSummary{}
	for _, o := range r.s.orders {
		row, ok := byStatus[o.Status]
		if !ok {
			row = &entity.StatusSummary{Status: o.Status, TotalRevenue: decimal.Zero}
			byStatus[o.Status] = row
		}
		row.Count++
		row.TotalRevenue = row.TotalRevenue.Add(o.TotalAmount)
	}
	var out []entity.StatusSummary
	for _, row := range byStatus {
		out = append(out, *row)
	}
	return out, nil
}

func (r *fakeOrderRepo) CustomerTotals(_ context.Context, customerID uuid.UUID) (*entity.CustomerOrderTotals, error) {
	totals := &entity.CustomerOrderTotals{TotalSpent: decimal.Zero}
	for _, o := range r.s.orders {
		if o.CustomerID != customerID || o.Status == entity.OrderStatusCancelled {
			continue
		}
		totals.TotalOrders++
		totals.TotalSpent = totals.TotalSpent.Add(o.TotalAmount)
	}
	return totals, nil
}

func (r *fakeOrderRepo) CustomerTopProducts(_ context.Context, customerID uuid.UUID, limit int) ([]entity.TopProduct, error) {
	byProduct := map[uuid.UUID]*entity.TopProduct{}
	for _, o := range r.s.orders {
		if o.CustomerID != customerID || o.Status == entity.OrderStatusCancelled {
			continue
		}
		for _, item := range o.Items {
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &entity.TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				byProduct[item.ProductID] = row
			}
			row.OrderCount++
			row.TotalQuantity += int64(item.Quantity)
		}
	}
	var out []entity.TopProduct
	for _, row := range byProduct {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b entity.TopProduct) int {
		return cmp.Or(cmp.Compare(b.TotalQuantity, a.TotalQuantity), cmp.Compare(a.Name, b.Name))
	})
	return page(out, limit, 0), nil
}

// Analytics returns canned rows and records what it was asked for.

type fakeAnalyticsRepo struct {
	counts   entity.DashboardCounts
	top      []entity.TopProduct
	revenue  []entity.DailyRevenue
	dayStart time.Time
	lowStock int
	topLimit int
	from     time.Time
}

func (r *fakeAnalyticsRepo) DashboardCounts(_ context.Context, dayStart time.Time, lowStockThreshold int) (*entity.DashboardCounts, error) {
	r.dayStart = dayStart
	r.lowStock = lowStockThreshold
	counts := r.counts
	return &counts, nil
}

func (r *fakeAnalyticsRepo) TopProducts(_ context.Context, limit int) ([]entity.TopProduct, error) {
	r.topLimit = limit
	return page(r.top, limit, 0), nil
}

func (r *fakeAnalyticsRepo) RevenueByDay(_ context.Context, from time.Time) ([]entity.DailyRevenue, error) {
	r.from = from
	return r.revenue, nil
}
