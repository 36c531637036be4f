package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
)

// memoryCatalog is an in-memory stand-in for the catalog tables. Its
// Transactor snapshots all rows and restores them when fn fails, which is
// enough to observe rollback behaviour.
type memoryCatalog struct {
	nextID     int64
	products   map[int64]domain.Product
	categories map[int64]domain.Category
	links      map[[2]int64]bool
	stocks     map[int64]domain.Stock

	// failAttach makes AttachCategory fail, to exercise rollback.
	failAttach error
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		products:   map[int64]domain.Product{},
		categories: map[int64]domain.Category{},
		links:      map[[2]int64]bool{},
		stocks:     map[int64]domain.Stock{},
	}
}

func (m *memoryCatalog) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryCatalog) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	products := cloneMap(m.products)
	categories := cloneMap(m.categories)
	links := cloneMap(m.links)
	stocks := cloneMap(m.stocks)

	if err := fn(ctx, nil); err != nil {
		m.products, m.categories, m.links, m.stocks = products, categories, links, stocks
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memoryCatalog) productStore() *fakeProductStore   { return &fakeProductStore{m} }
func (m *memoryCatalog) categoryStore() *fakeCategoryStore { return &fakeCategoryStore{m} }
func (m *memoryCatalog) stockStore() *fakeStockStore       { return &fakeStockStore{m} }

// view assembles the read-side projection of a stored product.
func (m *memoryCatalog) view(p domain.Product) *domain.Product {
	p.Categories = []domain.Category{}
	for key := range m.links {
		if key[0] == p.ID {
			p.Categories = append(p.Categories, m.categories[key[1]])
		}
	}
	sort.Slice(p.Categories, func(i, j int) bool { return p.Categories[i].ID < p.Categories[j].ID })
	p.StockCount = 0
	for _, s := range m.stocks {
		if s.ProductID != nil && *s.ProductID == p.ID {
			p.StockCount = s.Quantity
		}
	}
	return &p
}

type fakeProductStore struct{ m *memoryCatalog }

func (f *fakeProductStore) List(
	_ context.Context,
	ownerID uuid.UUID,
	filter store.ProductFilter,
) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.m.products {
		if p.CreatedBy != ownerID {
			continue
		}
		if len(filter.CategoryIDs) > 0 {
			matched := false
			for _, cid := range filter.CategoryIDs {
				if f.m.links[[2]int64{p.ID, cid}] {
					matched = true
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, f.m.view(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeProductStore) Get(_ context.Context, ownerID uuid.UUID, id int64) (*domain.Product, error) {
	p, ok := f.m.products[id]
	if !ok || p.CreatedBy != ownerID {
		return nil, store.ErrProductNotFound
	}
	return f.m.view(p), nil
}

func (f *fakeProductStore) Create(_ context.Context, product *domain.Product) error {
	product.ID = f.m.id()
	product.CreatedAt = time.Now().UTC()
	f.m.products[product.ID] = *product
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, product *domain.Product) error {
	existing, ok := f.m.products[product.ID]
	if !ok || existing.CreatedBy != product.CreatedBy {
		return store.ErrProductNotFound
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	f.m.products[product.ID] = existing
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, ownerID uuid.UUID, id int64) error {
	p, ok := f.m.products[id]
	if !ok || p.CreatedBy != ownerID {
		return store.ErrProductNotFound
	}
	delete(f.m.products, id)
	for key := range f.m.links {
		if key[0] == id {
			delete(f.m.links, key)
		}
	}
	for sid, s := range f.m.stocks {
		if s.ProductID != nil && *s.ProductID == id {
			delete(f.m.stocks, sid)
		}
	}
	return nil
}

func (f *fakeProductStore) AttachCategory(_ context.Context, ownerID uuid.UUID, productID, categoryID int64) error {
	if f.m.failAttach != nil {
		return f.m.failAttach
	}
	p, okP := f.m.products[productID]
	c, okC := f.m.categories[categoryID]
	if okP && okC && p.CreatedBy == ownerID && c.CreatedBy == ownerID {
		f.m.links[[2]int64{productID, categoryID}] = true
	}
	return nil
}

func (f *fakeProductStore) ClearCategories(_ context.Context, ownerID uuid.UUID, productID int64) error {
	p, ok := f.m.products[productID]
	if !ok || p.CreatedBy != ownerID {
		return nil
	}
	for key := range f.m.links {
		if key[0] == productID {
			delete(f.m.links, key)
		}
	}
	return nil
}

func (f *fakeProductStore) WithTx(_ *sql.Tx) store.ProductStore { return f }

type fakeCategoryStore struct{ m *memoryCatalog }

func (f *fakeCategoryStore) List(_ context.Context, ownerID uuid.UUID, assignedOnly bool) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range f.m.categories {
		if c.CreatedBy != ownerID {
			continue
		}
		if assignedOnly && !f.assigned(c.ID) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name > out[j].Name
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeCategoryStore) assigned(id int64) bool {
	for key := range f.m.links {
		if key[1] == id {
			return true
		}
	}
	return false
}

func (f *fakeCategoryStore) Get(_ context.Context, ownerID uuid.UUID, id int64) (*domain.Category, error) {
	c, ok := f.m.categories[id]
	if !ok || c.CreatedBy != ownerID {
		return nil, store.ErrCategoryNotFound
	}
	return &c, nil
}

func (f *fakeCategoryStore) GetOrCreate(_ context.Context, ownerID uuid.UUID, name string) (*domain.Category, error) {
	for _, c := range f.m.categories {
		if c.CreatedBy == ownerID && c.Name == name {
			return &c, nil
		}
	}
	c := domain.Category{ID: f.m.id(), Name: name, CreatedBy: ownerID, CreatedAt: time.Now().UTC()}
	f.m.categories[c.ID] = c
	return &c, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, category *domain.Category) error {
	existing, ok := f.m.categories[category.ID]
	if !ok || existing.CreatedBy != category.CreatedBy {
		return store.ErrCategoryNotFound
	}
	for _, c := range f.m.categories {
		if c.ID != category.ID && c.CreatedBy == category.CreatedBy && c.Name == category.Name {
			return store.ErrCategoryExists
		}
	}
	existing.Name = category.Name
	f.m.categories[category.ID] = existing
	*category = existing
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, ownerID uuid.UUID, id int64) error {
	c, ok := f.m.categories[id]
	if !ok || c.CreatedBy != ownerID {
		return store.ErrCategoryNotFound
	}
	delete(f.m.categories, id)
	for key := range f.m.links {
		if key[1] == id {
			delete(f.m.links, key)
		}
	}
	return nil
}

func (f *fakeCategoryStore) WithTx(_ *sql.Tx) store.CategoryStore { return f }

type fakeStockStore struct{ m *memoryCatalog }

func (f *fakeStockStore) List(_ context.Context, ownerID uuid.UUID) ([]*domain.Stock, error) {
	var out []*domain.Stock
	for _, s := range f.m.stocks {
		if s.CreatedBy == ownerID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeStockStore) Get(_ context.Context, ownerID uuid.UUID, id int64) (*domain.Stock, error) {
	s, ok := f.m.stocks[id]
	if !ok || s.CreatedBy != ownerID {
		return nil, store.ErrStockNotFound
	}
	return &s, nil
}

func (f *fakeStockStore) Create(_ context.Context, stock *domain.Stock) error {
	for _, s := range f.m.stocks {
		if s.ProductID != nil && stock.ProductID != nil && *s.ProductID == *stock.ProductID {
			return store.ErrStockExists
		}
	}
	stock.ID = f.m.id()
	f.m.stocks[stock.ID] = *stock
	return nil
}

func (f *fakeStockStore) UpdateQuantity(
	_ context.Context,
	ownerID uuid.UUID,
	id int64,
	quantity int,
) (*domain.Stock, error) {
	s, ok := f.m.stocks[id]
	if !ok || s.CreatedBy != ownerID {
		return nil, store.ErrStockNotFound
	}
	s.Quantity = quantity
	f.m.stocks[id] = s
	return &s, nil
}

func (f *fakeStockStore) Delete(_ context.Context, ownerID uuid.UUID, id int64) error {
	s, ok := f.m.stocks[id]
	if !ok || s.CreatedBy != ownerID {
		return store.ErrStockNotFound
	}
	delete(f.m.stocks, id)
	return nil
}

func (f *fakeStockStore) WithTx(_ *sql.Tx) store.StockStore { return f }

var (
	_ store.ProductStore  = (*fakeProductStore)(nil)
	_ store.CategoryStore = (*fakeCategoryStore)(nil)
	_ store.StockStore    = (*fakeStockStore)(nil)
	_ store.Transactor    = (*memoryCatalog)(nil)
)
