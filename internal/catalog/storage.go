package catalog

import (
	"context"
	"errors"
	"slices"
	"sync"

	"api_backoffice/internal/apperr"
)

// ErrEmptyID is returned when trying to store a product with an empty ID.
var ErrEmptyID = errors.New("empty product ID")

// Storage is the persistence contract of the catalog.
type Storage interface {
	Insert(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	// Update applies patch and returns the updated product.
	Update(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	Delete(ctx context.Context, id string) error
	// AdjustStock adds delta to stock_quantity. Negative results are allowed.
	AdjustStock(ctx context.Context, id string, delta int) error
}

// LocalStorage keeps products in memory.
type LocalStorage struct {
	mu sync.RWMutex
	m  map[string]Product
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{m: map[string]Product{}}
}

func (l *LocalStorage) Insert(_ context.Context, product *Product) error {
	if product.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[product.ID] = *product
	return nil
}

func (l *LocalStorage) Get(_ context.Context, id string) (*Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.m[id]
	if !ok {
		return nil, apperr.NotFound("product")
	}
	return &p, nil
}

// List returns every product, oldest first.
func (l *LocalStorage) List(_ context.Context) ([]*Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Product, 0, len(l.m))
	for _, p := range l.m {
		cp := p
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(a, b *Product) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (l *LocalStorage) Update(_ context.Context, id string, patch ProductPatch) (*Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.m[id]
	if !ok {
		return nil, apperr.NotFound("product")
	}
	patch.Apply(&p)
	l.m[id] = p
	return &p, nil
}

func (l *LocalStorage) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[id]; !ok {
		return apperr.NotFound("product")
	}
	delete(l.m, id)
	return nil
}

func (l *LocalStorage) AdjustStock(_ context.Context, id string, delta int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.m[id]
	if !ok {
		return apperr.NotFound("product")
	}
	p.StockQuantity += delta
	l.m[id] = p
	return nil
}
