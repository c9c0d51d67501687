package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"api_backoffice/internal/apperr"
)

// fakeProducts is an in-memory ProductStore.
type fakeProducts struct {
	stock       map[string]int
	price       map[string]decimal.Decimal
	failOn      string
	failErr     error
	decremented []string
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{stock: map[string]int{}, price: map[string]decimal.Decimal{}}
}

func (f *fakeProducts) add(id string, price string, stock int) {
	f.price[id] = decimal.RequireFromString(price)
	f.stock[id] = stock
}

func (f *fakeProducts) DecrementStock(_ context.Context, productID string, qty int) error {
	if productID == f.failOn {
		return f.failErr
	}
	if _, ok := f.stock[productID]; !ok {
		return apperr.NotFound("product")
	}
	f.stock[productID] -= qty
	f.decremented = append(f.decremented, productID)
	return nil
}

func (f *fakeProducts) StockValue(_ context.Context) (decimal.Decimal, error) {
	if f.failOn == "*" {
		return decimal.Zero, f.failErr
	}
	total := decimal.Zero
	for id, qty := range f.stock {
		total = total.Add(f.price[id].Mul(decimal.NewFromInt(int64(qty))))
	}
	return total, nil
}

// testClock is a settable clock.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

var baseTime = time.Date(2026, time.October, 15, 14, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *LocalStorage, *fakeProducts, *testClock) {
	t.Helper()
	storage := NewLocalStorage()
	products := newFakeProducts()
	clock := &testClock{now: baseTime}
	svc := NewService(storage, products, zaptest.NewLogger(t), WithClock(clock.Now), WithLocation(time.UTC))
	return svc, storage, products, clock
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(productID, name string, qty int, unitPrice, total string) SaleLineItem {
	return SaleLineItem{
		ProductID:   productID,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   dec(unitPrice),
		Total:       dec(total),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// failingStorage wraps LocalStorage and fails the named operation.
type failingStorage struct {
	*LocalStorage
	failOp string
}

var errStoreDown = errors.New("store down")

func (f *failingStorage) InsertSale(ctx context.Context, sale *Sale) error {
	if f.failOp == "InsertSale" {
		return errStoreDown
	}
	return f.LocalStorage.InsertSale(ctx, sale)
}

func (f *failingStorage) FindSales(ctx context.Context, filter SaleFilter) ([]*Sale, error) {
	if f.failOp == "FindSales" {
		return nil, errStoreDown
	}
	return f.LocalStorage.FindSales(ctx, filter)
}

func (f *failingStorage) InsertCashFlowEntry(ctx context.Context, entry *CashFlowEntry) error {
	if f.failOp == "InsertCashFlowEntry" {
		return errStoreDown
	}
	return f.LocalStorage.InsertCashFlowEntry(ctx, entry)
}
