package sales

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"api_backoffice/internal/apperr"
)

// DefaultLimit caps every find when the filter does not set one.
const DefaultLimit = 1000

// Error para documentos sin ID
// ErrEmptyID is returned when trying to store a document with an empty ID.
var ErrEmptyID = errors.New("empty document ID")

// SaleStore persists sales.
type SaleStore interface {
	InsertSale(ctx context.Context, sale *Sale) error
	GetSale(ctx context.Context, id string) (*Sale, error)
	FindSales(ctx context.Context, filter SaleFilter) ([]*Sale, error)
	SetSaleStatus(ctx context.Context, id string, status SaleStatus) error
}

// InstallmentStore persists installment schedules.
type InstallmentStore interface {
	InsertInstallments(ctx context.Context, installments []*Installment) error
	FindInstallments(ctx context.Context, filter InstallmentFilter) ([]*Installment, error)
	// MarkInstallmentPaid sets paid and paid_date and returns the updated installment.
	MarkInstallmentPaid(ctx context.Context, id string, paidDate time.Time) (*Installment, error)
}

// CashFlowStore persists ledger postings.
type CashFlowStore interface {
	InsertCashFlowEntry(ctx context.Context, entry *CashFlowEntry) error
	FindCashFlow(ctx context.Context, filter CashFlowFilter) ([]*CashFlowEntry, error)
	DeleteCashFlowEntry(ctx context.Context, id string) error
}

// Storage is the main interface for our ledger storage layer.
type Storage interface {
	SaleStore
	InstallmentStore
	CashFlowStore
}

// LocalStorage provides an in-memory implementation of Storage. Documents are
// copied on the way in and out so callers never share state with the store.
type LocalStorage struct {
	mu           sync.RWMutex
	sales        map[string]Sale
	installments map[string]Installment
	cashFlow     map[string]CashFlowEntry
}

// NewLocalStorage instantiates a new LocalStorage with empty collections.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		sales:        map[string]Sale{},
		installments: map[string]Installment{},
		cashFlow:     map[string]CashFlowEntry{},
	}
}

// InsertSale stores a sale. Returns ErrEmptyID if the sale has an empty ID.
func (l *LocalStorage) InsertSale(_ context.Context, sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sales[sale.ID] = copySale(*sale)
	return nil
}

// GetSale retrieves a sale by ID.
func (l *LocalStorage) GetSale(_ context.Context, id string) (*Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sales[id]
	if !ok {
		return nil, apperr.NotFound("sale")
	}
	out := copySale(s)
	return &out, nil
}

// FindSales returns matching sales, newest first.
func (l *LocalStorage) FindSales(_ context.Context, filter SaleFilter) ([]*Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Sale, 0)
	for _, s := range l.sales {
		if !inWindow(s.Date, filter.From, filter.To) {
			continue
		}
		if filter.Status != 0 && s.Status != filter.Status {
			continue
		}
		cp := copySale(s)
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(a, b *Sale) int { return b.Date.Compare(a.Date) })
	return limit(out, filter.Limit), nil
}

func (l *LocalStorage) SetSaleStatus(_ context.Context, id string, status SaleStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sales[id]
	if !ok {
		return apperr.NotFound("sale")
	}
	s.Status = status
	l.sales[id] = s
	return nil
}

func (l *LocalStorage) InsertInstallments(_ context.Context, installments []*Installment) error {
	for _, inst := range installments {
		if inst.ID == "" {
			return ErrEmptyID
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, inst := range installments {
		l.installments[inst.ID] = copyInstallment(*inst)
	}
	return nil
}

// FindInstallments returns matching installments ordered by due date, then number.
func (l *LocalStorage) FindInstallments(_ context.Context, filter InstallmentFilter) ([]*Installment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Installment, 0)
	for _, inst := range l.installments {
		if filter.SaleID != "" && inst.SaleID != filter.SaleID {
			continue
		}
		if filter.Paid != nil && inst.Paid != *filter.Paid {
			continue
		}
		if !inWindow(inst.DueDate, filter.DueFrom, filter.DueTo) {
			continue
		}
		cp := copyInstallment(inst)
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(a, b *Installment) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return a.Number - b.Number
	})
	return limit(out, filter.Limit), nil
}

func (l *LocalStorage) MarkInstallmentPaid(_ context.Context, id string, paidDate time.Time) (*Installment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	inst, ok := l.installments[id]
	if !ok {
		return nil, apperr.NotFound("installment")
	}
	inst.Paid = true
	inst.PaidDate = &paidDate
	l.installments[id] = inst
	out := copyInstallment(inst)
	return &out, nil
}

func (l *LocalStorage) InsertCashFlowEntry(_ context.Context, entry *CashFlowEntry) error {
	if entry.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cashFlow[entry.ID] = *entry
	return nil
}

// FindCashFlow returns matching entries, newest first.
func (l *LocalStorage) FindCashFlow(_ context.Context, filter CashFlowFilter) ([]*CashFlowEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*CashFlowEntry, 0)
	for _, e := range l.cashFlow {
		if !inWindow(e.Date, filter.From, filter.To) {
			continue
		}
		if filter.Type != 0 && e.Type != filter.Type {
			continue
		}
		cp := e
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(a, b *CashFlowEntry) int { return b.Date.Compare(a.Date) })
	return limit(out, filter.Limit), nil
}

func (l *LocalStorage) DeleteCashFlowEntry(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.cashFlow[id]; !ok {
		return apperr.NotFound("cash flow entry")
	}
	delete(l.cashFlow, id)
	return nil
}

func inWindow(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

func limit[T any](items []T, n int) []T {
	if n <= 0 {
		n = DefaultLimit
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func copySale(s Sale) Sale {
	s.Items = slices.Clone(s.Items)
	return s
}

func copyInstallment(i Installment) Installment {
	if i.PaidDate != nil {
		d := *i.PaidDate
		i.PaidDate = &d
	}
	return i
}
