package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_backoffice/internal/apperr"
)

// ProductStore is the slice of the product catalog the ledger depends on.
type ProductStore interface {
	// DecrementStock lowers stock_quantity by qty. Unknown ids fail with apperr.ErrNotFound.
	DecrementStock(ctx context.Context, productID string, qty int) error
	// StockValue returns Σ stock_quantity × price over every product.
	StockValue(ctx context.Context) (decimal.Decimal, error)
}

// Service records sales, schedules and settles installments, posts cash flow
// and builds reports on top of a Storage backend.
type Service struct {
	storage  Storage
	products ProductStore
	logger   *zap.Logger
	clock    func() time.Time
	loc      *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithLocation sets the business time zone used for "today" and month windows.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// NewService creates a new Service.
func NewService(storage Storage, products ProductStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	s := &Service{
		storage:  storage,
		products: products,
		logger:   logger,
		clock:    time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().In(s.loc)
}

func (s *Service) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// CreateSale records a sale and its side effects in order: the sale document,
// its installment schedule, stock decrements and one income posting.
//
// The steps are not transactional. When a step fails the error is returned and
// whatever earlier steps wrote stays in place.
func (s *Service) CreateSale(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Invalid("sale must have at least one item")
	}
	if _, ok := paymentMethodLabels[req.PaymentMethod]; !ok {
		return nil, apperr.Invalid("unknown payment method")
	}
	// Validar el número de parcelas antes de persistir nada
	if nominal := req.PaymentMethod.Installments(); req.PaymentMethod.IsCreditMulti() && req.InstallmentsCount > nominal {
		return nil, apperr.Invalid("%s allows at most %d installments, got %d", req.PaymentMethod, nominal, req.InstallmentsCount)
	}

	// Line totals are taken as sent; they are not recomputed from quantity × unit price.
	subtotal := decimal.Zero
	for _, item := range req.Items {
		subtotal = subtotal.Add(item.Total)
	}
	total := subtotal.Sub(req.Discount)

	now := s.now()
	sale := &Sale{
		ID:                uuid.NewString(),
		Date:              now,
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		Items:             req.Items,
		Subtotal:          subtotal,
		Discount:          req.Discount,
		Total:             total,
		PaymentMethod:     req.PaymentMethod,
		InstallmentsCount: effectiveInstallments(req.PaymentMethod, req.InstallmentsCount),
		Status:            SalePending,
		Notes:             req.Notes,
		CreatedAt:         now,
	}

	// 1. Guardar la venta
	if err := s.storage.InsertSale(ctx, sale); err != nil {
		s.logger.Error("failed to save sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, apperr.Persistence("insert sale", err)
	}

	// 2. Generar y guardar las parcelas
	installments := ScheduleInstallments(sale.ID, total, sale.InstallmentsCount, s.today())
	if err := s.storage.InsertInstallments(ctx, installments); err != nil {
		s.logger.Error("failed to save installments", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, apperr.Persistence("insert installments", err)
	}

	// 3. Descontar stock, producto por producto
	for _, item := range sale.Items {
		err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err == nil {
			continue
		}
		if isNotFound(err) {
			s.logger.Warn("sold product missing from catalog, stock untouched",
				zap.String("sale_id", sale.ID),
				zap.String("product_id", item.ProductID),
			)
			continue
		}
		s.logger.Error("failed to decrement stock",
			zap.String("sale_id", sale.ID),
			zap.String("product_id", item.ProductID),
			zap.Int("quantity", item.Quantity),
			zap.Error(err),
		)
		return nil, apperr.Persistence("decrement stock", err)
	}

	// 4. Registrar la entrada en el flujo de caja
	entry := &CashFlowEntry{
		ID:          uuid.NewString(),
		Date:        now,
		Type:        CashFlowIncome,
		Category:    CategorySale,
		Description: fmt.Sprintf("Venda #%s", sale.ID[:8]),
		Amount:      total,
		ReferenceID: sale.ID,
		CreatedAt:   now,
	}
	if err := s.storage.InsertCashFlowEntry(ctx, entry); err != nil {
		s.logger.Error("failed to post sale income", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, apperr.Persistence("insert cash flow entry", err)
	}

	s.logger.Info("sale created",
		zap.String("sale_id", sale.ID),
		zap.String("total", total.StringFixed(2)),
		zap.Stringer("payment_method", sale.PaymentMethod),
		zap.Int("installments", sale.InstallmentsCount),
	)
	return sale, nil
}

// GetSale returns a sale by id.
func (s *Service) GetSale(ctx context.Context, id string) (*Sale, error) {
	sale, err := s.storage.GetSale(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("get sale", err)
	}
	return sale, nil
}

// ListSales returns sales matching filter, newest first.
func (s *Service) ListSales(ctx context.Context, filter SaleFilter) ([]*Sale, error) {
	out, err := s.storage.FindSales(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list sales", zap.Error(err))
		return nil, apperr.Persistence("find sales", err)
	}
	return out, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
