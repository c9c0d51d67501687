package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_backoffice/internal/apperr"
)

// Service provides product catalog operations on a Storage backend. It also
// serves as the ledger's product store.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{storage: storage, logger: logger}
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("product name is required")
	}
	if in.Price.IsNegative() {
		return nil, apperr.Invalid("price must not be negative")
	}

	product := &Product{
		ID:            uuid.NewString(),
		Name:          name,
		Price:         in.Price,
		Image:         in.Image,
		Category:      in.Category,
		IsNew:         in.IsNew,
		StockQuantity: in.StockQuantity,
		CostPrice:     in.CostPrice,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.storage.Insert(ctx, product); err != nil {
		s.logger.Error("failed to save product", zap.String("product_id", product.ID), zap.Error(err))
		return nil, apperr.Persistence("insert product", err)
	}

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// Obtener un producto por ID
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("get product", err)
	}
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*Product, error) {
	out, err := s.storage.List(ctx)
	if err != nil {
		s.logger.Error("failed to list products", zap.Error(err))
		return nil, apperr.Persistence("list products", err)
	}
	return out, nil
}

// UpdateProduct applies a partial update. An empty patch fails with InvalidArgument.
func (s *Service) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	if patch.IsEmpty() {
		return nil, apperr.Invalid("no fields to update")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperr.Invalid("product name must not be blank")
	}

	p, err := s.storage.Update(ctx, id, patch)
	if err != nil {
		return nil, apperr.Persistence("update product", err)
	}
	s.logger.Info("product updated", zap.String("product_id", id))
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return apperr.Persistence("delete product", err)
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// DecrementStock lowers a product's stock by qty. There is no guard against
// going negative; overselling is visible as negative stock.
func (s *Service) DecrementStock(ctx context.Context, productID string, qty int) error {
	if err := s.storage.AdjustStock(ctx, productID, -qty); err != nil {
		return apperr.Persistence("adjust stock", err)
	}
	return nil
}

// StockValue returns Σ stock_quantity × price at current prices.
func (s *Service) StockValue(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity))))
	}
	return total, nil
}
