package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item with its current stock.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	IsNew         bool            `json:"isNew"`
	StockQuantity int             `json:"stock_quantity"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ProductInput holds the fields of a new product.
type ProductInput struct {
	Name          string
	Price         decimal.Decimal
	Image         string
	Category      string
	IsNew         bool
	StockQuantity int
	CostPrice     decimal.Decimal
}

// ProductPatch is a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name          *string          `json:"name"`
	Price         *decimal.Decimal `json:"price"`
	Image         *string          `json:"image"`
	Category      *string          `json:"category"`
	IsNew         *bool            `json:"isNew"`
	StockQuantity *int             `json:"stock_quantity"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
}

// IsEmpty reports whether the patch sets no field at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Image == nil && p.Category == nil &&
		p.IsNew == nil && p.StockQuantity == nil && p.CostPrice == nil
}

// Apply copies every set field of the patch onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.IsNew != nil {
		product.IsNew = *p.IsNew
	}
	if p.StockQuantity != nil {
		product.StockQuantity = *p.StockQuantity
	}
	if p.CostPrice != nil {
		product.CostPrice = *p.CostPrice
	}
}
