package mongostore

import (
	"time"

	"github.com/shopspring/decimal"

	"api_backoffice/internal/catalog"
	"api_backoffice/internal/sales"
)

type saleItemDocument struct {
	ProductID   string  `bson:"product_id"`
	ProductName string  `bson:"product_name"`
	Quantity    int     `bson:"quantity"`
	UnitPrice   float64 `bson:"unit_price"`
	Total       float64 `bson:"total"`
}

type saleDocument struct {
	ID                string             `bson:"id"`
	Date              time.Time          `bson:"date"`
	CustomerName      *string            `bson:"customer_name"`
	CustomerEmail     *string            `bson:"customer_email"`
	Items             []saleItemDocument `bson:"items"`
	Subtotal          float64            `bson:"subtotal"`
	Discount          float64            `bson:"discount"`
	Total             float64            `bson:"total"`
	PaymentMethod     string             `bson:"payment_method"`
	InstallmentsCount int                `bson:"installments_count"`
	Status            string             `bson:"status"`
	Notes             *string            `bson:"notes"`
	CreatedAt         time.Time          `bson:"createdAt"`
}

type installmentDocument struct {
	ID       string     `bson:"id"`
	SaleID   string     `bson:"sale_id"`
	Number   int        `bson:"number"`
	DueDate  time.Time  `bson:"due_date"`
	Amount   float64    `bson:"amount"`
	Paid     bool       `bson:"paid"`
	PaidDate *time.Time `bson:"paid_date"`
}

type cashFlowDocument struct {
	ID          string    `bson:"id"`
	Date        time.Time `bson:"date"`
	Type        string    `bson:"type"`
	Category    string    `bson:"category"`
	Description string    `bson:"description"`
	Amount      float64   `bson:"amount"`
	ReferenceID *string   `bson:"reference_id"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type productDocument struct {
	ID            string    `bson:"id"`
	Name          string    `bson:"name"`
	Price         float64   `bson:"price"`
	Image         string    `bson:"image"`
	Category      string    `bson:"category"`
	IsNew         bool      `bson:"isNew"`
	StockQuantity int       `bson:"stock_quantity"`
	CostPrice     float64   `bson:"cost_price"`
	CreatedAt     time.Time `bson:"createdAt"`
}

func toSaleDocument(s *sales.Sale) saleDocument {
	items := make([]saleItemDocument, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, saleItemDocument{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			Total:       it.Total.InexactFloat64(),
		})
	}
	return saleDocument{
		ID:                s.ID,
		Date:              s.Date,
		CustomerName:      optional(s.CustomerName),
		CustomerEmail:     optional(s.CustomerEmail),
		Items:             items,
		Subtotal:          s.Subtotal.InexactFloat64(),
		Discount:          s.Discount.InexactFloat64(),
		Total:             s.Total.InexactFloat64(),
		PaymentMethod:     s.PaymentMethod.String(),
		InstallmentsCount: s.InstallmentsCount,
		Status:            s.Status.String(),
		Notes:             optional(s.Notes),
		CreatedAt:         s.CreatedAt,
	}
}

func (d saleDocument) toSale() (*sales.Sale, error) {
	method, err := sales.ParsePaymentMethod(d.PaymentMethod)
	if err != nil {
		return nil, err
	}
	status, err := sales.ParseSaleStatus(d.Status)
	if err != nil {
		return nil, err
	}
	items := make([]sales.SaleLineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, sales.SaleLineItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   decimal.NewFromFloat(it.UnitPrice),
			Total:       decimal.NewFromFloat(it.Total),
		})
	}
	return &sales.Sale{
		ID:                d.ID,
		Date:              d.Date,
		CustomerName:      deref(d.CustomerName),
		CustomerEmail:     deref(d.CustomerEmail),
		Items:             items,
		Subtotal:          decimal.NewFromFloat(d.Subtotal),
		Discount:          decimal.NewFromFloat(d.Discount),
		Total:             decimal.NewFromFloat(d.Total),
		PaymentMethod:     method,
		InstallmentsCount: d.InstallmentsCount,
		Status:            status,
		Notes:             deref(d.Notes),
		CreatedAt:         d.CreatedAt,
	}, nil
}

func toInstallmentDocument(i *sales.Installment) installmentDocument {
	return installmentDocument{
		ID:       i.ID,
		SaleID:   i.SaleID,
		Number:   i.Number,
		DueDate:  i.DueDate,
		Amount:   i.Amount.InexactFloat64(),
		Paid:     i.Paid,
		PaidDate: i.PaidDate,
	}
}

func (d installmentDocument) toInstallment() *sales.Installment {
	return &sales.Installment{
		ID:       d.ID,
		SaleID:   d.SaleID,
		Number:   d.Number,
		DueDate:  d.DueDate,
		Amount:   decimal.NewFromFloat(d.Amount),
		Paid:     d.Paid,
		PaidDate: d.PaidDate,
	}
}

func toCashFlowDocument(e *sales.CashFlowEntry) cashFlowDocument {
	return cashFlowDocument{
		ID:          e.ID,
		Date:        e.Date,
		Type:        e.Type.String(),
		Category:    e.Category.String(),
		Description: e.Description,
		Amount:      e.Amount.InexactFloat64(),
		ReferenceID: optional(e.ReferenceID),
		CreatedAt:   e.CreatedAt,
	}
}

func (d cashFlowDocument) toEntry() (*sales.CashFlowEntry, error) {
	typ, err := sales.ParseCashFlowType(d.Type)
	if err != nil {
		return nil, err
	}
	category, err := sales.ParseCashFlowCategory(d.Category)
	if err != nil {
		return nil, err
	}
	return &sales.CashFlowEntry{
		ID:          d.ID,
		Date:        d.Date,
		Type:        typ,
		Category:    category,
		Description: d.Description,
		Amount:      decimal.NewFromFloat(d.Amount),
		ReferenceID: deref(d.ReferenceID),
		CreatedAt:   d.CreatedAt,
	}, nil
}

func toProductDocument(p *catalog.Product) productDocument {
	return productDocument{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price.InexactFloat64(),
		Image:         p.Image,
		Category:      p.Category,
		IsNew:         p.IsNew,
		StockQuantity: p.StockQuantity,
		CostPrice:     p.CostPrice.InexactFloat64(),
		CreatedAt:     p.CreatedAt,
	}
}

func (d productDocument) toProduct() *catalog.Product {
	return &catalog.Product{
		ID:            d.ID,
		Name:          d.Name,
		Price:         decimal.NewFromFloat(d.Price),
		Image:         d.Image,
		Category:      d.Category,
		IsNew:         d.IsNew,
		StockQuantity: d.StockQuantity,
		CostPrice:     decimal.NewFromFloat(d.CostPrice),
		CreatedAt:     d.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
