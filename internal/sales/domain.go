package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineItem is one product line of a sale. Total is supplied by the caller.
type SaleLineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Sale represents a sales transaction in the system.
type Sale struct {
	ID                string          `json:"id"`
	Date              time.Time       `json:"date"`
	CustomerName      string          `json:"customer_name,omitempty"`
	CustomerEmail     string          `json:"customer_email,omitempty"`
	Items             []SaleLineItem  `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	InstallmentsCount int             `json:"installments_count"`
	Status            SaleStatus      `json:"status"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// Installment is one scheduled payment of a sale.
type Installment struct {
	ID       string          `json:"id"`
	SaleID   string          `json:"sale_id"`
	Number   int             `json:"number"`
	DueDate  time.Time       `json:"due_date"`
	Amount   decimal.Decimal `json:"amount"`
	Paid     bool            `json:"paid"`
	PaidDate *time.Time      `json:"paid_date"`
}

// CashFlowEntry is a ledger posting. Amount is always positive; Type carries the sign.
type CashFlowEntry struct {
	ID          string           `json:"id"`
	Date        time.Time        `json:"date"`
	Type        CashFlowType     `json:"type"`
	Category    CashFlowCategory `json:"category"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	ReferenceID string           `json:"reference_id,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// CreateSaleRequest is the input for recording a sale.
type CreateSaleRequest struct {
	CustomerName      string
	CustomerEmail     string
	Items             []SaleLineItem
	Discount          decimal.Decimal
	PaymentMethod     PaymentMethod
	InstallmentsCount int
	Notes             string
}

// CreateCashFlowRequest is the input for a manual ledger posting. A zero Date means now.
type CreateCashFlowRequest struct {
	Date        time.Time
	Type        CashFlowType
	Category    CashFlowCategory
	Description string
	Amount      decimal.Decimal
}

// SaleFilter selects sales. Zero values mean "no constraint"; From is inclusive, To exclusive.
type SaleFilter struct {
	From   time.Time
	To     time.Time
	Status SaleStatus
	Limit  int
}

// InstallmentFilter selects installments. DueFrom is inclusive, DueTo exclusive.
type InstallmentFilter struct {
	SaleID  string
	Paid    *bool
	DueFrom time.Time
	DueTo   time.Time
	Limit   int
}

// CashFlowFilter selects ledger entries. From is inclusive, To exclusive.
type CashFlowFilter struct {
	From  time.Time
	To    time.Time
	Type  CashFlowType
	Limit int
}
