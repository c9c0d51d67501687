package sales

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_backoffice/internal/apperr"
)

const topProductsLimit = 5

// estimatedFeeRate is a flat card/processor fee assumption applied to gross sales.
var estimatedFeeRate = decimal.RequireFromString("0.05")

// DashboardSummary is the current-month snapshot shown on the admin home page.
type DashboardSummary struct {
	TotalSalesGross    decimal.Decimal `json:"total_sales_gross"`
	SalesCount         int             `json:"sales_count"`
	PendingReceivables decimal.Decimal `json:"pending_receivables"`
	CashBalance        decimal.Decimal `json:"cash_balance"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
	StockValue         decimal.Decimal `json:"stock_value"`
}

// TopProduct is a product ranked by revenue within a report window.
type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// MonthlyReport aggregates one calendar month. It is never stored.
type MonthlyReport struct {
	Month              string          `json:"month"`
	Year               int             `json:"year"`
	TotalSalesGross    decimal.Decimal `json:"total_sales_gross"`
	TotalFees          decimal.Decimal `json:"total_fees"`
	TotalReceivedNet   decimal.Decimal `json:"total_received_net"`
	RealProfit         decimal.Decimal `json:"real_profit"`
	TotalSalesCount    int             `json:"total_sales_count"`
	AverageTicket      decimal.Decimal `json:"average_ticket"`
	TopProducts        []TopProduct    `json:"top_products"`
	PendingReceivables decimal.Decimal `json:"pending_receivables"`
	StockValue         decimal.Decimal `json:"stock_value"`
}

// DashboardSummary aggregates sales and cash flow since the start of the
// current month. Pending receivables span all time, stock value is a live snapshot.
func (s *Service) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	sales, err := s.storage.FindSales(ctx, SaleFilter{From: monthStart})
	if err != nil {
		s.logger.Error("dashboard: find sales", zap.Error(err))
		return nil, apperr.Persistence("find sales", err)
	}

	unpaid := false
	pending, err := s.storage.FindInstallments(ctx, InstallmentFilter{Paid: &unpaid})
	if err != nil {
		s.logger.Error("dashboard: find pending installments", zap.Error(err))
		return nil, apperr.Persistence("find installments", err)
	}

	entries, err := s.storage.FindCashFlow(ctx, CashFlowFilter{From: monthStart})
	if err != nil {
		s.logger.Error("dashboard: find cash flow", zap.Error(err))
		return nil, apperr.Persistence("find cash flow", err)
	}

	stockValue, err := s.products.StockValue(ctx)
	if err != nil {
		s.logger.Error("dashboard: stock value", zap.Error(err))
		return nil, apperr.Persistence("stock value", err)
	}

	income, expense := splitCashFlow(entries)
	return &DashboardSummary{
		TotalSalesGross:    sumSales(sales),
		SalesCount:         len(sales),
		PendingReceivables: sumInstallments(pending),
		CashBalance:        income.Sub(expense),
		TotalIncome:        income,
		TotalExpense:       expense,
		StockValue:         stockValue,
	}, nil
}

// MonthlyReport aggregates the given calendar month in the business time zone.
func (s *Service) MonthlyReport(ctx context.Context, month, year int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, apperr.Invalid("month must be between 1 and 12, got %d", month)
	}
	if year < 1 {
		return nil, apperr.Invalid("year must be positive, got %d", year)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0)

	sales, err := s.storage.FindSales(ctx, SaleFilter{From: start, To: end})
	if err != nil {
		s.logger.Error("report: find sales", zap.Error(err))
		return nil, apperr.Persistence("find sales", err)
	}

	unpaid := false
	pending, err := s.storage.FindInstallments(ctx, InstallmentFilter{Paid: &unpaid, DueFrom: start, DueTo: end})
	if err != nil {
		s.logger.Error("report: find pending installments", zap.Error(err))
		return nil, apperr.Persistence("find installments", err)
	}

	expenses, err := s.storage.FindCashFlow(ctx, CashFlowFilter{From: start, To: end, Type: CashFlowExpense})
	if err != nil {
		s.logger.Error("report: find expenses", zap.Error(err))
		return nil, apperr.Persistence("find cash flow", err)
	}

	stockValue, err := s.products.StockValue(ctx)
	if err != nil {
		s.logger.Error("report: stock value", zap.Error(err))
		return nil, apperr.Persistence("stock value", err)
	}

	gross := sumSales(sales)
	fees := gross.Mul(estimatedFeeRate)
	net := gross.Sub(fees)
	_, totalExpenses := splitCashFlow(expenses)

	avg := decimal.Zero
	if len(sales) > 0 {
		avg = gross.Div(decimal.NewFromInt(int64(len(sales))))
	}

	return &MonthlyReport{
		Month:              time.Month(month).String(),
		Year:               year,
		TotalSalesGross:    gross,
		TotalFees:          fees,
		TotalReceivedNet:   net,
		RealProfit:         net.Sub(totalExpenses),
		TotalSalesCount:    len(sales),
		AverageTicket:      avg,
		TopProducts:        RankProducts(sales, topProductsLimit),
		PendingReceivables: sumInstallments(pending),
		StockValue:         stockValue,
	}, nil
}

// RankProducts groups line items by product id, summing quantity and revenue,
// and returns the top n by revenue. Ties keep the order products were first seen.
func RankProducts(sales []*Sale, n int) []TopProduct {
	index := map[string]int{}
	ranked := make([]TopProduct, 0)
	for _, sale := range sales {
		for _, item := range sale.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(ranked)
				index[item.ProductID] = i
				ranked = append(ranked, TopProduct{ProductID: item.ProductID, Name: item.ProductName})
			}
			ranked[i].Quantity += item.Quantity
			ranked[i].Revenue = ranked[i].Revenue.Add(item.Total)
		}
	}

	slices.SortStableFunc(ranked, func(a, b TopProduct) int { return b.Revenue.Cmp(a.Revenue) })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func sumSales(sales []*Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}
	return total
}

func sumInstallments(installments []*Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(inst.Amount)
	}
	return total
}

func splitCashFlow(entries []*CashFlowEntry) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case CashFlowIncome:
			income = income.Add(e.Amount)
		case CashFlowExpense:
			expense = expense.Add(e.Amount)
		}
	}
	return income, expense
}
