package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"api_backoffice/internal/apperr"
)

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2026, month, day, hour, 0, 0, 0, time.UTC)
}

func saleAt(t *testing.T, svc *Service, clock *testClock, when time.Time, req CreateSaleRequest) *Sale {
	t.Helper()
	clock.now = when
	sale, err := svc.CreateSale(context.Background(), req)
	require.NoError(t, err)
	return sale
}

func TestDashboardSummary_Empty(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	sum, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, sum.SalesCount)
	assertDecimal(t, "0", sum.TotalSalesGross)
	assertDecimal(t, "0", sum.PendingReceivables)
	assertDecimal(t, "0", sum.CashBalance)
	assertDecimal(t, "0", sum.TotalIncome)
	assertDecimal(t, "0", sum.TotalExpense)
	assertDecimal(t, "0", sum.StockValue)
}

func TestDashboardSummary_CurrentMonth(t *testing.T) {
	svc, _, products, clock := newTestService(t)
	products.add("p-bolsa", "80.00", 3)
	ctx := context.Background()

	// September sale: out of the month window, but its open installments still count.
	saleAt(t, svc, clock, at(time.September, 20, 10), CreateSaleRequest{
		Items:             []SaleLineItem{line("p-x", "Casaco", 1, "200.00", "200.00")},
		PaymentMethod:     PaymentCredit2x,
		InstallmentsCount: 2,
	})
	saleAt(t, svc, clock, at(time.October, 5, 10), CreateSaleRequest{
		Items:         []SaleLineItem{line("p-x", "Cinto", 1, "50.00", "50.00")},
		PaymentMethod: PaymentPIX,
	})
	saleAt(t, svc, clock, at(time.October, 10, 10), CreateSaleRequest{
		Items:             []SaleLineItem{line("p-bolsa", "Bolsa", 1, "90.00", "90.00")},
		PaymentMethod:     PaymentCredit3x,
		InstallmentsCount: 3,
	})
	_, err := svc.CreateCashFlowEntry(ctx, CreateCashFlowRequest{
		Date:     at(time.October, 12, 9),
		Type:     CashFlowExpense,
		Category: CategoryExpense,
		Amount:   dec("40.00"),
	})
	require.NoError(t, err)

	clock.now = baseTime
	sum, err := svc.DashboardSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.SalesCount)
	assertDecimal(t, "140", sum.TotalSalesGross)
	assertDecimal(t, "290", sum.PendingReceivables)
	assertDecimal(t, "140", sum.TotalIncome)
	assertDecimal(t, "40", sum.TotalExpense)
	assertDecimal(t, "100", sum.CashBalance)
	assertDecimal(t, "160", sum.StockValue)
}

func TestDashboardSummary_StockValueFailure(t *testing.T) {
	svc, _, products, _ := newTestService(t)
	products.failOn = "*"
	products.failErr = errors.New("catalog unavailable")

	_, err := svc.DashboardSummary(context.Background())

	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

func TestDashboardSummary_StorageFailure(t *testing.T) {
	storage := &failingStorage{LocalStorage: NewLocalStorage(), failOp: "FindSales"}
	svc := NewService(storage, newFakeProducts(), zaptest.NewLogger(t))

	_, err := svc.DashboardSummary(context.Background())

	assert.ErrorIs(t, err, apperr.ErrPersistence)
	assert.ErrorIs(t, err, errStoreDown)
}

// TestMonthlyReport prueba el reporte de octubre con ventas fuera de la ventana.
func TestMonthlyReport(t *testing.T) {
	svc, _, products, clock := newTestService(t)
	products.add("A", "300.00", 5)
	products.add("B", "100.00", 10)
	products.add("C", "100.00", 3)
	ctx := context.Background()

	saleAt(t, svc, clock, at(time.September, 20, 10), CreateSaleRequest{
		Items:             []SaleLineItem{line("D", "Antigo", 1, "200.00", "200.00")},
		PaymentMethod:     PaymentCredit2x,
		InstallmentsCount: 2,
	})
	// Lower bound is inclusive.
	saleAt(t, svc, clock, at(time.October, 1, 0), CreateSaleRequest{
		Items: []SaleLineItem{
			line("A", "Vestido Longo", 1, "300.00", "300.00"),
			line("B", "Camiseta", 2, "100.00", "200.00"),
		},
		PaymentMethod: PaymentPIX,
	})
	saleAt(t, svc, clock, at(time.October, 12, 15), CreateSaleRequest{
		Items: []SaleLineItem{
			line("B", "Camiseta", 3, "100.00", "300.00"),
			line("C", "Lenço", 1, "100.00", "100.00"),
		},
		PaymentMethod:     PaymentCredit2x,
		InstallmentsCount: 2,
	})
	// Upper bound is exclusive.
	saleAt(t, svc, clock, at(time.November, 1, 0), CreateSaleRequest{
		Items:         []SaleLineItem{line("D", "Novembro", 1, "999.00", "999.00")},
		PaymentMethod: PaymentPIX,
	})
	_, err := svc.CreateCashFlowEntry(ctx, CreateCashFlowRequest{
		Date:     at(time.October, 20, 9),
		Type:     CashFlowExpense,
		Category: CategoryInventory,
		Amount:   dec("155.00"),
	})
	require.NoError(t, err)

	report, err := svc.MonthlyReport(ctx, 10, 2026)
	require.NoError(t, err)

	assert.Equal(t, "October", report.Month)
	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, 2, report.TotalSalesCount)
	assertDecimal(t, "900", report.TotalSalesGross)
	assertDecimal(t, "45", report.TotalFees)
	assertDecimal(t, "855", report.TotalReceivedNet)
	assertDecimal(t, "700", report.RealProfit)
	assertDecimal(t, "450", report.AverageTicket)
	// Only the September sale has an open installment due in October.
	assertDecimal(t, "100", report.PendingReceivables)
	assertDecimal(t, "1900", report.StockValue)

	require.Len(t, report.TopProducts, 3)
	assert.Equal(t, "B", report.TopProducts[0].ProductID)
	assert.Equal(t, 5, report.TopProducts[0].Quantity)
	assertDecimal(t, "500", report.TopProducts[0].Revenue)
	assert.Equal(t, "A", report.TopProducts[1].ProductID)
	assert.Equal(t, "C", report.TopProducts[2].ProductID)
}

func TestMonthlyReport_EmptyMonth(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	report, err := svc.MonthlyReport(context.Background(), 2, 2026)
	require.NoError(t, err)

	assert.Equal(t, "February", report.Month)
	assert.Zero(t, report.TotalSalesCount)
	assertDecimal(t, "0", report.AverageTicket)
	assertDecimal(t, "0", report.RealProfit)
	assert.Empty(t, report.TopProducts)
}

func TestMonthlyReport_UsesBusinessLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)
	storage := NewLocalStorage()
	clock := &testClock{}
	svc := NewService(storage, newFakeProducts(), zaptest.NewLogger(t), WithClock(clock.Now), WithLocation(brt))

	// 02:00 UTC on Nov 1 is still Oct 31 in BRT.
	saleAt(t, svc, clock, time.Date(2026, time.November, 1, 2, 0, 0, 0, time.UTC), CreateSaleRequest{
		Items:         []SaleLineItem{line("A", "Saia", 1, "70.00", "70.00")},
		PaymentMethod: PaymentPIX,
	})

	oct, err := svc.MonthlyReport(context.Background(), 10, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, oct.TotalSalesCount)

	nov, err := svc.MonthlyReport(context.Background(), 11, 2026)
	require.NoError(t, err)
	assert.Zero(t, nov.TotalSalesCount)
}

func TestMonthlyReport_InvalidPeriod(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	for _, tc := range []struct{ month, year int }{{0, 2026}, {13, 2026}, {6, 0}} {
		_, err := svc.MonthlyReport(context.Background(), tc.month, tc.year)
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "month=%d year=%d", tc.month, tc.year)
	}
}

func TestRankProducts(t *testing.T) {
	sales := []*Sale{
		{Items: []SaleLineItem{
			line("tie-1", "Primeiro", 1, "50.00", "50.00"),
			line("tie-2", "Segundo", 1, "50.00", "50.00"),
			line("top", "Campeão", 1, "90.00", "90.00"),
		}},
		{Items: []SaleLineItem{
			line("top", "Campeão", 2, "90.00", "180.00"),
			line("p4", "Quarto", 1, "10.00", "10.00"),
			line("p5", "Quinto", 1, "9.00", "9.00"),
			line("p6", "Sexto", 1, "8.00", "8.00"),
		}},
	}

	ranked := RankProducts(sales, 5)

	require.Len(t, ranked, 5)
	assert.Equal(t, "top", ranked[0].ProductID)
	assert.Equal(t, 3, ranked[0].Quantity)
	assertDecimal(t, "270", ranked[0].Revenue)
	assert.Equal(t, "tie-1", ranked[1].ProductID, "ties keep first-seen order")
	assert.Equal(t, "tie-2", ranked[2].ProductID)
	assert.Equal(t, "p5", ranked[4].ProductID)

	assert.Empty(t, RankProducts(nil, 5))
}
