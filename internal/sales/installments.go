package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_backoffice/internal/apperr"
)

// installmentCadenceDays is the spacing between due dates in days, not calendar
// months: installment n is due 30*n days after the sale.
const installmentCadenceDays = 30

// ScheduleInstallments builds the payment schedule for a sale.
//
// A single installment is due today and is settled immediately (PIX, debit,
// boleto and credit 1x all behave this way). N > 1 installments each carry
// total/N, are due every 30 days starting 30 days from today and start unpaid.
// The division is exact; no installment absorbs a rounding remainder.
func ScheduleInstallments(saleID string, total decimal.Decimal, count int, today time.Time) []*Installment {
	if count <= 1 {
		paid := today
		return []*Installment{{
			ID:       uuid.NewString(),
			SaleID:   saleID,
			Number:   1,
			DueDate:  today,
			Amount:   total,
			Paid:     true,
			PaidDate: &paid,
		}}
	}

	amount := total.Div(decimal.NewFromInt(int64(count)))
	out := make([]*Installment, 0, count)
	for n := 1; n <= count; n++ {
		out = append(out, &Installment{
			ID:      uuid.NewString(),
			SaleID:  saleID,
			Number:  n,
			DueDate: today.AddDate(0, 0, installmentCadenceDays*n),
			Amount:  amount,
		})
	}
	return out
}

// effectiveInstallments returns the count actually scheduled for a payment method.
// Requests above the method's nominal count are rejected earlier by CreateSale.
func effectiveInstallments(method PaymentMethod, requested int) int {
	if !method.IsCreditMulti() {
		return 1
	}
	if requested >= 1 {
		return requested
	}
	return method.Installments()
}

// ListInstallments returns installments matching filter, earliest due first.
func (s *Service) ListInstallments(ctx context.Context, filter InstallmentFilter) ([]*Installment, error) {
	out, err := s.storage.FindInstallments(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list installments", zap.Error(err))
		return nil, apperr.Persistence("find installments", err)
	}
	return out, nil
}

// SaleInstallments returns the schedule of one sale. Unknown sales fail with NotFound.
func (s *Service) SaleInstallments(ctx context.Context, saleID string) ([]*Installment, error) {
	if _, err := s.GetSale(ctx, saleID); err != nil {
		return nil, err
	}
	return s.ListInstallments(ctx, InstallmentFilter{SaleID: saleID})
}

// PayInstallment marks an installment paid today and rolls the owning sale's
// status up: Paga once every installment is paid, Parcial otherwise. Paying an
// already-paid installment re-applies the same fields.
func (s *Service) PayInstallment(ctx context.Context, id string) (*Installment, error) {
	inst, err := s.storage.MarkInstallmentPaid(ctx, id, s.today())
	if err != nil {
		if !isNotFound(err) {
			s.logger.Error("failed to pay installment", zap.String("installment_id", id), zap.Error(err))
		}
		return nil, apperr.Persistence("mark installment paid", err)
	}

	siblings, err := s.storage.FindInstallments(ctx, InstallmentFilter{SaleID: inst.SaleID})
	if err != nil {
		s.logger.Error("failed to load sale installments", zap.String("sale_id", inst.SaleID), zap.Error(err))
		return nil, apperr.Persistence("find installments", err)
	}

	// Si queda alguna parcela pendiente la venta pasa a Parcial
	status := SalePaid
	for _, sib := range siblings {
		if !sib.Paid {
			status = SalePartial
			break
		}
	}

	if err := s.storage.SetSaleStatus(ctx, inst.SaleID, status); err != nil {
		s.logger.Error("failed to update sale status",
			zap.String("sale_id", inst.SaleID),
			zap.Stringer("status", status),
			zap.Error(err),
		)
		return nil, apperr.Persistence("set sale status", err)
	}

	s.logger.Info("installment paid",
		zap.String("installment_id", inst.ID),
		zap.String("sale_id", inst.SaleID),
		zap.Int("number", inst.Number),
		zap.Stringer("sale_status", status),
	)
	return inst, nil
}
