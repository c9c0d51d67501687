package sales

import (
	"fmt"

	"api_backoffice/internal/apperr"
)

// The string labels below are what the store and the API persist and exchange.
// They must stay byte-identical to keep existing documents readable.

type PaymentMethod int

const (
	PaymentPIX PaymentMethod = iota + 1
	PaymentDebit
	PaymentCredit1x
	PaymentCredit2x
	PaymentCredit3x
	PaymentCredit6x
	PaymentCredit12x
	PaymentBoleto
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentPIX:       "PIX",
	PaymentDebit:     "Débito",
	PaymentCredit1x:  "Crédito 1x",
	PaymentCredit2x:  "Crédito 2x",
	PaymentCredit3x:  "Crédito 3x",
	PaymentCredit6x:  "Crédito 6x",
	PaymentCredit12x: "Crédito 12x",
	PaymentBoleto:    "Boleto",
}

var paymentMethodInstallments = map[PaymentMethod]int{
	PaymentCredit2x:  2,
	PaymentCredit3x:  3,
	PaymentCredit6x:  6,
	PaymentCredit12x: 12,
}

func (m PaymentMethod) String() string { return paymentMethodLabels[m] }

// Installments returns the nominal installment count of a credit-multi method, or 1.
func (m PaymentMethod) Installments() int {
	if n, ok := paymentMethodInstallments[m]; ok {
		return n
	}
	return 1
}

// IsCreditMulti reports whether the method may be split into several installments.
func (m PaymentMethod) IsCreditMulti() bool {
	return m.Installments() > 1
}

func (m PaymentMethod) MarshalText() ([]byte, error) {
	return marshalLabel(paymentMethodLabels, m, "payment method")
}

func (m *PaymentMethod) UnmarshalText(b []byte) error {
	return unmarshalLabel(paymentMethodLabels, m, string(b), "payment method")
}

// ParsePaymentMethod maps a persisted label to its PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	var m PaymentMethod
	err := m.UnmarshalText([]byte(s))
	return m, err
}

type SaleStatus int

const (
	SalePending SaleStatus = iota + 1
	SalePaid
	SalePartial
	SaleCancelled
)

var saleStatusLabels = map[SaleStatus]string{
	SalePending:   "Pendente",
	SalePaid:      "Paga",
	SalePartial:   "Parcial",
	SaleCancelled: "Cancelada",
}

func (s SaleStatus) String() string { return saleStatusLabels[s] }

func (s SaleStatus) MarshalText() ([]byte, error) {
	return marshalLabel(saleStatusLabels, s, "sale status")
}

func (s *SaleStatus) UnmarshalText(b []byte) error {
	return unmarshalLabel(saleStatusLabels, s, string(b), "sale status")
}

func ParseSaleStatus(s string) (SaleStatus, error) {
	var st SaleStatus
	err := st.UnmarshalText([]byte(s))
	return st, err
}

type CashFlowType int

const (
	CashFlowIncome CashFlowType = iota + 1
	CashFlowExpense
)

var cashFlowTypeLabels = map[CashFlowType]string{
	CashFlowIncome:  "Entrada",
	CashFlowExpense: "Saída",
}

func (t CashFlowType) String() string { return cashFlowTypeLabels[t] }

func (t CashFlowType) MarshalText() ([]byte, error) {
	return marshalLabel(cashFlowTypeLabels, t, "cash flow type")
}

func (t *CashFlowType) UnmarshalText(b []byte) error {
	return unmarshalLabel(cashFlowTypeLabels, t, string(b), "cash flow type")
}

func ParseCashFlowType(s string) (CashFlowType, error) {
	var t CashFlowType
	err := t.UnmarshalText([]byte(s))
	return t, err
}

type CashFlowCategory int

const (
	CategorySale CashFlowCategory = iota + 1
	CategoryInventory
	CategoryExpense
	CategoryOther
)

var cashFlowCategoryLabels = map[CashFlowCategory]string{
	CategorySale:      "Venda",
	CategoryInventory: "Compra de Estoque",
	CategoryExpense:   "Despesa",
	CategoryOther:     "Outro",
}

func (c CashFlowCategory) String() string { return cashFlowCategoryLabels[c] }

func (c CashFlowCategory) MarshalText() ([]byte, error) {
	return marshalLabel(cashFlowCategoryLabels, c, "cash flow category")
}

func (c *CashFlowCategory) UnmarshalText(b []byte) error {
	return unmarshalLabel(cashFlowCategoryLabels, c, string(b), "cash flow category")
}

func ParseCashFlowCategory(s string) (CashFlowCategory, error) {
	var c CashFlowCategory
	err := c.UnmarshalText([]byte(s))
	return c, err
}

func marshalLabel[T ~int](labels map[T]string, v T, kind string) ([]byte, error) {
	label, ok := labels[v]
	if !ok {
		return nil, fmt.Errorf("unknown %s %d", kind, int(v))
	}
	return []byte(label), nil
}

func unmarshalLabel[T ~int](labels map[T]string, dst *T, s, kind string) error {
	for v, label := range labels {
		if label == s {
			*dst = v
			return nil
		}
	}
	return apperr.Invalid("unknown %s %q", kind, s)
}
