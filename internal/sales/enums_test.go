package sales

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api_backoffice/internal/apperr"
)

func TestPaymentMethodLabels(t *testing.T) {
	for m, label := range paymentMethodLabels {
		b, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `"`+label+`"`, string(b))

		parsed, err := ParsePaymentMethod(label)
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	assert.Equal(t, 12, PaymentCredit12x.Installments())
	assert.Equal(t, 1, PaymentCredit1x.Installments())
	assert.True(t, PaymentCredit2x.IsCreditMulti())
	assert.False(t, PaymentBoleto.IsCreditMulti())
}

func TestUnknownLabels(t *testing.T) {
	_, err := ParsePaymentMethod("Crédito 4x")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = ParseSaleStatus("Estornada")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = ParseCashFlowType("entrada")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = ParseCashFlowCategory("")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	var entry CashFlowEntry
	err = json.Unmarshal([]byte(`{"type":"Transferência"}`), &entry)
	assert.Error(t, err)
}

func TestCashFlowEntryJSON(t *testing.T) {
	var entry CashFlowEntry
	err := json.Unmarshal([]byte(`{"type":"Saída","category":"Compra de Estoque","amount":"12.50"}`), &entry)
	require.NoError(t, err)

	assert.Equal(t, CashFlowExpense, entry.Type)
	assert.Equal(t, CategoryInventory, entry.Category)
	assertDecimal(t, "12.5", entry.Amount)

	st, err := ParseSaleStatus("Parcial")
	require.NoError(t, err)
	assert.Equal(t, SalePartial, st)
	assert.Equal(t, "Parcial", st.String())
}

// TestMarshalUnknownValue verifica que el error incluya el valor crudo.
func TestMarshalUnknownValue(t *testing.T) {
	_, err := SaleStatus(99).MarshalText()
	require.Error(t, err)
	assert.Equal(t, "unknown sale status 99", err.Error())

	_, err = json.Marshal(Sale{Status: 0, PaymentMethod: PaymentPIX})
	assert.ErrorContains(t, err, "unknown sale status 0")
}
