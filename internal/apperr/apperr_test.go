package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistence_WrapsStoreFailures(t *testing.T) {
	err := Persistence("insert sale", errors.New("connection reset"))

	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "insert sale")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPersistence_KeepsNotFound(t *testing.T) {
	err := Persistence("pay installment", NotFound("installment"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "installment not found", err.Error())
}

func TestPersistence_Nil(t *testing.T) {
	assert.NoError(t, Persistence("noop", nil))
}

func TestInvalid(t *testing.T) {
	err := Invalid("month %d out of range", 13)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "invalid argument: month 13 out of range", err.Error())
}
