package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestField(t *testing.T) {
	require.Nil(t, Field("Amount", nil, "ignored"))

	err := Field("Amount", ErrAmount, "must be positive")
	require.True(t, ErrAmount.Is(err))
	require.Equal(t, `field "Amount": must be positive: invalid amount`, err.Error())
}

func TestFieldErrors(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Source", ErrEmpty)
	errs = AppendField(errs, "Amount", nil)
	errs = AppendField(errs, "Destination", ErrEmpty)
	errs = AppendField(errs, "Amount", ErrAmount)

	require.Len(t, FieldErrors(errs, "Source"), 1)
	require.Len(t, FieldErrors(errs, "Destination"), 1)
	amount := FieldErrors(errs, "Amount")
	require.Len(t, amount, 1)
	require.True(t, ErrAmount.Is(amount[0]))
	require.Empty(t, FieldErrors(errs, "Memo"))
}
