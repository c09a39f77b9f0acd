package cli

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-manager/internal/model"
)

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter("inr", "en-IN")
	require.NoError(t, err)
	assert.Equal(t, "INR", f.Currency())

	_, err = NewFormatter("XYZW", "en-IN")
	assert.Error(t, err)

	_, err = NewFormatter("INR", "not a locale!")
	assert.Error(t, err)
}

func TestFormatterAmount(t *testing.T) {
	f, err := NewFormatter("USD", "en-US")
	require.NoError(t, err)

	tests := map[string]string{
		"1234.5":   "$1,234.50",
		"0":        "$0.00",
		"-3800":    "-$3,800.00",
		"12.345":   "$12.35",
		"1000000":  "$1,000,000.00",
		"0.1":      "$0.10",
		"-0.005":   "-$0.01",
		"999.994":  "$999.99",
		"5000.00":  "$5,000.00",
		"42.10":    "$42.10",
		"2500.999": "$2,501.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, f.Amount(decimal.RequireFromString(in)), "Amount(%s)", in)
	}
}

func TestFormatterAmountKeepsEveryDigit(t *testing.T) {
	f, err := NewFormatter("USD", "en-US")
	require.NoError(t, err)

	assert.Equal(t, "$12,345,678,901,234,567.89", f.Amount(decimal.RequireFromString("12345678901234567.89")))
	assert.Equal(t, "-$9,007,199,254,740,993.01", f.Amount(decimal.RequireFromString("-9007199254740993.01")))
	assert.Equal(t, "$123456789012345678901.50", f.Amount(decimal.RequireFromString("123456789012345678901.5")))
}

func TestFormatterRupees(t *testing.T) {
	f, err := NewFormatter("INR", "en-IN")
	require.NoError(t, err)

	got := f.Amount(decimal.RequireFromString("123456.5"))
	assert.Contains(t, got, "₹")
	assert.Contains(t, got, "456.50")
}

func TestFormatterSigned(t *testing.T) {
	f, err := NewFormatter("USD", "en-US")
	require.NoError(t, err)
	amount := decimal.RequireFromString("10")

	assert.Equal(t, "+$10.00", f.Signed(model.Transaction{Amount: amount, Entry: model.Income{CategoryID: "a"}}))
	assert.Equal(t, "-$10.00", f.Signed(model.Transaction{Amount: amount, Entry: model.Expense{CategoryID: "a"}}))
	assert.Equal(t, "$10.00", f.Signed(model.Transaction{Amount: amount, Entry: model.Transfer{FromCategoryID: "a", ToCategoryID: "b"}}))
}
