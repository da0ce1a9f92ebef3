package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgurkara/erp-ledger/internal/core/domain"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestIsDebitNormal(t *testing.T) {
	assert.True(t, IsDebitNormal(domain.Asset))
	assert.True(t, IsDebitNormal(domain.Expense))
	assert.True(t, IsDebitNormal(domain.Cost))
	assert.False(t, IsDebitNormal(domain.Liability))
	assert.False(t, IsDebitNormal(domain.Equity))
	assert.False(t, IsDebitNormal(domain.Revenue))
}

func TestAccountBalance(t *testing.T) {
	tests := []struct {
		name          string
		accountType   domain.AccountType
		openingDebit  int64
		openingCredit int64
		periodDebit   int64
		periodCredit  int64
		want          int64
	}{
		{"asset with opening and activity", domain.Asset, 500, 0, 300, 100, 700},
		{"asset overdrawn goes negative", domain.Asset, 0, 0, 100, 300, -200},
		{"liability grows on credit", domain.Liability, 0, 200, 50, 400, 550},
		{"revenue credit normal", domain.Revenue, 0, 0, 0, 900, 900},
		{"expense debit normal", domain.Expense, 0, 0, 120, 0, 120},
		{"equity with drawings", domain.Equity, 0, 1000, 250, 0, 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AccountBalance(tt.accountType, d(tt.openingDebit), d(tt.openingCredit), d(tt.periodDebit), d(tt.periodCredit))
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %d", got, tt.want)
		})
	}
}

func TestAccountBalance_UnknownType(t *testing.T) {
	_, err := AccountBalance(domain.AccountType("BOGUS"), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
	require.Error(t, err)
}

func TestLineDelta(t *testing.T) {
	got, err := LineDelta(domain.Asset, d(100), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.Equal(d(100)))

	got, err = LineDelta(domain.Asset, decimal.Zero, d(40))
	require.NoError(t, err)
	assert.True(t, got.Equal(d(-40)))

	got, err = LineDelta(domain.Liability, decimal.Zero, d(40))
	require.NoError(t, err)
	assert.True(t, got.Equal(d(40)))

	got, err = LineDelta(domain.Liability, d(100), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.Equal(d(-100)))

	_, err = LineDelta(domain.AccountType(""), d(1), decimal.Zero)
	require.Error(t, err)
}

func TestValidateLineAmounts(t *testing.T) {
	assert.NoError(t, ValidateLineAmounts(d(100), decimal.Zero))
	assert.NoError(t, ValidateLineAmounts(decimal.Zero, d(100)))

	assert.Error(t, ValidateLineAmounts(d(100), d(100)), "both sides set")
	assert.Error(t, ValidateLineAmounts(decimal.Zero, decimal.Zero), "no amount at all")
	assert.Error(t, ValidateLineAmounts(d(-1), decimal.Zero), "negative debit")
	assert.Error(t, ValidateLineAmounts(decimal.Zero, d(-1)), "negative credit")
}
