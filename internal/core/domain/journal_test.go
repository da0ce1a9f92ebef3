package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    EntryStatus
		to      EntryStatus
		allowed bool
	}{
		{Draft, Posted, true},
		{Draft, Cancelled, true},
		{Draft, Draft, false},
		{Posted, Cancelled, true},
		{Posted, Posted, false},
		{Posted, Draft, false},
		{Cancelled, Draft, false},
		{Cancelled, Posted, false},
		{Cancelled, Cancelled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestJournalEntryTotals(t *testing.T) {
	entry := JournalEntry{
		Lines: []JournalLine{
			{Debit: decimal.NewFromInt(600), LineOrder: 1},
			{Credit: decimal.NewFromInt(500), LineOrder: 2},
			{Credit: decimal.NewFromInt(100), LineOrder: 3},
		},
	}

	assert.True(t, entry.TotalDebit().Equal(decimal.NewFromInt(600)))
	assert.True(t, entry.TotalCredit().Equal(decimal.NewFromInt(600)))
	assert.True(t, entry.IsBalanced())
}

func TestJournalEntryIsBalanced_ExactComparison(t *testing.T) {
	debit, _ := decimal.NewFromString("0.1")
	creditA, _ := decimal.NewFromString("0.05")
	creditB, _ := decimal.NewFromString("0.05")
	entry := JournalEntry{
		Lines: []JournalLine{
			{Debit: debit},
			{Credit: creditA},
			{Credit: creditB},
		},
	}
	assert.True(t, entry.IsBalanced())

	offByACent, _ := decimal.NewFromString("0.01")
	entry.Lines = append(entry.Lines, JournalLine{Credit: offByACent})
	assert.False(t, entry.IsBalanced())
}

func TestJournalEntryTotals_Empty(t *testing.T) {
	var entry JournalEntry
	assert.True(t, entry.TotalDebit().IsZero())
	assert.True(t, entry.TotalCredit().IsZero())
	assert.True(t, entry.IsBalanced())
}
