package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	cash := newTestAccount("1010", "Cash", BalanceTypeDebit, ClassNone)
	revenue := newTestAccount("4010", "Sales", BalanceTypeCredit, ClassOperatingRevenue)

	t.Run("Empty", func(t *testing.T) {
		totals := Summarize(nil)
		assert.True(t, totals.TotalDebits.IsZero())
		assert.True(t, totals.TotalCredits.IsZero())
	})

	t.Run("MixedTypes", func(t *testing.T) {
		entryID := uuid.New()
		txs := []Transaction{
			cash.tx(entryID, TxTypeDebit, "100.00"),
			cash.tx(entryID, TxTypeDebit, "25.50"),
			revenue.tx(entryID, TxTypeCredit, "125.50"),
		}

		totals := Summarize(txs)
		assert.True(t, totals.TotalDebits.Equal(dec("125.50")), "debits = %s", totals.TotalDebits)
		assert.True(t, totals.TotalCredits.Equal(dec("125.50")), "credits = %s", totals.TotalCredits)
	})

	t.Run("NoFilteringApplied", func(t *testing.T) {
		// Summarize takes whatever subset the caller passes, unposted rows included.
		tx := cash.tx(uuid.New(), TxTypeDebit, "10.00")
		tx.EntryPosted = false

		totals := Summarize([]Transaction{tx})
		assert.True(t, totals.TotalDebits.Equal(dec("10.00")))
	})
}
