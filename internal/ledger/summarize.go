package ledger

// Summarize reduces a transaction list to its flat debit and credit totals.
// No categorization is applied; the caller decides the subset (a journal
// entry, an account listing page, ...).
func Summarize(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.TxType {
		case TxTypeDebit:
			t.TotalDebits = t.TotalDebits.Add(tx.Amount)
		case TxTypeCredit:
			t.TotalCredits = t.TotalCredits.Add(tx.Amount)
		}
	}
	return t
}
