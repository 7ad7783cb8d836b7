package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuildDigest computes the income statement digest for one report request.
//
// Selection order matters: posted-entry and date-interval filtering come
// first, then the per-entry debit=credit check, and only then the unit/fund
// filters. A unit or fund filter may legitimately slice an entry below
// balance, so the integrity check has to run against whole entries.
//
// An empty in-scope set is not an error: every subtotal is zero and every
// category is empty.
func BuildDigest(txs []Transaction, f Filters) (*Digest, error) {
	if f.FromDate.After(f.ToDate) {
		return nil, ErrInvalidDateRange
	}

	inRange := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.EntryPosted {
			continue
		}
		if tx.Date.Before(f.FromDate) || tx.Date.After(f.ToDate) {
			continue
		}
		inRange = append(inRange, tx)
	}

	if err := checkEntriesBalanced(inRange); err != nil {
		return nil, err
	}

	scoped := inRange
	if f.UnitID != uuid.Nil || f.FundID != uuid.Nil {
		scoped = make([]Transaction, 0, len(inRange))
		for _, tx := range inRange {
			if f.UnitID != uuid.Nil && tx.UnitID != f.UnitID {
				continue
			}
			if f.FundID != uuid.Nil && tx.FundID != f.FundID {
				continue
			}
			scoped = append(scoped, tx)
		}
	}

	d := &Digest{
		ByUnit:          f.ByUnit,
		FromDate:        f.FromDate,
		ToDate:          f.ToDate,
		IncomeStatement: buildStatement(scoped, false),
	}

	if f.ByUnit {
		d.Units = buildUnitSegments(scoped)
	}

	return d, nil
}

// checkEntriesBalanced verifies the double-entry invariant for every journal
// entry represented in txs.
func checkEntriesBalanced(txs []Transaction) error {
	type entryTotals struct {
		debits  decimal.Decimal
		credits decimal.Decimal
	}
	totals := make(map[uuid.UUID]*entryTotals)
	order := make([]uuid.UUID, 0)

	for _, tx := range txs {
		t, ok := totals[tx.JournalEntryID]
		if !ok {
			t = &entryTotals{}
			totals[tx.JournalEntryID] = t
			order = append(order, tx.JournalEntryID)
		}
		if tx.TxType == TxTypeDebit {
			t.debits = t.debits.Add(tx.Amount)
		} else {
			t.credits = t.credits.Add(tx.Amount)
		}
	}

	for _, id := range order {
		t := totals[id]
		if !t.debits.Equal(t.credits) {
			return UnbalancedEntryError{
				JournalEntryID: id,
				Debits:         t.debits,
				Credits:        t.credits,
			}
		}
	}
	return nil
}

// buildStatement aggregates txs into per-account balances, buckets them by
// classification and rolls up the subtotals in their fixed order. The
// consolidated statement groups by account alone; per-unit segments keep the
// unit on the key and on the rows.
func buildStatement(txs []Transaction, perUnit bool) IncomeStatement {
	type key struct {
		account uuid.UUID
		unit    uuid.UUID
	}
	balances := make(map[key]*AccountBalance)
	order := make([]key, 0)
	class := make(map[key]Classification)

	for _, tx := range txs {
		k := key{account: tx.AccountID}
		if perUnit {
			k.unit = tx.UnitID
		}
		row, ok := balances[k]
		if !ok {
			row = &AccountBalance{
				AccountID:   tx.AccountID,
				Code:        tx.AccountCode,
				Name:        tx.AccountName,
				BalanceType: tx.BalanceType,
			}
			if perUnit {
				row.UnitID = tx.UnitID
				row.UnitName = tx.UnitName
			}
			balances[k] = row
			order = append(order, k)
			class[k] = tx.Classification
		}
		// Signed balance rule: transactions matching the account's natural
		// balance type increase it, opposite transactions reduce it.
		if TxType(row.BalanceType) == tx.TxType {
			row.Balance = row.Balance.Add(tx.Amount)
		} else {
			row.Balance = row.Balance.Sub(tx.Amount)
		}
	}

	var st IncomeStatement
	for _, k := range order {
		row := *balances[k]
		switch class[k] {
		case ClassOperatingRevenue:
			st.Operating.Revenues = append(st.Operating.Revenues, row)
			st.Operating.NetOperatingRevenue = st.Operating.NetOperatingRevenue.Add(row.Balance)
		case ClassOperatingCOGS:
			st.Operating.COGS = append(st.Operating.COGS, row)
			st.Operating.NetCOGS = st.Operating.NetCOGS.Add(row.Balance)
		case ClassOperatingExpense:
			st.Operating.Expenses = append(st.Operating.Expenses, row)
			st.Operating.NetOperatingExpenses = st.Operating.NetOperatingExpenses.Add(row.Balance)
		case ClassOtherRevenue:
			st.Other.Revenues = append(st.Other.Revenues, row)
			st.Other.NetOtherRevenues = st.Other.NetOtherRevenues.Add(row.Balance)
		case ClassOtherExpense:
			st.Other.Expenses = append(st.Other.Expenses, row)
			st.Other.NetOtherExpenses = st.Other.NetOtherExpenses.Add(row.Balance)
		default:
			// Balance sheet accounts stay off the income statement.
		}
	}

	sortRows(st.Operating.Revenues)
	sortRows(st.Operating.COGS)
	sortRows(st.Operating.Expenses)
	sortRows(st.Other.Revenues)
	sortRows(st.Other.Expenses)

	st.Operating.GrossProfit = st.Operating.NetOperatingRevenue.Sub(st.Operating.NetCOGS)
	st.Operating.NetOperatingIncome = st.Operating.GrossProfit.Sub(st.Operating.NetOperatingExpenses)
	st.Other.NetOtherIncome = st.Other.NetOtherRevenues.Sub(st.Other.NetOtherExpenses)
	st.NetIncome = st.Operating.NetOperatingIncome.Add(st.Other.NetOtherIncome)

	return st
}

// buildUnitSegments repeats the statement roll-up independently per entity
// unit. Transactions whose entries carry no unit form a trailing segment
// with a nil unit ID.
func buildUnitSegments(txs []Transaction) []UnitSegment {
	byUnit := make(map[uuid.UUID][]Transaction)
	names := make(map[uuid.UUID]string)
	for _, tx := range txs {
		byUnit[tx.UnitID] = append(byUnit[tx.UnitID], tx)
		if tx.UnitID != uuid.Nil {
			names[tx.UnitID] = tx.UnitName
		}
	}

	segments := make([]UnitSegment, 0, len(byUnit))
	for unitID, unitTxs := range byUnit {
		segments = append(segments, UnitSegment{
			UnitID:          unitID,
			UnitName:        names[unitID],
			IncomeStatement: buildStatement(unitTxs, true),
		})
	}

	sort.Slice(segments, func(i, j int) bool {
		// Unassigned segment sorts last.
		if (segments[i].UnitID == uuid.Nil) != (segments[j].UnitID == uuid.Nil) {
			return segments[j].UnitID == uuid.Nil
		}
		if segments[i].UnitName != segments[j].UnitName {
			return segments[i].UnitName < segments[j].UnitName
		}
		return segments[i].UnitID.String() < segments[j].UnitID.String()
	})

	return segments
}

func sortRows(rows []AccountBalance) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Code != rows[j].Code {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].UnitName < rows[j].UnitName
	})
}
