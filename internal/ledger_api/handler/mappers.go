package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/domain/fund"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/unit"
	"github.com/nonprofit-fund-ledger/internal/ledger"
)

func mapAccountToResponse(acc *account.Account) AccountResponse {
	response := AccountResponse{
		ID:             acc.ID.String(),
		EntityID:       acc.EntityID.String(),
		Code:           acc.Code,
		Name:           acc.Name,
		BalanceType:    string(acc.BalanceType),
		Classification: string(acc.Classification),
		Active:         acc.Active,
		CreatedAt:      acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      acc.UpdatedAt.Format(time.RFC3339),
	}
	if acc.UnitID != nil {
		response.UnitID = acc.UnitID.String()
	}
	if acc.FundID != nil {
		response.FundID = acc.FundID.String()
	}
	return response
}

func mapFundToResponse(f *fund.Fund) FundResponse {
	return FundResponse{
		ID:        f.ID.String(),
		EntityID:  f.EntityID.String(),
		Code:      f.Code,
		Name:      f.Name,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
		UpdatedAt: f.UpdatedAt.Format(time.RFC3339),
	}
}

func mapUnitToResponse(u *unit.EntityUnit) UnitResponse {
	return UnitResponse{
		ID:        u.ID.String(),
		EntityID:  u.EntityID.String(),
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func mapEntryToResponse(entry *journal.Entry) JournalEntryResponse {
	debits, credits := entry.Totals()
	response := JournalEntryResponse{
		ID:            entry.ID.String(),
		EntityID:      entry.EntityID.String(),
		Timestamp:     entry.Timestamp.Format(time.RFC3339),
		Description:   entry.Description,
		Status:        string(entry.Status),
		Locked:        entry.Locked,
		FailureReason: entry.FailureReason,
		TotalDebits:   debits.String(),
		TotalCredits:  credits.String(),
		Transactions:  make([]JournalLineResponse, 0, len(entry.Transactions)),
		CreatedAt:     entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     entry.UpdatedAt.Format(time.RFC3339),
	}
	if entry.UnitID != nil {
		response.UnitID = entry.UnitID.String()
	}
	for _, tx := range entry.Transactions {
		line := JournalLineResponse{
			ID:          tx.ID.String(),
			AccountID:   tx.AccountID.String(),
			Type:        string(tx.TxType),
			Amount:      tx.Amount.String(),
			Description: tx.Description,
		}
		if tx.FundID != nil {
			line.FundID = tx.FundID.String()
		}
		response.Transactions = append(response.Transactions, line)
	}
	return response
}

func mapLedgerRowToResponse(row ledger.Transaction) LedgerRowResponse {
	response := LedgerRowResponse{
		JournalEntryID: row.JournalEntryID.String(),
		Posted:         row.EntryPosted,
		Date:           row.Date.Format(time.RFC3339),
		AccountID:      row.AccountID.String(),
		AccountCode:    row.AccountCode,
		AccountName:    row.AccountName,
		Type:           string(row.TxType),
		Amount:         row.Amount.String(),
		UnitName:       row.UnitName,
	}
	if row.UnitID != uuid.Nil {
		response.UnitID = row.UnitID.String()
	}
	if row.FundID != uuid.Nil {
		response.FundID = row.FundID.String()
	}
	return response
}
