package handler

// CreateAccountRequest represents a request to create a chart-of-accounts
// account. Classification is optional; an empty value marks a balance sheet
// account that never appears on the income statement.
type CreateAccountRequest struct {
	EntityID       string `json:"entity_id" binding:"required,uuid"`
	Code           string `json:"code" binding:"required"`
	Name           string `json:"name" binding:"required"`
	BalanceType    string `json:"balance_type" binding:"required,oneof=debit credit"`
	Classification string `json:"classification" binding:"omitempty,oneof=operating_revenue operating_cogs operating_expense other_revenue other_expense none"`
	UnitID         string `json:"unit_id" binding:"omitempty,uuid"`
	FundID         string `json:"fund_id" binding:"omitempty,uuid"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             string `json:"id"`
	EntityID       string `json:"entity_id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	BalanceType    string `json:"balance_type"`
	Classification string `json:"classification"`
	UnitID         string `json:"unit_id,omitempty"`
	FundID         string `json:"fund_id,omitempty"`
	Active         bool   `json:"active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// CreateFundRequest represents a request to create a fund
type CreateFundRequest struct {
	EntityID string `json:"entity_id" binding:"required,uuid"`
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// FundResponse represents a fund in API responses
type FundResponse struct {
	ID        string `json:"id"`
	EntityID  string `json:"entity_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateUnitRequest represents a request to create an entity unit
type CreateUnitRequest struct {
	EntityID string `json:"entity_id" binding:"required,uuid"`
	Name     string `json:"name" binding:"required"`
}

// UnitResponse represents an entity unit in API responses
type UnitResponse struct {
	ID        string `json:"id"`
	EntityID  string `json:"entity_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// JournalLineRequest is one debit or credit leg of a journal entry request.
// Amount is a fixed-point decimal string; binary floats never enter the API.
type JournalLineRequest struct {
	AccountID   string `json:"account_id" binding:"required,uuid"`
	Type        string `json:"type" binding:"required,oneof=debit credit"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description,omitempty"`
	FundID      string `json:"fund_id" binding:"omitempty,uuid"`
}

// CreateJournalEntryRequest represents a request to create a draft journal entry
type CreateJournalEntryRequest struct {
	EntityID     string               `json:"entity_id" binding:"required,uuid"`
	Timestamp    string               `json:"timestamp" binding:"required"`
	Description  string               `json:"description,omitempty"`
	UnitID       string               `json:"unit_id" binding:"omitempty,uuid"`
	Transactions []JournalLineRequest `json:"transactions" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest replaces a draft journal entry's header and
// transaction set
type UpdateJournalEntryRequest struct {
	Timestamp    string               `json:"timestamp" binding:"required"`
	Description  string               `json:"description,omitempty"`
	UnitID       string               `json:"unit_id" binding:"omitempty,uuid"`
	Transactions []JournalLineRequest `json:"transactions" binding:"required,min=2,dive"`
}

// FundTransferRequest represents a request to move an amount between funds.
// The transfer is recorded as one balanced journal entry whose legs carry the
// source and target fund tags.
type FundTransferRequest struct {
	EntityID        string `json:"entity_id" binding:"required,uuid"`
	FromFundID      string `json:"from_fund_id" binding:"required,uuid"`
	ToFundID        string `json:"to_fund_id" binding:"required,uuid"`
	SourceAccountID string `json:"source_account_id" binding:"required,uuid"`
	TargetAccountID string `json:"target_account_id" binding:"required,uuid"`
	Amount          string `json:"amount" binding:"required"`
	Timestamp       string `json:"timestamp" binding:"required"`
	Description     string `json:"description,omitempty"`
}

// JournalLineResponse represents one transaction leg in API responses
type JournalLineResponse struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	FundID      string `json:"fund_id,omitempty"`
}

// JournalEntryResponse represents a journal entry in API responses
type JournalEntryResponse struct {
	ID            string                `json:"id"`
	EntityID      string                `json:"entity_id"`
	Timestamp     string                `json:"timestamp"`
	Description   string                `json:"description,omitempty"`
	UnitID        string                `json:"unit_id,omitempty"`
	Status        string                `json:"status"`
	Locked        bool                  `json:"locked"`
	FailureReason string                `json:"failure_reason,omitempty"`
	TotalDebits   string                `json:"total_debits"`
	TotalCredits  string                `json:"total_credits"`
	Transactions  []JournalLineResponse `json:"transactions"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// LedgerRowResponse represents one materialized ledger row in API responses
type LedgerRowResponse struct {
	JournalEntryID string `json:"journal_entry_id"`
	Posted         bool   `json:"posted"`
	Date           string `json:"date"`
	AccountID      string `json:"account_id"`
	AccountCode    string `json:"account_code"`
	AccountName    string `json:"account_name"`
	Type           string `json:"type"`
	Amount         string `json:"amount"`
	UnitID         string `json:"unit_id,omitempty"`
	UnitName       string `json:"unit_name,omitempty"`
	FundID         string `json:"fund_id,omitempty"`
}

// DigestParams represents the query parameters of a digest request.
// Dates use the 2006-01-02 layout.
type DigestParams struct {
	EntityID string `form:"entity_id" binding:"required,uuid"`
	FromDate string `form:"from_date" binding:"required"`
	ToDate   string `form:"to_date" binding:"required"`
	UnitID   string `form:"unit_id" binding:"omitempty,uuid"`
	FundID   string `form:"fund_id" binding:"omitempty,uuid"`
	ByUnit   bool   `form:"by_unit"`
}

// SummaryParams represents the query parameters of a debit/credit summary request
type SummaryParams struct {
	EntityID string `form:"entity_id" binding:"required,uuid"`
	FromDate string `form:"from_date" binding:"required"`
	ToDate   string `form:"to_date" binding:"required"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
