package model

import "github.com/shopspring/decimal"

// FinanceState is the aggregate root: categories in insertion order and
// transactions newest-first. It is the unit of persistence.
type FinanceState struct {
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
}

// Clone returns a copy whose slices do not alias the receiver's.
func (s FinanceState) Clone() FinanceState {
	out := FinanceState{
		Categories:   make([]Category, len(s.Categories)),
		Transactions: make([]Transaction, len(s.Transactions)),
	}
	copy(out.Categories, s.Categories)
	copy(out.Transactions, s.Transactions)
	return out
}

// Summary holds totals derived from the transaction list.
// Transfers move money between owned accounts and never touch Balance.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	TotalTransfer decimal.Decimal
	Balance       decimal.Decimal
}
