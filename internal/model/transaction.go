package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies which kind of money movement a transaction records.
type TransactionType string

// Transaction type constants.
const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionTypes lists every transaction type in display order.
var TransactionTypes = []TransactionType{TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// DateLayout is the calendar date format used for transaction dates.
const DateLayout = "2006-01-02"

// Entry holds the category references of a transaction. Exactly one of
// Income, Expense, or Transfer implements it.
type Entry interface {
	// Kind returns the transaction type this entry records.
	Kind() TransactionType
	// References returns every non-empty category id the entry points at.
	References() []string
}

// Income records money received into an income category.
type Income struct {
	CategoryID    string
	SubcategoryID string
}

// Kind implements Entry.
func (Income) Kind() TransactionType { return TransactionTypeIncome }

// References implements Entry.
func (e Income) References() []string {
	return nonEmpty(e.CategoryID, e.SubcategoryID)
}

// Expense records money spent against an expense category.
type Expense struct {
	CategoryID    string
	SubcategoryID string
}

// Kind implements Entry.
func (Expense) Kind() TransactionType { return TransactionTypeExpense }

// References implements Entry.
func (e Expense) References() []string {
	return nonEmpty(e.CategoryID, e.SubcategoryID)
}

// Transfer moves money between two account categories.
type Transfer struct {
	FromCategoryID    string
	FromSubcategoryID string
	ToCategoryID      string
	ToSubcategoryID   string
}

// Kind implements Entry.
func (Transfer) Kind() TransactionType { return TransactionTypeTransfer }

// References implements Entry.
func (e Transfer) References() []string {
	return nonEmpty(e.FromCategoryID, e.FromSubcategoryID, e.ToCategoryID, e.ToSubcategoryID)
}

// Transaction is a single recorded income, expense, or transfer.
type Transaction struct {
	Date      time.Time // calendar date chosen by the user, midnight UTC
	CreatedAt time.Time
	Entry     Entry
	Amount    decimal.Decimal
	ID        string
	Note      string
}

// Type returns the transaction type derived from its entry.
func (t Transaction) Type() TransactionType {
	if t.Entry == nil {
		return ""
	}
	return t.Entry.Kind()
}

// References reports whether the transaction points at the category id.
func (t Transaction) References(categoryID string) bool {
	if t.Entry == nil || categoryID == "" {
		return false
	}
	for _, ref := range t.Entry.References() {
		if ref == categoryID {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func nonEmpty(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
