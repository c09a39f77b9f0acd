package model

import "time"

// CategoryType indicates whether a category buckets income, expenses, or holds money.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeAccount represents owned accounts that transfers move money between.
	CategoryTypeAccount CategoryType = "account"
)

// CategoryTypes lists every category type in display order.
var CategoryTypes = []CategoryType{CategoryTypeIncome, CategoryTypeExpense, CategoryTypeAccount}

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeAccount:
		return true
	}
	return false
}

// Category is a named bucket, optionally nested one level under a parent.
// An empty ParentID marks a top-level category.
type Category struct {
	CreatedAt time.Time    `json:"createdAt"`
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	ParentID  string       `json:"parentId"`
}

// IsSubcategory reports whether the category hangs under a parent.
func (c Category) IsSubcategory() bool {
	return c.ParentID != ""
}
