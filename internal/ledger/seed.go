package ledger

import "github.com/Veraticus/money-manager/internal/model"

// SeedCategory names a top-level category created for a fresh ledger.
type SeedCategory struct {
	Name string
	Type model.CategoryType
}

// DefaultCategories is the starter set a ledger begins with when nothing was persisted.
var DefaultCategories = []SeedCategory{
	{Name: "Salary", Type: model.CategoryTypeIncome},
	{Name: "Freelance", Type: model.CategoryTypeIncome},
	{Name: "Living", Type: model.CategoryTypeExpense},
	{Name: "Food", Type: model.CategoryTypeExpense},
	{Name: "Cash Wallet", Type: model.CategoryTypeAccount},
	{Name: "Bank Account", Type: model.CategoryTypeAccount},
}
