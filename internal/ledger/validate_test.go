package ledger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/model"
	"github.com/Veraticus/money-manager/internal/testutil"
	"github.com/Veraticus/money-manager/internal/testutil/categories"
)

func TestValidatorCategory(t *testing.T) {
	l := testutil.SetupLedger(t, nested)
	v := ledger.NewValidator(l.Store)

	t.Run("top-level", func(t *testing.T) {
		got, err := v.Category(ledger.CategoryInput{Name: "  Bonus ", Type: model.CategoryTypeIncome})
		require.NoError(t, err)
		assert.Equal(t, "Bonus", got.Name)
		assert.Equal(t, model.CategoryTypeIncome, got.Type)
	})

	t.Run("sub-category inherits parent type", func(t *testing.T) {
		got, err := v.Category(ledger.CategoryInput{Name: "Utilities", ParentID: l.ID(categories.CategoryLiving)})
		require.NoError(t, err)
		assert.Equal(t, model.CategoryTypeExpense, got.Type)
	})

	tests := []struct {
		in   ledger.CategoryInput
		want error
		name string
	}{
		{name: "blank name", in: ledger.CategoryInput{Name: "   ", Type: model.CategoryTypeIncome}, want: ledger.ErrEmptyName},
		{name: "missing type", in: ledger.CategoryInput{Name: "Misc"}, want: ledger.ErrInvalidType},
		{name: "unknown type", in: ledger.CategoryInput{Name: "Misc", Type: "asset"}, want: ledger.ErrInvalidType},
		{name: "missing parent", in: ledger.CategoryInput{Name: "Misc", ParentID: "nope"}, want: ledger.ErrCategoryNotFound},
		{name: "grandchild", in: ledger.CategoryInput{Name: "Deep", ParentID: l.ID(categories.CategoryRent)}, want: ledger.ErrNestedSubcategory},
		{
			name: "type disagrees with parent",
			in:   ledger.CategoryInput{Name: "Misc", Type: model.CategoryTypeIncome, ParentID: l.ID(categories.CategoryLiving)},
			want: ledger.ErrCategoryTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Category(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidatorTransaction(t *testing.T) {
	l := testutil.SetupLedger(t, nested)
	v := ledger.NewValidator(l.Store)
	date := testutil.Date(2024, 3, 1)

	t.Run("income with sub-category", func(t *testing.T) {
		l.Store.AddCategory(context.Background(), "Bonus", model.CategoryTypeIncome, l.ID(categories.CategorySalary))
		bonus := l.Store.Subcategories(l.ID(categories.CategorySalary))[0]

		got, err := v.Transaction(ledger.TransactionInput{
			Type:          model.TransactionTypeIncome,
			Amount:        amount("5000"),
			Date:          date,
			CategoryID:    l.ID(categories.CategorySalary),
			SubcategoryID: bonus.ID,
			Note:          "  March  ",
		})
		require.NoError(t, err)
		assert.Equal(t, model.Income{CategoryID: l.ID(categories.CategorySalary), SubcategoryID: bonus.ID}, got.Entry)
		assert.Equal(t, "March", got.Note)
	})

	t.Run("expense", func(t *testing.T) {
		got, err := v.Transaction(ledger.TransactionInput{
			Type:       model.TransactionTypeExpense,
			Amount:     amount("12.40"),
			Date:       date,
			CategoryID: l.ID(categories.CategoryFood),
		})
		require.NoError(t, err)
		assert.Equal(t, model.TransactionTypeExpense, got.Entry.Kind())
	})

	t.Run("transfer", func(t *testing.T) {
		got, err := v.Transaction(ledger.TransactionInput{
			Type:            model.TransactionTypeTransfer,
			Amount:          amount("500"),
			Date:            date,
			FromCategoryID:  l.ID(categories.CategoryCash),
			ToCategoryID:    l.ID(categories.CategoryBank),
			ToSubcategoryID: l.ID(categories.CategorySavings),
		})
		require.NoError(t, err)
		assert.Equal(t, model.Transfer{
			FromCategoryID:  l.ID(categories.CategoryCash),
			ToCategoryID:    l.ID(categories.CategoryBank),
			ToSubcategoryID: l.ID(categories.CategorySavings),
		}, got.Entry)
	})

	tests := []struct {
		in   ledger.TransactionInput
		want error
		name string
	}{
		{
			name: "zero amount",
			in:   ledger.TransactionInput{Type: model.TransactionTypeIncome, Amount: amount("0"), Date: date, CategoryID: l.ID(categories.CategorySalary)},
			want: ledger.ErrNonPositiveAmount,
		},
		{
			name: "negative amount",
			in:   ledger.TransactionInput{Type: model.TransactionTypeExpense, Amount: amount("-3"), Date: date, CategoryID: l.ID(categories.CategoryFood)},
			want: ledger.ErrNonPositiveAmount,
		},
		{
			name: "unknown type",
			in:   ledger.TransactionInput{Type: "refund", Amount: amount("1"), Date: date, CategoryID: l.ID(categories.CategoryFood)},
			want: ledger.ErrInvalidType,
		},
		{
			name: "missing date",
			in:   ledger.TransactionInput{Type: model.TransactionTypeExpense, Amount: amount("1"), CategoryID: l.ID(categories.CategoryFood)},
			want: ledger.ErrMissingDate,
		},
		{
			name: "missing category",
			in:   ledger.TransactionInput{Type: model.TransactionTypeExpense, Amount: amount("1"), Date: date},
			want: ledger.ErrMissingCategory,
		},
		{
			name: "category of the wrong type",
			in:   ledger.TransactionInput{Type: model.TransactionTypeIncome, Amount: amount("1"), Date: date, CategoryID: l.ID(categories.CategoryFood)},
			want: ledger.ErrCategoryTypeMismatch,
		},
		{
			name: "unknown category",
			in:   ledger.TransactionInput{Type: model.TransactionTypeExpense, Amount: amount("1"), Date: date, CategoryID: "gone"},
			want: ledger.ErrCategoryNotFound,
		},
		{
			name: "sub-category of another parent",
			in: ledger.TransactionInput{
				Type: model.TransactionTypeExpense, Amount: amount("1"), Date: date,
				CategoryID: l.ID(categories.CategoryFood), SubcategoryID: l.ID(categories.CategoryRent),
			},
			want: ledger.ErrNotSubcategory,
		},
		{
			name: "transfer missing destination",
			in:   ledger.TransactionInput{Type: model.TransactionTypeTransfer, Amount: amount("1"), Date: date, FromCategoryID: l.ID(categories.CategoryCash)},
			want: ledger.ErrMissingCategory,
		},
		{
			name: "transfer to the same account",
			in: ledger.TransactionInput{
				Type: model.TransactionTypeTransfer, Amount: amount("1"), Date: date,
				FromCategoryID: l.ID(categories.CategoryCash), ToCategoryID: l.ID(categories.CategoryCash),
			},
			want: ledger.ErrSameAccount,
		},
		{
			name: "transfer from a non-account",
			in: ledger.TransactionInput{
				Type: model.TransactionTypeTransfer, Amount: amount("1"), Date: date,
				FromCategoryID: l.ID(categories.CategorySalary), ToCategoryID: l.ID(categories.CategoryBank),
			},
			want: ledger.ErrCategoryTypeMismatch,
		},
		{
			name: "note too long",
			in: ledger.TransactionInput{
				Type: model.TransactionTypeExpense, Amount: amount("1"), Date: date,
				CategoryID: l.ID(categories.CategoryFood), Note: strings.Repeat("x", ledger.MaxNoteLength+1),
			},
			want: ledger.ErrNoteTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Transaction(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
