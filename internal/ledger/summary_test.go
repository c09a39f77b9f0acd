package ledger_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/model"
	"github.com/Veraticus/money-manager/internal/testutil"
	"github.com/Veraticus/money-manager/internal/testutil/categories"
)

func TestSummaryScenario(t *testing.T) {
	l := testutil.SetupLedger(t, basic)
	seedScenario(t, l)

	summary := l.Store.Summary()
	assert.True(t, summary.TotalIncome.Equal(amount("5000")), "income %s", summary.TotalIncome)
	assert.True(t, summary.TotalExpense.Equal(amount("1200")), "expense %s", summary.TotalExpense)
	assert.True(t, summary.Balance.Equal(amount("3800")), "balance %s", summary.Balance)
	assert.True(t, summary.TotalTransfer.Equal(amount("500")), "transfer %s", summary.TotalTransfer)
}

func TestSummaryEmpty(t *testing.T) {
	summary := ledger.New().Summary()
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpense.IsZero())
	assert.True(t, summary.TotalTransfer.IsZero())
	assert.True(t, summary.Balance.IsZero())
}

func TestSummaryBalanceIdentity(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		l := testutil.SetupLedger(t, basic)
		income, expense := decimal.Zero, decimal.Zero

		for i := 0; i < 30; i++ {
			value := decimal.New(rng.Int63n(1_000_000)+1, -2)
			var entry model.Entry
			switch rng.Intn(3) {
			case 0:
				entry = model.Income{CategoryID: l.ID(categories.CategorySalary)}
				income = income.Add(value)
			case 1:
				entry = model.Expense{CategoryID: l.ID(categories.CategoryLiving)}
				expense = expense.Add(value)
			default:
				entry = model.Transfer{FromCategoryID: l.ID(categories.CategoryCash), ToCategoryID: l.ID(categories.CategoryBank)}
			}
			l.Store.AddTransaction(ctx, ledger.NewTransaction{Amount: value, Date: testutil.Date(2024, 1, 1), Entry: entry})
		}

		summary := l.Store.Summary()
		assert.True(t, summary.TotalIncome.Equal(income))
		assert.True(t, summary.TotalExpense.Equal(expense))
		assert.True(t, summary.Balance.Equal(summary.TotalIncome.Sub(summary.TotalExpense)))
	}
}

func TestSummaryIgnoresTransfers(t *testing.T) {
	txns := []model.Transaction{
		{Amount: amount("100"), Entry: model.Income{CategoryID: "a"}},
		{Amount: amount("40"), Entry: model.Expense{CategoryID: "b"}},
	}
	before := ledger.Summarize(txns)

	txns = append(txns, model.Transaction{Amount: amount("999.99"), Entry: model.Transfer{FromCategoryID: "c", ToCategoryID: "d"}})
	after := ledger.Summarize(txns)

	assert.True(t, before.TotalIncome.Equal(after.TotalIncome))
	assert.True(t, before.TotalExpense.Equal(after.TotalExpense))
	assert.True(t, before.Balance.Equal(after.Balance))
	assert.True(t, after.TotalTransfer.Equal(amount("999.99")))
}

func TestSummaryUsesExactDecimals(t *testing.T) {
	var txns []model.Transaction
	for i := 0; i < 10; i++ {
		txns = append(txns, model.Transaction{Amount: amount("0.1"), Entry: model.Income{CategoryID: "a"}})
	}

	assert.Equal(t, "1", ledger.Summarize(txns).TotalIncome.String())
}
