package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-manager/internal/model"
)

// Summarize totals the transactions. Balance is income minus expense;
// transfers are totalled separately.
func Summarize(transactions []model.Transaction) model.Summary {
	summary := model.Summary{
		TotalIncome:   decimal.Zero,
		TotalExpense:  decimal.Zero,
		TotalTransfer: decimal.Zero,
	}

	for _, txn := range transactions {
		switch txn.Type() {
		case model.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(txn.Amount)
		case model.TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(txn.Amount)
		case model.TransactionTypeTransfer:
			summary.TotalTransfer = summary.TotalTransfer.Add(txn.Amount)
		}
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}
