package ofx

import (
	"strings"

	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/model"
)

// Mapping names the categories imported lines are booked against.
type Mapping struct {
	IncomeCategoryID     string
	IncomeSubcategoryID  string
	ExpenseCategoryID    string
	ExpenseSubcategoryID string
}

// ToTransactions books credits as income and debits as expenses. Zero-amount
// lines and repeated FITIDs within an account are skipped; the second return
// value counts them.
func ToTransactions(lines []StatementLine, m Mapping) ([]ledger.TransactionInput, int) {
	seen := make(map[string]bool, len(lines))
	out := make([]ledger.TransactionInput, 0, len(lines))
	skipped := 0

	for _, line := range lines {
		if line.Amount.IsZero() {
			skipped++
			continue
		}
		if line.FITID != "" {
			key := line.AccountID + "/" + line.FITID
			if seen[key] {
				skipped++
				continue
			}
			seen[key] = true
		}

		in := ledger.TransactionInput{
			Date:   line.Date,
			Amount: line.Amount.Abs(),
			Note:   note(line),
		}
		if line.IsCredit() {
			in.Type = model.TransactionTypeIncome
			in.CategoryID = m.IncomeCategoryID
			in.SubcategoryID = m.IncomeSubcategoryID
		} else {
			in.Type = model.TransactionTypeExpense
			in.CategoryID = m.ExpenseCategoryID
			in.SubcategoryID = m.ExpenseSubcategoryID
		}
		out = append(out, in)
	}

	return out, skipped
}

func note(line StatementLine) string {
	parts := make([]string, 0, 2)
	if line.Payee != "" {
		parts = append(parts, line.Payee)
	}
	if line.Memo != "" && !strings.EqualFold(line.Memo, line.Payee) {
		parts = append(parts, line.Memo)
	}

	n := strings.Join(parts, " - ")
	if runes := []rune(n); len(runes) > ledger.MaxNoteLength {
		n = string(runes[:ledger.MaxNoteLength])
	}
	return n
}
