package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/money-manager/internal/model"
)

// CategoryNamer resolves category ids to display names.
type CategoryNamer interface {
	CategoryName(id string) string
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

// CategoryTable lists categories with sub-categories indented under their parent.
func CategoryTable(categories []model.Category) string {
	t := newTable("ID", "Name", "Type")

	children := make(map[string][]model.Category)
	for _, c := range categories {
		if c.IsSubcategory() {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	for _, c := range categories {
		switch {
		case !c.IsSubcategory():
			t.Row(c.ID, c.Name, string(c.Type))
			for _, sub := range children[c.ID] {
				t.Row(sub.ID, "  └ "+sub.Name, string(sub.Type))
			}
		case !known[c.ParentID]:
			// Orphans have no parent row to hang under.
			t.Row(c.ID, c.Name, string(c.Type))
		}
	}

	return t.String()
}

// TransactionTable lists transactions in the order given.
func TransactionTable(txns []model.Transaction, names CategoryNamer, f *Formatter) string {
	t := newTable("ID", "Date", "Type", "Category", "Amount", "Note")

	for _, txn := range txns {
		t.Row(
			txn.ID,
			f.Date(txn.Date),
			string(txn.Type()),
			Placement(txn, names),
			amountStyle(txn.Type()).Render(f.Signed(txn)),
			txn.Note,
		)
	}

	return t.String()
}

// Placement describes where a transaction's money went, e.g. "Living › Rent"
// or "Cash Wallet → Bank Account".
func Placement(txn model.Transaction, names CategoryNamer) string {
	pair := func(categoryID, subcategoryID string) string {
		name := names.CategoryName(categoryID)
		if subcategoryID != "" {
			name += " › " + names.CategoryName(subcategoryID)
		}
		return name
	}

	switch e := txn.Entry.(type) {
	case model.Income:
		return pair(e.CategoryID, e.SubcategoryID)
	case model.Expense:
		return pair(e.CategoryID, e.SubcategoryID)
	case model.Transfer:
		return pair(e.FromCategoryID, e.FromSubcategoryID) + " → " + pair(e.ToCategoryID, e.ToSubcategoryID)
	default:
		return ""
	}
}

// SummaryBox renders the totals in a bordered box.
func SummaryBox(summary model.Summary, f *Formatter) string {
	balanceStyle := IncomeStyle
	if summary.Balance.IsNegative() {
		balanceStyle = ExpenseStyle
	}

	lines := []string{
		"Income:    " + IncomeStyle.Render(f.Amount(summary.TotalIncome)),
		"Expenses:  " + ExpenseStyle.Render(f.Amount(summary.TotalExpense)),
		"Transfers: " + TransferStyle.Render(f.Amount(summary.TotalTransfer)),
		"Balance:   " + balanceStyle.Bold(true).Render(f.Amount(summary.Balance)),
	}

	return RenderBox(WalletIcon+" Summary ("+f.Currency()+")", strings.Join(lines, "\n"))
}

func amountStyle(t model.TransactionType) lipgloss.Style {
	switch t {
	case model.TransactionTypeIncome:
		return IncomeStyle
	case model.TransactionTypeExpense:
		return ExpenseStyle
	default:
		return TransferStyle
	}
}
