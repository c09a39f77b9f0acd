package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownTransactionType is returned when a persisted transaction carries an unknown type.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

type categoryJSON struct {
	CreatedAt time.Time    `json:"createdAt"`
	ParentID  *string      `json:"parentId"`
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
}

// MarshalJSON writes a top-level category with a null parentId.
func (c Category) MarshalJSON() ([]byte, error) {
	out := categoryJSON{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
	}
	if c.ParentID != "" {
		parent := c.ParentID
		out.ParentID = &parent
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts a null, empty, or missing parentId as top-level.
func (c *Category) UnmarshalJSON(data []byte) error {
	var in categoryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Category{
		ID:        in.ID,
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: in.CreatedAt,
	}
	if in.ParentID != nil {
		c.ParentID = *in.ParentID
	}
	return nil
}

// transactionJSON is the flat persisted record; only the fields of the
// transaction's own type are populated.
type transactionJSON struct {
	CreatedAt         time.Time       `json:"createdAt"`
	Amount            json.RawMessage `json:"amount"`
	ID                string          `json:"id"`
	Type              TransactionType `json:"type"`
	Date              string          `json:"date"`
	CategoryID        string          `json:"categoryId,omitempty"`
	SubcategoryID     string          `json:"subcategoryId,omitempty"`
	FromCategoryID    string          `json:"fromCategoryId,omitempty"`
	FromSubcategoryID string          `json:"fromSubcategoryId,omitempty"`
	ToCategoryID      string          `json:"toCategoryId,omitempty"`
	ToSubcategoryID   string          `json:"toSubcategoryId,omitempty"`
	Note              string          `json:"note,omitempty"`
}

// MarshalJSON flattens the entry into the persisted record layout.
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := transactionJSON{
		ID:        t.ID,
		Type:      t.Type(),
		Amount:    json.RawMessage(t.Amount.String()),
		Date:      t.Date.Format(DateLayout),
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
	}

	switch e := t.Entry.(type) {
	case Income:
		out.CategoryID, out.SubcategoryID = e.CategoryID, e.SubcategoryID
	case Expense:
		out.CategoryID, out.SubcategoryID = e.CategoryID, e.SubcategoryID
	case Transfer:
		out.FromCategoryID, out.FromSubcategoryID = e.FromCategoryID, e.FromSubcategoryID
		out.ToCategoryID, out.ToSubcategoryID = e.ToCategoryID, e.ToSubcategoryID
	default:
		return nil, fmt.Errorf("%w: transaction %s has no entry", ErrUnknownTransactionType, t.ID)
	}

	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the entry variant from the record's type field.
// Amounts are accepted both as JSON numbers and as quoted decimals.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var in transactionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(in.Amount); err != nil {
		return fmt.Errorf("transaction %s: invalid amount: %w", in.ID, err)
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return fmt.Errorf("transaction %s: invalid date: %w", in.ID, err)
	}

	var entry Entry
	switch in.Type {
	case TransactionTypeIncome:
		entry = Income{CategoryID: in.CategoryID, SubcategoryID: in.SubcategoryID}
	case TransactionTypeExpense:
		entry = Expense{CategoryID: in.CategoryID, SubcategoryID: in.SubcategoryID}
	case TransactionTypeTransfer:
		entry = Transfer{
			FromCategoryID:    in.FromCategoryID,
			FromSubcategoryID: in.FromSubcategoryID,
			ToCategoryID:      in.ToCategoryID,
			ToSubcategoryID:   in.ToSubcategoryID,
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransactionType, in.Type)
	}

	*t = Transaction{
		ID:        in.ID,
		Amount:    amount,
		Date:      date,
		Note:      in.Note,
		CreatedAt: in.CreatedAt,
		Entry:     entry,
	}
	return nil
}
