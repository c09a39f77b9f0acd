package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-manager/internal/model"
)

// Validation errors.
var (
	ErrEmptyName            = errors.New("name cannot be empty")
	ErrInvalidType          = errors.New("invalid type")
	ErrMissingDate          = errors.New("date is required")
	ErrNonPositiveAmount    = errors.New("amount must be greater than zero")
	ErrMissingCategory      = errors.New("category is required")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryTypeMismatch = errors.New("category type does not match")
	ErrNotSubcategory       = errors.New("not a sub-category of the selected category")
	ErrNestedSubcategory    = errors.New("sub-categories cannot have sub-categories")
	ErrSameAccount          = errors.New("transfer accounts must differ")
	ErrNoteTooLong          = errors.New("note is too long")
)

// MaxNoteLength bounds the free-text note on a transaction.
const MaxNoteLength = 500

// CategoryInput is a request to create a category. With a ParentID the type
// is taken from the parent and Type may be left empty.
type CategoryInput struct {
	Name     string             `validate:"required"`
	Type     model.CategoryType `validate:"required_without=ParentID"`
	ParentID string
}

// TransactionInput is a request to record a transaction, in the flat shape a
// form or command line produces.
type TransactionInput struct {
	Date              time.Time             `validate:"required"`
	Amount            decimal.Decimal       `validate:"-"`
	Type              model.TransactionType `validate:"required,oneof=income expense transfer"`
	CategoryID        string                `validate:"required_unless=Type transfer"`
	SubcategoryID     string
	FromCategoryID    string `validate:"required_if=Type transfer"`
	FromSubcategoryID string
	ToCategoryID      string `validate:"required_if=Type transfer"`
	ToSubcategoryID   string
	Note              string `validate:"max=500"`
}

// Validator checks inputs against the store's current categories before they
// reach an add operation.
type Validator struct {
	validate *validator.Validate
	store    *Store
}

// NewValidator creates a validator reading categories from store.
func NewValidator(store *Store) *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		store:    store,
	}
}

// Category validates in and returns it resolved: name trimmed and, for a
// sub-category, type inherited from the parent.
func (v *Validator) Category(in CategoryInput) (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ParentID = strings.TrimSpace(in.ParentID)

	if err := v.validate.Struct(in); err != nil {
		return in, translate(err)
	}
	if in.Type != "" && !in.Type.Valid() {
		return in, fmt.Errorf("%w: %q", ErrInvalidType, in.Type)
	}

	if in.ParentID == "" {
		return in, nil
	}

	parent, ok := v.store.Category(in.ParentID)
	if !ok {
		return in, fmt.Errorf("%w: parent %s", ErrCategoryNotFound, in.ParentID)
	}
	if parent.IsSubcategory() {
		return in, fmt.Errorf("%w: %s is under %s", ErrNestedSubcategory, parent.Name, v.store.CategoryName(parent.ParentID))
	}
	if in.Type != "" && in.Type != parent.Type {
		return in, fmt.Errorf("%w: parent %s is %s, not %s", ErrCategoryTypeMismatch, parent.Name, parent.Type, in.Type)
	}

	in.Type = parent.Type
	return in, nil
}

// Transaction validates in and converts it into the entry variant for its type.
func (v *Validator) Transaction(in TransactionInput) (NewTransaction, error) {
	in.Note = strings.TrimSpace(in.Note)

	if err := v.validate.Struct(in); err != nil {
		return NewTransaction{}, translate(err)
	}
	if !in.Amount.IsPositive() {
		return NewTransaction{}, fmt.Errorf("%w: %s", ErrNonPositiveAmount, in.Amount.String())
	}

	out := NewTransaction{
		Amount: in.Amount,
		Date:   in.Date,
		Note:   in.Note,
	}

	switch in.Type {
	case model.TransactionTypeIncome, model.TransactionTypeExpense:
		want := model.CategoryTypeIncome
		if in.Type == model.TransactionTypeExpense {
			want = model.CategoryTypeExpense
		}
		if err := v.checkPair(in.CategoryID, in.SubcategoryID, want); err != nil {
			return NewTransaction{}, err
		}
		if in.Type == model.TransactionTypeIncome {
			out.Entry = model.Income{CategoryID: in.CategoryID, SubcategoryID: in.SubcategoryID}
		} else {
			out.Entry = model.Expense{CategoryID: in.CategoryID, SubcategoryID: in.SubcategoryID}
		}

	case model.TransactionTypeTransfer:
		if in.FromCategoryID == in.ToCategoryID {
			return NewTransaction{}, fmt.Errorf("%w: %s", ErrSameAccount, v.store.CategoryName(in.FromCategoryID))
		}
		if err := v.checkPair(in.FromCategoryID, in.FromSubcategoryID, model.CategoryTypeAccount); err != nil {
			return NewTransaction{}, fmt.Errorf("from: %w", err)
		}
		if err := v.checkPair(in.ToCategoryID, in.ToSubcategoryID, model.CategoryTypeAccount); err != nil {
			return NewTransaction{}, fmt.Errorf("to: %w", err)
		}
		out.Entry = model.Transfer{
			FromCategoryID:    in.FromCategoryID,
			FromSubcategoryID: in.FromSubcategoryID,
			ToCategoryID:      in.ToCategoryID,
			ToSubcategoryID:   in.ToSubcategoryID,
		}
	}

	return out, nil
}

// checkPair verifies a top-level category of the wanted type and, if given,
// one of its sub-categories.
func (v *Validator) checkPair(categoryID, subcategoryID string, want model.CategoryType) error {
	category, ok := v.store.Category(categoryID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}
	if category.IsSubcategory() {
		return fmt.Errorf("%w: %s is a sub-category", ErrMissingCategory, category.Name)
	}
	if category.Type != want {
		return fmt.Errorf("%w: %s is %s, want %s", ErrCategoryTypeMismatch, category.Name, category.Type, want)
	}

	if subcategoryID == "" {
		return nil
	}
	sub, ok := v.store.Category(subcategoryID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, subcategoryID)
	}
	if sub.ParentID != category.ID {
		return fmt.Errorf("%w: %s under %s", ErrNotSubcategory, sub.Name, category.Name)
	}
	return nil
}

// translate maps the first validator failure onto a package error.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		return ErrEmptyName
	case "Type":
		return fmt.Errorf("%w: %q", ErrInvalidType, fe.Value())
	case "Date":
		return ErrMissingDate
	case "CategoryID", "FromCategoryID", "ToCategoryID":
		return fmt.Errorf("%w: %s", ErrMissingCategory, fe.Field())
	case "Note":
		return fmt.Errorf("%w: max %d characters", ErrNoteTooLong, MaxNoteLength)
	default:
		return fmt.Errorf("invalid %s: %w", fe.Field(), err)
	}
}
