package categories

import "github.com/Veraticus/money-manager/internal/model"

// Fixture represents a predefined set of categories for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Specs returns the categories in creation order.
	Specs() []Spec
}

type fixture struct {
	name  string
	specs []Spec
}

func (f *fixture) Name() string { return f.name }
func (f *fixture) Specs() []Spec { return f.specs }

// Predefined fixtures for common test scenarios.
var (
	// FixtureBasic is the Salary / Living / Cash / Bank set.
	FixtureBasic Fixture = &fixture{
		name: "Basic",
		specs: []Spec{
			{Name: CategorySalary, Type: model.CategoryTypeIncome},
			{Name: CategoryLiving, Type: model.CategoryTypeExpense},
			{Name: CategoryCash, Type: model.CategoryTypeAccount},
			{Name: CategoryBank, Type: model.CategoryTypeAccount},
		},
	}

	// FixtureNested adds sub-categories under every type.
	FixtureNested Fixture = &fixture{
		name: "Nested",
		specs: []Spec{
			{Name: CategorySalary, Type: model.CategoryTypeIncome},
			{Name: CategoryFreelance, Type: model.CategoryTypeIncome},
			{Name: CategoryLiving, Type: model.CategoryTypeExpense},
			{Name: CategoryRent, Parent: CategoryLiving},
			{Name: CategoryFood, Type: model.CategoryTypeExpense},
			{Name: CategoryGroceries, Parent: CategoryFood},
			{Name: CategoryCash, Type: model.CategoryTypeAccount},
			{Name: CategoryBank, Type: model.CategoryTypeAccount},
			{Name: CategorySavings, Parent: CategoryBank},
		},
	}
)
