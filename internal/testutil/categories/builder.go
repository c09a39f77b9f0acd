// Package categories provides test infrastructure for seeding category trees
// into a ledger. Specs are created in the order they were added, which keeps
// insertion-order assertions deterministic.
//
// Example usage:
//
//	cats := categories.NewBuilder(t).
//		WithBasicCategories().
//		WithSubcategory("Rent", categories.CategoryLiving).
//		MustBuild(ctx, store)
package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/model"
)

// CategoryName represents a strongly-typed category name.
type CategoryName string

// String returns the string representation of the category name.
func (c CategoryName) String() string {
	return string(c)
}

// Common category names used across tests.
const (
	CategorySalary    CategoryName = "Salary"
	CategoryFreelance CategoryName = "Freelance"
	CategoryLiving    CategoryName = "Living"
	CategoryFood      CategoryName = "Food"
	CategoryCash      CategoryName = "Cash"
	CategoryBank      CategoryName = "Bank"
	CategoryRent      CategoryName = "Rent"
	CategoryGroceries CategoryName = "Groceries"
	CategorySavings   CategoryName = "Savings"
)

// Spec describes one category to create. An empty Parent makes it top-level.
type Spec struct {
	Name   CategoryName
	Type   model.CategoryType
	Parent CategoryName
}

// Builder provides a fluent interface for constructing test categories.
type Builder interface {
	// WithCategory adds a top-level category.
	WithCategory(name CategoryName, categoryType model.CategoryType) Builder

	// WithSubcategory adds a sub-category under an earlier-added parent.
	WithSubcategory(name, parent CategoryName) Builder

	// WithBasicCategories adds one income, one expense and two account categories.
	WithBasicCategories() Builder

	// WithFixture adds every spec of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Build creates the categories in store and returns them in creation order.
	Build(ctx context.Context, store *ledger.Store) (Categories, error)

	// MustBuild is Build that fails the test on error.
	MustBuild(ctx context.Context, store *ledger.Store) Categories
}

// Categories represents a collection of created test categories.
type Categories []model.Category

// Find returns the category with the given name, or nil if not found.
func (c Categories) Find(name CategoryName) *model.Category {
	for i := range c {
		if c[i].Name == name.String() {
			return &c[i]
		}
	}
	return nil
}

// MustFind returns the category with the given name, or fails the test if not found.
func (c Categories) MustFind(t *testing.T, name CategoryName) model.Category {
	t.Helper()
	cat := c.Find(name)
	if cat == nil {
		t.Fatalf("category %q not found in test data", name)
	}
	return *cat
}

// ID returns the id of the named category, or fails the test.
func (c Categories) ID(t *testing.T, name CategoryName) string {
	t.Helper()
	return c.MustFind(t, name).ID
}

// categoryBuilder implements the Builder interface.
type categoryBuilder struct {
	t     *testing.T
	specs []Spec
}

// NewBuilder creates a new category builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &categoryBuilder{t: t}
}

func (b *categoryBuilder) WithCategory(name CategoryName, categoryType model.CategoryType) Builder {
	b.specs = append(b.specs, Spec{Name: name, Type: categoryType})
	return b
}

func (b *categoryBuilder) WithSubcategory(name, parent CategoryName) Builder {
	b.specs = append(b.specs, Spec{Name: name, Parent: parent})
	return b
}

func (b *categoryBuilder) WithBasicCategories() Builder {
	return b.WithFixture(FixtureBasic)
}

func (b *categoryBuilder) WithFixture(fixture Fixture) Builder {
	b.specs = append(b.specs, fixture.Specs()...)
	return b
}

func (b *categoryBuilder) Build(ctx context.Context, store *ledger.Store) (Categories, error) {
	b.t.Helper()

	result := make(Categories, 0, len(b.specs))
	for _, spec := range b.specs {
		categoryType := spec.Type
		var parentID string
		if spec.Parent != "" {
			parent := result.Find(spec.Parent)
			if parent == nil {
				return nil, fmt.Errorf("parent %q of %q must be added first", spec.Parent, spec.Name)
			}
			parentID = parent.ID
			categoryType = parent.Type
		}

		created, ok := store.AddCategory(ctx, spec.Name.String(), categoryType, parentID)
		if !ok {
			return nil, fmt.Errorf("failed to create category %q", spec.Name)
		}
		result = append(result, created)
	}

	return result, nil
}

func (b *categoryBuilder) MustBuild(ctx context.Context, store *ledger.Store) Categories {
	b.t.Helper()

	cats, err := b.Build(ctx, store)
	if err != nil {
		b.t.Fatalf("failed to build categories: %v", err)
	}
	return cats
}
