package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/money-manager/internal/cli"
	"github.com/Veraticus/money-manager/internal/common"
	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage income, expense and account categories",
		Long: `List, add and delete the categories transactions are booked against.

Categories have a type (income, expense or account) and may carry one level of
sub-categories, which always share their parent's type.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categoryType, err := parseCategoryType(typeFlag)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			categories := a.store.Categories()
			if categoryType != "" {
				categories = filterCategories(a.store, categoryType)
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No categories found. Use 'money categories add' to create one."))
				return nil
			}

			fmt.Fprintln(out, cli.CategoryTable(categories))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "only show one type (income, expense, account)")
	return cmd
}

// filterCategories returns the top-level categories of a type, each followed
// by its sub-categories.
func filterCategories(store *ledger.Store, categoryType model.CategoryType) []model.Category {
	var out []model.Category
	for _, parent := range store.CategoriesByType(categoryType, "") {
		out = append(out, parent)
		out = append(out, store.Subcategories(parent.ID)...)
	}
	return out
}

func addCategoryCmd() *cobra.Command {
	var (
		typeFlag   string
		parentFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category or sub-category",
		Long: `Create a category. Top-level categories need --type; sub-categories take
their type from --parent, given as an id or a top-level category name.`,
		Example: `  money categories add "Dividends" --type income
  money categories add Rent --parent Living`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryType, err := parseCategoryType(typeFlag)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			in := ledger.CategoryInput{Name: args[0], Type: categoryType}
			if parentFlag != "" {
				parent, err := resolveCategory(a.store, parentFlag, "", categoryType)
				if err != nil {
					return err
				}
				in.ParentID = parent.ID
			}

			in, err = a.validator.Category(in)
			if err != nil {
				return common.NewUserError("cannot add category", err)
			}

			category, ok := a.store.AddCategory(cmd.Context(), in.Name, in.Type, in.ParentID)
			if !ok {
				return common.NewUserError("cannot add category", ledger.ErrEmptyName)
			}

			msg := fmt.Sprintf("Created %s category %q (ID: %s)", category.Type, category.Name, category.ID)
			if category.IsSubcategory() {
				msg = fmt.Sprintf("Created sub-category %q under %s (ID: %s)", category.Name, a.store.CategoryName(category.ParentID), category.ID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "category type (income, expense, account)")
	cmd.Flags().StringVarP(&parentFlag, "parent", "p", "", "parent category id or name")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id-or-name>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Long: `Delete a category together with its sub-categories and every transaction
that references it directly. With ledger.cascade set to subtree, transactions
referencing the removed sub-categories are deleted as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			// Sub-categories are addressed by id only.
			category, err := resolveCategory(a.store, args[0], "", "")
			if err != nil {
				return err
			}

			removal := a.store.RemoveCategory(cmd.Context(), category.ID)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Deleted %q: %d categories and %d transactions removed",
				category.Name, removal.Categories, removal.Transactions)))
			return nil
		},
	}
}
