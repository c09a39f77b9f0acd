package ledger

import (
	"fmt"

	"github.com/Veraticus/money-manager/internal/common"
)

// CascadePolicy decides which transactions RemoveCategory deletes.
type CascadePolicy string

const (
	// CascadeDirect removes only transactions referencing the removed id itself.
	// Transactions that reference just one of its sub-categories survive with a
	// dangling reference and display as Unassigned.
	CascadeDirect CascadePolicy = "direct"
	// CascadeSubtree also removes transactions referencing any sub-category
	// removed in the same call.
	CascadeSubtree CascadePolicy = "subtree"
)

// ParseCascadePolicy maps a configured name onto a policy. Empty means CascadeDirect.
func ParseCascadePolicy(s string) (CascadePolicy, error) {
	switch CascadePolicy(s) {
	case CascadeDirect, "":
		return CascadeDirect, nil
	case CascadeSubtree:
		return CascadeSubtree, nil
	default:
		return "", fmt.Errorf("%w: cascade policy %q", common.ErrInvalidConfig, s)
	}
}
