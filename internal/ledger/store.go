// Package ledger owns the in-memory finance state: the category tree, the
// transaction list, and the totals derived from them.
//
// A Store is built once per process with New or Open and handed to every
// caller. Add operations are silent no-ops on structurally invalid input;
// reference and type checks live in Validator so that callers can explain a
// rejection before mutating anything.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-manager/internal/model"
)

// UnassignedName is shown for a category reference that no longer resolves.
const UnassignedName = "Unassigned"

// Persister is the durable boundary of the store. Implementations swallow
// their own failures.
type Persister interface {
	Load(ctx context.Context) (model.FinanceState, bool)
	Save(ctx context.Context, state model.FinanceState)
}

// NewTransaction carries the caller-supplied fields of a transaction.
type NewTransaction struct {
	Date   time.Time
	Entry  model.Entry
	Amount decimal.Decimal
	Note   string
}

// Removal reports how many records a RemoveCategory call deleted.
type Removal struct {
	Categories   int
	Transactions int
}

// Option configures a Store.
type Option func(*Store)

// WithCascade sets the policy RemoveCategory applies to transactions.
func WithCascade(policy CascadePolicy) Option {
	return func(s *Store) {
		s.cascade = policy
	}
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the uuid generator for new records.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithSeed sets the categories a store starts with before any load.
func WithSeed(seed []SeedCategory) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

// Store is the canonical finance state and its only mutation surface.
type Store struct {
	persister Persister
	now       func() time.Time
	newID     func() string
	cascade   CascadePolicy
	state     model.FinanceState
	seed      []SeedCategory
	mu        sync.RWMutex
	loaded    bool
}

// New creates a store that is not backed by any durable medium.
func New(opts ...Option) *Store {
	s := &Store{
		cascade: CascadeDirect,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, c := range s.seed {
		s.state.Categories = append(s.state.Categories, s.newCategory(c.Name, c.Type, ""))
	}

	// Without a persister there is nothing a save could clobber.
	s.loaded = true
	return s
}

// Open creates a store backed by p. It performs the single load attempt
// before returning, so no save can ever precede it. When p holds a state it
// replaces the seed; otherwise a non-empty seed is saved right away so its
// ids stay stable across processes.
func Open(ctx context.Context, p Persister, opts ...Option) *Store {
	s := New(opts...)
	s.persister = p
	s.loaded = false

	state, ok := p.Load(ctx)
	s.loaded = true

	if ok {
		s.state = state
		slog.Debug("hydrated ledger from storage",
			"categories", len(state.Categories),
			"transactions", len(state.Transactions))
		return s
	}

	if len(s.state.Categories) > 0 {
		s.mu.Lock()
		s.persist(ctx)
		s.mu.Unlock()
		slog.Debug("saved seed categories", "categories", len(s.state.Categories))
	}
	return s
}

// Hydrate replaces the whole state. The incoming state is not validated.
func (s *Store) Hydrate(ctx context.Context, state model.FinanceState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()
	s.persist(ctx)
}

// AddCategory appends a category. A blank name is a no-op and returns false.
// parentID is not checked for existence or type agreement.
func (s *Store) AddCategory(ctx context.Context, name string, categoryType model.CategoryType, parentID string) (model.Category, bool) {
	if strings.TrimSpace(name) == "" {
		return model.Category{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category := s.newCategory(name, categoryType, parentID)
	s.state.Categories = append(s.state.Categories, category)
	s.persist(ctx)

	return category, true
}

// RemoveCategory deletes the category, its direct sub-categories, and the
// transactions selected by the store's cascade policy.
func (s *Store) RemoveCategory(ctx context.Context, id string) Removal {
	s.mu.Lock()
	defer s.mu.Unlock()

	removedIDs := map[string]bool{id: true}
	kept := make([]model.Category, 0, len(s.state.Categories))
	for _, c := range s.state.Categories {
		if c.ID == id || (c.ParentID != "" && c.ParentID == id) {
			removedIDs[c.ID] = true
			continue
		}
		kept = append(kept, c)
	}

	removal := Removal{Categories: len(s.state.Categories) - len(kept)}

	keptTxns := make([]model.Transaction, 0, len(s.state.Transactions))
	for _, txn := range s.state.Transactions {
		if s.cascades(txn, id, removedIDs) {
			continue
		}
		keptTxns = append(keptTxns, txn)
	}
	removal.Transactions = len(s.state.Transactions) - len(keptTxns)

	if removal.Categories == 0 && removal.Transactions == 0 {
		return removal
	}

	s.state.Categories = kept
	s.state.Transactions = keptTxns
	s.persist(ctx)

	slog.Debug("removed category",
		"id", id,
		"categories", removal.Categories,
		"transactions", removal.Transactions,
		"cascade", string(s.cascade))
	return removal
}

func (s *Store) cascades(txn model.Transaction, id string, removedIDs map[string]bool) bool {
	if txn.References(id) {
		return true
	}
	if s.cascade != CascadeSubtree || txn.Entry == nil {
		return false
	}
	for _, ref := range txn.Entry.References() {
		if removedIDs[ref] {
			return true
		}
	}
	return false
}

// AddTransaction prepends a transaction so the list reads newest-first.
// References are not checked; a nil entry is a no-op and returns false.
func (s *Store) AddTransaction(ctx context.Context, in NewTransaction) (model.Transaction, bool) {
	if in.Entry == nil {
		return model.Transaction{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txn := model.Transaction{
		ID:        s.newID(),
		Amount:    in.Amount,
		Date:      in.Date,
		Note:      in.Note,
		CreatedAt: s.timestamp(),
		Entry:     in.Entry,
	}

	transactions := make([]model.Transaction, 0, len(s.state.Transactions)+1)
	transactions = append(transactions, txn)
	s.state.Transactions = append(transactions, s.state.Transactions...)
	s.persist(ctx)

	return txn, true
}

// RemoveTransaction deletes one transaction. It reports false for an unknown id.
func (s *Store) RemoveTransaction(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, txn := range s.state.Transactions {
		if txn.ID != id {
			continue
		}
		transactions := make([]model.Transaction, 0, len(s.state.Transactions)-1)
		transactions = append(transactions, s.state.Transactions[:i]...)
		s.state.Transactions = append(transactions, s.state.Transactions[i+1:]...)
		s.persist(ctx)
		return true
	}
	return false
}

// CategoriesByType returns categories of the type whose parent is exactly
// parentID. An empty parentID selects top-level categories.
func (s *Store) CategoriesByType(categoryType model.CategoryType, parentID string) []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Category
	for _, c := range s.state.Categories {
		if c.Type == categoryType && c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out
}

// Subcategories returns every category under parentID regardless of type.
func (s *Store) Subcategories(parentID string) []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Category
	for _, c := range s.state.Categories {
		if c.ParentID != "" && c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out
}

// Summary recomputes the totals over every transaction.
func (s *Store) Summary() model.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Summarize(s.state.Transactions)
}

// State returns a copy of the whole state.
func (s *Store) State() model.FinanceState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Categories returns all categories in insertion order.
func (s *Store) Categories() []model.Category {
	return s.State().Categories
}

// Transactions returns transactions newest-first, filtered to txnType unless
// it is empty.
func (s *Store) Transactions(txnType model.TransactionType) []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Transaction, 0, len(s.state.Transactions))
	for _, txn := range s.state.Transactions {
		if txnType == "" || txn.Type() == txnType {
			out = append(out, txn)
		}
	}
	return out
}

// Category looks up a category by id.
func (s *Store) Category(id string) (model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.state.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoryName resolves id to a display name, falling back to UnassignedName.
func (s *Store) CategoryName(id string) string {
	if c, ok := s.Category(id); ok {
		return c.Name
	}
	return UnassignedName
}

func (s *Store) newCategory(name string, categoryType model.CategoryType, parentID string) model.Category {
	return model.Category{
		ID:        s.newID(),
		Name:      name,
		Type:      categoryType,
		ParentID:  parentID,
		CreatedAt: s.timestamp(),
	}
}

// timestamp matches the millisecond precision of the persisted layout.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) {
	if s.persister == nil || !s.loaded {
		return
	}
	s.persister.Save(ctx, s.state.Clone())
}
