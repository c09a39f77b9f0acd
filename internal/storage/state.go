package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Veraticus/money-manager/internal/model"
)

// StateKey is the fixed key the finance state is stored under.
const StateKey = "money-manager-state"

// StateStore persists the whole FinanceState as one JSON blob.
// Neither Load nor Save ever report failure to the caller.
type StateStore struct {
	kv  KV
	key string
}

// NewStateStore wraps kv, storing the state under StateKey.
func NewStateStore(kv KV) *StateStore {
	return &StateStore{kv: kv, key: StateKey}
}

// Load returns the persisted state and true, or false when the key is absent,
// the medium fails, or the blob does not decode. Malformed data is discarded.
func (s *StateStore) Load(ctx context.Context) (model.FinanceState, bool) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		slog.Debug("no persisted state", "key", s.key)
		return model.FinanceState{}, false
	}
	if err != nil {
		slog.Warn("failed to read persisted state", "key", s.key, "error", err)
		return model.FinanceState{}, false
	}

	state, err := Decode(data)
	if err != nil {
		slog.Warn("discarding malformed persisted state", "key", s.key, "error", err)
		return model.FinanceState{}, false
	}

	slog.Debug("loaded persisted state",
		"categories", len(state.Categories),
		"transactions", len(state.Transactions))
	return state, true
}

// Save overwrites the persisted state. Failures are logged and dropped; the
// in-memory state stays authoritative for the session.
func (s *StateStore) Save(ctx context.Context, state model.FinanceState) {
	data, err := Encode(state)
	if err != nil {
		slog.Warn("failed to encode state", "error", err)
		return
	}

	if err := s.kv.Set(ctx, s.key, data); err != nil {
		slog.Warn("failed to persist state", "key", s.key, "error", err)
	}
}

// Encode serializes the state in its persisted layout. Nil slices are written
// as empty arrays.
func Encode(state model.FinanceState) ([]byte, error) {
	if state.Categories == nil {
		state.Categories = []model.Category{}
	}
	if state.Transactions == nil {
		state.Transactions = []model.Transaction{}
	}
	return json.Marshal(state)
}

// Decode parses a blob produced by Encode.
func Decode(data []byte) (model.FinanceState, error) {
	var state model.FinanceState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.FinanceState{}, err
	}
	return state, nil
}
