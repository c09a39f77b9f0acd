package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/money-manager/internal/cli"
	"github.com/Veraticus/money-manager/internal/common"
	"github.com/Veraticus/money-manager/internal/config"
	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/model"
	"github.com/Veraticus/money-manager/internal/storage"
)

// app bundles what a command needs: the opened ledger and its output helpers.
type app struct {
	kv        storage.KV
	store     *ledger.Store
	validator *ledger.Validator
	format    *cli.Formatter
	cfg       *config.Config
}

// openApp resolves the configuration, opens the storage medium and loads the
// ledger from it.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("invalid configuration", err)
	}

	format, err := cli.NewFormatter(cfg.Display.Currency, cfg.Display.Locale)
	if err != nil {
		return nil, common.NewUserError("invalid display settings", err)
	}

	kv, err := storage.Open(ctx, cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage at %s: %w", cfg.Storage.Backend, cfg.Storage.Path, err)
	}

	opts := []ledger.Option{ledger.WithCascade(cfg.Ledger.Cascade)}
	if cfg.Ledger.Seed {
		opts = append(opts, ledger.WithSeed(ledger.DefaultCategories))
	}

	store := ledger.Open(ctx, storage.NewStateStore(kv), opts...)
	common.LogDebug("opened ledger", common.Fields{
		"backend": cfg.Storage.Backend,
		"path":    cfg.Storage.Path,
		"cascade": string(cfg.Ledger.Cascade),
	})

	return &app{
		kv:        kv,
		store:     store,
		validator: ledger.NewValidator(store),
		format:    format,
		cfg:       cfg,
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// resolveCategory finds a category by id, or by case-insensitive name among
// the children of parentID ("" for top-level). An empty want matches any type.
func resolveCategory(store *ledger.Store, ref, parentID string, want model.CategoryType) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Category{}, ledger.ErrMissingCategory
	}

	if c, ok := store.Category(ref); ok {
		return c, nil
	}

	var matches []model.Category
	for _, c := range store.Categories() {
		if c.ParentID != parentID || !strings.EqualFold(c.Name, ref) {
			continue
		}
		if want != "" && c.Type != want {
			continue
		}
		matches = append(matches, c)
	}

	switch len(matches) {
	case 0:
		return model.Category{}, common.NewUserError(fmt.Sprintf("no category named %q", ref), ledger.ErrCategoryNotFound)
	case 1:
		return matches[0], nil
	default:
		return model.Category{}, common.NewUserError(fmt.Sprintf("%q is ambiguous; use the category id", ref), ledger.ErrCategoryNotFound)
	}
}

// resolvePair resolves a category and an optional sub-category beneath it.
func resolvePair(store *ledger.Store, categoryRef, subRef string, want model.CategoryType) (string, string, error) {
	category, err := resolveCategory(store, categoryRef, "", want)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(subRef) == "" {
		return category.ID, "", nil
	}

	sub, err := resolveCategory(store, subRef, category.ID, "")
	if err != nil {
		return "", "", err
	}
	return category.ID, sub.ID, nil
}

// expandFiles expands glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(config.ExpandPath(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
			continue
		}
		slog.Warn("No files found matching pattern", "pattern", pattern)
	}

	if len(files) == 0 {
		return nil, common.ErrNoFiles
	}
	return files, nil
}

func parseTransactionType(s string) (model.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	default:
		t := model.TransactionType(strings.ToLower(strings.TrimSpace(s)))
		if !t.Valid() {
			return "", common.NewUserError(fmt.Sprintf("unknown transaction type %q (want all, %s)", s, joinTypes(model.TransactionTypes)), ledger.ErrInvalidType)
		}
		return t, nil
	}
}

func parseCategoryType(s string) (model.CategoryType, error) {
	t := model.CategoryType(strings.ToLower(strings.TrimSpace(s)))
	if t != "" && !t.Valid() {
		return "", common.NewUserError(fmt.Sprintf("unknown category type %q (want %s)", s, joinTypes(model.CategoryTypes)), ledger.ErrInvalidType)
	}
	return t, nil
}

func joinTypes[T ~string](types []T) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
