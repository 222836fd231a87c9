// Package categorizer suggests categories for transactions that arrived
// without one. Rules are keyword lists loaded from a YAML store, falling back
// to a small built-in set.
package categorizer

import (
	"context"
	"sync"

	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/models"
)

// MaxSuggestions bounds how many rows Suggest proposes categories for.
const MaxSuggestions = 5

// Categorizer runs its strategies in order and returns the first match.
type Categorizer struct {
	store    CategoryStoreInterface
	logger   logging.Logger
	fallback string

	once       sync.Once
	strategies []CategorizationStrategy
}

// NewCategorizer creates a Categorizer. Rules are read from store on first
// use; a nil store, a load error or an empty rules file selects DefaultRules.
func NewCategorizer(store CategoryStoreInterface, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Categorizer{
		store:    store,
		logger:   logger,
		fallback: models.CategoryOther,
	}
}

// WithFallback sets the category returned when no strategy matches.
func (c *Categorizer) WithFallback(category string) *Categorizer {
	if category != "" {
		c.fallback = category
	}
	return c
}

func (c *Categorizer) init() {
	c.once.Do(func() {
		rules := DefaultRules()
		if c.store != nil {
			loaded, err := c.store.LoadCategories()
			switch {
			case err != nil:
				c.logger.WithError(err).Warn("Failed to load categories, using defaults")
			case len(loaded) > 0:
				rules = loaded
			}
		}
		c.strategies = []CategorizationStrategy{NewKeywordStrategy(rules, c.logger)}
		c.logger.Debug("Categorizer initialized", logging.F(logging.FieldCount, len(rules)))
	})
}

// Categorize returns the category for tx, or the fallback when no strategy
// matches. Strategy errors are logged and the next strategy is tried.
func (c *Categorizer) Categorize(ctx context.Context, tx models.Transaction) string {
	c.init()
	for _, s := range c.strategies {
		category, ok, err := s.Categorize(ctx, tx)
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy failed", logging.F("strategy", s.Name()))
			continue
		}
		if ok {
			return category
		}
	}
	return c.fallback
}

// Suggest proposes categories for up to MaxSuggestions transactions whose
// category is blank or "Uncategorized", in input order.
func (c *Categorizer) Suggest(ctx context.Context, transactions []models.Transaction) []models.CategorySuggestion {
	suggestions := []models.CategorySuggestion{}
	for _, tx := range transactions {
		if len(suggestions) == MaxSuggestions {
			break
		}
		if !tx.NeedsCategory() {
			continue
		}
		suggestions = append(suggestions, models.CategorySuggestion{
			Description:       tx.Description,
			CurrentCategory:   tx.Category,
			SuggestedCategory: c.Categorize(ctx, tx),
		})
	}
	return suggestions
}
