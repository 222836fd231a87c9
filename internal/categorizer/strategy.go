package categorizer

import (
	"context"

	"casha/finance-advisor/internal/models"
)

// CategorizationStrategy defines a method for categorizing transactions.
type CategorizationStrategy interface {
	// Categorize returns the category for tx and whether the strategy found one.
	Categorize(ctx context.Context, tx models.Transaction) (string, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
