package categorizer

import (
	"context"
	"strings"

	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/models"
)

// DefaultRules are used when no rules file is available. Order matters: the
// first rule with a matching keyword wins.
func DefaultRules() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: models.CategoryFoodDining, Keywords: []string{"grocery"}},
		{Name: models.CategoryTransport, Keywords: []string{"gas"}},
		{Name: models.CategoryEntertainment, Keywords: []string{"netflix"}},
	}
}

// KeywordStrategy matches rule keywords as case-insensitive substrings of
// the transaction description.
type KeywordStrategy struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over the given rules.
// Keywords are lower-cased once here.
func NewKeywordStrategy(categories []models.CategoryConfig, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	rules := make([]models.CategoryConfig, 0, len(categories))
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		rules = append(rules, models.CategoryConfig{Name: name, Keywords: keywords})
	}
	return &KeywordStrategy{categories: rules, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize returns the first rule whose keyword appears in the description.
func (s *KeywordStrategy) Categorize(ctx context.Context, tx models.Transaction) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	description := strings.ToLower(tx.Description)
	if strings.TrimSpace(description) == "" {
		return "", false, nil
	}

	for _, rule := range s.categories {
		for _, keyword := range rule.Keywords {
			if strings.Contains(description, keyword) {
				s.logger.WithFields(
					logging.F("strategy", s.Name()),
					logging.F("keyword", keyword),
					logging.F(logging.FieldCategory, rule.Name),
				).Debug("Transaction categorized using keyword matching")
				return rule.Name, true, nil
			}
		}
	}
	return "", false, nil
}
