package models

// CategoryConfig represents a category configuration in the YAML file
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// CategorySuggestion proposes a category for a transaction that has none.
type CategorySuggestion struct {
	Description       string `json:"description"`
	CurrentCategory   string `json:"currentCategory"`
	SuggestedCategory string `json:"suggestedCategory"`
}
