package categorizer

import "casha/finance-advisor/internal/models"

// CategoryStoreInterface defines the interface for category rule storage.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryConfig, error)
}
