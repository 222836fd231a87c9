package models

// Defaults applied to blank cells during ingestion.
const (
	DefaultDescription = "Transaction"
	DefaultCategory    = "Other"
)

// Categories
const (
	CategoryUncategorized = "Uncategorized"
	CategoryOther         = "Other"
	CategoryFoodDining    = "Food & Dining"
	CategoryTransport     = "Transportation"
	CategoryEntertainment = "Entertainment"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
