package constants

import "time"

// Context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Authentication
const (
	// RoleUser is the only role issued to authenticated callers.
	RoleUser = "user"

	DefaultTokenTTL = 24 * time.Hour

	// BcryptCost matches the salt rounds used by existing password hashes.
	BcryptCost = 10
)

// Tasks
const (
	DefaultTimeToComplete = 1

	// CompletedReportWindow is the trailing window used by the last-week report.
	CompletedReportWindow = 7 * 24 * time.Hour
)
