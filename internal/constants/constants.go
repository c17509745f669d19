package constants

// Context keys
const ContextKeyActor = "actor"

// Password policy
const MinPasswordLength = 8

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
