package log

// Canonical field name constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRunID     = "run_id"

	FieldPath   = "path"
	FieldFormat = "format"
	FieldOwner  = "owner"
	FieldMonth  = "month"
	FieldCount  = "count"
)
