package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldFileKind   = "file_kind"
	FieldSize       = "size_bytes"
	FieldRow        = "row"
	FieldCurrency   = "currency"
	FieldCategory   = "category"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDropped    = "dropped"
	FieldSessionID  = "session_id"
	FieldModel      = "model"
	FieldOutputFile = "output_file"
	FieldMethod     = "method"
	FieldPath       = "path"
)
