package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldChatID    = "chat_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldRecordID  = "record_id"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentBot     = "bot"
	ComponentDialog  = "dialog"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentSession = "session"
)
