package log

import (
	"errors"
	"sort"

	"walletwatcher/internal/core"
)

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldUsername    = "username"
	FieldRecordID    = "record_id"
	FieldRecordKind  = "record_kind"
	FieldType        = "type"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldView        = "view"
	FieldPeriod      = "period"
	FieldCount       = "count"
	FieldBackend     = "backend"
	FieldModel       = "model"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldErrorType   = "error_type"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentAuth      = "auth"
	ComponentRecords   = "records"
	ComponentSettings  = "settings"
	ComponentReport    = "report"
	ComponentStorage   = "storage"
	ComponentCache     = "cache"
	ComponentBackend   = "backend"
	ComponentAssistant = "assistant"
	ComponentCLI       = "cli"
)

// Operations defines standard operation names
const (
	OpSignup   = "signup"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpExport   = "export"
	OpAsk      = "ask"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeAuth          = "auth_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeConflict      = "conflict_error"
	ErrorTypeInternal      = "internal_error"
)

// ErrorType classifies err into one of the ErrorType constants.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, core.ErrValidation), errors.Is(err, core.ErrMissingPassword):
		return ErrorTypeValidation
	case errors.Is(err, core.ErrInvalidCredentials), errors.Is(err, core.ErrIncorrectPassword), errors.Is(err, core.ErrNoSession):
		return ErrorTypeAuth
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrUserNotFound):
		return ErrorTypeNotFound
	case errors.Is(err, core.ErrDuplicateUsername), errors.Is(err, core.ErrUsernameTaken):
		return ErrorTypeConflict
	default:
		return ErrorTypeInternal
	}
}

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

func (f LogFields) WithUser(username string) LogFields {
	if username != "" {
		f[FieldUsername] = username
	}
	return f
}

// WithError adds the error message and its category.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldErrorType] = ErrorType(err)
	}
	return f
}

// WithRecord names the kind and id of the record being changed.
func (f LogFields) WithRecord(kind, id string) LogFields {
	f[FieldRecordKind] = kind
	if id != "" {
		f[FieldRecordID] = id
	}
	return f
}

// WithTransaction adds the fields of tx that are safe to log.
func (f LogFields) WithTransaction(tx core.Transaction) LogFields {
	f[FieldType] = string(tx.Type)
	f[FieldCategory] = tx.Category
	f[FieldAmountCents] = tx.Amount.Cents
	return f.WithRecord("transaction", tx.ID)
}

func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
	return f
}

// ToSlice converts LogFields to a slice for slog, keys in lexical order.
func (f LogFields) ToSlice() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	slice := make([]any, 0, len(f)*2)
	for _, k := range keys {
		slice = append(slice, k, f[k])
	}
	return slice
}
