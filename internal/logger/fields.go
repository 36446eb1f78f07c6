package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldOperation is the structured log field key for the backend operation name.
	FieldOperation = "operation"
	// FieldMethod is the structured log field key for the HTTP method.
	FieldMethod = "method"
	// FieldPath is the structured log field key for the request path.
	FieldPath = "path"
	// FieldInterviewID is the structured log field key for an interview identifier.
	FieldInterviewID = "interview_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a
// no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// RequestFields describes one backend call. Empty values are skipped.
func RequestFields(operation, method, path string) []zap.Field {
	return StringFields(
		StringField{Key: FieldOperation, Value: operation},
		StringField{Key: FieldMethod, Value: method},
		StringField{Key: FieldPath, Value: path},
	)
}

func WithRequestFields(logger *zap.Logger, operation, method, path string) *zap.Logger {
	return WithFields(logger, RequestFields(operation, method, path)...)
}
