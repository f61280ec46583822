package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldRunID    = "run_id"
	FieldResumeID = "resume_id"
	FieldUserID   = "user_id"
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

// WithFields attaches the provided fields to the logger, defaulting to a no-op
// logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the fields attached to every line of a run.
// Empty values are ignored.
func CommonFields(runID, resumeID, userID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRunID, Value: runID},
		StringField{Key: FieldResumeID, Value: resumeID},
		StringField{Key: FieldUserID, Value: userID},
	)
}

func WithCommonFields(logger *zap.Logger, runID, resumeID, userID string) *zap.Logger {
	return WithFields(logger, CommonFields(runID, resumeID, userID)...)
}
