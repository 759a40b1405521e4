package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured log field.
type Field = zapcore.Field

// String ...
func String(key, value string) Field {
	return zap.String(key, value)
}

// Int ...
func Int(key string, value int) Field {
	return zap.Int(key, value)
}

// Int64 ...
func Int64(key string, value int64) Field {
	return zap.Int64(key, value)
}

// Bool ...
func Bool(key string, value bool) Field {
	return zap.Bool(key, value)
}

// Any ...
func Any(key string, value interface{}) Field {
	return zap.Any(key, value)
}

// Error ...
func Error(err error) Field {
	return zap.Error(err)
}
