package middleware

import "log/slog"

// SlogAdapter bridges CORSLogger onto a slog.Logger.
type SlogAdapter struct {
	Logger *slog.Logger
}

func (a *SlogAdapter) Info(msg string, fields map[string]interface{}) {
	a.Logger.Info(msg, fieldsToAttrs(fields)...)
}

func (a *SlogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.Logger.Warn(msg, fieldsToAttrs(fields)...)
}

func (a *SlogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.Logger.Debug(msg, fieldsToAttrs(fields)...)
}

func fieldsToAttrs(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return args
}

// NoOpLogger discards everything. Used in tests.
type NoOpLogger struct{}

func (l *NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (l *NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}
