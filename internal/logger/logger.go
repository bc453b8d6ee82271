package logger

import (
	"log/slog"
	"os"
)

var base *slog.Logger

func Init() {
	base = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(base)
	base.Info("logger initialized")
}

func Info(msg string, fields map[string]any) {
	get().Info(msg, attrs(fields)...)
}

func Warn(msg string, fields map[string]any) {
	get().Warn(msg, attrs(fields)...)
}

func Error(msg string, fields map[string]any) {
	get().Error(msg, attrs(fields)...)
}

// Fatal logs at error level and terminates the process. Only the
// outermost entry point should call it.
func Fatal(msg string, fields map[string]any) {
	get().Error(msg, attrs(fields)...)
	os.Exit(1)
}

func get() *slog.Logger {
	if base == nil {
		return slog.Default()
	}
	return base
}

func attrs(fields map[string]any) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
