package logger

import (
	"log/slog"
	"os"
)

var root *slog.Logger

// Init настраивает глобальный slog-логгер.
// В development пишем читаемый текст с debug-уровнем,
// в production структурированный JSON.
func Init(env string) {
	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	var handler slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	root = slog.New(handler)
	slog.SetDefault(root)
}

func get() *slog.Logger {
	if root == nil {
		// Init не вызывали (тесты, вспомогательные утилиты)
		Init("development")
	}
	return root
}

func Debug(msg string, args ...any) { get().Debug(msg, args...) }
func Info(msg string, args ...any)  { get().Info(msg, args...) }
func Warn(msg string, args ...any)  { get().Warn(msg, args...) }
func Error(msg string, args ...any) { get().Error(msg, args...) }

// Fatal логирует ошибку и завершает процесс
func Fatal(msg string, args ...any) {
	get().Error(msg, args...)
	os.Exit(1)
}

// With возвращает логгер с дополнительными полями
func With(args ...any) *slog.Logger {
	return get().With(args...)
}
