package ports

// Logger определяет интерфейс для абстракции логирования.
// Реализация на zap находится в internal/infrastructure/logger.
type Logger interface {
	// Debug выводит отладочную информацию (в том числе трассировку байтов TX)
	Debug(msg string, args ...interface{})

	// Info выводит информационные сообщения
	Info(msg string, args ...interface{})

	// Warn выводит предупреждения
	Warn(msg string, args ...interface{})

	// Error выводит ошибки
	Error(msg string, args ...interface{})

	// With возвращает логгер с дополнительными полями (ключ, значение, ...)
	With(keysAndValues ...interface{}) Logger
}
