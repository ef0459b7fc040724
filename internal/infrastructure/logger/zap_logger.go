package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"receiptprinter/internal/domain/ports"
)

// Config - параметры логгера.
type Config struct {
	Level      string // debug, info, warn, error
	OutputPath string // stdout, stderr или путь к файлу
	Format     string // json или console
}

// ZapLogger реализует интерфейс ports.Logger поверх zap.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger создает логгер по конфигурации.
func NewZapLogger(cfg Config) (*ZapLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "json" {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var writeSyncer zapcore.WriteSyncer
	switch cfg.OutputPath {
	case "stderr", "":
		writeSyncer = zapcore.AddSync(os.Stderr)
	case "stdout":
		writeSyncer = zapcore.AddSync(os.Stdout)
	default:
		if dir := filepath.Dir(cfg.OutputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("ошибка создания каталога логов: %w", err)
			}
		}
		file, err := os.OpenFile(cfg.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия файла логов: %w", err)
		}
		writeSyncer = zapcore.AddSync(file)
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	return FromZap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))), nil
}

// FromZap оборачивает готовый *zap.Logger.
func FromZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: l.Sugar()}
}

// NewNop возвращает логгер, который ничего не пишет.
func NewNop() *ZapLogger {
	return FromZap(zap.NewNop())
}

// Debug выводит отладочную информацию.
func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugf(msg, args...)
}

// Info выводит информационные сообщения.
func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.sugar.Infof(msg, args...)
}

// Warn выводит предупреждения.
func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnf(msg, args...)
}

// Error выводит ошибки.
func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.sugar.Errorf(msg, args...)
}

// With добавляет поля ко всем следующим записям.
func (l *ZapLogger) With(keysAndValues ...interface{}) ports.Logger {
	return &ZapLogger{sugar: l.sugar.With(keysAndValues...)}
}

// TxHook возвращает функцию для escpos.Config.Logger: трассировка обмена на уровне debug.
func (l *ZapLogger) TxHook() func(msg string) {
	return func(msg string) {
		l.sugar.Debug(msg)
	}
}

// Sync сбрасывает буферы.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
