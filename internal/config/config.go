package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"receiptprinter/internal/infrastructure/logger"
	"receiptprinter/internal/receipt"
	"receiptprinter/pkg/escpos"
)

// EnvPrefix - префикс переменных окружения (RECEIPT_PRINTER_DEVICE и т.д.).
const EnvPrefix = "RECEIPT"

// Config - вся конфигурация приложения
type Config struct {
	Printer PrinterConfig `mapstructure:"printer"`
	Receipt ReceiptConfig `mapstructure:"receipt"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// PrinterConfig - параметры подключения к принтеру
type PrinterConfig struct {
	Connection  string        `mapstructure:"connection"`
	Device      string        `mapstructure:"device"`
	BaudRate    int           `mapstructure:"baud_rate"`
	DataBits    int           `mapstructure:"data_bits"`
	Parity      string        `mapstructure:"parity"`
	StopBits    float64       `mapstructure:"stop_bits"`
	FlowControl bool          `mapstructure:"flow_control"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Address     string        `mapstructure:"address"`
	OutputPath  string        `mapstructure:"output_path"`
	CodePage    string        `mapstructure:"code_page"`
}

// ReceiptConfig - настройки логотипа
type ReceiptConfig struct {
	LogoPath       string `mapstructure:"logo_path"`
	ImageImpl      string `mapstructure:"image_impl"`
	ImageMaxWidth  int    `mapstructure:"image_max_width"`
	ImageThreshold int    `mapstructure:"image_threshold"`
}

// LoggerConfig - настройки логгера
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// flagKeys связывает имена флагов CLI с ключами конфигурации.
var flagKeys = map[string]string{
	"connection": "printer.connection",
	"device":     "printer.device",
	"baud":       "printer.baud_rate",
	"address":    "printer.address",
	"code-page":  "printer.code_page",
	"timeout":    "printer.timeout",
	"logo":       "receipt.logo_path",
	"image-impl": "receipt.image_impl",
	"log-level":  "logger.level",
	"log-format": "logger.format",
}

// RegisterFlags добавляет в набор флаги, которые переопределяют конфигурацию.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("connection", "", "connection type: serial, tcp or file")
	fs.String("device", "", "serial device path")
	fs.Int("baud", 0, "serial baud rate")
	fs.String("address", "", "network printer address host[:port]")
	fs.String("code-page", "", "printer code page (CP437, CP850, CP866, ...)")
	fs.Duration("timeout", 0, "read/connect timeout")
	fs.String("logo", "", "logo image path")
	fs.String("image-impl", "", "image mode: bitImageColumn or bitImageRaster")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-format", "", "log format: console or json")
}

// Load читает конфигурацию: значения по умолчанию, затем файл (если указан),
// переменные окружения и флаги.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
		for name, key := range flagKeys {
			// Флаг учитывается только если задан явно, иначе его нулевое
			// значение перекрыло бы файл и окружение.
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults - значения, с которыми печатается исходный чек.
func setDefaults(v *viper.Viper) {
	def := escpos.DefaultConfig()
	v.SetDefault("printer.connection", string(def.Connection))
	v.SetDefault("printer.device", def.Device)
	v.SetDefault("printer.baud_rate", def.BaudRate)
	v.SetDefault("printer.data_bits", def.DataBits)
	v.SetDefault("printer.parity", def.Parity)
	v.SetDefault("printer.stop_bits", def.StopBits)
	v.SetDefault("printer.flow_control", def.FlowControl)
	v.SetDefault("printer.timeout", def.Timeout)
	v.SetDefault("printer.address", "")
	v.SetDefault("printer.output_path", "")
	v.SetDefault("printer.code_page", def.CodePage)

	img := escpos.DefaultImageOptions()
	v.SetDefault("receipt.logo_path", receipt.DefaultLogoPath)
	v.SetDefault("receipt.image_impl", string(img.Impl))
	v.SetDefault("receipt.image_max_width", img.MaxWidth)
	v.SetDefault("receipt.image_threshold", int(img.Threshold))

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch escpos.ConnectionType(c.Printer.Connection) {
	case escpos.ConnSerial:
		if c.Printer.Device == "" {
			return errors.New("printer.device is required for serial connection")
		}
		if c.Printer.BaudRate <= 0 {
			return fmt.Errorf("printer.baud_rate must be positive, got %d", c.Printer.BaudRate)
		}
		if c.Printer.DataBits < 5 || c.Printer.DataBits > 8 {
			return fmt.Errorf("printer.data_bits must be 5..8, got %d", c.Printer.DataBits)
		}
	case escpos.ConnTCP:
		if c.Printer.Address == "" {
			return errors.New("printer.address is required for tcp connection")
		}
	case escpos.ConnFile:
		if c.Printer.OutputPath == "" {
			return errors.New("printer.output_path is required for file connection")
		}
	default:
		return fmt.Errorf("unknown printer.connection %q", c.Printer.Connection)
	}
	if c.Printer.Timeout <= 0 {
		return fmt.Errorf("printer.timeout must be positive, got %s", c.Printer.Timeout)
	}
	if _, err := escpos.ParseImageImpl(c.Receipt.ImageImpl); err != nil {
		return err
	}
	if c.Receipt.ImageThreshold < 0 || c.Receipt.ImageThreshold > 255 {
		return fmt.Errorf("receipt.image_threshold must be 0..255, got %d", c.Receipt.ImageThreshold)
	}
	if c.Receipt.ImageMaxWidth < 0 {
		return fmt.Errorf("receipt.image_max_width must not be negative, got %d", c.Receipt.ImageMaxWidth)
	}
	return nil
}

// EscposConfig переводит настройки в конфигурацию драйвера.
func (c *Config) EscposConfig(txLog func(string)) escpos.Config {
	return escpos.Config{
		Connection:  escpos.ConnectionType(c.Printer.Connection),
		Device:      c.Printer.Device,
		BaudRate:    c.Printer.BaudRate,
		DataBits:    c.Printer.DataBits,
		Parity:      c.Printer.Parity,
		StopBits:    c.Printer.StopBits,
		FlowControl: c.Printer.FlowControl,
		Timeout:     c.Printer.Timeout,
		Address:     c.Printer.Address,
		OutputPath:  c.Printer.OutputPath,
		CodePage:    c.Printer.CodePage,
		Logger:      txLog,
	}
}

// ReceiptOptions возвращает параметры логотипа для receipt.Emitter.
func (c *Config) ReceiptOptions() receipt.Options {
	impl, _ := escpos.ParseImageImpl(c.Receipt.ImageImpl)
	img := escpos.DefaultImageOptions()
	img.Impl = impl
	img.MaxWidth = c.Receipt.ImageMaxWidth
	img.Threshold = uint8(c.Receipt.ImageThreshold)
	return receipt.Options{LogoPath: c.Receipt.LogoPath, Image: img}
}

// LoggerSettings возвращает параметры для logger.NewZapLogger.
func (c *Config) LoggerSettings() logger.Config {
	return logger.Config{
		Level:      c.Logger.Level,
		OutputPath: c.Logger.OutputPath,
		Format:     c.Logger.Format,
	}
}
