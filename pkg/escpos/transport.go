package escpos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
	"golang.org/x/net/proxy"
)

// ConnectionType - способ подключения к принтеру.
type ConnectionType string

const (
	ConnSerial ConnectionType = "serial"
	ConnTCP    ConnectionType = "tcp"
	ConnFile   ConnectionType = "file"
)

const (
	defaultBaudRate = 9600
	defaultDataBits = 8
	defaultTimeout  = time.Second
	defaultTCPPort  = "9100"
	dsrPollInterval = 10 * time.Millisecond
	txLogMaxBytes   = 48 // длинные посылки (растры) в логе обрезаются
)

// Config определяет параметры подключения к принтеру.
type Config struct {
	Connection  ConnectionType   `json:"connection"`
	Device      string           `json:"device,omitempty"`   // Serial: путь к устройству, например /dev/serial0
	BaudRate    int              `json:"baudRate,omitempty"` // Serial: скорость
	DataBits    int              `json:"dataBits,omitempty"`
	Parity      string           `json:"parity,omitempty"`   // N, E, O, M, S
	StopBits    float64          `json:"stopBits,omitempty"` // 1, 1.5, 2
	FlowControl bool             `json:"flowControl"`        // DTR/DSR + RTS
	Timeout     time.Duration    `json:"timeout,omitempty"`
	Address     string           `json:"address,omitempty"`    // TCP: host[:port]
	OutputPath  string           `json:"outputPath,omitempty"` // File: куда писать байты
	CodePage    string           `json:"codePage,omitempty"`
	Logger      func(msg string) `json:"-"`
}

// DefaultConfig возвращает параметры последовательного порта 9600 8N1
// с аппаратным управлением потоком и таймаутом 1 секунда.
func DefaultConfig() Config {
	return Config{
		Connection:  ConnSerial,
		Device:      "/dev/serial0",
		BaudRate:    defaultBaudRate,
		DataBits:    defaultDataBits,
		Parity:      "N",
		StopBits:    1,
		FlowControl: true,
		Timeout:     defaultTimeout,
		CodePage:    DefaultCodePage,
	}
}

func (c Config) withDefaults() Config {
	if c.Connection == "" {
		c.Connection = ConnSerial
	}
	if c.BaudRate == 0 {
		c.BaudRate = defaultBaudRate
	}
	if c.DataBits == 0 {
		c.DataBits = defaultDataBits
	}
	if c.Parity == "" {
		c.Parity = "N"
	}
	if c.StopBits == 0 {
		c.StopBits = 1
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

func (c Config) serialMode() (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
	}
	switch strings.ToUpper(c.Parity) {
	case "N":
		mode.Parity = serial.NoParity
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	case "M":
		mode.Parity = serial.MarkParity
	case "S":
		mode.Parity = serial.SpaceParity
	default:
		return nil, fmt.Errorf("escpos: unknown parity %q", c.Parity)
	}
	switch c.StopBits {
	case 1:
		mode.StopBits = serial.OneStopBit
	case 1.5:
		mode.StopBits = serial.OnePointFiveStopBits
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("escpos: unsupported stop bits %v", c.StopBits)
	}
	if c.FlowControl {
		mode.InitialStatusBits = &serial.ModemOutputBits{DTR: true, RTS: true}
	}
	return mode, nil
}

// Transport инкапсулирует работу с соединением (serial, TCP или файл).
type Transport struct {
	config Config
	mu     sync.Mutex
	conn   io.ReadWriteCloser

	// dsrIgnored выставляется, если линия DSR ни разу не поднялась:
	// многие USB-UART адаптеры её не разводят.
	dsrIgnored bool
}

// NewTransport создаёт транспортный слой с заданной конфигурацией.
func NewTransport(config Config) *Transport {
	return &Transport{config: config.withDefaults()}
}

// Open устанавливает соединение с устройством.
func (t *Transport) Open(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return nil
	}

	switch t.config.Connection {
	case ConnSerial:
		mode, err := t.config.serialMode()
		if err != nil {
			return err
		}
		port, err := serial.Open(t.config.Device, mode)
		if err != nil {
			return fmt.Errorf("ошибка открытия порта %s: %w", t.config.Device, err)
		}
		if err := port.SetReadTimeout(t.config.Timeout); err != nil {
			port.Close()
			return fmt.Errorf("ошибка установки таймаута: %w", err)
		}
		t.conn = port

	case ConnTCP:
		addr := t.config.Address
		if _, _, err := net.SplitHostPort(addr); err != nil {
			addr = net.JoinHostPort(addr, defaultTCPPort)
		}
		dialCtx, cancel := context.WithTimeout(ctx, t.config.Timeout)
		defer cancel()
		conn, err := proxy.Dial(dialCtx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("ошибка подключения TCP %s: %w", addr, err)
		}
		t.conn = conn

	case ConnFile:
		f, err := os.OpenFile(t.config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("ошибка открытия файла %s: %w", t.config.OutputPath, err)
		}
		t.conn = f

	default:
		return fmt.Errorf("%w: %q", ErrUnknownConnection, t.config.Connection)
	}

	t.logf("connected (%s)", t.describe())
	return nil
}

// Close разрывает соединение.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// Write отправляет подготовленную последовательность команд.
// op используется только для журнала.
func (t *Transport) Write(op string, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return ErrNotConnected
	}
	t.waitReadyLocked()
	t.logTX(op, data)
	if _, err := t.conn.Write(data); err != nil {
		return fmt.Errorf("ошибка записи (%s): %w", op, err)
	}
	return nil
}

// Query отправляет запрос реального времени и читает один байт ответа.
func (t *Transport) Query(request []byte) (byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return 0, ErrNotConnected
	}
	if t.config.Connection == ConnFile {
		return 0, ErrStatusUnsupported
	}
	if nc, ok := t.conn.(net.Conn); ok {
		if err := nc.SetDeadline(time.Now().Add(t.config.Timeout)); err != nil {
			return 0, err
		}
		defer nc.SetDeadline(time.Time{})
	}

	t.logTX("status", request)
	if _, err := t.conn.Write(request); err != nil {
		return 0, fmt.Errorf("ошибка записи запроса статуса: %w", err)
	}

	buf := make([]byte, 1)
	n, err := t.conn.Read(buf)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return 0, ErrStatusTimeout
		}
		return 0, err
	}
	// serial.Port возвращает 0, nil по истечении таймаута чтения
	if n == 0 {
		return 0, ErrStatusTimeout
	}
	t.logf("<< RX [status]: %02X", buf[0])
	return buf[0], nil
}

// waitReadyLocked ждёт DSR от принтера при включенном управлении потоком.
func (t *Transport) waitReadyLocked() {
	if !t.config.FlowControl || t.dsrIgnored {
		return
	}
	port, ok := t.conn.(serial.Port)
	if !ok {
		return
	}
	deadline := time.Now().Add(t.config.Timeout)
	for {
		bits, err := port.GetModemStatusBits()
		if err != nil {
			t.logf("modem status unavailable (%v), flow control disabled", err)
			t.dsrIgnored = true
			return
		}
		if bits.DSR {
			return
		}
		if time.Now().After(deadline) {
			t.logf("DSR not asserted within %s, flow control disabled", t.config.Timeout)
			t.dsrIgnored = true
			return
		}
		time.Sleep(dsrPollInterval)
	}
}

func (t *Transport) describe() string {
	switch t.config.Connection {
	case ConnSerial:
		return fmt.Sprintf("%s %d %d%s%v", t.config.Device, t.config.BaudRate,
			t.config.DataBits, strings.ToUpper(t.config.Parity), t.config.StopBits)
	case ConnTCP:
		return t.config.Address
	}
	return t.config.OutputPath
}

func (t *Transport) logTX(op string, data []byte) {
	if t.config.Logger == nil {
		return
	}
	if len(data) > txLogMaxBytes {
		t.config.Logger(fmt.Sprintf(">> TX [%s] %d bytes: % X ...", op, len(data), data[:txLogMaxBytes]))
		return
	}
	t.config.Logger(fmt.Sprintf(">> TX [%s]: % X", op, data))
}

func (t *Transport) logf(format string, args ...interface{}) {
	if t.config.Logger != nil {
		t.config.Logger(fmt.Sprintf(format, args...))
	}
}
