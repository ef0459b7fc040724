package escpos

import (
	"context"
	"fmt"
)

// Printer определяет операции печати, поддерживаемые драйвером.
type Printer interface {
	// Open устанавливает соединение с принтером
	Open() error
	// Close разрывает соединение
	Close() error

	// Initialize сбрасывает принтер в исходное состояние (ESC @)
	Initialize(ctx context.Context) error
	// Set применяет стиль текста
	Set(ctx context.Context, style Style) error
	// Text печатает строку как есть
	Text(ctx context.Context, s string) error
	// Textln печатает строку и перевод строки
	Textln(ctx context.Context, s string) error
	// Feed проматывает бумагу на указанное количество строк
	Feed(ctx context.Context, lines int) error
	// Image печатает изображение из файла
	Image(ctx context.Context, path string, opts ImageOptions) error
	// QR печатает QR-код средствами принтера
	QR(ctx context.Context, content string, opts QROptions) error
	// Barcode печатает штрихкод
	Barcode(ctx context.Context, code string, sym Symbology, opts BarcodeOptions) error
	// Cut выполняет отрезку чека
	Cut(ctx context.Context, mode CutMode) error
	// Status запрашивает состояние принтера
	Status(ctx context.Context) (*Status, error)
}

// CutMode - полная или частичная отрезка.
type CutMode int

const (
	CutFull CutMode = iota
	CutPartial
)

// escposPrinter реализует Printer поверх Transport.
type escposPrinter struct {
	transport *Transport
	codePage  codePage

	// codePageSent - команда выбора таблицы уже отправлена в этой сессии
	codePageSent bool
}

// New создаёт драйвер с заданной конфигурацией подключения.
func New(config Config) (Printer, error) {
	cp, err := lookupCodePage(config.CodePage)
	if err != nil {
		return nil, err
	}
	return &escposPrinter{
		transport: NewTransport(config),
		codePage:  cp,
	}, nil
}

func (p *escposPrinter) Open() error {
	return p.transport.Open(context.Background())
}

func (p *escposPrinter) Close() error {
	p.codePageSent = false
	return p.transport.Close()
}

// send проверяет контекст и передаёт данные в транспорт.
func (p *escposPrinter) send(ctx context.Context, op string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return p.transport.Write(op, data)
}

func (p *escposPrinter) Initialize(ctx context.Context) error {
	p.codePageSent = false
	return p.send(ctx, "init", cmdInit)
}

func (p *escposPrinter) Set(ctx context.Context, style Style) error {
	data, err := encodeStyle(style)
	if err != nil {
		return err
	}
	return p.send(ctx, "set", data)
}

func (p *escposPrinter) Text(ctx context.Context, s string) error {
	var data []byte
	if !p.codePageSent {
		data = append(data, p.codePage.selectCommand()...)
	}
	data = append(data, p.codePage.encode(s)...)
	if err := p.send(ctx, "text", data); err != nil {
		return err
	}
	p.codePageSent = true
	return nil
}

func (p *escposPrinter) Textln(ctx context.Context, s string) error {
	return p.Text(ctx, s+"\n")
}

func (p *escposPrinter) Feed(ctx context.Context, lines int) error {
	if lines < 0 || lines > 255 {
		return fmt.Errorf("escpos: feed %d lines out of range 0..255", lines)
	}
	return p.send(ctx, "feed", []byte{esc, 'd', byte(lines)})
}

func (p *escposPrinter) Image(ctx context.Context, path string, opts ImageOptions) error {
	bm, err := loadBitmap(path, opts)
	if err != nil {
		return err
	}
	data, err := encodeImage(bm, opts)
	if err != nil {
		return err
	}
	return p.send(ctx, "image", data)
}

func (p *escposPrinter) QR(ctx context.Context, content string, opts QROptions) error {
	data, err := encodeQR(content, opts)
	if err != nil {
		return err
	}
	return p.send(ctx, "qr", data)
}

func (p *escposPrinter) Barcode(ctx context.Context, code string, sym Symbology, opts BarcodeOptions) error {
	data, err := encodeBarcode(code, sym, opts)
	if err != nil {
		return err
	}
	return p.send(ctx, "barcode", data)
}

func (p *escposPrinter) Cut(ctx context.Context, mode CutMode) error {
	return p.send(ctx, "cut", encodeCut(mode))
}

func encodeCut(mode CutMode) []byte {
	out := []byte{esc, 'd', cutFeedLines}
	if mode == CutPartial {
		return append(out, cmdPartialCut...)
	}
	return append(out, cmdFullCut...)
}
