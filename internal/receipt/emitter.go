package receipt

import (
	"context"
	"fmt"
	"time"

	"receiptprinter/internal/clock"
	"receiptprinter/internal/domain/ports"
	"receiptprinter/pkg/escpos"
)

// FormatTimestamp форматирует время для строки DATE.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Options - параметры, которые можно переопределить из конфигурации.
type Options struct {
	LogoPath string
	Image    escpos.ImageOptions
}

// DefaultLogoPath - расположение логотипа на Raspberry Pi.
const DefaultLogoPath = "/home/pi/ proj on pi0/CD_new_Logo_black.png"

// DefaultOptions возвращает логотип по умолчанию в режиме bitImageColumn.
func DefaultOptions() Options {
	return Options{
		LogoPath: DefaultLogoPath,
		Image:    escpos.DefaultImageOptions(),
	}
}

// Emitter печатает фиксированный чек.
type Emitter struct {
	printer ports.Printer
	clock   clock.Clock
	opts    Options
	log     ports.Logger
}

// NewEmitter создает Emitter. Сессией принтера владеет вызывающий код.
func NewEmitter(printer ports.Printer, c clock.Clock, opts Options, log ports.Logger) *Emitter {
	return &Emitter{printer: printer, clock: c, opts: opts, log: log}
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Stamp читает часы и пишет дату в лог. Вызывается до открытия порта,
// чтобы дата попала в лог даже при ошибке подключения.
func Stamp(c clock.Clock, log ports.Logger) string {
	stamp := FormatTimestamp(c.Now())
	log.Info("Today's date: %s", stamp)
	return stamp
}

// Emit выдает на принтер всю последовательность команд чека.
// Первая же ошибка прерывает печать; повторов нет.
func (e *Emitter) Emit(ctx context.Context) error {
	return e.EmitAt(ctx, Stamp(e.clock, e.log))
}

// EmitAt печатает чек с уже полученной отметкой времени.
func (e *Emitter) EmitAt(ctx context.Context, stamp string) error {
	steps := []step{
		{"preamble", e.preamble},
		{"logo", e.logo},
		{"merchant", e.merchant},
		{"date", func(ctx context.Context) error { return e.date(ctx, stamp) }},
		{"items", e.items},
		{"qr", e.qr},
		{"barcode", e.barcode},
		{"cut", e.cut},
	}
	for _, s := range steps {
		log := e.log.With("step", s.name)
		log.Debug("receipt step started")
		if err := s.run(ctx); err != nil {
			log.Error("receipt step failed: %v", err)
			return fmt.Errorf("receipt: %s: %w", s.name, err)
		}
	}
	return nil
}

func (e *Emitter) preamble(ctx context.Context) error {
	if err := e.printer.Set(ctx, preambleStyle); err != nil {
		return err
	}
	return e.printer.Text(ctx, "\n")
}

func (e *Emitter) logo(ctx context.Context) error {
	if err := e.printer.Set(ctx, centeredStyle); err != nil {
		return err
	}
	return e.printer.Image(ctx, e.opts.LogoPath, e.opts.Image)
}

func (e *Emitter) merchant(ctx context.Context) error {
	// Меняются только выравнивание и подчёркивание, остальное остаётся от логотипа.
	header := centeredStyle
	header.Align = escpos.AlignLeft
	header.Underline = escpos.UnderlineNone
	if err := e.printer.Set(ctx, header); err != nil {
		return err
	}
	if err := e.printer.Textln(ctx, merchantTitle); err != nil {
		return err
	}
	for _, line := range merchantLines {
		if err := e.printer.Text(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) date(ctx context.Context, stamp string) error {
	if err := e.printer.Set(ctx, bodyStyle); err != nil {
		return err
	}
	if err := e.printer.Text(ctx, dateLabel); err != nil {
		return err
	}
	if err := e.printer.Text(ctx, stamp); err != nil {
		return err
	}
	return e.printer.Textln(ctx, "\n")
}

func (e *Emitter) items(ctx context.Context) error {
	if err := e.printer.Textln(ctx, cashierLabel); err != nil {
		return err
	}
	for _, line := range itemTable {
		if err := e.printer.Textln(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) qr(ctx context.Context) error {
	if err := e.printer.Set(ctx, centeredStyle); err != nil {
		return err
	}
	opts := escpos.DefaultQROptions()
	opts.Size = qrSize
	if err := e.printer.QR(ctx, qrPayload, opts); err != nil {
		return err
	}
	return e.printer.Textln(ctx, "")
}

func (e *Emitter) barcode(ctx context.Context) error {
	return e.printer.Barcode(ctx, barcodePayload, barcodeSymbology, escpos.DefaultBarcodeOptions())
}

func (e *Emitter) cut(ctx context.Context) error {
	return e.printer.Cut(ctx, escpos.CutFull)
}
