package ports

import (
	"context"

	"receiptprinter/pkg/escpos"
)

// Printer - операции драйвера, которые нужны для печати чека.
// Открытием и закрытием сессии владеет вызывающий код.
type Printer interface {
	Set(ctx context.Context, style escpos.Style) error
	Text(ctx context.Context, s string) error
	Textln(ctx context.Context, s string) error
	Image(ctx context.Context, path string, opts escpos.ImageOptions) error
	QR(ctx context.Context, content string, opts escpos.QROptions) error
	Barcode(ctx context.Context, code string, sym escpos.Symbology, opts escpos.BarcodeOptions) error
	Cut(ctx context.Context, mode escpos.CutMode) error
}
