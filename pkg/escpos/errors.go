package escpos

import "errors"

var (
	ErrNotConnected      = errors.New("escpos: printer is not connected")
	ErrUnknownConnection = errors.New("escpos: unknown connection type")
	ErrUnknownCodePage   = errors.New("escpos: unknown code page")
	ErrInvalidStyle      = errors.New("escpos: invalid style")
	ErrInvalidBarcode    = errors.New("escpos: invalid barcode")
	ErrInvalidQR         = errors.New("escpos: invalid QR parameters")
	ErrEmptyQR           = errors.New("escpos: QR content is empty")
	ErrEmptyImage        = errors.New("escpos: image has no pixels")
	ErrStatusTimeout     = errors.New("escpos: timeout waiting for status byte")
	ErrStatusUnsupported = errors.New("escpos: status queries are not supported by this connection")
)
