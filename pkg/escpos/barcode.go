package escpos

import (
	"fmt"
	"regexp"
)

// Symbology - тип штрихкода, поддерживаемый аппаратно (функция A команды GS k).
type Symbology string

const (
	UPCA    Symbology = "UPC-A"
	UPCE    Symbology = "UPC-E"
	EAN13   Symbology = "EAN13"
	EAN8    Symbology = "EAN8"
	CODE39  Symbology = "CODE39"
	ITF     Symbology = "ITF"
	CODABAR Symbology = "CODABAR"
)

type symbologySpec struct {
	m       byte
	pattern *regexp.Regexp
}

var symbologies = map[Symbology]symbologySpec{
	UPCA:    {0, regexp.MustCompile(`^[0-9]{11,12}$`)},
	UPCE:    {1, regexp.MustCompile(`^([0-9]{6,8}|[0-9]{11,12})$`)},
	EAN13:   {2, regexp.MustCompile(`^[0-9]{12,13}$`)},
	EAN8:    {3, regexp.MustCompile(`^[0-9]{7,8}$`)},
	CODE39:  {4, regexp.MustCompile(`^([0-9A-Z $%+\-./]+|\*[0-9A-Z $%+\-./]+\*)$`)},
	ITF:     {5, regexp.MustCompile(`^([0-9]{2})+$`)},
	CODABAR: {6, regexp.MustCompile(`^[A-Da-d][0-9$+\-./:]+[A-Da-d]$`)},
}

// TextPosition - где печатать человекочитаемую строку (HRI).
type TextPosition byte

const (
	TextNone TextPosition = iota
	TextAbove
	TextBelow
	TextBoth
)

// BarcodeOptions - параметры печати штрихкода.
type BarcodeOptions struct {
	Height      int // высота в точках 1..255
	Width       int // ширина модуля 2..6
	TextPos     TextPosition
	Font        Font
	AlignCenter bool
}

// DefaultBarcodeOptions возвращает значения, которыми печатают штрихкод на чеке.
func DefaultBarcodeOptions() BarcodeOptions {
	return BarcodeOptions{
		Height:      64,
		Width:       3,
		TextPos:     TextBelow,
		Font:        FontA,
		AlignCenter: true,
	}
}

// ValidateBarcode проверяет допустимость данных для выбранного типа.
func ValidateBarcode(code string, sym Symbology) error {
	spec, ok := symbologies[sym]
	if !ok {
		return fmt.Errorf("%w: unsupported symbology %q", ErrInvalidBarcode, sym)
	}
	if !spec.pattern.MatchString(code) {
		return fmt.Errorf("%w: %q is not valid %s data", ErrInvalidBarcode, code, sym)
	}
	return nil
}

func encodeBarcode(code string, sym Symbology, opts BarcodeOptions) ([]byte, error) {
	if err := ValidateBarcode(code, sym); err != nil {
		return nil, err
	}
	if opts.Height < 1 || opts.Height > 255 {
		return nil, fmt.Errorf("%w: height %d out of range 1..255", ErrInvalidBarcode, opts.Height)
	}
	if opts.Width < 2 || opts.Width > 6 {
		return nil, fmt.Errorf("%w: width %d out of range 2..6", ErrInvalidBarcode, opts.Width)
	}
	if opts.TextPos > TextBoth {
		return nil, fmt.Errorf("%w: text position %d", ErrInvalidBarcode, opts.TextPos)
	}

	out := make([]byte, 0, len(code)+20)
	if opts.AlignCenter {
		out = append(out, esc, 'a', byte(AlignCenter))
	}
	out = append(out, gs, 'h', byte(opts.Height))
	out = append(out, gs, 'w', byte(opts.Width))
	out = append(out, gs, 'f', byte(opts.Font))
	out = append(out, gs, 'H', byte(opts.TextPos))
	out = append(out, gs, 'k', symbologies[sym].m)
	out = append(out, code...)
	out = append(out, nul)
	return out, nil
}
