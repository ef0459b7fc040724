package escpos

import "fmt"

// ECLevel - уровень коррекции ошибок QR.
type ECLevel byte

const (
	ECLevelL ECLevel = iota
	ECLevelM
	ECLevelQ
	ECLevelH
)

// QROptions - параметры нативной печати QR (GS ( k).
type QROptions struct {
	Size    int // размер модуля 1..16
	ECLevel ECLevel
	Model   int // 1 или 2
}

// DefaultQROptions возвращает модель 2, уровень L и модуль 3 точки.
func DefaultQROptions() QROptions {
	return QROptions{Size: 3, ECLevel: ECLevelL, Model: 2}
}

const qrCodeSymbol = '1' // cn = 49, QR Code

// qrFunction кодирует одну функцию GS ( k pL pH cn fn [m] [data].
func qrFunction(fn byte, m []byte, data []byte) []byte {
	n := len(data) + len(m) + 2
	out := make([]byte, 0, n+5)
	out = append(out, gs, '(', 'k')
	out = append(out, lowHigh(n)...)
	out = append(out, qrCodeSymbol, fn)
	out = append(out, m...)
	out = append(out, data...)
	return out
}

func encodeQR(content string, opts QROptions) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyQR
	}
	if opts.Size < 1 || opts.Size > 16 {
		return nil, fmt.Errorf("%w: size %d out of range 1..16", ErrInvalidQR, opts.Size)
	}
	if opts.ECLevel > ECLevelH {
		return nil, fmt.Errorf("%w: error correction level %d", ErrInvalidQR, opts.ECLevel)
	}
	if opts.Model != 1 && opts.Model != 2 {
		return nil, fmt.Errorf("%w: model %d", ErrInvalidQR, opts.Model)
	}
	if len(content)+3 > 0xFFFF {
		return nil, fmt.Errorf("%w: content too long (%d bytes)", ErrInvalidQR, len(content))
	}

	var out []byte
	out = append(out, qrFunction('A', nil, []byte{byte('0' + opts.Model), 0})...)
	out = append(out, qrFunction('C', nil, []byte{byte(opts.Size)})...)
	out = append(out, qrFunction('E', nil, []byte{byte('0') + byte(opts.ECLevel)})...)
	out = append(out, qrFunction('P', []byte{'0'}, []byte(content))...)
	out = append(out, qrFunction('Q', []byte{'0'}, nil)...)
	return out, nil
}
