package escpos

import (
	"fmt"
	"image"
	_ "image/gif"  // Поддержка декодирования GIF
	_ "image/jpeg" // Поддержка декодирования JPG
	_ "image/png"  // Поддержка декодирования PNG
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp" // Поддержка декодирования BMP
	"golang.org/x/image/draw"
)

// ImageImpl - способ передачи растра на принтер.
type ImageImpl string

const (
	// BitImageColumn печатает полосами по 24 точки (ESC *).
	BitImageColumn ImageImpl = "bitImageColumn"
	// BitImageRaster передаёт растр целиком (GS v 0).
	BitImageRaster ImageImpl = "bitImageRaster"
)

// ParseImageImpl разбирает название режима из конфигурации.
func ParseImageImpl(s string) (ImageImpl, error) {
	switch strings.TrimSpace(s) {
	case "", string(BitImageColumn):
		return BitImageColumn, nil
	case string(BitImageRaster):
		return BitImageRaster, nil
	}
	return "", fmt.Errorf("escpos: unknown image implementation %q", s)
}

// ImageOptions - параметры печати изображения.
type ImageOptions struct {
	Impl ImageImpl
	// MaxWidth - ширина области печати в точках (обычно 384 для 58мм или 576 для 80мм).
	// 0 отключает масштабирование.
	MaxWidth int
	// Threshold - порог бинаризации; пиксели темнее печатаются.
	Threshold uint8
	// HighDensity включает двойную плотность для режима BitImageColumn.
	HighDensity bool
}

// DefaultPaperWidth - ширина печати 58мм принтера в точках.
const DefaultPaperWidth = 384

// DefaultImageOptions возвращает режим BitImageColumn с двойной плотностью
// и масштабированием до ширины 58мм ленты.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Impl:        BitImageColumn,
		MaxWidth:    DefaultPaperWidth,
		Threshold:   128,
		HighDensity: true,
	}
}

// bitmap - монохромный растр, true означает чёрную точку.
type bitmap struct {
	width, height int
	dots          []bool
}

func (b *bitmap) at(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.dots[y*b.width+x]
}

// loadBitmap открывает файл и готовит монохромный растр.
func loadBitmap(path string, opts ImageOptions) (*bitmap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return decodeBitmap(file, opts)
}

// decodeBitmap декодирует изображение, уменьшает его до MaxWidth и бинаризует.
func decodeBitmap(r io.Reader, opts ImageOptions) (*bitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования изображения: %w", err)
	}
	return toBitmap(img, opts)
}

func toBitmap(img image.Image, opts ImageOptions) (*bitmap, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	newWidth, newHeight := width, height
	if opts.MaxWidth > 0 && width > opts.MaxWidth {
		ratio := float64(opts.MaxWidth) / float64(width)
		newWidth = opts.MaxWidth
		newHeight = int(float64(height) * ratio)
		if newHeight < 1 {
			newHeight = 1
		}
	}

	// Прозрачные участки ложатся на белый фон, как бумага.
	gray := image.NewGray(image.Rect(0, 0, newWidth, newHeight))
	draw.Draw(gray, gray.Bounds(), image.White, image.Point{}, draw.Src)
	if newWidth == width && newHeight == height {
		draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(gray, gray.Bounds(), img, bounds, draw.Over, nil)
	}

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = 128
	}
	bm := &bitmap{width: newWidth, height: newHeight, dots: make([]bool, newWidth*newHeight)}
	for y := 0; y < newHeight; y++ {
		for x := 0; x < newWidth; x++ {
			bm.dots[y*newWidth+x] = gray.GrayAt(x, y).Y < threshold
		}
	}
	return bm, nil
}

func encodeImage(bm *bitmap, opts ImageOptions) ([]byte, error) {
	switch opts.Impl {
	case BitImageColumn, "":
		return encodeColumn(bm, opts.HighDensity), nil
	case BitImageRaster:
		return encodeRaster(bm), nil
	}
	return nil, fmt.Errorf("escpos: unknown image implementation %q", opts.Impl)
}

// encodeColumn печатает растр полосами по 24 точки (ESC * m nL nH d1...dk).
// Каждая колонка полосы - три байта, старший бит первого байта - верхняя точка.
func encodeColumn(bm *bitmap, highDensity bool) []byte {
	const stripe = 24
	mode := byte(32) // 24 точки, одинарная плотность
	if highDensity {
		mode = 33
	}
	header := append([]byte{esc, '*', mode}, lowHigh(bm.width)...)

	out := make([]byte, 0, len(cmdLineSpacing16)+(bm.height/stripe+1)*(len(header)+bm.width*3+1)+2)
	out = append(out, cmdLineSpacing16...)
	for top := 0; top < bm.height; top += stripe {
		out = append(out, header...)
		for x := 0; x < bm.width; x++ {
			for k := 0; k < stripe/8; k++ {
				var b byte
				for bit := 0; bit < 8; bit++ {
					if bm.at(x, top+k*8+bit) {
						b |= 0x80 >> uint(bit)
					}
				}
				out = append(out, b)
			}
		}
		out = append(out, lf)
	}
	out = append(out, cmdLineSpacingDf...)
	return out
}

// encodeRaster передаёт растр одной командой GS v 0.
func encodeRaster(bm *bitmap) []byte {
	rowBytes := (bm.width + 7) / 8
	out := make([]byte, 0, 8+rowBytes*bm.height)
	out = append(out, gs, 'v', '0', 0)
	out = append(out, lowHigh(rowBytes)...)
	out = append(out, lowHigh(bm.height)...)
	for y := 0; y < bm.height; y++ {
		for bx := 0; bx < rowBytes; bx++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				if bm.at(bx*8+bit, y) {
					b |= 0x80 >> uint(bit)
				}
			}
			out = append(out, b)
		}
	}
	return out
}
