package escpos

import "fmt"

// Align задаёт выравнивание строки.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("Align(%d)", int(a))
}

// Font выбирает встроенный шрифт принтера.
type Font int

const (
	FontA Font = iota
	FontB
)

func (f Font) String() string {
	switch f {
	case FontA:
		return "a"
	case FontB:
		return "b"
	}
	return fmt.Sprintf("Font(%d)", int(f))
}

// Underline - толщина подчёркивания.
type Underline int

const (
	UnderlineNone Underline = iota
	UnderlineSingle
	UnderlineDouble
)

// Style описывает состояние форматирования текста.
// Set передаёт принтеру все поля целиком, поэтому для частичного изменения
// нужно скопировать текущий стиль и поменять нужные поля.
type Style struct {
	Align     Align
	Font      Font
	Width     int // множитель ширины 1..8
	Height    int // множитель высоты 1..8
	Density   int // плотность печати 0..8
	Underline Underline
	Bold      bool
	Invert    bool // белым по чёрному
	Smooth    bool
	Flip      bool // печать вверх ногами
}

// DefaultDensity соответствует средней плотности большинства термоголовок.
const DefaultDensity = 4

// DefaultStyle возвращает стиль после инициализации принтера.
func DefaultStyle() Style {
	return Style{
		Align:   AlignLeft,
		Font:    FontA,
		Width:   1,
		Height:  1,
		Density: DefaultDensity,
	}
}

// Validate проверяет диапазоны значений.
func (s Style) Validate() error {
	switch {
	case s.Align < AlignLeft || s.Align > AlignRight:
		return fmt.Errorf("%w: align %d", ErrInvalidStyle, s.Align)
	case s.Font != FontA && s.Font != FontB:
		return fmt.Errorf("%w: font %d", ErrInvalidStyle, s.Font)
	case s.Width < 1 || s.Width > 8:
		return fmt.Errorf("%w: width %d out of range 1..8", ErrInvalidStyle, s.Width)
	case s.Height < 1 || s.Height > 8:
		return fmt.Errorf("%w: height %d out of range 1..8", ErrInvalidStyle, s.Height)
	case s.Density < 0 || s.Density > 8:
		return fmt.Errorf("%w: density %d out of range 0..8", ErrInvalidStyle, s.Density)
	case s.Underline < UnderlineNone || s.Underline > UnderlineDouble:
		return fmt.Errorf("%w: underline %d", ErrInvalidStyle, s.Underline)
	}
	return nil
}

// encodeStyle формирует последовательность команд для стиля.
func encodeStyle(s Style) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, 27)
	out = append(out, esc, 'a', byte(s.Align))
	out = append(out, esc, 'M', byte(s.Font))
	out = append(out, esc, '-', byte(s.Underline))
	out = append(out, esc, 'E', boolByte(s.Bold))
	out = append(out, gs, '!', byte((s.Width-1)<<4|(s.Height-1)))
	out = append(out, gs, '|', byte(s.Density))
	out = append(out, gs, 'B', boolByte(s.Invert))
	out = append(out, gs, 'b', boolByte(s.Smooth))
	out = append(out, esc, '{', boolByte(s.Flip))
	return out, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
