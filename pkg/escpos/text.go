package escpos

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// codePage связывает кодировку golang.org/x/text с номером таблицы ESC t n.
type codePage struct {
	charmap *charmap.Charmap
	table   byte
}

var codePages = map[string]codePage{
	"CP437":  {charmap.CodePage437, 0},
	"CP850":  {charmap.CodePage850, 2},
	"CP860":  {charmap.CodePage860, 3},
	"CP863":  {charmap.CodePage863, 4},
	"CP865":  {charmap.CodePage865, 5},
	"CP1252": {charmap.Windows1252, 16},
	"CP866":  {charmap.CodePage866, 17},
	"CP852":  {charmap.CodePage852, 18},
	"CP858":  {charmap.CodePage858, 19},
	"CP1251": {charmap.Windows1251, 46},
}

// DefaultCodePage - таблица символов по умолчанию у большинства принтеров.
const DefaultCodePage = "CP437"

func lookupCodePage(name string) (codePage, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		key = DefaultCodePage
	}
	cp, ok := codePages[key]
	if !ok {
		return codePage{}, fmt.Errorf("%w: %q", ErrUnknownCodePage, name)
	}
	return cp, nil
}

// selectCommand возвращает ESC t n для таблицы.
func (cp codePage) selectCommand() []byte {
	return []byte{esc, 't', cp.table}
}

// encode конвертирует строку из UTF-8 в однобайтовую кодировку принтера.
// Символы, отсутствующие в таблице, заменяются на '?'.
func (cp codePage) encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 {
			out = append(out, byte(r))
			continue
		}
		b, ok := cp.charmap.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}
