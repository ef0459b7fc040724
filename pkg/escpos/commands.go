package escpos

// Управляющие символы ESC/POS
const (
	nul = 0x00
	lf  = 0x0A
	dle = 0x10
	eot = 0x04
	esc = 0x1B
	gs  = 0x1D
)

var (
	cmdInit          = []byte{esc, '@'}
	cmdLineSpacing16 = []byte{esc, '3', 16}
	cmdLineSpacingDf = []byte{esc, '2'}
	cmdFullCut       = []byte{gs, 'V', 0x00}
	cmdPartialCut    = []byte{gs, 'V', 0x01}
)

// cutFeedLines - количество строк, прогоняемых перед отрезкой,
// чтобы последняя строка прошла нож.
const cutFeedLines = 6

// Запросы статуса реального времени (DLE EOT n)
const (
	statusPrinter = 1
	statusOffline = 2
	statusPaper   = 4
)

// lowHigh кодирует n как два байта nL nH.
func lowHigh(n int) []byte {
	return []byte{byte(n & 0xFF), byte((n >> 8) & 0xFF)}
}
