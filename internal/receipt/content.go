package receipt

import "receiptprinter/pkg/escpos"

// TimestampLayout печатает дату как Jan/02/2006 15:04:05.
const TimestampLayout = "Jan/02/2006 15:04:05"

// Стили секций. Все поля задаются явно: принтер не должен зависеть
// от состояния, оставшегося после предыдущей печати.
var (
	preambleStyle = escpos.Style{
		Align:   escpos.AlignLeft,
		Font:    escpos.FontA,
		Width:   2,
		Height:  2,
		Density: 3,
	}
	centeredStyle = escpos.Style{
		Align:   escpos.AlignCenter,
		Font:    escpos.FontA,
		Width:   2,
		Height:  2,
		Density: 2,
	}
	bodyStyle = escpos.Style{
		Align:   escpos.AlignLeft,
		Font:    escpos.FontA,
		Width:   2,
		Height:  2,
		Density: 2,
	}
)

// Шапка продавца. Первая строка печатается через Textln, остальные через Text.
const merchantTitle = "CIRCUIT DIGEST\n"

var merchantLines = []string{
	"AIRPORT ROAD\n",
	"LOCATION : JAIPUR\n",
	"TEL : 0141222585\n",
	"GSTIN : \n",
	"Bill No. : \n\n",
}

const (
	dateLabel    = "DATE : "
	cashierLabel = "CASHIER : "
)

// Таблица позиций и итоги печатаются как есть, без пересчёта:
// скидка, НДС и остаток не согласуются между собой и так и должны выйти на чек.
var itemTable = []string{
	" ===========================",
	"      ITEM   QTY  PRICE    GB",
	" --------------------------",
	"IR SENSOR  2  30   60",
	"ULTRASONIC  2  80   160",
	"RASPBERRY  1  3300   3300",
	"ADOPTOR  2  120   240",
	" --------------------------",
	"     SUBTOTAL:  3760",
	"     DISCOUNT:  0.8",
	"     VAT @ 18%: 676.8",
	" ===========================",
	"    BILL TOTAL: 4436.8",
	"     TENDERD:  0.8",
	"     BALANCE: 676.8",
	" --------------------------",
	"          THANK YOU",
	" ===========================",
}

const (
	qrPayload      = "Circuit Digest"
	qrSize         = 12
	barcodePayload = "123456"
)

const barcodeSymbology = escpos.CODE39
