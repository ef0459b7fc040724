package escpos

import (
	"context"
	"fmt"
)

// PaperState - состояние датчиков бумаги.
type PaperState int

const (
	PaperOut PaperState = iota
	PaperNearEnd
	PaperOK
)

func (s PaperState) String() string {
	switch s {
	case PaperOut:
		return "out"
	case PaperNearEnd:
		return "near-end"
	case PaperOK:
		return "ok"
	}
	return fmt.Sprintf("PaperState(%d)", int(s))
}

// Status - результат опроса DLE EOT.
type Status struct {
	Online    bool
	CoverOpen bool
	Paper     PaperState
	Raw       [3]byte // ответы на запросы 1, 2 и 4
}

// Status опрашивает принтер командами реального времени.
func (p *escposPrinter) Status(ctx context.Context) (*Status, error) {
	st := &Status{}
	for i, n := range []byte{statusPrinter, statusOffline, statusPaper} {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		b, err := p.transport.Query([]byte{dle, eot, n})
		if err != nil {
			return nil, fmt.Errorf("запрос статуса %d: %w", n, err)
		}
		st.Raw[i] = b
	}
	decodeStatus(st)
	return st, nil
}

// decodeStatus разбирает биты ответов:
// n=1 бит 3 - принтер offline; n=2 бит 2 - крышка открыта;
// n=4 биты 5,6 - бумага закончилась, биты 2,3 - бумага на исходе.
func decodeStatus(st *Status) {
	st.Online = st.Raw[0]&0x08 == 0
	st.CoverOpen = st.Raw[1]&0x04 != 0
	switch {
	case st.Raw[2]&0x60 != 0:
		st.Paper = PaperOut
	case st.Raw[2]&0x0C != 0:
		st.Paper = PaperNearEnd
	default:
		st.Paper = PaperOK
	}
}
