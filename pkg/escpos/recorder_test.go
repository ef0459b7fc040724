package escpos

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordsCalls(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	require.NoError(t, r.Open())
	assert.True(t, r.IsOpen())
	require.NoError(t, r.Textln(ctx, "HELLO"))
	require.NoError(t, r.Barcode(ctx, "123456", CODE39, DefaultBarcodeOptions()))
	require.NoError(t, r.Cut(ctx, CutFull))

	calls := r.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, Call{Op: "textln", Args: []interface{}{"HELLO"}}, calls[1])
	assert.Equal(t, `barcode("123456", CODE39)`, calls[2].String())
	assert.Equal(t, "cut", calls[3].Op)

	r.Reset()
	assert.Empty(t, r.Calls())
}

func TestRecorder_FailOn(t *testing.T) {
	r := NewRecorder()
	boom := errors.New("write failed")
	r.FailOn("qr", boom)

	err := r.QR(context.Background(), "Circuit Digest", DefaultQROptions())
	assert.Same(t, boom, err)
	assert.Len(t, r.Calls(), 1)
}

func TestRecorder_ValidatesLikePrinter(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()
	assert.ErrorIs(t, r.Set(ctx, Style{Width: 0}), ErrInvalidStyle)
	assert.ErrorIs(t, r.Barcode(ctx, "x", EAN8, DefaultBarcodeOptions()), ErrInvalidBarcode)
	assert.ErrorIs(t, r.QR(ctx, "", DefaultQROptions()), ErrEmptyQR)
	assert.Empty(t, r.Calls())
}

func TestRecorder_Status(t *testing.T) {
	r := NewRecorder()
	st, err := r.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Online)
	assert.Equal(t, PaperOK, st.Paper)
}
