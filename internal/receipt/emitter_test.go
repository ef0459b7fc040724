package receipt

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"receiptprinter/internal/clock"
	"receiptprinter/internal/infrastructure/logger"
	"receiptprinter/pkg/escpos"
)

var fixedTime = time.Date(2024, time.March, 5, 9, 7, 3, 0, time.UTC)

func emit(t *testing.T, at time.Time) []escpos.Call {
	t.Helper()
	rec := escpos.NewRecorder()
	e := NewEmitter(rec, clock.NewFixed(at), DefaultOptions(), logger.NewNop())
	require.NoError(t, e.Emit(context.Background()))
	return rec.Calls()
}

func indexOf(calls []escpos.Call, op string, arg interface{}) int {
	for i, c := range calls {
		if c.Op == op && len(c.Args) > 0 && c.Args[0] == arg {
			return i
		}
	}
	return -1
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Mar/05/2024 09:07:03", FormatTimestamp(fixedTime))
	assert.Equal(t, "Dec/31/1999 23:59:59", FormatTimestamp(time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestFormatTimestamp_Pattern(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z][a-z]{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`)
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		at := start.Add(time.Duration(i)*22*time.Hour + time.Duration(i*37)*time.Second)
		assert.Regexp(t, pattern, FormatTimestamp(at))
	}
}

func TestEmit_FullSequence(t *testing.T) {
	calls := emit(t, fixedTime)

	var ops []string
	for _, c := range calls {
		ops = append(ops, c.Op)
	}
	expectedOps := []string{
		"set", "text",
		"set", "image",
		"set", "textln", "text", "text", "text", "text", "text",
		"set", "text", "text", "textln",
		"textln",
	}
	for range itemTable {
		expectedOps = append(expectedOps, "textln")
	}
	expectedOps = append(expectedOps, "set", "qr", "textln", "barcode", "cut")
	assert.Equal(t, expectedOps, ops)

	assert.Equal(t, []interface{}{preambleStyle}, calls[0].Args)
	assert.Equal(t, []interface{}{"\n"}, calls[1].Args)
	assert.Equal(t, []interface{}{centeredStyle}, calls[2].Args)
	assert.Equal(t, []interface{}{DefaultLogoPath, escpos.BitImageColumn}, calls[3].Args)
	assert.Equal(t, []interface{}{"Mar/05/2024 09:07:03"}, calls[13].Args)
}

func TestEmit_HeaderStyleKeepsSizeAndDensity(t *testing.T) {
	calls := emit(t, fixedTime)
	header := calls[4].Args[0].(escpos.Style)

	assert.Equal(t, escpos.AlignLeft, header.Align)
	assert.Equal(t, escpos.UnderlineNone, header.Underline)
	assert.Equal(t, 2, header.Width)
	assert.Equal(t, 2, header.Height)
	assert.Equal(t, 2, header.Density)
}

func TestEmit_ImageOnceBeforeHeader(t *testing.T) {
	calls := emit(t, fixedTime)

	images := 0
	for _, c := range calls {
		if c.Op == "image" {
			images++
		}
	}
	assert.Equal(t, 1, images)
	assert.Less(t, indexOf(calls, "image", DefaultLogoPath), indexOf(calls, "textln", merchantTitle))
}

func TestEmit_LiteralContent(t *testing.T) {
	calls := emit(t, fixedTime)

	for _, line := range itemTable {
		assert.NotEqual(t, -1, indexOf(calls, "textln", line), line)
	}
	for _, line := range []string{
		"     SUBTOTAL:  3760",
		"     DISCOUNT:  0.8",
		"     VAT @ 18%: 676.8",
		"    BILL TOTAL: 4436.8",
		"     TENDERD:  0.8",
		"     BALANCE: 676.8",
	} {
		assert.NotEqual(t, -1, indexOf(calls, "textln", line), line)
	}

	qr := calls[indexOf(calls, "qr", "Circuit Digest")]
	assert.Equal(t, []interface{}{"Circuit Digest", 12}, qr.Args)

	bc := calls[indexOf(calls, "barcode", "123456")]
	assert.Equal(t, []interface{}{"123456", escpos.CODE39}, bc.Args)
}

func TestEmit_CutIsLast(t *testing.T) {
	calls := emit(t, fixedTime)
	last := calls[len(calls)-1]
	assert.Equal(t, "cut", last.Op)
	assert.Equal(t, []interface{}{escpos.CutFull}, last.Args)
}

func TestEmit_DeterministicApartFromTimestamp(t *testing.T) {
	first := emit(t, fixedTime)
	second := emit(t, fixedTime.Add(26*time.Hour+13*time.Second))

	require.Len(t, second, len(first))
	differing := 0
	for i := range first {
		if !assert.ObjectsAreEqual(first[i], second[i]) {
			differing++
			assert.Equal(t, "text", first[i].Op)
			assert.Equal(t, "Mar/06/2024 11:07:16", second[i].Args[0])
		}
	}
	assert.Equal(t, 1, differing)
}

func TestEmit_ErrorAbortsSequence(t *testing.T) {
	boom := errors.New("device not found")

	tests := []struct {
		op       string
		lastStep string
	}{
		{"image", "logo"},
		{"qr", "qr"},
		{"barcode", "barcode"},
		{"cut", "cut"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			rec := escpos.NewRecorder()
			rec.FailOn(tt.op, boom)
			e := NewEmitter(rec, clock.NewFixed(fixedTime), DefaultOptions(), logger.NewNop())

			err := e.Emit(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), "receipt: "+tt.lastStep)

			calls := rec.Calls()
			assert.Equal(t, tt.op, calls[len(calls)-1].Op)
		})
	}
}

func TestEmit_CancelledContext(t *testing.T) {
	rec := escpos.NewRecorder()
	e := NewEmitter(rec, clock.NewFixed(fixedTime), DefaultOptions(), logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Emit(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.Calls())
}

func TestEmit_CustomLogo(t *testing.T) {
	rec := escpos.NewRecorder()
	opts := DefaultOptions()
	opts.LogoPath = "/tmp/logo.png"
	opts.Image.Impl = escpos.BitImageRaster
	e := NewEmitter(rec, clock.NewFixed(fixedTime), opts, logger.NewNop())
	require.NoError(t, e.Emit(context.Background()))

	calls := rec.Calls()
	assert.Equal(t, []interface{}{"/tmp/logo.png", escpos.BitImageRaster}, calls[3].Args)
}

func TestStamp_LogsDate(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	stamp := Stamp(clock.NewFixed(fixedTime), logger.FromZap(zap.New(core)))

	assert.Equal(t, "Mar/05/2024 09:07:03", stamp)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Today's date: Mar/05/2024 09:07:03", logs.All()[0].Message)
}

func TestEmitAt_UsesGivenStamp(t *testing.T) {
	rec := escpos.NewRecorder()
	// часы не должны читаться повторно
	e := NewEmitter(rec, clock.NewFixed(time.Time{}), DefaultOptions(), logger.NewNop())
	require.NoError(t, e.EmitAt(context.Background(), "Mar/05/2024 09:07:03"))

	assert.Equal(t, []interface{}{"Mar/05/2024 09:07:03"}, rec.Calls()[13].Args)
}

func TestEmit_FailedStepLoggedWithName(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := escpos.NewRecorder()
	rec.FailOn("qr", errors.New("paper jam"))
	e := NewEmitter(rec, clock.NewFixed(fixedTime), DefaultOptions(), logger.FromZap(zap.New(core)))

	require.Error(t, e.Emit(context.Background()))
	failed := logs.FilterMessage("receipt step failed: paper jam").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "qr", failed[0].ContextMap()["step"])
}
