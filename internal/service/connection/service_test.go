package connection

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"

	"receiptprinter/internal/infrastructure/logger"
	"receiptprinter/pkg/escpos"
)

func TestSystemPorts_Sorted(t *testing.T) {
	s := NewService(logger.NewNop())
	s.listPorts = func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{
			{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0416", PID: "5011", Product: "POS58"},
			{Name: "/dev/serial0"},
		}, nil
	}

	got, err := s.SystemPorts()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/dev/serial0", got[0].Name)
	assert.Equal(t, PortInfo{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0416", PID: "5011", Product: "POS58"}, got[1])
}

func TestSystemPorts_Error(t *testing.T) {
	s := NewService(logger.NewNop())
	s.listPorts = func() ([]*enumerator.PortDetails, error) {
		return nil, errors.New("no sysfs")
	}
	_, err := s.SystemPorts()
	assert.Error(t, err)
}

func TestOpen_FileConnection(t *testing.T) {
	s := NewService(logger.NewNop())
	p, err := s.Open(escpos.Config{Connection: escpos.ConnFile, OutputPath: filepath.Join(t.TempDir(), "r.bin")})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestOpen_UsesDriverFactory(t *testing.T) {
	rec := escpos.NewRecorder()
	s := NewService(logger.NewNop())
	s.newDriver = func(escpos.Config) (escpos.Printer, error) { return rec, nil }

	p, err := s.Open(escpos.DefaultConfig())
	require.NoError(t, err)
	assert.Same(t, rec, p)
	assert.True(t, rec.IsOpen())
}

func TestOpen_PropagatesOpenError(t *testing.T) {
	rec := escpos.NewRecorder()
	boom := errors.New("device not found")
	rec.FailOn("open", boom)
	s := NewService(logger.NewNop())
	s.newDriver = func(escpos.Config) (escpos.Printer, error) { return rec, nil }

	_, err := s.Open(escpos.DefaultConfig())
	assert.ErrorIs(t, err, boom)
}

func TestOpen_UnknownCodePage(t *testing.T) {
	s := NewService(logger.NewNop())
	_, err := s.Open(escpos.Config{Connection: escpos.ConnFile, CodePage: "nope"})
	assert.ErrorIs(t, err, escpos.ErrUnknownCodePage)
}
