package escpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeQR(t *testing.T) {
	opts := DefaultQROptions()
	opts.Size = 12

	data, err := encodeQR("Circuit Digest", opts)
	require.NoError(t, err)

	var expected []byte
	expected = append(expected, 0x1D, '(', 'k', 0x04, 0x00, '1', 'A', '2', 0x00)
	expected = append(expected, 0x1D, '(', 'k', 0x03, 0x00, '1', 'C', 12)
	expected = append(expected, 0x1D, '(', 'k', 0x03, 0x00, '1', 'E', '0')
	expected = append(expected, 0x1D, '(', 'k', 0x11, 0x00, '1', 'P', '0')
	expected = append(expected, "Circuit Digest"...)
	expected = append(expected, 0x1D, '(', 'k', 0x03, 0x00, '1', 'Q', '0')

	assert.Equal(t, expected, data)
}

func TestEncodeQR_Errors(t *testing.T) {
	_, err := encodeQR("", DefaultQROptions())
	assert.ErrorIs(t, err, ErrEmptyQR)

	opts := DefaultQROptions()
	opts.Size = 17
	_, err = encodeQR("x", opts)
	assert.ErrorIs(t, err, ErrInvalidQR)

	opts = DefaultQROptions()
	opts.Model = 3
	_, err = encodeQR("x", opts)
	assert.ErrorIs(t, err, ErrInvalidQR)

	opts = DefaultQROptions()
	opts.ECLevel = ECLevel(4)
	_, err = encodeQR("x", opts)
	assert.ErrorIs(t, err, ErrInvalidQR)
}
