package escpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodePageEncode(t *testing.T) {
	cp, err := lookupCodePage("cp437")
	require.NoError(t, err)

	assert.Equal(t, []byte("TEL : 0141222585\n"), cp.encode("TEL : 0141222585\n"))
	assert.Equal(t, []byte{0x82}, cp.encode("é"))
	assert.Equal(t, []byte{'?'}, cp.encode("₹"))
}

func TestCodePageEncode_Cyrillic(t *testing.T) {
	cp, err := lookupCodePage("CP866")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x8A, 0xAA, 0xAC}, cp.encode("Ккм"))
	assert.Equal(t, []byte{0x1B, 't', 17}, cp.selectCommand())
}

func TestLookupCodePage(t *testing.T) {
	cp, err := lookupCodePage("")
	require.NoError(t, err)
	assert.Equal(t, byte(0), cp.table)

	_, err = lookupCodePage("KOI8")
	assert.ErrorIs(t, err, ErrUnknownCodePage)
}
