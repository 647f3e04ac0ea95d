package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderLen_Boundaries(t *testing.T) {
	cases := []struct {
		payloadLen int
		masked     bool
		want       int
	}{
		{125, false, 2},
		{126, false, 4},
		{65535, false, 4},
		{65536, false, 10},
		{131072, false, 10},
		{0, false, 2},
		{125, true, 6},
		{65536, true, 14},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, headerLen(c.payloadLen, c.masked), "payloadLen=%d masked=%v", c.payloadLen, c.masked)
	}
}

func TestWriteHeader_ShortUnmaskedBinary(t *testing.T) {
	var buf [maxHeaderLen]byte
	n := writeHeader(buf[:], OpcodeBinary, 2, true, true, false, [4]byte{})
	require.Equal(t, 2, n)
	assert.Equal(t, []byte{0x82, 0x02}, buf[:n])
}

func TestWriteHeader_MaskedShortText(t *testing.T) {
	var buf [maxHeaderLen]byte
	mask := [4]byte{0x01, 0x02, 0x03, 0x04}
	n := writeHeader(buf[:], OpcodeText, 2, true, true, true, mask)
	require.Equal(t, 6, n)
	assert.Equal(t, []byte{0x81, 0x82, 0x01, 0x02, 0x03, 0x04}, buf[:n])

	payload := []byte("Hi")
	maskBytes(mask, payload)
	assert.Equal(t, []byte{0x49, 0x6B}, payload)
}

func TestWriteHeader_MediumBinary(t *testing.T) {
	var buf [maxHeaderLen]byte
	n := writeHeader(buf[:], OpcodeBinary, 300, true, true, false, [4]byte{})
	require.Equal(t, 4, n)
	assert.Equal(t, []byte{0x82, 0x7E, 0x01, 0x2C}, buf[:n])
}

func TestWriteHeader_LargeBinary(t *testing.T) {
	var buf [maxHeaderLen]byte
	n := writeHeader(buf[:], OpcodeBinary, 70000, true, true, false, [4]byte{})
	require.Equal(t, 10, n)
	assert.Equal(t, []byte{0x82, 0x7F, 0, 0, 0, 0, 0, 1, 0x11, 0x70}, buf[:n])
}

func TestWriteHeader_ContinuationOpcode(t *testing.T) {
	var buf [maxHeaderLen]byte
	n := writeHeader(buf[:], OpcodeText, 3, false, false, false, [4]byte{})
	require.Equal(t, 2, n)
	assert.Equal(t, byte(0x00), buf[0], "non-first frame must carry opcode 0 and FIN=0")
}

func TestMaskBytes_WrapsEveryFourBytes(t *testing.T) {
	mask := [4]byte{0xFF, 0x00, 0xAA, 0x55}
	payload := make([]byte, 9)
	maskBytes(mask, payload)
	want := []byte{0xFF, 0x00, 0xAA, 0x55, 0xFF, 0x00, 0xAA, 0x55, 0xFF}
	assert.Equal(t, want, payload)
}
