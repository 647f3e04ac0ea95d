package remote

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPump_EmitsContinuationFramesPastBufferSize(t *testing.T) {
	tr := &fakeTransport{}
	e := NewEndpoint(tr)

	s := strings.Repeat("a", encodeBufSize+10)
	require.NoError(t, e.SendString(s))

	require.Len(t, tr.frames, 2, "one full buffer frame plus a short final continuation")

	first := tr.frames[0]
	assert.Equal(t, byte(0x01), first[0], "first fragment: FIN=0 TEXT")
	assert.Equal(t, encodeBufSize, len(first)-4, "header for an 8192-byte payload is 4 bytes (126 length class)")

	second := tr.frames[1]
	assert.Equal(t, byte(0x80), second[0], "final fragment: FIN=1 continuation")
	assert.Equal(t, 10, len(second)-2)

	assert.Equal(t, stateOpen, e.stateMachine.current())
}

func TestTextPump_InvalidUTF8IsIllegalArgument(t *testing.T) {
	e := NewEndpoint(&fakeTransport{})
	err := e.SendString(string([]byte{0xff, 0xfe, 0xfd}))
	require.Error(t, err)
	var se *SendError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindIllegalArgument, se.Kind)
}
