package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatching_RetainsBytesUntilFlush(t *testing.T) {
	tr := &fakeTransport{}
	e := NewEndpoint(tr)
	require.NoError(t, e.SetBatchingAllowed(true))

	require.NoError(t, e.SendBytes([]byte{0x01}))
	assert.Empty(t, tr.frames, "batched frame should not reach the transport yet")

	require.NoError(t, e.FlushBatch())
	assert.NotEmpty(t, tr.frames)
	assert.Equal(t, []byte{0x82, 0x01, 0x01}, tr.wireBytes())
}

func TestBatching_DisablingFlushesPendingBytes(t *testing.T) {
	tr := &fakeTransport{}
	e := NewEndpoint(tr)
	require.NoError(t, e.SetBatchingAllowed(true))
	require.NoError(t, e.SendBytes([]byte{0x01}))
	require.Empty(t, tr.frames)

	require.NoError(t, e.SetBatchingAllowed(false))
	assert.NotEmpty(t, tr.frames)
}

func TestBatching_CloseFlushesAndRecordsAnyError(t *testing.T) {
	tr := &fakeTransport{failAt: 1}
	e := NewEndpoint(tr)
	require.NoError(t, e.SetBatchingAllowed(true))
	require.NoError(t, e.SendBytes([]byte{0x01}))

	require.NoError(t, e.Close())
	require.Error(t, e.LastFlushOnCloseErr())
}
