package remote

import (
	"errors"
	"sync"
)

var errFakeWriteFailed = errors.New("fake transport: write failed")

// fakeTransport is a deterministic, synchronous Transport test double: every
// DoWrite completes immediately on the calling goroutine, appending the
// written bytes to a recorded wire log. Grounded on the teacher's layered
// test-stream doubles in stream_test.go, which drive completions
// synchronously to keep tests deterministic.
type fakeTransport struct {
	mu     sync.Mutex
	masked bool
	frames [][]byte // one entry per DoWrite call, concatenated buffers
	failAt int      // if > 0, the failAt-th DoWrite call fails instead
	calls  int
}

func (f *fakeTransport) DoWrite(handler SendHandler, buffers ...[]byte) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	var total []byte
	for _, b := range buffers {
		total = append(total, b...)
	}
	f.frames = append(f.frames, total)
	f.mu.Unlock()

	if f.failAt > 0 && call == f.failAt {
		handler.OnResult(ResultErr(errFakeWriteFailed))
		return
	}
	handler.OnResult(ResultOK)
}

func (f *fakeTransport) IsMasked() bool { return f.masked }

func (f *fakeTransport) DoClose() error { return nil }

func (f *fakeTransport) wireBytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []byte
	for _, fr := range f.frames {
		all = append(all, fr...)
	}
	return all
}
