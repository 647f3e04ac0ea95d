package remote

import "sync"

// deferredTransport is a Transport test double that holds each DoWrite's
// handler instead of firing it inline, so a test can control exactly when a
// write completes. This is what fakeTransport cannot exercise: the
// message-part queue only ever sees more than one part in flight/queued when
// a write is still outstanding when the next send call arrives.
type deferredTransport struct {
	mu      sync.Mutex
	masked  bool
	frames  [][]byte
	pending *deferredWrite
}

type deferredWrite struct {
	handler SendHandler
	data    []byte
}

func (d *deferredTransport) DoWrite(handler SendHandler, buffers ...[]byte) {
	var total []byte
	for _, b := range buffers {
		total = append(total, b...)
	}
	d.mu.Lock()
	d.pending = &deferredWrite{handler: handler, data: total}
	d.mu.Unlock()
}

func (d *deferredTransport) IsMasked() bool { return d.masked }

func (d *deferredTransport) DoClose() error { return nil }

// completePending fires the currently-held write's handler with OK, moving
// its bytes into the recorded wire log. It panics if nothing is pending,
// since that always indicates a test bug (the caller lost track of how many
// writes are outstanding).
func (d *deferredTransport) completePending() {
	d.mu.Lock()
	p := d.pending
	d.pending = nil
	d.mu.Unlock()
	if p == nil {
		panic("deferredTransport: completePending called with nothing pending")
	}
	d.mu.Lock()
	d.frames = append(d.frames, p.data)
	d.mu.Unlock()
	p.handler.OnResult(ResultOK)
}

func (d *deferredTransport) wireBytes() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	var all []byte
	for _, fr := range d.frames {
		all = append(all, fr...)
	}
	return all
}
