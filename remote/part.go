package remote

import "github.com/valyala/bytebufferpool"

// messagePart is one frame queued for emission (spec.md section 3). It is
// immutable after construction; handler is always the wrapper that drives
// endMessage on completion, never the caller's handler directly.
//
// Grounded on Tomcat's private MessagePart, and on the teacher's
// codec/websocket.Frame shape for the payload/opcode/fin fields.
type messagePart struct {
	opcode  Opcode
	payload []byte
	last    bool
	handler SendHandler

	// scratch is set only when this part had to wait in the queue behind
	// one already in progress: the caller's payload slice could be mutated
	// or reused before the queued write actually runs, so the payload is
	// defensively copied into a pooled buffer at enqueue time. Released
	// once the part's handler fires.
	scratch *bytebufferpool.ByteBuffer
}

// scratchPool backs the defensive copies startMessage takes of a part's
// payload when it has to sit behind one already in progress (see
// messagePart.scratch).
//
// The teacher pools its *Frame objects with a bare sync.Pool
// (codec/websocket/frame.go's framePool); this upgrades that pooling
// concern to github.com/valyala/bytebufferpool, already present in the
// teacher's go.mod, which additionally tracks a running size estimate so the
// pool doesn't retain arbitrarily large buffers from one oversized send.
var scratchPool bytebufferpool.Pool

// acquireScratch returns a pooled buffer containing a copy of payload.
func acquireScratch(payload []byte) *bytebufferpool.ByteBuffer {
	b := scratchPool.Get()
	b.B = append(b.B[:0], payload...)
	return b
}

func releaseScratch(b *bytebufferpool.ByteBuffer) {
	scratchPool.Put(b)
}
