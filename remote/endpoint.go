package remote

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	headerBufSize = 14
	outputBufSize = 8192
	encodeBufSize = 8192
)

// Endpoint is the session-scoped sender described in spec.md section 3. It
// owns every buffer and every piece of coordination state the send path
// needs; the only things it does not own are the Transport it writes
// through and the Session it belongs to, both external collaborators.
//
// Grounded on Tomcat's WsRemoteEndpointImplBase: this type is a direct port
// of its field list, restated in Go idiom (explicit mutexes instead of
// `synchronized`, an atomic.Bool instead of AtomicBoolean).
type Endpoint struct {
	transport Transport
	session   Session

	stateMachine stateMachine

	// Guards messagePartInProgress, messagePartQueue, closed, and the
	// fragmentation flags (spec.md section 4.4) in startMessage, endMessage
	// and Close. writeMessagePart reads closed and fragmented/text and sets
	// closed and nextFragmented/nextText without holding it (see queue.go).
	partMu                sync.Mutex
	messagePartInProgress bool
	messagePartQueue      []*messagePart
	closed                bool
	fragmented            bool
	text                  bool
	nextFragmented        bool
	nextText              bool

	// Scratch buffers, reused across sends under the queue-serialization
	// invariant (spec.md section 5): only ever touched while
	// messagePartInProgress is true for the part that owns them.
	headerBuf [headerBufSize]byte
	outputBuf [outputBufSize]byte
	encodeBuf [encodeBufSize]byte

	// outPos is how many bytes of outputBuf are currently batched and not
	// yet handed to the transport. Read/written only while the single
	// in-flight message part owns it (see queue.go).
	outPos int

	batchingAllowed atomic.Bool
	sendTimeoutMu   sync.Mutex
	sendTimeout     time.Duration

	encoders []EncoderEntry

	timer *SendTimer

	flushOnCloseMu  sync.Mutex
	flushOnCloseErr error
}

// NewEndpoint constructs an Endpoint bound to transport, applying opts in
// order. A nil Session is replaced with NewNopSession.
func NewEndpoint(transport Transport, opts ...Option) *Endpoint {
	e := &Endpoint{
		transport:   transport,
		sendTimeout: defaultSendTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.session == nil {
		e.session = NewNopSession()
	}
	return e
}

// GetSendTimeout returns the effective blocking-send timeout: the Session's
// BLOCKING_SEND_TIMEOUT user property if set, else the Endpoint's own
// default (spec.md section 6).
func (e *Endpoint) GetSendTimeout() time.Duration {
	if v, ok := e.session.UserProperties()[blockingSendTimeoutProperty]; ok {
		if d, ok := v.(time.Duration); ok {
			return d
		}
	}
	e.sendTimeoutMu.Lock()
	defer e.sendTimeoutMu.Unlock()
	return e.sendTimeout
}

// SetSendTimeout sets the Endpoint's own default blocking-send timeout.
// Pass a negative duration to wait forever.
func (e *Endpoint) SetSendTimeout(d time.Duration) {
	e.sendTimeoutMu.Lock()
	defer e.sendTimeoutMu.Unlock()
	e.sendTimeout = d
}

// GetBatchingAllowed reports whether batching is currently enabled.
func (e *Endpoint) GetBatchingAllowed() bool {
	return e.batchingAllowed.Load()
}

// SetBatchingAllowed flips the batching flag (spec.md section 4.11). Turning
// batching off flushes any bytes already sitting in the output buffer.
func (e *Endpoint) SetBatchingAllowed(allowed bool) error {
	old := e.batchingAllowed.Swap(allowed)
	if old && !allowed {
		return e.FlushBatch()
	}
	return nil
}

// FlushBatch forces any batched bytes out to the transport, blocking until
// the flush completes (spec.md section 4.11).
func (e *Endpoint) FlushBatch() error {
	return e.startMessageBlock(opcodeFlush, nil, true)
}

// LastFlushOnCloseErr returns the error (if any) encountered while flushing
// batched bytes during Close, matching Tomcat's logged-and-swallowed
// "wsRemoteEndpoint.flushOnCloseFailed" warning (see SPEC_FULL.md). Absent a
// logging dependency, the error is retained here instead of discarded.
func (e *Endpoint) LastFlushOnCloseErr() error {
	e.flushOnCloseMu.Lock()
	defer e.flushOnCloseMu.Unlock()
	return e.flushOnCloseErr
}

// Close destroys every registered encoder, then closes the transport
// (spec.md section 6). Safe to call once; a second call is a no-op.
func (e *Endpoint) Close() error {
	e.partMu.Lock()
	alreadyClosed := e.closed
	e.partMu.Unlock()
	if alreadyClosed {
		return nil
	}

	if e.batchingAllowed.Load() {
		if err := e.SetBatchingAllowed(false); err != nil {
			e.flushOnCloseMu.Lock()
			e.flushOnCloseErr = err
			e.flushOnCloseMu.Unlock()
		}
	}

	// closed must flip only after the pre-flush above: writeMessagePart
	// rejects every part, including the flush itself, once closed is true.
	e.partMu.Lock()
	e.closed = true
	e.partMu.Unlock()

	for _, entry := range e.encoders {
		entry.Encoder.Destroy()
	}
	return e.transport.DoClose()
}
