package remote

import (
	"errors"
	"time"
)

// stateUpdateHandler wraps a caller's handler for single-shot sends (full or
// partial binary) where the facade has no other way to learn when the wire
// write finished. On a successful result it advances the state machine with
// complete(last) before forwarding (spec.md section 4.10, "StateUpdate
// handler"). Text sends don't need this: the text pump already advances the
// state machine itself once the char sequence is fully drained.
type stateUpdateHandler struct {
	e           *Endpoint
	last        bool
	userHandler SendHandler
}

func (h *stateUpdateHandler) OnResult(r SendResult) {
	if r.OK() {
		if err := h.e.stateMachine.complete(h.last); err != nil {
			h.userHandler.OnResult(ResultErr(err))
			return
		}
	}
	h.userHandler.OnResult(r)
}

// startMessageBlock drives startMessage through a Future and waits,
// bypassing the sender state machine. Used internally for the FLUSH
// pseudo-message, which is plumbing rather than a data/control frame.
func (e *Endpoint) startMessageBlock(opcode Opcode, payload []byte, last bool) error {
	fut := newFuture()
	e.startMessage(opcode, payload, last, fut)
	return e.blockOn(fut)
}

// blockOn waits on fut using the endpoint's effective send timeout and
// translates the result into a plain error (spec.md section 5, "Blocking
// facades").
func (e *Endpoint) blockOn(fut *Future) error {
	start := time.Now()
	res, err := fut.Get(e.GetSendTimeout())
	if e.timer != nil {
		e.timer.Record(time.Since(start))
	}
	if err != nil {
		return err
	}
	if !res.OK() {
		var se *SendError
		if errors.As(res.Err, &se) {
			return se
		}
		return newSendError(KindIO, res.Err)
	}
	return nil
}
