package remote

import "unicode/utf8"

// textPump multi-pass encodes a remaining rune sequence into the endpoint's
// shared encode buffer, emitting one TEXT/continuation frame per pass until
// the sequence is drained (spec.md section 4.6).
//
// Grounded on Tomcat's TextMessageSendHandler. Go has no chunked
// CharsetEncoder/CoderResult equivalent among the pack's dependencies, so
// this uses the standard unicode/utf8 rune encoder directly — there is no
// third-party gap here, just the idiomatic stdlib tool for the job.
type textPump struct {
	e       *Endpoint
	remain  string
	isLast  bool
	handler SendHandler

	isDone bool
}

func newTextPump(e *Endpoint, s string, isLast bool, handler SendHandler) *textPump {
	return &textPump{e: e, remain: s, isLast: isLast, handler: handler}
}

// write encodes as much of the remaining string as fits in the shared
// encode buffer and starts the resulting message part.
func (p *textPump) write() {
	buf := p.e.encodeBuf[:0]
	rest := p.remain

	for len(rest) > 0 {
		r, size := utf8.DecodeRuneInString(rest)
		if r == utf8.RuneError && size <= 1 {
			p.handler.OnResult(ResultErr(illegalArgumentErr(errInvalidUTF8)))
			return
		}
		if len(buf)+size > len(p.e.encodeBuf) {
			break
		}
		buf = append(buf, rest[:size]...)
		rest = rest[size:]
	}

	p.isDone = len(rest) == 0
	p.remain = rest

	p.e.startMessage(OpcodeText, buf, p.isDone && p.isLast, p)
}

// OnResult implements SendHandler; it is the pump's own re-entry point.
func (p *textPump) OnResult(r SendResult) {
	if !r.OK() {
		p.handler.OnResult(r)
		return
	}

	p.e.partMu.Lock()
	closed := p.e.closed
	p.e.partMu.Unlock()
	if closed {
		p.handler.OnResult(ResultErr(illegalStateErr(ErrClosedDuringMessage)))
		return
	}

	if p.isDone {
		if err := p.e.stateMachine.complete(p.isLast); err != nil {
			p.handler.OnResult(ResultErr(err))
			return
		}
		p.handler.OnResult(ResultOK)
		return
	}

	p.write()
}
