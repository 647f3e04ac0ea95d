package remote

// outputPump is the chunked, callback-driven copy of a header+payload pair
// through the endpoint's shared output buffer (spec.md section 4.5). It is
// used whenever batching is allowed or the frame must be masked; a fresh
// outputPump is built per writeMessagePart call, but it writes into the
// endpoint's persistent outputBuf/outPos so that batched bytes survive
// across separate pump runs until a flush actually drains them.
//
// Grounded on Tomcat's OutputBufferSendHandler: a tagged continuation object
// that re-enters itself from onResult, reshaped here as a small struct whose
// run method is the continuation's re-entry point (spec.md section 9's
// "faithful port" option).
type outputPump struct {
	e       *Endpoint
	header  []byte
	payload []byte

	mask      [4]byte
	masked    bool
	maskIndex int

	flushRequired bool
	handler       SendHandler
}

// run drives the pump forward. It is called once to start, and again as the
// continuation passed to each doWrite.
func (p *outputPump) run() {
	buf := p.e.outputBuf[:]

	for len(p.header) > 0 && p.e.outPos < len(buf) {
		n := copy(buf[p.e.outPos:], p.header)
		p.e.outPos += n
		p.header = p.header[n:]
	}
	if len(p.header) > 0 {
		p.flush(p.run)
		return
	}

	for len(p.payload) > 0 && p.e.outPos < len(buf) {
		space := len(buf) - p.e.outPos
		n := len(p.payload)
		if n > space {
			n = space
		}
		if p.masked {
			for i := 0; i < n; i++ {
				buf[p.e.outPos+i] = p.payload[i] ^ p.mask[p.maskIndex%4]
				p.maskIndex++
			}
		} else {
			copy(buf[p.e.outPos:], p.payload[:n])
		}
		p.e.outPos += n
		p.payload = p.payload[n:]
	}

	if len(p.payload) > 0 {
		p.flush(p.run)
		return
	}

	if !p.flushRequired {
		p.handler.OnResult(ResultOK)
		return
	}
	if p.e.outPos == 0 {
		p.handler.OnResult(ResultOK)
		return
	}
	p.flush(func() { p.handler.OnResult(ResultOK) })
}

// flush hands the currently batched bytes to the transport and resumes via
// cont once the write completes successfully. A failed write is forwarded
// straight to the user handler, never to cont.
//
// Transport.DoWrite is documented to write fully or fail, so there is no
// partial-write case to re-issue here, unlike Tomcat's NIO-backed
// OutputBufferSendHandler.onResult.
func (p *outputPump) flush(cont func()) {
	n := p.e.outPos
	data := p.e.outputBuf[:n]
	p.e.outPos = 0
	p.e.transport.DoWrite(SendHandlerFunc(func(r SendResult) {
		if !r.OK() {
			p.handler.OnResult(r)
			return
		}
		cont()
	}), data)
}
