package remote

// endMessageHandler wraps a caller-supplied SendHandler so that its firing
// also drives the queue forward (spec.md section 4.4, "end-of-message
// handler"). It is the handler actually stored on every messagePart.
//
// Grounded on Tomcat's private EndMessageHandler inner class.
type endMessageHandler struct {
	e           *Endpoint
	part        *messagePart
	userHandler SendHandler
}

func (w *endMessageHandler) OnResult(r SendResult) {
	if w.part.scratch != nil {
		releaseScratch(w.part.scratch)
		w.part.scratch = nil
	}
	w.e.endMessage(w.userHandler, r)
}

// startMessage enqueues or immediately dispatches a message part
// (spec.md section 4.4).
//
// The spec calls for writeMessagePart to run "under the lock"; Java's
// intrinsic locks are reentrant, so Tomcat can hold messagePartLock across a
// doWrite call that might complete synchronously and re-enter endMessage on
// the same thread. sync.Mutex is not reentrant, so that would deadlock here.
// partMu is instead held only long enough to update the bookkeeping fields;
// writeMessagePart runs unlocked, which is safe because messagePartInProgress
// already guarantees no other part touches the shared buffers or flags
// concurrently.
func (e *Endpoint) startMessage(opcode Opcode, payload []byte, last bool, userHandler SendHandler) {
	e.session.UpdateLastActive()

	if opcode == OpcodeClose && e.batchingAllowed.Load() {
		if err := e.SetBatchingAllowed(false); err != nil {
			e.flushOnCloseMu.Lock()
			e.flushOnCloseErr = err
			e.flushOnCloseMu.Unlock()
		}
	}

	part := &messagePart{opcode: opcode, payload: payload, last: last}
	part.handler = &endMessageHandler{e: e, part: part, userHandler: userHandler}

	e.partMu.Lock()
	if e.messagePartInProgress {
		if len(part.payload) > 0 {
			part.scratch = acquireScratch(part.payload)
			part.payload = part.scratch.B
		}
		e.messagePartQueue = append(e.messagePartQueue, part)
		e.partMu.Unlock()
		return
	}
	e.messagePartInProgress = true
	e.partMu.Unlock()

	e.writeMessagePart(part)
}

// endMessage is invoked from endMessageHandler.OnResult when a part
// completes. It commits the staged fragmentation flags, dequeues the next
// part if any, and invokes the caller's handler outside the lock
// (spec.md section 4.4).
func (e *Endpoint) endMessage(userHandler SendHandler, result SendResult) {
	e.partMu.Lock()
	e.fragmented = e.nextFragmented
	e.text = e.nextText

	var next *messagePart
	if len(e.messagePartQueue) > 0 && !e.closed {
		next = e.messagePartQueue[0]
		e.messagePartQueue = e.messagePartQueue[1:]
	} else {
		e.messagePartInProgress = false
	}
	e.partMu.Unlock()

	if next != nil {
		e.writeMessagePart(next)
	}

	e.session.UpdateLastActive()
	userHandler.OnResult(result)
}

// writeMessagePart is the fragmentation engine (spec.md section 4.7). The
// caller must have already established messagePartInProgress for part; no
// other part may run concurrently with this one.
func (e *Endpoint) writeMessagePart(part *messagePart) {
	if e.closed {
		part.handler.OnResult(ResultErr(illegalStateErr(ErrClosed)))
		return
	}

	if part.opcode == opcodeFlush {
		e.nextFragmented = e.fragmented
		e.nextText = e.text
		if e.outPos == 0 {
			part.handler.OnResult(ResultOK)
			return
		}
		data := e.outputBuf[:e.outPos]
		e.outPos = 0
		e.transport.DoWrite(part.handler, data)
		return
	}

	var first bool

	if part.opcode.IsControl() {
		first = true
		if part.opcode == OpcodeClose {
			e.closed = true
		}
	} else {
		isText := part.opcode.IsText()
		if e.fragmented {
			if isText != e.text {
				part.handler.OnResult(ResultErr(illegalStateErr(ErrChangeMessageType)))
				return
			}
			first = false
			e.nextFragmented = !part.last
			e.nextText = e.text
		} else {
			first = true
			if part.last {
				e.nextFragmented = false
			} else {
				e.nextFragmented = true
				e.nextText = isText
			}
		}
	}

	masked := e.transport.IsMasked()
	var mask [4]byte
	if masked {
		mask = generateMask()
	}

	hn := writeHeader(e.headerBuf[:], part.opcode, len(part.payload), first, part.last, masked, mask)
	header := e.headerBuf[:hn]

	batching := e.batchingAllowed.Load()
	if !batching && !masked {
		e.transport.DoWrite(part.handler, header, part.payload)
		return
	}

	p := &outputPump{
		e:             e,
		header:        header,
		payload:       part.payload,
		mask:          mask,
		masked:        masked,
		flushRequired: !batching,
		handler:       part.handler,
	}
	p.run()
}
