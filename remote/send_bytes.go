package remote

// sendBinaryByCompletion is the shared implementation behind every
// SendBytes*/SendPartialBytes* facade method: gate on the state machine,
// queue exactly one binary frame, advance the state machine on completion.
func (e *Endpoint) sendBinaryByCompletion(b []byte, last, partial bool, handler SendHandler) {
	var err error
	if partial {
		err = e.stateMachine.binaryPartialStart()
	} else {
		err = e.stateMachine.binaryStart()
	}
	if err != nil {
		handler.OnResult(ResultErr(err))
		return
	}
	e.startMessage(OpcodeBinary, b, last, &stateUpdateHandler{e: e, last: last, userHandler: handler})
}

// SendBytesByCompletion sends b as a complete, single-frame binary message.
func (e *Endpoint) SendBytesByCompletion(b []byte, handler SendHandler) {
	e.sendBinaryByCompletion(b, true, false, handler)
}

// SendPartialBytesByCompletion sends b as one fragment of a binary message;
// last marks it as the final fragment.
func (e *Endpoint) SendPartialBytesByCompletion(b []byte, last bool, handler SendHandler) {
	e.sendBinaryByCompletion(b, last, true, handler)
}

// SendBytesByFuture sends b as a complete binary message and returns a
// Future for the result.
func (e *Endpoint) SendBytesByFuture(b []byte) *Future {
	fut := newFuture()
	e.SendBytesByCompletion(b, fut)
	return fut
}

// SendPartialBytesByFuture sends b as one fragment of a binary message and
// returns a Future for the result.
func (e *Endpoint) SendPartialBytesByFuture(b []byte, last bool) *Future {
	fut := newFuture()
	e.SendPartialBytesByCompletion(b, last, fut)
	return fut
}

// SendBytes sends b as a complete binary message, blocking until it
// completes or the endpoint's send timeout elapses.
func (e *Endpoint) SendBytes(b []byte) error {
	return e.blockOn(e.SendBytesByFuture(b))
}

// SendPartialBytes sends b as one fragment of a binary message, blocking
// until it completes or the endpoint's send timeout elapses.
func (e *Endpoint) SendPartialBytes(b []byte, last bool) error {
	return e.blockOn(e.SendPartialBytesByFuture(b, last))
}
