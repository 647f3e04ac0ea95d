package remote

// sendTextByCompletion is the shared implementation behind every
// SendString*/SendPartialString* facade method. Unlike binary sends, the
// text pump itself advances the state machine once the whole string is
// drained, however many continuation frames that took.
func (e *Endpoint) sendTextByCompletion(s string, last, partial bool, handler SendHandler) {
	var err error
	if partial {
		err = e.stateMachine.textPartialStart()
	} else {
		err = e.stateMachine.textStart()
	}
	if err != nil {
		handler.OnResult(ResultErr(err))
		return
	}
	newTextPump(e, s, last, handler).write()
}

// SendStringByCompletion sends s as a complete text message.
func (e *Endpoint) SendStringByCompletion(s string, handler SendHandler) {
	e.sendTextByCompletion(s, true, false, handler)
}

// SendPartialStringByCompletion sends s as one fragment of a text message;
// last marks it as the final fragment.
func (e *Endpoint) SendPartialStringByCompletion(s string, last bool, handler SendHandler) {
	e.sendTextByCompletion(s, last, true, handler)
}

// SendStringByFuture sends s as a complete text message and returns a
// Future for the result.
func (e *Endpoint) SendStringByFuture(s string) *Future {
	fut := newFuture()
	e.SendStringByCompletion(s, fut)
	return fut
}

// SendPartialStringByFuture sends s as one fragment of a text message and
// returns a Future for the result.
func (e *Endpoint) SendPartialStringByFuture(s string, last bool) *Future {
	fut := newFuture()
	e.SendPartialStringByCompletion(s, last, fut)
	return fut
}

// SendString sends s as a complete text message, blocking until it
// completes or the endpoint's send timeout elapses.
func (e *Endpoint) SendString(s string) error {
	return e.blockOn(e.SendStringByFuture(s))
}

// SendPartialString sends s as one fragment of a text message, blocking
// until it completes or the endpoint's send timeout elapses.
func (e *Endpoint) SendPartialString(s string, last bool) error {
	return e.blockOn(e.SendPartialStringByFuture(s, last))
}
