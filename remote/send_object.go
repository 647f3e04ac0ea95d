package remote

import "fmt"

// SendObjectByCompletion dispatches obj to the first compatible user
// encoder, or to SendStringByCompletion for primitive-ish scalars, per
// spec.md section 4.9.
func (e *Endpoint) SendObjectByCompletion(obj any, handler SendHandler) {
	if isScalar(obj) {
		e.SendStringByCompletion(fmt.Sprint(obj), handler)
		return
	}

	entry, ok := e.findEncoder(obj)
	if !ok {
		handler.OnResult(ResultErr(newSendError(KindEncode, ErrNoEncoder)))
		return
	}

	switch enc := entry.Encoder.(type) {
	case TextEncoder:
		s, err := enc.EncodeText(obj)
		if err != nil {
			handler.OnResult(ResultErr(newSendError(KindEncode, err)))
			return
		}
		e.SendStringByCompletion(s, handler)

	case BinaryEncoder:
		b, err := enc.EncodeBinary(obj)
		if err != nil {
			handler.OnResult(ResultErr(newSendError(KindEncode, err)))
			return
		}
		e.SendBytesByCompletion(b, handler)

	case TextStreamEncoder:
		w, err := e.GetSendWriter()
		if err != nil {
			handler.OnResult(ResultErr(err))
			return
		}
		encErr := enc.EncodeTextStream(obj, w)
		closeErr := w.Close()
		if encErr == nil {
			encErr = closeErr
		}
		if encErr != nil {
			handler.OnResult(ResultErr(newSendError(KindEncode, encErr)))
			return
		}
		handler.OnResult(ResultOK)

	case BinaryStreamEncoder:
		s, err := e.GetSendStream()
		if err != nil {
			handler.OnResult(ResultErr(err))
			return
		}
		encErr := enc.EncodeBinaryStream(obj, s)
		closeErr := s.Close()
		if encErr == nil {
			encErr = closeErr
		}
		if encErr != nil {
			handler.OnResult(ResultErr(newSendError(KindEncode, encErr)))
			return
		}
		handler.OnResult(ResultOK)

	default:
		handler.OnResult(ResultErr(newSendError(KindEncode, ErrNoEncoder)))
	}
}

// SendObjectByFuture dispatches obj and returns a Future for the result.
func (e *Endpoint) SendObjectByFuture(obj any) *Future {
	fut := newFuture()
	e.SendObjectByCompletion(obj, fut)
	return fut
}

// SendObject dispatches obj, blocking until it completes or the endpoint's
// send timeout elapses.
func (e *Endpoint) SendObject(obj any) error {
	return e.blockOn(e.SendObjectByFuture(obj))
}
