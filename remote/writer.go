package remote

import "sync"

const streamBufSize = 8192

// SendStream is the blocking byte-stream adapter described in spec.md
// section 4.8: writes accumulate in a private buffer, flushing out a
// non-final partial binary frame as the buffer fills, and Close emits the
// final fragment.
//
// Grounded on Tomcat's WsOutputStream.
type SendStream struct {
	e *Endpoint

	mu     sync.Mutex
	buf    [streamBufSize]byte
	n      int
	closed bool
}

// GetSendStream acquires a SendStream, putting the endpoint's state machine
// into STREAM_WRITING for the stream's lifetime.
func (e *Endpoint) GetSendStream() (*SendStream, error) {
	if err := e.stateMachine.streamStart(); err != nil {
		return nil, err
	}
	return &SendStream{e: e}, nil
}

// Write implements io.Writer, batching into the stream's buffer and flushing
// as it fills.
func (s *SendStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, illegalStateErr(ErrClosed)
	}

	written := 0
	for len(p) > 0 {
		space := len(s.buf) - s.n
		if space == 0 {
			if err := s.flushLocked(false); err != nil {
				return written, err
			}
			space = len(s.buf)
		}
		n := len(p)
		if n > space {
			n = space
		}
		copy(s.buf[s.n:], p[:n])
		s.n += n
		p = p[n:]
		written += n
	}
	return written, nil
}

// Flush issues a non-final partial binary frame of the buffer's current
// contents, even if empty — matching the Java original's behavior of
// emitting a zero-length continuation rather than skipping the write
// (spec.md section 9, open question: preserved pending clarification).
func (s *SendStream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return illegalStateErr(ErrClosed)
	}
	return s.flushLocked(false)
}

// Close is idempotent: it emits the final partial binary frame and
// transitions the state machine back to OPEN.
func (s *SendStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.flushLocked(true)
	if cerr := s.e.stateMachine.complete(true); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (s *SendStream) flushLocked(last bool) error {
	payload := append([]byte(nil), s.buf[:s.n]...)
	s.n = 0

	fut := newFuture()
	s.e.startMessage(OpcodeBinary, payload, last, fut)
	return s.e.blockOn(fut)
}

// SendWriter is the char-writer counterpart of SendStream, emitting partial
// text frames through the text encoding pump instead of raw binary.
//
// Grounded on Tomcat's WsWriter.
type SendWriter struct {
	e *Endpoint

	mu     sync.Mutex
	buf    [streamBufSize]byte
	n      int
	closed bool
}

// GetSendWriter acquires a SendWriter, putting the endpoint's state machine
// into WRITER_WRITING for the writer's lifetime.
func (e *Endpoint) GetSendWriter() (*SendWriter, error) {
	if err := e.stateMachine.writeStart(); err != nil {
		return nil, err
	}
	return &SendWriter{e: e}, nil
}

// WriteString implements a string-based Write, batching into the writer's
// buffer and flushing as it fills.
func (w *SendWriter) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, illegalStateErr(ErrClosed)
	}

	written := 0
	for len(s) > 0 {
		space := len(w.buf) - w.n
		if space == 0 {
			if err := w.flushLocked(false); err != nil {
				return written, err
			}
			space = len(w.buf)
		}
		n := len(s)
		if n > space {
			n = space
		}
		copy(w.buf[w.n:], s[:n])
		w.n += n
		s = s[n:]
		written += n
	}
	return written, nil
}

// Flush issues a non-final partial text frame of the buffer's current
// contents, even if empty.
func (w *SendWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return illegalStateErr(ErrClosed)
	}
	return w.flushLocked(false)
}

// Close is idempotent: it emits the final partial text frame. Unlike
// SendStream.Close, it does not call stateMachine.complete itself — the text
// pump driven by flushLocked already advances the state machine back to OPEN
// once the final fragment's handler fires (see textPump.OnResult).
func (w *SendWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	return w.flushLocked(true)
}

func (w *SendWriter) flushLocked(last bool) error {
	text := string(w.buf[:w.n])
	w.n = 0

	fut := newFuture()
	newTextPump(w.e, text, last, fut).write()
	return w.e.blockOn(fut)
}
