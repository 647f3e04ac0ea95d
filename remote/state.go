package remote

import "sync"

// senderState is the sender-side state machine described in spec.md
// section 4.3, transcribed from Tomcat's WsRemoteEndpointImplBase.StateMachine.
type senderState int

const (
	stateOpen senderState = iota
	stateStreamWriting
	stateWriterWriting
	stateBinaryPartialWriting
	stateBinaryPartialReady
	stateBinaryFullWriting
	stateTextPartialWriting
	stateTextPartialReady
	stateTextFullWriting
)

func (s senderState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateStreamWriting:
		return "stream-writing"
	case stateWriterWriting:
		return "writer-writing"
	case stateBinaryPartialWriting:
		return "binary-partial-writing"
	case stateBinaryPartialReady:
		return "binary-partial-ready"
	case stateBinaryFullWriting:
		return "binary-full-writing"
	case stateTextPartialWriting:
		return "text-partial-writing"
	case stateTextPartialReady:
		return "text-partial-ready"
	case stateTextFullWriting:
		return "text-full-writing"
	default:
		return "unknown"
	}
}

// stateMachine is a strictly synchronous gate on every public send entry
// point (spec.md section 4.3). It is advisory across calls but authoritative
// within: callers must serialize their own send calls, but any illegal
// interleaving that does happen is rejected with an error, never silently
// accepted.
type stateMachine struct {
	mu    sync.Mutex
	state senderState
}

func (m *stateMachine) streamStart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(stateOpen); err != nil {
		return err
	}
	m.state = stateStreamWriting
	return nil
}

func (m *stateMachine) writeStart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(stateOpen); err != nil {
		return err
	}
	m.state = stateWriterWriting
	return nil
}

func (m *stateMachine) binaryStart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(stateOpen); err != nil {
		return err
	}
	m.state = stateBinaryFullWriting
	return nil
}

func (m *stateMachine) binaryPartialStart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(stateOpen, stateBinaryPartialReady); err != nil {
		return err
	}
	m.state = stateBinaryPartialWriting
	return nil
}

func (m *stateMachine) textStart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(stateOpen); err != nil {
		return err
	}
	m.state = stateTextFullWriting
	return nil
}

func (m *stateMachine) textPartialStart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(stateOpen, stateTextPartialReady); err != nil {
		return err
	}
	m.state = stateTextPartialWriting
	return nil
}

// complete transitions the machine when a message part finishes. last
// reports whether the part carried the FIN bit.
func (m *stateMachine) complete(last bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if last {
		if err := m.check(
			stateTextPartialWriting, stateTextFullWriting,
			stateBinaryPartialWriting, stateBinaryFullWriting,
			stateStreamWriting, stateWriterWriting,
		); err != nil {
			return err
		}
		m.state = stateOpen
		return nil
	}

	if err := m.check(
		stateTextPartialWriting, stateBinaryPartialWriting,
		stateStreamWriting, stateWriterWriting,
	); err != nil {
		return err
	}
	switch m.state {
	case stateTextPartialWriting:
		m.state = stateTextPartialReady
	case stateBinaryPartialWriting:
		m.state = stateBinaryPartialReady
	case stateWriterWriting, stateStreamWriting:
		// No-op: a non-final write/stream chunk leaves the state unchanged.
	}
	return nil
}

func (m *stateMachine) current() senderState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *stateMachine) check(allowed ...senderState) error {
	for _, s := range allowed {
		if m.state == s {
			return nil
		}
	}
	return illegalStateErr(ErrWrongState)
}
