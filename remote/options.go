package remote

import "time"

// defaultSendTimeout mirrors Tomcat's DEFAULT_BLOCKING_SEND_TIMEOUT: twenty
// seconds.
const defaultSendTimeout = 20 * time.Second

// blockingSendTimeoutProperty is the Session.UserProperties() key a
// deployment can set to override the default blocking-send timeout
// (spec.md section 6), named after Tomcat's
// BLOCKING_SEND_TIMEOUT_PROPERTY.
const blockingSendTimeoutProperty = "remote.BlockingSendTimeout"

// Option configures an Endpoint at construction time.
//
// Grounded on the teacher's functional-option pattern (option.go's
// `type Option func(*Options)` shape, generalized here to Endpoint
// directly since there's no separate options struct worth threading
// through).
type Option func(*Endpoint)

// WithSession attaches the Session capability used for last-active
// bookkeeping and the blocking-send-timeout property.
func WithSession(s Session) Option {
	return func(e *Endpoint) { e.session = s }
}

// WithEncoders registers user encoders in the given order. Order carries
// semantics: the first encoder whose declared type is assignable from a
// sent value's type wins (spec.md section 4.9).
func WithEncoders(entries ...EncoderEntry) Option {
	return func(e *Endpoint) { e.encoders = append(e.encoders, entries...) }
}

// WithSendTimeout overrides the default 20s blocking-send timeout. Pass a
// negative duration to wait forever.
func WithSendTimeout(d time.Duration) Option {
	return func(e *Endpoint) { e.sendTimeout = d }
}

// WithBatchingAllowed enables batching from construction instead of the
// default disabled state.
func WithBatchingAllowed(allowed bool) Option {
	return func(e *Endpoint) { e.batchingAllowed.Store(allowed) }
}

// WithSendTimer attaches a SendTimer to record blocking-send latencies.
func WithSendTimer(t *SendTimer) Option {
	return func(e *Endpoint) { e.timer = t }
}
