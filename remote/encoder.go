package remote

import "reflect"

// Encoder is the capability every user-supplied encoder must provide beyond
// its encoding method: lifecycle cleanup, called by Close on every
// registered entry before the transport itself closes (spec.md section 6).
//
// Grounded on Tomcat's javax.websocket Encoder.destroy().
type Encoder interface {
	Destroy()
}

// TextEncoder encodes a value to a string, routed through SendString.
type TextEncoder interface {
	Encoder
	EncodeText(v any) (string, error)
}

// TextStreamEncoder encodes a value by writing characters to a SendWriter
// the dispatch layer acquires and closes on its behalf.
type TextStreamEncoder interface {
	Encoder
	EncodeTextStream(v any, w *SendWriter) error
}

// BinaryEncoder encodes a value to a byte slice, routed through SendBytes.
type BinaryEncoder interface {
	Encoder
	EncodeBinary(v any) ([]byte, error)
}

// BinaryStreamEncoder encodes a value by writing bytes to a SendStream the
// dispatch layer acquires and closes on its behalf.
type BinaryStreamEncoder interface {
	Encoder
	EncodeBinaryStream(v any, s *SendStream) error
}

// EncoderEntry pairs a declared source type with the encoder instance that
// accepts it (spec.md section 3). Order in the Endpoint's entry list carries
// semantics: the first entry whose Type is assignable from a sent value's
// type wins (spec.md section 4.9, section 9's "preserve, document" note).
type EncoderEntry struct {
	Type    reflect.Type
	Encoder Encoder
}

// NewEncoderEntry builds an EncoderEntry for the given declared type.
func NewEncoderEntry(declaredType reflect.Type, enc Encoder) EncoderEntry {
	return EncoderEntry{Type: declaredType, Encoder: enc}
}

// findEncoder returns the first registered entry whose declared type is
// assignable from v's runtime type.
func (e *Endpoint) findEncoder(v any) (EncoderEntry, bool) {
	t := reflect.TypeOf(v)
	for _, entry := range e.encoders {
		if entry.Type != nil && t != nil && t.AssignableTo(entry.Type) {
			return entry, true
		}
	}
	return EncoderEntry{}, false
}

// isScalar reports whether v is one of the primitive-ish types spec.md
// section 4.9 step 1 routes straight to SendString via fmt.Sprint, bypassing
// encoder dispatch entirely.
func isScalar(v any) bool {
	switch v.(type) {
	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
