// Package wire implements the length-prefixed framing used for every
// worker/master interaction.
//
// Framing: a 4-byte big-endian length prefix followed by that many bytes of
// JSON. One frame in, one frame out, then the caller closes the connection.
// There is no multiplexing and no connection reuse across interactions.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxFrameSize bounds how much a single frame can claim to be, so a
// corrupted or hostile length prefix can't make RecvMessage allocate an
// unbounded buffer.
const maxFrameSize = 64 << 20 // 64 MiB

// ErrTransport wraps any I/O failure (dial, read, write, short frame) that
// occurs while exchanging a message. Callers distinguish it from a decoding
// error with errors.Is.
var ErrTransport = errors.New("wire: transport error")

// ErrFrameTooLarge is returned by RecvMessage when the advertised frame
// length exceeds maxFrameSize.
var ErrFrameTooLarge = errors.New("wire: frame exceeds maximum size")

// Writer is the subset of net.Conn that SendMessage needs.
type Writer interface {
	Write(b []byte) (int, error)
}

// Reader is the subset of net.Conn that RecvMessage needs.
type Reader interface {
	Read(b []byte) (int, error)
}

// SendMessage encodes v as JSON, prefixes it with its length, and writes the
// frame to w in a single Write call.
func SendMessage(w Writer, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wire: encode message: %w", err)
	}

	frame := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(frame[:4], uint32(len(payload)))
	copy(frame[4:], payload)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

// RecvMessage reads one length-prefixed frame from r and decodes it into v.
func RecvMessage(r Reader, v interface{}) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxFrameSize {
		return ErrFrameTooLarge
	}

	payload := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("wire: decode message: %w", err)
	}
	return nil
}
