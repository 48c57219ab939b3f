package relay

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize is the largest frame either side will accept. Chrome caps
// host-to-browser messages at 1 MiB; relay payloads are a single URL, so
// anything larger indicates a corrupt or hostile stream.
const MaxFrameSize = 1 << 20

// WriteFrame writes one native-messaging frame: a 4-byte little-endian
// length header followed by the payload bytes.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("frame payload is %d bytes, exceeds %d byte limit", len(payload), MaxFrameSize)
	}

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write frame header; %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame payload; %w", err)
	}
	return nil
}

// ReadFrame reads one native-messaging frame from r. A clean end of stream
// before any header byte returns io.EOF; a truncated header or payload
// returns a wrapped io.ErrUnexpectedEOF.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read frame header; %w", err)
	}

	length := binary.LittleEndian.Uint32(header[:])
	if length > MaxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds %d byte limit", length, MaxFrameSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("failed to read frame payload; %w", err)
	}
	return payload, nil
}
