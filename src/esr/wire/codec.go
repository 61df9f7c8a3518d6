// Package wire implements the binary struct encoding used on the wire:
// varuint32-prefixed vectors and byte strings, fixed-width integers, and
// the RequestPayload / Frame layouts built from them.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/yourusername/signingrequest/src/esr/abival"
)

// Writer accumulates a serialized payload.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) WriteByte(b byte) { w.buf = append(w.buf, b) }

func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteName(n abival.Name) { w.WriteUint64(uint64(n)) }

// WriteVaruint32 writes v as LEB128, the variable-length integer form used
// for vector lengths and the transaction header's max_net_usage_words /
// delay_sec fields.
func (w *Writer) WriteVaruint32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf = append(w.buf, b)
		if v == 0 {
			break
		}
	}
}

func (w *Writer) WriteBytes(b []byte) {
	w.WriteVaruint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *Writer) WriteString(s string) {
	w.WriteBytes([]byte(s))
}

func (w *Writer) WriteRawBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Reader consumes a serialized payload.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// ErrShortBuffer is returned when the buffer runs out mid-structure.
var ErrShortBuffer = fmt.Errorf("wire: unexpected end of buffer")

func (r *Reader) Remaining() []byte { return r.buf[r.pos:] }

func (r *Reader) HasMore() bool { return r.pos < len(r.buf) }

func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrShortBuffer
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.buf) {
		return 0, ErrShortBuffer
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, ErrShortBuffer
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	if r.pos+8 > len(r.buf) {
		return 0, ErrShortBuffer
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadName() (abival.Name, error) {
	v, err := r.ReadUint64()
	return abival.Name(v), err
}

func (r *Reader) ReadVaruint32() (uint32, error) {
	var result uint32
	var shift uint
	for {
		if shift >= 35 {
			return 0, fmt.Errorf("wire: varuint32 too long")
		}
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result, nil
}

func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadVaruint32()
	if err != nil {
		return nil, err
	}
	if r.pos+int(n) > len(r.buf) {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) ReadRawBytes(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}
