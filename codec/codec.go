/*
Package codec implements protobuf (proto3) wire encoding of models and
messages.

Every persisted model and every message implements its Marshal and Unmarshal
methods using a Writer and a Reader, field by field, the same way gogo
protobuf generated marshalers do. Zero values are omitted when writing and
unknown fields are skipped when reading, so the binary format stays
compatible with any protobuf schema using the same field numbers.

The schema of each package lives in the codec.proto file next to its
code. Tests compare it against the fields the encoder writes.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury/errors"
)

// Wire types as defined by the protobuf encoding.
const (
	WireVarint  = proto.WireVarint
	WireFixed64 = proto.WireFixed64
	WireBytes   = proto.WireBytes
	WireFixed32 = proto.WireFixed32
)

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Writer serializes fields into protobuf wire format.
type Writer struct {
	buf *proto.Buffer
	err error
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{buf: proto.NewBuffer(nil)}
}

func (w *Writer) key(field int32, wire int) {
	if w.err != nil {
		return
	}
	w.err = w.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Uint64 writes a varint field. Zero is not written.
func (w *Writer) Uint64(field int32, v uint64) *Writer {
	if v == 0 {
		return w
	}
	w.key(field, WireVarint)
	if w.err == nil {
		w.err = w.buf.EncodeVarint(v)
	}
	return w
}

// Uint32 writes a varint field. Zero is not written.
func (w *Writer) Uint32(field int32, v uint32) *Writer {
	return w.Uint64(field, uint64(v))
}

// Int64 writes a varint field. Zero is not written.
func (w *Writer) Int64(field int32, v int64) *Writer {
	return w.Uint64(field, uint64(v))
}

// Bool writes a varint field. False is not written.
func (w *Writer) Bool(field int32, v bool) *Writer {
	if !v {
		return w
	}
	return w.Uint64(field, 1)
}

// Bytes writes a length delimited field. Empty value is not written.
func (w *Writer) Bytes(field int32, b []byte) *Writer {
	if len(b) == 0 {
		return w
	}
	w.key(field, WireBytes)
	if w.err == nil {
		w.err = w.buf.EncodeRawBytes(b)
	}
	return w
}

// String writes a length delimited field. Empty value is not written.
func (w *Writer) String(field int32, s string) *Writer {
	return w.Bytes(field, []byte(s))
}

// RepeatedBytes writes every element as a separate length delimited field,
// including the empty ones.
func (w *Writer) RepeatedBytes(field int32, list [][]byte) *Writer {
	for _, b := range list {
		w.key(field, WireBytes)
		if w.err == nil {
			w.err = w.buf.EncodeRawBytes(b)
		}
	}
	return w
}

// Message writes a nested message. Nil message is not written.
func (w *Writer) Message(field int32, m Marshaller) *Writer {
	if w.err != nil || isNil(m) {
		return w
	}
	raw, err := m.Marshal()
	if err != nil {
		w.err = err
		return w
	}
	w.key(field, WireBytes)
	if w.err == nil {
		w.err = w.buf.EncodeRawBytes(raw)
	}
	return w
}

// Result returns the serialized data or the first error that happened.
func (w *Writer) Result() ([]byte, error) {
	if w.err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "encode: %s", w.err)
	}
	return w.buf.Bytes(), nil
}

// Reader deserializes protobuf wire format data.
type Reader struct {
	buf  []byte
	idx  int
	wire int
}

// NewReader returns a reader of the given data.
func NewReader(raw []byte) *Reader {
	return &Reader{buf: raw}
}

// Next reads the next field key. It returns false once all data was
// read.
func (r *Reader) Next() (field int32, ok bool, err error) {
	if r.idx >= len(r.buf) {
		return 0, false, nil
	}
	key, err := r.varint()
	if err != nil {
		return 0, false, err
	}
	field = int32(key >> 3)
	if field <= 0 {
		return 0, false, errors.Wrapf(errors.ErrModel, "illegal field number %d", field)
	}
	r.wire = int(key & 0x7)
	return field, true, nil
}

func (r *Reader) varint() (uint64, error) {
	v, n := proto.DecodeVarint(r.buf[r.idx:])
	if n == 0 {
		return 0, errors.Wrap(errors.ErrModel, "malformed varint")
	}
	r.idx += n
	return v, nil
}

func (r *Reader) expect(wire int) error {
	if r.wire != wire {
		return errors.Wrapf(errors.ErrModel, "wrong wire type %d, want %d", r.wire, wire)
	}
	return nil
}

// Uint64 reads the current varint field.
func (r *Reader) Uint64() (uint64, error) {
	if err := r.expect(WireVarint); err != nil {
		return 0, err
	}
	return r.varint()
}

// Uint32 reads the current varint field.
func (r *Reader) Uint32() (uint32, error) {
	v, err := r.Uint64()
	if err != nil {
		return 0, err
	}
	if v > 1<<32-1 {
		return 0, errors.Wrap(errors.ErrOverflow, "uint32 field")
	}
	return uint32(v), nil
}

// Int64 reads the current varint field.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Bool reads the current varint field.
func (r *Reader) Bool() (bool, error) {
	v, err := r.Uint64()
	return v != 0, err
}

// Bytes reads the current length delimited field. The returned slice is a
// copy of the underlying data.
func (r *Reader) Bytes() ([]byte, error) {
	if err := r.expect(WireBytes); err != nil {
		return nil, err
	}
	size, err := r.varint()
	if err != nil {
		return nil, err
	}
	end := r.idx + int(size)
	if size > uint64(len(r.buf)) || end > len(r.buf) || end < r.idx {
		return nil, errors.Wrap(errors.ErrModel, "unexpected end of data")
	}
	b := make([]byte, size)
	copy(b, r.buf[r.idx:end])
	r.idx = end
	return b, nil
}

// String reads the current length delimited field.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	return string(b), err
}

// Skip ignores the value of the current field.
func (r *Reader) Skip() error {
	switch r.wire {
	case WireVarint:
		_, err := r.varint()
		return err
	case WireBytes:
		_, err := r.Bytes()
		return err
	case WireFixed64:
		return r.advance(8)
	case WireFixed32:
		return r.advance(4)
	default:
		return errors.Wrapf(errors.ErrModel, "unsupported wire type %d", r.wire)
	}
}

func (r *Reader) advance(n int) error {
	if r.idx+n > len(r.buf) {
		return errors.Wrap(errors.ErrModel, "unexpected end of data")
	}
	r.idx += n
	return nil
}

// Decode calls fn for every field of the data. Use it to implement an
// Unmarshal method, skipping unknown fields in the default case.
func Decode(raw []byte, fn func(field int32, r *Reader) error) error {
	r := NewReader(raw)
	for {
		field, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(field, r); err != nil {
			return err
		}
	}
}
