package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// Encode writes p to w using the OSC wire format.
func Encode(w io.Writer, p Packet) error {
	buf, err := Marshal(p)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// Marshal returns the wire encoding of p.
func Marshal(p Packet) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendPacket(&buf, p, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendPacket(buf *bytes.Buffer, p Packet, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	switch v := p.(type) {
	case *Message:
		return appendMessage(buf, v)
	case *Bundle:
		return appendBundle(buf, v, depth)
	default:
		return fmt.Errorf("osc: unknown packet %T", p)
	}
}

func appendBundle(buf *bytes.Buffer, b *Bundle, depth int) error {
	writeString(buf, bundleTag)
	writeUint64(buf, uint64(b.Time))
	for _, el := range b.Elements {
		var inner bytes.Buffer
		if err := appendPacket(&inner, el, depth+1); err != nil {
			return err
		}
		writeUint32(buf, uint32(inner.Len()))
		buf.Write(inner.Bytes())
	}
	return nil
}

func appendMessage(buf *bytes.Buffer, m *Message) error {
	if m.Address == "" || m.Address[0] != '/' {
		return ErrAddressPattern
	}
	if strings.IndexByte(m.Address, 0) >= 0 {
		return ErrAddressPattern
	}
	writeString(buf, m.Address)
	writeString(buf, m.TypeTags())
	for _, a := range m.Args {
		if err := appendArgument(buf, a); err != nil {
			return err
		}
	}
	return nil
}

func appendArgument(buf *bytes.Buffer, a Argument) error {
	switch a.tag {
	case TagInt32, TagChar, TagRGBA:
		writeUint32(buf, uint32(a.i))
	case TagFloat32:
		writeUint32(buf, math.Float32bits(float32(a.f)))
	case TagInt64, TagTimeTag:
		writeUint64(buf, uint64(a.i))
	case TagFloat64:
		writeUint64(buf, math.Float64bits(a.f))
	case TagString, TagSymbol:
		if strings.IndexByte(a.s, 0) >= 0 {
			return fmt.Errorf("%w: string contains NUL", ErrArgumentType)
		}
		writeString(buf, a.s)
	case TagBlob:
		writeUint32(buf, uint32(len(a.b)))
		buf.Write(a.b)
		writePadding(buf, len(a.b))
	case TagMIDI:
		if len(a.b) != 4 {
			return fmt.Errorf("%w: midi length %d", ErrInvalidSize, len(a.b))
		}
		buf.Write(a.b)
	case TagTrue, TagFalse, TagNil, TagInfinitum:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedType, a.tag)
	}
	return nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
	writePadding(buf, len(s)+1)
}

func writePadding(buf *bytes.Buffer, n int) {
	for i := n; i < padded(n); i++ {
		buf.WriteByte(0)
	}
}
