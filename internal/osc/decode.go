package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Decode parses one OSC packet. buf must hold exactly one message or bundle.
func Decode(buf []byte) (Packet, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyPacket
	}
	return decodePacket(buf, 0)
}

func decodePacket(buf []byte, depth int) (Packet, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	if len(buf) == 0 {
		return nil, ErrTruncated
	}
	switch buf[0] {
	case '#':
		return decodeBundle(buf, depth)
	case '/':
		return decodeMessage(buf)
	default:
		return nil, fmt.Errorf("%w: leading byte %q", ErrAddressPattern, buf[0])
	}
}

func decodeBundle(buf []byte, depth int) (*Bundle, error) {
	tag, offset, err := readString(buf, 0)
	if err != nil {
		return nil, err
	}
	if tag != bundleTag {
		return nil, ErrNotBundle
	}
	if len(buf)-offset < 8 {
		return nil, ErrTruncated
	}
	b := &Bundle{Time: TimeTag(binary.BigEndian.Uint64(buf[offset : offset+8]))}
	offset += 8

	for offset < len(buf) {
		if len(buf)-offset < 4 {
			return nil, ErrTruncated
		}
		size := int32(binary.BigEndian.Uint32(buf[offset : offset+4]))
		offset += 4
		if size <= 0 || size%4 != 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
		if int(size) > len(buf)-offset {
			return nil, ErrTruncated
		}
		el, err := decodePacket(buf[offset:offset+int(size)], depth+1)
		if err != nil {
			return nil, err
		}
		b.Elements = append(b.Elements, el)
		offset += int(size)
	}
	return b, nil
}

func decodeMessage(buf []byte) (*Message, error) {
	address, offset, err := readString(buf, 0)
	if err != nil {
		return nil, err
	}
	if address == "" || address[0] != '/' {
		return nil, ErrAddressPattern
	}
	msg := &Message{Address: address}
	if offset == len(buf) {
		// Pre-1.0 senders may omit the type tag string on argument-less messages.
		return msg, nil
	}

	tags, offset, err := readString(buf, offset)
	if err != nil {
		return nil, err
	}
	if tags == "" || tags[0] != ',' {
		return nil, ErrBadTypeTags
	}

	msg.Args = make([]Argument, 0, len(tags)-1)
	for i := 1; i < len(tags); i++ {
		arg, next, err := readArgument(buf, offset, tags[i])
		if err != nil {
			return nil, err
		}
		msg.Args = append(msg.Args, arg)
		offset = next
	}
	if offset != len(buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidSize, len(buf)-offset)
	}
	return msg, nil
}

func readArgument(buf []byte, offset int, tag byte) (Argument, int, error) {
	switch tag {
	case TagInt32, TagChar, TagRGBA:
		v, next, err := readUint32(buf, offset)
		if err != nil {
			return Argument{}, 0, err
		}
		if tag == TagRGBA {
			return Argument{tag: tag, i: int64(v)}, next, nil
		}
		return Argument{tag: tag, i: int64(int32(v))}, next, nil
	case TagFloat32:
		v, next, err := readUint32(buf, offset)
		if err != nil {
			return Argument{}, 0, err
		}
		return Argument{tag: tag, f: float64(math.Float32frombits(v))}, next, nil
	case TagInt64, TagTimeTag:
		v, next, err := readUint64(buf, offset)
		if err != nil {
			return Argument{}, 0, err
		}
		return Argument{tag: tag, i: int64(v)}, next, nil
	case TagFloat64:
		v, next, err := readUint64(buf, offset)
		if err != nil {
			return Argument{}, 0, err
		}
		return Argument{tag: tag, f: math.Float64frombits(v)}, next, nil
	case TagString, TagSymbol:
		s, next, err := readString(buf, offset)
		if err != nil {
			return Argument{}, 0, err
		}
		return Argument{tag: tag, s: s}, next, nil
	case TagBlob:
		size, next, err := readUint32(buf, offset)
		if err != nil {
			return Argument{}, 0, err
		}
		n := int(int32(size))
		if n < 0 {
			return Argument{}, 0, fmt.Errorf("%w: blob %d", ErrInvalidSize, n)
		}
		if n > len(buf)-next {
			return Argument{}, 0, ErrTruncated
		}
		data := make([]byte, n)
		copy(data, buf[next:next+n])
		end := next + padded(n)
		if end > len(buf) {
			return Argument{}, 0, ErrTruncated
		}
		return Argument{tag: tag, b: data}, end, nil
	case TagMIDI:
		if len(buf)-offset < 4 {
			return Argument{}, 0, ErrTruncated
		}
		data := make([]byte, 4)
		copy(data, buf[offset:offset+4])
		return Argument{tag: tag, b: data}, offset + 4, nil
	case TagTrue, TagFalse, TagNil, TagInfinitum:
		return Argument{tag: tag}, offset, nil
	default:
		return Argument{}, 0, fmt.Errorf("%w: %q", ErrUnsupportedType, tag)
	}
}

func readUint32(buf []byte, offset int) (uint32, int, error) {
	if len(buf)-offset < 4 {
		return 0, 0, ErrTruncated
	}
	return binary.BigEndian.Uint32(buf[offset : offset+4]), offset + 4, nil
}

func readUint64(buf []byte, offset int) (uint64, int, error) {
	if len(buf)-offset < 8 {
		return 0, 0, ErrTruncated
	}
	return binary.BigEndian.Uint64(buf[offset : offset+8]), offset + 8, nil
}

// readString reads a NUL-terminated string padded to a 4-byte boundary.
func readString(buf []byte, offset int) (string, int, error) {
	if offset >= len(buf) {
		return "", 0, ErrTruncated
	}
	n := bytes.IndexByte(buf[offset:], 0)
	if n < 0 {
		return "", 0, ErrUnterminatedString
	}
	end := offset + padded(n+1)
	if end > len(buf) {
		return "", 0, ErrTruncated
	}
	return string(buf[offset : offset+n]), end, nil
}

func padded(n int) int {
	return (n + 3) &^ 3
}
