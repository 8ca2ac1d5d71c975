package osc

import (
	"math"
	"strings"
	"time"
)

// Type tags from the OSC 1.0 contract plus the common 1.1 extensions.
const (
	TagInt32     byte = 'i'
	TagFloat32   byte = 'f'
	TagString    byte = 's'
	TagSymbol    byte = 'S'
	TagBlob      byte = 'b'
	TagInt64     byte = 'h'
	TagFloat64   byte = 'd'
	TagTimeTag   byte = 't'
	TagChar      byte = 'c'
	TagRGBA      byte = 'r'
	TagMIDI      byte = 'm'
	TagTrue      byte = 'T'
	TagFalse     byte = 'F'
	TagNil       byte = 'N'
	TagInfinitum byte = 'I'
)

const bundleTag = "#bundle"

// MaxDepth bounds bundle recursion while decoding.
const MaxDepth = 16

// TimeTag is a 64-bit NTP timestamp. The value 1 means "immediately".
type TimeTag uint64

// Immediately is the reserved time tag for bundles that apply on receipt.
const Immediately TimeTag = 1

// secondsFrom1900To1970 is the NTP to Unix epoch offset.
const secondsFrom1900To1970 = 2208988800

// NewTimeTag converts t into NTP fixed point.
func NewTimeTag(t time.Time) TimeTag {
	secs := uint64(t.Unix() + secondsFrom1900To1970)
	frac := uint64(t.Nanosecond()) * (1 << 32) / uint64(time.Second)
	return TimeTag(secs<<32 | frac)
}

// Time returns the wall clock time of tt. Immediately maps to the zero time.
func (tt TimeTag) Time() time.Time {
	if tt == Immediately {
		return time.Time{}
	}
	secs := int64(uint64(tt)>>32) - secondsFrom1900To1970
	frac := uint64(tt) & 0xffffffff
	nanos := int64(frac * uint64(time.Second) >> 32)
	return time.Unix(secs, nanos)
}

// Argument is one typed message argument.
type Argument struct {
	tag byte
	i   int64
	f   float64
	s   string
	b   []byte
}

// NewInt32 creates an int32 argument.
func NewInt32(v int32) Argument { return Argument{tag: TagInt32, i: int64(v)} }

// NewFloat32 creates a float32 argument.
func NewFloat32(v float32) Argument { return Argument{tag: TagFloat32, f: float64(v)} }

// NewString creates a string argument.
func NewString(v string) Argument { return Argument{tag: TagString, s: v} }

// NewSymbol creates a symbol argument. Symbols read back as strings.
func NewSymbol(v string) Argument { return Argument{tag: TagSymbol, s: v} }

// NewBlob creates a blob argument.
func NewBlob(v []byte) Argument {
	buf := make([]byte, len(v))
	copy(buf, v)
	return Argument{tag: TagBlob, b: buf}
}

// NewInt64 creates an int64 argument.
func NewInt64(v int64) Argument { return Argument{tag: TagInt64, i: v} }

// NewFloat64 creates a float64 argument.
func NewFloat64(v float64) Argument { return Argument{tag: TagFloat64, f: v} }

// NewTimeTagArg creates a time tag argument.
func NewTimeTagArg(v TimeTag) Argument { return Argument{tag: TagTimeTag, i: int64(v)} }

// NewBool creates a T or F argument.
func NewBool(v bool) Argument {
	if v {
		return Argument{tag: TagTrue}
	}
	return Argument{tag: TagFalse}
}

// NewNil creates a nil argument.
func NewNil() Argument { return Argument{tag: TagNil} }

// Tag returns the argument's type tag.
func (a Argument) Tag() byte { return a.tag }

// Int32 returns the argument value as int32.
func (a Argument) Int32() (int32, error) {
	if a.tag != TagInt32 {
		return 0, ErrArgumentType
	}
	return int32(a.i), nil
}

// Float32 returns the argument value as float32.
func (a Argument) Float32() (float32, error) {
	if a.tag != TagFloat32 {
		return 0, ErrArgumentType
	}
	return float32(a.f), nil
}

// String returns the argument value as string. Symbols are accepted.
func (a Argument) String() (string, error) {
	if a.tag != TagString && a.tag != TagSymbol {
		return "", ErrArgumentType
	}
	return a.s, nil
}

// Blob returns a copy of the blob payload.
func (a Argument) Blob() ([]byte, error) {
	if a.tag != TagBlob {
		return nil, ErrArgumentType
	}
	buf := make([]byte, len(a.b))
	copy(buf, a.b)
	return buf, nil
}

// Int64 returns the argument value as int64.
func (a Argument) Int64() (int64, error) {
	if a.tag != TagInt64 {
		return 0, ErrArgumentType
	}
	return a.i, nil
}

// Float64 returns the argument value as float64.
func (a Argument) Float64() (float64, error) {
	if a.tag != TagFloat64 {
		return 0, ErrArgumentType
	}
	return a.f, nil
}

// TimeTag returns the argument value as a time tag.
func (a Argument) TimeTag() (TimeTag, error) {
	if a.tag != TagTimeTag {
		return 0, ErrArgumentType
	}
	return TimeTag(a.i), nil
}

// Bool returns the value of a T or F argument.
func (a Argument) Bool() (bool, error) {
	switch a.tag {
	case TagTrue:
		return true, nil
	case TagFalse:
		return false, nil
	default:
		return false, ErrArgumentType
	}
}

// Equal reports whether a and b carry the same tag and value.
func (a Argument) Equal(b Argument) bool {
	if a.tag != b.tag || a.i != b.i || a.s != b.s || len(a.b) != len(b.b) {
		return false
	}
	if a.f != b.f && !(math.IsNaN(a.f) && math.IsNaN(b.f)) {
		return false
	}
	for i := range a.b {
		if a.b[i] != b.b[i] {
			return false
		}
	}
	return true
}

// Packet is either a *Message or a *Bundle.
type Packet interface {
	packet()
}

// Message is one addressed OSC message.
type Message struct {
	Address string
	Args    []Argument
}

// Bundle is a time-tagged list of nested packets.
type Bundle struct {
	Time     TimeTag
	Elements []Packet
}

func (*Message) packet() {}
func (*Bundle) packet()  {}

// NewMessage creates a message for address with args.
func NewMessage(address string, args ...Argument) *Message {
	return &Message{Address: address, Args: args}
}

// TypeTags returns the message's type tag string including the leading comma.
func (m *Message) TypeTags() string {
	var b strings.Builder
	b.Grow(len(m.Args) + 1)
	b.WriteByte(',')
	for _, a := range m.Args {
		b.WriteByte(a.tag)
	}
	return b.String()
}

// Reader returns a sequential argument reader over m.
func (m *Message) Reader() *Reader {
	return &Reader{args: m.Args}
}

// Messages flattens p depth-first into the messages it carries.
func Messages(p Packet) []*Message {
	var out []*Message
	var walk func(Packet)
	walk = func(p Packet) {
		switch v := p.(type) {
		case *Message:
			out = append(out, v)
		case *Bundle:
			for _, el := range v.Elements {
				walk(el)
			}
		}
	}
	walk(p)
	return out
}

// Reader consumes message arguments in order. The first failure sticks and
// is reported by Err; later reads return zero values.
type Reader struct {
	args []Argument
	pos  int
	err  error
}

func (r *Reader) next() (Argument, bool) {
	if r.err != nil {
		return Argument{}, false
	}
	if r.pos >= len(r.args) {
		r.err = ErrArgumentCount
		return Argument{}, false
	}
	a := r.args[r.pos]
	r.pos++
	return a, true
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Int32 reads the next argument as int32.
func (r *Reader) Int32() int32 {
	a, ok := r.next()
	if !ok {
		return 0
	}
	v, err := a.Int32()
	r.fail(err)
	return v
}

// Float32 reads the next argument as float32.
func (r *Reader) Float32() float32 {
	a, ok := r.next()
	if !ok {
		return 0
	}
	v, err := a.Float32()
	r.fail(err)
	return v
}

// String reads the next argument as string.
func (r *Reader) String() string {
	a, ok := r.next()
	if !ok {
		return ""
	}
	v, err := a.String()
	r.fail(err)
	return v
}

// Remaining reports the number of unread arguments.
func (r *Reader) Remaining() int {
	return len(r.args) - r.pos
}

// Err returns the first read failure.
func (r *Reader) Err() error {
	return r.err
}
