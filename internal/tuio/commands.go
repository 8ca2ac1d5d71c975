package tuio

import (
	"fmt"

	"github.com/danmuck/tuioctl/internal/osc"
)

const (
	cmdSet   = "set"
	cmdAlive = "alive"
	cmdFseq  = "fseq"
)

// Command is one decoded TUIO profile message.
type Command interface {
	Profile() Profile
	// Message encodes the command back into its OSC form.
	Message() *osc.Message
}

// CursorSet is a 2Dcur set message.
type CursorSet struct {
	SessionID   int32
	X, Y        float32
	XSpeed      float32
	YSpeed      float32
	MotionAccel float32
}

// ObjectSet is a 2Dobj set message.
type ObjectSet struct {
	SessionID     int32
	SymbolID      int32
	X, Y          float32
	Angle         float32
	XSpeed        float32
	YSpeed        float32
	RotationSpeed float32
	MotionAccel   float32
	RotationAccel float32
}

// BlobSet is a 2Dblb set message.
type BlobSet struct {
	SessionID     int32
	X, Y          float32
	Angle         float32
	Width         float32
	Height        float32
	Area          float32
	XSpeed        float32
	YSpeed        float32
	RotationSpeed float32
	MotionAccel   float32
	RotationAccel float32
}

// Alive replaces a profile's alive list.
type Alive struct {
	Kind       Profile
	SessionIDs []int32
}

// Fseq terminates a profile frame.
type Fseq struct {
	Kind  Profile
	Frame int32
}

func (CursorSet) Profile() Profile { return ProfileCursor }
func (ObjectSet) Profile() Profile { return ProfileObject }
func (BlobSet) Profile() Profile   { return ProfileBlob }
func (a Alive) Profile() Profile   { return a.Kind }
func (f Fseq) Profile() Profile    { return f.Kind }

func (s CursorSet) Message() *osc.Message {
	return osc.NewMessage(AddressCursor,
		osc.NewString(cmdSet),
		osc.NewInt32(s.SessionID),
		osc.NewFloat32(s.X),
		osc.NewFloat32(s.Y),
		osc.NewFloat32(s.XSpeed),
		osc.NewFloat32(s.YSpeed),
		osc.NewFloat32(s.MotionAccel),
	)
}

func (s ObjectSet) Message() *osc.Message {
	return osc.NewMessage(AddressObject,
		osc.NewString(cmdSet),
		osc.NewInt32(s.SessionID),
		osc.NewInt32(s.SymbolID),
		osc.NewFloat32(s.X),
		osc.NewFloat32(s.Y),
		osc.NewFloat32(s.Angle),
		osc.NewFloat32(s.XSpeed),
		osc.NewFloat32(s.YSpeed),
		osc.NewFloat32(s.RotationSpeed),
		osc.NewFloat32(s.MotionAccel),
		osc.NewFloat32(s.RotationAccel),
	)
}

func (s BlobSet) Message() *osc.Message {
	return osc.NewMessage(AddressBlob,
		osc.NewString(cmdSet),
		osc.NewInt32(s.SessionID),
		osc.NewFloat32(s.X),
		osc.NewFloat32(s.Y),
		osc.NewFloat32(s.Angle),
		osc.NewFloat32(s.Width),
		osc.NewFloat32(s.Height),
		osc.NewFloat32(s.Area),
		osc.NewFloat32(s.XSpeed),
		osc.NewFloat32(s.YSpeed),
		osc.NewFloat32(s.RotationSpeed),
		osc.NewFloat32(s.MotionAccel),
		osc.NewFloat32(s.RotationAccel),
	)
}

func (a Alive) Message() *osc.Message {
	args := make([]osc.Argument, 0, len(a.SessionIDs)+1)
	args = append(args, osc.NewString(cmdAlive))
	for _, id := range a.SessionIDs {
		args = append(args, osc.NewInt32(id))
	}
	return osc.NewMessage(a.Kind.Address(), args...)
}

func (f Fseq) Message() *osc.Message {
	return osc.NewMessage(f.Kind.Address(), osc.NewString(cmdFseq), osc.NewInt32(f.Frame))
}

// ParseCommand decodes a TUIO profile message. ok is false for addresses
// outside the three 2D profiles and for sub-commands this client ignores,
// such as "source".
func ParseCommand(msg *osc.Message) (cmd Command, ok bool, err error) {
	kind, err := ProfileForAddress(msg.Address)
	if err != nil {
		return nil, false, nil
	}
	r := msg.Reader()
	name := r.String()
	if r.Err() != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrMissingCommand, msg.Address)
	}

	switch name {
	case cmdSet:
		cmd = parseSet(kind, r)
	case cmdAlive:
		alive := Alive{Kind: kind, SessionIDs: make([]int32, 0, r.Remaining())}
		for r.Remaining() > 0 && r.Err() == nil {
			alive.SessionIDs = append(alive.SessionIDs, r.Int32())
		}
		cmd = alive
	case cmdFseq:
		cmd = Fseq{Kind: kind, Frame: r.Int32()}
	default:
		return nil, false, nil
	}
	if err := r.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: %s %s: %w", ErrMalformedCommand, msg.Address, name, err)
	}
	return cmd, true, nil
}

// parseSet reads the profile's set layout. Trailing arguments are ignored.
func parseSet(kind Profile, r *osc.Reader) Command {
	switch kind {
	case ProfileCursor:
		return CursorSet{
			SessionID:   r.Int32(),
			X:           r.Float32(),
			Y:           r.Float32(),
			XSpeed:      r.Float32(),
			YSpeed:      r.Float32(),
			MotionAccel: r.Float32(),
		}
	case ProfileObject:
		return ObjectSet{
			SessionID:     r.Int32(),
			SymbolID:      r.Int32(),
			X:             r.Float32(),
			Y:             r.Float32(),
			Angle:         r.Float32(),
			XSpeed:        r.Float32(),
			YSpeed:        r.Float32(),
			RotationSpeed: r.Float32(),
			MotionAccel:   r.Float32(),
			RotationAccel: r.Float32(),
		}
	default:
		return BlobSet{
			SessionID:     r.Int32(),
			X:             r.Float32(),
			Y:             r.Float32(),
			Angle:         r.Float32(),
			Width:         r.Float32(),
			Height:        r.Float32(),
			Area:          r.Float32(),
			XSpeed:        r.Float32(),
			YSpeed:        r.Float32(),
			RotationSpeed: r.Float32(),
			MotionAccel:   r.Float32(),
			RotationAccel: r.Float32(),
		}
	}
}

// ParsePacket decodes every TUIO command in p, depth first. Any malformed
// command fails the whole packet.
func ParsePacket(p osc.Packet) ([]Command, error) {
	msgs := osc.Messages(p)
	cmds := make([]Command, 0, len(msgs))
	for _, msg := range msgs {
		cmd, ok, err := ParseCommand(msg)
		if err != nil {
			return nil, err
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

// EncodeFrame builds the conventional frame bundle: alive, sets, fseq.
func EncodeFrame(kind Profile, alive []int32, sets []Command, frame int32) *osc.Bundle {
	elements := make([]osc.Packet, 0, len(sets)+2)
	elements = append(elements, Alive{Kind: kind, SessionIDs: alive}.Message())
	for _, s := range sets {
		elements = append(elements, s.Message())
	}
	elements = append(elements, Fseq{Kind: kind, Frame: frame}.Message())
	return &osc.Bundle{Time: osc.Immediately, Elements: elements}
}

func (s CursorSet) sample() Cursor {
	return Cursor{Container: Container{
		SessionID:   int64(s.SessionID),
		X:           s.X,
		Y:           s.Y,
		XSpeed:      s.XSpeed,
		YSpeed:      s.YSpeed,
		MotionAccel: s.MotionAccel,
	}}
}

func (s ObjectSet) sample() Object {
	return Object{
		Container: Container{
			SessionID:   int64(s.SessionID),
			X:           s.X,
			Y:           s.Y,
			XSpeed:      s.XSpeed,
			YSpeed:      s.YSpeed,
			MotionAccel: s.MotionAccel,
		},
		rotation: rotation{
			Angle:         s.Angle,
			RotationSpeed: s.RotationSpeed,
			RotationAccel: s.RotationAccel,
		},
		SymbolID: s.SymbolID,
	}
}

func (s BlobSet) sample() Blob {
	return Blob{
		Container: Container{
			SessionID:   int64(s.SessionID),
			X:           s.X,
			Y:           s.Y,
			XSpeed:      s.XSpeed,
			YSpeed:      s.YSpeed,
			MotionAccel: s.MotionAccel,
		},
		rotation: rotation{
			Angle:         s.Angle,
			RotationSpeed: s.RotationSpeed,
			RotationAccel: s.RotationAccel,
		},
		Width:  s.Width,
		Height: s.Height,
		Area:   s.Area,
	}
}
