package tuio

import "fmt"

// Profile identifies one of the three TUIO 1.x 2D profiles.
type Profile uint8

const (
	ProfileCursor Profile = iota
	ProfileObject
	ProfileBlob
)

const (
	AddressCursor = "/tuio/2Dcur"
	AddressObject = "/tuio/2Dobj"
	AddressBlob   = "/tuio/2Dblb"
)

// Profiles lists every supported profile in dispatch order.
var Profiles = []Profile{ProfileCursor, ProfileObject, ProfileBlob}

func (p Profile) String() string {
	switch p {
	case ProfileCursor:
		return "cursor"
	case ProfileObject:
		return "object"
	case ProfileBlob:
		return "blob"
	default:
		return fmt.Sprintf("profile(%d)", uint8(p))
	}
}

// Address returns the OSC address carrying p.
func (p Profile) Address() string {
	switch p {
	case ProfileCursor:
		return AddressCursor
	case ProfileObject:
		return AddressObject
	case ProfileBlob:
		return AddressBlob
	default:
		return ""
	}
}

// ProfileForAddress maps an OSC address to its profile.
func ProfileForAddress(address string) (Profile, error) {
	switch address {
	case AddressCursor:
		return ProfileCursor, nil
	case AddressObject:
		return ProfileObject, nil
	case AddressBlob:
		return ProfileBlob, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, address)
	}
}

// State is the lifecycle and motion state of an entity.
type State uint8

const (
	StateAdded State = iota
	StateAccelerating
	StateDecelerating
	StateStopped
	StateRemoved
	StateRotating
)

func (s State) String() string {
	switch s {
	case StateAdded:
		return "added"
	case StateAccelerating:
		return "accelerating"
	case StateDecelerating:
		return "decelerating"
	case StateStopped:
		return "stopped"
	case StateRemoved:
		return "removed"
	case StateRotating:
		return "rotating"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// MarshalText lets JSON encoders render states by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for v := StateAdded; v <= StateRotating; v++ {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("tuio: unknown state %q", text)
}
