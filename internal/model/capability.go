package model

import (
	"fmt"
	"strings"
)

// Capability is what a deployment of the collection API lets the client do.
type Capability int

const (
	// CapabilityCRUD allows listing, creating, editing and deleting records
	CapabilityCRUD Capability = iota

	// CapabilityReadOnly allows listing only
	CapabilityReadOnly
)

func (c Capability) String() string {
	switch c {
	case CapabilityCRUD:
		return "crud"
	case CapabilityReadOnly:
		return "read-only"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// CanWrite reports whether create, update and delete are permitted.
func (c Capability) CanWrite() bool {
	return c == CapabilityCRUD
}

// ParseCapability converts a config string to a Capability.
func ParseCapability(s string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "crud", "full":
		return CapabilityCRUD, nil
	case "read-only", "readonly", "ro":
		return CapabilityReadOnly, nil
	default:
		return CapabilityCRUD, fmt.Errorf("unknown capability %q", s)
	}
}

func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Capability) UnmarshalText(text []byte) error {
	parsed, err := ParseCapability(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
