package registry

import (
	"fmt"
	"strings"
)

// ID names a screen. It is the key used by the registry, the instance cache
// and the history chain.
type ID string

// Tier is the exclusivity class of a screen.
type Tier int

const (
	// FullScreen screens are opaque; only one is shown at a time.
	FullScreen Tier = iota + 1
	// SecondLevel screens sit above a full screen; only one at a time.
	SecondLevel
	// ThirdLevel screens stack freely and are never closed by exclusivity.
	ThirdLevel
	// Float screens live on the top layer and never enter the history chain.
	Float
)

// Tiers lists every tier in layer order.
var Tiers = []Tier{FullScreen, SecondLevel, ThirdLevel, Float}

func (t Tier) String() string {
	switch t {
	case FullScreen:
		return "full"
	case SecondLevel:
		return "second"
	case ThirdLevel:
		return "third"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool {
	return t >= FullScreen && t <= Float
}

// ParseTier accepts the short names used in definition files as well as a few
// long-hand spellings.
func ParseTier(s string) (Tier, error) {
	switch normalize(s) {
	case "full", "fullscreen", "full-screen":
		return FullScreen, nil
	case "second", "secondlevel", "second-level":
		return SecondLevel, nil
	case "third", "thirdlevel", "third-level":
		return ThirdLevel, nil
	case "float", "floating":
		return Float, nil
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// DestroyPolicy decides when a closed screen's instance is released.
type DestroyPolicy int

const (
	// DestroyOnStateChange keeps the instance cached after close; it is only
	// released by a full reset.
	DestroyOnStateChange DestroyPolicy = iota + 1
	// DestroyOnSelfClose releases the instance as soon as it closes.
	DestroyOnSelfClose
)

func (p DestroyPolicy) String() string {
	switch p {
	case DestroyOnStateChange:
		return "state-change"
	case DestroyOnSelfClose:
		return "self-close"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseDestroyPolicy parses the policy names used in definition files.
func ParseDestroyPolicy(s string) (DestroyPolicy, error) {
	switch normalize(s) {
	case "", "state-change", "statechange", "on-state-change":
		return DestroyOnStateChange, nil
	case "self-close", "selfclose", "on-self-close", "close":
		return DestroyOnSelfClose, nil
	}
	return 0, fmt.Errorf("unknown destroy policy %q", s)
}

// Descriptor is the static definition of a screen.
type Descriptor struct {
	ID        ID
	Title     string
	Tier      Tier
	Destroy   DestroyPolicy
	Footprint bool
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", "-")
}
