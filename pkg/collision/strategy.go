// pkg/collision/strategy.go
package collision

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned when a strategy name cannot be parsed
var ErrUnknownStrategy = errors.New("unknown collision strategy")

// Strategy selects the broad phase used to enumerate candidate pairs
type Strategy int

const (
	// Exhaustive tests every unordered pair; O(n²), the correctness reference.
	Exhaustive Strategy = iota
	// Indexed builds a quadtree each pass and tests only retrieved candidates.
	Indexed
)

// String returns the strategy name
func (s Strategy) String() string {
	switch s {
	case Exhaustive:
		return "exhaustive"
	case Indexed:
		return "indexed"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Label is the human readable name shown by viewers
func (s Strategy) Label() string {
	switch s {
	case Exhaustive:
		return "Brute Force"
	case Indexed:
		return "Quadtree"
	default:
		return s.String()
	}
}

// Toggle returns the other strategy
func (s Strategy) Toggle() Strategy {
	if s == Exhaustive {
		return Indexed
	}
	return Exhaustive
}

// ParseStrategy converts a name into a Strategy. Besides the canonical names
// it accepts "bruteforce"/"brute-force" and "quadtree".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "exhaustive", "bruteforce", "brute-force", "brute_force":
		return Exhaustive, nil
	case "indexed", "quadtree":
		return Indexed, nil
	default:
		return Exhaustive, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case Exhaustive, Indexed:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
