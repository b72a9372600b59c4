package autofixture

import (
	"fmt"
	"strings"
)

// Matching selects which types share a frozen instance besides the frozen type.
type Matching int

const (
	// ExactType freezes only the requested type.
	ExactType Matching = iota
	// ImplementedInterfaces also freezes every known interface the type implements.
	ImplementedInterfaces
	// DirectBaseType also freezes the first embedded struct.
	DirectBaseType
	// BaseType also freezes the whole chain of first embedded structs.
	BaseType
	// MemberOfFamily is ImplementedInterfaces and BaseType together.
	MemberOfFamily
)

var matchingNames = map[Matching]string{
	ExactType:             "exact",
	ImplementedInterfaces: "interfaces",
	DirectBaseType:        "direct-base",
	BaseType:              "base",
	MemberOfFamily:        "family",
}

func (m Matching) String() string {
	if name, ok := matchingNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Matching(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m Matching) Valid() bool {
	_, ok := matchingNames[m]
	return ok
}

// ParseMatching accepts the names printed by String, case-insensitively.
func ParseMatching(s string) (Matching, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range matchingNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMatchingMode, s)
}
