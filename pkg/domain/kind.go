package domain

import (
	"fmt"
	"strings"
)

// Kind is the visual category of a transcript line.
type Kind uint8

const (
	KindOutput Kind = iota
	KindCommand
	KindSuccess
	KindError
	KindInfo
	KindComment // autoplay script only
)

var kindNames = [...]string{
	KindOutput:  "output",
	KindCommand: "command",
	KindSuccess: "success",
	KindError:   "error",
	KindInfo:    "info",
	KindComment: "comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind converts a case-insensitive kind name into a Kind.
// An empty name is treated as output.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return KindOutput, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindOutput, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
