package handanalyzer

import (
	"encoding/json"
	"fmt"
)

// Category is the class of a two card seotda hand
type Category int

// Constants for category, lowest first
const (
	Mangtong Category = iota
	Kkeut
	Special
	Ttang
	Gwangttang
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case Mangtong:
		return "mangtong"
	case Kkeut:
		return "kkeut"
	case Special:
		return "special"
	case Ttang:
		return "ttang"
	case Gwangttang:
		return "gwangttang"
	default:
		panic(fmt.Sprintf("unknown category: %d", c))
	}
}

// MarshalJSON encodes the category as a string
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Kind identifies a named special hand
type Kind int

// Constants for kind
const (
	None Kind = iota
	Ali
	Doksa
	Gupping
	Jangpping
	Jangsa
	Seryuk
	Gusa
	SillyGusa
	Amhaengeosa
	Ttaengjabi
)

// String returns the label of the kind
func (k Kind) String() string {
	switch k {
	case None:
		return ""
	case Ali:
		return "ali"
	case Doksa:
		return "doksa"
	case Gupping:
		return "gu-ping"
	case Jangpping:
		return "jang-ping"
	case Jangsa:
		return "jang-sa"
	case Seryuk:
		return "se-ryuk"
	case Gusa:
		return "gusa"
	case SillyGusa:
		return "silly-gusa"
	case Amhaengeosa:
		return "amhaeng-eosa"
	case Ttaengjabi:
		return "ttaeng-jabi"
	default:
		panic(fmt.Sprintf("unknown kind: %d", k))
	}
}

// MarshalJSON encodes the kind as a string
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// IsRoleReversal returns true for hands that only win against a specific category
func (k Kind) IsRoleReversal() bool {
	return k == Amhaengeosa || k == Ttaengjabi
}

// IsGusa returns true for either gusa variant
func (k Kind) IsGusa() bool {
	return k == Gusa || k == SillyGusa
}
