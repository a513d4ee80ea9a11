package editor

import (
	"fmt"
	"strconv"
)

// Mask is one of the fixed formatting templates applied to field values.
type Mask int

const (
	MaskColon       Mask = iota // M: V
	MaskSpace                   // M V
	MaskPrefix                  // V M
	MaskNumber                  // M, M 2, M 3...
	MaskNumberColon             // M: V, M 2: V...
	MaskRoman                   // M, M II, M III...
	MaskRomanColon              // M: V, M II: V...
)

// Masks lists every mask in index order.
var Masks = []Mask{MaskColon, MaskSpace, MaskPrefix, MaskNumber, MaskNumberColon, MaskRoman, MaskRomanColon}

var maskLabels = [...]string{`: "`, `" "`, `"pre"`, `"i"`, `"i: "`, `"I"`, `"I: "`}

var romans = [...]string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// ErrUnknownMask is returned by [ParseMask] for indices outside the mask table.
var ErrUnknownMask = fmt.Errorf("unknown mask")

// ParseMask converts a mask index (0-6) into a [Mask].
func ParseMask(i int) (Mask, error) {
	m := Mask(i)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %d (want 0-%d)", ErrUnknownMask, i, len(Masks)-1)
	}
	return m, nil
}

func (m Mask) Valid() bool { return m >= MaskColon && m <= MaskRomanColon }

// Label is the short button caption of the mask.
func (m Mask) Label() string {
	if !m.Valid() {
		return "?"
	}
	return maskLabels[m]
}

// Next cycles to the following mask, wrapping around.
func (m Mask) Next() Mask {
	return Mask((int(m) + 1) % len(Masks))
}

// Prev cycles to the preceding mask, wrapping around.
func (m Mask) Prev() Mask {
	return Mask((int(m) + len(Masks) - 1) % len(Masks))
}

// Apply formats value for the field at zero-based index under main name.
// An invalid mask returns value unchanged.
func (m Mask) Apply(main, value string, index int) string {
	n := index + 1
	switch m {
	case MaskColon:
		return main + ": " + value
	case MaskSpace:
		return main + " " + value
	case MaskPrefix:
		return value + " " + main
	case MaskNumber:
		if index == 0 {
			return main
		}
		return main + " " + strconv.Itoa(n)
	case MaskNumberColon:
		if index == 0 {
			return main + ": " + value
		}
		return main + " " + strconv.Itoa(n) + ": " + value
	case MaskRoman:
		if index == 0 {
			return main
		}
		return main + " " + Roman(n)
	case MaskRomanColon:
		if index == 0 {
			return main + ": " + value
		}
		return main + " " + Roman(n) + ": " + value
	default:
		return value
	}
}

// Roman renders 1-10 as Roman numerals; anything else falls back to Arabic digits.
func Roman(n int) string {
	if n >= 1 && n < len(romans) {
		return romans[n]
	}
	return strconv.Itoa(n)
}
