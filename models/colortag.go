package models

// ColorTag is the server-side color label attached to a variant.
// Raw values match the wire protocol and must not be reordered.
type ColorTag int

const (
	ColorTagNone ColorTag = iota
	ColorTagRed
	ColorTagOrange
	ColorTagYellow
	ColorTagGreen
	ColorTagBlue
	ColorTagPink
	ColorTagPurple
)

// ColorTagFromInt converts a raw wire value into a ColorTag.
// Out-of-range values collapse to ColorTagNone.
func ColorTagFromInt(raw int) ColorTag {
	if raw < int(ColorTagNone) || raw > int(ColorTagPurple) {
		return ColorTagNone
	}
	return ColorTag(raw)
}

// Name returns a human-readable label for the tag.
func (c ColorTag) Name() string {
	switch c {
	case ColorTagRed:
		return "Red"
	case ColorTagOrange:
		return "Orange"
	case ColorTagYellow:
		return "Yellow"
	case ColorTagGreen:
		return "Green"
	case ColorTagBlue:
		return "Blue"
	case ColorTagPink:
		return "Pink"
	case ColorTagPurple:
		return "Purple"
	default:
		return "None"
	}
}
