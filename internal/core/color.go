package core

// Color is a logical foreground color for a screen cell. The platform
// layer maps it to a terminal palette; games never see escape codes.
type Color uint8

// Colors used by the playfield, HUD and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	// ColorCount is the number of defined colors.
	ColorCount
)

// Valid reports whether c is one of the defined colors.
func (c Color) Valid() bool {
	return c < ColorCount
}
