package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for playfield elements.
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
)

// chargeRamp goes from an unlit receiver to a fully charged one.
var chargeRamp = [...]Color{ColorGray, ColorYellow, ColorOrange, ColorBrightYellow, ColorBrightWhite}

// IntensityColor maps a fraction in [0, 1] onto the charge ramp.
// Values outside the range are clamped.
func IntensityColor(f float64) Color {
	f = ClampF(f, 0, 1)
	i := int(f * float64(len(chargeRamp)-1))
	return chargeRamp[i]
}
