package midi

// Color is a LinnStrument palette index as sent in the cell colour CC.
type Color uint8

// LinnStrument palette (CC22 values). Note that Off is 7, not 0: zero selects
// the colour configured on the instrument itself.
const (
	ColorDefault Color = 0
	ColorRed     Color = 1
	ColorYellow  Color = 2
	ColorGreen   Color = 3
	ColorCyan    Color = 4
	ColorBlue    Color = 5
	ColorMagenta Color = 6
	ColorOff     Color = 7
	ColorWhite   Color = 8
	ColorOrange  Color = 9
	ColorLime    Color = 10
	ColorPink    Color = 11

	numColors = 12
)

var colorNames = [numColors]string{
	"default", "red", "yellow", "green", "cyan", "blue",
	"magenta", "off", "white", "orange", "lime", "pink",
}

func (c Color) String() string {
	if c.Valid() {
		return colorNames[c]
	}
	return "invalid"
}

func (c Color) Valid() bool {
	return c < numColors
}

// RGB returns an approximate display colour for the palette entry.
func (c Color) RGB() [3]uint8 {
	for _, p := range palette {
		if p.color == c {
			return p.rgb
		}
	}
	return [3]uint8{}
}

var palette = []struct {
	color Color
	rgb   [3]uint8
}{
	{ColorOff, [3]uint8{0, 0, 0}},
	{ColorRed, [3]uint8{255, 0, 0}},
	{ColorYellow, [3]uint8{255, 200, 0}},
	{ColorGreen, [3]uint8{0, 255, 0}},
	{ColorCyan, [3]uint8{0, 200, 200}},
	{ColorBlue, [3]uint8{0, 100, 255}},
	{ColorMagenta, [3]uint8{200, 0, 200}},
	{ColorWhite, [3]uint8{255, 255, 255}},
	{ColorOrange, [3]uint8{255, 100, 0}},
	{ColorLime, [3]uint8{150, 255, 100}},
	{ColorPink, [3]uint8{255, 80, 180}},
}

// NearestColor finds the closest palette colour for an RGB value. Near-black
// maps to Off.
func NearestColor(rgb [3]uint8) Color {
	best := ColorOff
	bestDist := 1 << 30

	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])
	for _, p := range palette {
		pr, pg, pb := int(p.rgb[0]), int(p.rgb[1]), int(p.rgb[2])
		dist := (r-pr)*(r-pr) + (g-pg)*(g-pg) + (b-pb)*(b-pb)
		if dist < bestDist {
			bestDist = dist
			best = p.color
		}
	}
	return best
}
