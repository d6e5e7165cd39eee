package sim

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is the 8-bit RGB colour a sphere is drawn with. It is fixed at spawn.
type Color struct {
	R, G, B uint8
}

var (
	White   = Color{255, 255, 255}
	Black   = Color{0, 0, 0}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 128, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	Orange  = Color{255, 165, 0}
	Purple  = Color{128, 0, 128}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
	Gray    = Color{128, 128, 128}
	Pink    = Color{255, 192, 203}
)

var namedColors = map[string]Color{
	"white":   White,
	"black":   Black,
	"red":     Red,
	"green":   Green,
	"blue":    Blue,
	"yellow":  Yellow,
	"orange":  Orange,
	"purple":  Purple,
	"cyan":    Cyan,
	"magenta": Magenta,
	"gray":    Gray,
	"grey":    Gray,
	"pink":    Pink,
}

// ParseColor accepts a colour name or a hex triplet such as "#ff8800".
func ParseColor(s string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[key]; ok {
		return c, nil
	}
	if !strings.HasPrefix(key, "#") {
		key = "#" + key
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return FromColorful(c), nil
}

func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes c towards o in Lab space; t=0 is c, t=1 is o.
func (c Color) Blend(o Color, t float64) Color {
	return FromColorful(c.Colorful().BlendLab(o.Colorful(), t))
}

// RandomColor returns a saturated colour drawn from rng.
func RandomColor(rng *rand.Rand) Color {
	return FromColorful(colorful.Hsv(rng.Float64()*360, 0.55+rng.Float64()*0.4, 0.75+rng.Float64()*0.25))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
