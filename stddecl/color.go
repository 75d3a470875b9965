package stddecl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/ir"
)

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var errColorSyntax = errors.New("expected r;g;b, r,g,b or a hex color")

func colorConstructor() *gomap.Constructor {
	return gomap.Raw(parseColor)
}

func parseColor(n *ir.Node) (Color, error) {
	if n.Kind == ir.MappingKind {
		return colorFromMapping(n)
	}
	if err := gomap.CheckTag(n, ir.TagStr, ir.TagInt); err != nil {
		return Color{}, err
	}
	s := strings.TrimSpace(n.Value)
	if strings.HasPrefix(s, "#") {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil || len(s) != 7 {
			return Color{}, errColorSyntax
		}
		return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}
	sep := ";"
	if !strings.Contains(s, sep) {
		sep = ","
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return Color{}, errColorSyntax
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: component %q out of range", errColorSyntax, p)
		}
		rgb[i] = uint8(v)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

func colorFromMapping(n *ir.Node) (Color, error) {
	var rgb [3]uint8
	for i, k := range []string{"r", "g", "b"} {
		v := n.Get(k)
		if v == nil {
			return Color{}, fmt.Errorf("missing color component %q", k)
		}
		if err := gomap.CheckTag(v, ir.TagInt); err != nil {
			return Color{}, gomap.AddLocation(err, fmt.Sprintf("in property %q", k))
		}
		c, err := ir.ParseInt(v.Value, 64)
		if err != nil || c < 0 || c > 255 {
			return Color{}, fmt.Errorf("color component %q out of range: %s", k, v.Value)
		}
		rgb[i] = uint8(c)
	}
	if len(n.Fields) != 3 {
		return Color{}, errors.New("a color mapping takes only r, g and b")
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}
